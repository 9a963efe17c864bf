package models

import "time"

// Notification type constants
const (
	NotificationTypeWelcome            = "WELCOME"
	NotificationTypeFormReceived       = "FORM_RECEIVED"
	NotificationTypeReviewDecision     = "REVIEW_DECISION"
	NotificationTypeLessonReminder     = "LESSON_REMINDER"
	NotificationTypeInterviewProposed  = "INTERVIEW_PROPOSED"
	NotificationTypeInterviewReminder  = "INTERVIEW_REMINDER"
	NotificationTypeInterviewResult    = "INTERVIEW_RESULT"
	NotificationTypeVolunteerReminder  = "VOLUNTEER_REMINDER"
	NotificationTypeCareFollowUp       = "CARE_FOLLOW_UP"
	NotificationTypeCareEscalation     = "CARE_ESCALATION"
	NotificationTypeBenevolenceUpdate  = "BENEVOLENCE_UPDATE"
	NotificationTypeMembershipExpired  = "MEMBERSHIP_EXPIRED"
	NotificationTypeHelpResolved       = "HELP_RESOLVED"
	NotificationTypeMealTrainUpdate    = "MEAL_TRAIN_UPDATE"
)

// Notification status constants
const (
	NotificationStatusRead   = "READ"
	NotificationStatusUnread = "UNREAD"
)

type Notification struct {
	Notification_ID      int       `json:"notificationId" goqu:"skipinsert"`
	Member_Profile_ID    int       `json:"memberProfileId"`
	Notification_Type    string    `json:"notificationType"`
	Notification_Title   string    `json:"notificationTitle"`
	Notification_Message string    `json:"notificationMessage"`
	Notification_Link    *string   `json:"notificationLink"`
	Notification_Status  string    `json:"notificationStatus"`
	Datetime_Create      time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update      time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
	Created_By           int       `json:"createdBy"`
	Updated_By           int       `json:"updatedBy"`
}
