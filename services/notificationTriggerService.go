package services

import (
	"log"
	"strconv"

	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/permissions"

	"github.com/doug-martin/goqu/v9"
)

// CreateNotification records a notification for a member and fire-and-forgets
// a push to their devices. Delivery failures are logged, never surfaced: the
// record is the source of truth, push is best effort.
func CreateNotification(memberID int, notifType, title, message string, link *string, actorID int) {
	notification := models.Notification{
		Member_Profile_ID:    memberID,
		Notification_Type:    notifType,
		Notification_Title:   title,
		Notification_Message: message,
		Notification_Link:    link,
		Notification_Status:  models.NotificationStatusUnread,
		Created_By:           actorID,
		Updated_By:           actorID,
	}

	insert := initializers.DB.Insert("notification").Rows(notification)
	if _, err := insert.Executor().Exec(); err != nil {
		log.Printf("Failed to create %s notification for member %d: %v", notifType, memberID, err)
		return
	}

	go sendPush(memberID, title, message, notifType, link)
}

func sendPush(memberID int, title, message, notifType string, link *string) {
	service := GetPushNotificationService()
	if service == nil {
		return
	}

	data := map[string]string{
		"type":     notifType,
		"memberId": strconv.Itoa(memberID),
	}
	if link != nil {
		data["link"] = *link
	}

	payload := NotificationPayload{
		Title:    title,
		Body:     message,
		Data:     data,
		Sound:    "default",
		Priority: "high",
	}

	if err := service.SendNotificationToMember(memberID, payload); err != nil {
		log.Printf("Push delivery failed for member %d: %v", memberID, err)
	}
}

// BroadcastToStaff records the same notification for every active member
// holding a staff role. Used by escalations.
func BroadcastToStaff(notifType, title, message string, link *string, actorID int) error {
	staffRoles := make([]string, 0, len(permissions.StaffRoles))
	for role := range permissions.StaffRoles {
		staffRoles = append(staffRoles, string(role))
	}

	var staffIDs []int
	err := initializers.DB.From("member_profile").
		Select("member_profile_id").
		Where(goqu.And(
			goqu.C("church_role").In(staffRoles),
			goqu.C("is_active").IsTrue(),
		)).
		ScanVals(&staffIDs)
	if err != nil {
		return err
	}

	for _, id := range staffIDs {
		CreateNotification(id, notifType, title, message, link, actorID)
	}

	return nil
}
