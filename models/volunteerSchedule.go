package models

import "time"

// Volunteer schedule status constants
const (
	VolunteerScheduleStatusScheduled = "SCHEDULED"
	VolunteerScheduleStatusServed    = "SERVED"
	VolunteerScheduleStatusMissed    = "MISSED"
	VolunteerScheduleStatusCancelled = "CANCELLED"
)

type VolunteerSchedule struct {
	Volunteer_Schedule_ID int       `json:"volunteerScheduleId" goqu:"skipinsert"`
	Member_Profile_ID     int       `json:"memberProfileId"`
	Event_ID              *int      `json:"eventId"`
	Ministry              string    `json:"ministry"`
	Serve_Date            time.Time `json:"serveDate"`
	Schedule_Status       string    `json:"scheduleStatus"`
	Reminder_Stage        int       `json:"-"`
	Is_Active             bool      `json:"isActive"`
	Created_By            int       `json:"createdBy"`
	Datetime_Create       time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Updated_By            int       `json:"updatedBy"`
	Datetime_Update       time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

type VolunteerScheduleCreate struct {
	MemberProfileID int    `json:"memberProfileId" binding:"required"`
	EventID         *int   `json:"eventId"`
	Ministry        string `json:"ministry" binding:"required"`
	ServeDate       string `json:"serveDate" binding:"required"`
}
