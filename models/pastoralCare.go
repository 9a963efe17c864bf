package models

import "time"

// Pastoral care status constants
const (
	PastoralCareStatusOpen     = "OPEN"
	PastoralCareStatusFollowUp = "FOLLOW_UP"
	PastoralCareStatusClosed   = "CLOSED"
)

var pastoralCareTransitions = map[string][]string{
	PastoralCareStatusOpen:     {PastoralCareStatusFollowUp, PastoralCareStatusClosed},
	PastoralCareStatusFollowUp: {PastoralCareStatusClosed, PastoralCareStatusFollowUp},
	PastoralCareStatusClosed:   {},
}

func CanTransitionPastoralCare(from, to string) bool {
	for _, next := range pastoralCareTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type PastoralCare struct {
	Pastoral_Care_ID  int        `json:"pastoralCareId" goqu:"skipinsert"`
	Member_Profile_ID int        `json:"memberProfileId"`
	Assigned_To       *int       `json:"assignedTo"`
	Care_Status       string     `json:"careStatus"`
	Subject           string     `json:"subject"`
	Notes             *string    `json:"notes"`
	Follow_Up_Date    *time.Time `json:"followUpDate"`
	Reminder_Stage    int        `json:"-"`
	Is_Active         bool       `json:"isActive"`
	Created_By        int        `json:"createdBy"`
	Datetime_Create   time.Time  `json:"datetimeCreate" goqu:"skipinsert"`
	Updated_By        int        `json:"updatedBy"`
	Datetime_Update   time.Time  `json:"datetimeUpdate" goqu:"skipinsert"`
}

type PastoralCareCreate struct {
	MemberProfileID int     `json:"memberProfileId" binding:"required"`
	Subject         string  `json:"subject" binding:"required"`
	Notes           *string `json:"notes"`
	FollowUpDate    *string `json:"followUpDate"`
}

type PastoralCareStatusUpdate struct {
	CareStatus   string  `json:"careStatus" binding:"required"`
	Notes        *string `json:"notes"`
	FollowUpDate *string `json:"followUpDate"`
}
