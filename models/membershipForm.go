package models

import "time"

type MembershipForm struct {
	Membership_Form_ID int       `json:"membershipFormId" goqu:"skipinsert"`
	Member_Profile_ID  int       `json:"memberProfileId"`
	Testimony          string    `json:"testimony"`
	Previous_Church    *string   `json:"previousChurch"`
	Ministry_Interest  *string   `json:"ministryInterest"`
	Review_Notes       *string   `json:"reviewNotes"`
	Is_Active          bool      `json:"isActive"`
	Created_By         int       `json:"createdBy"`
	Datetime_Create    time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Updated_By         int       `json:"updatedBy"`
	Datetime_Update    time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

type MembershipFormSubmit struct {
	Testimony        string  `json:"testimony" binding:"required"`
	PreviousChurch   *string `json:"previousChurch"`
	MinistryInterest *string `json:"ministryInterest"`
}

// ReviewDecision is the admin action over a submitted form.
type ReviewDecision struct {
	Action     string  `json:"action" binding:"required,oneof=approve reject request_changes"`
	CourseName *string `json:"courseName"`
	Reason     *string `json:"reason"`
}
