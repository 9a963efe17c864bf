package models

import "time"

type InvitationCode struct {
	Invitation_Code_ID int       `json:"invitationCodeId" goqu:"skipinsert"`
	Code               string    `json:"code"`
	Preset_Role        string    `json:"presetRole"`
	Skip_Onboarding    bool      `json:"skipOnboarding"`
	Datetime_Expires   time.Time `json:"datetimeExpires"`
	Is_Active          bool      `json:"isActive"`
	Created_By         int       `json:"createdBy"`
	Datetime_Create    time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Updated_By         int       `json:"updatedBy"`
	Datetime_Update    time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

type InvitationCodeCreate struct {
	PresetRole     string `json:"presetRole"`
	SkipOnboarding bool   `json:"skipOnboarding"`
	ExpiresInDays  int    `json:"expiresInDays"`
}
