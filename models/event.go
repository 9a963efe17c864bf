package models

import "time"

type Event struct {
	Event_ID        int       `json:"eventId" goqu:"skipinsert"`
	Event_Name      string    `json:"eventName"`
	Description     string    `json:"description"`
	Event_Date      time.Time `json:"eventDate"`
	Location        string    `json:"location"`
	Is_Active       bool      `json:"isActive"`
	Created_By      int       `json:"createdBy"`
	Datetime_Create time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Updated_By      int       `json:"updatedBy"`
	Datetime_Update time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

type EventCreate struct {
	EventName   string `json:"eventName" binding:"required"`
	Description string `json:"description"`
	EventDate   string `json:"eventDate" binding:"required"`
	Location    string `json:"location"`
}
