package models

import "time"

// Prayer request status constants
const (
	PrayerRequestStatusOpen     = "OPEN"
	PrayerRequestStatusAnswered = "ANSWERED"
	PrayerRequestStatusArchived = "ARCHIVED"
)

var prayerRequestTransitions = map[string][]string{
	PrayerRequestStatusOpen:     {PrayerRequestStatusAnswered, PrayerRequestStatusArchived},
	PrayerRequestStatusAnswered: {PrayerRequestStatusArchived},
	PrayerRequestStatusArchived: {},
}

func CanTransitionPrayerRequest(from, to string) bool {
	for _, next := range prayerRequestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type PrayerRequest struct {
	Prayer_Request_ID int        `json:"prayerRequestId" goqu:"skipinsert"`
	Member_Profile_ID int        `json:"memberProfileId"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Is_Private        bool       `json:"isPrivate"`
	Request_Status    string     `json:"requestStatus"`
	Datetime_Answered *time.Time `json:"datetimeAnswered"`
	Is_Active         bool       `json:"isActive"`
	Created_By        int        `json:"createdBy"`
	Datetime_Create   time.Time  `json:"datetimeCreate" goqu:"skipinsert"`
	Updated_By        int        `json:"updatedBy"`
	Datetime_Update   time.Time  `json:"datetimeUpdate" goqu:"skipinsert"`
}

type PrayerRequestCreate struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"isPrivate"`
}

type PrayerRequestStatusUpdate struct {
	RequestStatus string `json:"requestStatus" binding:"required"`
}
