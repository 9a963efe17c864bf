package models

import "time"

// Help request status constants
const (
	HelpRequestStatusNew        = "NEW"
	HelpRequestStatusInProgress = "IN_PROGRESS"
	HelpRequestStatusResolved   = "RESOLVED"
	HelpRequestStatusClosed     = "CLOSED"
)

var helpRequestTransitions = map[string][]string{
	HelpRequestStatusNew:        {HelpRequestStatusInProgress, HelpRequestStatusClosed},
	HelpRequestStatusInProgress: {HelpRequestStatusResolved, HelpRequestStatusClosed},
	HelpRequestStatusResolved:   {HelpRequestStatusClosed},
	HelpRequestStatusClosed:     {},
}

func CanTransitionHelpRequest(from, to string) bool {
	for _, next := range helpRequestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type HelpRequest struct {
	Help_Request_ID   int       `json:"helpRequestId" goqu:"skipinsert"`
	Member_Profile_ID int       `json:"memberProfileId"`
	Assignee_ID       *int      `json:"assigneeId"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Request_Status    string    `json:"requestStatus"`
	Is_Active         bool      `json:"isActive"`
	Created_By        int       `json:"createdBy"`
	Datetime_Create   time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Updated_By        int       `json:"updatedBy"`
	Datetime_Update   time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

type HelpRequestCreate struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type HelpRequestStatusUpdate struct {
	RequestStatus string `json:"requestStatus" binding:"required"`
	AssigneeID    *int   `json:"assigneeId"`
}
