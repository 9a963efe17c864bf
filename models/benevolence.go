package models

import "time"

// Benevolence request status constants
const (
	BenevolenceStatusSubmitted = "SUBMITTED"
	BenevolenceStatusReviewing = "REVIEWING"
	BenevolenceStatusApproved  = "APPROVED"
	BenevolenceStatusDisbursed = "DISBURSED"
	BenevolenceStatusDenied    = "DENIED"
)

var benevolenceTransitions = map[string][]string{
	BenevolenceStatusSubmitted: {BenevolenceStatusReviewing, BenevolenceStatusDenied},
	BenevolenceStatusReviewing: {BenevolenceStatusApproved, BenevolenceStatusDenied},
	BenevolenceStatusApproved:  {BenevolenceStatusDisbursed, BenevolenceStatusDenied},
	BenevolenceStatusDisbursed: {},
	BenevolenceStatusDenied:    {},
}

func CanTransitionBenevolence(from, to string) bool {
	for _, next := range benevolenceTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type BenevolenceRequest struct {
	Benevolence_Request_ID int        `json:"benevolenceRequestId" goqu:"skipinsert"`
	Member_Profile_ID      int        `json:"memberProfileId"`
	Benevolence_Fund_ID    int        `json:"benevolenceFundId"`
	Reason                 string     `json:"reason"`
	Amount_Requested       float64    `json:"amountRequested"`
	Amount_Granted         *float64   `json:"amountGranted"`
	Request_Status         string     `json:"requestStatus"`
	Decision_Notes         *string    `json:"decisionNotes"`
	Disbursed_At           *time.Time `json:"disbursedAt"`
	Is_Active              bool       `json:"isActive"`
	Created_By             int        `json:"createdBy"`
	Datetime_Create        time.Time  `json:"datetimeCreate" goqu:"skipinsert"`
	Updated_By             int        `json:"updatedBy"`
	Datetime_Update        time.Time  `json:"datetimeUpdate" goqu:"skipinsert"`
}

type BenevolenceFund struct {
	Benevolence_Fund_ID int       `json:"benevolenceFundId" goqu:"skipinsert"`
	Fund_Name           string    `json:"fundName"`
	Total_Balance       float64   `json:"totalBalance"`
	Is_Active           bool      `json:"isActive"`
	Created_By          int       `json:"createdBy"`
	Datetime_Create     time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Updated_By          int       `json:"updatedBy"`
	Datetime_Update     time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

type BenevolenceRequestCreate struct {
	BenevolenceFundID int     `json:"benevolenceFundId" binding:"required"`
	Reason            string  `json:"reason" binding:"required"`
	AmountRequested   float64 `json:"amountRequested" binding:"required,gt=0"`
}

type BenevolenceDecision struct {
	Approve       bool     `json:"approve"`
	AmountGranted *float64 `json:"amountGranted"`
	DecisionNotes *string  `json:"decisionNotes"`
}
