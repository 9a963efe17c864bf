package models

import "time"

// Membership status constants. A member holds exactly one status at a time.
const (
	MembershipStatusRegistered         = "REGISTERED"
	MembershipStatusFormPending        = "FORM_PENDING"
	MembershipStatusFormSubmitted      = "FORM_SUBMITTED"
	MembershipStatusInReview           = "IN_REVIEW"
	MembershipStatusInTraining         = "IN_TRAINING"
	MembershipStatusInterviewScheduled = "INTERVIEW_SCHEDULED"
	MembershipStatusActive             = "ACTIVE"
	MembershipStatusRejected           = "REJECTED"
	MembershipStatusExpired            = "EXPIRED"
)

// membershipTransitions is the closed edge table for the onboarding pipeline.
// REGISTERED -> ACTIVE is the skip-onboarding invitation fast path.
// REJECTED/EXPIRED -> FORM_PENDING is the explicit admin reactivation edge,
// not a back-edge of the pipeline itself.
var membershipTransitions = map[string][]string{
	MembershipStatusRegistered:         {MembershipStatusFormPending, MembershipStatusFormSubmitted, MembershipStatusActive, MembershipStatusExpired},
	MembershipStatusFormPending:        {MembershipStatusFormSubmitted, MembershipStatusExpired},
	MembershipStatusFormSubmitted:      {MembershipStatusInReview, MembershipStatusExpired},
	MembershipStatusInReview:           {MembershipStatusInTraining, MembershipStatusRejected, MembershipStatusFormPending, MembershipStatusExpired},
	MembershipStatusInTraining:         {MembershipStatusInterviewScheduled, MembershipStatusExpired},
	MembershipStatusInterviewScheduled: {MembershipStatusActive, MembershipStatusRejected, MembershipStatusExpired},
	MembershipStatusActive:             {},
	MembershipStatusRejected:           {MembershipStatusFormPending},
	MembershipStatusExpired:            {MembershipStatusFormPending},
}

// IsMembershipStatus reports whether s is one of the enumerated statuses.
func IsMembershipStatus(s string) bool {
	_, ok := membershipTransitions[s]
	return ok
}

// CanTransitionMembership reports whether the from -> to edge exists.
func CanTransitionMembership(from, to string) bool {
	for _, next := range membershipTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalMembershipStatus reports whether the onboarding pipeline is done
// for a member in this status.
func IsTerminalMembershipStatus(s string) bool {
	return s == MembershipStatusActive || s == MembershipStatusRejected || s == MembershipStatusExpired
}

// InProcessMembershipStatuses returns the non-terminal statuses in pipeline order.
func InProcessMembershipStatuses() []string {
	return []string{
		MembershipStatusRegistered,
		MembershipStatusFormPending,
		MembershipStatusFormSubmitted,
		MembershipStatusInReview,
		MembershipStatusInTraining,
		MembershipStatusInterviewScheduled,
	}
}

type MemberProfile struct {
	Member_Profile_ID   int        `json:"memberProfileId" goqu:"skipinsert"`
	Username            string     `json:"username"`
	Password            string     `json:"-"`
	Email               string     `json:"email"`
	First_Name          string     `json:"firstName"`
	Last_Name           string     `json:"lastName"`
	Phone_Number        *string    `json:"phoneNumber"`
	Church_Role         string     `json:"churchRole"`
	Membership_Status   string     `json:"membershipStatus"`
	Registration_Date   time.Time  `json:"registrationDate"`
	Form_Deadline       *time.Time `json:"formDeadline"`
	Became_Active_At    *time.Time `json:"becameActiveAt"`
	Two_Factor_Enabled  bool       `json:"twoFactorEnabled" goqu:"skipinsert"`
	Two_Factor_Deadline *time.Time `json:"twoFactorDeadline"`
	Admin               bool       `json:"admin" goqu:"skipinsert"`
	Is_Active           bool       `json:"isActive"`
	Created_By          int        `json:"createdBy"`
	Datetime_Create     time.Time  `json:"datetimeCreate" goqu:"skipinsert"`
	Updated_By          int        `json:"updatedBy"`
	Datetime_Update     time.Time  `json:"datetimeUpdate" goqu:"skipinsert"`
}

type MemberSignup struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	PhoneNumber    string `json:"phoneNumber"`
	InvitationCode string `json:"invitationCode"`
}

type MemberUpdate struct {
	Member_Profile_ID int     `json:"memberProfileId" goqu:"skipinsert"`
	Username          *string `json:"username"`
	First_Name        *string `json:"firstName"`
	Last_Name         *string `json:"lastName"`
	Email             *string `json:"email"`
	Phone_Number      *string `json:"phoneNumber"`
}

type MemberChangePassword struct {
	Old_Password string `json:"oldPassword"`
	New_Password string `json:"newPassword"`
}

type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PipelineCounts is the read-only aggregation over the onboarding pipeline.
type PipelineCounts struct {
	ByStatus          map[string]int `json:"byStatus"`
	TotalInProcess    int            `json:"totalInProcess"`
	SuccessRate       float64        `json:"successRate"`
	AvgCompletionDays float64        `json:"avgCompletionDays"`
}
