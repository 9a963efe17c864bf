package models

import "time"

// Interview status constants
const (
	InterviewStatusProposed      = "PROPOSED"
	InterviewStatusAccepted      = "ACCEPTED"
	InterviewStatusCounter       = "COUNTER"
	InterviewStatusConfirmed     = "CONFIRMED"
	InterviewStatusCompletedPass = "COMPLETED_PASS"
	InterviewStatusCompletedFail = "COMPLETED_FAIL"
	InterviewStatusNoShow        = "NO_SHOW"
	InterviewStatusCancelled     = "CANCELLED"
)

// ACCEPTED is a transient alias kept for older clients; accepting a proposal
// lands directly on CONFIRMED.
var interviewTransitions = map[string][]string{
	InterviewStatusProposed:      {InterviewStatusConfirmed, InterviewStatusCounter, InterviewStatusCancelled},
	InterviewStatusAccepted:      {InterviewStatusConfirmed, InterviewStatusCancelled},
	InterviewStatusCounter:       {InterviewStatusConfirmed, InterviewStatusCancelled},
	InterviewStatusConfirmed:     {InterviewStatusCompletedPass, InterviewStatusCompletedFail, InterviewStatusNoShow, InterviewStatusCancelled},
	InterviewStatusCompletedPass: {},
	InterviewStatusCompletedFail: {},
	InterviewStatusNoShow:        {},
	InterviewStatusCancelled:     {},
}

func CanTransitionInterview(from, to string) bool {
	for _, next := range interviewTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalInterviewStatus reports whether no further edges leave this status.
func IsTerminalInterviewStatus(s string) bool {
	return len(interviewTransitions[s]) == 0 && s != ""
}

type Interview struct {
	Interview_ID          int        `json:"interviewId" goqu:"skipinsert"`
	Member_Training_ID    int        `json:"memberTrainingId"`
	Member_Profile_ID     int        `json:"memberProfileId"`
	Interviewer_ID        int        `json:"interviewerId"`
	Interview_Status      string     `json:"interviewStatus"`
	Proposed_Date         time.Time  `json:"proposedDate"`
	Counter_Proposed_Date *time.Time `json:"counterProposedDate"`
	Confirmed_Date        *time.Time `json:"confirmedDate"`
	Notes                 *string    `json:"notes"`
	Reminder_Stage        int        `json:"-"`
	Is_Active             bool       `json:"isActive"`
	Created_By            int        `json:"createdBy"`
	Datetime_Create       time.Time  `json:"datetimeCreate" goqu:"skipinsert"`
	Updated_By            int        `json:"updatedBy"`
	Datetime_Update       time.Time  `json:"datetimeUpdate" goqu:"skipinsert"`
}

// FinalDate is the confirmed date when one exists, else the proposed date.
func (i Interview) FinalDate() time.Time {
	if i.Confirmed_Date != nil {
		return *i.Confirmed_Date
	}
	return i.Proposed_Date
}

// ReminderFlags exposes the derived per-window booleans for API responses.
func (i Interview) ReminderFlags() map[string]bool {
	return map[string]bool{
		"reminder5DaysSent": ReminderOffsetSent(ReminderOffsetsDefault, i.Reminder_Stage, 5),
		"reminder3DaysSent": ReminderOffsetSent(ReminderOffsetsDefault, i.Reminder_Stage, 3),
		"reminder1DaySent":  ReminderOffsetSent(ReminderOffsetsDefault, i.Reminder_Stage, 1),
		"reminderSameDay":   ReminderOffsetSent(ReminderOffsetsDefault, i.Reminder_Stage, 0),
	}
}

type InterviewSchedule struct {
	MemberProfileID int    `json:"memberProfileId"`
	InterviewerID   int    `json:"interviewerId"`
	ProposedDate    string `json:"proposedDate"`
}

type InterviewCounterPropose struct {
	CounterProposedDate string `json:"counterProposedDate"`
}

type InterviewComplete struct {
	Passed bool    `json:"passed"`
	Notes  *string `json:"notes"`
}

// InterviewStats aggregates completed interviews.
type InterviewStats struct {
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	NoShow   int     `json:"noShow"`
	PassRate float64 `json:"passRate"`
}
