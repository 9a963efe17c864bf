package services

import (
	"fmt"
	"time"

	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/permissions"

	"github.com/doug-martin/goqu/v9"
)

func loadInterview(db *goqu.Database, interviewID int) (*models.Interview, error) {
	var interview models.Interview
	found, err := db.From("interview").
		Select("*").
		Where(goqu.And(
			goqu.C("interview_id").Eq(interviewID),
			goqu.C("is_active").IsTrue(),
		)).
		ScanStruct(&interview)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFound("interview", interviewID)
	}
	return &interview, nil
}

// transitionInterview applies a validated status update guarded by the
// current status.
func transitionInterview(tx *goqu.TxDatabase, interview *models.Interview, to string, extra goqu.Record, actorID int) error {
	if !models.CanTransitionInterview(interview.Interview_Status, to) {
		return models.NewInvalidTransition("interview", interview.Interview_Status, to)
	}

	record := goqu.Record{
		"interview_status": to,
		"updated_by":       actorID,
		"datetime_update":  time.Now(),
	}
	for k, v := range extra {
		record[k] = v
	}

	result, err := tx.Update("interview").
		Set(record).
		Where(goqu.And(
			goqu.C("interview_id").Eq(interview.Interview_ID),
			goqu.C("interview_status").Eq(interview.Interview_Status),
		)).
		Executor().Exec()
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.NewInvalidTransition("interview", interview.Interview_Status, to)
	}

	interview.Interview_Status = to
	return nil
}

// ScheduleInterview proposes a membership interview for a member whose
// training is complete, and moves the member to INTERVIEW_SCHEDULED.
func ScheduleInterview(actor permissions.Actor, schedule models.InterviewSchedule) (*models.Interview, error) {
	if !permissions.CanManageMembers(actor) {
		return nil, models.NewPermissionDenied("Staff role required to schedule interviews")
	}

	proposedDate, err := time.Parse("2006-01-02", schedule.ProposedDate)
	if err != nil {
		return nil, models.NewValidation("proposedDate", "proposed date must be YYYY-MM-DD")
	}

	member, err := loadMember(initializers.DB, schedule.MemberProfileID)
	if err != nil {
		return nil, err
	}

	var training models.MemberTraining
	found, err := initializers.DB.From("member_training").
		Select("*").
		Where(goqu.And(
			goqu.C("member_profile_id").Eq(schedule.MemberProfileID),
			goqu.C("is_active").IsTrue(),
		)).
		Order(goqu.C("datetime_create").Desc()).
		ScanStruct(&training)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFound("training", schedule.MemberProfileID)
	}
	if !training.Is_Completed {
		return nil, models.NewValidation("memberProfileId", "member has not completed training")
	}

	actorID := actorMemberID(actor, 0)
	interview := models.Interview{
		Member_Training_ID: training.Member_Training_ID,
		Member_Profile_ID:  schedule.MemberProfileID,
		Interviewer_ID:     schedule.InterviewerID,
		Interview_Status:   models.InterviewStatusProposed,
		Proposed_Date:      proposedDate,
		Is_Active:          true,
		Created_By:         actorID,
		Updated_By:         actorID,
	}

	err = initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		if err := transitionMember(tx, member, models.MembershipStatusInterviewScheduled, goqu.Record{}, actorID); err != nil {
			return err
		}

		var interviewID int
		_, err := tx.Insert("interview").Rows(interview).Returning("interview_id").Executor().ScanVal(&interviewID)
		if err != nil {
			return err
		}
		interview.Interview_ID = interviewID
		return nil
	})
	if err != nil {
		return nil, err
	}

	link := interviewLink(interview.Interview_ID)
	CreateNotification(schedule.MemberProfileID, models.NotificationTypeInterviewProposed,
		"Interview proposed",
		fmt.Sprintf("A membership interview has been proposed for %s. Please accept or propose another date.", proposedDate.Format("January 2, 2006")),
		&link, actorID)

	return &interview, nil
}

// AcceptInterview lets the interviewed member accept the proposed date.
func AcceptInterview(actor permissions.Actor, interviewID int) (*models.Interview, error) {
	interview, err := loadInterview(initializers.DB, interviewID)
	if err != nil {
		return nil, err
	}
	if !permissions.CanAccessOwned(actor, memberOwner{interview.Member_Profile_ID}) {
		return nil, models.NewPermissionDenied("You don't have permission to respond to this interview")
	}

	actorID := actorMemberID(actor, interview.Member_Profile_ID)
	err = initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		return transitionInterview(tx, interview, models.InterviewStatusConfirmed, goqu.Record{
			"confirmed_date": interview.Proposed_Date,
		}, actorID)
	})
	if err != nil {
		return nil, err
	}
	confirmed := interview.Proposed_Date
	interview.Confirmed_Date = &confirmed
	return interview, nil
}

// CounterProposeInterview lets the member answer a proposal with a new date.
func CounterProposeInterview(actor permissions.Actor, interviewID int, counter models.InterviewCounterPropose) (*models.Interview, error) {
	interview, err := loadInterview(initializers.DB, interviewID)
	if err != nil {
		return nil, err
	}
	if !permissions.CanAccessOwned(actor, memberOwner{interview.Member_Profile_ID}) {
		return nil, models.NewPermissionDenied("You don't have permission to respond to this interview")
	}

	counterDate, err := time.Parse("2006-01-02", counter.CounterProposedDate)
	if err != nil {
		return nil, models.NewValidation("counterProposedDate", "counter-proposed date must be YYYY-MM-DD")
	}

	actorID := actorMemberID(actor, interview.Member_Profile_ID)
	err = initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		return transitionInterview(tx, interview, models.InterviewStatusCounter, goqu.Record{
			"counter_proposed_date": counterDate,
		}, actorID)
	})
	if err != nil {
		return nil, err
	}
	interview.Counter_Proposed_Date = &counterDate
	return interview, nil
}

// ConfirmInterview lets staff confirm a member's counter-proposed date.
func ConfirmInterview(actor permissions.Actor, interviewID int) (*models.Interview, error) {
	if !permissions.CanManageMembers(actor) {
		return nil, models.NewPermissionDenied("Staff role required to confirm interviews")
	}

	interview, err := loadInterview(initializers.DB, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Counter_Proposed_Date == nil {
		return nil, models.NewValidation("interviewId", "interview has no counter-proposed date to confirm")
	}

	actorID := actorMemberID(actor, 0)
	err = initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		return transitionInterview(tx, interview, models.InterviewStatusConfirmed, goqu.Record{
			"confirmed_date": *interview.Counter_Proposed_Date,
		}, actorID)
	})
	if err != nil {
		return nil, err
	}
	interview.Confirmed_Date = interview.Counter_Proposed_Date
	return interview, nil
}

// CancelInterview cancels a not-yet-completed interview.
func CancelInterview(actor permissions.Actor, interviewID int) (*models.Interview, error) {
	if !permissions.CanManageMembers(actor) {
		return nil, models.NewPermissionDenied("Staff role required to cancel interviews")
	}

	interview, err := loadInterview(initializers.DB, interviewID)
	if err != nil {
		return nil, err
	}

	actorID := actorMemberID(actor, 0)
	err = initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		return transitionInterview(tx, interview, models.InterviewStatusCancelled, goqu.Record{}, actorID)
	})
	if err != nil {
		return nil, err
	}
	return interview, nil
}

// CompleteInterview records the interview outcome. A pass advances the member
// to ACTIVE in the same transaction; the membership edge and the interview
// edge land together or not at all.
func CompleteInterview(actor permissions.Actor, interviewID int, outcome models.InterviewComplete) (*models.Interview, error) {
	if !permissions.CanManageMembers(actor) {
		return nil, models.NewPermissionDenied("Staff role required to complete interviews")
	}

	interview, err := loadInterview(initializers.DB, interviewID)
	if err != nil {
		return nil, err
	}

	member, err := loadMember(initializers.DB, interview.Member_Profile_ID)
	if err != nil {
		return nil, err
	}

	to := models.InterviewStatusCompletedFail
	if outcome.Passed {
		to = models.InterviewStatusCompletedPass
	}

	actorID := actorMemberID(actor, 0)
	err = initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		extra := goqu.Record{}
		if outcome.Notes != nil {
			extra["notes"] = *outcome.Notes
		}
		if err := transitionInterview(tx, interview, to, extra, actorID); err != nil {
			return err
		}

		if outcome.Passed {
			return transitionMember(tx, member, models.MembershipStatusActive, goqu.Record{
				"became_active_at": time.Now(),
				"form_deadline":    nil,
			}, actorID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	message := "Congratulations! Your membership interview was successful and you are now an active member."
	if !outcome.Passed {
		message = "Your membership interview has been completed. The team will follow up with next steps."
	}
	link := interviewLink(interviewID)
	CreateNotification(interview.Member_Profile_ID, models.NotificationTypeInterviewResult,
		"Interview completed", message, &link, actorID)

	return interview, nil
}

// RecordNoShow marks a confirmed interview as missed.
func RecordNoShow(actor permissions.Actor, interviewID int) (*models.Interview, error) {
	if !permissions.CanManageMembers(actor) {
		return nil, models.NewPermissionDenied("Staff role required to update interviews")
	}

	interview, err := loadInterview(initializers.DB, interviewID)
	if err != nil {
		return nil, err
	}

	actorID := actorMemberID(actor, 0)
	err = initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		return transitionInterview(tx, interview, models.InterviewStatusNoShow, goqu.Record{}, actorID)
	})
	if err != nil {
		return nil, err
	}
	return interview, nil
}

// GetInterviewStats aggregates completed interviews into a pass rate.
func GetInterviewStats() (*models.InterviewStats, error) {
	type statusCount struct {
		Interview_Status string `db:"interview_status"`
		Cnt              int    `db:"cnt"`
	}

	var rows []statusCount
	err := initializers.DB.From("interview").
		Select(goqu.C("interview_status"), goqu.COUNT("*").As("cnt")).
		Where(goqu.And(
			goqu.C("is_active").IsTrue(),
			goqu.C("interview_status").In(
				models.InterviewStatusCompletedPass,
				models.InterviewStatusCompletedFail,
				models.InterviewStatusNoShow,
			),
		)).
		GroupBy(goqu.C("interview_status")).
		ScanStructs(&rows)
	if err != nil {
		return nil, err
	}

	stats := &models.InterviewStats{}
	for _, row := range rows {
		switch row.Interview_Status {
		case models.InterviewStatusCompletedPass:
			stats.Passed = row.Cnt
		case models.InterviewStatusCompletedFail:
			stats.Failed = row.Cnt
		case models.InterviewStatusNoShow:
			stats.NoShow = row.Cnt
		}
	}

	total := stats.Passed + stats.Failed + stats.NoShow
	if total > 0 {
		stats.PassRate = float64(stats.Passed) / float64(total)
	}

	return stats, nil
}

func interviewLink(interviewID int) string {
	return fmt.Sprintf("/interviews/%d", interviewID)
}
