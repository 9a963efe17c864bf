package services

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/permissions"

	"github.com/doug-martin/goqu/v9"
)

// formDeadlineDays is how long a registered member has to submit their
// membership form before the pipeline expires them.
func formDeadlineDays() int {
	if v := os.Getenv("FORM_DEADLINE_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			return days
		}
	}
	return 30
}

func loadMember(db *goqu.Database, memberID int) (*models.MemberProfile, error) {
	var member models.MemberProfile
	found, err := db.From("member_profile").
		Select("*").
		Where(goqu.And(
			goqu.C("member_profile_id").Eq(memberID),
			goqu.C("is_active").IsTrue(),
		)).
		ScanStruct(&member)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFound("member", memberID)
	}
	return &member, nil
}

// transitionMember validates the edge and applies the status update plus any
// extra column changes in one statement, guarded by the current status so a
// concurrent transition loses cleanly instead of double-applying.
func transitionMember(tx *goqu.TxDatabase, member *models.MemberProfile, to string, extra goqu.Record, actorID int) error {
	if !models.CanTransitionMembership(member.Membership_Status, to) {
		return models.NewInvalidTransition("member", member.Membership_Status, to)
	}

	record := goqu.Record{
		"membership_status": to,
		"updated_by":        actorID,
		"datetime_update":   time.Now(),
	}
	for k, v := range extra {
		record[k] = v
	}

	result, err := tx.Update("member_profile").
		Set(record).
		Where(goqu.And(
			goqu.C("member_profile_id").Eq(member.Member_Profile_ID),
			goqu.C("membership_status").Eq(member.Membership_Status),
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
		return models.NewInvalidTransition("member", member.Membership_Status, to)
	}

	member.Membership_Status = to
	return nil
}

// CreateMember registers a member. With a skip-onboarding invitation the
// member enters ACTIVE directly; otherwise they start in REGISTERED with a
// form deadline.
func CreateMember(signup models.MemberSignup, passwordHash string) (*models.MemberProfile, error) {
	now := time.Now()

	role := string(permissions.RoleMember)
	skipOnboarding := false

	if signup.InvitationCode != "" {
		var invitation models.InvitationCode
		found, err := initializers.DB.From("invitation_code").
			Select("*").
			Where(goqu.And(
				goqu.C("code").Eq(signup.InvitationCode),
				goqu.C("is_active").IsTrue(),
				goqu.C("datetime_expires").Gt(now),
			)).
			ScanStruct(&invitation)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, models.NewValidation("invitationCode", "invalid or expired invitation code")
		}
		if permissions.IsValidRole(permissions.Role(invitation.Preset_Role)) {
			role = invitation.Preset_Role
		}
		skipOnboarding = invitation.Skip_Onboarding
	}

	status := models.MembershipStatusRegistered
	var deadline *time.Time
	var becameActiveAt *time.Time
	if skipOnboarding {
		status = models.MembershipStatusActive
		becameActiveAt = &now
	} else {
		d := now.AddDate(0, 0, formDeadlineDays())
		deadline = &d
	}

	var phone *string
	if signup.PhoneNumber != "" {
		phone = &signup.PhoneNumber
	}

	member := models.MemberProfile{
		Username:          signup.Username,
		Password:          passwordHash,
		Email:             signup.Email,
		First_Name:        signup.FirstName,
		Last_Name:         signup.LastName,
		Phone_Number:      phone,
		Church_Role:       role,
		Membership_Status: status,
		Registration_Date: now,
		Form_Deadline:     deadline,
		Became_Active_At:  becameActiveAt,
		Is_Active:         true,
		Created_By:        1,
		Updated_By:        1,
	}

	insert := initializers.DB.Insert("member_profile").Rows(member).Returning("member_profile_id")
	var memberID int
	if _, err := insert.Executor().ScanVal(&memberID); err != nil {
		return nil, err
	}
	member.Member_Profile_ID = memberID

	return &member, nil
}

// SubmitForm records the membership form and advances the member to
// FORM_SUBMITTED. Only the member themselves (or staff) may submit.
func SubmitForm(actor permissions.Actor, memberID int, form models.MembershipFormSubmit) (*models.MemberProfile, error) {
	member, err := loadMember(initializers.DB, memberID)
	if err != nil {
		return nil, err
	}

	if !permissions.CanAccessOwned(actor, memberOwner{memberID}) {
		return nil, models.NewPermissionDenied("You don't have permission to submit this member's form")
	}

	actorID := actorMemberID(actor, memberID)

	err = initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		if err := transitionMember(tx, member, models.MembershipStatusFormSubmitted, goqu.Record{
			"form_deadline": nil,
		}, actorID); err != nil {
			return err
		}

		row := models.MembershipForm{
			Member_Profile_ID: memberID,
			Testimony:         form.Testimony,
			Previous_Church:   form.PreviousChurch,
			Ministry_Interest: form.MinistryInterest,
			Is_Active:         true,
			Created_By:        actorID,
			Updated_By:        actorID,
		}
		_, err := tx.Insert("membership_form").Rows(row).Executor().Exec()
		return err
	})
	if err != nil {
		return nil, err
	}
	member.Form_Deadline = nil

	CreateNotification(memberID, models.NotificationTypeFormReceived,
		"Form received", "Your membership form has been received and is awaiting review.", nil, actorID)

	return member, nil
}

// StartReview moves a submitted form into review.
func StartReview(actor permissions.Actor, memberID int) (*models.MemberProfile, error) {
	if !permissions.CanManageMembers(actor) {
		return nil, models.NewPermissionDenied("Staff role required to review members")
	}

	member, err := loadMember(initializers.DB, memberID)
	if err != nil {
		return nil, err
	}

	actorID := actorMemberID(actor, 0)
	err = initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		return transitionMember(tx, member, models.MembershipStatusInReview, goqu.Record{}, actorID)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// DecideReview applies an admin review decision. A member still sitting in
// FORM_SUBMITTED passes through IN_REVIEW on the way, each edge validated.
func DecideReview(actor permissions.Actor, memberID int, decision models.ReviewDecision) (*models.MemberProfile, error) {
	if !permissions.CanManageMembers(actor) {
		return nil, models.NewPermissionDenied("Staff role required to review members")
	}

	member, err := loadMember(initializers.DB, memberID)
	if err != nil {
		return nil, err
	}

	actorID := actorMemberID(actor, 0)

	err = initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		if member.Membership_Status == models.MembershipStatusFormSubmitted {
			if err := transitionMember(tx, member, models.MembershipStatusInReview, goqu.Record{}, actorID); err != nil {
				return err
			}
		}

		switch decision.Action {
		case "approve":
			if decision.CourseName == nil || *decision.CourseName == "" {
				return models.NewValidation("courseName", "a training course is required to approve a member")
			}
			if err := transitionMember(tx, member, models.MembershipStatusInTraining, goqu.Record{}, actorID); err != nil {
				return err
			}
			training := models.MemberTraining{
				Member_Profile_ID: memberID,
				Course_Name:       *decision.CourseName,
				Is_Active:         true,
				Created_By:        actorID,
				Updated_By:        actorID,
			}
			_, err := tx.Insert("member_training").Rows(training).Executor().Exec()
			return err

		case "reject":
			return transitionMember(tx, member, models.MembershipStatusRejected, goqu.Record{
				"form_deadline": nil,
			}, actorID)

		case "request_changes":
			return transitionMember(tx, member, models.MembershipStatusFormPending, goqu.Record{
				"form_deadline": time.Now().AddDate(0, 0, formDeadlineDays()),
			}, actorID)

		default:
			return models.NewValidation("action", "unknown review action")
		}
	})
	if err != nil {
		return nil, err
	}

	notifyReviewDecision(member, decision, actorID)

	return member, nil
}

// notifyReviewDecision emits the best-effort notification and email for a
// review decision. Failures never unwind the decision itself.
func notifyReviewDecision(member *models.MemberProfile, decision models.ReviewDecision, actorID int) {
	var title, message string
	switch decision.Action {
	case "approve":
		title = "Membership approved"
		message = "Your membership form was approved. Your training course is ready for you."
	case "reject":
		title = "Membership decision"
		message = "Your membership application was not approved at this time."
	case "request_changes":
		title = "Changes requested"
		message = "Please update and resubmit your membership form."
	}

	reason := ""
	if decision.Reason != nil {
		reason = *decision.Reason
		message = message + " " + reason
	}

	CreateNotification(member.Member_Profile_ID, models.NotificationTypeReviewDecision, title, message, nil, actorID)

	if svc := GetEmailService(); svc != nil {
		if err := svc.SendReviewDecisionEmail(member.Email, member.First_Name, title, reason); err != nil {
			log.Printf("Review decision email failed for member %d: %v", member.Member_Profile_ID, err)
		}
	}
}

// ReactivateMember gives a rejected or expired member a fresh FORM_PENDING
// start. This is the explicit admin reactivation edge.
func ReactivateMember(actor permissions.Actor, memberID int) (*models.MemberProfile, error) {
	if !permissions.CanManageMembers(actor) {
		return nil, models.NewPermissionDenied("Staff role required to reactivate members")
	}

	member, err := loadMember(initializers.DB, memberID)
	if err != nil {
		return nil, err
	}

	actorID := actorMemberID(actor, 0)
	err = initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		return transitionMember(tx, member, models.MembershipStatusFormPending, goqu.Record{
			"form_deadline": time.Now().AddDate(0, 0, formDeadlineDays()),
		}, actorID)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// ExpireOverdueMembers expires every in-process member whose form deadline
// has lapsed. Returns the number of members expired. Safe to run repeatedly:
// expired members leave the in-process set and are not matched again.
func ExpireOverdueMembers(now time.Time) (int, error) {
	var expiredIDs []int
	err := initializers.DB.Update("member_profile").
		Set(goqu.Record{
			"membership_status": models.MembershipStatusExpired,
			"form_deadline":     nil,
			"datetime_update":   now,
		}).
		Where(goqu.And(
			goqu.C("is_active").IsTrue(),
			goqu.C("membership_status").In(models.InProcessMembershipStatuses()),
			goqu.C("form_deadline").IsNotNull(),
			goqu.C("form_deadline").Lt(now),
		)).
		Returning("member_profile_id").
		Executor().ScanVals(&expiredIDs)
	if err != nil {
		return 0, err
	}

	for _, id := range expiredIDs {
		CreateNotification(id, models.NotificationTypeMembershipExpired,
			"Membership expired",
			"Your membership application expired because the form was not submitted in time. Contact the church office to restart.",
			nil, 1)
	}

	return len(expiredIDs), nil
}

// GetPipelineCounts aggregates the onboarding pipeline.
func GetPipelineCounts() (*models.PipelineCounts, error) {
	type statusCount struct {
		Membership_Status string `db:"membership_status"`
		Cnt               int    `db:"cnt"`
	}

	var rows []statusCount
	err := initializers.DB.From("member_profile").
		Select(goqu.C("membership_status"), goqu.COUNT("*").As("cnt")).
		Where(goqu.C("is_active").IsTrue()).
		GroupBy(goqu.C("membership_status")).
		ScanStructs(&rows)
	if err != nil {
		return nil, err
	}

	counts := &models.PipelineCounts{ByStatus: make(map[string]int)}
	for _, row := range rows {
		counts.ByStatus[row.Membership_Status] = row.Cnt
	}
	for _, status := range models.InProcessMembershipStatuses() {
		counts.TotalInProcess += counts.ByStatus[status]
	}

	var completed int
	_, err = initializers.DB.From("member_profile").
		Select(goqu.COUNT("*")).
		Where(goqu.And(
			goqu.C("is_active").IsTrue(),
			goqu.C("membership_status").Eq(models.MembershipStatusActive),
			goqu.C("became_active_at").IsNotNull(),
		)).
		Executor().ScanVal(&completed)
	if err != nil {
		return nil, err
	}

	denominator := counts.ByStatus[models.MembershipStatusActive] +
		counts.ByStatus[models.MembershipStatusRejected] +
		counts.ByStatus[models.MembershipStatusExpired]
	if denominator > 0 {
		counts.SuccessRate = float64(completed) / float64(denominator) * 100
	}

	var avgDays *float64
	_, err = initializers.DB.From("member_profile").
		Select(goqu.L("AVG(EXTRACT(EPOCH FROM (became_active_at - registration_date)) / 86400)")).
		Where(goqu.And(
			goqu.C("is_active").IsTrue(),
			goqu.C("became_active_at").IsNotNull(),
		)).
		Executor().ScanVal(&avgDays)
	if err != nil {
		return nil, err
	}
	if avgDays != nil {
		counts.AvgCompletionDays = *avgDays
	}

	return counts, nil
}

// memberOwner adapts a bare member ID to the permission ownership interface.
type memberOwner struct{ id int }

func (o memberOwner) OwnerMemberID() int { return o.id }

// actorMemberID resolves the acting member's ID for audit columns, falling
// back to the given default when the actor has no member profile.
func actorMemberID(actor permissions.Actor, fallback int) int {
	switch v := actor.(type) {
	case permissions.MemberActor:
		return v.MemberID
	case permissions.PlainUser:
		return v.UserID
	default:
		return fallback
	}
}
