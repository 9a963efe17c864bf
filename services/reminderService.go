package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/robfig/cron/v3"
)

// systemActorID is the audit identity for scheduler-driven writes.
const systemActorID = 1

var reminderCron *cron.Cron

// StartReminderScheduler registers the daily sweep. Cadence comes from
// REMINDER_CRON (default 07:00 every day). The sweep is idempotent, so an
// extra run only costs queries.
func StartReminderScheduler() {
	spec := os.Getenv("REMINDER_CRON")
	if spec == "" {
		spec = "0 7 * * *"
	}

	reminderCron = cron.New()
	_, err := reminderCron.AddFunc(spec, func() {
		RunDailySweep(time.Now())
	})
	if err != nil {
		log.Printf("Failed to register reminder sweep (cron %q): %v", spec, err)
		return
	}

	reminderCron.Start()
	log.Printf("Reminder scheduler started (cron %q)", spec)
}

// StopReminderScheduler stops the cron loop.
func StopReminderScheduler() {
	if reminderCron != nil {
		reminderCron.Stop()
	}
}

// RunDailySweep runs every time-driven check: membership expiry, lesson,
// interview, volunteer and pastoral-care reminders, and the overdue-care
// escalation. A failure in one section is logged and the rest still run.
func RunDailySweep(now time.Time) {
	if expired, err := ExpireOverdueMembers(now); err != nil {
		log.Printf("Membership expiry check failed: %v", err)
	} else if expired > 0 {
		log.Printf("Expired %d overdue membership applications", expired)
	}

	sent := 0
	sent += sweepLessonReminders(now)
	sent += sweepInterviewReminders(now)
	sent += sweepVolunteerReminders(now)
	sent += sweepPastoralCareReminders(now)

	if sent > 0 {
		log.Printf("Reminder sweep sent %d notifications", sent)
	}

	if err := escalateOverduePastoralCare(now); err != nil {
		log.Printf("Pastoral care escalation failed: %v", err)
	}
}

// daysUntil counts whole calendar days from now's date to target's date.
func daysUntil(now, target time.Time) int {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return int(targetDay.Sub(nowDay).Hours() / 24)
}

// claimReminderStage is the idempotence commit point: it advances the
// entity's reminder stage only if nothing else already has. A notification is
// emitted only when the claim wins, so two concurrent sweeps cannot
// double-send.
func claimReminderStage(table, idColumn string, id, currentStage, nextStage int) (bool, error) {
	result, err := initializers.DB.Update(table).
		Set(goqu.Record{"reminder_stage": nextStage}).
		Where(goqu.And(
			goqu.C(idColumn).Eq(id),
			goqu.C("reminder_stage").Eq(currentStage),
		)).
		Executor().Exec()
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func sweepLessonReminders(now time.Time) int {
	type lessonRow struct {
		Scheduled_Lesson_ID int       `db:"scheduled_lesson_id"`
		Member_Profile_ID   int       `db:"member_profile_id"`
		Lesson_Title        string    `db:"lesson_title"`
		Lesson_Date         time.Time `db:"lesson_date"`
		Reminder_Stage      int       `db:"reminder_stage"`
	}

	var rows []lessonRow
	err := initializers.DB.From("scheduled_lesson").
		Select(
			goqu.I("scheduled_lesson.scheduled_lesson_id"),
			goqu.I("member_training.member_profile_id"),
			goqu.I("scheduled_lesson.lesson_title"),
			goqu.I("scheduled_lesson.lesson_date"),
			goqu.I("scheduled_lesson.reminder_stage"),
		).
		InnerJoin(
			goqu.T("member_training"),
			goqu.On(goqu.Ex{"scheduled_lesson.member_training_id": goqu.I("member_training.member_training_id")}),
		).
		Where(goqu.And(
			goqu.I("scheduled_lesson.is_active").IsTrue(),
			goqu.I("scheduled_lesson.lesson_status").Eq(models.LessonStatusUpcoming),
			goqu.I("scheduled_lesson.reminder_stage").Lt(len(models.ReminderOffsetsLesson)),
		)).
		ScanStructs(&rows)
	if err != nil {
		log.Printf("Lesson reminder query failed: %v", err)
		return 0
	}

	sent := 0
	for _, row := range rows {
		next, due := models.NextReminderStage(models.ReminderOffsetsLesson, row.Reminder_Stage, daysUntil(now, row.Lesson_Date))
		if !due {
			continue
		}

		claimed, err := claimReminderStage("scheduled_lesson", "scheduled_lesson_id", row.Scheduled_Lesson_ID, row.Reminder_Stage, next)
		if err != nil {
			log.Printf("Lesson %d reminder claim failed: %v", row.Scheduled_Lesson_ID, err)
			continue
		}
		if !claimed {
			continue
		}

		message := fmt.Sprintf("Your lesson %q is on %s.", row.Lesson_Title, row.Lesson_Date.Format("January 2, 2006"))
		CreateNotification(row.Member_Profile_ID, models.NotificationTypeLessonReminder,
			"Lesson reminder", message, nil, systemActorID)
		sent++
	}
	return sent
}

func sweepInterviewReminders(now time.Time) int {
	var interviews []models.Interview
	err := initializers.DB.From("interview").
		Select("*").
		Where(goqu.And(
			goqu.C("is_active").IsTrue(),
			goqu.C("interview_status").Eq(models.InterviewStatusConfirmed),
			goqu.C("reminder_stage").Lt(len(models.ReminderOffsetsDefault)),
		)).
		ScanStructs(&interviews)
	if err != nil {
		log.Printf("Interview reminder query failed: %v", err)
		return 0
	}

	sent := 0
	for _, interview := range interviews {
		next, due := models.NextReminderStage(models.ReminderOffsetsDefault, interview.Reminder_Stage, daysUntil(now, interview.FinalDate()))
		if !due {
			continue
		}

		claimed, err := claimReminderStage("interview", "interview_id", interview.Interview_ID, interview.Reminder_Stage, next)
		if err != nil {
			log.Printf("Interview %d reminder claim failed: %v", interview.Interview_ID, err)
			continue
		}
		if !claimed {
			continue
		}

		link := interviewLink(interview.Interview_ID)
		message := fmt.Sprintf("Your membership interview is on %s.", interview.FinalDate().Format("January 2, 2006"))
		CreateNotification(interview.Member_Profile_ID, models.NotificationTypeInterviewReminder,
			"Interview reminder", message, &link, systemActorID)
		sent++
	}
	return sent
}

func sweepVolunteerReminders(now time.Time) int {
	var schedules []models.VolunteerSchedule
	err := initializers.DB.From("volunteer_schedule").
		Select("*").
		Where(goqu.And(
			goqu.C("is_active").IsTrue(),
			goqu.C("schedule_status").Eq(models.VolunteerScheduleStatusScheduled),
			goqu.C("reminder_stage").Lt(len(models.ReminderOffsetsDefault)),
		)).
		ScanStructs(&schedules)
	if err != nil {
		log.Printf("Volunteer reminder query failed: %v", err)
		return 0
	}

	sent := 0
	for _, schedule := range schedules {
		next, due := models.NextReminderStage(models.ReminderOffsetsDefault, schedule.Reminder_Stage, daysUntil(now, schedule.Serve_Date))
		if !due {
			continue
		}

		claimed, err := claimReminderStage("volunteer_schedule", "volunteer_schedule_id", schedule.Volunteer_Schedule_ID, schedule.Reminder_Stage, next)
		if err != nil {
			log.Printf("Volunteer schedule %d reminder claim failed: %v", schedule.Volunteer_Schedule_ID, err)
			continue
		}
		if !claimed {
			continue
		}

		message := fmt.Sprintf("You are serving with %s on %s.", schedule.Ministry, schedule.Serve_Date.Format("January 2, 2006"))
		CreateNotification(schedule.Member_Profile_ID, models.NotificationTypeVolunteerReminder,
			"Serving reminder", message, nil, systemActorID)
		sent++
	}
	return sent
}

func sweepPastoralCareReminders(now time.Time) int {
	var cares []models.PastoralCare
	err := initializers.DB.From("pastoral_care").
		Select("*").
		Where(goqu.And(
			goqu.C("is_active").IsTrue(),
			goqu.C("care_status").In(models.PastoralCareStatusOpen, models.PastoralCareStatusFollowUp),
			goqu.C("follow_up_date").IsNotNull(),
			goqu.C("reminder_stage").Lt(len(models.ReminderOffsetsDefault)),
		)).
		ScanStructs(&cares)
	if err != nil {
		log.Printf("Pastoral care reminder query failed: %v", err)
		return 0
	}

	sent := 0
	for _, care := range cares {
		if care.Follow_Up_Date == nil || care.Assigned_To == nil {
			continue
		}

		next, due := models.NextReminderStage(models.ReminderOffsetsDefault, care.Reminder_Stage, daysUntil(now, *care.Follow_Up_Date))
		if !due {
			continue
		}

		claimed, err := claimReminderStage("pastoral_care", "pastoral_care_id", care.Pastoral_Care_ID, care.Reminder_Stage, next)
		if err != nil {
			log.Printf("Pastoral care %d reminder claim failed: %v", care.Pastoral_Care_ID, err)
			continue
		}
		if !claimed {
			continue
		}

		message := fmt.Sprintf("Follow-up for %q is due on %s.", care.Subject, care.Follow_Up_Date.Format("January 2, 2006"))
		CreateNotification(*care.Assigned_To, models.NotificationTypeCareFollowUp,
			"Pastoral care follow-up", message, nil, systemActorID)
		sent++
	}
	return sent
}

// escalateOverduePastoralCare broadcasts overdue follow-ups to every staff
// member rather than the single assignee.
func escalateOverduePastoralCare(now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var overdue []models.PastoralCare
	err := initializers.DB.From("pastoral_care").
		Select("*").
		Where(goqu.And(
			goqu.C("is_active").IsTrue(),
			goqu.C("care_status").In(models.PastoralCareStatusOpen, models.PastoralCareStatusFollowUp),
			goqu.C("follow_up_date").IsNotNull(),
			goqu.C("follow_up_date").Lt(today),
		)).
		ScanStructs(&overdue)
	if err != nil {
		return err
	}

	for _, care := range overdue {
		message := fmt.Sprintf("Pastoral care %q has an overdue follow-up (%s).",
			care.Subject, care.Follow_Up_Date.Format("January 2, 2006"))
		if err := BroadcastToStaff(models.NotificationTypeCareEscalation,
			"Overdue pastoral care", message, nil, systemActorID); err != nil {
			log.Printf("Escalation broadcast failed for pastoral care %d: %v", care.Pastoral_Care_ID, err)
		}
	}

	return nil
}
