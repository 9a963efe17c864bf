package services

import (
	"time"

	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/permissions"

	"github.com/doug-martin/goqu/v9"
)

func loadTraining(db *goqu.Database, trainingID int) (*models.MemberTraining, error) {
	var training models.MemberTraining
	found, err := db.From("member_training").
		Select("*").
		Where(goqu.And(
			goqu.C("member_training_id").Eq(trainingID),
			goqu.C("is_active").IsTrue(),
		)).
		ScanStruct(&training)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFound("training", trainingID)
	}
	return &training, nil
}

// ScheduleLessons adds lessons to a training. Staff only.
func ScheduleLessons(actor permissions.Actor, trainingID int, lessons []models.ScheduledLessonCreate) ([]models.ScheduledLesson, error) {
	if !permissions.CanManageMembers(actor) {
		return nil, models.NewPermissionDenied("Staff role required to schedule lessons")
	}

	training, err := loadTraining(initializers.DB, trainingID)
	if err != nil {
		return nil, err
	}
	if training.Is_Completed {
		return nil, models.NewValidation("trainingId", "training is already completed")
	}

	actorID := actorMemberID(actor, 0)
	rows := make([]models.ScheduledLesson, 0, len(lessons))
	for _, l := range lessons {
		date, err := time.Parse("2006-01-02", l.LessonDate)
		if err != nil {
			return nil, models.NewValidation("lessonDate", "lesson date must be YYYY-MM-DD")
		}
		rows = append(rows, models.ScheduledLesson{
			Member_Training_ID: trainingID,
			Lesson_Title:       l.LessonTitle,
			Lesson_Date:        date,
			Lesson_Status:      models.LessonStatusUpcoming,
			Is_Active:          true,
			Created_By:         actorID,
			Updated_By:         actorID,
		})
	}

	if len(rows) == 0 {
		return nil, models.NewValidation("lessons", "at least one lesson is required")
	}

	if _, err := initializers.DB.Insert("scheduled_lesson").Rows(rows).Executor().Exec(); err != nil {
		return nil, err
	}

	return rows, nil
}

// SetLessonStatus moves a lesson to COMPLETED or ABSENT. When the last lesson
// of a training completes, the training is marked completed in the same
// transaction.
func SetLessonStatus(actor permissions.Actor, lessonID int, to string) (*models.ScheduledLesson, error) {
	if !permissions.CanManageMembers(actor) {
		return nil, models.NewPermissionDenied("Staff role required to update lessons")
	}

	var lesson models.ScheduledLesson
	found, err := initializers.DB.From("scheduled_lesson").
		Select("*").
		Where(goqu.And(
			goqu.C("scheduled_lesson_id").Eq(lessonID),
			goqu.C("is_active").IsTrue(),
		)).
		ScanStruct(&lesson)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFound("lesson", lessonID)
	}

	if !models.CanTransitionLesson(lesson.Lesson_Status, to) {
		return nil, models.NewInvalidTransition("lesson", lesson.Lesson_Status, to)
	}

	actorID := actorMemberID(actor, 0)

	err = initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		result, err := tx.Update("scheduled_lesson").
			Set(goqu.Record{
				"lesson_status":   to,
				"updated_by":      actorID,
				"datetime_update": time.Now(),
			}).
			Where(goqu.And(
				goqu.C("scheduled_lesson_id").Eq(lessonID),
				goqu.C("lesson_status").Eq(lesson.Lesson_Status),
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
			return models.NewInvalidTransition("lesson", lesson.Lesson_Status, to)
		}

		if to != models.LessonStatusCompleted {
			return nil
		}

		// Completing the final lesson completes the training.
		var remaining int
		_, err = tx.From("scheduled_lesson").
			Select(goqu.COUNT("*")).
			Where(goqu.And(
				goqu.C("member_training_id").Eq(lesson.Member_Training_ID),
				goqu.C("is_active").IsTrue(),
				goqu.C("lesson_status").Neq(models.LessonStatusCompleted),
				goqu.C("scheduled_lesson_id").Neq(lessonID),
			)).
			Executor().ScanVal(&remaining)
		if err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}

		_, err = tx.Update("member_training").
			Set(goqu.Record{
				"is_completed":    true,
				"completed_at":    time.Now(),
				"updated_by":      actorID,
				"datetime_update": time.Now(),
			}).
			Where(goqu.C("member_training_id").Eq(lesson.Member_Training_ID)).
			Executor().Exec()
		return err
	})
	if err != nil {
		return nil, err
	}

	lesson.Lesson_Status = to
	return &lesson, nil
}

// GetTrainingProgress computes lesson-derived progress for a training.
func GetTrainingProgress(trainingID int) (*models.TrainingProgress, error) {
	training, err := loadTraining(initializers.DB, trainingID)
	if err != nil {
		return nil, err
	}

	var total int
	_, err = initializers.DB.From("scheduled_lesson").
		Select(goqu.COUNT("*")).
		Where(goqu.And(
			goqu.C("member_training_id").Eq(trainingID),
			goqu.C("is_active").IsTrue(),
		)).
		Executor().ScanVal(&total)
	if err != nil {
		return nil, err
	}

	var completed int
	_, err = initializers.DB.From("scheduled_lesson").
		Select(goqu.COUNT("*")).
		Where(goqu.And(
			goqu.C("member_training_id").Eq(trainingID),
			goqu.C("is_active").IsTrue(),
			goqu.C("lesson_status").Eq(models.LessonStatusCompleted),
		)).
		Executor().ScanVal(&completed)
	if err != nil {
		return nil, err
	}

	return &models.TrainingProgress{
		Training:           *training,
		TotalLessons:       total,
		CompletedLessons:   completed,
		ProgressPercentage: models.ProgressPercentage(completed, total),
	}, nil
}
