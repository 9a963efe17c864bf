package models

import "time"

// Scheduled lesson status constants
const (
	LessonStatusUpcoming  = "UPCOMING"
	LessonStatusCompleted = "COMPLETED"
	LessonStatusAbsent    = "ABSENT"
)

var lessonTransitions = map[string][]string{
	LessonStatusUpcoming:  {LessonStatusCompleted, LessonStatusAbsent},
	LessonStatusCompleted: {},
	LessonStatusAbsent:    {LessonStatusCompleted},
}

func CanTransitionLesson(from, to string) bool {
	for _, next := range lessonTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type ScheduledLesson struct {
	Scheduled_Lesson_ID int       `json:"scheduledLessonId" goqu:"skipinsert"`
	Member_Training_ID  int       `json:"memberTrainingId"`
	Lesson_Title        string    `json:"lessonTitle"`
	Lesson_Date         time.Time `json:"lessonDate"`
	Lesson_Status       string    `json:"lessonStatus"`
	Reminder_Stage      int       `json:"-"`
	Is_Active           bool      `json:"isActive"`
	Created_By          int       `json:"createdBy"`
	Datetime_Create     time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Updated_By          int       `json:"updatedBy"`
	Datetime_Update     time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

// ReminderFlags exposes the derived per-window booleans for API responses.
func (l ScheduledLesson) ReminderFlags() map[string]bool {
	return map[string]bool{
		"reminder3DaysSent": ReminderOffsetSent(ReminderOffsetsLesson, l.Reminder_Stage, 3),
		"reminder1DaySent":  ReminderOffsetSent(ReminderOffsetsLesson, l.Reminder_Stage, 1),
		"reminderSameDay":   ReminderOffsetSent(ReminderOffsetsLesson, l.Reminder_Stage, 0),
	}
}

type ScheduledLessonCreate struct {
	LessonTitle string `json:"lessonTitle"`
	LessonDate  string `json:"lessonDate"`
}
