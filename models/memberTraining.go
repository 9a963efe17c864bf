package models

import "time"

type MemberTraining struct {
	Member_Training_ID int        `json:"memberTrainingId" goqu:"skipinsert"`
	Member_Profile_ID  int        `json:"memberProfileId"`
	Course_Name        string     `json:"courseName"`
	Is_Completed       bool       `json:"isCompleted"`
	Completed_At       *time.Time `json:"completedAt"`
	Is_Active          bool       `json:"isActive"`
	Created_By         int        `json:"createdBy"`
	Datetime_Create    time.Time  `json:"datetimeCreate" goqu:"skipinsert"`
	Updated_By         int        `json:"updatedBy"`
	Datetime_Update    time.Time  `json:"datetimeUpdate" goqu:"skipinsert"`
}

// TrainingProgress pairs a training with its lesson-derived progress.
type TrainingProgress struct {
	Training           MemberTraining `json:"training"`
	TotalLessons       int            `json:"totalLessons"`
	CompletedLessons   int            `json:"completedLessons"`
	ProgressPercentage int            `json:"progressPercentage"`
}

// ProgressPercentage rounds 100*completed/total to the nearest integer,
// returning 0 when no lessons are scheduled.
func ProgressPercentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int((float64(completed)*100/float64(total)) + 0.5)
}
