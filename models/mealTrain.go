package models

import "time"

// Meal train status constants
const (
	MealTrainStatusOpen      = "OPEN"
	MealTrainStatusFull      = "FULL"
	MealTrainStatusCompleted = "COMPLETED"
	MealTrainStatusCancelled = "CANCELLED"
)

var mealTrainTransitions = map[string][]string{
	MealTrainStatusOpen:      {MealTrainStatusFull, MealTrainStatusCompleted, MealTrainStatusCancelled},
	MealTrainStatusFull:      {MealTrainStatusOpen, MealTrainStatusCompleted, MealTrainStatusCancelled},
	MealTrainStatusCompleted: {},
	MealTrainStatusCancelled: {},
}

func CanTransitionMealTrain(from, to string) bool {
	for _, next := range mealTrainTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type MealTrain struct {
	Meal_Train_ID      int       `json:"mealTrainId" goqu:"skipinsert"`
	Recipient_ID       int       `json:"recipientId"`
	Train_Status       string    `json:"trainStatus"`
	Description        string    `json:"description"`
	Slots_Total        int       `json:"slotsTotal"`
	Slots_Filled       int       `json:"slotsFilled"`
	Start_Date         time.Time `json:"startDate"`
	End_Date           time.Time `json:"endDate"`
	Is_Active          bool      `json:"isActive"`
	Created_By         int       `json:"createdBy"`
	Datetime_Create    time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Updated_By         int       `json:"updatedBy"`
	Datetime_Update    time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

type MealTrainCreate struct {
	RecipientID int    `json:"recipientId" binding:"required"`
	Description string `json:"description"`
	SlotsTotal  int    `json:"slotsTotal" binding:"required,gt=0"`
	StartDate   string `json:"startDate" binding:"required"`
	EndDate     string `json:"endDate" binding:"required"`
}
