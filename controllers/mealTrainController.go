package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/services"
	"github.com/doug-martin/goqu/v9"
)

// CreateMealTrain opens a meal train for a recipient household.
func CreateMealTrain(c *gin.Context) {
	member := currentMember(c)

	var create models.MealTrainCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", create.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, expected YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse("2006-01-02", create.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date, expected YYYY-MM-DD"})
		return
	}
	if endDate.Before(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must not be before start date"})
		return
	}

	train := models.MealTrain{
		Recipient_ID: create.RecipientID,
		Train_Status: models.MealTrainStatusOpen,
		Description:  create.Description,
		Slots_Total:  create.SlotsTotal,
		Slots_Filled: 0,
		Start_Date:   startDate,
		End_Date:     endDate,
		Is_Active:    true,
		Created_By:   member.Member_Profile_ID,
		Updated_By:   member.Member_Profile_ID,
	}

	insert := initializers.DB.Insert("meal_train").Rows(train).Returning("meal_train_id")

	var trainID int
	_, insertErr := insert.Executor().ScanVal(&trainID)
	if insertErr != nil {
		log.Println(insertErr)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meal train", "details": insertErr.Error()})
		return
	}

	train.Meal_Train_ID = trainID
	c.JSON(http.StatusCreated, train)
}

// GetMealTrains lists active meal trains, open ones first.
func GetMealTrains(c *gin.Context) {
	var trains []models.MealTrain
	err := initializers.DB.From("meal_train").
		Select("*").
		Where(goqu.And(
			goqu.C("is_active").IsTrue(),
			goqu.C("train_status").In(models.MealTrainStatusOpen, models.MealTrainStatusFull),
		)).
		Order(goqu.C("start_date").Asc()).
		ScanStructs(&trains)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal trains"})
		return
	}

	c.JSON(http.StatusOK, trains)
}

// SignUpForMealTrain claims one slot. The train flips to FULL when the
// last slot fills; the slot count is guarded so concurrent signups
// cannot overbook.
func SignUpForMealTrain(c *gin.Context) {
	member := currentMember(c)

	trainID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal train ID"})
		return
	}

	var train models.MealTrain
	found, err := initializers.DB.From("meal_train").
		Select("*").
		Where(goqu.And(
			goqu.C("meal_train_id").Eq(trainID),
			goqu.C("is_active").IsTrue(),
		)).
		ScanStruct(&train)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal train"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal train not found"})
		return
	}

	if train.Train_Status != models.MealTrainStatusOpen {
		respondServiceError(c, models.NewInvalidTransition("meal_train", train.Train_Status, models.MealTrainStatusFull))
		return
	}

	result, err := initializers.DB.Update("meal_train").
		Set(goqu.Record{
			"slots_filled":    goqu.L("slots_filled + 1"),
			"train_status":    goqu.L("CASE WHEN slots_filled + 1 >= slots_total THEN ? ELSE ? END", models.MealTrainStatusFull, models.MealTrainStatusOpen),
			"updated_by":      member.Member_Profile_ID,
			"datetime_update": time.Now(),
		}).
		Where(goqu.And(
			goqu.C("meal_train_id").Eq(trainID),
			goqu.C("train_status").Eq(models.MealTrainStatusOpen),
			goqu.L("slots_filled < slots_total"),
		)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign up for meal train"})
		return
	}

	affected, err := result.RowsAffected()
	if err != nil || affected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Meal train is already full"})
		return
	}

	services.CreateNotification(
		train.Recipient_ID,
		models.NotificationTypeMealTrainUpdate,
		"Meal train signup",
		"Someone signed up to bring a meal.",
		nil,
		member.Member_Profile_ID,
	)

	c.JSON(http.StatusOK, gin.H{"message": "Signed up for meal train."})
}

// CancelMealTrainSlot releases a previously claimed slot, reopening a
// FULL train.
func CancelMealTrainSlot(c *gin.Context) {
	member := currentMember(c)

	trainID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal train ID"})
		return
	}

	result, err := initializers.DB.Update("meal_train").
		Set(goqu.Record{
			"slots_filled":    goqu.L("slots_filled - 1"),
			"train_status":    models.MealTrainStatusOpen,
			"updated_by":      member.Member_Profile_ID,
			"datetime_update": time.Now(),
		}).
		Where(goqu.And(
			goqu.C("meal_train_id").Eq(trainID),
			goqu.C("is_active").IsTrue(),
			goqu.C("train_status").In(models.MealTrainStatusOpen, models.MealTrainStatusFull),
			goqu.L("slots_filled > 0"),
		)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel meal train slot"})
		return
	}

	affected, err := result.RowsAffected()
	if err != nil || affected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "No slot to release on this meal train"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal train slot released."})
}

// CloseMealTrain completes or cancels a train.
func CloseMealTrain(c *gin.Context) {
	member := currentMember(c)

	trainID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal train ID"})
		return
	}

	toStatus := models.MealTrainStatusCompleted
	if c.Query("cancelled") == "true" {
		toStatus = models.MealTrainStatusCancelled
	}

	var train models.MealTrain
	found, err := initializers.DB.From("meal_train").
		Select("*").
		Where(goqu.And(
			goqu.C("meal_train_id").Eq(trainID),
			goqu.C("is_active").IsTrue(),
		)).
		ScanStruct(&train)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal train"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal train not found"})
		return
	}

	if !models.CanTransitionMealTrain(train.Train_Status, toStatus) {
		respondServiceError(c, models.NewInvalidTransition("meal_train", train.Train_Status, toStatus))
		return
	}

	result, err := initializers.DB.Update("meal_train").
		Set(goqu.Record{
			"train_status":    toStatus,
			"updated_by":      member.Member_Profile_ID,
			"datetime_update": time.Now(),
		}).
		Where(goqu.And(
			goqu.C("meal_train_id").Eq(trainID),
			goqu.C("train_status").Eq(train.Train_Status),
		)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close meal train"})
		return
	}

	affected, err := result.RowsAffected()
	if err != nil || affected == 0 {
		respondServiceError(c, models.NewInvalidTransition("meal_train", train.Train_Status, toStatus))
		return
	}

	train.Train_Status = toStatus
	c.JSON(http.StatusOK, train)
}
