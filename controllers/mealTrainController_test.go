package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func mealTrainRow(status string, slotsFilled, slotsTotal int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"meal_train_id", "recipient_id", "train_status", "description",
		"slots_total", "slots_filled", "start_date", "end_date", "is_active",
	}).AddRow(1, 10, status, "Meals for the Nguyen family",
		slotsTotal, slotsFilled, time.Now(), time.Now().AddDate(0, 0, 14), true)
}

func TestSignUpForMealTrain(t *testing.T) {
	tests := []struct {
		name           string
		trainStatus    string
		slotsFilled    int
		trainFound     bool
		updateAffected int64
		expectedStatus int
	}{
		{
			name:           "successful signup",
			trainStatus:    models.MealTrainStatusOpen,
			slotsFilled:    2,
			trainFound:     true,
			updateAffected: 1,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "train already full",
			trainStatus:    models.MealTrainStatusFull,
			slotsFilled:    5,
			trainFound:     true,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "lost the race for the last slot",
			trainStatus:    models.MealTrainStatusOpen,
			slotsFilled:    4,
			trainFound:     true,
			updateAffected: 0,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "train not found",
			trainFound:     false,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.trainFound {
				mock.ExpectQuery(`SELECT \* FROM "meal_train"`).
					WillReturnRows(mealTrainRow(tt.trainStatus, tt.slotsFilled, 5))
			} else {
				mock.ExpectQuery(`SELECT \* FROM "meal_train"`).
					WillReturnRows(sqlmock.NewRows([]string{"meal_train_id"}))
			}

			if tt.trainFound && tt.trainStatus == models.MealTrainStatusOpen {
				mock.ExpectExec(`UPDATE "meal_train"`).
					WillReturnResult(sqlmock.NewResult(0, tt.updateAffected))
			}
			if tt.expectedStatus == http.StatusOK {
				mock.ExpectExec(`INSERT INTO "notification"`).
					WillReturnResult(sqlmock.NewResult(1, 1))
			}

			c, w := SetupTestContext()
			SetAuthenticatedMember(c, MockMember())
			c.Params = gin.Params{{Key: "id", Value: "1"}}
			c.Request = httptest.NewRequest("POST", "/meal-trains/1/signup", nil)

			SignUpForMealTrain(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var response map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, "Signed up for meal train.", response["message"])
			}
		})
	}
}

func TestCancelMealTrainSlot(t *testing.T) {
	tests := []struct {
		name           string
		updateAffected int64
		expectedStatus int
	}{
		{"slot released", 1, http.StatusOK},
		{"no slot to release", 0, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			mock.ExpectExec(`UPDATE "meal_train"`).
				WillReturnResult(sqlmock.NewResult(0, tt.updateAffected))

			c, w := SetupTestContext()
			SetAuthenticatedMember(c, MockMember())
			c.Params = gin.Params{{Key: "id", Value: "1"}}
			c.Request = httptest.NewRequest("DELETE", "/meal-trains/1/signup", nil)

			CancelMealTrainSlot(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCloseMealTrainInvalidTransition(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "meal_train"`).
		WillReturnRows(mealTrainRow(models.MealTrainStatusCancelled, 0, 5))

	c, w := SetupTestContext()
	SetAuthenticatedMember(c, MockPastor())
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("POST", "/meal-trains/1/close", nil)

	CloseMealTrain(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
