package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/services"
)

// ScheduleMemberInterview proposes an interview slot for a member who has
// finished training.
func ScheduleMemberInterview(c *gin.Context) {
	var schedule models.InterviewSchedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interview, err := services.ScheduleInterview(currentActor(c), schedule)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interview)
}

// AcceptInterview lets the candidate confirm the proposed slot.
func AcceptInterview(c *gin.Context) {
	interviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interview ID"})
		return
	}

	interview, err := services.AcceptInterview(currentActor(c), interviewID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

// CounterProposeInterview lets the candidate suggest a different slot.
func CounterProposeInterview(c *gin.Context) {
	interviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interview ID"})
		return
	}

	var counter models.InterviewCounterPropose
	if err := c.ShouldBindJSON(&counter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interview, err := services.CounterProposeInterview(currentActor(c), interviewID, counter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

// ConfirmInterview accepts the candidate's counter-proposed slot.
func ConfirmInterview(c *gin.Context) {
	interviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interview ID"})
		return
	}

	interview, err := services.ConfirmInterview(currentActor(c), interviewID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

// CancelInterview cancels a pending or confirmed interview.
func CancelInterview(c *gin.Context) {
	interviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interview ID"})
		return
	}

	interview, err := services.CancelInterview(currentActor(c), interviewID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

// CompleteInterview records the pastoral verdict. A pass activates the
// member's profile in the same transaction.
func CompleteInterview(c *gin.Context) {
	interviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interview ID"})
		return
	}

	var outcome models.InterviewComplete
	if err := c.ShouldBindJSON(&outcome); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interview, err := services.CompleteInterview(currentActor(c), interviewID, outcome)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

// RecordInterviewNoShow marks a confirmed interview the candidate missed.
func RecordInterviewNoShow(c *gin.Context) {
	interviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interview ID"})
		return
	}

	interview, err := services.RecordNoShow(currentActor(c), interviewID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

// GetInterviewStats reports pass/fail/no-show counts and the pass rate.
func GetInterviewStats(c *gin.Context) {
	stats, err := services.GetInterviewStats()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
