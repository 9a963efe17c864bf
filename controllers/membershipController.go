package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/services"
)

// SubmitMembershipForm records the onboarding form and moves the member to
// FORM_SUBMITTED.
func SubmitMembershipForm(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("member_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member profile ID"})
		return
	}

	var form models.MembershipFormSubmit
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := services.SubmitForm(currentActor(c), memberID, form)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Membership form submitted.",
		"member":  member,
	})
}

// StartMemberReview moves a submitted form into review.
func StartMemberReview(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("member_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member profile ID"})
		return
	}

	member, err := services.StartReview(currentActor(c), memberID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member moved into review.",
		"member":  member,
	})
}

// DecideMemberReview applies an approve / reject / request_changes decision.
func DecideMemberReview(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("member_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member profile ID"})
		return
	}

	var decision models.ReviewDecision
	if err := c.ShouldBindJSON(&decision); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := services.DecideReview(currentActor(c), memberID, decision)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review decision applied.",
		"member":  member,
	})
}

// ReactivateMember gives a rejected or expired member a fresh start.
func ReactivateMember(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("member_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member profile ID"})
		return
	}

	member, err := services.ReactivateMember(currentActor(c), memberID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member reactivated.",
		"member":  member,
	})
}

// GetPipelineReport returns the onboarding pipeline aggregation.
func GetPipelineReport(c *gin.Context) {
	counts, err := services.GetPipelineCounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute pipeline counts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, counts)
}

// RunReminderSweep triggers the daily sweep on demand. The sweep is
// idempotent, so an extra manual run is safe.
func RunReminderSweep(c *gin.Context) {
	go services.RunDailySweep(time.Now())

	c.JSON(http.StatusAccepted, gin.H{"message": "Reminder sweep started."})
}
