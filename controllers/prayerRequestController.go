package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/permissions"
	"github.com/doug-martin/goqu/v9"
)

// CreatePrayerRequest records a prayer request for the caller. Private
// requests are visible to the author and staff only.
func CreatePrayerRequest(c *gin.Context) {
	member := currentMember(c)

	var create models.PrayerRequestCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request := models.PrayerRequest{
		Member_Profile_ID: member.Member_Profile_ID,
		Title:             create.Title,
		Description:       create.Description,
		Is_Private:        create.IsPrivate,
		Request_Status:    models.PrayerRequestStatusOpen,
		Is_Active:         true,
		Created_By:        member.Member_Profile_ID,
		Updated_By:        member.Member_Profile_ID,
	}

	insert := initializers.DB.Insert("prayer_request").Rows(request).Returning("prayer_request_id")

	var requestID int
	_, err := insert.Executor().ScanVal(&requestID)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prayer request", "details": err.Error()})
		return
	}

	request.Prayer_Request_ID = requestID
	c.JSON(http.StatusCreated, request)
}

// GetPrayerRequests lists shared requests plus the caller's private ones.
// Staff see everything.
func GetPrayerRequests(c *gin.Context) {
	member := currentMember(c)
	actor := currentActor(c)

	query := initializers.DB.From("prayer_request").
		Where(goqu.C("is_active").IsTrue()).
		Order(goqu.C("datetime_create").Desc())

	if status := c.Query("status"); status != "" {
		query = query.Where(goqu.C("request_status").Eq(status))
	}

	if !permissions.IsStaff(actor) {
		query = query.Where(goqu.Or(
			goqu.C("is_private").IsFalse(),
			goqu.C("member_profile_id").Eq(member.Member_Profile_ID),
		))
	}

	var requests []models.PrayerRequest
	if err := query.ScanStructs(&requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// UpdatePrayerRequestStatus marks a request answered or archives it.
// Only the author or staff may move it.
func UpdatePrayerRequestStatus(c *gin.Context) {
	member := currentMember(c)
	actor := currentActor(c)

	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID"})
		return
	}

	var update models.PrayerRequestStatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var request models.PrayerRequest
	found, err := initializers.DB.From("prayer_request").
		Where(goqu.And(
			goqu.C("prayer_request_id").Eq(requestID),
			goqu.C("is_active").IsTrue(),
		)).
		ScanStruct(&request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer request"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	if !permissions.CanAccessOwned(actor, prayerOwner{request.Member_Profile_ID}) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this prayer request"})
		return
	}

	if !models.CanTransitionPrayerRequest(request.Request_Status, update.RequestStatus) {
		respondServiceError(c, models.NewInvalidTransition("prayer_request", request.Request_Status, update.RequestStatus))
		return
	}

	record := goqu.Record{
		"request_status":  update.RequestStatus,
		"updated_by":      member.Member_Profile_ID,
		"datetime_update": time.Now(),
	}
	if update.RequestStatus == models.PrayerRequestStatusAnswered {
		record["datetime_answered"] = time.Now()
	}

	result, err := initializers.DB.Update("prayer_request").
		Set(record).
		Where(goqu.And(
			goqu.C("prayer_request_id").Eq(requestID),
			goqu.C("request_status").Eq(request.Request_Status),
		)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prayer request"})
		return
	}

	affected, err := result.RowsAffected()
	if err != nil || affected == 0 {
		respondServiceError(c, models.NewInvalidTransition("prayer_request", request.Request_Status, update.RequestStatus))
		return
	}

	request.Request_Status = update.RequestStatus
	c.JSON(http.StatusOK, request)
}

// DeletePrayerRequest soft-deletes the caller's own prayer request.
func DeletePrayerRequest(c *gin.Context) {
	member := currentMember(c)
	actor := currentActor(c)

	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID"})
		return
	}

	var request models.PrayerRequest
	found, err := initializers.DB.From("prayer_request").
		Where(goqu.And(
			goqu.C("prayer_request_id").Eq(requestID),
			goqu.C("is_active").IsTrue(),
		)).
		ScanStruct(&request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer request"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	if !permissions.CanAccessOwned(actor, prayerOwner{request.Member_Profile_ID}) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this prayer request"})
		return
	}

	_, err = initializers.DB.Update("prayer_request").
		Set(goqu.Record{
			"is_active":       false,
			"updated_by":      member.Member_Profile_ID,
			"datetime_update": time.Now(),
		}).
		Where(goqu.C("prayer_request_id").Eq(requestID)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prayer request deleted."})
}

type prayerOwner struct{ id int }

func (o prayerOwner) OwnerMemberID() int { return o.id }
