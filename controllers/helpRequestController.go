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
	"github.com/kingoftech-v01/egliseconnect-sub002/services"
	"github.com/doug-martin/goqu/v9"
)

// CreateHelpRequest files a practical-assistance request for the caller.
func CreateHelpRequest(c *gin.Context) {
	member := currentMember(c)

	var create models.HelpRequestCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request := models.HelpRequest{
		Member_Profile_ID: member.Member_Profile_ID,
		Title:             create.Title,
		Description:       create.Description,
		Request_Status:    models.HelpRequestStatusNew,
		Is_Active:         true,
		Created_By:        member.Member_Profile_ID,
		Updated_By:        member.Member_Profile_ID,
	}

	insert := initializers.DB.Insert("help_request").Rows(request).Returning("help_request_id")

	var requestID int
	_, err := insert.Executor().ScanVal(&requestID)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create help request", "details": err.Error()})
		return
	}

	request.Help_Request_ID = requestID
	c.JSON(http.StatusCreated, request)
}

// GetHelpRequests lists requests. Staff see everything, members see only
// their own.
func GetHelpRequests(c *gin.Context) {
	member := currentMember(c)
	actor := currentActor(c)

	query := initializers.DB.From("help_request").
		Where(goqu.C("is_active").IsTrue()).
		Order(goqu.C("datetime_create").Desc())

	if !permissions.IsStaff(actor) {
		query = query.Where(goqu.C("member_profile_id").Eq(member.Member_Profile_ID))
	}

	var requests []models.HelpRequest
	if err := query.ScanStructs(&requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch help requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// UpdateHelpRequestStatus moves a request along its lifecycle. The
// requester is notified when the request is resolved.
func UpdateHelpRequestStatus(c *gin.Context) {
	member := currentMember(c)
	actor := currentActor(c)

	if !permissions.IsStaff(actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
		return
	}

	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid help request ID"})
		return
	}

	var update models.HelpRequestStatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var request models.HelpRequest
	found, err := initializers.DB.From("help_request").
		Where(goqu.And(
			goqu.C("help_request_id").Eq(requestID),
			goqu.C("is_active").IsTrue(),
		)).
		ScanStruct(&request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch help request"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Help request not found"})
		return
	}

	if !models.CanTransitionHelpRequest(request.Request_Status, update.RequestStatus) {
		respondServiceError(c, models.NewInvalidTransition("help_request", request.Request_Status, update.RequestStatus))
		return
	}

	record := goqu.Record{
		"request_status":  update.RequestStatus,
		"updated_by":      member.Member_Profile_ID,
		"datetime_update": time.Now(),
	}
	if update.AssigneeID != nil {
		record["assignee_id"] = *update.AssigneeID
	}

	result, err := initializers.DB.Update("help_request").
		Set(record).
		Where(goqu.And(
			goqu.C("help_request_id").Eq(requestID),
			goqu.C("request_status").Eq(request.Request_Status),
		)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update help request"})
		return
	}

	affected, err := result.RowsAffected()
	if err != nil || affected == 0 {
		respondServiceError(c, models.NewInvalidTransition("help_request", request.Request_Status, update.RequestStatus))
		return
	}

	if update.RequestStatus == models.HelpRequestStatusResolved {
		services.CreateNotification(
			request.Member_Profile_ID,
			models.NotificationTypeHelpResolved,
			"Help request resolved",
			"Your help request \""+request.Title+"\" has been resolved.",
			nil,
			member.Member_Profile_ID,
		)
	}

	request.Request_Status = update.RequestStatus
	if update.AssigneeID != nil {
		request.Assignee_ID = update.AssigneeID
	}
	c.JSON(http.StatusOK, request)
}
