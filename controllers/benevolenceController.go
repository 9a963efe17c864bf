package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/permissions"
	"github.com/kingoftech-v01/egliseconnect-sub002/services"
	"github.com/doug-martin/goqu/v9"
)

// CreateBenevolenceRequest files a financial-assistance request against a
// named fund.
func CreateBenevolenceRequest(c *gin.Context) {
	member := currentMember(c)

	var create models.BenevolenceRequestCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var fund models.BenevolenceFund
	found, err := initializers.DB.From("benevolence_fund").
		Where(goqu.And(
			goqu.C("benevolence_fund_id").Eq(create.BenevolenceFundID),
			goqu.C("is_active").IsTrue(),
		)).
		ScanStruct(&fund)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up fund"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Benevolence fund not found"})
		return
	}

	request := models.BenevolenceRequest{
		Member_Profile_ID:   member.Member_Profile_ID,
		Benevolence_Fund_ID: create.BenevolenceFundID,
		Reason:              create.Reason,
		Amount_Requested:    create.AmountRequested,
		Request_Status:      models.BenevolenceStatusSubmitted,
		Is_Active:           true,
		Created_By:          member.Member_Profile_ID,
		Updated_By:          member.Member_Profile_ID,
	}

	insert := initializers.DB.Insert("benevolence_request").Rows(request).Returning("benevolence_request_id")

	var requestID int
	_, insertErr := insert.Executor().ScanVal(&requestID)
	if insertErr != nil {
		log.Println(insertErr)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create benevolence request", "details": insertErr.Error()})
		return
	}

	request.Benevolence_Request_ID = requestID
	c.JSON(http.StatusCreated, request)
}

// GetBenevolenceRequests lists requests. The finance team sees all, a
// member sees only their own.
func GetBenevolenceRequests(c *gin.Context) {
	member := currentMember(c)
	actor := currentActor(c)

	query := initializers.DB.From("benevolence_request").
		Where(goqu.C("is_active").IsTrue()).
		Order(goqu.C("datetime_create").Desc())

	if !permissions.CanManageFinances(actor) {
		query = query.Where(goqu.C("member_profile_id").Eq(member.Member_Profile_ID))
	}

	if status := c.Query("status"); status != "" {
		query = query.Where(goqu.C("request_status").Eq(status))
	}

	var requests []models.BenevolenceRequest
	if err := query.ScanStructs(&requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch benevolence requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// StartBenevolenceReview moves a submitted request into review.
func StartBenevolenceReview(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid benevolence request ID"})
		return
	}

	request, err := services.StartBenevolenceReview(currentActor(c), requestID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// DecideBenevolence approves or denies a request under review.
func DecideBenevolence(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid benevolence request ID"})
		return
	}

	var decision models.BenevolenceDecision
	if err := c.ShouldBindJSON(&decision); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := services.DecideBenevolence(currentActor(c), requestID, decision)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// DisburseBenevolence pays out an approved request, debiting the fund
// balance atomically.
func DisburseBenevolence(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid benevolence request ID"})
		return
	}

	request, err := services.DisburseBenevolence(currentActor(c), requestID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// GetBenevolenceFunds lists active funds and their balances.
func GetBenevolenceFunds(c *gin.Context) {
	var funds []models.BenevolenceFund
	err := initializers.DB.From("benevolence_fund").
		Where(goqu.C("is_active").IsTrue()).
		Order(goqu.C("fund_name").Asc()).
		ScanStructs(&funds)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch benevolence funds"})
		return
	}

	c.JSON(http.StatusOK, funds)
}
