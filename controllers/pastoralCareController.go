package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/doug-martin/goqu/v9"
)

// CreatePastoralCareRecord opens a confidential care record. Only the
// care team ever sees these; routing guards enforce that.
func CreatePastoralCareRecord(c *gin.Context) {
	member := currentMember(c)

	var create models.PastoralCareCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := models.PastoralCare{
		Member_Profile_ID: create.MemberProfileID,
		Assigned_To:       &member.Member_Profile_ID,
		Care_Status:       models.PastoralCareStatusOpen,
		Subject:           create.Subject,
		Notes:             create.Notes,
		Is_Active:         true,
		Created_By:        member.Member_Profile_ID,
		Updated_By:        member.Member_Profile_ID,
	}

	if create.FollowUpDate != nil {
		followUp, parseErr := time.Parse("2006-01-02", *create.FollowUpDate)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid follow-up date, expected YYYY-MM-DD"})
			return
		}
		record.Follow_Up_Date = &followUp
	}

	insert := initializers.DB.Insert("pastoral_care").Rows(record).Returning("pastoral_care_id")

	var recordID int
	_, err := insert.Executor().ScanVal(&recordID)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create care record", "details": err.Error()})
		return
	}

	record.Pastoral_Care_ID = recordID
	c.JSON(http.StatusCreated, record)
}

// GetPastoralCareRecords lists open and follow-up care records, oldest
// follow-up first.
func GetPastoralCareRecords(c *gin.Context) {
	query := initializers.DB.From("pastoral_care").
		Where(goqu.C("is_active").IsTrue()).
		Order(goqu.C("follow_up_date").Asc().NullsLast())

	if status := c.Query("status"); status != "" {
		query = query.Where(goqu.C("care_status").Eq(status))
	} else {
		query = query.Where(goqu.C("care_status").Neq(models.PastoralCareStatusClosed))
	}

	var records []models.PastoralCare
	if err := query.ScanStructs(&records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch care records"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// UpdatePastoralCareStatus advances a care record. Scheduling a new
// follow-up resets its reminder cycle.
func UpdatePastoralCareStatus(c *gin.Context) {
	member := currentMember(c)

	recordID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid care record ID"})
		return
	}

	var update models.PastoralCareStatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var record models.PastoralCare
	found, err := initializers.DB.From("pastoral_care").
		Where(goqu.And(
			goqu.C("pastoral_care_id").Eq(recordID),
			goqu.C("is_active").IsTrue(),
		)).
		ScanStruct(&record)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch care record"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Care record not found"})
		return
	}

	if !models.CanTransitionPastoralCare(record.Care_Status, update.CareStatus) {
		respondServiceError(c, models.NewInvalidTransition("pastoral_care", record.Care_Status, update.CareStatus))
		return
	}

	updateRecord := goqu.Record{
		"care_status":     update.CareStatus,
		"updated_by":      member.Member_Profile_ID,
		"datetime_update": time.Now(),
	}
	if update.Notes != nil {
		updateRecord["notes"] = *update.Notes
	}
	if update.CareStatus == models.PastoralCareStatusFollowUp {
		if update.FollowUpDate == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Follow-up status requires a follow-up date"})
			return
		}
		followUp, parseErr := time.Parse("2006-01-02", *update.FollowUpDate)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid follow-up date, expected YYYY-MM-DD"})
			return
		}
		updateRecord["follow_up_date"] = followUp
		updateRecord["reminder_stage"] = 0
	}

	result, err := initializers.DB.Update("pastoral_care").
		Set(updateRecord).
		Where(goqu.And(
			goqu.C("pastoral_care_id").Eq(recordID),
			goqu.C("care_status").Eq(record.Care_Status),
		)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update care record"})
		return
	}

	affected, err := result.RowsAffected()
	if err != nil || affected == 0 {
		respondServiceError(c, models.NewInvalidTransition("pastoral_care", record.Care_Status, update.CareStatus))
		return
	}

	record.Care_Status = update.CareStatus
	c.JSON(http.StatusOK, record)
}
