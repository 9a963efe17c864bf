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

// CreateVolunteerSchedule books a member onto a serving slot.
func CreateVolunteerSchedule(c *gin.Context) {
	member := currentMember(c)

	var create models.VolunteerScheduleCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	serveDate, err := time.Parse("2006-01-02", create.ServeDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid serve date, expected YYYY-MM-DD"})
		return
	}

	schedule := models.VolunteerSchedule{
		Member_Profile_ID: create.MemberProfileID,
		Event_ID:          create.EventID,
		Ministry:          create.Ministry,
		Serve_Date:        serveDate,
		Schedule_Status:   models.VolunteerScheduleStatusScheduled,
		Is_Active:         true,
		Created_By:        member.Member_Profile_ID,
		Updated_By:        member.Member_Profile_ID,
	}

	insert := initializers.DB.Insert("volunteer_schedule").Rows(schedule).Returning("volunteer_schedule_id")

	var scheduleID int
	_, insertErr := insert.Executor().ScanVal(&scheduleID)
	if insertErr != nil {
		log.Println(insertErr)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create volunteer schedule", "details": insertErr.Error()})
		return
	}

	schedule.Volunteer_Schedule_ID = scheduleID
	c.JSON(http.StatusCreated, schedule)
}

// GetVolunteerSchedules lists upcoming slots. Staff see everyone's,
// members see their own.
func GetVolunteerSchedules(c *gin.Context) {
	member := currentMember(c)
	actor := currentActor(c)

	query := initializers.DB.From("volunteer_schedule").
		Where(goqu.C("is_active").IsTrue()).
		Order(goqu.C("serve_date").Asc())

	if !permissions.IsStaff(actor) {
		query = query.Where(goqu.C("member_profile_id").Eq(member.Member_Profile_ID))
	}

	if status := c.Query("status"); status != "" {
		query = query.Where(goqu.C("schedule_status").Eq(status))
	}

	var schedules []models.VolunteerSchedule
	if err := query.ScanStructs(&schedules); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch volunteer schedules"})
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// UpdateVolunteerScheduleStatus records the outcome of a serving slot.
func UpdateVolunteerScheduleStatus(c *gin.Context) {
	member := currentMember(c)
	actor := currentActor(c)

	scheduleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid volunteer schedule ID"})
		return
	}

	var body struct {
		ScheduleStatus string `json:"scheduleStatus" binding:"required,oneof=SERVED MISSED CANCELLED"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var schedule models.VolunteerSchedule
	found, err := initializers.DB.From("volunteer_schedule").
		Where(goqu.And(
			goqu.C("volunteer_schedule_id").Eq(scheduleID),
			goqu.C("is_active").IsTrue(),
		)).
		ScanStruct(&schedule)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch volunteer schedule"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volunteer schedule not found"})
		return
	}

	// Volunteers may cancel their own slot; only staff record outcomes.
	if body.ScheduleStatus == models.VolunteerScheduleStatusCancelled {
		if !permissions.CanAccessOwned(actor, volunteerOwner{schedule.Member_Profile_ID}) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to cancel this slot"})
			return
		}
	} else if !permissions.IsStaff(actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
		return
	}

	if schedule.Schedule_Status != models.VolunteerScheduleStatusScheduled {
		respondServiceError(c, models.NewInvalidTransition("volunteer_schedule", schedule.Schedule_Status, body.ScheduleStatus))
		return
	}

	result, err := initializers.DB.Update("volunteer_schedule").
		Set(goqu.Record{
			"schedule_status": body.ScheduleStatus,
			"updated_by":      member.Member_Profile_ID,
			"datetime_update": time.Now(),
		}).
		Where(goqu.And(
			goqu.C("volunteer_schedule_id").Eq(scheduleID),
			goqu.C("schedule_status").Eq(models.VolunteerScheduleStatusScheduled),
		)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update volunteer schedule"})
		return
	}

	affected, err := result.RowsAffected()
	if err != nil || affected == 0 {
		respondServiceError(c, models.NewInvalidTransition("volunteer_schedule", schedule.Schedule_Status, body.ScheduleStatus))
		return
	}

	schedule.Schedule_Status = body.ScheduleStatus
	c.JSON(http.StatusOK, schedule)
}

type volunteerOwner struct{ id int }

func (o volunteerOwner) OwnerMemberID() int { return o.id }
