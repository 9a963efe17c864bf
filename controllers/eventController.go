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

// CreateEvent publishes a church event.
func CreateEvent(c *gin.Context) {
	member := currentMember(c)

	var create models.EventCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eventDate, err := time.Parse(time.RFC3339, create.EventDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event date, expected RFC 3339"})
		return
	}

	event := models.Event{
		Event_Name:  create.EventName,
		Description: create.Description,
		Event_Date:  eventDate,
		Location:    create.Location,
		Is_Active:   true,
		Created_By:  member.Member_Profile_ID,
		Updated_By:  member.Member_Profile_ID,
	}

	insert := initializers.DB.Insert("event").Rows(event).Returning("event_id")

	var eventID int
	_, insertErr := insert.Executor().ScanVal(&eventID)
	if insertErr != nil {
		log.Println(insertErr)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event", "details": insertErr.Error()})
		return
	}

	event.Event_ID = eventID
	c.JSON(http.StatusCreated, event)
}

// GetEvents lists upcoming events.
func GetEvents(c *gin.Context) {
	query := initializers.DB.From("event").
		Where(goqu.C("is_active").IsTrue()).
		Order(goqu.C("event_date").Asc())

	if c.Query("all") != "true" {
		query = query.Where(goqu.C("event_date").Gte(time.Now()))
	}

	var events []models.Event
	if err := query.ScanStructs(&events); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// CancelEvent soft-deletes an event.
func CancelEvent(c *gin.Context) {
	member := currentMember(c)

	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	result, err := initializers.DB.Update("event").
		Set(goqu.Record{
			"is_active":       false,
			"updated_by":      member.Member_Profile_ID,
			"datetime_update": time.Now(),
		}).
		Where(goqu.And(
			goqu.C("event_id").Eq(eventID),
			goqu.C("is_active").IsTrue(),
		)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel event"})
		return
	}

	affected, err := result.RowsAffected()
	if err != nil || affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event cancelled."})
}
