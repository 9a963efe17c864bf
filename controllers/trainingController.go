package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/services"
)

// ScheduleTrainingLessons creates the lesson plan for a training course.
func ScheduleTrainingLessons(c *gin.Context) {
	trainingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid training ID"})
		return
	}

	var lessons []models.ScheduledLessonCreate
	if err := c.ShouldBindJSON(&lessons); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(lessons) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one lesson is required"})
		return
	}

	scheduled, err := services.ScheduleLessons(currentActor(c), trainingID, lessons)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, scheduled)
}

// CompleteLesson marks a lesson as attended. When the last lesson of a
// course completes, the course itself is marked complete.
func CompleteLesson(c *gin.Context) {
	lessonID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson ID"})
		return
	}

	lesson, err := services.SetLessonStatus(currentActor(c), lessonID, models.LessonStatusCompleted)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// MarkLessonAbsent records a missed lesson. The lesson can still be
// completed later via a make-up session.
func MarkLessonAbsent(c *gin.Context) {
	lessonID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson ID"})
		return
	}

	lesson, err := services.SetLessonStatus(currentActor(c), lessonID, models.LessonStatusAbsent)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// GetTrainingProgress returns per-lesson status and the completion percentage.
func GetTrainingProgress(c *gin.Context) {
	trainingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid training ID"})
		return
	}

	progress, err := services.GetTrainingProgress(trainingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
