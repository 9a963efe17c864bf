package controllers

import (
	"net/http"
	"strconv"

	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/permissions"
	"github.com/kingoftech-v01/egliseconnect-sub002/services"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

func GetMemberNotifications(c *gin.Context) {
	member := currentMember(c)
	actor := currentActor(c)

	memberID, err := strconv.Atoi(c.Param("member_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member profile ID", "details": err.Error()})
		return
	}

	if memberID != member.Member_Profile_ID && !permissions.IsStaff(actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to view this member's notifications"})
		return
	}

	var notifications []models.Notification

	dbErr := initializers.DB.From("notification").
		Select("notification_id",
			"member_profile_id",
			"notification_type",
			"notification_title",
			"notification_message",
			"notification_link",
			"notification_status",
			"datetime_create",
			"datetime_update",
			"created_by",
			"updated_by").
		Where(goqu.C("member_profile_id").Eq(memberID)).
		Order(goqu.C("datetime_create").Desc()).
		ScanStructs(&notifications)

	if dbErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": dbErr.Error()})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func ToggleMemberNotificationStatus(c *gin.Context) {
	member := currentMember(c)
	actor := currentActor(c)

	memberID, err := strconv.Atoi(c.Param("member_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member profile ID", "details": err.Error()})
		return
	}

	if memberID != member.Member_Profile_ID && !permissions.IsStaff(actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to modify this member's notifications"})
		return
	}

	notificationID, err := strconv.Atoi(c.Param("notification_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID", "details": err.Error()})
		return
	}

	// get current notication status
	var currentStatus string
	_, dbErr := initializers.DB.From("notification").
		Select("notification_status").
		Where(goqu.C("notification_id").Eq(notificationID)).
		ScanVal(&currentStatus)

	if dbErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": dbErr.Error()})
		return
	}

	// toggle notification status
	var newStatus string
	if currentStatus == models.NotificationStatusRead {
		newStatus = models.NotificationStatusUnread
	} else {
		newStatus = models.NotificationStatusRead
	}

	update := initializers.DB.Update("notification").
		Set(goqu.Record{"notification_status": newStatus}).
		Where(goqu.C("notification_id").Eq(notificationID))

	result, err := update.Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification", "details": err.Error()})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as " + newStatus})
}

func DeleteMemberNotification(c *gin.Context) {
	member := currentMember(c)
	actor := currentActor(c)

	memberID, err := strconv.Atoi(c.Param("member_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member profile ID", "details": err.Error()})
		return
	}

	if memberID != member.Member_Profile_ID && !permissions.IsStaff(actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to delete this member's notifications"})
		return
	}

	notificationID, err := strconv.Atoi(c.Param("notification_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID", "details": err.Error()})
		return
	}

	// Verify the notification belongs to the member before deleting
	var notificationMemberID int
	_, dbErr := initializers.DB.From("notification").
		Select("member_profile_id").
		Where(goqu.C("notification_id").Eq(notificationID)).
		ScanVal(&notificationMemberID)

	if dbErr != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if notificationMemberID != memberID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This notification does not belong to the specified member"})
		return
	}

	deleteQuery := initializers.DB.Delete("notification").
		Where(goqu.C("notification_id").Eq(notificationID))

	result, err := deleteQuery.Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification", "details": err.Error()})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}

func MarkAllNotificationsAsRead(c *gin.Context) {
	member := currentMember(c)
	actor := currentActor(c)

	memberID, err := strconv.Atoi(c.Param("member_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member profile ID", "details": err.Error()})
		return
	}

	if memberID != member.Member_Profile_ID && !permissions.IsStaff(actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to modify this member's notifications"})
		return
	}

	// Update all unread notifications to read
	update := initializers.DB.Update("notification").
		Set(goqu.Record{"notification_status": models.NotificationStatusRead}).
		Where(
			goqu.C("member_profile_id").Eq(memberID),
			goqu.C("notification_status").Eq(models.NotificationStatusUnread),
		)

	result, err := update.Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications as read", "details": err.Error()})
		return
	}

	rowsAffected, _ := result.RowsAffected()

	c.JSON(http.StatusOK, gin.H{
		"message":      "All notifications marked as read",
		"updatedCount": rowsAffected,
	})
}

type SendNotificationRequest struct {
	MemberIDs []int             `json:"memberIds" binding:"required"`
	Title     string            `json:"title" binding:"required"`
	Body      string            `json:"body" binding:"required"`
	Data      map[string]string `json:"data,omitempty"`
	Sound     string            `json:"sound,omitempty"`
	Badge     *int              `json:"badge,omitempty"`
	Priority  string            `json:"priority,omitempty"`
}

func SendPushNotification(c *gin.Context) {
	var request SendNotificationRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pushService := services.GetPushNotificationService()
	if pushService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notification service not available"})
		return
	}

	payload := services.NotificationPayload{
		Title:    request.Title,
		Body:     request.Body,
		Data:     request.Data,
		Sound:    request.Sound,
		Badge:    request.Badge,
		Priority: request.Priority,
	}

	err := pushService.SendNotificationToMembers(request.MemberIDs, payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send push notifications", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Push notifications sent successfully",
		"memberIds": request.MemberIDs,
	})
}
