package controllers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Test GetMemberNotifications - Fetch notifications with authorization
func TestGetMemberNotifications(t *testing.T) {
	tests := []struct {
		name             string
		memberID         string
		currentMember    models.MemberProfile
		hasNotifications bool
		expectedStatus   int
		expectError      bool
	}{
		{
			name:             "successful fetch - own notifications",
			memberID:         "1",
			currentMember:    MockMember(),
			hasNotifications: true,
			expectedStatus:   http.StatusOK,
			expectError:      false,
		},
		{
			name:             "successful fetch - staff views other member",
			memberID:         "1",
			currentMember:    MockPastor(),
			hasNotifications: true,
			expectedStatus:   http.StatusOK,
			expectError:      false,
		},
		{
			name:             "no notifications found",
			memberID:         "1",
			currentMember:    MockMember(),
			hasNotifications: false,
			expectedStatus:   http.StatusOK,
			expectError:      false,
		},
		{
			name:             "forbidden - view other member's notifications",
			memberID:         "2",
			currentMember:    MockMember(),
			hasNotifications: false,
			expectedStatus:   http.StatusForbidden,
			expectError:      true,
		},
		{
			name:             "invalid member ID",
			memberID:         "invalid",
			currentMember:    MockMember(),
			hasNotifications: false,
			expectedStatus:   http.StatusBadRequest,
			expectError:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			targetID, _ := strconv.Atoi(tt.memberID)
			authorized := targetID == tt.currentMember.Member_Profile_ID || tt.currentMember.Church_Role == "PASTOR"

			if tt.memberID != "invalid" && authorized {
				now := time.Now()

				columns := []string{
					"notification_id", "member_profile_id", "notification_type", "notification_title",
					"notification_message", "notification_link", "notification_status",
					"datetime_create", "datetime_update", "created_by", "updated_by",
				}
				if tt.hasNotifications {
					notificationRows := sqlmock.NewRows(columns).
						AddRow(1, 1, "FORM_RECEIVED", "Form received", "We received your membership form", nil, "UNREAD", now, now, 1, 1)
					mock.ExpectQuery("SELECT").WillReturnRows(notificationRows)
				} else {
					mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(columns))
				}
			}

			c, w := SetupTestContext()
			SetAuthenticatedMember(c, tt.currentMember)
			c.Params = []gin.Param{{Key: "member_profile_id", Value: tt.memberID}}
			c.Request = httptest.NewRequest("GET", "/members/"+tt.memberID+"/notifications", nil)

			GetMemberNotifications(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectError {
				var response map[string]interface{}
				_ = json.Unmarshal(w.Body.Bytes(), &response)
				assert.NotNil(t, response["error"])
			} else {
				var notifications []interface{}
				_ = json.Unmarshal(w.Body.Bytes(), &notifications)
				if tt.hasNotifications {
					assert.Greater(t, len(notifications), 0)
				} else {
					assert.Equal(t, 0, len(notifications))
				}
			}
		})
	}
}

// Test ToggleMemberNotificationStatus - Toggle notification READ/UNREAD status
func TestToggleMemberNotificationStatus(t *testing.T) {
	tests := []struct {
		name               string
		memberID           string
		notificationID     string
		currentMember      models.MemberProfile
		currentStatus      string
		notificationExists bool
		expectedStatus     int
		expectError        bool
		expectedNewStatus  string
	}{
		{
			name:               "successful toggle - UNREAD to READ",
			memberID:           "1",
			notificationID:     "1",
			currentMember:      MockMember(),
			currentStatus:      "UNREAD",
			notificationExists: true,
			expectedStatus:     http.StatusOK,
			expectError:        false,
			expectedNewStatus:  "READ",
		},
		{
			name:               "successful toggle - READ to UNREAD",
			memberID:           "1",
			notificationID:     "1",
			currentMember:      MockMember(),
			currentStatus:      "READ",
			notificationExists: true,
			expectedStatus:     http.StatusOK,
			expectError:        false,
			expectedNewStatus:  "UNREAD",
		},
		{
			name:               "successful toggle - staff for other member",
			memberID:           "1",
			notificationID:     "1",
			currentMember:      MockPastor(),
			currentStatus:      "UNREAD",
			notificationExists: true,
			expectedStatus:     http.StatusOK,
			expectError:        false,
			expectedNewStatus:  "READ",
		},
		{
			name:               "notification not found",
			memberID:           "1",
			notificationID:     "999",
			currentMember:      MockMember(),
			currentStatus:      "UNREAD",
			notificationExists: false,
			expectedStatus:     http.StatusNotFound,
			expectError:        true,
			expectedNewStatus:  "",
		},
		{
			name:               "forbidden - modify other member's notification",
			memberID:           "2",
			notificationID:     "1",
			currentMember:      MockMember(),
			currentStatus:      "UNREAD",
			notificationExists: false,
			expectedStatus:     http.StatusForbidden,
			expectError:        true,
			expectedNewStatus:  "",
		},
		{
			name:               "invalid member ID",
			memberID:           "invalid",
			notificationID:     "1",
			currentMember:      MockMember(),
			currentStatus:      "",
			notificationExists: false,
			expectedStatus:     http.StatusBadRequest,
			expectError:        true,
			expectedNewStatus:  "",
		},
		{
			name:               "invalid notification ID",
			memberID:           "1",
			notificationID:     "invalid",
			currentMember:      MockMember(),
			currentStatus:      "",
			notificationExists: false,
			expectedStatus:     http.StatusBadRequest,
			expectError:        true,
			expectedNewStatus:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			targetID, _ := strconv.Atoi(tt.memberID)
			authorized := targetID == tt.currentMember.Member_Profile_ID || tt.currentMember.Church_Role == "PASTOR"

			// Only mock database operations for valid IDs and authorized members
			if tt.memberID != "invalid" && tt.notificationID != "invalid" && authorized {
				if tt.notificationExists {
					// Mock current status fetch
					statusRows := sqlmock.NewRows([]string{"notification_status"}).AddRow(tt.currentStatus)
					mock.ExpectQuery("SELECT").WillReturnRows(statusRows)

					mock.ExpectExec("UPDATE \"notification\"").
						WillReturnResult(sqlmock.NewResult(0, 1))
				} else {
					// Mock current status fetch (empty)
					mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"notification_status"}))

					mock.ExpectExec("UPDATE \"notification\"").
						WillReturnResult(sqlmock.NewResult(0, 0))
				}
			}

			c, w := SetupTestContext()
			SetAuthenticatedMember(c, tt.currentMember)
			c.Params = []gin.Param{
				{Key: "member_profile_id", Value: tt.memberID},
				{Key: "notification_id", Value: tt.notificationID},
			}
			c.Request = httptest.NewRequest("PATCH", "/members/"+tt.memberID+"/notifications/"+tt.notificationID, nil)

			ToggleMemberNotificationStatus(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectError {
				assert.NotNil(t, response["error"])
			} else {
				assert.NotNil(t, response["message"])
				assert.Contains(t, response["message"], tt.expectedNewStatus)
			}
		})
	}
}

// Test SendPushNotification - Send push notifications to members
func TestSendPushNotification(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectError    bool
	}{
		{
			name: "service unavailable - push service not initialized",
			requestBody: SendNotificationRequest{
				MemberIDs: []int{1},
				Title:     "Test Notification",
				Body:      "This is a test notification",
				Badge:     intPtr(2),
				Priority:  "high",
			},
			expectedStatus: http.StatusServiceUnavailable, // Service not available in test environment
			expectError:    true,
		},
		{
			name: "service unavailable - multiple members",
			requestBody: SendNotificationRequest{
				MemberIDs: []int{1, 2, 3},
				Title:     "Test Notification",
				Body:      "This is a test notification",
				Priority:  "normal",
			},
			expectedStatus: http.StatusServiceUnavailable, // Service not available in test environment
			expectError:    true,
		},
		{
			name: "missing required field - memberIds",
			requestBody: map[string]interface{}{
				"title": "Test Notification",
				"body":  "This is a test notification",
			},
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name: "missing required field - title",
			requestBody: map[string]interface{}{
				"memberIds": []int{1},
				"body":      "This is a test notification",
			},
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name: "missing required field - body",
			requestBody: map[string]interface{}{
				"memberIds": []int{1},
				"title":     "Test Notification",
			},
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name:           "invalid JSON",
			requestBody:    "{invalid json}",
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := SetupTestContext()

			var jsonData []byte
			if str, ok := tt.requestBody.(string); ok {
				jsonData = []byte(str)
			} else {
				jsonData, _ = json.Marshal(tt.requestBody)
			}

			c.Request = httptest.NewRequest("POST", "/notifications/send", bytes.NewBuffer(jsonData))
			c.Request.Header.Set("Content-Type", "application/json")

			SendPushNotification(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectError {
				assert.NotNil(t, response["error"])
			} else {
				assert.NotNil(t, response["message"])
				assert.NotNil(t, response["memberIds"])
			}
		})
	}
}

// Test DeleteMemberNotification - Delete a notification
func TestDeleteMemberNotification(t *testing.T) {
	tests := []struct {
		name                        string
		memberID                    string
		notificationID              string
		currentMember               models.MemberProfile
		notificationExists          bool
		notificationBelongsToMember bool
		expectedStatus              int
		expectError                 bool
	}{
		{
			name:                        "successful delete - own notification",
			memberID:                    "1",
			notificationID:              "1",
			currentMember:               MockMember(),
			notificationExists:          true,
			notificationBelongsToMember: true,
			expectedStatus:              http.StatusOK,
			expectError:                 false,
		},
		{
			name:                        "successful delete - staff deletes other member's notification",
			memberID:                    "1",
			notificationID:              "1",
			currentMember:               MockPastor(),
			notificationExists:          true,
			notificationBelongsToMember: true,
			expectedStatus:              http.StatusOK,
			expectError:                 false,
		},
		{
			name:                        "notification not found",
			memberID:                    "1",
			notificationID:              "999",
			currentMember:               MockMember(),
			notificationExists:          false,
			notificationBelongsToMember: false,
			expectedStatus:              http.StatusNotFound,
			expectError:                 true,
		},
		{
			name:                        "notification belongs to different member",
			memberID:                    "1",
			notificationID:              "1",
			currentMember:               MockMember(),
			notificationExists:          true,
			notificationBelongsToMember: false,
			expectedStatus:              http.StatusForbidden,
			expectError:                 true,
		},
		{
			name:                        "forbidden - delete other member's notification",
			memberID:                    "2",
			notificationID:              "1",
			currentMember:               MockMember(),
			notificationExists:          false,
			notificationBelongsToMember: false,
			expectedStatus:              http.StatusForbidden,
			expectError:                 true,
		},
		{
			name:                        "invalid member ID",
			memberID:                    "invalid",
			notificationID:              "1",
			currentMember:               MockMember(),
			notificationExists:          false,
			notificationBelongsToMember: false,
			expectedStatus:              http.StatusBadRequest,
			expectError:                 true,
		},
		{
			name:                        "invalid notification ID",
			memberID:                    "1",
			notificationID:              "invalid",
			currentMember:               MockMember(),
			notificationExists:          false,
			notificationBelongsToMember: false,
			expectedStatus:              http.StatusBadRequest,
			expectError:                 true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			targetID, _ := strconv.Atoi(tt.memberID)
			authorized := targetID == tt.currentMember.Member_Profile_ID || tt.currentMember.Church_Role == "PASTOR"

			// Only mock database operations for valid IDs and authorized members
			if tt.memberID != "invalid" && tt.notificationID != "invalid" && authorized {
				if tt.notificationExists {
					ownerID := targetID
					if !tt.notificationBelongsToMember {
						ownerID = 999
					}
					ownershipRows := sqlmock.NewRows([]string{"member_profile_id"}).AddRow(ownerID)
					mock.ExpectQuery("SELECT").WillReturnRows(ownershipRows)

					if tt.notificationBelongsToMember {
						mock.ExpectExec("DELETE FROM \"notification\"").
							WillReturnResult(sqlmock.NewResult(0, 1))
					}
				} else {
					// Mock ownership check (not found)
					mock.ExpectQuery("SELECT").WillReturnError(sql.ErrNoRows)
				}
			}

			c, w := SetupTestContext()
			SetAuthenticatedMember(c, tt.currentMember)
			c.Params = []gin.Param{
				{Key: "member_profile_id", Value: tt.memberID},
				{Key: "notification_id", Value: tt.notificationID},
			}
			c.Request = httptest.NewRequest("DELETE", "/members/"+tt.memberID+"/notifications/"+tt.notificationID, nil)

			DeleteMemberNotification(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectError {
				assert.NotNil(t, response["error"])
			} else {
				assert.NotNil(t, response["message"])
				assert.Contains(t, response["message"], "deleted successfully")
			}
		})
	}
}

// Test MarkAllNotificationsAsRead - Mark all unread notifications as read
func TestMarkAllNotificationsAsRead(t *testing.T) {
	tests := []struct {
		name           string
		memberID       string
		currentMember  models.MemberProfile
		unreadCount    int64
		expectedStatus int
		expectError    bool
	}{
		{
			name:           "successful mark all as read - own notifications",
			memberID:       "1",
			currentMember:  MockMember(),
			unreadCount:    5,
			expectedStatus: http.StatusOK,
			expectError:    false,
		},
		{
			name:           "successful mark all as read - staff for other member",
			memberID:       "1",
			currentMember:  MockPastor(),
			unreadCount:    3,
			expectedStatus: http.StatusOK,
			expectError:    false,
		},
		{
			name:           "no unread notifications",
			memberID:       "1",
			currentMember:  MockMember(),
			unreadCount:    0,
			expectedStatus: http.StatusOK,
			expectError:    false,
		},
		{
			name:           "forbidden - mark all for other member",
			memberID:       "2",
			currentMember:  MockMember(),
			unreadCount:    0,
			expectedStatus: http.StatusForbidden,
			expectError:    true,
		},
		{
			name:           "invalid member ID",
			memberID:       "invalid",
			currentMember:  MockMember(),
			unreadCount:    0,
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			targetID, _ := strconv.Atoi(tt.memberID)
			authorized := targetID == tt.currentMember.Member_Profile_ID || tt.currentMember.Church_Role == "PASTOR"

			if tt.memberID != "invalid" && authorized {
				mock.ExpectExec("UPDATE \"notification\"").
					WillReturnResult(sqlmock.NewResult(0, tt.unreadCount))
			}

			c, w := SetupTestContext()
			SetAuthenticatedMember(c, tt.currentMember)
			c.Params = []gin.Param{
				{Key: "member_profile_id", Value: tt.memberID},
			}
			c.Request = httptest.NewRequest("PATCH", "/members/"+tt.memberID+"/notifications/mark-all-read", nil)

			MarkAllNotificationsAsRead(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectError {
				assert.NotNil(t, response["error"])
			} else {
				assert.NotNil(t, response["message"])
				assert.Contains(t, response["message"], "marked as read")
				assert.Equal(t, float64(tt.unreadCount), response["updatedCount"])
			}
		})
	}
}
