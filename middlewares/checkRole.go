package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingoftech-v01/egliseconnect-sub002/permissions"
)

// CheckStaff aborts unless the actor holds a staff role (pastor/admin) or the
// platform superuser flag.
func CheckStaff(c *gin.Context) {
	if !permissions.IsStaff(CurrentActor(c)) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff role required"})
		return
	}
	c.Next()
}

// CheckFinance aborts unless the actor holds a finance role
// (treasurer/pastor/admin) or the platform superuser flag.
func CheckFinance(c *gin.Context) {
	if !permissions.CanManageFinances(CurrentActor(c)) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Finance role required"})
		return
	}
	c.Next()
}

// CheckCareTeam aborts unless the actor is a deacon or above.
func CheckCareTeam(c *gin.Context) {
	if !permissions.CanAssistCare(CurrentActor(c)) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Care team role required"})
		return
	}
	c.Next()
}
