package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/permissions"
)

// currentMember pulls the authenticated member profile set by CheckAuth.
func currentMember(c *gin.Context) models.MemberProfile {
	return c.MustGet("currentMember").(models.MemberProfile)
}

// currentActor pulls the permission actor set by CheckAuth.
func currentActor(c *gin.Context) permissions.Actor {
	v, ok := c.Get("actor")
	if !ok {
		return permissions.Anonymous{}
	}
	actor, ok := v.(permissions.Actor)
	if !ok {
		return permissions.Anonymous{}
	}
	return actor
}

// respondServiceError maps the domain error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *models.InvalidTransitionError:
		c.JSON(http.StatusConflict, gin.H{"error": e.Error()})
	case *models.ValidationError:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Message, "field": e.Field})
	case *models.NotFoundError:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *models.PermissionDeniedError:
		c.JSON(http.StatusForbidden, gin.H{"error": e.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
