package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/permissions"
	"github.com/doug-martin/goqu/v9"
)

// CreateInvitationCode mints an invitation. A skip-onboarding invitation
// lands the signing member directly in ACTIVE, bypassing the pipeline.
func CreateInvitationCode(c *gin.Context) {
	member := currentMember(c)

	var create models.InvitationCodeCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := create.PresetRole
	if role == "" {
		role = string(permissions.RoleMember)
	}
	if !permissions.IsValidRole(permissions.Role(role)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown preset role"})
		return
	}

	expiresInDays := create.ExpiresInDays
	if expiresInDays <= 0 {
		expiresInDays = 7
	}

	invitation := models.InvitationCode{
		Code:             generateInvitationCode(),
		Preset_Role:      role,
		Skip_Onboarding:  create.SkipOnboarding,
		Datetime_Expires: time.Now().AddDate(0, 0, expiresInDays),
		Is_Active:        true,
		Created_By:       member.Member_Profile_ID,
		Updated_By:       member.Member_Profile_ID,
	}

	insert := initializers.DB.Insert("invitation_code").Rows(invitation).Returning("code")

	var insertedCode string
	_, insertErr := insert.Executor().ScanVal(&insertedCode)
	if insertErr != nil {
		log.Println(insertErr)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invitation code", "details": insertErr.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": insertedCode, "expiresAt": invitation.Datetime_Expires})
}

// RevokeInvitationCode deactivates an invitation before its expiry.
func RevokeInvitationCode(c *gin.Context) {
	member := currentMember(c)
	code := c.Param("code")

	result, err := initializers.DB.Update("invitation_code").
		Set(goqu.Record{
			"is_active":       false,
			"updated_by":      member.Member_Profile_ID,
			"datetime_update": time.Now(),
		}).
		Where(goqu.And(
			goqu.C("code").Eq(code),
			goqu.C("is_active").IsTrue(),
		)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke invitation code"})
		return
	}

	affected, err := result.RowsAffected()
	if err != nil || affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation code not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation code revoked."})
}

func generateInvitationCode() string {
	randomBytes := make([]byte, 4)
	_, err := rand.Read(randomBytes)
	if err != nil {
		panic(err)
	}

	randomString := hex.EncodeToString(randomBytes)

	return strings.ToUpper(fmt.Sprintf("INV-%s", randomString))
}
