package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/permissions"
	"github.com/doug-martin/goqu/v9"
	"golang.org/x/crypto/bcrypt"
)

func GetMemberProfile(c *gin.Context) {
	member := currentMember(c)

	c.JSON(http.StatusOK, gin.H{
		"member": member,
		"admin":  c.MustGet("admin"),
	})
}

// GetMembers lists member profiles, optionally filtered by membership status.
// Staff only (enforced by route middleware).
func GetMembers(c *gin.Context) {
	conditions := []goqu.Expression{goqu.C("is_active").IsTrue()}

	if status := c.Query("status"); status != "" {
		if !models.IsMembershipStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown membership status"})
			return
		}
		conditions = append(conditions, goqu.C("membership_status").Eq(status))
	}

	var members []models.MemberProfile
	err := initializers.DB.From("member_profile").
		Select("*").
		Where(goqu.And(conditions...)).
		Order(goqu.C("last_name").Asc(), goqu.C("first_name").Asc()).
		ScanStructs(&members)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, members)
}

func GetMember(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("member_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member profile ID"})
		return
	}

	actor := currentActor(c)
	if !permissions.CanAccessOwned(actor, ownedMember(memberID)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to view this member"})
		return
	}

	var member models.MemberProfile
	found, err := initializers.DB.From("member_profile").
		Select("*").
		Where(goqu.And(
			goqu.C("member_profile_id").Eq(memberID),
			goqu.C("is_active").IsTrue(),
		)).
		ScanStruct(&member)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch member"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	c.JSON(http.StatusOK, member)
}

func UpdateMemberProfile(c *gin.Context) {
	member := currentMember(c)

	memberID, err := strconv.Atoi(c.Param("member_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member profile ID"})
		return
	}

	if !permissions.CanAccessOwned(currentActor(c), ownedMember(memberID)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to update this member"})
		return
	}

	var update models.MemberUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := goqu.Record{
		"updated_by":      member.Member_Profile_ID,
		"datetime_update": time.Now(),
	}
	if update.Username != nil {
		record["username"] = *update.Username
	}
	if update.First_Name != nil {
		record["first_name"] = *update.First_Name
	}
	if update.Last_Name != nil {
		record["last_name"] = *update.Last_Name
	}
	if update.Email != nil {
		record["email"] = *update.Email
	}
	if update.Phone_Number != nil {
		record["phone_number"] = *update.Phone_Number
	}

	_, err = initializers.DB.Update("member_profile").
		Set(record).
		Where(goqu.C("member_profile_id").Eq(memberID)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member updated successfully."})
}

func ChangeMemberPassword(c *gin.Context) {
	member := currentMember(c)

	memberID, err := strconv.Atoi(c.Param("member_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member profile ID"})
		return
	}

	if memberID != member.Member_Profile_ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only change your own password"})
		return
	}

	var change models.MemberChangePassword
	if err := c.ShouldBindJSON(&change); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(change.Old_Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(change.New_Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	_, err = initializers.DB.Update("member_profile").
		Set(goqu.Record{
			"password":        string(passwordHash),
			"updated_by":      member.Member_Profile_ID,
			"datetime_update": time.Now(),
		}).
		Where(goqu.C("member_profile_id").Eq(memberID)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully."})
}

// DeleteMemberAccount soft-deletes the member profile. Rows stay in place,
// default queries exclude them.
func DeleteMemberAccount(c *gin.Context) {
	member := currentMember(c)

	memberID, err := strconv.Atoi(c.Param("member_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member profile ID"})
		return
	}

	if !permissions.CanAccessOwned(currentActor(c), ownedMember(memberID)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to delete this member"})
		return
	}

	_, err = initializers.DB.Update("member_profile").
		Set(goqu.Record{
			"is_active":       false,
			"updated_by":      member.Member_Profile_ID,
			"datetime_update": time.Now(),
		}).
		Where(goqu.C("member_profile_id").Eq(memberID)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member account deleted."})
}

// StorePushToken registers or refreshes a device push token for the member.
func StorePushToken(c *gin.Context) {
	member := currentMember(c)

	var req models.PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existingCount, err := initializers.DB.From("member_push_tokens").
		Select("push_token").
		Where(goqu.And(
			goqu.C("member_profile_id").Eq(member.Member_Profile_ID),
			goqu.C("push_token").Eq(req.PushToken),
		)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if existingCount > 0 {
		_, err = initializers.DB.Update("member_push_tokens").
			Set(goqu.Record{"updated_at": time.Now()}).
			Where(goqu.And(
				goqu.C("member_profile_id").Eq(member.Member_Profile_ID),
				goqu.C("push_token").Eq(req.PushToken),
			)).
			Executor().Exec()
	} else {
		_, err = initializers.DB.Insert("member_push_tokens").
			Rows(goqu.Record{
				"member_profile_id": member.Member_Profile_ID,
				"push_token":        req.PushToken,
				"platform":          req.Platform,
			}).
			Executor().Exec()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store push token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push token stored."})
}

// ownedMember adapts a member ID to the ownership predicate.
type ownedMember int

func (o ownedMember) OwnerMemberID() int { return int(o) }
