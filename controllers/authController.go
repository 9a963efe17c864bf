package controllers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/services"
	"github.com/doug-martin/goqu/v9"
	"golang.org/x/crypto/bcrypt"
)

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// PublicMemberSignup registers a member through the public signup flow. An
// invitation code can pre-seed the role and, for skip-onboarding codes, land
// the member directly in ACTIVE.
func PublicMemberSignup(c *gin.Context) {
	var signup models.MemberSignup

	if err := c.ShouldBindJSON(&signup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if signup.Username == "" || signup.Password == "" || signup.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, password and email are required"})
		return
	}

	usernameCount, err := initializers.DB.From("member_profile").
		Select("username").
		Where(goqu.C("username").Eq(signup.Username)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if usernameCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists."})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := services.CreateMember(signup, string(passwordHash))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if emailService := services.GetEmailService(); emailService != nil {
		if err := emailService.SendWelcomeEmail(member.Email, member.First_Name); err != nil {
			log.Printf("Welcome email failed for member %d: %v", member.Member_Profile_ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member registered successfully.",
		"member":  member,
	})
}

// AdminMemberSignup lets staff create a member directly.
func AdminMemberSignup(c *gin.Context) {
	PublicMemberSignup(c)
}

func MemberLogin(c *gin.Context) {
	var login models.Login

	if err := c.ShouldBindJSON(&login); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var member models.MemberProfile
	found, err := initializers.DB.From("member_profile").
		Select("*").
		Where(goqu.And(
			goqu.C("username").Eq(login.Username),
			goqu.C("is_active").IsTrue(),
		)).
		ScanStruct(&member)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(login.Password))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	generateToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  member.Member_Profile_ID,
		"exp": time.Now().Add(time.Hour * 24).Unix(),
	})

	token, err := generateToken.SignedString([]byte(os.Getenv("SECRET")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member logged in successfully.",
		"token":   token,
		"member":  member,
	})
}

// CheckUsernameAvailability reports whether a username is free to register.
func CheckUsernameAvailability(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username query parameter is required"})
		return
	}

	count, err := initializers.DB.From("member_profile").
		Select("username").
		Where(goqu.C("username").Eq(username)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":  username,
		"available": count == 0,
	})
}
