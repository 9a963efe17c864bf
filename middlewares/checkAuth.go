package middlewares

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/permissions"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

func CheckAuth(c *gin.Context) {

	authHeader := c.GetHeader("Authorization")

	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	authToken := strings.Split(authHeader, " ")
	if len(authToken) != 2 || authToken[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	tokenString := authToken[1]
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("SECRET")), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		c.Abort()
		return
	}

	if float64(time.Now().Unix()) > claims["exp"].(float64) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var member models.MemberProfile
	_, err = initializers.DB.From("member_profile").
		Select("*").
		Where(goqu.And(
			goqu.C("member_profile_id").Eq(claims["id"]),
			goqu.C("is_active").IsTrue(),
		)).
		ScanStruct(&member)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load member profile", "details": err.Error()})
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if member.Member_Profile_ID == 0 {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.Set("currentMember", member)
	c.Set("actor", ActorFor(member))
	c.Set("admin", member.Admin)

	c.Next()

}

// ActorFor builds the explicit permission actor for a loaded member profile.
// A profile with an unknown role is treated as a plain user, the lowest-trust
// authenticated case.
func ActorFor(member models.MemberProfile) permissions.Actor {
	role := permissions.Role(member.Church_Role)
	if !permissions.IsValidRole(role) {
		return permissions.PlainUser{UserID: member.Member_Profile_ID, Superuser: member.Admin}
	}
	return permissions.MemberActor{
		MemberID:  member.Member_Profile_ID,
		Role:      role,
		Superuser: member.Admin,
	}
}

// CurrentActor pulls the actor set by CheckAuth, defaulting to Anonymous.
func CurrentActor(c *gin.Context) permissions.Actor {
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
