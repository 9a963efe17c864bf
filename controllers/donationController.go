package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/doug-martin/goqu/v9"
)

// RecordDonation books a gift against the caller's giving record.
func RecordDonation(c *gin.Context) {
	member := currentMember(c)

	var create models.DonationCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	donationDate := time.Now()
	if create.DonationDate != "" {
		parsed, parseErr := time.Parse("2006-01-02", create.DonationDate)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation date, expected YYYY-MM-DD"})
			return
		}
		donationDate = parsed
	}

	donation := models.Donation{
		Member_Profile_ID: member.Member_Profile_ID,
		Amount:            create.Amount,
		Fund_Designation:  create.FundDesignation,
		Method:            create.Method,
		Donation_Date:     donationDate,
		Is_Active:         true,
		Created_By:        member.Member_Profile_ID,
		Updated_By:        member.Member_Profile_ID,
	}

	insert := initializers.DB.Insert("donation").Rows(donation).Returning("donation_id")

	var donationID int
	_, insertErr := insert.Executor().ScanVal(&donationID)
	if insertErr != nil {
		log.Println(insertErr)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record donation", "details": insertErr.Error()})
		return
	}

	donation.Donation_ID = donationID
	c.JSON(http.StatusCreated, donation)
}

// GetMyDonations lists the caller's own giving history.
func GetMyDonations(c *gin.Context) {
	member := currentMember(c)

	var donations []models.Donation
	err := initializers.DB.From("donation").
		Where(goqu.And(
			goqu.C("member_profile_id").Eq(member.Member_Profile_ID),
			goqu.C("is_active").IsTrue(),
		)).
		Order(goqu.C("donation_date").Desc()).
		ScanStructs(&donations)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch donations"})
		return
	}

	c.JSON(http.StatusOK, donations)
}

// GetGivingSummary aggregates giving per member over an optional date
// range. Finance team only; enforced by routing.
func GetGivingSummary(c *gin.Context) {
	query := initializers.DB.From("donation").
		Select(
			goqu.C("member_profile_id"),
			goqu.SUM("amount").As("total_amount"),
			goqu.COUNT("*").As("donation_count"),
		).
		Where(goqu.C("is_active").IsTrue()).
		GroupBy(goqu.C("member_profile_id")).
		Order(goqu.C("total_amount").Desc())

	if from := c.Query("from"); from != "" {
		fromDate, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
			return
		}
		query = query.Where(goqu.C("donation_date").Gte(fromDate))
	}
	if to := c.Query("to"); to != "" {
		toDate, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
			return
		}
		query = query.Where(goqu.C("donation_date").Lte(toDate))
	}

	var summaries []models.GivingSummary
	if err := query.ScanStructs(&summaries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build giving summary"})
		return
	}

	c.JSON(http.StatusOK, summaries)
}
