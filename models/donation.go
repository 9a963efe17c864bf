package models

import "time"

type Donation struct {
	Donation_ID       int       `json:"donationId" goqu:"skipinsert"`
	Member_Profile_ID int       `json:"memberProfileId"`
	Amount            float64   `json:"amount"`
	Fund_Designation  string    `json:"fundDesignation"`
	Method            string    `json:"method"`
	Donation_Date     time.Time `json:"donationDate"`
	Is_Active         bool      `json:"isActive"`
	Created_By        int       `json:"createdBy"`
	Datetime_Create   time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Updated_By        int       `json:"updatedBy"`
	Datetime_Update   time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

type DonationCreate struct {
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	FundDesignation string  `json:"fundDesignation" binding:"required"`
	Method          string  `json:"method" binding:"required,oneof=cash check card online"`
	DonationDate    string  `json:"donationDate"`
}

type GivingSummary struct {
	Member_Profile_ID int     `json:"memberProfileId"`
	Total_Amount      float64 `json:"totalAmount"`
	Donation_Count    int     `json:"donationCount"`
}
