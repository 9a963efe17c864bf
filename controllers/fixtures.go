package controllers

import (
	"time"

	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/permissions"
	"golang.org/x/crypto/bcrypt"
)

// Test fixture data for use in tests

func intPtr(i int) *int { return &i }

// MockMember creates a sample active member profile for testing
func MockMember() models.MemberProfile {
	phone := "1234567890"
	return models.MemberProfile{
		Member_Profile_ID: 1,
		Username:          "testmember",
		First_Name:        "Test",
		Last_Name:         "Member",
		Email:             "test@example.com",
		Phone_Number:      &phone,
		Church_Role:       string(permissions.RoleMember),
		Membership_Status: models.MembershipStatusActive,
		Registration_Date: time.Now().AddDate(0, -3, 0),
		Admin:             false,
		Is_Active:         true,
		Created_By:        1,
		Updated_By:        1,
		Datetime_Create:   time.Now(),
		Datetime_Update:   time.Now(),
	}
}

// MockMemberWithPassword creates a sample member with a bcrypt hashed password
// Password is "password123" - use this in tests
func MockMemberWithPassword() models.MemberProfile {
	member := MockMember()
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	member.Password = string(hashedPassword)
	return member
}

// MockOnboardingMember creates a member still in the onboarding pipeline
func MockOnboardingMember(status string) models.MemberProfile {
	member := MockMember()
	member.Member_Profile_ID = 3
	member.Username = "newmember"
	member.Email = "new@example.com"
	member.Membership_Status = status
	member.Registration_Date = time.Now().AddDate(0, 0, -7)
	if status == models.MembershipStatusRegistered || status == models.MembershipStatusFormPending {
		deadline := time.Now().AddDate(0, 0, 23)
		member.Form_Deadline = &deadline
	}
	return member
}

// MockPastor creates a sample pastor (staff) profile for testing
func MockPastor() models.MemberProfile {
	phone := "9876543210"
	return models.MemberProfile{
		Member_Profile_ID: 2,
		Username:          "pastor",
		First_Name:        "Pastor",
		Last_Name:         "Member",
		Email:             "pastor@example.com",
		Phone_Number:      &phone,
		Church_Role:       string(permissions.RolePastor),
		Membership_Status: models.MembershipStatusActive,
		Registration_Date: time.Now().AddDate(-2, 0, 0),
		Admin:             false,
		Is_Active:         true,
		Created_By:        1,
		Updated_By:        1,
		Datetime_Create:   time.Now(),
		Datetime_Update:   time.Now(),
	}
}

// MockTreasurer creates a sample treasurer profile for testing
func MockTreasurer() models.MemberProfile {
	member := MockPastor()
	member.Member_Profile_ID = 4
	member.Username = "treasurer"
	member.Email = "treasurer@example.com"
	member.Church_Role = string(permissions.RoleTreasurer)
	return member
}

// MockBenevolenceFund creates a sample fund for testing
func MockBenevolenceFund() models.BenevolenceFund {
	return models.BenevolenceFund{
		Benevolence_Fund_ID: 1,
		Fund_Name:           "General Benevolence",
		Total_Balance:       500.00,
		Is_Active:           true,
		Created_By:          1,
		Updated_By:          1,
		Datetime_Create:     time.Now(),
		Datetime_Update:     time.Now(),
	}
}
