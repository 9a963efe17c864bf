package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionMembership(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"registered to form pending", MembershipStatusRegistered, MembershipStatusFormPending, true},
		{"registered direct to active via invitation", MembershipStatusRegistered, MembershipStatusActive, true},
		{"form pending to form submitted", MembershipStatusFormPending, MembershipStatusFormSubmitted, true},
		{"form submitted to in review", MembershipStatusFormSubmitted, MembershipStatusInReview, true},
		{"in review approved to training", MembershipStatusInReview, MembershipStatusInTraining, true},
		{"in review rejected", MembershipStatusInReview, MembershipStatusRejected, true},
		{"in review changes requested", MembershipStatusInReview, MembershipStatusFormPending, true},
		{"training to interview", MembershipStatusInTraining, MembershipStatusInterviewScheduled, true},
		{"interview to active", MembershipStatusInterviewScheduled, MembershipStatusActive, true},
		{"interview to rejected", MembershipStatusInterviewScheduled, MembershipStatusRejected, true},
		{"rejected reactivation", MembershipStatusRejected, MembershipStatusFormPending, true},
		{"expired reactivation", MembershipStatusExpired, MembershipStatusFormPending, true},
		{"form pending expires", MembershipStatusFormPending, MembershipStatusExpired, true},

		{"active is terminal", MembershipStatusActive, MembershipStatusFormPending, false},
		{"no skipping review", MembershipStatusFormSubmitted, MembershipStatusInTraining, false},
		{"no skipping training", MembershipStatusInReview, MembershipStatusActive, false},
		{"no going backwards from training", MembershipStatusInTraining, MembershipStatusFormSubmitted, false},
		{"rejected cannot go straight to active", MembershipStatusRejected, MembershipStatusActive, false},
		{"unknown from status", "LIMBO", MembershipStatusActive, false},
		{"unknown to status", MembershipStatusRegistered, "LIMBO", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransitionMembership(tt.from, tt.to))
		})
	}
}

func TestIsTerminalMembershipStatus(t *testing.T) {
	assert.True(t, IsTerminalMembershipStatus(MembershipStatusActive))
	assert.True(t, IsTerminalMembershipStatus(MembershipStatusRejected))
	assert.True(t, IsTerminalMembershipStatus(MembershipStatusExpired))

	for _, status := range InProcessMembershipStatuses() {
		assert.False(t, IsTerminalMembershipStatus(status), status)
	}
}

func TestIsMembershipStatus(t *testing.T) {
	assert.True(t, IsMembershipStatus(MembershipStatusInTraining))
	assert.False(t, IsMembershipStatus("ARCHIVED"))
	assert.False(t, IsMembershipStatus(""))
}
