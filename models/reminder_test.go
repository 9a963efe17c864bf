package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextReminderStage(t *testing.T) {
	tests := []struct {
		name      string
		offsets   []int
		stage     int
		daysUntil int
		wantNext  int
		wantDue   bool
	}{
		{"five days out from fresh", ReminderOffsetsDefault, 0, 5, 1, true},
		{"six days out is too early", ReminderOffsetsDefault, 0, 6, 0, false},
		{"three days out from fresh catches up in one claim", ReminderOffsetsDefault, 0, 3, 2, true},
		{"same day from fresh catches up in one claim", ReminderOffsetsDefault, 0, 0, 4, true},
		{"three days after five-day window fired", ReminderOffsetsDefault, 1, 3, 2, true},
		{"four days after five-day window fired is quiet", ReminderOffsetsDefault, 1, 4, 0, false},
		{"one day out after three-day window fired", ReminderOffsetsDefault, 2, 1, 3, true},
		{"same day after one-day window fired", ReminderOffsetsDefault, 3, 0, 4, true},
		{"all windows fired", ReminderOffsetsDefault, 4, 0, 0, false},
		{"date already passed", ReminderOffsetsDefault, 0, -1, 0, false},
		{"negative stage", ReminderOffsetsDefault, -1, 3, 0, false},
		{"lesson offsets three days out", ReminderOffsetsLesson, 0, 3, 1, true},
		{"lesson offsets same day from fresh", ReminderOffsetsLesson, 0, 0, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, due := NextReminderStage(tt.offsets, tt.stage, tt.daysUntil)
			assert.Equal(t, tt.wantDue, due)
			if due {
				assert.Equal(t, tt.wantNext, next)
			}
		})
	}
}

// A sweep that claims a stage must not find the same window due again,
// whatever day it reruns on.
func TestNextReminderStageIsIdempotentAcrossReruns(t *testing.T) {
	for daysUntil := 5; daysUntil >= 0; daysUntil-- {
		stage := 0
		fires := 0
		// Two sweeps per day, every day until the target date.
		for day := daysUntil; day >= 0; day-- {
			for run := 0; run < 2; run++ {
				if next, due := NextReminderStage(ReminderOffsetsDefault, stage, day); due {
					stage = next
					fires++
				}
			}
		}
		// One catch-up fire on the first due day, then one per remaining
		// window inside the starting distance.
		expected := 1
		for _, offset := range ReminderOffsetsDefault {
			if offset < daysUntil {
				expected++
			}
		}
		assert.Equal(t, expected, fires, "starting %d days out", daysUntil)
	}
}

func TestReminderOffsetSent(t *testing.T) {
	// Stage 2 means the 5-day and 3-day windows fired.
	assert.True(t, ReminderOffsetSent(ReminderOffsetsDefault, 2, 5))
	assert.True(t, ReminderOffsetSent(ReminderOffsetsDefault, 2, 3))
	assert.False(t, ReminderOffsetSent(ReminderOffsetsDefault, 2, 1))
	assert.False(t, ReminderOffsetSent(ReminderOffsetsDefault, 2, 0))

	// A catch-up claim to stage 4 reports every window as sent, including
	// windows that never individually fired.
	assert.True(t, ReminderOffsetSent(ReminderOffsetsDefault, 4, 3))
	assert.True(t, ReminderOffsetSent(ReminderOffsetsDefault, 4, 0))

	// Unknown offset is never reported sent.
	assert.False(t, ReminderOffsetSent(ReminderOffsetsDefault, 4, 7))
}
