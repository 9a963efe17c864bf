package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"no lessons scheduled", 0, 0, 0},
		{"nothing completed", 0, 8, 0},
		{"halfway", 4, 8, 50},
		{"rounds up", 1, 3, 33},
		{"rounds to nearest", 2, 3, 67},
		{"complete", 8, 8, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressPercentage(tt.completed, tt.total))
		})
	}
}

func TestCanTransitionLesson(t *testing.T) {
	assert.True(t, CanTransitionLesson(LessonStatusUpcoming, LessonStatusCompleted))
	assert.True(t, CanTransitionLesson(LessonStatusUpcoming, LessonStatusAbsent))
	// A missed lesson can still be made up later.
	assert.True(t, CanTransitionLesson(LessonStatusAbsent, LessonStatusCompleted))
	assert.False(t, CanTransitionLesson(LessonStatusCompleted, LessonStatusUpcoming))
	assert.False(t, CanTransitionLesson(LessonStatusCompleted, LessonStatusAbsent))
}
