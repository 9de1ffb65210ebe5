package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrainingSession_ElapsedString(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		elapsed  time.Duration
		expected string
	}{
		{
			name:     "minutes and seconds",
			elapsed:  125 * time.Second,
			expected: "2 хв 5 с",
		},
		{
			name:     "under a minute",
			elapsed:  42 * time.Second,
			expected: "0 хв 42 с",
		},
		{
			name:     "exact minutes",
			elapsed:  3 * time.Minute,
			expected: "3 хв 0 с",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := TrainingSession{StartedAt: start, FinishedAt: start.Add(tt.elapsed)}
			assert.Equal(t, tt.expected, s.ElapsedString())
		})
	}
}
