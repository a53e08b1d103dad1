package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{
			name:     "полторы секунды округляются вверх",
			duration: 1500 * time.Millisecond,
			expected: "2 Sekunden",
		},
		{
			name:     "одна секунда в единственном числе",
			duration: 1 * time.Second,
			expected: "1 Sekunde",
		},
		{
			name:     "59.9 секунд ещё не минута",
			duration: 59*time.Second + 900*time.Millisecond,
			expected: "60 Sekunden",
		},
		{
			name:     "ровно час показывает часы и нулевые минуты",
			duration: 3600000 * time.Millisecond,
			expected: "1 Stunde 0 Minuten",
		},
		{
			name:     "полтора часа",
			duration: 90 * time.Minute,
			expected: "1 Stunde 30 Minuten",
		},
		{
			name:     "полторы минуты показывают минуты и секунды",
			duration: 90000 * time.Millisecond,
			expected: "1 Minute 30 Sekunden",
		},
		{
			name:     "минуты округляются вниз",
			duration: 2*time.Minute + 59*time.Second + 900*time.Millisecond,
			expected: "2 Minuten 59 Sekunden",
		},
		{
			name:     "ноль",
			duration: 0,
			expected: "0 Sekunden",
		},
		{
			name:     "отрицательная длительность",
			duration: -5 * time.Second,
			expected: "0 Sekunden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRemaining(tt.duration))
		})
	}
}

func TestFormatUntil(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(61 * time.Second)
	assert.Equal(t, "1 Minute 1 Sekunde", FormatUntil(until, now))
}
