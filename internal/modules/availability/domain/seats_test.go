package domain

import (
	"math"
	"testing"
)

func TestCalculateSeats(t *testing.T) {
	cases := []struct {
		name     string
		record   map[string]any
		expected int
	}{
		{
			name:     "seatsAvailable wins over later aliases",
			record:   map[string]any{"seatsAvailable": 5.0, "available": 99.0, "vacancies": 1.0},
			expected: 5,
		},
		{
			name:     "available wins over vacancies",
			record:   map[string]any{"available": 7.0, "vacancies": 2.0},
			expected: 7,
		},
		{
			name:     "vacancies",
			record:   map[string]any{"vacancies": 4.0},
			expected: 4,
		},
		{
			name:     "availableSeats",
			record:   map[string]any{"availableSeats": 11.0},
			expected: 11,
		},
		{
			name:     "remainingSeats",
			record:   map[string]any{"remainingSeats": 2.0},
			expected: 2,
		},
		{
			name:     "numeric string coerces",
			record:   map[string]any{"seatsAvailable": "12"},
			expected: 12,
		},
		{
			name:     "garbage string yields zero",
			record:   map[string]any{"seatsAvailable": "lots"},
			expected: 0,
		},
		{
			name:     "nan yields zero",
			record:   map[string]any{"seatsAvailable": math.NaN()},
			expected: 0,
		},
		{
			name:     "nil alias falls through to next",
			record:   map[string]any{"seatsAvailable": nil, "available": 3.0},
			expected: 3,
		},
		{
			name:     "negative passes unclamped",
			record:   map[string]any{"seatsAvailable": -2.0},
			expected: -2,
		},
		{
			name:     "zero seats present beats absent",
			record:   map[string]any{"seatsAvailable": 0.0, "available": 9.0},
			expected: 0,
		},
		{
			name:     "no alias present",
			record:   map[string]any{"unrelated": 8.0},
			expected: 0,
		},
		{
			name:     "nil record",
			record:   nil,
			expected: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalculateSeats(tc.record); got != tc.expected {
				t.Fatalf("expected %d, got %d", tc.expected, got)
			}
		})
	}
}
