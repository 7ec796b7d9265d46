package trip_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/trip-planner/internal/trip"
)

func TestValidateDates_WholeDayDifference(t *testing.T) {
	cases := []struct {
		start, end string
		want       trip.Duration
	}{
		{"2025-06-01", "2025-06-05", 4},
		{"2025-07-01", "2025-07-04", 3},
		{"2025-06-01", "2025-06-02", 1},
		{"2024-02-28", "2024-03-01", 2},
		{"2025-12-30", "2026-01-02", 3},
		{"2025-03-29", "2025-03-31", 2},
		{"1700-01-01", "2025-01-01", 118704},
		{"0001-01-01", "9999-12-31", 3652058},
	}
	for _, tc := range cases {
		t.Run(tc.start+"_"+tc.end, func(t *testing.T) {
			got, err := trip.ValidateDates(tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidateDates_SameDayRejected(t *testing.T) {
	_, err := trip.ValidateDates("2025-06-01", "2025-06-01")
	require.ErrorIs(t, err, trip.ErrInvalidRange)
}

func TestValidateDates_InvertedRangeRejected(t *testing.T) {
	_, err := trip.ValidateDates("2025-06-05", "2025-06-01")
	require.ErrorIs(t, err, trip.ErrInvalidRange)
}

func TestValidateDates_BadFormat(t *testing.T) {
	cases := map[string][2]string{
		"garbage start":   {"not-a-date", "2025-06-05"},
		"garbage end":     {"2025-06-01", "tomorrow"},
		"slashes":         {"2025/06/01", "2025/06/05"},
		"day first":       {"01-06-2025", "05-06-2025"},
		"impossible date": {"2025-02-30", "2025-03-02"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := trip.ValidateDates(in[0], in[1])
			require.ErrorIs(t, err, trip.ErrDateFormat)
			assert.NotErrorIs(t, err, trip.ErrInvalidRange)
		})
	}
}
