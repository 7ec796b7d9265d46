package trip

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted date format at the boundary.
const DateLayout = time.DateOnly

const secondsPerDay = 24 * 60 * 60

// ValidateDates parses both dates and returns the number of whole days
// between them. Same-day and inverted ranges are rejected.
func ValidateDates(startDate, endDate string) (Duration, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return 0, fmt.Errorf("%w: start date %q", ErrDateFormat, startDate)
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return 0, fmt.Errorf("%w: end date %q", ErrDateFormat, endDate)
	}

	// Both dates parse to UTC midnight; Unix seconds avoid time.Duration's
	// 292-year ceiling.
	days := Duration((end.Unix() - start.Unix()) / secondsPerDay)
	if days <= 0 {
		return 0, fmt.Errorf("%w: %s to %s spans %d days", ErrInvalidRange, startDate, endDate, days)
	}

	return days, nil
}
