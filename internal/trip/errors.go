package trip

import "errors"

// Kind classifies why a trip could not be planned.
type Kind int

const (
	KindMissingField Kind = iota + 1
	KindDateFormat
	KindInvalidRange
	KindGeneration
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrDateFormat   = errors.New("invalid date format")
	ErrInvalidRange = errors.New("end date must be after start date")
	ErrGeneration   = errors.New("itinerary generation failed")
)

// ClassInvalidInput and ClassError are the user-facing classes of a Kind.
const (
	ClassInvalidInput = "invalid input"
	ClassError        = "error"
)

func (k Kind) String() string {
	switch k {
	case KindMissingField:
		return "missing_field"
	case KindDateFormat:
		return "date_format"
	case KindInvalidRange:
		return "invalid_range"
	case KindGeneration:
		return "generation_failure"
	default:
		return "unknown"
	}
}

// Class reports whether the failure is the user's input or an upstream error.
func (k Kind) Class() string {
	if k == KindGeneration {
		return ClassError
	}
	return ClassInvalidInput
}

func (k Kind) sentinel() error {
	switch k {
	case KindMissingField:
		return ErrMissingField
	case KindDateFormat:
		return ErrDateFormat
	case KindInvalidRange:
		return ErrInvalidRange
	case KindGeneration:
		return ErrGeneration
	default:
		return nil
	}
}

// Error is the only error type returned by Planner.PlanTrip.
// errors.Is matches both the Kind's sentinel and the wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// UserMessage is the text shown to the person who submitted the trip.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindDateFormat:
		return "Invalid date format. Please use YYYY-MM-DD."
	case KindGeneration:
		return "Error: " + e.Message
	default:
		return "Please fill in all fields correctly."
	}
}
