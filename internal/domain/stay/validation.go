package stay

import (
	"errors"
	"strings"
)

// Violation identifies one broken rule of a Request.
type Violation string

const (
	CheckInRequired       Violation = "check_in_required"
	CheckOutRequired      Violation = "check_out_required"
	CheckOutBeforeCheckIn Violation = "check_out_before_check_in"
	CheckInInPast         Violation = "check_in_in_past"
	GuestCountInvalid     Violation = "guest_count_invalid"
	NightlyRateInvalid    Violation = "nightly_rate_invalid"
	ServiceFeeInvalid     Violation = "service_fee_invalid"
	TaxRateInvalid        Violation = "tax_rate_invalid"
)

var messages = map[Violation]string{
	CheckInRequired:       "Check-in date is required",
	CheckOutRequired:      "Check-out date is required",
	CheckOutBeforeCheckIn: "Check-out date must be after check-in date",
	CheckInInPast:         "Check-in date cannot be in the past",
	GuestCountInvalid:     "Please select at least 1 guest",
	NightlyRateInvalid:    "Room rate must be greater than zero",
	ServiceFeeInvalid:     "Service fee cannot be negative",
	TaxRateInvalid:        "Tax rate cannot be negative",
}

// Message is the user-facing text for the violation.
func (v Violation) Message() string {
	if msg, ok := messages[v]; ok {
		return msg
	}
	return string(v)
}

// ValidationResult lists violations in rule order. An empty list is valid.
type ValidationResult struct {
	Violations []Violation
}

func (r ValidationResult) Valid() bool {
	return len(r.Violations) == 0
}

func (r ValidationResult) Has(v Violation) bool {
	for _, got := range r.Violations {
		if got == v {
			return true
		}
	}
	return false
}

// Messages renders every violation, ready for a bulleted list.
func (r ValidationResult) Messages() []string {
	out := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		out = append(out, v.Message())
	}
	return out
}

// Err returns nil for a valid result and an *InvalidRequestError otherwise.
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &InvalidRequestError{Violations: append([]Violation(nil), r.Violations...)}
}

var ErrInvalidRequest = errors.New("stay: invalid request")

// InvalidRequestError is returned by Quote when the request does not validate.
type InvalidRequestError struct {
	Violations []Violation
}

func (e *InvalidRequestError) Error() string {
	codes := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		codes = append(codes, string(v))
	}
	return ErrInvalidRequest.Error() + ": " + strings.Join(codes, ", ")
}

func (e *InvalidRequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// AsInvalidRequest extracts an *InvalidRequestError from err, if any.
func AsInvalidRequest(err error) (*InvalidRequestError, bool) {
	var invalid *InvalidRequestError
	if errors.As(err, &invalid) {
		return invalid, true
	}
	return nil, false
}
