package result

import "github.com/spf13/cast"

// Category classifies an Error for boundary handling (HTTP status mapping,
// alerting severity, retry decisions made by callers).
type Category int

const (
	// CategoryFailure is a generic failure without a more specific classification.
	CategoryFailure Category = iota

	// CategoryValidation indicates one or more field-level rule violations.
	CategoryValidation

	// CategoryProblem indicates a business-rule violation.
	CategoryProblem

	// CategoryNotFound indicates a referenced entity is absent.
	CategoryNotFound

	// CategoryConflict indicates state contention.
	CategoryConflict

	// CategoryCancelled indicates the operation observed context cancellation.
	CategoryCancelled
)

// String returns the stable name of the category.
func (c Category) String() string {
	switch c {
	case CategoryFailure:
		return "failure"
	case CategoryValidation:
		return "validation"
	case CategoryProblem:
		return "problem"
	case CategoryNotFound:
		return "not_found"
	case CategoryConflict:
		return "conflict"
	case CategoryCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Violation describes a single failed validation rule on a named field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the expected-failure value carried by a failed Result.
//
// Code is a stable identifier suitable for localized message lookup at the
// boundary. Args carries structured values for message interpolation; the
// dispatch core never localizes, it only transports the data needed to do so.
type Error struct {
	Code       string         `json:"code"`
	Category   Category       `json:"category"`
	Message    string         `json:"message"`
	Args       map[string]any `json:"args,omitempty"`
	Violations []Violation    `json:"violations,omitempty"`
}

// Predefined errors reused across the dispatch core.
var (
	// ErrNone is the zero error. A successful Result carries ErrNone.
	ErrNone = Error{}

	// ErrNullValue is returned by From when given a nil value.
	ErrNullValue = Error{Code: "NULL_VALUE", Category: CategoryFailure, Message: "a nil value was provided"}
)

// NewFailure builds a generic failure error.
func NewFailure(code, message string) Error {
	return Error{Code: code, Category: CategoryFailure, Message: message}
}

// NewProblem builds a business-rule violation error.
func NewProblem(code, message string) Error {
	return Error{Code: code, Category: CategoryProblem, Message: message}
}

// NewNotFound builds an error for an absent entity.
func NewNotFound(code, message string) Error {
	return Error{Code: code, Category: CategoryNotFound, Message: message}
}

// NewConflict builds an error for state contention.
func NewConflict(code, message string) Error {
	return Error{Code: code, Category: CategoryConflict, Message: message}
}

// NewValidation aggregates every failing rule into a single validation error.
// All violations are carried, not just the first.
func NewValidation(violations ...Violation) Error {
	return Error{
		Code:       "VALIDATION_FAILED",
		Category:   CategoryValidation,
		Message:    "one or more validation rules failed",
		Violations: violations,
	}
}

// NewCancelled builds an error reporting observed context cancellation.
func NewCancelled(cause error) Error {
	e := Error{Code: "OPERATION_CANCELLED", Category: CategoryCancelled, Message: "operation cancelled"}
	if cause != nil {
		e = e.WithArgs(map[string]any{"cause": cause.Error()})
	}
	return e
}

// WithArgs returns a copy of the error with the given interpolation arguments
// merged in. The receiver is not mutated.
func (e Error) WithArgs(args map[string]any) Error {
	merged := make(map[string]any, len(e.Args)+len(args))
	for k, v := range e.Args {
		merged[k] = v
	}
	for k, v := range args {
		merged[k] = v
	}
	e.Args = merged
	return e
}

// IsNone reports whether the error is the zero error.
func (e Error) IsNone() bool {
	return e.Code == "" && e.Category == CategoryFailure
}

// Is reports identity by code and category. Args and violations are payload,
// not identity.
func (e Error) Is(other Error) bool {
	return e.Code == other.Code && e.Category == other.Category
}

// StringArgs returns the interpolation arguments with every value rendered
// as a string, for carriers that only transport string pairs (message
// headers, alert details).
func (e Error) StringArgs() map[string]string {
	if len(e.Args) == 0 {
		return nil
	}
	out := make(map[string]string, len(e.Args))
	for k, v := range e.Args {
		out[k] = cast.ToString(v)
	}
	return out
}

// Error implements the error interface so an Error can cross boundaries that
// expect plain Go errors.
func (e Error) Error() string {
	if e.IsNone() {
		return "no error"
	}
	return e.Code + ": " + e.Message
}
