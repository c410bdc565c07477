package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotConfirmed is returned by destructive operations called without a
// confirmation token for the matching action.
var ErrNotConfirmed = stderrors.New("operation requires confirmation")

// FieldError describes a single violated field constraint.
type FieldError struct {
	Field  string
	Reason string
}

func (f FieldError) String() string {
	return f.Field + " " + f.Reason
}

// ValidationError is returned when a record fails its invariants.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid workout data"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "invalid workout data: " + strings.Join(parts, "; ")
}

// Add records a violated constraint.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// OrNil returns nil when no field was recorded.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NotFoundError is returned when an id lookup misses.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// QuotaError is returned when persisted data would exceed the storage budget.
type QuotaError struct {
	Size  int
	Limit int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("storage quota exceeded: %d bytes of %d allowed, export and delete old workouts", e.Size, e.Limit)
}

// ImportError is returned when a snapshot cannot be imported.
type ImportError struct {
	Reason string
	Cause  error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import failed: %s: %v", e.Reason, e.Cause)
	}
	return "import failed: " + e.Reason
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}

// NetworkError wraps a failed upstream call. Adapters recover from it locally.
type NetworkError struct {
	Op         string
	StatusCode int
	Cause      error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: request failed with status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// TimeoutError is returned when an upstream call exceeds its deadline.
type TimeoutError struct {
	Op    string
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: request timed out after %s", e.Op, e.After)
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return stderrors.As(err, &nf)
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// IsQuota reports whether err is or wraps a QuotaError.
func IsQuota(err error) bool {
	var qe *QuotaError
	return stderrors.As(err, &qe)
}

// IsImport reports whether err is or wraps an ImportError.
func IsImport(err error) bool {
	var ie *ImportError
	return stderrors.As(err, &ie)
}

// IsTimeout reports whether err is or wraps a TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return stderrors.As(err, &te)
}
