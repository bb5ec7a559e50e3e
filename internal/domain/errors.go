package domain

import (
	"errors"
	"fmt"
	"time"
)

// Subject names the entity an error is about, for error messages.
type Subject string

const (
	SubjectWorkSession Subject = "work session"
	SubjectWorkSegment Subject = "work segment"
	SubjectCategory    Subject = "category"
	SubjectActivity    Subject = "activity"
	SubjectWorkReport  Subject = "work report"
)

// Sentinel errors for the domain-rule taxonomy. Callers classify
// failures with errors.Is; the wrapped message carries the subject.
var (
	// ErrAlreadyRunning: start attempted while an open row exists.
	ErrAlreadyRunning = errors.New("already running")
	// ErrNoActive: stop (or a dependent operation) attempted with
	// nothing open.
	ErrNoActive = errors.New("no active")
	// ErrOperationBlocked: an action on one subject is disallowed
	// because a related subject is currently open.
	ErrOperationBlocked = errors.New("operation blocked by running")
	// ErrNotFound: a lookup by id found nothing.
	ErrNotFound = errors.New("not found")
	// ErrMissingTimeValue: a required range bound is absent.
	ErrMissingTimeValue = errors.New("missing time value")
	// ErrInvalidTimeRange: both bounds present but misordered.
	ErrInvalidTimeRange = errors.New("invalid time range")
	// ErrNoFieldsToUpdate: a patch supplied nothing to change.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	// ErrConflict: a storage-level uniqueness violation surfaced at
	// commit despite locking. Indicates a possible locking gap and is
	// logged more severely than the others.
	ErrConflict = errors.New("conflict")
)

func AlreadyRunning(subject Subject) error {
	return fmt.Errorf("%s is %w", subject, ErrAlreadyRunning)
}

func NoActive(subject Subject) error {
	return fmt.Errorf("%w %s", ErrNoActive, subject)
}

func OperationBlocked(target, running Subject) error {
	return fmt.Errorf("%s is not allowed while %s is running: %w", target, running, ErrOperationBlocked)
}

func NotFound(subject Subject, id string) error {
	if id == "" {
		return fmt.Errorf("%s %w", subject, ErrNotFound)
	}
	return fmt.Errorf("%s %w: id=%s", subject, ErrNotFound, id)
}

func MissingTimeValue(subject Subject, start, end *time.Time) error {
	switch {
	case start == nil && end == nil:
		return fmt.Errorf("%s range requires both start time and end time: %w", subject, ErrMissingTimeValue)
	case start == nil:
		return fmt.Errorf("%s range requires start time: %w", subject, ErrMissingTimeValue)
	default:
		return fmt.Errorf("%s range requires end time: %w", subject, ErrMissingTimeValue)
	}
}

func InvalidTimeRange(subject Subject, start, end time.Time) error {
	return fmt.Errorf("%s has %w: end time (%s) must not be before start time (%s)",
		subject, ErrInvalidTimeRange, end.Format(time.RFC3339), start.Format(time.RFC3339))
}

func NoFieldsToUpdate(subject Subject) error {
	return fmt.Errorf("%w for %s", ErrNoFieldsToUpdate, subject)
}

func Conflict(subject Subject, cause error) error {
	return fmt.Errorf("%s %w with existing data: %v", subject, ErrConflict, cause)
}
