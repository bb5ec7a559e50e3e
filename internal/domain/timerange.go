package domain

import "time"

// Time-range classification for (start, end) pairs. These are the only
// range-validity checks in the system; no other component re-implements
// ordering logic.
//
// Open range: end may be absent (running interval); only a present-but-
// misordered pair is rejected. Closed range: both bounds required,
// zero-length allowed. Strict closed range: both bounds required and
// end must be strictly after start (report/export windows).

// IsValidOpenRange reports whether the pair is valid as an open range:
// either bound absent, or both present with end >= start.
func IsValidOpenRange(start, end *time.Time) bool {
	return start == nil || end == nil || !end.Before(*start)
}

// RequireValidOpenRange returns ErrInvalidTimeRange when both bounds
// are present and misordered. Absent bounds are allowed.
func RequireValidOpenRange(subject Subject, start, end *time.Time) error {
	if !IsValidOpenRange(start, end) {
		return InvalidTimeRange(subject, *start, *end)
	}
	return nil
}

// IsValidClosedRange reports whether the pair is valid as a closed
// range: both bounds present and end >= start. A zero-length interval
// (end == start) is valid.
func IsValidClosedRange(start, end *time.Time) bool {
	return start != nil && end != nil && !end.Before(*start)
}

// RequireValidClosedRange returns ErrMissingTimeValue when a bound is
// absent and ErrInvalidTimeRange when both are present but misordered.
func RequireValidClosedRange(subject Subject, start, end *time.Time) error {
	if start == nil || end == nil {
		return MissingTimeValue(subject, start, end)
	}
	if end.Before(*start) {
		return InvalidTimeRange(subject, *start, *end)
	}
	return nil
}

// IsValidStrictClosedRange reports whether the pair is valid as a
// strict closed range: both bounds present and end strictly after
// start. Zero-length intervals are rejected.
func IsValidStrictClosedRange(start, end *time.Time) bool {
	return start != nil && end != nil && end.After(*start)
}

// RequireValidStrictClosedRange returns ErrMissingTimeValue when a
// bound is absent and ErrInvalidTimeRange when end is not strictly
// after start.
func RequireValidStrictClosedRange(subject Subject, start, end *time.Time) error {
	if start == nil || end == nil {
		return MissingTimeValue(subject, start, end)
	}
	if !end.After(*start) {
		return InvalidTimeRange(subject, *start, *end)
	}
	return nil
}

// DiffSeconds returns the span between start and end in whole seconds,
// clamped to zero when a bound is missing or the pair is misordered.
// Safe for display and aggregation; performs no validation.
func DiffSeconds(start, end *time.Time) int64 {
	if start == nil || end == nil {
		return 0
	}
	secs := int64(end.Sub(*start) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}
