package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tp(t time.Time) *time.Time { return &t }

func TestOpenRange(t *testing.T) {
	base := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		valid bool
	}{
		{"both nil", nil, nil, true},
		{"start only", tp(base), nil, true},
		{"end only", nil, tp(base), true},
		{"ordered", tp(base), tp(base.Add(time.Hour)), true},
		{"zero length", tp(base), tp(base), true},
		{"misordered", tp(base.Add(time.Hour)), tp(base), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidOpenRange(tt.start, tt.end))
			err := RequireValidOpenRange(SubjectWorkSession, tt.start, tt.end)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTimeRange)
			}
		})
	}
}

func TestClosedRange(t *testing.T) {
	base := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   *time.Time
		end     *time.Time
		wantErr error
	}{
		{"ordered", tp(base), tp(base.Add(time.Hour)), nil},
		{"zero length allowed", tp(base), tp(base), nil},
		{"missing start", nil, tp(base), ErrMissingTimeValue},
		{"missing end", tp(base), nil, ErrMissingTimeValue},
		{"missing both", nil, nil, ErrMissingTimeValue},
		{"misordered", tp(base.Add(time.Hour)), tp(base), ErrInvalidTimeRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireValidClosedRange(SubjectWorkReport, tt.start, tt.end)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.True(t, IsValidClosedRange(tt.start, tt.end))
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, IsValidClosedRange(tt.start, tt.end))
			}
		})
	}
}

func TestStrictClosedRange(t *testing.T) {
	base := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	// Zero-length windows are the difference from the plain closed range.
	err := RequireValidStrictClosedRange(SubjectWorkReport, tp(base), tp(base))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.False(t, IsValidStrictClosedRange(tp(base), tp(base)))

	require.NoError(t, RequireValidStrictClosedRange(SubjectWorkReport, tp(base), tp(base.Add(time.Second))))
	assert.ErrorIs(t, RequireValidStrictClosedRange(SubjectWorkReport, nil, tp(base)), ErrMissingTimeValue)
	assert.ErrorIs(t, RequireValidStrictClosedRange(SubjectWorkReport, tp(base.Add(time.Hour)), tp(base)), ErrInvalidTimeRange)
}

func TestDiffSeconds(t *testing.T) {
	base := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(0), DiffSeconds(nil, nil))
	assert.Equal(t, int64(0), DiffSeconds(tp(base), nil))
	assert.Equal(t, int64(0), DiffSeconds(nil, tp(base)))
	assert.Equal(t, int64(0), DiffSeconds(tp(base), tp(base)))
	assert.Equal(t, int64(5400), DiffSeconds(tp(base), tp(base.Add(90*time.Minute))))

	// Misordered pairs clamp to zero instead of going negative.
	assert.Equal(t, int64(0), DiffSeconds(tp(base.Add(time.Hour)), tp(base)))

	// Sub-second remainders truncate.
	assert.Equal(t, int64(1), DiffSeconds(tp(base), tp(base.Add(1900*time.Millisecond))))
}

func TestNormalizeComment(t *testing.T) {
	assert.Nil(t, NormalizeComment(nil))

	raw := "  keep me  "
	got := NormalizeComment(&raw)
	require.NotNil(t, got)
	assert.Equal(t, "keep me", *got)

	empty := "   "
	got = NormalizeComment(&empty)
	require.NotNil(t, got)
	assert.Equal(t, "", *got)

	got = NormalizeCommentNonNil(nil)
	require.NotNil(t, got)
	assert.Equal(t, "", *got)
}
