package service

import (
	"context"
	"testing"
	"time"

	"github.com/mrfop/worktime/internal/domain"
	"github.com/mrfop/worktime/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedWorkday records one closed session 08:00-12:00 with two segments,
// 08:00-09:30 and 10:00-11:00, on the given day.
func seedWorkday(t *testing.T, env serviceEnv, day time.Time, categoryID, activityID string) *domain.WorkSession {
	t.Helper()
	ctx := context.Background()

	start := day.Add(8 * time.Hour)
	session := testutil.NewTestSession(start, testutil.WithSessionEnd(start.Add(4*time.Hour)))
	require.NoError(t, env.sessions.Create(ctx, session))

	require.NoError(t, env.segments.Create(ctx,
		testutil.NewTestSegment(session.ID, categoryID, activityID, start,
			testutil.WithSegmentEnd(start.Add(90*time.Minute)))))
	require.NoError(t, env.segments.Create(ctx,
		testutil.NewTestSegment(session.ID, categoryID, activityID, start.Add(2*time.Hour),
			testutil.WithSegmentEnd(start.Add(3*time.Hour)))))
	return session
}

func TestDaysWithSegmentsDurations(t *testing.T) {
	env := setupEnv(t)
	category, activity := seedTaxonomy(t, env)
	svc := NewReportService(env.sessions)

	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	seedWorkday(t, env, day, category.ID, activity.ID)

	days, err := svc.DaysWithSegments(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, days, 1)

	got := days[0]
	assert.Equal(t, "2026-01-05", got.Day)
	assert.Equal(t, int64(4*3600), got.SessionSeconds)
	assert.Equal(t, int64(2*3600+30*60), got.SegmentSeconds)
	assert.Equal(t, int64(3600+30*60), got.UnallocatedSeconds)

	require.Len(t, got.Sessions, 1)
	report := got.Sessions[0]
	assert.Equal(t, int64(14400), report.SessionSeconds)
	assert.Equal(t, int64(9000), report.SegmentSeconds)
	assert.Equal(t, int64(5400), report.UnallocatedSeconds)

	require.Len(t, report.Segments, 2)
	assert.Equal(t, int64(5400), report.Segments[0].Seconds)
	assert.Equal(t, int64(3600), report.Segments[1].Seconds)
	assert.Equal(t, "development", report.Segments[0].CategoryName)
	assert.Equal(t, "coding", report.Segments[0].ActivityName)
}

func TestDaysWithSegmentsBucketsNewestFirst(t *testing.T) {
	env := setupEnv(t)
	category, activity := seedTaxonomy(t, env)
	svc := NewReportService(env.sessions)

	day1 := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
	seedWorkday(t, env, day1, category.ID, activity.ID)
	seedWorkday(t, env, day2, category.ID, activity.ID)

	// Second session on day2 in the evening.
	ctx := context.Background()
	evening := day2.Add(18 * time.Hour)
	session := testutil.NewTestSession(evening, testutil.WithSessionEnd(evening.Add(time.Hour)))
	require.NoError(t, env.sessions.Create(ctx, session))

	days, err := svc.DaysWithSegments(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, "2026-01-06", days[0].Day)
	assert.Equal(t, "2026-01-05", days[1].Day)

	// Within a day sessions stay newest start first.
	require.Len(t, days[0].Sessions, 2)
	assert.True(t, days[0].Sessions[0].Session.StartTime.Equal(evening))
	assert.Equal(t, int64(5*3600), days[0].SessionSeconds)
}

func TestDaysWithSegmentsWindowFiltering(t *testing.T) {
	env := setupEnv(t)
	category, activity := seedTaxonomy(t, env)
	svc := NewReportService(env.sessions)
	ctx := context.Background()

	day1 := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
	seedWorkday(t, env, day1, category.ID, activity.ID)
	seedWorkday(t, env, day2, category.ID, activity.ID)

	from := day2
	to := day2.AddDate(0, 0, 1)
	days, err := svc.DaysWithSegments(ctx, &from, &to)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2026-01-06", days[0].Day)

	// A window with no recorded work yields an empty report.
	farFrom := day2.AddDate(0, 1, 0)
	farTo := farFrom.AddDate(0, 0, 7)
	days, err = svc.DaysWithSegments(ctx, &farFrom, &farTo)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestDaysWithSegmentsOpenSessionContributesZero(t *testing.T) {
	env := setupEnv(t)
	svc := NewReportService(env.sessions)
	ctx := context.Background()

	start := time.Now().UTC().Add(-time.Hour)
	open := testutil.NewTestSession(start)
	require.NoError(t, env.sessions.Create(ctx, open))

	days, err := svc.DaysWithSegments(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Len(t, days[0].Sessions, 1)
	assert.Equal(t, int64(0), days[0].Sessions[0].SessionSeconds,
		"open intervals contribute zero instead of failing")
}
