package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mrfop/worktime/internal/domain"
	"github.com/mrfop/worktime/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSession creates a closed parent session for segment tests.
func seedSession(t *testing.T, ctx context.Context, sessions *SQLiteSessionRepo, start time.Time) *domain.WorkSession {
	t.Helper()
	session := testutil.NewTestSession(start, testutil.WithSessionEnd(start.Add(8*time.Hour)))
	require.NoError(t, sessions.Create(ctx, session))
	return session
}

func TestSegmentRoundTrip(t *testing.T) {
	sessions, segments, categories, activities := setupRepos(t)
	ctx := context.Background()
	category, activity := seedRefs(t, ctx, categories, activities)

	start := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	session := seedSession(t, ctx, sessions, start)

	segment := testutil.NewTestSegment(session.ID, category.ID, activity.ID, start,
		testutil.WithComment("morning review"))
	require.NoError(t, segments.Create(ctx, segment))

	got, err := segments.GetByID(ctx, segment.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.WorkSessionID)
	assert.Equal(t, category.ID, got.CategoryID)
	assert.Equal(t, activity.ID, got.ActivityID)
	assert.True(t, got.StartTime.Equal(start))
	assert.Nil(t, got.EndTime)
	require.NotNil(t, got.Comment)
	assert.Equal(t, "morning review", *got.Comment)

	end := start.Add(90 * time.Minute)
	got.EndTime = &end
	got.Comment = nil
	require.NoError(t, segments.Update(ctx, got))

	updated, err := segments.GetByID(ctx, segment.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.EndTime)
	assert.True(t, updated.EndTime.Equal(end))
	assert.Nil(t, updated.Comment)
}

func TestSegmentNotFound(t *testing.T) {
	_, segments, _, _ := setupRepos(t)
	ctx := context.Background()

	_, err := segments.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, segments.Delete(ctx, "missing"), domain.ErrNotFound)
}

func TestSegmentFindCurrent(t *testing.T) {
	sessions, segments, categories, activities := setupRepos(t)
	ctx := context.Background()
	category, activity := seedRefs(t, ctx, categories, activities)

	start := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	session := seedSession(t, ctx, sessions, start)

	current, err := segments.FindCurrent(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	open := testutil.NewTestSegment(session.ID, category.ID, activity.ID, start)
	require.NoError(t, segments.Create(ctx, open))

	current, err = segments.FindCurrent(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, open.ID, current.ID)
}

func TestSegmentOpenFlagBackstop(t *testing.T) {
	sessions, segments, categories, activities := setupRepos(t)
	ctx := context.Background()
	category, activity := seedRefs(t, ctx, categories, activities)

	start := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	session := seedSession(t, ctx, sessions, start)

	require.NoError(t, segments.Create(ctx,
		testutil.NewTestSegment(session.ID, category.ID, activity.ID, start)))

	err := segments.Create(ctx,
		testutil.NewTestSegment(session.ID, category.ID, activity.ID, start.Add(time.Minute)))
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Closed segments are unconstrained.
	require.NoError(t, segments.Create(ctx,
		testutil.NewTestSegment(session.ID, category.ID, activity.ID, start.Add(2*time.Hour),
			testutil.WithSegmentEnd(start.Add(3*time.Hour)))))
}

func TestCategoryAndActivityCRUD(t *testing.T) {
	_, _, categories, activities := setupRepos(t)
	ctx := context.Background()

	category := testutil.NewTestCategory("meetings")
	require.NoError(t, categories.Create(ctx, category))

	got, err := categories.GetByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "meetings", got.Name)

	all, err := categories.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, categories.Delete(ctx, category.ID))
	_, err = categories.GetByID(ctx, category.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	activity := testutil.NewTestActivity("standup")
	require.NoError(t, activities.Create(ctx, activity))

	gotA, err := activities.GetByID(ctx, activity.ID)
	require.NoError(t, err)
	assert.Equal(t, "standup", gotA.Name)

	require.NoError(t, activities.Delete(ctx, activity.ID))
	_, err = activities.GetByID(ctx, activity.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
