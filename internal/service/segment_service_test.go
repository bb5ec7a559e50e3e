package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mrfop/worktime/internal/domain"
	"github.com/mrfop/worktime/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentStartRequiresOpenSession(t *testing.T) {
	env := setupEnv(t)
	segmentSvc := NewSegmentService(env.segments, env.uow)
	category, activity := seedTaxonomy(t, env)

	_, err := segmentSvc.Start(context.Background(),
		SegmentStart{CategoryID: category.ID, ActivityID: activity.ID})
	assert.ErrorIs(t, err, domain.ErrNoActive)
}

func TestSegmentStartResolvesReferences(t *testing.T) {
	env := setupEnv(t)
	sessionSvc := NewSessionService(env.sessions, env.uow)
	segmentSvc := NewSegmentService(env.segments, env.uow)
	category, activity := seedTaxonomy(t, env)
	ctx := context.Background()

	session, err := sessionSvc.Start(ctx)
	require.NoError(t, err)

	_, err = segmentSvc.Start(ctx, SegmentStart{CategoryID: "missing", ActivityID: activity.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = segmentSvc.Start(ctx, SegmentStart{CategoryID: category.ID, ActivityID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	comment := "  trim me  "
	segment, err := segmentSvc.Start(ctx, SegmentStart{
		CategoryID: category.ID,
		ActivityID: activity.ID,
		Comment:    &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, session.ID, segment.WorkSessionID)
	assert.True(t, segment.Open())
	require.NotNil(t, segment.Comment)
	assert.Equal(t, "trim me", *segment.Comment)

	_, err = segmentSvc.Start(ctx, SegmentStart{CategoryID: category.ID, ActivityID: activity.ID})
	assert.ErrorIs(t, err, domain.ErrAlreadyRunning)
}

func TestSegmentStartWithoutCommentStoresEmpty(t *testing.T) {
	env := setupEnv(t)
	sessionSvc := NewSessionService(env.sessions, env.uow)
	segmentSvc := NewSegmentService(env.segments, env.uow)
	category, activity := seedTaxonomy(t, env)
	ctx := context.Background()

	_, err := sessionSvc.Start(ctx)
	require.NoError(t, err)

	segment, err := segmentSvc.Start(ctx, SegmentStart{CategoryID: category.ID, ActivityID: activity.ID})
	require.NoError(t, err)
	require.NotNil(t, segment.Comment)
	assert.Equal(t, "", *segment.Comment)
}

func TestSegmentStop(t *testing.T) {
	env := setupEnv(t)
	sessionSvc := NewSessionService(env.sessions, env.uow)
	segmentSvc := NewSegmentService(env.segments, env.uow)
	category, activity := seedTaxonomy(t, env)
	ctx := context.Background()

	_, err := segmentSvc.Stop(ctx, SegmentStop{})
	assert.ErrorIs(t, err, domain.ErrNoActive)

	_, err = sessionSvc.Start(ctx)
	require.NoError(t, err)
	started, err := segmentSvc.Start(ctx, SegmentStart{CategoryID: category.ID, ActivityID: activity.ID})
	require.NoError(t, err)

	other := testutil.NewTestCategory("meetings")
	require.NoError(t, env.categories.Create(ctx, other))

	comment := " wrap-up "
	stopped, err := segmentSvc.Stop(ctx, SegmentStop{
		CategoryID: &other.ID,
		Comment:    &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, started.ID, stopped.ID)
	require.NotNil(t, stopped.EndTime)
	assert.False(t, stopped.EndTime.Before(stopped.StartTime))
	assert.Equal(t, other.ID, stopped.CategoryID)
	assert.Equal(t, activity.ID, stopped.ActivityID, "unsupplied override leaves the reference alone")
	require.NotNil(t, stopped.Comment)
	assert.Equal(t, "wrap-up", *stopped.Comment)
}

func TestSegmentStopRejectsUnknownOverride(t *testing.T) {
	env := setupEnv(t)
	sessionSvc := NewSessionService(env.sessions, env.uow)
	segmentSvc := NewSegmentService(env.segments, env.uow)
	category, activity := seedTaxonomy(t, env)
	ctx := context.Background()

	_, err := sessionSvc.Start(ctx)
	require.NoError(t, err)
	_, err = segmentSvc.Start(ctx, SegmentStart{CategoryID: category.ID, ActivityID: activity.ID})
	require.NoError(t, err)

	missing := "missing"
	_, err = segmentSvc.Stop(ctx, SegmentStop{ActivityID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The refused stop must leave the segment running.
	running, err := segmentSvc.IsRunning(ctx)
	require.NoError(t, err)
	assert.True(t, running)
}

func TestSegmentPatch(t *testing.T) {
	env := setupEnv(t)
	segmentSvc := NewSegmentService(env.segments, env.uow)
	category, activity := seedTaxonomy(t, env)
	ctx := context.Background()

	start := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	session := testutil.NewTestSession(start, testutil.WithSessionEnd(start.Add(8*time.Hour)))
	require.NoError(t, env.sessions.Create(ctx, session))

	segment := testutil.NewTestSegment(session.ID, category.ID, activity.ID, start,
		testutil.WithSegmentEnd(start.Add(time.Hour)), testutil.WithComment("draft"))
	require.NoError(t, env.segments.Create(ctx, segment))

	t.Run("no fields", func(t *testing.T) {
		_, err := segmentSvc.Patch(ctx, segment.ID, SegmentPatch{})
		assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
	})

	t.Run("unknown id", func(t *testing.T) {
		comment := "x"
		_, err := segmentSvc.Patch(ctx, "missing", SegmentPatch{Comment: &comment})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empty comment clears", func(t *testing.T) {
		empty := "   "
		patched, err := segmentSvc.Patch(ctx, segment.ID, SegmentPatch{Comment: &empty})
		require.NoError(t, err)
		require.NotNil(t, patched.Comment)
		assert.Equal(t, "", *patched.Comment)
	})

	t.Run("moves bounds and relations", func(t *testing.T) {
		other := testutil.NewTestActivity("pairing")
		require.NoError(t, env.activities.Create(ctx, other))

		newStart := start.Add(15 * time.Minute)
		newEnd := start.Add(2 * time.Hour)
		patched, err := segmentSvc.Patch(ctx, segment.ID, SegmentPatch{
			ActivityID: &other.ID,
			StartTime:  &newStart,
			EndTime:    &newEnd,
		})
		require.NoError(t, err)
		assert.True(t, patched.StartTime.Equal(newStart))
		require.NotNil(t, patched.EndTime)
		assert.True(t, patched.EndTime.Equal(newEnd))
		assert.Equal(t, other.ID, patched.ActivityID)
		assert.Equal(t, category.ID, patched.CategoryID)
	})

	t.Run("merged state validated", func(t *testing.T) {
		badEnd := start.Add(-time.Hour)
		_, err := segmentSvc.Patch(ctx, segment.ID, SegmentPatch{EndTime: &badEnd})
		assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
	})
}

func TestConcurrentSegmentStart(t *testing.T) {
	env := setupFileEnv(t)
	sessionSvc := NewSessionService(env.sessions, env.uow)
	segmentSvc := NewSegmentService(env.segments, env.uow)
	category, activity := seedTaxonomy(t, env)
	ctx := context.Background()

	_, err := sessionSvc.Start(ctx)
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := segmentSvc.Start(ctx, SegmentStart{CategoryID: category.ID, ActivityID: activity.ID})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes, rejected int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, domain.ErrAlreadyRunning)
			rejected++
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent segment start may win")
	assert.Equal(t, workers-1, rejected)

	all, err := env.segments.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
