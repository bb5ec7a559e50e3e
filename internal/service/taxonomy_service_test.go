package service

import (
	"context"
	"testing"

	"github.com/mrfop/worktime/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryServiceCreate(t *testing.T) {
	env := setupEnv(t)
	svc := NewCategoryService(env.categories)
	ctx := context.Background()

	_, err := svc.Create(ctx, "   ")
	assert.Error(t, err, "blank names are rejected")

	category, err := svc.Create(ctx, "  development  ")
	require.NoError(t, err)
	assert.Equal(t, "development", category.Name)
	assert.NotEmpty(t, category.ID)
	assert.False(t, category.CreatedAt.IsZero())

	all, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, category.ID))
	_, err = svc.GetByID(ctx, category.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActivityServiceCreate(t *testing.T) {
	env := setupEnv(t)
	svc := NewActivityService(env.activities)
	ctx := context.Background()

	_, err := svc.Create(ctx, "")
	assert.Error(t, err)

	activity, err := svc.Create(ctx, "coding")
	require.NoError(t, err)
	assert.Equal(t, "coding", activity.Name)

	got, err := svc.GetByID(ctx, activity.ID)
	require.NoError(t, err)
	assert.Equal(t, activity.ID, got.ID)
}
