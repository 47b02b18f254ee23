package sqlite_test

import (
	"testing"

	"github.com/bnema/tabgroups/internal/application/usecase"
	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/bnema/tabgroups/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupVisualRepository_UpsertListDelete(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewGroupVisualRepository(openTestDB(t))

	require.NoError(t, repo.Upsert(ctx, "work", 1, entity.GroupVisual{Title: "Go", Color: entity.NoGroupColor}))
	require.NoError(t, repo.Upsert(ctx, "work", 1, entity.GroupVisual{Title: "Go docs", Color: entity.ColorPurple}))
	require.NoError(t, repo.Upsert(ctx, "work", 7, entity.GroupVisual{Color: entity.ColorGrey}))
	require.NoError(t, repo.Upsert(ctx, "home", 1, entity.GroupVisual{Title: "Other strip"}))

	visuals, err := repo.ListByStrip(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, map[entity.TabID]entity.GroupVisual{
		1: {Title: "Go docs", Color: entity.ColorPurple},
		7: {Color: entity.ColorGrey},
	}, visuals)

	require.NoError(t, repo.Delete(ctx, "work", 1))
	visuals, err = repo.ListByStrip(ctx, "work")
	require.NoError(t, err)
	assert.Len(t, visuals, 1)
}

func TestGroupVisualRepository_BacksVisualCache(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewGroupVisualRepository(openTestDB(t))
	require.NoError(t, repo.Upsert(ctx, "work", 4, entity.GroupVisual{Title: "Seed", Color: entity.ColorRed}))

	cache := usecase.NewVisualCache(ctx, repo, "work")
	require.NoError(t, cache.Load(ctx))

	v, ok := cache.Get(4)
	require.True(t, ok)
	assert.Equal(t, "Seed", v.Title)

	require.NoError(t, cache.Set(9, entity.GroupVisual{Title: "Later", Color: entity.NoGroupColor}))
	require.NoError(t, cache.Delete(4))
	require.NoError(t, cache.Flush())

	stored, err := repo.ListByStrip(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, map[entity.TabID]entity.GroupVisual{9: {Title: "Later", Color: entity.NoGroupColor}}, stored)
}
