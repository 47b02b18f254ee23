package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/bnema/tabgroups/internal/domain/repository"
	"github.com/bnema/tabgroups/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tabgroups/internal/logging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.NewConnection(testCtx(), filepath.Join(t.TempDir(), "strips.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleStrip() *entity.StripState {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	token := uuid.MustParse("6f1c2a4e-8f0b-4c1d-9a55-0d2b7c3e9f10")
	return &entity.StripState{
		Version:        entity.StripStateVersion,
		StripID:        "work",
		IdentityScheme: "stable",
		ActiveTabID:    3,
		SavedAt:        created.Add(time.Hour),
		Tabs: []entity.TabSnapshot{
			{ID: 1, RootID: 1, GroupToken: token, LaunchType: entity.FromLink, Title: "Docs", URL: "https://go.dev/doc", CreatedAt: created},
			{ID: 3, RootID: 1, GroupToken: token, ParentID: 1, LaunchType: entity.FromTabGroupUI, Title: "Memory model", URL: "https://go.dev/ref/mem", CreatedAt: created},
			{ID: 2, RootID: 2, LaunchType: entity.FromExternalApp, Title: "Mail", CreatedAt: created},
		},
	}
}

func TestTabStripRepository_SaveAndFind(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewTabStripRepository(openTestDB(t))
	want := sampleStrip()

	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.FindByID(ctx, "work")
	require.NoError(t, err)
	require.Len(t, got.Tabs, 3)

	assert.Equal(t, want.IdentityScheme, got.IdentityScheme)
	assert.Equal(t, want.ActiveTabID, got.ActiveTabID)
	assert.True(t, got.SavedAt.Equal(want.SavedAt))

	for i, snap := range got.Tabs {
		assert.Equal(t, want.Tabs[i].ID, snap.ID, "position %d", i)
		assert.Equal(t, want.Tabs[i].RootID, snap.RootID)
		assert.Equal(t, want.Tabs[i].GroupToken, snap.GroupToken)
		assert.Equal(t, want.Tabs[i].ParentID, snap.ParentID)
		assert.Equal(t, want.Tabs[i].LaunchType, snap.LaunchType)
		assert.Equal(t, want.Tabs[i].Title, snap.Title)
		assert.True(t, snap.CreatedAt.Equal(want.Tabs[i].CreatedAt))
	}
	assert.Equal(t, uuid.Nil, got.Tabs[2].GroupToken)
}

func TestTabStripRepository_SaveReplacesTabs(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewTabStripRepository(openTestDB(t))
	state := sampleStrip()
	require.NoError(t, repo.Save(ctx, state))

	state.Tabs = state.Tabs[2:]
	state.Tabs[0].RootID = 2
	state.IdentityScheme = "legacy"
	require.NoError(t, repo.Save(ctx, state))

	got, err := repo.FindByID(ctx, "work")
	require.NoError(t, err)
	require.Len(t, got.Tabs, 1)
	assert.Equal(t, entity.TabID(2), got.Tabs[0].ID)
	assert.Equal(t, "legacy", got.IdentityScheme)
}

func TestTabStripRepository_RejectsInvalidState(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewTabStripRepository(openTestDB(t))
	state := sampleStrip()
	state.Tabs[1].ID = 1

	assert.ErrorIs(t, repo.Save(ctx, state), entity.ErrInvalidStrip)
	assert.Error(t, repo.Save(ctx, nil))
}

func TestTabStripRepository_NotFound(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewTabStripRepository(openTestDB(t))

	_, err := repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrStripNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), repository.ErrStripNotFound)
}

func TestTabStripRepository_ListAndDelete(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)
	repo := sqlite.NewTabStripRepository(db)
	visuals := sqlite.NewGroupVisualRepository(db)

	older := sampleStrip()
	older.StripID = "home"
	older.SavedAt = older.SavedAt.Add(-24 * time.Hour)
	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, sampleStrip()))
	require.NoError(t, visuals.Upsert(ctx, "work", 1, entity.GroupVisual{Title: "Go", Color: entity.ColorBlue}))

	infos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, entity.StripID("work"), infos[0].ID)
	assert.Equal(t, 3, infos[0].TabCount)
	assert.Equal(t, entity.StripID("home"), infos[1].ID)

	require.NoError(t, repo.Delete(ctx, "work"))

	_, err = repo.FindByID(ctx, "work")
	assert.ErrorIs(t, err, repository.ErrStripNotFound)
	left, err := visuals.ListByStrip(ctx, "work")
	require.NoError(t, err)
	assert.Empty(t, left)

	var orphanTabs int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM strip_tabs WHERE strip_id = 'work'`).Scan(&orphanTabs))
	assert.Zero(t, orphanTabs)
}

func TestMigrations_Version(t *testing.T) {
	db := openTestDB(t)

	version, err := sqlite.GetMigrationStatus(testCtx(), db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	require.NoError(t, sqlite.RunMigrations(testCtx(), db))
}
