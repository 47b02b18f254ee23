package usecase_test

import (
	"testing"

	"github.com/bnema/tabgroups/internal/application/usecase"
	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/bnema/tabgroups/internal/domain/tabgroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManageTabsUseCase_Open_AppendsAndSelects(t *testing.T) {
	ctx := testContext()
	s := newSession(t, tabgroup.IdentityStable, 2)
	uc := usecase.NewManageTabsUseCase()

	out, err := uc.Open(ctx, usecase.OpenTabInput{
		Session: s,
		Title:   "Go",
		URL:     "https://go.dev",
		Index:   -1,
		Select:  true,
	})
	require.NoError(t, err)
	require.NotNil(t, out.Tab)

	assert.Equal(t, entity.TabID(3), out.Tab.ID)
	assert.Equal(t, []entity.TabID{1, 2, 3}, stripIDs(s))
	assert.Equal(t, entity.TabID(3), s.Tabs.ActiveTabID())
	assert.False(t, out.Grouped)
	assert.Equal(t, 3, s.Groups.Count())
}

func TestManageTabsUseCase_Open_InGroupJoinsParentRun(t *testing.T) {
	ctx := testContext()
	s := newSession(t, tabgroup.IdentityStable, 4)
	require.NoError(t, usecase.NewManageTabGroupsUseCase().GroupTabs(ctx, s, []entity.TabID{1, 2}))
	uc := usecase.NewManageTabsUseCase()

	out, err := uc.Open(ctx, usecase.OpenTabInput{
		Session:    s,
		LaunchType: entity.FromTabGroupUI,
		ParentID:   1,
		Index:      -1,
	})
	require.NoError(t, err)

	assert.True(t, out.Grouped)
	assert.Equal(t, []entity.TabID{1, 2, 5, 3, 4}, stripIDs(s))
	assert.Equal(t, entity.TabID(1), out.Tab.RootID)
	assert.Equal(t, s.Tabs.TabByID(1).GroupToken, out.Tab.GroupToken)
	assertConsistent(t, s)
}

func TestManageTabsUseCase_Open_DoesNotSplitGroup(t *testing.T) {
	ctx := testContext()
	s := newSession(t, tabgroup.IdentityLegacy, 4)
	require.NoError(t, usecase.NewManageTabGroupsUseCase().GroupTabs(ctx, s, []entity.TabID{1, 2}))
	uc := usecase.NewManageTabsUseCase()

	out, err := uc.Open(ctx, usecase.OpenTabInput{Session: s, Index: 1})
	require.NoError(t, err)

	assert.False(t, out.Grouped)
	assert.Equal(t, []entity.TabID{1, 2, 5, 3, 4}, stripIDs(s))
	assertConsistent(t, s)
}

func TestManageTabsUseCase_Open_UnknownParent(t *testing.T) {
	s := newSession(t, tabgroup.IdentityStable, 1)
	uc := usecase.NewManageTabsUseCase()

	_, err := uc.Open(testContext(), usecase.OpenTabInput{Session: s, ParentID: 42, Index: -1})
	assert.ErrorIs(t, err, usecase.ErrTabNotFound)
	assert.Equal(t, 1, s.Tabs.Count())
}

func TestManageTabsUseCase_Open_RequiresSession(t *testing.T) {
	uc := usecase.NewManageTabsUseCase()

	_, err := uc.Open(testContext(), usecase.OpenTabInput{})
	assert.Error(t, err)
}

func TestManageTabsUseCase_Close(t *testing.T) {
	ctx := testContext()
	uc := usecase.NewManageTabsUseCase()

	t.Run("re-keys a group when its root closes", func(t *testing.T) {
		s := newSession(t, tabgroup.IdentityLegacy, 4)
		require.NoError(t, usecase.NewManageTabGroupsUseCase().GroupTabs(ctx, s, []entity.TabID{1, 2, 3}))

		wasLast, err := uc.Close(ctx, s, 1)
		require.NoError(t, err)

		assert.False(t, wasLast)
		assert.Equal(t, []entity.TabID{2, 3, 4}, stripIDs(s))
		assert.Equal(t, []entity.TabID{2, 2, 4}, rootIDs(s))
		assertConsistent(t, s)
	})

	t.Run("reports the last tab", func(t *testing.T) {
		s := newSession(t, tabgroup.IdentityStable, 1)

		wasLast, err := uc.Close(ctx, s, 1)
		require.NoError(t, err)
		assert.True(t, wasLast)
		assert.Zero(t, s.Tabs.Count())
		assert.Zero(t, s.Groups.Count())
	})

	t.Run("unknown tab", func(t *testing.T) {
		s := newSession(t, tabgroup.IdentityStable, 1)

		_, err := uc.Close(ctx, s, 9)
		assert.ErrorIs(t, err, usecase.ErrTabNotFound)
	})
}

func TestManageTabsUseCase_Selection(t *testing.T) {
	ctx := testContext()
	s := newSession(t, tabgroup.IdentityStable, 3)
	uc := usecase.NewManageTabsUseCase()
	require.Equal(t, entity.TabID(1), s.Tabs.ActiveTabID())

	require.NoError(t, uc.SelectPrevious(ctx, s))
	assert.Equal(t, entity.TabID(3), s.Tabs.ActiveTabID())

	require.NoError(t, uc.SelectNext(ctx, s))
	assert.Equal(t, entity.TabID(1), s.Tabs.ActiveTabID())

	require.NoError(t, uc.SelectByIndex(ctx, s, 1))
	assert.Equal(t, entity.TabID(2), s.Tabs.ActiveTabID())

	require.NoError(t, uc.SelectByIndex(ctx, s, 10))
	assert.Equal(t, entity.TabID(2), s.Tabs.ActiveTabID())

	require.NoError(t, uc.Select(ctx, s, 3))
	assert.Equal(t, entity.TabID(3), s.Tabs.ActiveTabID())
	assert.Equal(t, entity.TabID(3), s.Groups.LastShownTabID(3))

	assert.ErrorIs(t, uc.Select(ctx, s, 7), usecase.ErrTabNotFound)
}

func TestManageTabsUseCase_Move(t *testing.T) {
	ctx := testContext()
	uc := usecase.NewManageTabsUseCase()
	groups := usecase.NewManageTabGroupsUseCase()

	t.Run("dragging a member out leaves the group", func(t *testing.T) {
		s := newSession(t, tabgroup.IdentityLegacy, 5)
		require.NoError(t, groups.GroupTabs(ctx, s, []entity.TabID{1, 2, 3}))

		final, err := uc.Move(ctx, s, 2, 5)
		require.NoError(t, err)

		assert.Equal(t, 4, final)
		assert.Equal(t, []entity.TabID{1, 3, 4, 5, 2}, stripIDs(s))
		assert.Equal(t, []entity.TabID{1, 1, 4, 5, 2}, rootIDs(s))
		assert.False(t, s.Groups.IsTabInTabGroup(2))
		assertConsistent(t, s)
	})

	t.Run("an ungrouped tab skips over a group run", func(t *testing.T) {
		s := newSession(t, tabgroup.IdentityLegacy, 4)
		require.NoError(t, groups.GroupTabs(ctx, s, []entity.TabID{1, 2}))

		final, err := uc.Move(ctx, s, 4, 1)
		require.NoError(t, err)

		assert.Equal(t, 2, final)
		assert.Equal(t, []entity.TabID{1, 2, 4, 3}, stripIDs(s))
		assert.False(t, s.Groups.IsTabInTabGroup(4))
		assertConsistent(t, s)
	})

	t.Run("moving inside the run keeps membership", func(t *testing.T) {
		s := newSession(t, tabgroup.IdentityStable, 5)
		require.NoError(t, groups.GroupTabs(ctx, s, []entity.TabID{1, 2, 3}))

		final, err := uc.Move(ctx, s, 1, 3)
		require.NoError(t, err)

		assert.Equal(t, 2, final)
		assert.Equal(t, []entity.TabID{2, 3, 1, 4, 5}, stripIDs(s))
		assert.True(t, s.Groups.IsTabInTabGroup(1))
		assertConsistent(t, s)
	})

	t.Run("unknown tab", func(t *testing.T) {
		s := newSession(t, tabgroup.IdentityLegacy, 2)

		_, err := uc.Move(ctx, s, 5, 0)
		assert.ErrorIs(t, err, usecase.ErrTabNotFound)
	})
}
