package tabgroup

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events    []string
	creations []GroupCreation
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) reset() {
	r.events = nil
	r.creations = nil
}

func (r *recorder) WillMergeTabToGroup(tab *entity.Tab, newRootID entity.TabID) {
	r.add("willMerge:%d->%d", tab.ID, newRootID)
}

func (r *recorder) DidMergeTabToGroup(tab *entity.Tab, selected entity.TabID) {
	r.add("didMerge:%d shown=%d", tab.ID, selected)
}

func (r *recorder) WillMoveTabGroup(oldIndex, newIndex int) {
	r.add("willMoveGroup:%d->%d", oldIndex, newIndex)
}

func (r *recorder) DidMoveTabGroup(tab *entity.Tab, oldIndex, newIndex int) {
	r.add("didMoveGroup:%d %d->%d", tab.ID, oldIndex, newIndex)
}

func (r *recorder) DidMoveWithinGroup(tab *entity.Tab, oldIndex, newIndex int) {
	r.add("didMoveWithin:%d %d->%d", tab.ID, oldIndex, newIndex)
}

func (r *recorder) WillMoveTabOutOfGroup(tab *entity.Tab, newRootID entity.TabID) {
	r.add("willMoveOut:%d->%d", tab.ID, newRootID)
}

func (r *recorder) DidMoveTabOutOfGroup(tab *entity.Tab, prevSlot int) {
	r.add("didMoveOut:%d slot=%d", tab.ID, prevSlot)
}

func (r *recorder) DidCreateGroup(c GroupCreation) {
	ids := make([]entity.TabID, 0, len(c.Tabs))
	for _, tab := range c.Tabs {
		ids = append(ids, tab.ID)
	}
	r.creations = append(r.creations, c)
	r.add("didCreateGroup:%d %v", c.DestinationRootID, ids)
}

func (r *recorder) DidCreateNewGroup(tab *entity.Tab) {
	r.add("didCreateNewGroup:%d", tab.ID)
}

func (r *recorder) DidChangeTabGroupTitle(rootID entity.TabID, title string) {
	r.add("title:%d=%s", rootID, title)
}

func (r *recorder) DidChangeTabGroupColor(rootID entity.TabID, color entity.GroupColor) {
	r.add("color:%d=%s", rootID, color)
}

func sequentialTokens() func() uuid.UUID {
	n := 0
	return func() uuid.UUID {
		n++
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strconv.Itoa(n)))
	}
}

func newFixture(t *testing.T, scheme IdentityScheme, n int) (*entity.TabList, *Index, *recorder) {
	t.Helper()
	tabs := entity.NewTabList(false)
	for i := 0; i < n; i++ {
		tabs.AddTab(entity.NewTab(tabs.NextID(), entity.FromLink), -1)
	}
	idx := NewIndex(tabs, Config{Scheme: scheme, NewToken: sequentialTokens()})
	rec := &recorder{}
	idx.AddObserver(rec)
	return tabs, idx, rec
}

func stripIDs(tabs *entity.TabList) []entity.TabID {
	out := make([]entity.TabID, 0, tabs.Count())
	for _, tab := range tabs.Tabs() {
		out = append(out, tab.ID)
	}
	return out
}

func rootIDs(tabs *entity.TabList) []entity.TabID {
	out := make([]entity.TabID, 0, tabs.Count())
	for _, tab := range tabs.Tabs() {
		out = append(out, tab.RootID)
	}
	return out
}

func assertInvariants(t *testing.T, tabs *entity.TabList, idx *Index) {
	t.Helper()

	assert.True(t, idx.IsOrderValid(), "groups not contiguous: %v", rootIDs(tabs))

	seen := make(map[entity.TabID]entity.TabID)
	for rootID, g := range idx.groups {
		assert.Equal(t, rootID, g.rootID)
		assert.True(t, g.contains(rootID), "root %d is not a member of its group %v", rootID, g.tabIDs)
		for _, id := range g.tabIDs {
			tab := tabs.TabByID(id)
			if !assert.NotNil(t, tab, "stale member %d", id) {
				continue
			}
			assert.Equal(t, rootID, tab.RootID, "tab %d filed under %d", id, rootID)
			_, dup := seen[id]
			assert.False(t, dup, "tab %d indexed twice", id)
			seen[id] = rootID
		}
		if idx.scheme == IdentityStable && g.size() >= 2 {
			assert.NotEqual(t, uuid.Nil, g.token, "group %d has no token", rootID)
			for _, id := range g.tabIDs {
				assert.Equal(t, g.token, tabs.TabByID(id).GroupToken, "tab %d token", id)
			}
		}
	}
	assert.Len(t, seen, tabs.Count())

	want := 0
	for _, g := range idx.groups {
		if idx.countsAsGroup(g) {
			want++
		}
	}
	assert.Equal(t, want, idx.TabGroupCount(), "incremental group count drifted")
}

func undo(idx *Index, c GroupCreation) {
	for i := len(c.Tabs) - 1; i >= 0; i-- {
		idx.UndoGroupedTab(c.Tabs[i].ID, c.OriginalIndexes[i], c.OriginalRootIDs[i], c.OriginalTokens[i])
	}
}

func TestNewIndex_IndexesExistingTabs(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityLegacy, 3)

	assert.Equal(t, 3, idx.Count())
	assert.Zero(t, idx.TabGroupCount())
	for i, tab := range tabs.Tabs() {
		assert.Equal(t, i, idx.SlotOf(tab.ID))
	}
	assert.True(t, idx.IsRestored())
	assertInvariants(t, tabs, idx)
}

func TestMergeTabsToGroup_MovesSourceNextToDestination(t *testing.T) {
	tabs, idx, rec := newFixture(t, IdentityLegacy, 3)

	idx.MergeTabsToGroup(3, 1, false)

	assert.Equal(t, []entity.TabID{1, 3, 2}, stripIDs(tabs))
	assert.Equal(t, []entity.TabID{1, 1, 2}, rootIDs(tabs))
	assert.Equal(t, 1, idx.TabGroupCount())
	assert.Equal(t, []entity.TabID{1, 3}, idx.RelatedTabIDs(3))
	assert.Equal(t, []string{
		"willMerge:3->1",
		"didMerge:3 shown=1",
		"didCreateGroup:1 [3]",
		"didCreateNewGroup:1",
	}, rec.events)

	require.Len(t, rec.creations, 1)
	c := rec.creations[0]
	assert.True(t, c.Undoable)
	assert.Equal(t, []int{2}, c.OriginalIndexes)
	assert.Equal(t, []entity.TabID{3}, c.OriginalRootIDs)
	assertInvariants(t, tabs, idx)
}

func TestMergeTabsToGroup_StableAssignsSharedToken(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityStable, 3)

	idx.MergeTabsToGroup(3, 1, false)

	t1, t2, t3 := tabs.TabByID(1), tabs.TabByID(2), tabs.TabByID(3)
	assert.NotEqual(t, uuid.Nil, t1.GroupToken)
	assert.Equal(t, t1.GroupToken, t3.GroupToken)
	assert.Equal(t, uuid.Nil, t2.GroupToken)
	assert.True(t, idx.IsTabInTabGroup(3))
	assert.False(t, idx.IsTabInTabGroup(2))

	rootID, ok := idx.RootIDForToken(t1.GroupToken)
	require.True(t, ok)
	assert.Equal(t, entity.TabID(1), rootID)
	assert.Equal(t, 1, idx.TabGroupCount())
	assertInvariants(t, tabs, idx)
}

func TestMergeTabsToGroup_AdjacentSourceStaysInPlace(t *testing.T) {
	tabs, idx, rec := newFixture(t, IdentityLegacy, 3)
	moves := &moveCounter{}
	tabs.AddObserver(moves)

	idx.MergeTabsToGroup(2, 1, false)

	assert.Equal(t, []entity.TabID{1, 2, 3}, stripIDs(tabs))
	assert.Equal(t, []entity.TabID{1, 1, 3}, rootIDs(tabs))
	assert.Zero(t, moves.n, "no strip move expected")
	assert.Equal(t, []string{
		"willMerge:2->1",
		"didMerge:2 shown=1",
		"didCreateGroup:1 [2]",
		"didCreateNewGroup:1",
	}, rec.events)
	assertInvariants(t, tabs, idx)
}

func TestMergeTabsToGroup_SourceBeforeDestination(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityLegacy, 3)
	moves := &moveCounter{}
	tabs.AddObserver(moves)

	idx.MergeTabsToGroup(2, 3, false)

	assert.Equal(t, 1, moves.n, "source moves behind the destination")
	assert.Equal(t, []entity.TabID{1, 3, 2}, stripIDs(tabs))
	assert.Equal(t, []entity.TabID{1, 3, 3}, rootIDs(tabs))
	assert.Equal(t, []entity.TabID{3, 2}, idx.RelatedTabIDs(3), "members follow strip order")
	assertInvariants(t, tabs, idx)
}

func TestMergeTabsToGroup_SourceRunBeforeDestinationGroup(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityLegacy, 5)
	idx.MergeTabsToGroup(3, 2, false)
	idx.MergeTabsToGroup(5, 4, false)

	idx.MergeTabsToGroup(2, 4, false)

	assert.Equal(t, []entity.TabID{1, 4, 5, 2, 3}, stripIDs(tabs))
	assert.Equal(t, []entity.TabID{1, 4, 4, 4, 4}, rootIDs(tabs))
	assert.Equal(t, []entity.TabID{4, 5, 2, 3}, idx.RelatedTabIDs(2))
	assert.Equal(t, 1, idx.TabGroupCount())
	assertInvariants(t, tabs, idx)
}

func TestMergeTabsToGroup_WholeGroupMoves(t *testing.T) {
	tabs, idx, rec := newFixture(t, IdentityLegacy, 5)
	idx.MergeTabsToGroup(5, 4, false)
	rec.reset()

	idx.MergeTabsToGroup(4, 1, false)

	assert.Equal(t, []entity.TabID{1, 4, 5, 2, 3}, stripIDs(tabs))
	assert.Equal(t, []entity.TabID{1, 1, 1, 2, 3}, rootIDs(tabs))
	assert.Equal(t, 1, idx.TabGroupCount())
	assert.Equal(t, []string{
		"didMerge:4 shown=1",
		"willMerge:5->1",
		"didMerge:5 shown=1",
		"didCreateGroup:1 [4 5]",
		"didCreateNewGroup:1",
	}, rec.events, "only the last tab of a same-group merge announces itself")
	assertInvariants(t, tabs, idx)
}

func TestMergeTabsToGroup_SkipReorderIsNotUndoable(t *testing.T) {
	tabs, idx, rec := newFixture(t, IdentityLegacy, 3)

	idx.MergeTabsToGroup(3, 1, true)

	assert.Equal(t, []entity.TabID{1, 2, 3}, stripIDs(tabs))
	assert.Equal(t, []entity.TabID{1, 2, 1}, rootIDs(tabs))
	require.Len(t, rec.creations, 1)
	assert.False(t, rec.creations[0].Undoable)
	assert.Empty(t, rec.creations[0].OriginalIndexes)
}

func TestMergeTabsToGroup_SameGroupIsNoop(t *testing.T) {
	tabs, idx, rec := newFixture(t, IdentityLegacy, 3)
	idx.MergeTabsToGroup(2, 1, false)
	rec.reset()

	idx.MergeTabsToGroup(2, 1, false)

	assert.Empty(t, rec.events)
	assert.Equal(t, []entity.TabID{1, 1, 3}, rootIDs(tabs))
}

func TestMergeTabsToGroup_ExistingColorSuppressesNewGroupEvent(t *testing.T) {
	_, idx, rec := newFixture(t, IdentityLegacy, 3)
	idx.SetTabGroupColor(1, entity.ColorBlue)
	rec.reset()

	idx.MergeTabsToGroup(3, 1, false)

	assert.NotContains(t, rec.events, "didCreateNewGroup:1")
	assert.Contains(t, rec.events, "didCreateGroup:1 [3]")
}

func TestMergeTabsToGroup_IntoExistingGroupDoesNotCreate(t *testing.T) {
	_, idx, rec := newFixture(t, IdentityLegacy, 3)
	idx.MergeTabsToGroup(2, 1, false)
	rec.reset()

	idx.MergeTabsToGroup(3, 1, false)

	assert.Equal(t, []string{"willMerge:3->1", "didMerge:3 shown=1"}, rec.events)
	assert.Equal(t, 1, idx.TabGroupCount())
}

type moveCounter struct {
	n int
}

func (m *moveCounter) OnTabAdded(*entity.Tab) {
}

func (m *moveCounter) OnTabRemoved(*entity.Tab) {
}

func (m *moveCounter) OnTabSelected(*entity.Tab, entity.TabID) {
}

func (m *moveCounter) OnTabMoved(*entity.Tab, int, int) {
	m.n++
}

func (m *moveCounter) OnRestoreCompleted() {
}

func TestMergeListOfTabsToGroup_InPlaceEmitsSameEvents(t *testing.T) {
	tabs, idx, rec := newFixture(t, IdentityLegacy, 3)
	moves := &moveCounter{}
	tabs.AddObserver(moves)

	idx.MergeListOfTabsToGroup([]entity.TabID{2}, 1, false, true)
	inPlace := rec.events
	rec.reset()

	tabs2, idx2, rec2 := newFixture(t, IdentityLegacy, 3)
	idx2.MergeListOfTabsToGroup([]entity.TabID{3}, 1, false, true)

	assert.Zero(t, moves.n, "tab already at the destination is not moved")
	assert.Equal(t, []string{
		"willMerge:2->1",
		"didMerge:2 shown=1",
		"didCreateGroup:1 [2]",
		"didCreateNewGroup:1",
	}, inPlace)
	assert.Equal(t, []string{
		"willMerge:3->1",
		"didMerge:3 shown=1",
		"didCreateGroup:1 [3]",
		"didCreateNewGroup:1",
	}, rec2.events)
	assertInvariants(t, tabs, idx)
	assertInvariants(t, tabs2, idx2)
}

func TestMergeListOfTabsToGroup_SkipsDestinationMembers(t *testing.T) {
	tabs, idx, rec := newFixture(t, IdentityLegacy, 4)
	idx.MergeTabsToGroup(2, 1, false)
	rec.reset()

	idx.MergeListOfTabsToGroup([]entity.TabID{2, 4}, 1, false, false)

	assert.Equal(t, []entity.TabID{1, 2, 4, 3}, stripIDs(tabs))
	assert.Equal(t, []string{"willMerge:4->1", "didMerge:4 shown=1"}, rec.events)
	assertInvariants(t, tabs, idx)
}

func TestMergeListOfTabsToGroup_TakingRootOutOfAnotherGroup(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityLegacy, 5)
	idx.MergeTabsToGroup(4, 3, false)
	idx.MergeTabsToGroup(5, 3, false)

	idx.MergeListOfTabsToGroup([]entity.TabID{3}, 1, false, true)

	assert.Equal(t, []entity.TabID{1, 3, 2, 4, 5}, stripIDs(tabs))
	assert.Equal(t, []entity.TabID{1, 1, 2, 4, 4}, rootIDs(tabs), "remaining members re-keyed to first member")
	assert.Equal(t, 2, idx.TabGroupCount())
	assertInvariants(t, tabs, idx)
}

func TestMoveTabOutOfGroup_RootLeavesTrailing(t *testing.T) {
	tabs, idx, rec := newFixture(t, IdentityLegacy, 4)
	idx.MergeTabsToGroup(2, 1, false)
	idx.MergeTabsToGroup(3, 1, false)
	idx.SetTabGroupTitle(1, "Work")
	rec.reset()

	idx.MoveTabOutOfGroupInDirection(1, true)

	assert.Equal(t, []entity.TabID{2, 3, 1, 4}, stripIDs(tabs))
	assert.Equal(t, []entity.TabID{2, 2, 1, 4}, rootIDs(tabs))
	assert.Equal(t, 1, idx.TabGroupCount())
	assert.Equal(t, "Work", idx.TabGroupTitle(2), "title follows the new root")
	assert.Empty(t, idx.TabGroupTitle(1))
	assert.Equal(t, []string{"willMoveOut:1->1", "didMoveOut:1 slot=0"}, rec.events)
	assertInvariants(t, tabs, idx)
}

func TestMoveTabOutOfGroup_Leading(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityLegacy, 4)
	idx.MergeTabsToGroup(3, 2, false)
	idx.MergeTabsToGroup(4, 2, false)

	idx.MoveTabOutOfGroupInDirection(4, false)

	assert.Equal(t, []entity.TabID{1, 4, 2, 3}, stripIDs(tabs))
	assert.Equal(t, []entity.TabID{1, 4, 2, 2}, rootIDs(tabs))
	assertInvariants(t, tabs, idx)
}

func TestMoveTabOutOfGroup_AlreadyAtEdgeDoesNotMove(t *testing.T) {
	tabs, idx, rec := newFixture(t, IdentityLegacy, 3)
	idx.MergeTabsToGroup(2, 1, false)
	moves := &moveCounter{}
	tabs.AddObserver(moves)
	rec.reset()

	idx.MoveTabOutOfGroup(2)

	assert.Zero(t, moves.n)
	assert.Equal(t, []entity.TabID{1, 2, 3}, stripIDs(tabs))
	assert.Equal(t, []entity.TabID{1, 2, 3}, rootIDs(tabs))
	assert.Zero(t, idx.TabGroupCount())
	assert.Equal(t, []string{"willMoveOut:2->2", "didMoveOut:2 slot=0"}, rec.events)
	assertInvariants(t, tabs, idx)
}

func TestMoveTabOutOfGroup_LegacyDissolveDropsVisuals(t *testing.T) {
	_, idx, _ := newFixture(t, IdentityLegacy, 2)
	idx.MergeTabsToGroup(2, 1, false)
	idx.SetTabGroupTitle(1, "Pair")

	idx.MoveTabOutOfGroup(2)

	assert.Empty(t, idx.TabGroupTitle(1))
}

func TestOnTabRemoved_DissolvedGroupDropsVisuals(t *testing.T) {
	tests := []struct {
		name     string
		closeID  entity.TabID
		mergeTo  entity.TabID
		wantRoot entity.TabID
	}{
		{name: "member closed", closeID: 2, mergeTo: 1, wantRoot: 1},
		{name: "root closed", closeID: 1, mergeTo: 2, wantRoot: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tabs, idx, rec := newFixture(t, IdentityLegacy, 3)
			idx.MergeTabsToGroup(2, 1, false)
			idx.SetTabGroupTitle(1, "Work")
			idx.SetTabGroupColor(1, entity.ColorBlue)

			tabs.RemoveTab(tt.closeID)

			assert.Zero(t, idx.TabGroupCount())
			assert.Empty(t, idx.TabGroupTitle(tt.wantRoot))
			_, ok := idx.TabGroupColor(tt.wantRoot)
			assert.False(t, ok)

			rec.reset()
			idx.MergeTabsToGroup(3, tt.mergeTo, false)

			assert.Contains(t, rec.events, fmt.Sprintf("didCreateNewGroup:%d", tt.wantRoot), "new group is not mistaken for a coloured one")
			assert.Empty(t, idx.TabGroupTitle(tt.wantRoot))
			assertInvariants(t, tabs, idx)
		})
	}
}

func TestOnTabRemoved_LastMemberDropsVisuals(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityStable, 2)
	idx.CreateSingleTabGroup(1)
	idx.SetTabGroupTitle(1, "Solo")

	tabs.RemoveTab(1)

	assert.Empty(t, idx.TabGroupTitle(1))
	assert.Zero(t, idx.TabGroupCount())
}

func TestMoveTabOutOfGroup_StableKeepsSingleTabGroup(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityStable, 3)
	idx.MergeTabsToGroup(2, 1, false)

	idx.MoveTabOutOfGroup(2)

	assert.Equal(t, 1, idx.TabGroupCount(), "remaining tab keeps its token")
	assert.True(t, idx.IsTabInTabGroup(1))
	assert.False(t, idx.IsTabInTabGroup(2))
	assertInvariants(t, tabs, idx)
}

func TestCreateSingleTabGroup(t *testing.T) {
	tabs, idx, rec := newFixture(t, IdentityStable, 2)

	idx.CreateSingleTabGroup(2)

	assert.True(t, idx.IsTabInTabGroup(2))
	assert.True(t, idx.GroupExists(2))
	assert.Equal(t, 1, idx.TabGroupCount())
	assert.Equal(t, []string{
		"willMerge:2->2",
		"didMerge:2 shown=2",
		"didCreateGroup:2 [2]",
		"didCreateNewGroup:2",
	}, rec.events)

	undo(idx, rec.creations[0])
	assert.False(t, idx.IsTabInTabGroup(2))
	assert.Zero(t, idx.TabGroupCount())
	assertInvariants(t, tabs, idx)
}

func TestCreateSingleTabGroup_Preconditions(t *testing.T) {
	_, legacy, _ := newFixture(t, IdentityLegacy, 1)
	assert.Panics(t, func() { legacy.CreateSingleTabGroup(1) })

	_, stable, _ := newFixture(t, IdentityStable, 1)
	stable.CreateSingleTabGroup(1)
	assert.Panics(t, func() { stable.CreateSingleTabGroup(1) }, "token already present")
}

func TestMoveTabOutOfGroup_SingleTabGroupClearsToken(t *testing.T) {
	tabs, idx, rec := newFixture(t, IdentityStable, 2)
	idx.CreateSingleTabGroup(1)
	idx.SetTabGroupColor(1, entity.ColorRed)
	rec.reset()

	idx.MoveTabOutOfGroup(1)

	assert.Equal(t, []entity.TabID{1, 2}, stripIDs(tabs))
	assert.False(t, idx.IsTabInTabGroup(1))
	assert.Zero(t, idx.TabGroupCount())
	_, hasColor := idx.TabGroupColor(1)
	assert.False(t, hasColor)
	assert.Equal(t, []string{"willMoveOut:1->1", "didMoveOut:1 slot=0"}, rec.events)
}

func TestUndoGroupedTab_RestoresOriginalStrip(t *testing.T) {
	tabs, idx, rec := newFixture(t, IdentityLegacy, 3)
	idx.MergeTabsToGroup(3, 1, false)
	require.Len(t, rec.creations, 1)
	creation := rec.creations[0]
	rec.reset()

	undo(idx, creation)

	assert.Equal(t, []entity.TabID{1, 2, 3}, stripIDs(tabs))
	assert.Equal(t, []entity.TabID{1, 2, 3}, rootIDs(tabs))
	assert.Zero(t, idx.TabGroupCount())
	assert.Equal(t, []string{"didMoveOut:3 slot=0", "didMerge:1 shown=1"}, rec.events)
	assertInvariants(t, tabs, idx)
}

func TestUndoGroupedTab_WholeGroupRoundTrip(t *testing.T) {
	for _, scheme := range []IdentityScheme{IdentityLegacy, IdentityStable} {
		t.Run(scheme.String(), func(t *testing.T) {
			tabs, idx, rec := newFixture(t, scheme, 5)
			idx.MergeTabsToGroup(4, 3, false)
			beforeOrder, beforeRoots := stripIDs(tabs), rootIDs(tabs)
			rec.reset()

			idx.MergeTabsToGroup(3, 1, false)
			require.Len(t, rec.creations, 1)
			creation := rec.creations[0]
			assert.Equal(t, []entity.TabID{1, 3, 4, 2, 5}, stripIDs(tabs))

			undo(idx, creation)
			if creation.DestinationToken == uuid.Nil && tabs.TabByID(1).HasGroupToken() {
				idx.MoveTabOutOfGroup(1)
			}

			assert.Equal(t, beforeOrder, stripIDs(tabs))
			assert.Equal(t, beforeRoots, rootIDs(tabs))
			assert.Equal(t, 1, idx.TabGroupCount())
			assertInvariants(t, tabs, idx)
		})
	}
}

func TestMoveRelatedTabs(t *testing.T) {
	tabs, idx, rec := newFixture(t, IdentityLegacy, 5)
	idx.MergeTabsToGroup(2, 1, false)
	rec.reset()

	idx.MoveRelatedTabs(1, 5)

	assert.Equal(t, []entity.TabID{3, 4, 5, 1, 2}, stripIDs(tabs))
	assert.Equal(t, []string{"willMoveGroup:0->5", "didMoveGroup:2 0->3"}, rec.events)
	assert.Equal(t, 3, idx.SlotOf(1))
	assertInvariants(t, tabs, idx)

	rec.reset()
	idx.MoveRelatedTabs(2, 0)

	assert.Equal(t, []entity.TabID{1, 2, 3, 4, 5}, stripIDs(tabs))
	assert.Equal(t, []string{"willMoveGroup:3->0", "didMoveGroup:2 3->0"}, rec.events)
	assert.Equal(t, 0, idx.SlotOf(2))
	assertInvariants(t, tabs, idx)
}

func TestMoveRelatedTabs_InsideOwnRunIsNoop(t *testing.T) {
	tabs, idx, rec := newFixture(t, IdentityLegacy, 3)
	idx.MergeTabsToGroup(2, 1, false)
	rec.reset()

	idx.MoveRelatedTabs(1, 2)

	assert.Equal(t, []entity.TabID{1, 2, 3}, stripIDs(tabs))
	assert.Empty(t, rec.events)
}

func TestOnTabMoved_ClassifiesStripMoves(t *testing.T) {
	tabs, idx, rec := newFixture(t, IdentityLegacy, 4)
	idx.MergeTabsToGroup(2, 1, false)
	idx.MergeTabsToGroup(3, 1, false)
	rec.reset()

	tabs.MoveTab(1, 3)
	assert.Equal(t, []string{"didMoveWithin:1 0->2"}, rec.events)
	assert.Equal(t, []entity.TabID{2, 3, 1}, idx.RelatedTabIDs(1))

	rec.reset()
	tabs.MoveTab(4, 0)
	assert.Equal(t, []string{"didMoveGroup:4 3->0"}, rec.events)
	assert.Equal(t, 0, idx.SlotOf(4))
	assert.Equal(t, 1, idx.SlotOf(1))
	assertInvariants(t, tabs, idx)
}

func TestOnTabAdded_InheritsGroupFromParent(t *testing.T) {
	tests := []struct {
		name       string
		scheme     IdentityScheme
		launchType entity.LaunchType
		parentID   entity.TabID
		restoring  bool
		wantRoot   entity.TabID
	}{
		{name: "group ui legacy", scheme: IdentityLegacy, launchType: entity.FromTabGroupUI, parentID: 2, wantRoot: 1},
		{name: "group ui stable", scheme: IdentityStable, launchType: entity.FromTabGroupUI, parentID: 2, wantRoot: 1},
		{name: "longpress background", scheme: IdentityLegacy, launchType: entity.FromLongpressBackground, parentID: 1, wantRoot: 1},
		{name: "longpress foreground in group", scheme: IdentityStable, launchType: entity.FromLongpressForegroundInGroup, parentID: 1, wantRoot: 1},
		{name: "plain link", scheme: IdentityLegacy, launchType: entity.FromLink, parentID: 2, wantRoot: 4},
		{name: "parent not grouped", scheme: IdentityLegacy, launchType: entity.FromTabGroupUI, parentID: 3, wantRoot: 4},
		{name: "while restoring", scheme: IdentityLegacy, launchType: entity.FromTabGroupUI, parentID: 2, restoring: true, wantRoot: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tabs, idx, _ := newFixture(t, tt.scheme, 3)
			idx.MergeTabsToGroup(2, 1, false)
			if tt.restoring {
				tabs.BeginRestore()
			}

			tab := entity.NewTab(tabs.NextID(), tt.launchType)
			tab.ParentID = tt.parentID
			tabs.AddTab(tab, 2)

			assert.Equal(t, tt.wantRoot, tab.RootID)
			assert.Equal(t, tabs.TabByID(tt.wantRoot).GroupToken, tab.GroupToken)
			if tt.wantRoot == 1 {
				assert.Equal(t, []entity.TabID{1, 2, 4}, idx.RelatedTabIDs(4))
				assert.Equal(t, 1, idx.TabGroupCount())
			}
			assertInvariants(t, tabs, idx)
		})
	}
}

func TestOnTabAdded_InheritedTabKeepsMembersInStripOrder(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityLegacy, 4)
	idx.MergeTabsToGroup(2, 1, false)

	tab := entity.NewTab(tabs.NextID(), entity.FromTabGroupUI)
	tab.ParentID = 1
	tabs.AddTab(tab, 1)

	require.Equal(t, []entity.TabID{1, 5, 2, 3, 4}, stripIDs(tabs))
	assert.Equal(t, []entity.TabID{1, 5, 2}, idx.RelatedTabIDs(1))

	idx.MergeTabsToGroup(1, 4, false)

	assert.Equal(t, []entity.TabID{3, 4, 1, 5, 2}, stripIDs(tabs), "group keeps its visual order when moved")
	assert.Equal(t, []entity.TabID{4, 1, 5, 2}, idx.RelatedTabIDs(4))
	assertInvariants(t, tabs, idx)
}

type selectOnAdd struct {
	tabs *entity.TabList
}

func (s selectOnAdd) OnTabAdded(tab *entity.Tab) {
	s.tabs.SelectTab(tab.ID)
}

func (s selectOnAdd) OnTabRemoved(*entity.Tab) {
}

func (s selectOnAdd) OnTabSelected(*entity.Tab, entity.TabID) {
}

func (s selectOnAdd) OnTabMoved(*entity.Tab, int, int) {
}

func (s selectOnAdd) OnRestoreCompleted() {
}

func TestOnTabSelected_BeforeTabIsIndexed(t *testing.T) {
	tabs := entity.NewTabList(false)
	tabs.AddTab(entity.NewTab(1, entity.FromLink), -1)
	tabs.AddTab(entity.NewTab(2, entity.FromLink), -1)
	tabs.AddObserver(selectOnAdd{tabs: tabs})
	idx := NewIndex(tabs, Config{})
	idx.MergeTabsToGroup(2, 1, false)
	require.Equal(t, entity.TabID(1), idx.LastShownTabID(1))

	tab := entity.NewTab(tabs.NextID(), entity.FromTabGroupUI)
	tab.ParentID = 2
	tabs.AddTab(tab, 2)

	assert.Equal(t, entity.TabID(1), tab.RootID)
	assert.Equal(t, tab.ID, idx.LastShownTabID(1), "selection applied once the tab joined its group")
	assert.Equal(t, tab.ID, idx.TabAtSlot(0).ID)
}

func TestOnTabSelected_UpdatesLastShown(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityLegacy, 3)
	idx.MergeTabsToGroup(2, 1, false)

	tabs.SelectTab(2)
	assert.Equal(t, entity.TabID(2), idx.TabAtSlot(0).ID)

	tabs.RemoveTab(2)
	assert.Equal(t, entity.TabID(1), idx.LastShownTabID(1), "falls back to the previous member")
	assert.Nil(t, idx.TabAtSlot(5))
}

func TestOnTabRemoved_ClosingRootReKeysGroup(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityLegacy, 4)
	idx.MergeTabsToGroup(2, 1, false)
	idx.MergeTabsToGroup(3, 1, false)
	idx.SetTabGroupTitle(1, "Research")

	tabs.RemoveTab(1)

	assert.Equal(t, []entity.TabID{2, 2, 4}, rootIDs(tabs))
	assert.True(t, idx.GroupExists(2))
	assert.False(t, idx.GroupExists(1))
	assert.Equal(t, "Research", idx.TabGroupTitle(2))
	assert.Equal(t, 0, idx.SlotOf(2))
	assert.Equal(t, 1, idx.SlotOf(4))
	assertInvariants(t, tabs, idx)
}

func TestOnTabRemoved_ShiftsSlots(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityLegacy, 3)

	tabs.RemoveTab(1)

	assert.Equal(t, 0, idx.SlotOf(2))
	assert.Equal(t, 1, idx.SlotOf(3))
	assert.Equal(t, 2, idx.Count())
}

func TestOnTabRemoved_UnknownTabPanics(t *testing.T) {
	_, idx, _ := newFixture(t, IdentityLegacy, 1)

	assert.Panics(t, func() {
		idx.OnTabRemoved(&entity.Tab{ID: 99, RootID: 99})
	})
}

func TestOnTabAdded_IncognitoMismatchPanics(t *testing.T) {
	tabs, _, _ := newFixture(t, IdentityLegacy, 1)
	tab := entity.NewTab(tabs.NextID(), entity.FromLink)
	tab.Incognito = true

	assert.Panics(t, func() { tabs.AddTab(tab, -1) })
}

func TestOnTabAdded_MiddleInsertRecomputesSlots(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityLegacy, 3)

	tabs.AddTab(entity.NewTab(tabs.NextID(), entity.FromLink), 1)

	assert.Equal(t, 0, idx.SlotOf(1))
	assert.Equal(t, 1, idx.SlotOf(4))
	assert.Equal(t, 2, idx.SlotOf(2))
	assert.Equal(t, 3, idx.SlotOf(3))
}

type reentrant struct {
	NoopObserver
	idx *Index
}

func (r *reentrant) DidMergeTabToGroup(*entity.Tab, entity.TabID) {
	r.idx.MoveTabOutOfGroup(2)
}

func TestIndex_ReentrantMutationPanics(t *testing.T) {
	_, idx, _ := newFixture(t, IdentityLegacy, 2)
	idx.AddObserver(&reentrant{idx: idx})

	assert.Panics(t, func() { idx.MergeTabsToGroup(2, 1, false) })
	assert.False(t, idx.mutating)
	assert.Zero(t, idx.dispatching)
}

func TestIndex_RemoveObserver(t *testing.T) {
	_, idx, rec := newFixture(t, IdentityLegacy, 2)
	idx.RemoveObserver(rec)

	idx.MergeTabsToGroup(2, 1, false)

	assert.Empty(t, rec.events)
}

func TestTitleAndColor(t *testing.T) {
	_, idx, rec := newFixture(t, IdentityLegacy, 2)

	idx.SetTabGroupTitle(1, "Docs")
	idx.SetTabGroupColor(1, entity.ColorGreen)
	assert.Equal(t, "Docs", idx.TabGroupTitle(1))
	color, ok := idx.TabGroupColor(1)
	require.True(t, ok)
	assert.Equal(t, entity.ColorGreen, color)

	idx.DeleteTabGroupTitle(1)
	idx.DeleteTabGroupColor(1)
	_, ok = idx.TabGroupColor(1)
	assert.False(t, ok)
	_, stored := idx.visuals.Get(1)
	assert.False(t, stored, "empty visual removed from the store")

	assert.Equal(t, []string{"title:1=Docs", "color:1=green", "title:1=", "color:1=none"}, rec.events)
}

func TestConvertIdentity(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityLegacy, 4)
	idx.MergeTabsToGroup(2, 1, false)
	idx.MergeTabsToGroup(4, 3, false)

	res := idx.ConvertIdentity(IdentityStable)

	assert.Equal(t, 4, res.TokensAssigned)
	assert.Equal(t, 2, res.GroupsTouched)
	assert.Equal(t, IdentityStable, idx.Scheme())
	assert.Equal(t, tabs.TabByID(1).GroupToken, tabs.TabByID(2).GroupToken)
	assert.NotEqual(t, tabs.TabByID(1).GroupToken, tabs.TabByID(3).GroupToken)
	assert.Equal(t, 2, idx.TabGroupCount())
	assertInvariants(t, tabs, idx)

	assert.Panics(t, func() { idx.CreateSingleTabGroup(3) }, "grouped tab already carries a token")
}

func TestConvertIdentity_ToLegacyDropsSingleTabGroups(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityStable, 3)
	idx.MergeTabsToGroup(2, 1, false)
	idx.CreateSingleTabGroup(3)
	require.Equal(t, 2, idx.TabGroupCount())

	res := idx.ConvertIdentity(IdentityLegacy)

	assert.Equal(t, 3, res.TokensCleared)
	assert.Equal(t, 1, idx.TabGroupCount())
	for _, tab := range tabs.Tabs() {
		assert.False(t, tab.HasGroupToken())
	}
	assertInvariants(t, tabs, idx)
}

func TestOnRestoreCompleted_Reconciles(t *testing.T) {
	tabs := entity.NewTabList(false)
	idx := NewIndex(tabs, Config{Scheme: IdentityStable, NewToken: sequentialTokens()})
	tabs.BeginRestore()
	require.False(t, idx.IsRestored())

	for _, snap := range []struct{ id, root entity.TabID }{{1, 9}, {2, 9}, {3, 3}} {
		tab := entity.NewTab(snap.id, entity.FromRestore)
		tab.RootID = snap.root
		tabs.AddTab(tab, -1)
	}
	tabs.CompleteRestore()

	diag := idx.Diagnostics()
	assert.True(t, idx.IsRestored())
	assert.True(t, diag.OrderValid)
	assert.Equal(t, 1, diag.RootIDsFixed)
	assert.Equal(t, 2, diag.TokensAssigned)
	assert.False(t, diag.RestoredAt.IsZero())
	assert.Equal(t, []entity.TabID{1, 1, 3}, rootIDs(tabs))
	assert.Equal(t, 1, idx.TabGroupCount())
	assertInvariants(t, tabs, idx)
}

func TestOnRestoreCompleted_ReportsBrokenOrder(t *testing.T) {
	tabs := entity.NewTabList(false)
	idx := NewIndex(tabs, Config{Scheme: IdentityLegacy})
	tabs.BeginRestore()
	for _, snap := range []struct{ id, root entity.TabID }{{1, 1}, {2, 2}, {3, 1}} {
		tab := entity.NewTab(snap.id, entity.FromRestore)
		tab.RootID = snap.root
		tabs.AddTab(tab, -1)
	}
	tabs.CompleteRestore()

	assert.False(t, idx.Diagnostics().OrderValid)
	assert.False(t, idx.IsOrderValid())
}

func TestFixRootIDs(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityLegacy, 3)
	idx.MergeTabsToGroup(2, 1, false)

	// Simulate a corrupted key by re-filing the group under a closed id.
	g := idx.groups[1]
	delete(idx.groups, 1)
	g.rootID = 7
	idx.groups[7] = g
	for _, id := range g.tabIDs {
		tabs.TabByID(id).RootID = 7
	}

	assert.Equal(t, 1, idx.FixRootIDs())
	assert.Equal(t, []entity.TabID{1, 1, 3}, rootIDs(tabs))
	assert.Equal(t, 1, idx.Diagnostics().RootIDsFixed)
	assertInvariants(t, tabs, idx)
}

func TestResetFilterState_KeepsLastShown(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityLegacy, 4)
	idx.MergeTabsToGroup(2, 1, false)
	idx.MergeTabsToGroup(4, 3, false)
	tabs.SelectTab(2)
	tabs.SelectTab(3)

	idx.ResetFilterState()

	assert.Equal(t, entity.TabID(2), idx.LastShownTabID(1))
	assert.Equal(t, entity.TabID(3), idx.LastShownTabID(3))
	assert.Equal(t, 2, idx.TabGroupCount())
	assertInvariants(t, tabs, idx)
}

func TestGroups_Snapshot(t *testing.T) {
	_, idx, _ := newFixture(t, IdentityLegacy, 3)
	idx.MergeTabsToGroup(3, 1, false)
	idx.SetTabGroupTitle(1, "Pair")

	groups := idx.Groups()

	require.Len(t, groups, 2)
	assert.Equal(t, GroupInfo{
		Slot:        0,
		RootID:      1,
		TabIDs:      []entity.TabID{1, 3},
		LastShownID: 1,
		Title:       "Pair",
		Color:       entity.NoGroupColor,
		IsTabGroup:  true,
	}, groups[0])
	assert.Equal(t, entity.TabID(2), groups[1].RootID)
	assert.False(t, groups[1].IsTabGroup)
}

func TestRelatedTabIDs_SameForEveryMember(t *testing.T) {
	_, idx, _ := newFixture(t, IdentityLegacy, 4)
	idx.MergeTabsToGroup(4, 2, false)
	idx.MergeTabsToGroup(1, 2, false)

	want := idx.RelatedTabIDs(2)
	for _, id := range want {
		assert.Equal(t, want, idx.RelatedTabIDs(id))
	}
	assert.Nil(t, idx.RelatedTabIDs(42))
	assert.Nil(t, idx.RelatedTabsForRootID(42))
	assert.Len(t, idx.RelatedTabsForRootID(2), 3)
}

func TestRelatedTabsForRootID_SkipsMembersMissingFromStrip(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityLegacy, 3)
	idx.MergeTabsToGroup(2, 1, false)
	tabs.RemoveObserver(idx)
	tabs.RemoveTab(2)

	var got []*entity.Tab
	require.NotPanics(t, func() { got = idx.RelatedTabsForRootID(1) })

	require.Len(t, got, 1)
	assert.Equal(t, entity.TabID(1), got[0].ID)
	assert.Equal(t, []entity.TabID{1, 2}, idx.RelatedTabIDs(1), "ids are reported as indexed")
}

func TestIdentityOf(t *testing.T) {
	tabs, idx, _ := newFixture(t, IdentityStable, 2)
	idx.MergeTabsToGroup(2, 1, false)

	got := idx.IdentityOf(2)

	assert.Equal(t, GroupIdentity{Scheme: IdentityStable, RootID: 1, Token: tabs.TabByID(1).GroupToken}, got)
	assert.True(t, got.InGroup(2))
	assert.False(t, GroupIdentity{Scheme: IdentityLegacy, RootID: 1}.InGroup(1))
}

func TestParseIdentityScheme(t *testing.T) {
	tests := []struct {
		in      string
		want    IdentityScheme
		wantErr bool
	}{
		{in: "legacy", want: IdentityLegacy},
		{in: " Stable ", want: IdentityStable},
		{in: "", want: IdentityStable},
		{in: "uuid", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIdentityScheme(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
