package tabgroup

import (
	"fmt"

	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/google/uuid"
)

// MoveTabOutOfGroup ungroups id, placing it after the group's last member.
func (idx *Index) MoveTabOutOfGroup(id entity.TabID) {
	idx.MoveTabOutOfGroupInDirection(id, true)
}

// MoveTabOutOfGroupInDirection ungroups id. The tab lands just past the
// group's trailing edge, or just before its leading edge. A single-tab group
// keeps its position and only loses its token.
func (idx *Index) MoveTabOutOfGroupInDirection(id entity.TabID, trailing bool) {
	defer idx.begin("MoveTabOutOfGroupInDirection")()

	tab := idx.mustTab(id)
	idx.checkIncognito(tab)
	g := idx.groups[tab.RootID]
	if g == nil || !g.contains(id) {
		panic(fmt.Sprintf("tabgroup: tab %d is not indexed under root %d", id, tab.RootID))
	}
	prevSlot := idx.slots[g.rootID]

	if g.size() == 1 {
		idx.notify(func(o Observer) { o.WillMoveTabOutOfGroup(tab, tab.RootID) })
		if tab.HasGroupToken() {
			tab.GroupToken = uuid.Nil
			if idx.track(g, func() { g.token = uuid.Nil }) {
				idx.dropVisual(g.rootID)
			}
		}
		idx.notify(func(o Observer) { o.DidMoveTabOutOfGroup(tab, prevSlot) })
		return
	}

	sourceIndex := idx.tabs.IndexOf(id)
	idx.notify(func(o Observer) { o.WillMoveTabOutOfGroup(tab, tab.ID) })

	if g.rootID == id {
		idx.rekeyGroup(g, idx.electAdjacentRoot(g, sourceIndex, id))
	}
	first, last := idx.span(g)

	tab.RootID = tab.ID
	tab.GroupToken = uuid.Nil

	target := first
	if trailing {
		target = last
	}
	if sourceIndex == target {
		idx.handleTabMoved(tab, sourceIndex, sourceIndex)
	} else if trailing {
		idx.tabs.MoveTab(id, last+1)
	} else {
		idx.tabs.MoveTab(id, first)
	}

	idx.log.Debug().
		Int("tab_id", int(id)).
		Int("group_root_id", int(g.rootID)).
		Bool("trailing", trailing).
		Msg("tab moved out of group")
}

// electAdjacentRoot picks the member next to the leaving root, preferring the
// one before it.
func (idx *Index) electAdjacentRoot(g *group, sourceIndex int, leaving entity.TabID) entity.TabID {
	for _, i := range []int{sourceIndex - 1, sourceIndex + 1} {
		if t := idx.tabs.TabAt(i); t != nil && t.ID != leaving && g.contains(t.ID) {
			return t.ID
		}
	}
	for _, memberID := range g.tabIDs {
		if memberID != leaving {
			return memberID
		}
	}
	return entity.NoTabID
}

// MoveRelatedTabs moves id's whole group so its first member lands at
// newIndex (insertion-point semantics). Targets inside the group's own run
// are ignored.
func (idx *Index) MoveRelatedTabs(id entity.TabID, newIndex int) {
	defer idx.begin("MoveRelatedTabs")()

	idx.mustTab(id)
	related := idx.RelatedTabs(id)
	first, last := -1, -1
	for _, tab := range related {
		i := idx.tabs.IndexOf(tab.ID)
		if first < 0 || i < first {
			first = i
		}
		last = max(last, i)
	}
	newIndex = max(0, min(newIndex, idx.tabs.Count()))
	if newIndex >= first && newIndex <= last+1 {
		return
	}

	idx.notify(func(o Observer) { o.WillMoveTabGroup(first, newIndex) })

	idx.movingGroup = true
	for i, tab := range related {
		if newIndex > last {
			idx.tabs.MoveTab(tab.ID, newIndex)
		} else {
			idx.tabs.MoveTab(tab.ID, newIndex+i)
		}
	}
	idx.movingGroup = false
	idx.reorder()

	moved := related[len(related)-1]
	finalIndex := idx.tabs.IndexOf(related[0].ID)
	idx.notify(func(o Observer) { o.DidMoveTabGroup(moved, first, finalIndex) })
}

// UndoGroupedTab reverts one tab of a merge to the index, root id and token
// recorded in GroupCreation. Undo the tabs of a merge in reverse order.
func (idx *Index) UndoGroupedTab(id entity.TabID, originalIndex int, originalRootID entity.TabID, originalToken uuid.UUID) {
	defer idx.begin("UndoGroupedTab")()

	tab := idx.mustTab(id)
	idx.checkIncognito(tab)
	currentIndex := idx.tabs.IndexOf(id)
	currentRootID := tab.RootID

	if originalRootID == currentRootID {
		if g := idx.groups[currentRootID]; g != nil && g.size() == 1 {
			if idx.track(g, func() { g.token = originalToken }) {
				idx.dropVisual(currentRootID)
			}
		}
	}
	tab.RootID = originalRootID
	tab.GroupToken = originalToken

	if currentIndex == originalIndex {
		idx.handleTabMoved(tab, originalIndex, currentIndex)
	} else {
		if currentIndex < originalIndex {
			originalIndex++
		}
		idx.tabs.MoveTab(id, originalIndex)
	}

	if g := idx.groups[currentRootID]; g != nil && currentRootID != originalRootID {
		if shown := idx.tabs.TabByID(g.lastShownID); shown != nil {
			idx.notify(func(o Observer) { o.DidMergeTabToGroup(shown, g.lastShownID) })
		}
	}
}
