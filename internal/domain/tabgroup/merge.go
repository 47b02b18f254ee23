package tabgroup

import (
	"fmt"

	"github.com/bnema/tabgroups/internal/domain/entity"
)

// MergeTabsToGroup merges the whole group of sourceID into the group of
// destinationID. The source is moved to sit right after the destination's
// last member unless it already starts there, or skipReorder is set because
// the caller already arranged the strip.
func (idx *Index) MergeTabsToGroup(sourceID, destinationID entity.TabID, skipReorder bool) {
	defer idx.begin("MergeTabsToGroup")()

	source := idx.mustTab(sourceID)
	destination := idx.mustTab(destinationID)
	idx.checkIncognito(source)
	idx.checkIncognito(destination)

	if source.RootID == destination.RootID {
		return
	}

	tabsToMerge := idx.RelatedTabs(sourceID)
	if !skipReorder && idx.needsPhysicalMove(tabsToMerge, destination) {
		idx.mergeList(tabsToMerge, destination, true, true)
		return
	}
	idx.mergeInPlace(tabsToMerge, destination, !skipReorder)
}

// needsPhysicalMove reports whether tabs must move to join destination's run:
// they are not one contiguous run, or that run does not start right after the
// destination's last member.
func (idx *Index) needsPhysicalMove(tabs []*entity.Tab, destination *entity.Tab) bool {
	if len(tabs) == 0 {
		return false
	}
	first, last := -1, -1
	for _, tab := range tabs {
		i := idx.tabs.IndexOf(tab.ID)
		if first < 0 || i < first {
			first = i
		}
		if i > last {
			last = i
		}
	}
	if last-first+1 != len(tabs) {
		return true
	}
	_, destLast := idx.span(idx.groups[destination.RootID])
	return first != destLast+1
}

// mergeInPlace relabels tabs into destination's group without moving them.
func (idx *Index) mergeInPlace(tabs []*entity.Tab, destination *entity.Tab, undoable bool) {
	destGroup := idx.groups[destination.RootID]
	willCreate := !idx.countsAsGroup(destGroup)
	creation := idx.newCreation(destination, undoable)

	for _, tab := range tabs {
		creation.record(tab, idx.tabs.IndexOf(tab.ID))
	}
	last := tabs[len(tabs)-1]
	idx.notify(func(o Observer) { o.WillMergeTabToGroup(last, destination.RootID) })

	token := idx.destinationToken(destination)
	idx.deferRootRepair = true
	for _, tab := range tabs {
		source := idx.groupContaining(tab.ID)
		tab.RootID = destination.RootID
		tab.GroupToken = token
		if source != nil {
			idx.leave(source, tab.ID)
		}
		idx.join(destGroup, tab)
	}
	idx.deferRootRepair = false
	idx.repairRootIDs()
	idx.reorder()

	idx.notify(func(o Observer) { o.DidMergeTabToGroup(last, destGroup.lastShownID) })
	idx.createdGroup(willCreate, destination, creation, true)
}

// MergeListOfTabsToGroup moves tabs, in the order given, to the end of
// destinationID's group. With isSameGroup the tabs are treated as one
// group and only the last emits WillMergeTabToGroup. Tabs already in the
// destination group are skipped.
func (idx *Index) MergeListOfTabsToGroup(tabIDs []entity.TabID, destinationID entity.TabID, isSameGroup, notify bool) {
	defer idx.begin("MergeListOfTabsToGroup")()

	destination := idx.mustTab(destinationID)
	idx.checkIncognito(destination)
	tabs := make([]*entity.Tab, 0, len(tabIDs))
	for _, id := range tabIDs {
		tabs = append(tabs, idx.mustTab(id))
	}
	idx.mergeList(tabs, destination, isSameGroup, notify)
}

func (idx *Index) mergeList(tabs []*entity.Tab, destination *entity.Tab, isSameGroup, notify bool) {
	destinationRootID := destination.RootID
	moving := make([]*entity.Tab, 0, len(tabs))
	for _, tab := range tabs {
		idx.checkIncognito(tab)
		if tab.RootID != destinationRootID {
			moving = append(moving, tab)
		}
	}
	if len(moving) == 0 {
		return
	}

	destGroup := idx.groups[destinationRootID]
	willCreate := !idx.countsAsGroup(destGroup)
	creation := idx.newCreation(destination, true)
	token := idx.destinationToken(destination)
	_, destLast := idx.span(destGroup)
	destinationIndex := destLast + 1

	idx.deferRootRepair = true
	for i, tab := range moving {
		if !isSameGroup || i == len(moving)-1 {
			idx.notify(func(o Observer) { o.WillMergeTabToGroup(tab, destinationRootID) })
		}

		// Recorded indexes refer to the strip as it is before this tab moves.
		index := idx.tabs.IndexOf(tab.ID)
		creation.record(tab, index)
		mergingBackward := index < destinationIndex
		tab.RootID = destinationRootID
		tab.GroupToken = token

		if index == destinationIndex || index+1 == destinationIndex {
			// Already in place: the strip would not report a move.
			idx.handleTabMoved(tab, index, index)
		} else {
			idx.tabs.MoveTab(tab.ID, destinationIndex)
		}
		if !mergingBackward {
			destinationIndex++
		}
	}
	idx.deferRootRepair = false
	if idx.repairRootIDs() > 0 {
		idx.reorder()
	}

	idx.log.Debug().
		Int("destination_root_id", int(destinationRootID)).
		Int("merged", len(moving)).
		Msg("tabs merged to group")

	idx.createdGroup(willCreate, destination, creation, notify)
}

// CreateSingleTabGroup turns an ungrouped tab into a group of its own.
// It requires the stable identity scheme and a tab without a token.
func (idx *Index) CreateSingleTabGroup(id entity.TabID) {
	defer idx.begin("CreateSingleTabGroup")()

	tab := idx.mustTab(id)
	idx.checkIncognito(tab)
	if idx.scheme != IdentityStable {
		panic("tabgroup: single tab groups require the stable identity scheme")
	}
	if tab.HasGroupToken() {
		panic(fmt.Sprintf("tabgroup: tab %d already carries a group token", id))
	}
	g := idx.groups[tab.RootID]
	if g == nil || g.size() != 1 {
		panic(fmt.Sprintf("tabgroup: tab %d is not alone in its group record", id))
	}

	creation := idx.newCreation(tab, true)
	creation.record(tab, idx.tabs.IndexOf(id))

	idx.notify(func(o Observer) { o.WillMergeTabToGroup(tab, tab.RootID) })
	idx.setGroupToken(g, idx.newToken())
	idx.notify(func(o Observer) { o.DidMergeTabToGroup(tab, tab.ID) })
	idx.createdGroup(true, tab, creation, true)
}

func (idx *Index) newCreation(destination *entity.Tab, undoable bool) GroupCreation {
	v := idx.visualOf(destination.RootID)
	return GroupCreation{
		DestinationID:     destination.ID,
		DestinationRootID: destination.RootID,
		DestinationToken:  destination.GroupToken,
		Title:             v.Title,
		Color:             v.Color,
		Undoable:          undoable,
	}
}

// createdGroup emits the creation events when a merge produced a new group.
// DidCreateNewGroup only fires for groups without a stored colour.
func (idx *Index) createdGroup(willCreate bool, destination *entity.Tab, creation GroupCreation, notify bool) {
	if !willCreate {
		return
	}
	if notify {
		idx.notify(func(o Observer) { o.DidCreateGroup(creation) })
	}
	if _, hasColor := idx.TabGroupColor(destination.RootID); !hasColor {
		idx.notify(func(o Observer) { o.DidCreateNewGroup(destination) })
	}
}
