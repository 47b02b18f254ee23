package tabgroup

import (
	"fmt"
	"time"

	"github.com/bnema/tabgroups/internal/domain/entity"
)

var _ entity.TabListObserver = (*Index)(nil)

// OnTabAdded files a new tab. Once the strip is restored, a tab opened from a
// grouped parent through a group launch joins the parent's group.
func (idx *Index) OnTabAdded(tab *entity.Tab) {
	idx.checkIncognito(tab)
	if parent := idx.inheritFrom(tab); parent != nil {
		tab.RootID = parent.RootID
		tab.GroupToken = parent.GroupToken
	}
	idx.addTab(tab)

	idx.log.Trace().
		Int("tab_id", int(tab.ID)).
		Int("root_id", int(tab.RootID)).
		Str("launch_type", tab.LaunchType.String()).
		Msg("tab indexed")
}

func (idx *Index) inheritFrom(tab *entity.Tab) *entity.Tab {
	if !idx.IsRestored() || idx.resetting || tab.ParentID == entity.NoTabID {
		return nil
	}
	if !tab.LaunchType.OpenedInGroup() && tab.LaunchType != entity.FromLongpressBackground {
		return nil
	}
	parent := idx.tabs.TabByID(tab.ParentID)
	if parent == nil || parent.ID == tab.ID || !idx.IsTabInTabGroup(parent.ID) {
		return nil
	}
	return parent
}

// OnTabRemoved drops a closed tab. A group that lost its root is re-keyed to
// the first remaining member. A group the close broke up loses its title and
// colour.
func (idx *Index) OnTabRemoved(tab *entity.Tab) {
	g := idx.groups[tab.RootID]
	if g == nil || !g.contains(tab.ID) {
		panic(fmt.Sprintf("tabgroup: closed tab %d is not indexed under root %d", tab.ID, tab.RootID))
	}
	if idx.leave(g, tab.ID) || g.size() == 0 {
		idx.dropVisual(g.rootID)
	}
	if idx.absentSelectedID == tab.ID {
		idx.absentSelectedID = entity.NoTabID
	}
}

// OnTabSelected records the tab as its group's last shown member, or holds it
// until the tab's record exists.
func (idx *Index) OnTabSelected(tab *entity.Tab, _ entity.TabID) {
	idx.selectTab(tab.ID)
}

// OnTabMoved classifies a strip move and updates the records.
func (idx *Index) OnTabMoved(tab *entity.Tab, newIndex, oldIndex int) {
	idx.handleTabMoved(tab, newIndex, oldIndex)
}

// OnRestoreCompleted reconciles restored data: root ids are repaired, tokens
// are brought in line with the active scheme and ordering is checked.
func (idx *Index) OnRestoreCompleted() {
	idx.restored = true

	fixed := idx.repairRootIDs()
	res := idx.convertIdentity(idx.scheme)
	idx.reorder()
	valid := idx.IsOrderValid()

	idx.diag.RootIDsFixed += fixed
	idx.diag.OrderValid = valid
	idx.diag.RestoredAt = time.Now()

	idx.log.Info().
		Int("tabs", idx.tabs.Count()).
		Int("groups", idx.actualGroupCount).
		Int("root_ids_fixed", fixed).
		Int("tokens_assigned", res.TokensAssigned).
		Int("tokens_cleared", res.TokensCleared).
		Bool("order_valid", valid).
		Msg("tab groups restored")
	if !valid {
		idx.log.Warn().Msg("restored groups are not contiguous")
	}
}

// handleTabMoved is shared by strip moves and the synthetic moves issued when
// a relabelled tab is already where it belongs.
func (idx *Index) handleTabMoved(tab *entity.Tab, newIndex, oldIndex int) {
	if idx.movingGroup {
		return
	}

	dest := idx.groups[tab.RootID]
	merging := dest != nil && !dest.contains(tab.ID)
	movingOut := dest == nil

	source := dest
	if merging || movingOut {
		source = idx.groupContaining(tab.ID)
	}
	if source == nil {
		idx.log.Warn().Int("tab_id", int(tab.ID)).Msg("moved tab not indexed, rebuilding")
		idx.resetFilterState()
		return
	}
	prevSlot := idx.slots[source.rootID]

	switch {
	case movingOut:
		if idx.leave(source, tab.ID) && source.size() > 0 {
			idx.dropVisual(source.rootID)
		}
		idx.addTab(tab)
		idx.reorder()
		idx.notify(func(o Observer) { o.DidMoveTabOutOfGroup(tab, prevSlot) })
	case merging:
		idx.leave(source, tab.ID)
		idx.join(dest, tab)
		idx.reorder()
		idx.notify(func(o Observer) { o.DidMergeTabToGroup(tab, dest.lastShownID) })
	default:
		idx.reorder()
		if idx.isMoveWithinGroup(tab, oldIndex, newIndex) {
			idx.notify(func(o Observer) { o.DidMoveWithinGroup(tab, oldIndex, newIndex) })
		} else {
			idx.notify(func(o Observer) { o.DidMoveTabGroup(tab, oldIndex, newIndex) })
		}
	}
}

// isMoveWithinGroup reports whether every tab between the two indexes shares
// the moved tab's root id.
func (idx *Index) isMoveWithinGroup(tab *entity.Tab, oldIndex, newIndex int) bool {
	lo, hi := min(oldIndex, newIndex), max(oldIndex, newIndex)
	for i := lo; i <= hi; i++ {
		t := idx.tabs.TabAt(i)
		if t == nil || t.RootID != tab.RootID {
			return false
		}
	}
	return true
}
