package tabgroup

import (
	"cmp"
	"slices"

	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/google/uuid"
)

// join adds tab to g, adopting the tab's token.
func (idx *Index) join(g *group, tab *entity.Tab) {
	idx.track(g, func() {
		g.add(tab.ID)
		switch {
		case tab.HasGroupToken():
			g.token = tab.GroupToken
		case g.size() == 1:
			g.token = uuid.Nil
		}
	})
}

// leave removes id from g. An emptied record is dropped; a record that lost
// its root is re-keyed to its first remaining member in strip order.
func (idx *Index) leave(g *group, id entity.TabID) (dissolved bool) {
	dissolved = idx.track(g, func() {
		g.remove(id)
		if g.size() == 0 {
			g.token = uuid.Nil
		}
	})
	if g.size() == 0 {
		idx.dropGroup(g)
		return dissolved
	}
	if g.rootID == id && !idx.deferRootRepair {
		idx.rekeyGroup(g, idx.firstInStrip(g))
	}
	return dissolved
}

func (idx *Index) dropGroup(g *group) {
	delete(idx.groups, g.rootID)
	slot, ok := idx.slots[g.rootID]
	if !ok {
		return
	}
	delete(idx.slots, g.rootID)
	for rootID, s := range idx.slots {
		if s > slot {
			idx.slots[rootID] = s - 1
		}
	}
}

// rekeyGroup moves g to newRoot, relabelling members and carrying its slot
// and decoration along.
func (idx *Index) rekeyGroup(g *group, newRoot entity.TabID) {
	oldRoot := g.rootID
	if oldRoot == newRoot || newRoot == entity.NoTabID {
		return
	}
	for _, id := range g.tabIDs {
		if tab := idx.tabs.TabByID(id); tab != nil {
			tab.RootID = newRoot
		}
	}
	delete(idx.groups, oldRoot)
	g.rootID = newRoot
	idx.groups[newRoot] = g
	if slot, ok := idx.slots[oldRoot]; ok {
		delete(idx.slots, oldRoot)
		idx.slots[newRoot] = slot
	}
	idx.moveVisual(oldRoot, newRoot)

	idx.log.Debug().
		Int("old_root_id", int(oldRoot)).
		Int("new_root_id", int(newRoot)).
		Msg("group re-keyed")
}

// firstInStrip returns the member of g that comes first in the strip, or the
// first recorded member when none is present.
func (idx *Index) firstInStrip(g *group) entity.TabID {
	best, bestIndex := entity.NoTabID, -1
	for _, id := range g.tabIDs {
		i := idx.tabs.IndexOf(id)
		if i >= 0 && (bestIndex < 0 || i < bestIndex) {
			best, bestIndex = id, i
		}
	}
	if best == entity.NoTabID && g.size() > 0 {
		return g.tabIDs[0]
	}
	return best
}

// span returns the lowest and highest strip index of g's members.
func (idx *Index) span(g *group) (first, last int) {
	first, last = -1, -1
	for _, id := range g.tabIDs {
		i := idx.tabs.IndexOf(id)
		if i < 0 {
			continue
		}
		if first < 0 || i < first {
			first = i
		}
		if i > last {
			last = i
		}
	}
	return first, last
}

// groupContaining finds the record that lists id, whatever the tab's RootID.
func (idx *Index) groupContaining(id entity.TabID) *group {
	for _, g := range idx.groups {
		if g.contains(id) {
			return g
		}
	}
	return nil
}

// addTab files tab under its RootID, creating the record when needed.
func (idx *Index) addTab(tab *entity.Tab) {
	g, ok := idx.groups[tab.RootID]
	if !ok {
		g = newGroup(tab.RootID)
		idx.groups[tab.RootID] = g
		idx.join(g, tab)
		if idx.resetting || idx.tabs.IsRestoring() || idx.tabs.IndexOf(tab.ID) == idx.tabs.Count()-1 {
			idx.slots[tab.RootID] = len(idx.slots)
		} else {
			idx.resetSlots()
		}
	} else {
		idx.join(g, tab)
		if !idx.resetting && !idx.tabs.IsRestoring() {
			idx.sortMembers(g)
		}
	}

	if pending := idx.absentSelectedID; pending != entity.NoTabID {
		idx.absentSelectedID = entity.NoTabID
		idx.selectTab(pending)
	}
}

func (idx *Index) selectTab(id entity.TabID) {
	tab := idx.tabs.TabByID(id)
	if tab == nil {
		return
	}
	g := idx.groups[tab.RootID]
	if g == nil || !g.contains(id) {
		idx.absentSelectedID = id
		return
	}
	g.lastShownID = id
}

// sortMembers puts g's member list back in strip order after a tab joined
// somewhere inside the run.
func (idx *Index) sortMembers(g *group) {
	slices.SortStableFunc(g.tabIDs, func(a, b entity.TabID) int {
		return cmp.Compare(idx.tabs.IndexOf(a), idx.tabs.IndexOf(b))
	})
}

// resetSlots recomputes every display slot from strip order.
func (idx *Index) resetSlots() {
	clear(idx.slots)
	for i := 0; i < idx.tabs.Count(); i++ {
		tab := idx.tabs.TabAt(i)
		if _, ok := idx.groups[tab.RootID]; !ok {
			continue
		}
		if _, seen := idx.slots[tab.RootID]; !seen {
			idx.slots[tab.RootID] = len(idx.slots)
		}
	}

	var orphaned []entity.TabID
	for rootID := range idx.groups {
		if _, ok := idx.slots[rootID]; !ok {
			orphaned = append(orphaned, rootID)
		}
	}
	slices.Sort(orphaned)
	for _, rootID := range orphaned {
		idx.slots[rootID] = len(idx.slots)
	}
}

// reorder re-derives slots and member order from the strip.
func (idx *Index) reorder() {
	idx.resetSlots()
	for i := 0; i < idx.tabs.Count(); i++ {
		tab := idx.tabs.TabAt(i)
		if g := idx.groups[tab.RootID]; g != nil {
			g.moveToEnd(tab.ID)
		}
	}
}

// Reorder re-derives slots and member order from the strip.
func (idx *Index) Reorder() {
	defer idx.begin("Reorder")()
	idx.reorder()
}

// ResetFilterState discards every record and rebuilds from the strip,
// keeping each surviving group's last shown tab.
func (idx *Index) ResetFilterState() {
	defer idx.begin("ResetFilterState")()
	idx.resetFilterState()
}

func (idx *Index) resetFilterState() {
	lastShown := make(map[entity.TabID]entity.TabID, len(idx.groups))
	for rootID, g := range idx.groups {
		lastShown[rootID] = g.lastShownID
	}

	idx.groups = make(map[entity.TabID]*group)
	idx.slots = make(map[entity.TabID]int)
	idx.actualGroupCount = 0

	idx.resetting = true
	for i := 0; i < idx.tabs.Count(); i++ {
		idx.addTab(idx.tabs.TabAt(i))
	}
	idx.resetting = false

	for rootID, g := range idx.groups {
		if id, ok := lastShown[rootID]; ok && g.contains(id) {
			g.lastShownID = id
		}
	}
	if active := idx.tabs.ActiveTabID(); active != entity.NoTabID {
		idx.selectTab(active)
	}
	idx.recountGroups()
}

// IsOrderValid reports whether every group occupies one contiguous run.
func (idx *Index) IsOrderValid() bool {
	closed := make(map[entity.TabID]bool)
	current := entity.NoTabID
	for i := 0; i < idx.tabs.Count(); i++ {
		rootID := idx.tabs.TabAt(i).RootID
		if rootID == current {
			continue
		}
		if closed[rootID] {
			return false
		}
		if current != entity.NoTabID {
			closed[current] = true
		}
		current = rootID
	}
	return true
}

// FixRootIDs re-keys every group whose key is not one of its members.
// It returns the number of groups fixed.
func (idx *Index) FixRootIDs() int {
	defer idx.begin("FixRootIDs")()
	fixed := idx.repairRootIDs()
	idx.diag.RootIDsFixed += fixed
	return fixed
}

func (idx *Index) repairRootIDs() int {
	fixed := 0
	for _, g := range idx.orderedGroups() {
		if g.size() == 0 || g.contains(g.rootID) {
			continue
		}
		newRoot := idx.firstInStrip(g)
		if other, taken := idx.groups[newRoot]; taken && other != g {
			idx.log.Warn().
				Int("root_id", int(g.rootID)).
				Int("candidate_root_id", int(newRoot)).
				Msg("cannot re-key group, candidate root already keys another group")
			continue
		}
		idx.rekeyGroup(g, newRoot)
		fixed++
	}
	return fixed
}
