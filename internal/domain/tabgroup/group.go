package tabgroup

import (
	"slices"

	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/google/uuid"
)

// group is the index's record of one root id. Every tab in the strip belongs
// to exactly one record, including ungrouped tabs (a record of size one).
type group struct {
	rootID entity.TabID
	// token mirrors the members' GroupToken so counting never needs the strip.
	token       uuid.UUID
	tabIDs      []entity.TabID
	lastShownID entity.TabID
}

func newGroup(rootID entity.TabID) *group {
	return &group{rootID: rootID}
}

func (g *group) size() int {
	return len(g.tabIDs)
}

func (g *group) contains(id entity.TabID) bool {
	return slices.Contains(g.tabIDs, id)
}

func (g *group) add(id entity.TabID) {
	if g.contains(id) {
		return
	}
	g.tabIDs = append(g.tabIDs, id)
	if g.lastShownID == entity.NoTabID {
		g.lastShownID = id
	}
}

// remove drops id. When id was the last shown member, the neighbour before it
// (or after it, when it was first) takes over.
func (g *group) remove(id entity.TabID) {
	pos := slices.Index(g.tabIDs, id)
	if pos < 0 {
		return
	}
	if g.lastShownID == id {
		g.lastShownID = g.nextToShow(pos)
	}
	g.tabIDs = slices.Delete(g.tabIDs, pos, pos+1)
}

func (g *group) nextToShow(pos int) entity.TabID {
	if len(g.tabIDs) <= 1 {
		return entity.NoTabID
	}
	if pos == 0 {
		return g.tabIDs[1]
	}
	return g.tabIDs[pos-1]
}

func (g *group) moveToEnd(id entity.TabID) {
	pos := slices.Index(g.tabIDs, id)
	if pos < 0 {
		return
	}
	g.tabIDs = append(slices.Delete(g.tabIDs, pos, pos+1), id)
}

func (g *group) ids() []entity.TabID {
	return slices.Clone(g.tabIDs)
}
