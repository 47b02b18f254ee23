// Package tabgroup maintains the grouping of a tab strip.
//
// An Index listens to a TabSequence and keeps, for every root id, the ordered
// members of that group, its display slot and the member last shown. Group
// membership is written onto the tabs themselves (RootID and, under the
// stable identity scheme, GroupToken); the Index owns those fields.
//
// All methods must be called from a single goroutine. Mutating methods panic
// when invoked re-entrantly from an Observer callback.
package tabgroup

import (
	"fmt"
	"slices"
	"time"

	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TabSequence is the ordered strip the index is layered on.
// entity.TabList implements it.
type TabSequence interface {
	Count() int
	TabAt(index int) *entity.Tab
	TabByID(id entity.TabID) *entity.Tab
	IndexOf(id entity.TabID) int
	MoveTab(id entity.TabID, newIndex int) int
	ActiveTabID() entity.TabID
	IsIncognito() bool
	IsRestoring() bool
	AddObserver(o entity.TabListObserver)
	RemoveObserver(o entity.TabListObserver)
}

// Config tunes a new Index. The zero value is usable.
type Config struct {
	Scheme  IdentityScheme
	Visuals VisualStore
	Logger  *zerolog.Logger
	// NewToken mints group tokens. Defaults to uuid.New.
	NewToken func() uuid.UUID
}

// Diagnostics records what restore reconciliation found.
type Diagnostics struct {
	OrderValid     bool
	RootIDsFixed   int
	TokensAssigned int
	TokensCleared  int
	RestoredAt     time.Time
}

// GroupInfo is a read-only view of one group record.
type GroupInfo struct {
	Slot        int
	RootID      entity.TabID
	Token       uuid.UUID
	TabIDs      []entity.TabID
	LastShownID entity.TabID
	Title       string
	Color       entity.GroupColor
	IsTabGroup  bool
}

// Index tracks tab groups over a TabSequence.
type Index struct {
	tabs     TabSequence
	scheme   IdentityScheme
	visuals  VisualStore
	log      zerolog.Logger
	newToken func() uuid.UUID

	groups           map[entity.TabID]*group
	slots            map[entity.TabID]int
	actualGroupCount int

	observers []Observer

	restored         bool
	resetting        bool
	movingGroup      bool
	deferRootRepair  bool
	mutating         bool
	dispatching      int
	absentSelectedID entity.TabID

	diag Diagnostics
}

// NewIndex indexes the tabs already in the sequence and subscribes to it.
func NewIndex(tabs TabSequence, cfg Config) *Index {
	idx := &Index{
		tabs:     tabs,
		scheme:   cfg.Scheme,
		visuals:  cfg.Visuals,
		newToken: cfg.NewToken,
		groups:   make(map[entity.TabID]*group),
		slots:    make(map[entity.TabID]int),
	}
	if idx.visuals == nil {
		idx.visuals = NewMemoryVisualStore()
	}
	if idx.newToken == nil {
		idx.newToken = uuid.New
	}
	if cfg.Logger != nil {
		idx.log = cfg.Logger.With().Str("component", "tabgroup").Logger()
	} else {
		idx.log = zerolog.Nop()
	}

	idx.restored = !tabs.IsRestoring()
	idx.resetFilterState()
	tabs.AddObserver(idx)
	return idx
}

// Close detaches the index from its sequence.
func (idx *Index) Close() {
	idx.tabs.RemoveObserver(idx)
	idx.observers = nil
}

// AddObserver registers o. Dispatch follows registration order.
func (idx *Index) AddObserver(o Observer) {
	idx.observers = append(idx.observers, o)
}

// RemoveObserver unregisters o.
func (idx *Index) RemoveObserver(o Observer) {
	if i := slices.Index(idx.observers, o); i >= 0 {
		idx.observers = slices.Delete(idx.observers, i, i+1)
	}
}

// Scheme returns the active identity scheme.
func (idx *Index) Scheme() IdentityScheme {
	return idx.scheme
}

// Count returns the number of group records, singletons included.
func (idx *Index) Count() int {
	return len(idx.groups)
}

// TabGroupCount returns the number of real tab groups.
func (idx *Index) TabGroupCount() int {
	return idx.actualGroupCount
}

// Diagnostics returns the latest restore reconciliation results.
func (idx *Index) Diagnostics() Diagnostics {
	return idx.diag
}

// IsRestored reports whether the sequence has finished restoring.
func (idx *Index) IsRestored() bool {
	return idx.restored && !idx.tabs.IsRestoring()
}

// TabAtSlot returns the last shown tab of the group at a display slot.
func (idx *Index) TabAtSlot(slot int) *entity.Tab {
	for rootID, s := range idx.slots {
		if s != slot {
			continue
		}
		if g := idx.groups[rootID]; g != nil {
			return idx.tabs.TabByID(g.lastShownID)
		}
	}
	return nil
}

// SlotOf returns the display slot of the group containing id, or -1.
func (idx *Index) SlotOf(id entity.TabID) int {
	tab := idx.tabs.TabByID(id)
	if tab == nil {
		return -1
	}
	if slot, ok := idx.slots[tab.RootID]; ok {
		return slot
	}
	return -1
}

// RelatedTabIDs returns the ids of every member of id's group, in strip order.
// A tab without a record is returned alone; an unknown id yields nil.
func (idx *Index) RelatedTabIDs(id entity.TabID) []entity.TabID {
	tab := idx.tabs.TabByID(id)
	if tab == nil {
		return nil
	}
	g := idx.groups[tab.RootID]
	if g == nil {
		return []entity.TabID{id}
	}
	return g.ids()
}

// RelatedTabs is RelatedTabIDs materialised through the sequence.
func (idx *Index) RelatedTabs(id entity.TabID) []*entity.Tab {
	return idx.materialise(idx.RelatedTabIDs(id))
}

// RelatedTabsForRootID returns the members of the group keyed by rootID.
func (idx *Index) RelatedTabsForRootID(rootID entity.TabID) []*entity.Tab {
	g := idx.groups[rootID]
	if g == nil {
		return nil
	}
	return idx.materialise(g.tabIDs)
}

func (idx *Index) materialise(ids []entity.TabID) []*entity.Tab {
	if ids == nil {
		return nil
	}
	tabs := make([]*entity.Tab, 0, len(ids))
	for _, id := range ids {
		if tab := idx.tabs.TabByID(id); tab != nil {
			tabs = append(tabs, tab)
		}
	}
	return tabs
}

// LastShownTabID returns the member last selected in rootID's group.
func (idx *Index) LastShownTabID(rootID entity.TabID) entity.TabID {
	if g := idx.groups[rootID]; g != nil {
		return g.lastShownID
	}
	return entity.NoTabID
}

// GroupExists reports whether rootID keys a real tab group.
func (idx *Index) GroupExists(rootID entity.TabID) bool {
	g := idx.groups[rootID]
	return g != nil && idx.countsAsGroup(g)
}

// IsTabInTabGroup reports whether id belongs to a real tab group.
func (idx *Index) IsTabInTabGroup(id entity.TabID) bool {
	tab := idx.tabs.TabByID(id)
	if tab == nil {
		return false
	}
	if idx.scheme == IdentityStable {
		return tab.HasGroupToken()
	}
	g := idx.groups[tab.RootID]
	return g != nil && g.size() > 1
}

// IdentityOf returns the group identity of id.
func (idx *Index) IdentityOf(id entity.TabID) GroupIdentity {
	tab := idx.tabs.TabByID(id)
	if tab == nil {
		return GroupIdentity{Scheme: idx.scheme}
	}
	return GroupIdentity{Scheme: idx.scheme, RootID: tab.RootID, Token: tab.GroupToken}
}

// RootIDForToken returns the root id of the group carrying token.
func (idx *Index) RootIDForToken(token uuid.UUID) (entity.TabID, bool) {
	if token == uuid.Nil {
		return entity.NoTabID, false
	}
	for rootID, g := range idx.groups {
		if g.token == token {
			return rootID, true
		}
	}
	return entity.NoTabID, false
}

// Groups returns every record in display order.
func (idx *Index) Groups() []GroupInfo {
	ordered := idx.orderedGroups()
	infos := make([]GroupInfo, 0, len(ordered))
	for _, g := range ordered {
		v := idx.visualOf(g.rootID)
		infos = append(infos, GroupInfo{
			Slot:        idx.slots[g.rootID],
			RootID:      g.rootID,
			Token:       g.token,
			TabIDs:      g.ids(),
			LastShownID: g.lastShownID,
			Title:       v.Title,
			Color:       v.Color,
			IsTabGroup:  idx.countsAsGroup(g),
		})
	}
	return infos
}

// orderedGroups returns records sorted by display slot. Records without a
// slot sort last by root id.
func (idx *Index) orderedGroups() []*group {
	out := make([]*group, 0, len(idx.groups))
	for _, g := range idx.groups {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b *group) int {
		sa, okA := idx.slots[a.rootID]
		sb, okB := idx.slots[b.rootID]
		switch {
		case okA && okB:
			return sa - sb
		case okA:
			return -1
		case okB:
			return 1
		}
		return int(a.rootID - b.rootID)
	})
	return out
}

func (idx *Index) countsAsGroup(g *group) bool {
	if g.size() >= 2 {
		return true
	}
	return idx.scheme == IdentityStable && g.size() == 1 && g.token != uuid.Nil
}

// track runs mutate and adjusts the group count by how g's status changed.
// It reports whether g stopped being a real group.
func (idx *Index) track(g *group, mutate func()) (dissolved bool) {
	before := idx.countsAsGroup(g)
	mutate()
	after := idx.countsAsGroup(g)
	switch {
	case before && !after:
		idx.actualGroupCount--
	case !before && after:
		idx.actualGroupCount++
	}
	return before && !after
}

func (idx *Index) recountGroups() {
	n := 0
	for _, g := range idx.groups {
		if idx.countsAsGroup(g) {
			n++
		}
	}
	idx.actualGroupCount = n
}

// begin marks a mutation in progress. Use as: defer idx.begin("Op")().
func (idx *Index) begin(op string) func() {
	if idx.mutating || idx.dispatching > 0 {
		panic(fmt.Sprintf("tabgroup: %s called re-entrantly during another mutation or notification", op))
	}
	idx.mutating = true
	return func() { idx.mutating = false }
}

func (idx *Index) notify(fn func(Observer)) {
	observers := slices.Clone(idx.observers)
	idx.dispatching++
	defer func() { idx.dispatching-- }()
	for _, o := range observers {
		fn(o)
	}
}

func (idx *Index) mustTab(id entity.TabID) *entity.Tab {
	tab := idx.tabs.TabByID(id)
	if tab == nil {
		panic(fmt.Sprintf("tabgroup: unknown tab %d", id))
	}
	return tab
}

func (idx *Index) checkIncognito(tab *entity.Tab) {
	if tab.Incognito != idx.tabs.IsIncognito() {
		panic(fmt.Sprintf("tabgroup: tab %d incognito=%t does not match strip incognito=%t",
			tab.ID, tab.Incognito, idx.tabs.IsIncognito()))
	}
}
