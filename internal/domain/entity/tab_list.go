package entity

// TabListObserver receives the strip's lifecycle events.
// Hooks are invoked synchronously after the strip has been updated.
type TabListObserver interface {
	OnTabAdded(tab *Tab)
	OnTabRemoved(tab *Tab)
	OnTabSelected(tab *Tab, previousID TabID)
	OnTabMoved(tab *Tab, newIndex, oldIndex int)
	OnRestoreCompleted()
}

// TabList is an ordered strip of tabs. It is the source of truth for ordering;
// indexes built on top of it must re-derive order after every move.
type TabList struct {
	tabs        []*Tab
	activeTabID TabID
	incognito   bool
	restoring   bool
	lastID      TabID
	observers   []TabListObserver
}

// NewTabList creates an empty tab list.
func NewTabList(incognito bool) *TabList {
	return &TabList{
		tabs:      make([]*Tab, 0),
		incognito: incognito,
	}
}

// AddObserver registers a hook receiver. Dispatch follows registration order.
func (tl *TabList) AddObserver(o TabListObserver) {
	tl.observers = append(tl.observers, o)
}

// RemoveObserver unregisters a hook receiver.
func (tl *TabList) RemoveObserver(o TabListObserver) {
	for i, existing := range tl.observers {
		if existing == o {
			tl.observers = append(tl.observers[:i], tl.observers[i+1:]...)
			return
		}
	}
}

func (tl *TabList) each(fn func(TabListObserver)) {
	observers := make([]TabListObserver, len(tl.observers))
	copy(observers, tl.observers)
	for _, o := range observers {
		fn(o)
	}
}

// NextID allocates a tab id greater than any id seen so far.
func (tl *TabList) NextID() TabID {
	tl.lastID++
	return tl.lastID
}

// AddTab inserts a tab at index. A negative index or one past the end appends.
func (tl *TabList) AddTab(tab *Tab, index int) {
	if tab.ID > tl.lastID {
		tl.lastID = tab.ID
	}
	if tab.RootID == NoTabID {
		tab.RootID = tab.ID
	}
	if index < 0 || index > len(tl.tabs) {
		index = len(tl.tabs)
	}
	tl.tabs = append(tl.tabs, nil)
	copy(tl.tabs[index+1:], tl.tabs[index:])
	tl.tabs[index] = tab

	if tl.activeTabID == NoTabID {
		tl.activeTabID = tab.ID
	}

	tl.each(func(o TabListObserver) { o.OnTabAdded(tab) })
}

// RemoveTab removes a tab by id. It returns false when the id is unknown.
func (tl *TabList) RemoveTab(id TabID) bool {
	i := tl.IndexOf(id)
	if i < 0 {
		return false
	}
	tab := tl.tabs[i]
	tl.tabs = append(tl.tabs[:i], tl.tabs[i+1:]...)

	if tl.activeTabID == id {
		switch {
		case len(tl.tabs) == 0:
			tl.activeTabID = NoTabID
		case i < len(tl.tabs):
			tl.activeTabID = tl.tabs[i].ID
		default:
			tl.activeTabID = tl.tabs[len(tl.tabs)-1].ID
		}
	}

	tl.each(func(o TabListObserver) { o.OnTabRemoved(tab) })
	return true
}

// SelectTab makes id the active tab.
func (tl *TabList) SelectTab(id TabID) bool {
	tab := tl.TabByID(id)
	if tab == nil {
		return false
	}
	previous := tl.activeTabID
	tl.activeTabID = id
	tl.each(func(o TabListObserver) { o.OnTabSelected(tab, previous) })
	return true
}

// MoveTab moves a tab using insertion-point semantics: newIndex names the slot
// in the current strip the tab is inserted before. Moving to its own index or
// the one right after it is a no-op. Returns the final index, or -1 when the
// id is unknown.
func (tl *TabList) MoveTab(id TabID, newIndex int) int {
	cur := tl.IndexOf(id)
	if cur < 0 {
		return -1
	}
	newIndex = max(0, min(newIndex, len(tl.tabs)))
	if newIndex == cur || newIndex == cur+1 {
		return cur
	}

	tab := tl.tabs[cur]
	tl.tabs = append(tl.tabs[:cur], tl.tabs[cur+1:]...)
	if cur < newIndex {
		newIndex--
	}
	tl.tabs = append(tl.tabs, nil)
	copy(tl.tabs[newIndex+1:], tl.tabs[newIndex:])
	tl.tabs[newIndex] = tab

	tl.each(func(o TabListObserver) { o.OnTabMoved(tab, newIndex, cur) })
	return newIndex
}

// BeginRestore marks the strip as being rebuilt from persisted state.
func (tl *TabList) BeginRestore() {
	tl.restoring = true
}

// CompleteRestore clears the restoring flag and notifies observers.
func (tl *TabList) CompleteRestore() {
	tl.restoring = false
	tl.each(func(o TabListObserver) { o.OnRestoreCompleted() })
}

// IsRestoring reports whether a restore is in progress.
func (tl *TabList) IsRestoring() bool {
	return tl.restoring
}

// IsIncognito reports whether the strip holds incognito tabs.
func (tl *TabList) IsIncognito() bool {
	return tl.incognito
}

// Count returns the number of tabs.
func (tl *TabList) Count() int {
	return len(tl.tabs)
}

// TabAt returns the tab at index, or nil when out of range.
func (tl *TabList) TabAt(index int) *Tab {
	if index < 0 || index >= len(tl.tabs) {
		return nil
	}
	return tl.tabs[index]
}

// TabByID returns a tab by id, or nil.
func (tl *TabList) TabByID(id TabID) *Tab {
	for _, tab := range tl.tabs {
		if tab.ID == id {
			return tab
		}
	}
	return nil
}

// IndexOf returns the index of a tab, or -1.
func (tl *TabList) IndexOf(id TabID) int {
	for i, tab := range tl.tabs {
		if tab.ID == id {
			return i
		}
	}
	return -1
}

// ActiveTabID returns the id of the selected tab.
func (tl *TabList) ActiveTabID() TabID {
	return tl.activeTabID
}

// ActiveTab returns the selected tab.
func (tl *TabList) ActiveTab() *Tab {
	return tl.TabByID(tl.activeTabID)
}

// Tabs returns a copy of the ordered tab slice.
func (tl *TabList) Tabs() []*Tab {
	out := make([]*Tab, len(tl.tabs))
	copy(out, tl.tabs)
	return out
}
