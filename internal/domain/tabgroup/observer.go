package tabgroup

import (
	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/google/uuid"
)

//go:generate mockgen -source=observer.go -destination=mocks/mock_observer.go -package=mocks

// Observer receives structural group events. Pre and post events come in
// pairs around every mutation; dispatch follows registration order.
//
// Observers must not call mutating Index methods from inside a callback.
// Embed NoopObserver, or use ObserverFuncs, to handle only a subset.
type Observer interface {
	WillMergeTabToGroup(movedTab *entity.Tab, newRootID entity.TabID)
	DidMergeTabToGroup(movedTab *entity.Tab, selectedTabIDInGroup entity.TabID)
	WillMoveTabGroup(oldIndex, newIndex int)
	DidMoveTabGroup(movedTab *entity.Tab, oldIndex, newIndex int)
	DidMoveWithinGroup(movedTab *entity.Tab, oldIndex, newIndex int)
	WillMoveTabOutOfGroup(movedTab *entity.Tab, newRootID entity.TabID)
	DidMoveTabOutOfGroup(movedTab *entity.Tab, prevSlot int)
	DidCreateGroup(creation GroupCreation)
	DidCreateNewGroup(destinationTab *entity.Tab)
	DidChangeTabGroupTitle(rootID entity.TabID, title string)
	DidChangeTabGroupColor(rootID entity.TabID, color entity.GroupColor)
}

// GroupCreation describes a merge that turned the destination into a group.
// The Original* slices are parallel to Tabs and feed Index.UndoGroupedTab.
// DestinationToken, Title and Color hold the destination's state before the
// merge. Undoable is false when the caller reordered the strip itself.
type GroupCreation struct {
	DestinationID     entity.TabID
	DestinationRootID entity.TabID
	DestinationToken  uuid.UUID
	Tabs              []*entity.Tab
	OriginalIndexes   []int
	OriginalRootIDs   []entity.TabID
	OriginalTokens    []uuid.UUID
	Title             string
	Color             entity.GroupColor
	Undoable          bool
}

func (c *GroupCreation) record(tab *entity.Tab, index int) {
	c.Tabs = append(c.Tabs, tab)
	if !c.Undoable {
		return
	}
	c.OriginalIndexes = append(c.OriginalIndexes, index)
	c.OriginalRootIDs = append(c.OriginalRootIDs, tab.RootID)
	c.OriginalTokens = append(c.OriginalTokens, tab.GroupToken)
}

// NoopObserver implements Observer with empty methods.
type NoopObserver struct{}

func (NoopObserver) WillMergeTabToGroup(*entity.Tab, entity.TabID) {
}

func (NoopObserver) DidMergeTabToGroup(*entity.Tab, entity.TabID) {
}

func (NoopObserver) WillMoveTabGroup(int, int) {
}

func (NoopObserver) DidMoveTabGroup(*entity.Tab, int, int) {
}

func (NoopObserver) DidMoveWithinGroup(*entity.Tab, int, int) {
}

func (NoopObserver) WillMoveTabOutOfGroup(*entity.Tab, entity.TabID) {
}

func (NoopObserver) DidMoveTabOutOfGroup(*entity.Tab, int) {
}

func (NoopObserver) DidCreateGroup(GroupCreation) {
}

func (NoopObserver) DidCreateNewGroup(*entity.Tab) {
}

func (NoopObserver) DidChangeTabGroupTitle(entity.TabID, string) {
}

func (NoopObserver) DidChangeTabGroupColor(entity.TabID, entity.GroupColor) {
}

// ObserverFuncs adapts optional callbacks to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnWillMergeTabToGroup    func(movedTab *entity.Tab, newRootID entity.TabID)
	OnDidMergeTabToGroup     func(movedTab *entity.Tab, selectedTabIDInGroup entity.TabID)
	OnWillMoveTabGroup       func(oldIndex, newIndex int)
	OnDidMoveTabGroup        func(movedTab *entity.Tab, oldIndex, newIndex int)
	OnDidMoveWithinGroup     func(movedTab *entity.Tab, oldIndex, newIndex int)
	OnWillMoveTabOutOfGroup  func(movedTab *entity.Tab, newRootID entity.TabID)
	OnDidMoveTabOutOfGroup   func(movedTab *entity.Tab, prevSlot int)
	OnDidCreateGroup         func(creation GroupCreation)
	OnDidCreateNewGroup      func(destinationTab *entity.Tab)
	OnDidChangeTabGroupTitle func(rootID entity.TabID, title string)
	OnDidChangeTabGroupColor func(rootID entity.TabID, color entity.GroupColor)
}

func (f *ObserverFuncs) WillMergeTabToGroup(movedTab *entity.Tab, newRootID entity.TabID) {
	if f.OnWillMergeTabToGroup != nil {
		f.OnWillMergeTabToGroup(movedTab, newRootID)
	}
}

func (f *ObserverFuncs) DidMergeTabToGroup(movedTab *entity.Tab, selectedTabIDInGroup entity.TabID) {
	if f.OnDidMergeTabToGroup != nil {
		f.OnDidMergeTabToGroup(movedTab, selectedTabIDInGroup)
	}
}

func (f *ObserverFuncs) WillMoveTabGroup(oldIndex, newIndex int) {
	if f.OnWillMoveTabGroup != nil {
		f.OnWillMoveTabGroup(oldIndex, newIndex)
	}
}

func (f *ObserverFuncs) DidMoveTabGroup(movedTab *entity.Tab, oldIndex, newIndex int) {
	if f.OnDidMoveTabGroup != nil {
		f.OnDidMoveTabGroup(movedTab, oldIndex, newIndex)
	}
}

func (f *ObserverFuncs) DidMoveWithinGroup(movedTab *entity.Tab, oldIndex, newIndex int) {
	if f.OnDidMoveWithinGroup != nil {
		f.OnDidMoveWithinGroup(movedTab, oldIndex, newIndex)
	}
}

func (f *ObserverFuncs) WillMoveTabOutOfGroup(movedTab *entity.Tab, newRootID entity.TabID) {
	if f.OnWillMoveTabOutOfGroup != nil {
		f.OnWillMoveTabOutOfGroup(movedTab, newRootID)
	}
}

func (f *ObserverFuncs) DidMoveTabOutOfGroup(movedTab *entity.Tab, prevSlot int) {
	if f.OnDidMoveTabOutOfGroup != nil {
		f.OnDidMoveTabOutOfGroup(movedTab, prevSlot)
	}
}

func (f *ObserverFuncs) DidCreateGroup(creation GroupCreation) {
	if f.OnDidCreateGroup != nil {
		f.OnDidCreateGroup(creation)
	}
}

func (f *ObserverFuncs) DidCreateNewGroup(destinationTab *entity.Tab) {
	if f.OnDidCreateNewGroup != nil {
		f.OnDidCreateNewGroup(destinationTab)
	}
}

func (f *ObserverFuncs) DidChangeTabGroupTitle(rootID entity.TabID, title string) {
	if f.OnDidChangeTabGroupTitle != nil {
		f.OnDidChangeTabGroupTitle(rootID, title)
	}
}

func (f *ObserverFuncs) DidChangeTabGroupColor(rootID entity.TabID, color entity.GroupColor) {
	if f.OnDidChangeTabGroupColor != nil {
		f.OnDidChangeTabGroupColor(rootID, color)
	}
}
