package usecase

import (
	"sync"

	"github.com/bnema/tabgroups/internal/domain/tabgroup"
)

// GroupCreationRecorder keeps the undo data of the most recent group
// creations, newest last.
type GroupCreationRecorder struct {
	tabgroup.NoopObserver

	mu      sync.Mutex
	limit   int
	entries []tabgroup.GroupCreation
}

// NewGroupCreationRecorder keeps at most limit creations. A limit below one
// keeps a single entry.
func NewGroupCreationRecorder(limit int) *GroupCreationRecorder {
	return &GroupCreationRecorder{limit: max(limit, 1)}
}

// DidCreateGroup records undoable creations.
func (r *GroupCreationRecorder) DidCreateGroup(creation tabgroup.GroupCreation) {
	if !creation.Undoable {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, creation)
	if over := len(r.entries) - r.limit; over > 0 {
		r.entries = append(r.entries[:0], r.entries[over:]...)
	}
}

// Pop removes and returns the newest creation.
func (r *GroupCreationRecorder) Pop() (tabgroup.GroupCreation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return tabgroup.GroupCreation{}, false
	}
	last := r.entries[len(r.entries)-1]
	r.entries = r.entries[:len(r.entries)-1]
	return last, true
}

// Len returns the number of recorded creations.
func (r *GroupCreationRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Clear drops every recorded creation.
func (r *GroupCreationRecorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
