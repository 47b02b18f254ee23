package tabgroup

import (
	"sync"

	"github.com/bnema/tabgroups/internal/domain/entity"
)

// VisualStore holds group titles and colours keyed by root id.
// generic.Cache satisfies it, so a persisted cache can be plugged in directly.
type VisualStore interface {
	Get(rootID entity.TabID) (entity.GroupVisual, bool)
	Set(rootID entity.TabID, visual entity.GroupVisual) error
	Delete(rootID entity.TabID) error
}

// MemoryVisualStore is an in-process VisualStore.
type MemoryVisualStore struct {
	mu      sync.RWMutex
	visuals map[entity.TabID]entity.GroupVisual
}

// NewMemoryVisualStore creates an empty store.
func NewMemoryVisualStore() *MemoryVisualStore {
	return &MemoryVisualStore{visuals: make(map[entity.TabID]entity.GroupVisual)}
}

func (s *MemoryVisualStore) Get(rootID entity.TabID) (entity.GroupVisual, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.visuals[rootID]
	return v, ok
}

func (s *MemoryVisualStore) Set(rootID entity.TabID, visual entity.GroupVisual) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visuals[rootID] = visual
	return nil
}

func (s *MemoryVisualStore) Delete(rootID entity.TabID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.visuals, rootID)
	return nil
}

// TabGroupTitle returns the stored title for rootID, or "".
func (idx *Index) TabGroupTitle(rootID entity.TabID) string {
	v, _ := idx.visuals.Get(rootID)
	return v.Title
}

// TabGroupColor returns the stored colour and whether one is set.
func (idx *Index) TabGroupColor(rootID entity.TabID) (entity.GroupColor, bool) {
	v, ok := idx.visuals.Get(rootID)
	if !ok || v.Color == entity.NoGroupColor {
		return entity.NoGroupColor, false
	}
	return v.Color, true
}

// SetTabGroupTitle stores title and notifies observers.
func (idx *Index) SetTabGroupTitle(rootID entity.TabID, title string) {
	defer idx.begin("SetTabGroupTitle")()
	v := idx.visualOf(rootID)
	v.Title = title
	idx.storeVisual(rootID, v)
	idx.notify(func(o Observer) { o.DidChangeTabGroupTitle(rootID, title) })
}

// DeleteTabGroupTitle clears the title of rootID.
func (idx *Index) DeleteTabGroupTitle(rootID entity.TabID) {
	idx.SetTabGroupTitle(rootID, "")
}

// SetTabGroupColor stores color and notifies observers.
func (idx *Index) SetTabGroupColor(rootID entity.TabID, color entity.GroupColor) {
	defer idx.begin("SetTabGroupColor")()
	v := idx.visualOf(rootID)
	v.Color = color
	idx.storeVisual(rootID, v)
	idx.notify(func(o Observer) { o.DidChangeTabGroupColor(rootID, color) })
}

// DeleteTabGroupColor clears the colour of rootID.
func (idx *Index) DeleteTabGroupColor(rootID entity.TabID) {
	idx.SetTabGroupColor(rootID, entity.NoGroupColor)
}

func (idx *Index) visualOf(rootID entity.TabID) entity.GroupVisual {
	v, ok := idx.visuals.Get(rootID)
	if !ok {
		return entity.GroupVisual{Color: entity.NoGroupColor}
	}
	return v
}

func (idx *Index) storeVisual(rootID entity.TabID, v entity.GroupVisual) {
	var err error
	if v.IsZero() {
		err = idx.visuals.Delete(rootID)
	} else {
		err = idx.visuals.Set(rootID, v)
	}
	if err != nil {
		idx.log.Warn().Err(err).Int("root_id", int(rootID)).Msg("failed to store group visual")
	}
}

// moveVisual carries a group's decoration over to its new root id.
func (idx *Index) moveVisual(from, to entity.TabID) {
	v, ok := idx.visuals.Get(from)
	if !ok {
		return
	}
	if _, taken := idx.visuals.Get(to); !taken {
		idx.storeVisual(to, v)
	}
	idx.dropVisual(from)
}

func (idx *Index) dropVisual(rootID entity.TabID) {
	if _, ok := idx.visuals.Get(rootID); !ok {
		return
	}
	if err := idx.visuals.Delete(rootID); err != nil {
		idx.log.Warn().Err(err).Int("root_id", int(rootID)).Msg("failed to delete group visual")
	}
}
