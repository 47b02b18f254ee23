package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/tabgroups/internal/cache/generic"
	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/bnema/tabgroups/internal/domain/repository"
	"github.com/bnema/tabgroups/internal/domain/tabgroup"
	"github.com/bnema/tabgroups/internal/logging"
)

// ErrTabNotFound is returned when a command names a tab the strip does not hold.
var ErrTabNotFound = errors.New("tab not found")

// ErrNothingToUndo is returned when no grouping can be undone.
var ErrNothingToUndo = errors.New("nothing to undo")

const defaultUndoDepth = 20

// VisualCache is the group title and colour cache a session writes through.
type VisualCache = generic.GenericCache[entity.TabID, entity.GroupVisual]

// StripSession is a live tab strip with its group index.
type StripSession struct {
	ID      entity.StripID
	Tabs    *entity.TabList
	Groups  *tabgroup.Index
	History *GroupCreationRecorder

	visuals *VisualCache
}

// NewStripSession indexes tabs and starts recording group creations.
// cfg.Visuals defaults to an in-memory store.
func NewStripSession(id entity.StripID, tabs *entity.TabList, cfg tabgroup.Config) *StripSession {
	s := &StripSession{
		ID:      id,
		Tabs:    tabs,
		Groups:  tabgroup.NewIndex(tabs, cfg),
		History: NewGroupCreationRecorder(defaultUndoDepth),
	}
	if cache, ok := cfg.Visuals.(*VisualCache); ok {
		s.visuals = cache
	}
	s.Groups.AddObserver(s.History)
	return s
}

// tab returns the tab for id or ErrTabNotFound.
func (s *StripSession) tab(id entity.TabID) (*entity.Tab, error) {
	tab := s.Tabs.TabByID(id)
	if tab == nil {
		return nil, fmt.Errorf("%w: %d", ErrTabNotFound, id)
	}
	return tab, nil
}

// Flush waits for pending visual writes.
func (s *StripSession) Flush() error {
	if s.visuals == nil {
		return nil
	}
	return s.visuals.Flush()
}

// Close detaches the index and flushes visual writes.
func (s *StripSession) Close() error {
	s.Groups.RemoveObserver(s.History)
	s.Groups.Close()
	return s.Flush()
}

// NewVisualCache builds a cache over the visuals stored for stripID.
// The caller loads it.
func NewVisualCache(ctx context.Context, repo repository.GroupVisualRepository, stripID entity.StripID) *VisualCache {
	return generic.NewGenericCache[entity.TabID, entity.GroupVisual](
		&visualOps{repo: repo, stripID: stripID},
		generic.WithContext(ctx),
		generic.WithLogger(*logging.FromContext(ctx)),
	)
}

// visualOps scopes a GroupVisualRepository to one strip for the cache.
type visualOps struct {
	repo    repository.GroupVisualRepository
	stripID entity.StripID
}

func (o *visualOps) LoadAll(ctx context.Context) (map[entity.TabID]entity.GroupVisual, error) {
	return o.repo.ListByStrip(ctx, o.stripID)
}

func (o *visualOps) Persist(ctx context.Context, rootID entity.TabID, visual entity.GroupVisual) error {
	return o.repo.Upsert(ctx, o.stripID, rootID, visual)
}

func (o *visualOps) Delete(ctx context.Context, rootID entity.TabID) error {
	return o.repo.Delete(ctx, o.stripID, rootID)
}
