package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/bnema/tabgroups/internal/logging"
)

// ManageTabsUseCase handles tab lifecycle operations on a strip session.
type ManageTabsUseCase struct{}

// NewManageTabsUseCase creates a new tab management use case.
func NewManageTabsUseCase() *ManageTabsUseCase {
	return &ManageTabsUseCase{}
}

// OpenTabInput contains parameters for opening a tab.
type OpenTabInput struct {
	Session    *StripSession
	Title      string
	URL        string
	LaunchType entity.LaunchType
	ParentID   entity.TabID // Optional opener
	Index      int          // Insertion index, -1 appends
	Select     bool
}

// OpenTabOutput contains the opened tab.
type OpenTabOutput struct {
	Tab     *entity.Tab
	Grouped bool
}

// Open creates a tab and inserts it into the strip.
// Tabs launched into a group join their parent's group.
func (uc *ManageTabsUseCase) Open(ctx context.Context, input OpenTabInput) (*OpenTabOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("url", input.URL).
		Str("launch_type", input.LaunchType.String()).
		Int("parent_id", int(input.ParentID)).
		Int("index", input.Index).
		Msg("opening tab")

	s := input.Session
	if s == nil {
		return nil, fmt.Errorf("strip session is required")
	}
	if input.ParentID != entity.NoTabID {
		if _, err := s.tab(input.ParentID); err != nil {
			return nil, fmt.Errorf("parent: %w", err)
		}
	}
	tab := entity.NewTab(s.Tabs.NextID(), input.LaunchType)
	tab.ParentID = input.ParentID
	tab.Incognito = s.Tabs.IsIncognito()
	tab.Title = input.Title
	tab.URL = input.URL

	index := input.Index
	if index < 0 || index > s.Tabs.Count() {
		index = -1
	}
	if joinsParentGroup(s, input) {
		index = clampIntoRun(s, input.ParentID, index)
	} else if index >= 0 {
		index = skipRun(s, index, entity.NoTabID)
	}
	s.Tabs.AddTab(tab, index)
	if input.Select {
		s.Tabs.SelectTab(tab.ID)
	}

	grouped := s.Groups.IsTabInTabGroup(tab.ID)
	log.Info().
		Int("tab_id", int(tab.ID)).
		Int("root_id", int(tab.RootID)).
		Int("position", s.Tabs.IndexOf(tab.ID)).
		Bool("grouped", grouped).
		Msg("tab opened")

	return &OpenTabOutput{Tab: tab, Grouped: grouped}, nil
}

// joinsParentGroup reports whether the new tab will inherit its parent's group.
func joinsParentGroup(s *StripSession, input OpenTabInput) bool {
	if input.ParentID == entity.NoTabID {
		return false
	}
	if !input.LaunchType.OpenedInGroup() && input.LaunchType != entity.FromLongpressBackground {
		return false
	}
	return s.Groups.IsTabInTabGroup(input.ParentID)
}

// clampIntoRun keeps index inside the run of parentID's group, defaulting to
// just after its last member.
func clampIntoRun(s *StripSession, parentID entity.TabID, index int) int {
	first, last := runBounds(s, s.Groups.RelatedTabIDs(parentID))
	if index < first+1 || index > last+1 {
		return last + 1
	}
	return index
}

// runBounds returns the first and last strip index of ids.
func runBounds(s *StripSession, ids []entity.TabID) (first, last int) {
	first, last = -1, -1
	for _, id := range ids {
		i := s.Tabs.IndexOf(id)
		if first < 0 || i < first {
			first = i
		}
		last = max(last, i)
	}
	return first, last
}

// skipRun moves an insertion index that would split a group run, other than
// the one keyed by ownRoot, to just past that run.
func skipRun(s *StripSession, index int, ownRoot entity.TabID) int {
	before, after := s.Tabs.TabAt(index-1), s.Tabs.TabAt(index)
	if before == nil || after == nil || before.RootID != after.RootID || before.RootID == ownRoot {
		return index
	}
	for index < s.Tabs.Count() && s.Tabs.TabAt(index).RootID == before.RootID {
		index++
	}
	return index
}

// Close removes a tab from the strip.
// Returns true if this was the last tab.
func (uc *ManageTabsUseCase) Close(ctx context.Context, s *StripSession, tabID entity.TabID) (wasLast bool, err error) {
	ctx = logging.WithTabID(ctx, int(tabID))
	log := logging.FromContext(ctx)
	log.Debug().Msg("closing tab")

	if s == nil {
		return false, fmt.Errorf("strip session is required")
	}
	if _, err := s.tab(tabID); err != nil {
		return false, err
	}

	wasLast = s.Tabs.Count() == 1
	s.Tabs.RemoveTab(tabID)

	log.Info().
		Int("new_active", int(s.Tabs.ActiveTabID())).
		Int("remaining", s.Tabs.Count()).
		Msg("tab closed")

	return wasLast, nil
}

// Select changes the active tab.
func (uc *ManageTabsUseCase) Select(ctx context.Context, s *StripSession, tabID entity.TabID) error {
	log := logging.FromContext(ctx)
	log.Debug().Int("tab_id", int(tabID)).Msg("selecting tab")

	if s == nil {
		return fmt.Errorf("strip session is required")
	}
	if _, err := s.tab(tabID); err != nil {
		return err
	}

	previous := s.Tabs.ActiveTabID()
	s.Tabs.SelectTab(tabID)

	log.Info().
		Int("from", int(previous)).
		Int("to", int(tabID)).
		Msg("tab selected")

	return nil
}

// Move repositions a tab using insertion-point semantics and returns its
// final index. A member dragged outside its group's run leaves the group,
// and no tab is dropped inside another group's run.
func (uc *ManageTabsUseCase) Move(ctx context.Context, s *StripSession, tabID entity.TabID, newIndex int) (int, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Int("tab_id", int(tabID)).
		Int("new_index", newIndex).
		Msg("moving tab")

	if s == nil {
		return -1, fmt.Errorf("strip session is required")
	}
	tab, err := s.tab(tabID)
	if err != nil {
		return -1, err
	}

	newIndex = max(0, min(newIndex, s.Tabs.Count()))
	if related := s.Groups.RelatedTabIDs(tabID); len(related) > 1 {
		first, last := runBounds(s, related)
		if newIndex < first || newIndex > last+1 {
			s.Groups.MoveTabOutOfGroupInDirection(tabID, newIndex > last)
		}
	}
	newIndex = skipRun(s, newIndex, tab.RootID)

	final := s.Tabs.MoveTab(tabID, newIndex)

	log.Info().
		Int("tab_id", int(tabID)).
		Int("position", final).
		Int("root_id", int(tab.RootID)).
		Msg("tab moved")

	return final, nil
}

// neighbour returns the tab id direction steps away from the active tab,
// wrapping around the strip.
func (uc *ManageTabsUseCase) neighbour(s *StripSession, direction int) entity.TabID {
	count := s.Tabs.Count()
	if count == 0 {
		return entity.NoTabID
	}
	cur := s.Tabs.IndexOf(s.Tabs.ActiveTabID())
	if cur < 0 {
		return s.Tabs.TabAt(0).ID
	}
	next := ((cur+direction)%count + count) % count
	return s.Tabs.TabAt(next).ID
}

// SelectNext selects the next tab (wraps around).
func (uc *ManageTabsUseCase) SelectNext(ctx context.Context, s *StripSession) error {
	if s == nil {
		return fmt.Errorf("strip session is required")
	}
	next := uc.neighbour(s, 1)
	if next == entity.NoTabID || next == s.Tabs.ActiveTabID() {
		return nil
	}
	return uc.Select(ctx, s, next)
}

// SelectPrevious selects the previous tab (wraps around).
func (uc *ManageTabsUseCase) SelectPrevious(ctx context.Context, s *StripSession) error {
	if s == nil {
		return fmt.Errorf("strip session is required")
	}
	prev := uc.neighbour(s, -1)
	if prev == entity.NoTabID || prev == s.Tabs.ActiveTabID() {
		return nil
	}
	return uc.Select(ctx, s, prev)
}

// SelectByIndex selects the tab at index (0-based). Out of range is a no-op.
func (uc *ManageTabsUseCase) SelectByIndex(ctx context.Context, s *StripSession, index int) error {
	log := logging.FromContext(ctx)

	if s == nil {
		return fmt.Errorf("strip session is required")
	}
	tab := s.Tabs.TabAt(index)
	if tab == nil {
		log.Debug().Int("index", index).Msg("invalid tab index")
		return nil
	}
	return uc.Select(ctx, s, tab.ID)
}
