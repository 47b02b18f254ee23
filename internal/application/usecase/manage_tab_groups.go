package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/bnema/tabgroups/internal/domain/tabgroup"
	"github.com/bnema/tabgroups/internal/logging"
	"github.com/google/uuid"
)

// ErrNotGrouped is returned when a group command names an ungrouped tab.
var ErrNotGrouped = errors.New("tab is not in a group")

// ErrSchemeUnsupported is returned when an operation needs the other identity scheme.
var ErrSchemeUnsupported = errors.New("operation not supported by the identity scheme")

// ManageTabGroupsUseCase handles group commands on a strip session.
type ManageTabGroupsUseCase struct{}

// NewManageTabGroupsUseCase creates a new group management use case.
func NewManageTabGroupsUseCase() *ManageTabGroupsUseCase {
	return &ManageTabGroupsUseCase{}
}

// Merge merges the whole group of sourceID into the group of destinationID.
func (uc *ManageTabGroupsUseCase) Merge(ctx context.Context, s *StripSession, sourceID, destinationID entity.TabID) error {
	log := logging.FromContext(ctx)
	log.Debug().
		Int("source_id", int(sourceID)).
		Int("destination_id", int(destinationID)).
		Msg("merging tab group")

	if s == nil {
		return fmt.Errorf("strip session is required")
	}
	if _, err := s.tab(sourceID); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	destination, err := s.tab(destinationID)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	if sourceID == destinationID {
		return fmt.Errorf("cannot merge tab %d into itself", sourceID)
	}

	s.Groups.MergeTabsToGroup(sourceID, destinationID, false)

	log.Info().
		Int("root_id", int(destination.RootID)).
		Int("group_size", len(s.Groups.RelatedTabIDs(destinationID))).
		Msg("tab group merged")
	return nil
}

// GroupTabs moves tabIDs[1:], in order, into the group of tabIDs[0].
func (uc *ManageTabGroupsUseCase) GroupTabs(ctx context.Context, s *StripSession, tabIDs []entity.TabID) error {
	log := logging.FromContext(ctx)
	log.Debug().Ints("tab_ids", tabIDsToInts(tabIDs)).Msg("grouping tabs")

	if s == nil {
		return fmt.Errorf("strip session is required")
	}
	if len(tabIDs) < 2 {
		return fmt.Errorf("at least two tabs are required to form a group")
	}
	seen := make(map[entity.TabID]struct{}, len(tabIDs))
	for _, id := range tabIDs {
		if _, err := s.tab(id); err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("tab %d listed twice", id)
		}
		seen[id] = struct{}{}
	}

	destinationID := tabIDs[0]
	s.Groups.MergeListOfTabsToGroup(tabIDs[1:], destinationID, false, true)

	log.Info().
		Int("root_id", int(s.Tabs.TabByID(destinationID).RootID)).
		Int("group_size", len(s.Groups.RelatedTabIDs(destinationID))).
		Msg("tabs grouped")
	return nil
}

// Ungroup moves tabID out of its group, past the group's trailing edge or
// before its leading edge.
func (uc *ManageTabGroupsUseCase) Ungroup(ctx context.Context, s *StripSession, tabID entity.TabID, trailing bool) error {
	log := logging.FromContext(ctx)
	log.Debug().
		Int("tab_id", int(tabID)).
		Bool("trailing", trailing).
		Msg("ungrouping tab")

	if err := uc.requireGrouped(s, tabID); err != nil {
		return err
	}

	s.Groups.MoveTabOutOfGroupInDirection(tabID, trailing)

	log.Info().
		Int("tab_id", int(tabID)).
		Int("position", s.Tabs.IndexOf(tabID)).
		Msg("tab ungrouped")
	return nil
}

// Dissolve ungroups every member of tabID's group, keeping strip order.
func (uc *ManageTabGroupsUseCase) Dissolve(ctx context.Context, s *StripSession, tabID entity.TabID) error {
	log := logging.FromContext(ctx)
	log.Debug().Int("tab_id", int(tabID)).Msg("dissolving tab group")

	if err := uc.requireGrouped(s, tabID); err != nil {
		return err
	}

	members := s.Groups.RelatedTabIDs(tabID)
	slices.SortFunc(members, func(a, b entity.TabID) int {
		return s.Tabs.IndexOf(b) - s.Tabs.IndexOf(a)
	})
	for _, id := range members {
		if s.Groups.IsTabInTabGroup(id) {
			s.Groups.MoveTabOutOfGroup(id)
		}
	}

	log.Info().Int("members", len(members)).Msg("tab group dissolved")
	return nil
}

// CreateSingleTabGroup turns an ungrouped tab into a group of its own.
func (uc *ManageTabGroupsUseCase) CreateSingleTabGroup(ctx context.Context, s *StripSession, tabID entity.TabID) error {
	log := logging.FromContext(ctx)
	log.Debug().Int("tab_id", int(tabID)).Msg("creating single tab group")

	if s == nil {
		return fmt.Errorf("strip session is required")
	}
	tab, err := s.tab(tabID)
	if err != nil {
		return err
	}
	if s.Groups.Scheme() != tabgroup.IdentityStable {
		return fmt.Errorf("%w: single tab groups need the stable scheme", ErrSchemeUnsupported)
	}
	if s.Groups.IsTabInTabGroup(tabID) || len(s.Groups.RelatedTabIDs(tabID)) != 1 {
		return fmt.Errorf("tab %d is already in a group", tabID)
	}

	s.Groups.CreateSingleTabGroup(tabID)

	log.Info().
		Int("tab_id", int(tabID)).
		Str("group_token", tab.GroupToken.String()).
		Msg("single tab group created")
	return nil
}

// Rename sets the title of tabID's group. An empty title clears it.
func (uc *ManageTabGroupsUseCase) Rename(ctx context.Context, s *StripSession, tabID entity.TabID, title string) error {
	log := logging.FromContext(ctx)
	log.Debug().
		Int("tab_id", int(tabID)).
		Str("title", title).
		Msg("renaming tab group")

	if err := uc.requireGrouped(s, tabID); err != nil {
		return err
	}

	rootID := s.Tabs.TabByID(tabID).RootID
	if title == "" {
		s.Groups.DeleteTabGroupTitle(rootID)
	} else {
		s.Groups.SetTabGroupTitle(rootID, title)
	}

	log.Info().
		Int("root_id", int(rootID)).
		Str("title", title).
		Msg("tab group renamed")
	return nil
}

// Recolor sets the colour of tabID's group. NoGroupColor clears it.
func (uc *ManageTabGroupsUseCase) Recolor(ctx context.Context, s *StripSession, tabID entity.TabID, color entity.GroupColor) error {
	log := logging.FromContext(ctx)
	log.Debug().
		Int("tab_id", int(tabID)).
		Str("color", color.String()).
		Msg("recolouring tab group")

	if err := uc.requireGrouped(s, tabID); err != nil {
		return err
	}

	rootID := s.Tabs.TabByID(tabID).RootID
	if color == entity.NoGroupColor {
		s.Groups.DeleteTabGroupColor(rootID)
	} else {
		s.Groups.SetTabGroupColor(rootID, color)
	}

	log.Info().
		Int("root_id", int(rootID)).
		Str("color", color.String()).
		Msg("tab group recoloured")
	return nil
}

// MoveGroup moves tabID's group, as a block, to display slot toSlot and
// returns the slot it ends in.
func (uc *ManageTabGroupsUseCase) MoveGroup(ctx context.Context, s *StripSession, tabID entity.TabID, toSlot int) (int, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Int("tab_id", int(tabID)).
		Int("to_slot", toSlot).
		Msg("moving tab group")

	if s == nil {
		return -1, fmt.Errorf("strip session is required")
	}
	if _, err := s.tab(tabID); err != nil {
		return -1, err
	}

	from := s.Groups.SlotOf(tabID)
	toSlot = max(0, min(toSlot, s.Groups.Count()-1))
	if toSlot == from {
		return from, nil
	}

	target := s.Groups.TabAtSlot(toSlot)
	members := s.Groups.RelatedTabIDs(target.ID)
	newIndex := s.Tabs.Count()
	if toSlot < from {
		for _, id := range members {
			newIndex = min(newIndex, s.Tabs.IndexOf(id))
		}
	} else {
		newIndex = 0
		for _, id := range members {
			newIndex = max(newIndex, s.Tabs.IndexOf(id)+1)
		}
	}
	s.Groups.MoveRelatedTabs(tabID, newIndex)

	slot := s.Groups.SlotOf(tabID)
	log.Info().
		Int("tab_id", int(tabID)).
		Int("from_slot", from).
		Int("slot", slot).
		Msg("tab group moved")
	return slot, nil
}

// UndoLastGrouping reverts the newest recorded group creation.
func (uc *ManageTabGroupsUseCase) UndoLastGrouping(ctx context.Context, s *StripSession) (*tabgroup.GroupCreation, error) {
	log := logging.FromContext(ctx)
	log.Debug().Msg("undoing last grouping")

	if s == nil {
		return nil, fmt.Errorf("strip session is required")
	}
	creation, ok := s.History.Pop()
	if !ok {
		return nil, ErrNothingToUndo
	}
	if !undoApplies(s, creation) {
		log.Debug().
			Int("destination_id", int(creation.DestinationID)).
			Msg("grouped tabs changed since the merge, dropping undo data")
		return nil, fmt.Errorf("%w: grouped tabs have changed", ErrNothingToUndo)
	}

	for i := len(creation.Tabs) - 1; i >= 0; i-- {
		s.Groups.UndoGroupedTab(
			creation.Tabs[i].ID,
			creation.OriginalIndexes[i],
			creation.OriginalRootIDs[i],
			creation.OriginalTokens[i],
		)
	}

	// The destination held no token before it became a group.
	if creation.DestinationToken == uuid.Nil {
		if dest := s.Tabs.TabByID(creation.DestinationID); dest != nil && dest.HasGroupToken() &&
			len(s.Groups.RelatedTabIDs(dest.ID)) == 1 {
			s.Groups.MoveTabOutOfGroup(dest.ID)
		}
	}

	log.Info().
		Int("destination_id", int(creation.DestinationID)).
		Int("tabs", len(creation.Tabs)).
		Msg("grouping undone")
	return &creation, nil
}

// undoApplies reports whether every tab and original root the creation
// refers to is still in the strip.
func undoApplies(s *StripSession, creation tabgroup.GroupCreation) bool {
	if len(creation.Tabs) == 0 || len(creation.OriginalIndexes) != len(creation.Tabs) {
		return false
	}
	if s.Tabs.TabByID(creation.DestinationID) == nil {
		return false
	}
	for i, tab := range creation.Tabs {
		if s.Tabs.TabByID(tab.ID) == nil || s.Tabs.TabByID(creation.OriginalRootIDs[i]) == nil {
			return false
		}
	}
	return true
}

// CheckOutput reports the result of an integrity check.
type CheckOutput struct {
	OrderValid   bool
	Reordered    bool
	RootIDsFixed int
	Groups       int
}

// Check repairs stale root ids and regroups split runs.
func (uc *ManageTabGroupsUseCase) Check(ctx context.Context, s *StripSession) (*CheckOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().Msg("checking tab groups")

	if s == nil {
		return nil, fmt.Errorf("strip session is required")
	}

	out := &CheckOutput{RootIDsFixed: s.Groups.FixRootIDs()}
	out.OrderValid = s.Groups.IsOrderValid()
	if !out.OrderValid {
		s.Groups.Reorder()
		out.Reordered = true
		out.OrderValid = s.Groups.IsOrderValid()
	}
	out.Groups = s.Groups.TabGroupCount()

	log.Info().
		Bool("order_valid", out.OrderValid).
		Bool("reordered", out.Reordered).
		Int("root_ids_fixed", out.RootIDsFixed).
		Int("groups", out.Groups).
		Msg("tab groups checked")
	return out, nil
}

// Migrate converts every group to the target identity scheme. Undo data
// recorded under the previous scheme is dropped.
func (uc *ManageTabGroupsUseCase) Migrate(ctx context.Context, s *StripSession, target tabgroup.IdentityScheme) (*tabgroup.MigrationResult, error) {
	log := logging.FromContext(ctx)
	if s == nil {
		return nil, fmt.Errorf("strip session is required")
	}
	log.Debug().
		Str("from", s.Groups.Scheme().String()).
		Str("to", target.String()).
		Msg("migrating group identity")

	if target != tabgroup.IdentityLegacy && target != tabgroup.IdentityStable {
		return nil, fmt.Errorf("unknown identity scheme %v", target)
	}

	res := s.Groups.ConvertIdentity(target)
	s.History.Clear()

	log.Info().
		Str("from", res.From.String()).
		Str("to", res.To.String()).
		Int("tokens_assigned", res.TokensAssigned).
		Int("tokens_cleared", res.TokensCleared).
		Int("groups_touched", res.GroupsTouched).
		Msg("group identity migrated")
	return &res, nil
}

func (uc *ManageTabGroupsUseCase) requireGrouped(s *StripSession, tabID entity.TabID) error {
	if s == nil {
		return fmt.Errorf("strip session is required")
	}
	if _, err := s.tab(tabID); err != nil {
		return err
	}
	if !s.Groups.IsTabInTabGroup(tabID) {
		return fmt.Errorf("%w: %d", ErrNotGrouped, tabID)
	}
	return nil
}

func tabIDsToInts(ids []entity.TabID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
