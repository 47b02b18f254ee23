package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/bnema/tabgroups/internal/domain/repository"
	"github.com/bnema/tabgroups/internal/logging"
)

// SnapshotTabStripUseCase writes a live strip back to storage.
type SnapshotTabStripUseCase struct {
	stripRepo repository.TabStripRepository
}

// NewSnapshotTabStripUseCase creates a new SnapshotTabStripUseCase.
func NewSnapshotTabStripUseCase(stripRepo repository.TabStripRepository) *SnapshotTabStripUseCase {
	return &SnapshotTabStripUseCase{stripRepo: stripRepo}
}

// Execute saves the session's tabs with their group identity and waits for
// pending group visual writes.
func (uc *SnapshotTabStripUseCase) Execute(ctx context.Context, s *StripSession) error {
	log := logging.FromContext(ctx)

	if s == nil || s.ID == "" {
		return fmt.Errorf("strip id required")
	}

	state := entity.SnapshotFromTabList(s.ID, s.Groups.Scheme().String(), s.Tabs)

	log.Debug().
		Str("strip_id", string(s.ID)).
		Int("tab_count", len(state.Tabs)).
		Int("group_count", s.Groups.TabGroupCount()).
		Str("identity_scheme", state.IdentityScheme).
		Msg("creating strip snapshot")

	if err := uc.stripRepo.Save(ctx, state); err != nil {
		return fmt.Errorf("save strip snapshot: %w", err)
	}
	if err := s.Flush(); err != nil {
		return fmt.Errorf("flush group visuals: %w", err)
	}

	return nil
}
