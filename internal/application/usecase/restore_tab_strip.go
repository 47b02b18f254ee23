package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/bnema/tabgroups/internal/domain/repository"
	"github.com/bnema/tabgroups/internal/domain/tabgroup"
	"github.com/bnema/tabgroups/internal/logging"
	"github.com/google/uuid"
)

// ErrVersionMismatch is returned when a stored strip is newer than this build.
var ErrVersionMismatch = errors.New("strip state version mismatch")

// RestoreTabStripUseCase rebuilds a live strip session from storage.
type RestoreTabStripUseCase struct {
	stripRepo  repository.TabStripRepository
	visualRepo repository.GroupVisualRepository
}

// NewRestoreTabStripUseCase creates a new RestoreTabStripUseCase.
func NewRestoreTabStripUseCase(
	stripRepo repository.TabStripRepository,
	visualRepo repository.GroupVisualRepository,
) *RestoreTabStripUseCase {
	return &RestoreTabStripUseCase{
		stripRepo:  stripRepo,
		visualRepo: visualRepo,
	}
}

// RestoreStripInput contains the parameters for restoring a strip.
type RestoreStripInput struct {
	StripID entity.StripID
	Scheme  tabgroup.IdentityScheme
	// CreateIfMissing starts an empty strip instead of failing.
	CreateIfMissing bool
	// Incognito applies only to a newly created strip.
	Incognito bool
	// ValidateOrder rebuilds the group records when restored runs are split.
	ValidateOrder bool
	// FixRootIDs runs a second root id repair after reconciliation.
	FixRootIDs bool
	// NewToken overrides the stable token source.
	NewToken func() uuid.UUID
}

// RestoreStripOutput contains the live session and what reconciliation did.
type RestoreStripOutput struct {
	Session     *StripSession
	Created     bool
	StoredAs    string
	Diagnostics tabgroup.Diagnostics
}

// NeedsSave reports whether the restore changed the strip: a new strip, or
// identity repaired or converted during reconciliation.
func (o *RestoreStripOutput) NeedsSave() bool {
	d := o.Diagnostics
	return o.Created || d.RootIDsFixed > 0 || d.TokensAssigned > 0 || d.TokensCleared > 0
}

// Execute loads the strip, replays it in restore mode and completes the
// restore so identity reconciliation runs once.
func (uc *RestoreTabStripUseCase) Execute(ctx context.Context, input RestoreStripInput) (*RestoreStripOutput, error) {
	if input.StripID == "" {
		return nil, fmt.Errorf("strip id required")
	}
	ctx = logging.WithStripID(ctx, string(input.StripID))
	log := logging.FromContext(ctx)
	log.Debug().
		Str("scheme", input.Scheme.String()).
		Bool("create_if_missing", input.CreateIfMissing).
		Msg("restoring tab strip")

	out := &RestoreStripOutput{}
	state, err := uc.stripRepo.FindByID(ctx, input.StripID)
	switch {
	case errors.Is(err, repository.ErrStripNotFound) && input.CreateIfMissing:
		state = &entity.StripState{
			Version:        entity.StripStateVersion,
			StripID:        input.StripID,
			IdentityScheme: input.Scheme.String(),
			Incognito:      input.Incognito,
		}
		out.Created = true
	case err != nil:
		return nil, fmt.Errorf("load strip %s: %w", input.StripID, err)
	}

	if state.Version > entity.StripStateVersion {
		log.Warn().
			Int("state_version", state.Version).
			Int("current_version", entity.StripStateVersion).
			Msg("strip state version is newer than current version")
		return nil, ErrVersionMismatch
	}
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("stored strip %s: %w", input.StripID, err)
	}
	out.StoredAs = state.IdentityScheme

	visuals := NewVisualCache(ctx, uc.visualRepo, input.StripID)
	if err := visuals.Load(ctx); err != nil {
		return nil, fmt.Errorf("load group visuals: %w", err)
	}

	tabs := entity.NewTabList(state.Incognito)
	tabs.BeginRestore()
	session := NewStripSession(input.StripID, tabs, tabgroup.Config{
		Scheme:   input.Scheme,
		Visuals:  visuals,
		Logger:   log,
		NewToken: input.NewToken,
	})
	for _, tab := range state.RestoredTabs() {
		tabs.AddTab(tab, -1)
	}
	if state.ActiveTabID != entity.NoTabID {
		tabs.SelectTab(state.ActiveTabID)
	}
	tabs.CompleteRestore()

	if input.FixRootIDs {
		if fixed := session.Groups.FixRootIDs(); fixed > 0 {
			log.Warn().Int("root_ids_fixed", fixed).Msg("second root id repair changed groups")
		}
	}
	if input.ValidateOrder && !session.Groups.IsOrderValid() {
		log.Warn().Msg("restored order invalid, rebuilding group records")
		session.Groups.ResetFilterState()
		session.Groups.Reorder()
	}
	out.Session = session
	out.Diagnostics = session.Groups.Diagnostics()
	out.Diagnostics.OrderValid = session.Groups.IsOrderValid()

	log.Info().
		Int("tab_count", tabs.Count()).
		Int("group_count", session.Groups.TabGroupCount()).
		Str("stored_scheme", state.IdentityScheme).
		Str("scheme", input.Scheme.String()).
		Bool("created", out.Created).
		Bool("order_valid", out.Diagnostics.OrderValid).
		Msg("tab strip restored")

	return out, nil
}
