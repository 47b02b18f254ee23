package repository

import (
	"context"
	"errors"

	"github.com/bnema/tabgroups/internal/domain/entity"
)

// ErrStripNotFound is returned when no strip is stored under an id.
var ErrStripNotFound = errors.New("tab strip not found")

// TabStripRepository persists tab strips, tab order and group identity included.
type TabStripRepository interface {
	// Save replaces the stored strip with state.
	Save(ctx context.Context, state *entity.StripState) error

	// FindByID loads a strip. Returns ErrStripNotFound if it does not exist.
	FindByID(ctx context.Context, id entity.StripID) (*entity.StripState, error)

	// List returns a summary of every stored strip, most recently updated first.
	List(ctx context.Context) ([]entity.StripInfo, error)

	// Delete removes a strip with its tabs and group visuals.
	Delete(ctx context.Context, id entity.StripID) error
}
