package repository

import (
	"context"

	"github.com/bnema/tabgroups/internal/domain/entity"
)

// GroupVisualRepository persists group titles and colours per strip, keyed by
// the group's root tab id.
type GroupVisualRepository interface {
	// ListByStrip returns every visual stored for a strip.
	ListByStrip(ctx context.Context, stripID entity.StripID) (map[entity.TabID]entity.GroupVisual, error)

	// Upsert saves or updates the visual of one group.
	Upsert(ctx context.Context, stripID entity.StripID, rootID entity.TabID, visual entity.GroupVisual) error

	// Delete removes the visual of one group.
	Delete(ctx context.Context, stripID entity.StripID, rootID entity.TabID) error
}
