package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/bnema/tabgroups/internal/domain/repository"
	"github.com/bnema/tabgroups/internal/logging"
)

type groupVisualRepo struct {
	db *sql.DB
}

// NewGroupVisualRepository creates a SQLite-backed group visual repository.
func NewGroupVisualRepository(db *sql.DB) repository.GroupVisualRepository {
	return &groupVisualRepo{db: db}
}

func (r *groupVisualRepo) ListByStrip(ctx context.Context, stripID entity.StripID) (map[entity.TabID]entity.GroupVisual, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT root_id, title, color FROM group_visuals WHERE strip_id = ?`, string(stripID))
	if err != nil {
		return nil, fmt.Errorf("list group visuals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	visuals := make(map[entity.TabID]entity.GroupVisual)
	for rows.Next() {
		var (
			rootID int64
			v      entity.GroupVisual
			color  int64
		)
		if err := rows.Scan(&rootID, &v.Title, &color); err != nil {
			return nil, fmt.Errorf("scan group visual: %w", err)
		}
		v.Color = entity.GroupColor(color)
		visuals[entity.TabID(rootID)] = v
	}
	return visuals, rows.Err()
}

func (r *groupVisualRepo) Upsert(ctx context.Context, stripID entity.StripID, rootID entity.TabID, visual entity.GroupVisual) error {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("strip_id", string(stripID)).
		Int("root_id", int(rootID)).
		Str("title", visual.Title).
		Str("color", visual.Color.String()).
		Msg("saving group visual")

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO group_visuals (strip_id, root_id, title, color, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(strip_id, root_id) DO UPDATE SET
			title = excluded.title,
			color = excluded.color,
			updated_at = excluded.updated_at`,
		string(stripID), int64(rootID), visual.Title, int64(visual.Color), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert group visual: %w", err)
	}
	return nil
}

func (r *groupVisualRepo) Delete(ctx context.Context, stripID entity.StripID, rootID entity.TabID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM group_visuals WHERE strip_id = ? AND root_id = ?`, string(stripID), int64(rootID))
	if err != nil {
		return fmt.Errorf("delete group visual: %w", err)
	}
	return nil
}
