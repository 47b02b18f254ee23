package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/bnema/tabgroups/internal/domain/repository"
	"github.com/bnema/tabgroups/internal/logging"
	"github.com/google/uuid"
)

type tabStripRepo struct {
	db *sql.DB
}

// NewTabStripRepository creates a SQLite-backed tab strip repository.
func NewTabStripRepository(db *sql.DB) repository.TabStripRepository {
	return &tabStripRepo{db: db}
}

// Save replaces the strip row and all of its tabs in one transaction.
func (r *tabStripRepo) Save(ctx context.Context, state *entity.StripState) error {
	log := logging.FromContext(ctx)
	if state == nil {
		return errors.New("strip state cannot be nil")
	}
	if err := state.Validate(); err != nil {
		return err
	}

	savedAt := state.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	log.Debug().
		Str("strip_id", string(state.StripID)).
		Int("tab_count", len(state.Tabs)).
		Str("identity_scheme", state.IdentityScheme).
		Msg("saving tab strip")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin strip transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			log.Debug().Err(rollbackErr).Msg("strip rollback reported non-terminal error")
		}
	}()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO tab_strips (id, version, identity_scheme, active_tab_id, incognito, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			version = excluded.version,
			identity_scheme = excluded.identity_scheme,
			active_tab_id = excluded.active_tab_id,
			incognito = excluded.incognito,
			updated_at = excluded.updated_at`,
		string(state.StripID), state.Version, state.IdentityScheme,
		int64(state.ActiveTabID), state.Incognito, savedAt.UTC(),
	); err != nil {
		return fmt.Errorf("upsert strip: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM strip_tabs WHERE strip_id = ?`, string(state.StripID)); err != nil {
		return fmt.Errorf("clear strip tabs: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO strip_tabs
			(strip_id, tab_id, position, root_id, group_token, parent_id, launch_type, title, url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare tab insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for pos, tab := range state.Tabs {
		if _, err := stmt.ExecContext(ctx,
			string(state.StripID), int64(tab.ID), pos, int64(tab.RootID),
			nullToken(tab.GroupToken), int64(tab.ParentID), tab.LaunchType.String(),
			tab.Title, tab.URL, tab.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("insert tab %d: %w", tab.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit strip transaction: %w", err)
	}
	return nil
}

// FindByID loads a strip with its tabs in position order.
func (r *tabStripRepo) FindByID(ctx context.Context, id entity.StripID) (*entity.StripState, error) {
	log := logging.FromContext(ctx)

	state := &entity.StripState{StripID: id}
	var activeTabID int64
	err := r.db.QueryRowContext(ctx, `
		SELECT version, identity_scheme, active_tab_id, incognito, updated_at
		FROM tab_strips WHERE id = ?`, string(id),
	).Scan(&state.Version, &state.IdentityScheme, &activeTabID, &state.Incognito, &state.SavedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrStripNotFound
		}
		return nil, fmt.Errorf("load strip %s: %w", id, err)
	}
	state.ActiveTabID = entity.TabID(activeTabID)

	rows, err := r.db.QueryContext(ctx, `
		SELECT tab_id, root_id, group_token, parent_id, launch_type, title, url, created_at
		FROM strip_tabs WHERE strip_id = ? ORDER BY position`, string(id))
	if err != nil {
		return nil, fmt.Errorf("load strip tabs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	state.Tabs = []entity.TabSnapshot{}
	for rows.Next() {
		var (
			tabID, rootID, parentID int64
			token                   uuid.NullUUID
			launchType              string
			snap                    entity.TabSnapshot
		)
		if err := rows.Scan(&tabID, &rootID, &token, &parentID, &launchType,
			&snap.Title, &snap.URL, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan strip tab: %w", err)
		}
		snap.ID = entity.TabID(tabID)
		snap.RootID = entity.TabID(rootID)
		snap.ParentID = entity.TabID(parentID)
		if token.Valid {
			snap.GroupToken = token.UUID
		}
		lt, perr := entity.ParseLaunchType(launchType)
		if perr != nil {
			log.Warn().Err(perr).Int64("tab_id", tabID).Msg("unknown launch type, using link")
		}
		snap.LaunchType = lt
		state.Tabs = append(state.Tabs, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate strip tabs: %w", err)
	}

	return state, nil
}

// List returns strip summaries, most recently updated first.
func (r *tabStripRepo) List(ctx context.Context) ([]entity.StripInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.identity_scheme, s.updated_at,
			(SELECT COUNT(*) FROM strip_tabs t WHERE t.strip_id = s.id)
		FROM tab_strips s
		ORDER BY s.updated_at DESC, s.id`)
	if err != nil {
		return nil, fmt.Errorf("list strips: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []entity.StripInfo
	for rows.Next() {
		var (
			info entity.StripInfo
			id   string
		)
		if err := rows.Scan(&id, &info.IdentityScheme, &info.UpdatedAt, &info.TabCount); err != nil {
			return nil, fmt.Errorf("scan strip: %w", err)
		}
		info.ID = entity.StripID(id)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes a strip, its tabs and its group visuals.
func (r *tabStripRepo) Delete(ctx context.Context, id entity.StripID) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("strip_id", string(id)).Msg("deleting tab strip")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM tab_strips WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete strip: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrStripNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM group_visuals WHERE strip_id = ?`, string(id)); err != nil {
		return fmt.Errorf("delete strip visuals: %w", err)
	}
	return tx.Commit()
}

func nullToken(token uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: token, Valid: token != uuid.Nil}
}
