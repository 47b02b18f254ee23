package sqlite

import (
	"context"
	"sync"

	"github.com/bnema/tabgroups/internal/domain/entity"
	"github.com/bnema/tabgroups/internal/domain/repository"
)

// LazyTabStripRepository defers opening the database until first use.
type LazyTabStripRepository struct {
	provider DatabaseProvider
	repo     repository.TabStripRepository
	once     sync.Once
	initErr  error
}

// NewLazyTabStripRepository creates a lazy-loading tab strip repository.
func NewLazyTabStripRepository(provider DatabaseProvider) repository.TabStripRepository {
	return &LazyTabStripRepository{provider: provider}
}

func (r *LazyTabStripRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewTabStripRepository(db)
	})
	return r.initErr
}

func (r *LazyTabStripRepository) Save(ctx context.Context, state *entity.StripState) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, state)
}

func (r *LazyTabStripRepository) FindByID(ctx context.Context, id entity.StripID) (*entity.StripState, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.FindByID(ctx, id)
}

func (r *LazyTabStripRepository) List(ctx context.Context) ([]entity.StripInfo, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.List(ctx)
}

func (r *LazyTabStripRepository) Delete(ctx context.Context, id entity.StripID) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Delete(ctx, id)
}

// LazyGroupVisualRepository defers opening the database until first use.
type LazyGroupVisualRepository struct {
	provider DatabaseProvider
	repo     repository.GroupVisualRepository
	once     sync.Once
	initErr  error
}

// NewLazyGroupVisualRepository creates a lazy-loading group visual repository.
func NewLazyGroupVisualRepository(provider DatabaseProvider) repository.GroupVisualRepository {
	return &LazyGroupVisualRepository{provider: provider}
}

func (r *LazyGroupVisualRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewGroupVisualRepository(db)
	})
	return r.initErr
}

func (r *LazyGroupVisualRepository) ListByStrip(ctx context.Context, stripID entity.StripID) (map[entity.TabID]entity.GroupVisual, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.ListByStrip(ctx, stripID)
}

func (r *LazyGroupVisualRepository) Upsert(ctx context.Context, stripID entity.StripID, rootID entity.TabID, visual entity.GroupVisual) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Upsert(ctx, stripID, rootID, visual)
}

func (r *LazyGroupVisualRepository) Delete(ctx context.Context, stripID entity.StripID, rootID entity.TabID) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Delete(ctx, stripID, rootID)
}
