package marketplace

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/experience-marketplace/internal/domain"
	"github.com/yungbote/experience-marketplace/internal/pkg/dbctx"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
)

type MarketplaceRepo interface {
	Create(dbc dbctx.Context, m *types.Marketplace) (*types.Marketplace, error)
	ListByExperience(dbc dbctx.Context, experienceID string) ([]*types.Marketplace, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Marketplace, error)
	UpdateTitle(dbc dbctx.Context, id uuid.UUID, title string, now time.Time) (int64, error)
	UpdateState(dbc dbctx.Context, id uuid.UUID, state types.State, now time.Time) (int64, error)
	SoftDelete(dbc dbctx.Context, id uuid.UUID, now time.Time) (int64, error)
}

type marketplaceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMarketplaceRepo(db *gorm.DB, baseLog *logger.Logger) MarketplaceRepo {
	return &marketplaceRepo{
		db:  db,
		log: baseLog.With("repo", "MarketplaceRepo"),
	}
}

func (r *marketplaceRepo) Create(dbc dbctx.Context, m *types.Marketplace) (*types.Marketplace, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if m.State == "" {
		m.State = types.StateActive
	}
	if err := transaction.WithContext(dbc.Ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// ListByExperience returns every non-deleted marketplace in the scope, newest first.
func (r *marketplaceRepo) ListByExperience(dbc dbctx.Context, experienceID string) ([]*types.Marketplace, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	out := []*types.Marketplace{}
	if experienceID == "" {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("experience_id = ? AND state <> ?", experienceID, types.StateDeleted).
		Order("created_at DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns nil without error when no non-deleted row matches.
func (r *marketplaceRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Marketplace, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var m types.Marketplace
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND state <> ?", id, types.StateDeleted).
		Limit(1).
		Find(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == uuid.Nil {
		return nil, nil
	}
	return &m, nil
}

func (r *marketplaceRepo) UpdateTitle(dbc dbctx.Context, id uuid.UUID, title string, now time.Time) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Marketplace{}).
		Where("id = ? AND state = ?", id, types.StateActive).
		Updates(map[string]interface{}{
			"title":      title,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}

// UpdateState moves a live marketplace between active and inactive.
func (r *marketplaceRepo) UpdateState(dbc dbctx.Context, id uuid.UUID, state types.State, now time.Time) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Marketplace{}).
		Where("id = ? AND state IN ?", id, []types.State{types.StateActive, types.StateInactive}).
		Updates(map[string]interface{}{
			"state":      state,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}

// SoftDelete writes the deleted state and the deletion marker in one statement.
func (r *marketplaceRepo) SoftDelete(dbc dbctx.Context, id uuid.UUID, now time.Time) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Marketplace{}).
		Where("id = ? AND state <> ?", id, types.StateDeleted).
		Updates(map[string]interface{}{
			"state":      types.StateDeleted,
			"deleted_at": now,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}
