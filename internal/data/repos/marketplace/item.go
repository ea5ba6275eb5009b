package marketplace

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/experience-marketplace/internal/domain"
	"github.com/yungbote/experience-marketplace/internal/pkg/dbctx"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
)

type ItemRepo interface {
	Create(dbc dbctx.Context, item *types.MarketplaceItem) (*types.MarketplaceItem, error)
	ListVisible(dbc dbctx.Context, marketplaceID uuid.UUID, page types.Page) ([]*types.MarketplaceItem, error)
	CountVisible(dbc dbctx.Context, marketplaceID uuid.UUID) (int64, error)
	GetVisible(dbc dbctx.Context, marketplaceID, itemID uuid.UUID) (*types.MarketplaceItem, error)
	SoftDelete(dbc dbctx.Context, marketplaceID, itemID uuid.UUID, now time.Time) (*types.MarketplaceItem, error)
}

type itemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo {
	return &itemRepo{
		db:  db,
		log: baseLog.With("repo", "ItemRepo"),
	}
}

func activeImages(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true).Order("created_at ASC, id ASC")
}

func (r *itemRepo) Create(dbc dbctx.Context, item *types.MarketplaceItem) (*types.MarketplaceItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if item.State == "" {
		item.State = types.StateActive
	}
	if err := transaction.WithContext(dbc.Ctx).
		Omit("Marketplace", "Images").
		Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// ListVisible returns one page of active items, newest first, with their active images.
func (r *itemRepo) ListVisible(dbc dbctx.Context, marketplaceID uuid.UUID, page types.Page) ([]*types.MarketplaceItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	out := []*types.MarketplaceItem{}
	if marketplaceID == uuid.Nil || page.Limit <= 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Preload("Images", activeImages).
		Where("marketplace_id = ? AND state = ?", marketplaceID, types.StateActive).
		Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Skip).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *itemRepo) CountVisible(dbc dbctx.Context, marketplaceID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.MarketplaceItem{}).
		Where("marketplace_id = ? AND state = ?", marketplaceID, types.StateActive).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetVisible returns nil without error unless the item is active and owned by marketplaceID.
func (r *itemRepo) GetVisible(dbc dbctx.Context, marketplaceID, itemID uuid.UUID) (*types.MarketplaceItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if marketplaceID == uuid.Nil || itemID == uuid.Nil {
		return nil, nil
	}
	var item types.MarketplaceItem
	err := transaction.WithContext(dbc.Ctx).
		Preload("Images", activeImages).
		Where("id = ? AND marketplace_id = ? AND state = ?", itemID, marketplaceID, types.StateActive).
		Limit(1).
		Find(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == uuid.Nil {
		return nil, nil
	}
	return &item, nil
}

// SoftDelete marks the item deleted and returns its id and title, or nil when
// no live item matched.
func (r *itemRepo) SoftDelete(dbc dbctx.Context, marketplaceID, itemID uuid.UUID, now time.Time) (*types.MarketplaceItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var item types.MarketplaceItem
	if err := transaction.WithContext(dbc.Ctx).
		Select("id", "title", "marketplace_id").
		Where("id = ? AND marketplace_id = ? AND state <> ?", itemID, marketplaceID, types.StateDeleted).
		Limit(1).
		Find(&item).Error; err != nil {
		return nil, err
	}
	if item.ID == uuid.Nil {
		return nil, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.MarketplaceItem{}).
		Where("id = ? AND marketplace_id = ? AND state <> ?", itemID, marketplaceID, types.StateDeleted).
		Updates(map[string]interface{}{
			"state":      types.StateDeleted,
			"deleted_at": now,
			"updated_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// lost a race with a concurrent delete
		return nil, nil
	}
	item.State = types.StateDeleted
	return &item, nil
}
