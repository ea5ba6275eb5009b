package marketplace

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/experience-marketplace/internal/domain"
	"github.com/yungbote/experience-marketplace/internal/pkg/dbctx"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
)

type ItemImageRepo interface {
	Create(dbc dbctx.Context, img *types.MarketplaceItemImage) (*types.MarketplaceItemImage, error)
	ListActiveByItem(dbc dbctx.Context, itemID uuid.UUID) ([]*types.MarketplaceItemImage, error)
}

type itemImageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemImageRepo(db *gorm.DB, baseLog *logger.Logger) ItemImageRepo {
	return &itemImageRepo{
		db:  db,
		log: baseLog.With("repo", "ItemImageRepo"),
	}
}

func (r *itemImageRepo) Create(dbc dbctx.Context, img *types.MarketplaceItemImage) (*types.MarketplaceItemImage, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Create(img).Error; err != nil {
		return nil, err
	}
	return img, nil
}

func (r *itemImageRepo) ListActiveByItem(dbc dbctx.Context, itemID uuid.UUID) ([]*types.MarketplaceItemImage, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	out := []*types.MarketplaceItemImage{}
	if itemID == uuid.Nil {
		return out, nil
	}
	if err := activeImages(transaction.WithContext(dbc.Ctx)).
		Where("marketplace_item_id = ?", itemID).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
