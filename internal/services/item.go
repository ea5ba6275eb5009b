package services

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/yungbote/experience-marketplace/internal/data/db"
	"github.com/yungbote/experience-marketplace/internal/data/repos"
	types "github.com/yungbote/experience-marketplace/internal/domain"
	"github.com/yungbote/experience-marketplace/internal/pkg/clock"
	"github.com/yungbote/experience-marketplace/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/experience-marketplace/internal/pkg/errors"
	"github.com/yungbote/experience-marketplace/internal/platform/ctxutil"
	"github.com/yungbote/experience-marketplace/internal/platform/gcp"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
	"github.com/yungbote/experience-marketplace/internal/validation"
)

const MaxImageBytes = 5 << 20

// ImageUpload is a listing image received from a client.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ItemService interface {
	Create(dbc dbctx.Context, marketplaceID string, in validation.ItemCreateInput) (*types.MarketplaceItem, error)
	List(dbc dbctx.Context, marketplaceID string, page types.Page) (*types.ItemPage, error)
	Get(dbc dbctx.Context, marketplaceID, itemID string) (*types.ItemDetail, error)
	Delete(dbc dbctx.Context, marketplaceID, itemID string) (*types.MarketplaceItem, error)
	AddImage(dbc dbctx.Context, marketplaceID, itemID string, upload ImageUpload) (*types.MarketplaceItemImage, error)
}

type itemService struct {
	log             *logger.Logger
	marketplaceRepo repos.MarketplaceRepo
	itemRepo        repos.ItemRepo
	imageRepo       repos.ItemImageRepo
	store           gcp.ObjectStore
	clock           clock.Clock
}

// NewItemService wires the item lifecycle. store may be nil, which disables image uploads.
func NewItemService(
	log *logger.Logger,
	marketplaceRepo repos.MarketplaceRepo,
	itemRepo repos.ItemRepo,
	imageRepo repos.ItemImageRepo,
	store gcp.ObjectStore,
	clk clock.Clock,
) ItemService {
	if clk == nil {
		clk = clock.Real()
	}
	return &itemService{
		log:             log.With("service", "ItemService"),
		marketplaceRepo: marketplaceRepo,
		itemRepo:        itemRepo,
		imageRepo:       imageRepo,
		store:           store,
		clock:           clk,
	}
}

func (s *itemService) visibleMarketplace(dbc dbctx.Context, id uuid.UUID) (*types.Marketplace, error) {
	m, err := s.marketplaceRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load marketplace: %w", err)
	}
	if !m.Visible() {
		return nil, fmt.Errorf("marketplace %s: %w", id, pkgerrors.ErrNotFound)
	}
	return m, nil
}

// Create performs no admin or ownership check: anyone who reaches the
// endpoint may list an item in a live marketplace.
func (s *itemService) Create(dbc dbctx.Context, marketplaceID string, in validation.ItemCreateInput) (*types.MarketplaceItem, error) {
	mID, err := validation.ParseID("marketplace ID", marketplaceID)
	if err != nil {
		return nil, err
	}
	fields, err := validation.ItemCreate(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.visibleMarketplace(dbc, mID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	item, err := s.itemRepo.Create(dbc, &types.MarketplaceItem{
		MarketplaceID: mID,
		Title:         fields.Title,
		Description:   fields.Description,
		PriceInCents:  fields.PriceInCents,
		PostedBy:      fields.PostedBy,
		State:         types.StateActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("marketplace %s: %w", mID, pkgerrors.ErrNotFound)
		}
		return nil, fmt.Errorf("create item: %w", err)
	}
	s.log.Info("Item created", "item_id", item.ID, "marketplace_id", mID, "posted_by", item.PostedBy)
	return item, nil
}

func (s *itemService) List(dbc dbctx.Context, marketplaceID string, page types.Page) (*types.ItemPage, error) {
	mID, err := validation.ParseID("marketplace ID", marketplaceID)
	if err != nil {
		return nil, err
	}
	if page.Limit <= 0 {
		page.Limit = validation.DefaultPageLimit
	}
	if page.Limit > validation.MaxPageLimit {
		page.Limit = validation.MaxPageLimit
	}
	if page.Skip < 0 {
		page.Skip = 0
	}
	if _, err := s.visibleMarketplace(dbc, mID); err != nil {
		return nil, err
	}

	var (
		items []*types.MarketplaceItem
		total int64
	)
	if dbc.Tx == nil {
		// a transaction handle cannot be shared across goroutines
		g, gctx := errgroup.WithContext(ctxutil.Default(dbc.Ctx))
		g.Go(func() error {
			var err error
			items, err = s.itemRepo.ListVisible(dbctx.Context{Ctx: gctx}, mID, page)
			return err
		})
		g.Go(func() error {
			var err error
			total, err = s.itemRepo.CountVisible(dbctx.Context{Ctx: gctx}, mID)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
	} else {
		if items, err = s.itemRepo.ListVisible(dbc, mID, page); err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		if total, err = s.itemRepo.CountVisible(dbc, mID); err != nil {
			return nil, fmt.Errorf("count items: %w", err)
		}
	}

	out := &types.ItemPage{
		Items:   make([]types.ItemSummary, 0, len(items)),
		Total:   total,
		HasMore: int64(page.Skip+len(items)) < total,
	}
	for _, item := range items {
		out.Items = append(out.Items, types.NewItemSummary(item))
	}
	return out, nil
}

func (s *itemService) Get(dbc dbctx.Context, marketplaceID, itemID string) (*types.ItemDetail, error) {
	mID, iID, err := parseItemPath(marketplaceID, itemID)
	if err != nil {
		return nil, err
	}
	m, err := s.visibleMarketplace(dbc, mID)
	if err != nil {
		return nil, err
	}
	item, err := s.itemRepo.GetVisible(dbc, mID, iID)
	if err != nil {
		return nil, fmt.Errorf("load item: %w", err)
	}
	if !item.Visible() {
		return nil, fmt.Errorf("item %s: %w", iID, pkgerrors.ErrNotFound)
	}
	detail := types.NewItemDetail(item, m.ExperienceID)
	return &detail, nil
}

// Delete soft-deletes without an admin or ownership check; the UI only offers
// the action to admins.
func (s *itemService) Delete(dbc dbctx.Context, marketplaceID, itemID string) (*types.MarketplaceItem, error) {
	mID, iID, err := parseItemPath(marketplaceID, itemID)
	if err != nil {
		return nil, err
	}
	deleted, err := s.itemRepo.SoftDelete(dbc, mID, iID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("delete item: %w", err)
	}
	if deleted == nil {
		return nil, fmt.Errorf("item %s: %w", iID, pkgerrors.ErrNotFound)
	}
	s.log.Info("Item deleted", "item_id", iID, "marketplace_id", mID)
	return deleted, nil
}

func (s *itemService) AddImage(dbc dbctx.Context, marketplaceID, itemID string, upload ImageUpload) (*types.MarketplaceItemImage, error) {
	mID, iID, err := parseItemPath(marketplaceID, itemID)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, pkgerrors.ErrStorageDisabled
	}
	ext := gcp.ExtensionForContentType(upload.ContentType)
	if ext == "" {
		ext = strings.ToLower(path.Ext(upload.Filename))
		if gcp.ContentTypeForKey(ext) == "" {
			return nil, &validation.ValidationError{Fields: map[string]string{"image": "Image must be a PNG, JPEG, WebP, GIF or AVIF file"}}
		}
		upload.ContentType = gcp.ContentTypeForKey(ext)
	}
	if upload.Body == nil || upload.Size <= 0 {
		return nil, &validation.ValidationError{Fields: map[string]string{"image": "Image is required"}}
	}
	if upload.Size > MaxImageBytes {
		return nil, &validation.ValidationError{Fields: map[string]string{"image": "Image is too large"}}
	}

	if _, err := s.visibleMarketplace(dbc, mID); err != nil {
		return nil, err
	}
	item, err := s.itemRepo.GetVisible(dbc, mID, iID)
	if err != nil {
		return nil, fmt.Errorf("load item: %w", err)
	}
	if !item.Visible() {
		return nil, fmt.Errorf("item %s: %w", iID, pkgerrors.ErrNotFound)
	}

	imageID := uuid.New()
	key := fmt.Sprintf("marketplaces/%s/items/%s/%s%s", mID, iID, imageID, ext)
	ctx := ctxutil.Default(dbc.Ctx)
	if err := s.store.Upload(ctx, key, upload.ContentType, upload.Body); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	now := s.clock.Now()
	img, err := s.imageRepo.Create(dbc, &types.MarketplaceItemImage{
		ID:                imageID,
		MarketplaceItemID: iID,
		StorageKey:        key,
		StorageLocation:   s.store.PublicURL(key),
		Active:            true,
		Metadata: datatypes.JSONMap{
			"contentType":  upload.ContentType,
			"size":         upload.Size,
			"originalName": path.Base(upload.Filename),
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.Warn("Failed to remove orphaned image object", "key", key, "error", delErr)
		}
		if db.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("item %s: %w", iID, pkgerrors.ErrNotFound)
		}
		return nil, fmt.Errorf("save image: %w", err)
	}
	s.log.Info("Item image stored", "item_id", iID, "image_id", img.ID)
	return img, nil
}

func parseItemPath(marketplaceID, itemID string) (uuid.UUID, uuid.UUID, error) {
	mID, err := validation.ParseID("marketplace ID", marketplaceID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	iID, err := validation.ParseID("item ID", itemID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return mID, iID, nil
}
