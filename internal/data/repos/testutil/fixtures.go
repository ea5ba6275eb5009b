package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/experience-marketplace/internal/domain"
)

func SeedMarketplace(tb testing.TB, ctx context.Context, tx *gorm.DB, experienceID, title string) *types.Marketplace {
	tb.Helper()
	m := &types.Marketplace{
		ID:           uuid.New(),
		ExperienceID: experienceID,
		Title:        title,
		TakeRate:     10,
		State:        types.StateActive,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed marketplace: %v", err)
	}
	return m
}

func SeedItem(tb testing.TB, ctx context.Context, tx *gorm.DB, marketplaceID uuid.UUID, title string, createdAt time.Time) *types.MarketplaceItem {
	tb.Helper()
	item := &types.MarketplaceItem{
		ID:            uuid.New(),
		MarketplaceID: marketplaceID,
		Title:         title,
		Description:   title + " description",
		PriceInCents:  100,
		PostedBy:      "user_seed",
		State:         types.StateActive,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	if err := tx.WithContext(ctx).Omit("Marketplace", "Images").Create(item).Error; err != nil {
		tb.Fatalf("seed item: %v", err)
	}
	return item
}

func SeedItemImage(tb testing.TB, ctx context.Context, tx *gorm.DB, itemID uuid.UUID, location string, active bool, createdAt time.Time) *types.MarketplaceItemImage {
	tb.Helper()
	img := &types.MarketplaceItemImage{
		ID:                uuid.New(),
		MarketplaceItemID: itemID,
		StorageKey:        "items/" + itemID.String() + "/" + uuid.NewString(),
		StorageLocation:   location,
		Active:            active,
		Metadata:          datatypes.JSONMap{"contentType": "image/png"},
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
	// gorm skips zero-value bools on insert when the column has a default.
	if err := tx.WithContext(ctx).Create(img).Error; err != nil {
		tb.Fatalf("seed item image: %v", err)
	}
	if !active {
		if err := tx.WithContext(ctx).Model(img).Update("active", false).Error; err != nil {
			tb.Fatalf("deactivate item image: %v", err)
		}
	}
	return img
}

func SeedMembership(tb testing.TB, ctx context.Context, tx *gorm.DB, experienceID, userID, level string, createdAt time.Time) *types.Membership {
	tb.Helper()
	m := &types.Membership{
		ID:           uuid.New(),
		ExperienceID: experienceID,
		UserID:       userID,
		AccessLevel:  level,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed membership: %v", err)
	}
	return m
}
