package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/experience-marketplace/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Marketplace{},
		&types.MarketplaceItem{},
		&types.MarketplaceItemImage{},
		&types.Membership{},
	)
}

// EnsureMarketplaceIndexes creates the partial indexes behind the listing
// queries. The statements are valid on both Postgres and SQLite.
func EnsureMarketplaceIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{
			name: "idx_marketplace_experience_created_at",
			sql: `
				CREATE INDEX IF NOT EXISTS idx_marketplace_experience_created_at
				ON marketplace (experience_id, created_at DESC)
				WHERE deleted_at IS NULL;`,
		},
		{
			name: "idx_marketplace_item_marketplace_created_at",
			sql: `
				CREATE INDEX IF NOT EXISTS idx_marketplace_item_marketplace_created_at
				ON marketplace_item (marketplace_id, created_at DESC)
				WHERE deleted_at IS NULL;`,
		},
		{
			name: "idx_marketplace_item_image_item_created_at",
			sql: `
				CREATE INDEX IF NOT EXISTS idx_marketplace_item_image_item_created_at
				ON marketplace_item_image (marketplace_item_id, created_at ASC)
				WHERE deleted_at IS NULL;`,
		},
		{
			name: "idx_membership_experience_user",
			sql: `
				CREATE UNIQUE INDEX IF NOT EXISTS idx_membership_experience_user
				ON membership (experience_id, user_id)
				WHERE deleted_at IS NULL;`,
		},
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", stmt.name, err)
		}
	}
	return nil
}

func (s *DatabaseService) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...", "driver", s.driver)
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureMarketplaceIndexes(s.db); err != nil {
		s.log.Error("Marketplace index migration failed", "error", err)
		return err
	}
	return nil
}
