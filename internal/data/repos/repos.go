package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/experience-marketplace/internal/data/repos/marketplace"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
)

type MarketplaceRepo = marketplace.MarketplaceRepo
type ItemRepo = marketplace.ItemRepo
type ItemImageRepo = marketplace.ItemImageRepo
type MembershipRepo = marketplace.MembershipRepo

func NewMarketplaceRepo(db *gorm.DB, baseLog *logger.Logger) MarketplaceRepo {
	return marketplace.NewMarketplaceRepo(db, baseLog)
}
func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo {
	return marketplace.NewItemRepo(db, baseLog)
}
func NewItemImageRepo(db *gorm.DB, baseLog *logger.Logger) ItemImageRepo {
	return marketplace.NewItemImageRepo(db, baseLog)
}
func NewMembershipRepo(db *gorm.DB, baseLog *logger.Logger) MembershipRepo {
	return marketplace.NewMembershipRepo(db, baseLog)
}
