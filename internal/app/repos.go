package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/experience-marketplace/internal/data/repos"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
)

type Repos struct {
	Marketplace repos.MarketplaceRepo
	Item        repos.ItemRepo
	ItemImage   repos.ItemImageRepo
	Membership  repos.MembershipRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Marketplace: repos.NewMarketplaceRepo(db, log),
		Item:        repos.NewItemRepo(db, log),
		ItemImage:   repos.NewItemImageRepo(db, log),
		Membership:  repos.NewMembershipRepo(db, log),
	}
}
