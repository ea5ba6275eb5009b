package app

import (
	"github.com/yungbote/experience-marketplace/internal/pkg/clock"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
	"github.com/yungbote/experience-marketplace/internal/services"
)

type Services struct {
	Marketplace services.MarketplaceService
	Item        services.ItemService
	Membership  services.MembershipService
	View        services.ViewService
}

func wireServices(log *logger.Logger, reposet Repos, clients Clients, clk clock.Clock) Services {
	log.Info("Wiring services...")
	marketplaces := services.NewMarketplaceService(log, reposet.Marketplace, clients.Verifier, clk)
	items := services.NewItemService(log, reposet.Marketplace, reposet.Item, reposet.ItemImage, clients.Store, clk)
	return Services{
		Marketplace: marketplaces,
		Item:        items,
		Membership:  services.NewMembershipService(log, reposet.Membership),
		View:        services.NewViewService(log, marketplaces, items, clients.Verifier),
	}
}
