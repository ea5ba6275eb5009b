package services

import (
	"errors"

	types "github.com/yungbote/experience-marketplace/internal/domain"
	"github.com/yungbote/experience-marketplace/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/experience-marketplace/internal/pkg/errors"
	"github.com/yungbote/experience-marketplace/internal/platform/ctxutil"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
	"github.com/yungbote/experience-marketplace/internal/services/access"
	"github.com/yungbote/experience-marketplace/internal/validation"
)

type ExperienceHomeView struct {
	ExperienceID         string               `json:"experienceId"`
	AccessLevel          types.AccessTier     `json:"accessLevel"`
	CanCreateMarketplace bool                 `json:"canCreateMarketplace"`
	Marketplaces         []*types.Marketplace `json:"marketplaces"`
}

type MarketplacePageView struct {
	Marketplace   *types.Marketplace `json:"marketplace"`
	AccessLevel   types.AccessTier   `json:"accessLevel"`
	CanEdit       bool               `json:"canEdit"`
	CanCreateItem bool               `json:"canCreateItem"`
	Items         *types.ItemPage    `json:"items"`
}

type ItemDetailView struct {
	Item        *types.ItemDetail `json:"item"`
	AccessLevel types.AccessTier  `json:"accessLevel"`
	CanDelete   bool              `json:"canDelete"`
}

// ViewService assembles the page models a UI renders. The can* flags only
// drive what the UI offers; the lifecycle services enforce nothing extra.
type ViewService interface {
	ExperienceHome(dbc dbctx.Context, experienceID string, caller *types.Identity) (*ExperienceHomeView, error)
	MarketplacePage(dbc dbctx.Context, experienceID, marketplaceID string, page types.Page, caller *types.Identity) (*MarketplacePageView, error)
	ItemDetail(dbc dbctx.Context, experienceID, marketplaceID, itemID string, caller *types.Identity) (*ItemDetailView, error)
}

type viewService struct {
	log          *logger.Logger
	marketplaces MarketplaceService
	items        ItemService
	verifier     access.Verifier
}

func NewViewService(log *logger.Logger, marketplaces MarketplaceService, items ItemService, verifier access.Verifier) ViewService {
	return &viewService{
		log:          log.With("service", "ViewService"),
		marketplaces: marketplaces,
		items:        items,
		verifier:     verifier,
	}
}

// tier resolves the caller's level on the experience. Anonymous callers and
// platform lookups that deny the identity both read as no_access.
func (s *viewService) tier(dbc dbctx.Context, experienceID string, caller *types.Identity) (types.AccessTier, error) {
	if caller == nil || caller.IsZero() {
		return types.TierNoAccess, nil
	}
	tier, err := s.verifier.CheckAccess(ctxutil.Default(dbc.Ctx), caller.UserID, experienceID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrUnauthorized) {
			return types.TierNoAccess, nil
		}
		return types.TierNoAccess, err
	}
	return tier, nil
}

func (s *viewService) ExperienceHome(dbc dbctx.Context, experienceID string, caller *types.Identity) (*ExperienceHomeView, error) {
	expID, err := validation.ExperienceID(experienceID)
	if err != nil {
		return nil, err
	}
	list, err := s.marketplaces.List(dbc, expID)
	if err != nil {
		return nil, err
	}
	tier, err := s.tier(dbc, expID, caller)
	if err != nil {
		return nil, err
	}
	return &ExperienceHomeView{
		ExperienceID:         expID,
		AccessLevel:          tier,
		CanCreateMarketplace: tier.IsAdmin(),
		Marketplaces:         list,
	}, nil
}

func (s *viewService) MarketplacePage(dbc dbctx.Context, experienceID, marketplaceID string, page types.Page, caller *types.Identity) (*MarketplacePageView, error) {
	m, err := s.marketplaces.Get(dbc, marketplaceID, experienceID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.List(dbc, marketplaceID, page)
	if err != nil {
		return nil, err
	}
	tier, err := s.tier(dbc, m.ExperienceID, caller)
	if err != nil {
		return nil, err
	}
	return &MarketplacePageView{
		Marketplace:   m,
		AccessLevel:   tier,
		CanEdit:       tier.IsAdmin(),
		CanCreateItem: true,
		Items:         items,
	}, nil
}

func (s *viewService) ItemDetail(dbc dbctx.Context, experienceID, marketplaceID, itemID string, caller *types.Identity) (*ItemDetailView, error) {
	if _, err := s.marketplaces.Get(dbc, marketplaceID, experienceID); err != nil {
		return nil, err
	}
	item, err := s.items.Get(dbc, marketplaceID, itemID)
	if err != nil {
		return nil, err
	}
	tier, err := s.tier(dbc, item.ExperienceID, caller)
	if err != nil {
		return nil, err
	}
	return &ItemDetailView{
		Item:        item,
		AccessLevel: tier,
		CanDelete:   tier.IsAdmin(),
	}, nil
}
