package domain

import (
	"github.com/yungbote/experience-marketplace/internal/domain/access"
	"github.com/yungbote/experience-marketplace/internal/domain/marketplace"
)

type State = marketplace.State

const (
	StateActive   = marketplace.StateActive
	StateInactive = marketplace.StateInactive
	StateDeleted  = marketplace.StateDeleted
)

type Marketplace = marketplace.Marketplace
type MarketplaceItem = marketplace.MarketplaceItem
type MarketplaceItemImage = marketplace.MarketplaceItemImage
type Membership = marketplace.Membership

type ItemSummary = marketplace.ItemSummary
type ItemDetail = marketplace.ItemDetail
type ItemPage = marketplace.ItemPage
type Page = marketplace.Page

type AccessTier = access.Tier
type Identity = access.Identity

const (
	TierAdmin    = access.TierAdmin
	TierCustomer = access.TierCustomer
	TierNoAccess = access.TierNoAccess
)

func ParseAccessTier(raw string) AccessTier { return access.ParseTier(raw) }

func NewItemSummary(i *MarketplaceItem) ItemSummary { return marketplace.NewItemSummary(i) }

func NewItemDetail(i *MarketplaceItem, experienceID string) ItemDetail {
	return marketplace.NewItemDetail(i, experienceID)
}
