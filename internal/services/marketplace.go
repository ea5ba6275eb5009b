package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/experience-marketplace/internal/data/repos"
	types "github.com/yungbote/experience-marketplace/internal/domain"
	"github.com/yungbote/experience-marketplace/internal/pkg/clock"
	"github.com/yungbote/experience-marketplace/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/experience-marketplace/internal/pkg/errors"
	"github.com/yungbote/experience-marketplace/internal/platform/ctxutil"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
	"github.com/yungbote/experience-marketplace/internal/services/access"
	"github.com/yungbote/experience-marketplace/internal/validation"
)

type MarketplaceService interface {
	List(dbc dbctx.Context, experienceID string) ([]*types.Marketplace, error)
	Create(dbc dbctx.Context, experienceID string, in validation.MarketplaceCreateInput) (*types.Marketplace, error)
	Get(dbc dbctx.Context, marketplaceID, experienceID string) (*types.Marketplace, error)
	Rename(dbc dbctx.Context, marketplaceID string, in validation.MarketplaceUpdateInput, caller types.Identity) (*types.Marketplace, error)
	SetActive(dbc dbctx.Context, marketplaceID string, in validation.MarketplaceStatusInput, caller types.Identity) (*types.Marketplace, error)
	Archive(dbc dbctx.Context, marketplaceID string, caller types.Identity) (*types.Marketplace, error)
}

type marketplaceService struct {
	log      *logger.Logger
	repo     repos.MarketplaceRepo
	verifier access.Verifier
	clock    clock.Clock
}

func NewMarketplaceService(log *logger.Logger, repo repos.MarketplaceRepo, verifier access.Verifier, clk clock.Clock) MarketplaceService {
	if clk == nil {
		clk = clock.Real()
	}
	return &marketplaceService{
		log:      log.With("service", "MarketplaceService"),
		repo:     repo,
		verifier: verifier,
		clock:    clk,
	}
}

func (s *marketplaceService) List(dbc dbctx.Context, experienceID string) ([]*types.Marketplace, error) {
	expID, err := validation.ExperienceID(experienceID)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.ListByExperience(dbc, expID)
	if err != nil {
		return nil, fmt.Errorf("list marketplaces: %w", err)
	}
	return out, nil
}

// Create is open to any caller; only mutations of existing marketplaces are admin-gated.
func (s *marketplaceService) Create(dbc dbctx.Context, experienceID string, in validation.MarketplaceCreateInput) (*types.Marketplace, error) {
	expID, err := validation.ExperienceID(experienceID)
	if err != nil {
		return nil, err
	}
	fields, err := validation.MarketplaceCreate(in)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	m, err := s.repo.Create(dbc, &types.Marketplace{
		ExperienceID: expID,
		Title:        fields.Title,
		TakeRate:     fields.TakeRate,
		State:        types.StateActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("create marketplace: %w", err)
	}
	s.log.Info("Marketplace created", "marketplace_id", m.ID, "experience_id", expID)
	return m, nil
}

func (s *marketplaceService) Get(dbc dbctx.Context, marketplaceID, experienceID string) (*types.Marketplace, error) {
	id, err := validation.ParseID("marketplace ID", marketplaceID)
	if err != nil {
		return nil, err
	}
	expID, err := validation.ExperienceID(experienceID)
	if err != nil {
		return nil, err
	}
	m, err := s.repo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load marketplace: %w", err)
	}
	if !m.Visible() || m.ExperienceID != expID {
		return nil, fmt.Errorf("marketplace %s: %w", id, pkgerrors.ErrNotFound)
	}
	return m, nil
}

// Rename checks the caller's tier before looking at the payload, so a
// non-admin is refused whatever they send.
func (s *marketplaceService) Rename(dbc dbctx.Context, marketplaceID string, in validation.MarketplaceUpdateInput, caller types.Identity) (*types.Marketplace, error) {
	id, err := validation.ParseID("marketplace ID", marketplaceID)
	if err != nil {
		return nil, err
	}
	m, err := s.loadForAdmin(dbc, id, caller, true)
	if err != nil {
		return nil, err
	}
	title, err := validation.MarketplaceUpdate(in)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	n, err := s.repo.UpdateTitle(dbc, id, title, now)
	if err != nil {
		return nil, fmt.Errorf("rename marketplace: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("marketplace %s: %w", id, pkgerrors.ErrNotFound)
	}
	m.Title = title
	m.UpdatedAt = now
	s.log.Info("Marketplace renamed", "marketplace_id", id, "caller_id", caller.UserID)
	return m, nil
}

func (s *marketplaceService) SetActive(dbc dbctx.Context, marketplaceID string, in validation.MarketplaceStatusInput, caller types.Identity) (*types.Marketplace, error) {
	id, err := validation.ParseID("marketplace ID", marketplaceID)
	if err != nil {
		return nil, err
	}
	m, err := s.loadForAdmin(dbc, id, caller, false)
	if err != nil {
		return nil, err
	}
	active, err := validation.MarketplaceStatus(in)
	if err != nil {
		return nil, err
	}

	next := types.StateInactive
	if active {
		next = types.StateActive
	}
	if m.State == next {
		return m, nil
	}
	if !m.State.CanTransitionTo(next) {
		return nil, fmt.Errorf("marketplace %s: %w", id, pkgerrors.ErrNotFound)
	}

	now := s.clock.Now()
	n, err := s.repo.UpdateState(dbc, id, next, now)
	if err != nil {
		return nil, fmt.Errorf("update marketplace state: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("marketplace %s: %w", id, pkgerrors.ErrNotFound)
	}
	m.State = next
	m.UpdatedAt = now
	s.log.Info("Marketplace state changed", "marketplace_id", id, "state", next, "caller_id", caller.UserID)
	return m, nil
}

func (s *marketplaceService) Archive(dbc dbctx.Context, marketplaceID string, caller types.Identity) (*types.Marketplace, error) {
	id, err := validation.ParseID("marketplace ID", marketplaceID)
	if err != nil {
		return nil, err
	}
	m, err := s.loadForAdmin(dbc, id, caller, false)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	n, err := s.repo.SoftDelete(dbc, id, now)
	if err != nil {
		return nil, fmt.Errorf("archive marketplace: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("marketplace %s: %w", id, pkgerrors.ErrNotFound)
	}
	m.State = types.StateDeleted
	m.UpdatedAt = now
	m.DeletedAt.Time = now
	m.DeletedAt.Valid = true
	s.log.Info("Marketplace archived", "marketplace_id", id, "caller_id", caller.UserID)
	return m, nil
}

// loadForAdmin resolves the marketplace and then requires the caller to be an
// admin of its experience. With requireActive, inactive marketplaces are
// reported as missing.
func (s *marketplaceService) loadForAdmin(dbc dbctx.Context, id uuid.UUID, caller types.Identity, requireActive bool) (*types.Marketplace, error) {
	if caller.IsZero() {
		return nil, fmt.Errorf("no caller identity: %w", pkgerrors.ErrUnauthorized)
	}
	m, err := s.repo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load marketplace: %w", err)
	}
	if m == nil || m.State.IsDeleted() || m.DeletedAt.Valid || (requireActive && !m.Visible()) {
		return nil, fmt.Errorf("marketplace %s: %w", id, pkgerrors.ErrNotFound)
	}

	tier, err := s.verifier.CheckAccess(ctxutil.Default(dbc.Ctx), caller.UserID, m.ExperienceID)
	if err != nil {
		return nil, err
	}
	if !tier.IsAdmin() {
		s.log.Warn("Marketplace mutation refused", "marketplace_id", id, "caller_id", caller.UserID, "tier", tier)
		return nil, fmt.Errorf("admin access required: %w", pkgerrors.ErrForbidden)
	}
	return m, nil
}
