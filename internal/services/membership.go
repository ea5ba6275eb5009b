package services

import (
	"fmt"

	"github.com/yungbote/experience-marketplace/internal/data/repos"
	types "github.com/yungbote/experience-marketplace/internal/domain"
	"github.com/yungbote/experience-marketplace/internal/pkg/dbctx"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
	"github.com/yungbote/experience-marketplace/internal/validation"
)

type MembershipService interface {
	List(dbc dbctx.Context, experienceID string) ([]*types.Membership, error)
}

type membershipService struct {
	log  *logger.Logger
	repo repos.MembershipRepo
}

func NewMembershipService(log *logger.Logger, repo repos.MembershipRepo) MembershipService {
	return &membershipService{log: log.With("service", "MembershipService"), repo: repo}
}

func (s *membershipService) List(dbc dbctx.Context, experienceID string) ([]*types.Membership, error) {
	expID, err := validation.ExperienceID(experienceID)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.ListByExperience(dbc, expID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return out, nil
}
