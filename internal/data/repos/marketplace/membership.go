package marketplace

import (
	"gorm.io/gorm"

	types "github.com/yungbote/experience-marketplace/internal/domain"
	"github.com/yungbote/experience-marketplace/internal/pkg/dbctx"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
)

type MembershipRepo interface {
	Create(dbc dbctx.Context, rows []*types.Membership) ([]*types.Membership, error)
	ListByExperience(dbc dbctx.Context, experienceID string) ([]*types.Membership, error)
}

type membershipRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMembershipRepo(db *gorm.DB, baseLog *logger.Logger) MembershipRepo {
	return &membershipRepo{
		db:  db,
		log: baseLog.With("repo", "MembershipRepo"),
	}
}

func (r *membershipRepo) Create(dbc dbctx.Context, rows []*types.Membership) ([]*types.Membership, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.Membership{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *membershipRepo) ListByExperience(dbc dbctx.Context, experienceID string) ([]*types.Membership, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	out := []*types.Membership{}
	if experienceID == "" {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("experience_id = ?", experienceID).
		Order("created_at DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
