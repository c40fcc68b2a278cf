package repository

import (
	"context"
	"errors"

	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/model"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/repository"
	"gorm.io/gorm"
)

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) repository.MemberRepository {
	return &memberRepository{
		db: db,
	}
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*entity.Member, error) {
	memberID, err := parseID("member", id)
	if err != nil {
		return nil, err
	}

	var member model.Member
	err = r.db.WithContext(ctx).Where("id = ?", memberID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return memberToEntity(&member), nil
}
