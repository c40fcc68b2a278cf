package repository

import (
	"context"

	"github.com/wekeepgrowing/premier-subscription/internal/domain/entity"
)

type MemberRepository interface {
	// GetByID returns nil, nil when the member does not exist
	GetByID(ctx context.Context, id string) (*entity.Member, error)
}
