package database

import (
	"github.com/wekeepgrowing/premier-subscription/internal/adapter/repository"
	domainRepo "github.com/wekeepgrowing/premier-subscription/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Organization domainRepo.OrganizationRepository
	Subscription domainRepo.SubscriptionRepository
	Member       domainRepo.MemberRepository
	FreeSlot     domainRepo.FreeSlotRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Organization: repository.NewOrganizationRepository(db, logger),
		Subscription: repository.NewSubscriptionRepository(db, logger),
		Member:       repository.NewMemberRepository(db),
		FreeSlot:     repository.NewFreeSlotRepository(db, logger),
	}
}
