package service

import (
	"context"

	"github.com/Freeeeeet/slotswapper/internal/model"
	"github.com/Freeeeeet/slotswapper/internal/repository"
)

// MarketplaceService read-only проекция чужих слотов, доступных для обмена
type MarketplaceService struct {
	slotRepo *repository.SlotRepository
}

func NewMarketplaceService(slotRepo *repository.SlotRepository) *MarketplaceService {
	return &MarketplaceService{slotRepo: slotRepo}
}

// List получает чужие SWAPPABLE слоты с именами владельцев
func (s *MarketplaceService) List(ctx context.Context, userID string) ([]*model.Slot, error) {
	return s.slotRepo.ListSwappableExcluding(ctx, userID)
}
