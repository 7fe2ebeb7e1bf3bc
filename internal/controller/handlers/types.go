package handlers

import (
	"context"

	"github.com/Freeeeeet/slotswapper/internal/model"
	"github.com/Freeeeeet/slotswapper/internal/service"
)

// Интерфейсы сервисов, достаточные для обработчиков

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (string, *model.User, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
}

type SlotService interface {
	Create(ctx context.Context, ownerID, title string, startTime, endTime int64) (*model.Slot, error)
	ListMine(ctx context.Context, ownerID string) ([]*model.Slot, error)
	Update(ctx context.Context, userID, slotID string, upd service.SlotUpdate) (*model.Slot, error)
	Delete(ctx context.Context, userID, slotID string) error
}

type MarketplaceService interface {
	List(ctx context.Context, userID string) ([]*model.Slot, error)
}

type SwapService interface {
	Propose(ctx context.Context, requesterID, mySlotID, theirSlotID string) (*model.SwapRequest, error)
	Respond(ctx context.Context, responderID, requestID string, accept bool) (model.SwapStatus, error)
	ListForUser(ctx context.Context, userID string) ([]*model.SwapRequest, error)
}
