package service

import (
	"context"
	"strings"

	"github.com/Freeeeeet/slotswapper/internal/apperr"
	"github.com/Freeeeeet/slotswapper/internal/model"
	"github.com/Freeeeeet/slotswapper/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SlotService struct {
	slotRepo *repository.SlotRepository
	logger   *zap.Logger
}

func NewSlotService(slotRepo *repository.SlotRepository, logger *zap.Logger) *SlotService {
	return &SlotService{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// SlotUpdate частичное обновление слота; nil-поля не трогаем
type SlotUpdate struct {
	Title     *string
	StartTime *int64
	EndTime   *int64
	Status    *model.SlotStatus
}

// Create создаёт новый слот. Статус всегда BUSY, в обмен слот попадает
// только после явного переключения владельцем.
func (s *SlotService) Create(ctx context.Context, ownerID, title string, startTime, endTime int64) (*model.Slot, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperr.Validation("title is required")
	}
	if startTime <= 0 || endTime <= 0 {
		return nil, apperr.Validation("startTime and endTime are required")
	}
	if endTime <= startTime {
		return nil, apperr.Validation("endTime must be after startTime")
	}

	slot := &model.Slot{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    model.SlotStatusBusy,
	}

	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, err
	}

	s.logger.Info("Slot created",
		zap.String("slot_id", slot.ID),
		zap.String("owner_id", ownerID),
	)

	return slot, nil
}

// ListMine получает все слоты пользователя
func (s *SlotService) ListMine(ctx context.Context, ownerID string) ([]*model.Slot, error) {
	return s.slotRepo.ListByOwner(ctx, ownerID)
}

// Update обновляет слот. Доступно только владельцу; статус можно переключать
// только между BUSY и SWAPPABLE - SWAP_PENDING ставит и снимает координатор.
func (s *SlotService) Update(ctx context.Context, userID, slotID string, upd SlotUpdate) (*model.Slot, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, apperr.NotFound("slot not found")
	}
	if slot.OwnerID != userID {
		return nil, apperr.Forbidden("not the owner of this slot")
	}

	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, apperr.Validation("title must not be empty")
		}
		slot.Title = *upd.Title
	}
	if upd.StartTime != nil {
		slot.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		slot.EndTime = *upd.EndTime
	}
	if slot.StartTime <= 0 || slot.EndTime <= 0 || slot.EndTime <= slot.StartTime {
		return nil, apperr.Validation("endTime must be after startTime")
	}

	if upd.Status != nil && *upd.Status != slot.Status {
		if !upd.Status.IsValid() || *upd.Status == model.SlotStatusSwapPending {
			return nil, apperr.Validation("status must be BUSY or SWAPPABLE")
		}
		// Слот, участвующий в незакрытой заявке, из-под неё не выдёргиваем
		if slot.Status == model.SlotStatusSwapPending {
			return nil, apperr.InvalidState("slot is locked by a pending swap")
		}
		slot.Status = *upd.Status
	}

	if err := s.slotRepo.Update(ctx, slot); err != nil {
		return nil, err
	}

	s.logger.Info("Slot updated",
		zap.String("slot_id", slot.ID),
		zap.String("owner_id", userID),
		zap.String("status", string(slot.Status)),
	)

	return slot, nil
}

// Delete удаляет слот. Доступно только владельцу и только вне активного обмена.
func (s *SlotService) Delete(ctx context.Context, userID, slotID string) error {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return err
	}
	if slot == nil {
		return apperr.NotFound("slot not found")
	}
	if slot.OwnerID != userID {
		return apperr.Forbidden("not the owner of this slot")
	}
	if slot.Status == model.SlotStatusSwapPending {
		return apperr.InvalidState("slot is locked by a pending swap")
	}

	if err := s.slotRepo.Delete(ctx, slotID); err != nil {
		return err
	}

	s.logger.Info("Slot deleted",
		zap.String("slot_id", slotID),
		zap.String("owner_id", userID),
	)

	return nil
}
