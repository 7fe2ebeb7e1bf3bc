package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/slotswapper/internal/apperr"
	"github.com/Freeeeeet/slotswapper/internal/model"
	"github.com/Freeeeeet/slotswapper/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// SwapService координатор обмена: единственное место, где слоты и заявки
// мутируют вместе, всегда внутри одной транзакции
type SwapService struct {
	pool     *pgxpool.Pool
	slotRepo *repository.SlotRepository
	swapRepo *repository.SwapRequestRepository
	logger   *zap.Logger
}

func NewSwapService(
	pool *pgxpool.Pool,
	slotRepo *repository.SlotRepository,
	swapRepo *repository.SwapRequestRepository,
	logger *zap.Logger,
) *SwapService {
	return &SwapService{
		pool:     pool,
		slotRepo: slotRepo,
		swapRepo: swapRepo,
		logger:   logger,
	}
}

// Propose создаёт заявку на обмен и переводит оба слота в SWAP_PENDING.
// Статусы перечитываются под блокировкой внутри транзакции: состояние могло
// измениться между выдачей маркетплейса и этим вызовом.
func (s *SwapService) Propose(ctx context.Context, requesterID, mySlotID, theirSlotID string) (*model.SwapRequest, error) {
	if mySlotID == "" || theirSlotID == "" {
		return nil, apperr.Validation("mySlotId and theirSlotId are required")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	slots := s.slotRepo.WithTx(tx)
	swaps := s.swapRepo.WithTx(tx)

	mySlot, theirSlot, err := lockSlotPair(ctx, slots, mySlotID, theirSlotID)
	if err != nil {
		return nil, err
	}

	if mySlot == nil {
		return nil, apperr.NotFound("my slot not found")
	}
	if mySlot.OwnerID != requesterID {
		return nil, apperr.Forbidden("not the owner of mySlot")
	}
	if mySlot.Status != model.SlotStatusSwappable {
		return nil, apperr.InvalidState("my slot is not SWAPPABLE")
	}

	if theirSlot == nil {
		return nil, apperr.NotFound("their slot not found")
	}
	if theirSlot.Status != model.SlotStatusSwappable {
		return nil, apperr.InvalidState("their slot is not SWAPPABLE")
	}
	if theirSlot.OwnerID == requesterID {
		return nil, apperr.Validation("cannot swap with yourself")
	}

	req := &model.SwapRequest{
		ID:          uuid.NewString(),
		RequesterID: requesterID,
		ResponderID: theirSlot.OwnerID,
		MySlotID:    mySlotID,
		TheirSlotID: theirSlotID,
		Status:      model.SwapStatusPending,
		CreatedAt:   time.Now().UnixMilli(),
	}

	if err := swaps.Create(ctx, req); err != nil {
		return nil, err
	}

	ids := []string{mySlotID, theirSlotID}
	affected, err := slots.TransitionManyFrom(ctx, ids, model.SlotStatusSwappable, model.SlotStatusSwapPending)
	if err != nil {
		return nil, err
	}
	if affected != int64(len(ids)) {
		return nil, apperr.InvalidState("slot is no longer SWAPPABLE")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("Swap proposed",
		zap.String("request_id", req.ID),
		zap.String("requester_id", requesterID),
		zap.String("responder_id", req.ResponderID),
		zap.String("my_slot_id", mySlotID),
		zap.String("their_slot_id", theirSlotID),
	)

	return req, nil
}

// Respond закрывает заявку. Отказ возвращает оба слота в SWAPPABLE; согласие
// меняет владельцев местами и переводит слоты в BUSY. Оба терминальных статуса
// окончательные, повторный respond по той же заявке невозможен.
func (s *SwapService) Respond(ctx context.Context, responderID, requestID string, accept bool) (model.SwapStatus, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	slots := s.slotRepo.WithTx(tx)
	swaps := s.swapRepo.WithTx(tx)

	req, err := swaps.GetByIDForUpdate(ctx, requestID)
	if err != nil {
		return "", err
	}
	if req == nil {
		return "", apperr.NotFound("swap request not found")
	}
	if req.ResponderID != responderID {
		return "", apperr.Forbidden("not the responder of this request")
	}
	if req.Status != model.SwapStatusPending {
		return "", apperr.InvalidState("swap request is not pending")
	}

	if !accept {
		if err := swaps.UpdateStatusFromPending(ctx, req.ID, model.SwapStatusRejected); err != nil {
			return "", err
		}
		ids := []string{req.MySlotID, req.TheirSlotID}
		if err := slots.TransitionMany(ctx, ids, model.SlotStatusSwappable); err != nil {
			return "", err
		}
		if err := tx.Commit(ctx); err != nil {
			return "", fmt.Errorf("commit transaction: %w", err)
		}

		s.logger.Info("Swap rejected",
			zap.String("request_id", req.ID),
			zap.String("responder_id", responderID),
		)
		return model.SwapStatusRejected, nil
	}

	// Перечитываем оба слота под блокировкой: между propose и respond их
	// могли тронуть в обход заявки
	mySlot, theirSlot, err := lockSlotPair(ctx, slots, req.MySlotID, req.TheirSlotID)
	if err != nil {
		return "", err
	}
	if mySlot == nil || theirSlot == nil {
		return "", apperr.NotFound("slot missing")
	}
	if mySlot.Status != model.SlotStatusSwapPending || theirSlot.Status != model.SlotStatusSwapPending {
		return "", apperr.InvalidState("slots are not in SWAP_PENDING")
	}

	// Обмен владельцами, оба слота снова BUSY
	if err := slots.TransferOwnership(ctx, mySlot.ID, theirSlot.OwnerID, model.SlotStatusBusy); err != nil {
		return "", err
	}
	if err := slots.TransferOwnership(ctx, theirSlot.ID, mySlot.OwnerID, model.SlotStatusBusy); err != nil {
		return "", err
	}
	if err := swaps.UpdateStatusFromPending(ctx, req.ID, model.SwapStatusAccepted); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("Swap accepted",
		zap.String("request_id", req.ID),
		zap.String("responder_id", responderID),
		zap.String("my_slot_id", mySlot.ID),
		zap.String("their_slot_id", theirSlot.ID),
	)

	return model.SwapStatusAccepted, nil
}

// ListForUser получает все заявки пользователя (входящие и исходящие)
func (s *SwapService) ListForUser(ctx context.Context, userID string) ([]*model.SwapRequest, error) {
	return s.swapRepo.ListForUser(ctx, userID)
}

// lockSlotPair блокирует обе строки слотов в детерминированном порядке, чтобы
// встречные propose/respond по одной паре не взаимоблокировались. Отсутствующий
// слот возвращается как nil, проверки остаются на вызывающем.
func lockSlotPair(ctx context.Context, slots *repository.SlotRepository, idA, idB string) (*model.Slot, *model.Slot, error) {
	first, second := idA, idB
	if second < first {
		first, second = second, first
	}

	slotFirst, err := slots.GetByIDForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}

	slotSecond := slotFirst
	if second != first {
		slotSecond, err = slots.GetByIDForUpdate(ctx, second)
		if err != nil {
			return nil, nil, err
		}
	}

	if first == idA {
		return slotFirst, slotSecond, nil
	}
	return slotSecond, slotFirst, nil
}
