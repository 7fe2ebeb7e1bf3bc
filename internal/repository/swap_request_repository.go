package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/slotswapper/internal/model"
	"github.com/Freeeeeet/slotswapper/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SwapRequestRepository struct {
	db base.Querier
}

func NewSwapRequestRepository(pool *pgxpool.Pool) *SwapRequestRepository {
	return &SwapRequestRepository{db: pool}
}

// WithTx возвращает копию репозитория, работающую внутри транзакции
func (r *SwapRequestRepository) WithTx(tx pgx.Tx) *SwapRequestRepository {
	return &SwapRequestRepository{db: tx}
}

// Create создаёт новую заявку на обмен
func (r *SwapRequestRepository) Create(ctx context.Context, req *model.SwapRequest) error {
	query := `
		INSERT INTO swap_requests (id, requester_id, responder_id, my_slot_id, their_slot_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(
		ctx, query,
		req.ID,
		req.RequesterID,
		req.ResponderID,
		req.MySlotID,
		req.TheirSlotID,
		req.Status,
		req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create swap request: %w", err)
	}

	return nil
}

// GetByID получает заявку по ID
func (r *SwapRequestRepository) GetByID(ctx context.Context, id string) (*model.SwapRequest, error) {
	query := `
		SELECT id, requester_id, responder_id, my_slot_id, their_slot_id, status, created_at
		FROM swap_requests
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// GetByIDForUpdate получает заявку с блокировкой строки до конца транзакции.
// Два конкурирующих respond по одной заявке сериализуются здесь.
func (r *SwapRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (*model.SwapRequest, error) {
	query := `
		SELECT id, requester_id, responder_id, my_slot_id, their_slot_id, status, created_at
		FROM swap_requests
		WHERE id = $1
		FOR UPDATE
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *SwapRequestRepository) scanOne(row pgx.Row) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := row.Scan(
		&req.ID,
		&req.RequesterID,
		&req.ResponderID,
		&req.MySlotID,
		&req.TheirSlotID,
		&req.Status,
		&req.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get swap request: %w", err)
	}
	return &req, nil
}

// ListForUser получает заявки, где пользователь инициатор или отвечающий,
// с именами обеих сторон, новые первыми
func (r *SwapRequestRepository) ListForUser(ctx context.Context, userID string) ([]*model.SwapRequest, error) {
	query := `
		SELECT sr.id, sr.requester_id, sr.responder_id, sr.my_slot_id, sr.their_slot_id,
		       sr.status, sr.created_at, u1.name, u2.name
		FROM swap_requests sr
		JOIN users u1 ON u1.id = sr.requester_id
		JOIN users u2 ON u2.id = sr.responder_id
		WHERE sr.requester_id = $1 OR sr.responder_id = $1
		ORDER BY sr.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list swap requests: %w", err)
	}
	defer rows.Close()

	reqs := make([]*model.SwapRequest, 0)
	for rows.Next() {
		var req model.SwapRequest
		err := rows.Scan(
			&req.ID,
			&req.RequesterID,
			&req.ResponderID,
			&req.MySlotID,
			&req.TheirSlotID,
			&req.Status,
			&req.CreatedAt,
			&req.RequesterName,
			&req.ResponderName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan swap request: %w", err)
		}
		reqs = append(reqs, &req)
	}

	return reqs, nil
}

// UpdateStatusFromPending переводит заявку из PENDING в терминальный статус.
// Терминальные статусы неизменяемы, поэтому guard по текущему статусу обязателен.
func (r *SwapRequestRepository) UpdateStatusFromPending(ctx context.Context, id string, status model.SwapStatus) error {
	query := `
		UPDATE swap_requests
		SET status = $1
		WHERE id = $2 AND status = $3
	`

	result, err := r.db.Exec(ctx, query, status, id, model.SwapStatusPending)
	if err != nil {
		return fmt.Errorf("update swap request status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("swap request is not pending")
	}

	return nil
}
