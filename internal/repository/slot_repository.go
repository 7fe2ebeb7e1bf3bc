package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/slotswapper/internal/model"
	"github.com/Freeeeeet/slotswapper/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotRepository struct {
	db base.Querier
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{db: pool}
}

// WithTx возвращает копию репозитория, работающую внутри транзакции
func (r *SlotRepository) WithTx(tx pgx.Tx) *SlotRepository {
	return &SlotRepository{db: tx}
}

// Create создаёт новый слот
func (r *SlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (id, owner_id, title, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(
		ctx, query,
		slot.ID,
		slot.OwnerID,
		slot.Title,
		slot.StartTime,
		slot.EndTime,
		slot.Status,
	)
	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id string) (*model.Slot, error) {
	query := `
		SELECT id, owner_id, title, start_time, end_time, status
		FROM slots
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// GetByIDForUpdate получает слот по ID с блокировкой строки до конца транзакции.
// Имеет смысл только через WithTx: конкурирующие propose/respond по одному слоту
// выстраиваются в очередь на этой блокировке.
func (r *SlotRepository) GetByIDForUpdate(ctx context.Context, id string) (*model.Slot, error) {
	query := `
		SELECT id, owner_id, title, start_time, end_time, status
		FROM slots
		WHERE id = $1
		FOR UPDATE
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *SlotRepository) scanOne(row pgx.Row) (*model.Slot, error) {
	var slot model.Slot
	err := row.Scan(
		&slot.ID,
		&slot.OwnerID,
		&slot.Title,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Status,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot: %w", err)
	}
	return &slot, nil
}

// ListByOwner получает все слоты пользователя по возрастанию времени начала
func (r *SlotRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Slot, error) {
	query := `
		SELECT id, owner_id, title, start_time, end_time, status
		FROM slots
		WHERE owner_id = $1
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list slots by owner: %w", err)
	}
	defer rows.Close()

	slots := make([]*model.Slot, 0)
	for rows.Next() {
		var slot model.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.OwnerID,
			&slot.Title,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, nil
}

// ListSwappableExcluding получает чужие слоты в статусе SWAPPABLE с именем владельца
func (r *SlotRepository) ListSwappableExcluding(ctx context.Context, ownerID string) ([]*model.Slot, error) {
	query := `
		SELECT s.id, s.owner_id, s.title, s.start_time, s.end_time, s.status, u.name
		FROM slots s
		JOIN users u ON u.id = s.owner_id
		WHERE s.status = $1 AND s.owner_id != $2
		ORDER BY s.start_time
	`

	rows, err := r.db.Query(ctx, query, model.SlotStatusSwappable, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list swappable slots: %w", err)
	}
	defer rows.Close()

	slots := make([]*model.Slot, 0)
	for rows.Next() {
		var slot model.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.OwnerID,
			&slot.Title,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Status,
			&slot.OwnerName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan swappable slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, nil
}

// Update обновляет title, время и статус слота
func (r *SlotRepository) Update(ctx context.Context, slot *model.Slot) error {
	query := `
		UPDATE slots
		SET title = $1, start_time = $2, end_time = $3, status = $4
		WHERE id = $5
	`

	result, err := r.db.Exec(ctx, query, slot.Title, slot.StartTime, slot.EndTime, slot.Status, slot.ID)
	if err != nil {
		return fmt.Errorf("update slot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot not found")
	}

	return nil
}

// Delete удаляет слот
func (r *SlotRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot not found")
	}

	return nil
}

// TransitionMany переводит все перечисленные слоты в новый статус
func (r *SlotRepository) TransitionMany(ctx context.Context, ids []string, status model.SlotStatus) error {
	query := `
		UPDATE slots
		SET status = $1
		WHERE id = ANY($2)
	`

	result, err := r.db.Exec(ctx, query, status, ids)
	if err != nil {
		return fmt.Errorf("transition slots: %w", err)
	}

	if result.RowsAffected() != int64(len(ids)) {
		return fmt.Errorf("transition slots: updated %d of %d", result.RowsAffected(), len(ids))
	}

	return nil
}

// TransitionManyFrom переводит слоты в новый статус только из ожидаемого старого.
// Возвращает количество реально обновлённых строк - вызывающий сверяет с len(ids).
func (r *SlotRepository) TransitionManyFrom(ctx context.Context, ids []string, from, to model.SlotStatus) (int64, error) {
	query := `
		UPDATE slots
		SET status = $1
		WHERE id = ANY($2) AND status = $3
	`

	result, err := r.db.Exec(ctx, query, to, ids, from)
	if err != nil {
		return 0, fmt.Errorf("transition slots from %s: %w", from, err)
	}

	return result.RowsAffected(), nil
}

// TransferOwnership меняет владельца и статус слота (только внутри транзакции координатора)
func (r *SlotRepository) TransferOwnership(ctx context.Context, id, newOwnerID string, status model.SlotStatus) error {
	query := `
		UPDATE slots
		SET owner_id = $1, status = $2
		WHERE id = $3
	`

	result, err := r.db.Exec(ctx, query, newOwnerID, status, id)
	if err != nil {
		return fmt.Errorf("transfer slot ownership: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot not found")
	}

	return nil
}
