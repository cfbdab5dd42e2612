package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	"github.com/katiabooking/KB-BookingService/pkg/psqlbuilder"
	"github.com/katiabooking/KB-BookingService/pkg/txmanager"
)

var policyColumns = []string{
	"id",
	"salon_id",
	"master_id",
	"slot_step_minutes",
	"default_hold_ttl_seconds",
	"full_refund_hours",
	"partial_refund_hours",
	"partial_refund_percent",
	"no_show_refund_allowed",
	"suggest_window_minutes",
	"suggest_limit",
	"created_at",
	"updated_at",
}

// Repository репозиторий политик бронирования
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый репозиторий политик
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// GetBySalonAndMaster получает политику для конкретной пары (salon_id, master_id)
// masterID == nil означает политику уровня салона
func (r *Repository) GetBySalonAndMaster(ctx context.Context, salonID int64, masterID *int64) (*domain.BookingPolicy, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(policyColumns...).
		From("booking_policies").
		Where(squirrel.Eq{"salon_id": salonID})

	if masterID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"master_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"master_id": *masterID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonAndMaster - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	p, err := scanPolicy(row)
	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonAndMaster - scan policy: %v", ErrScanRow, err)
	}

	return p, nil
}

// GetWithHierarchy получает политику с учетом иерархии приоритетов:
// 1. Политика конкретного мастера (salon_id, master_id)
// 2. Политика всего салона (salon_id, NULL)
// Если политика не найдена ни на одном уровне, возвращает ErrPolicyNotFound -
// вызывающий решает, упасть или подставить дефолты
func (r *Repository) GetWithHierarchy(ctx context.Context, salonID int64, masterID *int64) (*domain.BookingPolicy, error) {
	if masterID != nil {
		p, err := r.GetBySalonAndMaster(ctx, salonID, masterID)
		if err == nil {
			return p, nil
		}
		if err != ErrPolicyNotFound {
			return nil, fmt.Errorf("%w: GetWithHierarchy - level 1 (master): %v", ErrExecQuery, err)
		}
	}

	p, err := r.GetBySalonAndMaster(ctx, salonID, nil)
	if err == nil {
		return p, nil
	}
	if err != ErrPolicyNotFound {
		return nil, fmt.Errorf("%w: GetWithHierarchy - level 2 (salon): %v", ErrExecQuery, err)
	}

	return nil, ErrPolicyNotFound
}

// Upsert создает или обновляет политику для пары (salon_id, master_id)
func (r *Repository) Upsert(ctx context.Context, p *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_policies").
		Columns(
			"salon_id",
			"master_id",
			"slot_step_minutes",
			"default_hold_ttl_seconds",
			"full_refund_hours",
			"partial_refund_hours",
			"partial_refund_percent",
			"no_show_refund_allowed",
			"suggest_window_minutes",
			"suggest_limit",
		).
		Values(
			p.SalonID,
			p.MasterID,
			p.SlotStepMinutes,
			p.DefaultHoldTTLSeconds,
			p.FullRefundHours,
			p.PartialRefundHours,
			p.PartialRefundPercent,
			p.NoShowRefundAllowed,
			p.SuggestWindowMinutes,
			p.SuggestLimit,
		).
		Suffix(`ON CONFLICT (salon_id, master_id) DO UPDATE SET
			slot_step_minutes = EXCLUDED.slot_step_minutes,
			default_hold_ttl_seconds = EXCLUDED.default_hold_ttl_seconds,
			full_refund_hours = EXCLUDED.full_refund_hours,
			partial_refund_hours = EXCLUDED.partial_refund_hours,
			partial_refund_percent = EXCLUDED.partial_refund_percent,
			no_show_refund_allowed = EXCLUDED.no_show_refund_allowed,
			suggest_window_minutes = EXCLUDED.suggest_window_minutes,
			suggest_limit = EXCLUDED.suggest_limit,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetAllBySalon получает все политики салона (общую и для мастеров)
func (r *Repository) GetAllBySalon(ctx context.Context, salonID int64) ([]*domain.BookingPolicy, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(policyColumns...).
		From("booking_policies").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("master_id ASC NULLS FIRST"). // Общая политика салона первой
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	policies := make([]*domain.BookingPolicy, 0)
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllBySalon - scan row: %v", ErrScanRow, err)
		}
		policies = append(policies, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllBySalon - rows error: %v", ErrScanRow, err)
	}

	return policies, nil
}

// Delete удаляет политику
func (r *Repository) Delete(ctx context.Context, salonID int64, masterID *int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("booking_policies").
		Where(squirrel.Eq{"salon_id": salonID})

	if masterID == nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"master_id": nil})
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"master_id": *masterID})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPolicyNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPolicy(row scanner) (*domain.BookingPolicy, error) {
	var p domain.BookingPolicy
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.SalonID,
		&p.MasterID,
		&p.SlotStepMinutes,
		&p.DefaultHoldTTLSeconds,
		&p.FullRefundHours,
		&p.PartialRefundHours,
		&p.PartialRefundPercent,
		&p.NoShowRefundAllowed,
		&p.SuggestWindowMinutes,
		&p.SuggestLimit,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
