package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	"github.com/katiabooking/KB-BookingService/pkg/psqlbuilder"
	"github.com/katiabooking/KB-BookingService/pkg/txmanager"
)

// recordColumns колонки таблицы reservations в порядке сканирования
var recordColumns = []string{
	"id",
	"master_id",
	"salon_id",
	"booking_id",
	"client_id",
	"booking_date",
	"start_at",
	"end_at",
	"status",
	"expires_at",
	"deposit_amount",
	"charge_ref",
	"service_name",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository postgres-реализация календаря мастера.
//
// Единица консистентности - календарь одной пары (master_id, booking_date).
// Update выполняет check-and-set в сериализуемой транзакции с блокировкой
// строк календаря (SELECT ... FOR UPDATE), поэтому два конкурентных резерва
// на пересекающиеся интервалы не могут пройти оба.
type Repository struct {
	db           txmanager.Executor
	txManager    TxManager
	timeProvider TimeProvider
}

// NewRepository создает новый репозиторий календаря
func NewRepository(db txmanager.Executor, txManager TxManager) *Repository {
	return &Repository{
		db:           db,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
	}
}

// Get возвращает снапшот календаря мастера на дату.
// Истекшие временные холды вычищаются из выборки на уровне SQL (ленивый
// sweep на чтении): они никогда не видны вызывающим как занимающие слот.
func (r *Repository) Get(ctx context.Context, masterID int64, date time.Time) ([]*domain.ReservationRecord, error) {
	executor := txmanager.GetExecutor(ctx, r.db)
	now := r.timeProvider.Now()

	selectBuilder := psqlbuilder.Select(recordColumns...).
		From("reservations").
		Where(squirrel.Eq{"master_id": masterID}).
		Where(squirrel.Eq{"booking_date": dateOnly(date)}).
		Where(squirrel.Or{
			squirrel.NotEq{"status": domain.StatusTempHold},
			squirrel.Gt{"expires_at": now},
		}).
		OrderBy("start_at ASC")

	// Внутри транзакции блокируем строки календаря - это путь записи Update
	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Append добавляет запись в календарь.
// Уникальность интервала здесь не проверяется - это ответственность
// Reservation Guard, а не хранилища.
func (r *Repository) Append(ctx context.Context, masterID int64, date time.Time, rec *domain.ReservationRecord) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"id",
			"master_id",
			"salon_id",
			"booking_id",
			"client_id",
			"booking_date",
			"start_at",
			"end_at",
			"status",
			"expires_at",
			"deposit_amount",
			"charge_ref",
			"service_name",
			"notes",
			"cancellation_reason",
			"cancelled_at",
		).
		Values(
			rec.ID,
			masterID,
			rec.SalonID,
			rec.BookingID,
			rec.ClientID,
			dateOnly(date),
			rec.Interval.Start,
			rec.Interval.End,
			rec.Status,
			rec.ExpiresAt,
			rec.DepositAmount,
			rec.ChargeRef,
			rec.ServiceName,
			rec.Notes,
			rec.CancellationReason,
			rec.CancelledAt,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	rec.CreatedAt = createdAt.Time
	rec.UpdatedAt = updatedAt.Time
	rec.MasterID = masterID

	return nil
}

// Replace атомарно заменяет весь календарь мастера на дату.
// Вызывающий передает полное желаемое состояние, а не дельту - так
// check-and-set дисциплина исключает потерянные обновления.
func (r *Repository) Replace(ctx context.Context, masterID int64, date time.Time, recs []*domain.ReservationRecord) error {
	if txmanager.IsInTransaction(ctx) {
		return r.replace(ctx, masterID, date, recs)
	}
	return r.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return r.replace(txCtx, masterID, date, recs)
	})
}

// Update выполняет атомарный check-and-set над календарем:
// читает текущее состояние под блокировкой, применяет fn и записывает
// результат целиком. Ошибка fn откатывает транзакцию без изменений.
func (r *Repository) Update(
	ctx context.Context,
	masterID int64,
	date time.Time,
	fn func(recs []*domain.ReservationRecord) ([]*domain.ReservationRecord, error),
) error {
	return r.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := r.Get(txCtx, masterID, date)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		return r.replace(txCtx, masterID, date, next)
	})
}

func (r *Repository) replace(ctx context.Context, masterID int64, date time.Time, recs []*domain.ReservationRecord) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"master_id": masterID}).
		Where(squirrel.Eq{"booking_date": dateOnly(date)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Replace - execute delete: %v", ErrExecQuery, err)
	}

	now := r.timeProvider.Now()
	for _, rec := range recs {
		// Новые записи получают created_at от базы, пережившие replace
		// сохраняют исходный created_at
		if rec.CreatedAt.IsZero() {
			if err := r.Append(ctx, masterID, date, rec); err != nil {
				return err
			}
			continue
		}
		if err := r.reinsert(ctx, masterID, date, rec, now); err != nil {
			return err
		}
	}

	return nil
}

// reinsert возвращает пережившую replace запись в таблицу, не трогая её
// created_at и проставляя updated_at временем текущей записи календаря
func (r *Repository) reinsert(ctx context.Context, masterID int64, date time.Time, rec *domain.ReservationRecord, now time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(recordColumns...).
		Values(
			rec.ID,
			masterID,
			rec.SalonID,
			rec.BookingID,
			rec.ClientID,
			dateOnly(date),
			rec.Interval.Start,
			rec.Interval.End,
			rec.Status,
			rec.ExpiresAt,
			rec.DepositAmount,
			rec.ChargeRef,
			rec.ServiceName,
			rec.Notes,
			rec.CancellationReason,
			rec.CancelledAt,
			rec.CreatedAt,
			now,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Replace - execute insert: %v", ErrExecQuery, err)
	}

	rec.UpdatedAt = now
	rec.MasterID = masterID

	return nil
}

// ListBySalon возвращает записи салона с гибкой фильтрацией
// Используется read-стороной: списки бронирований салона и история клиента
func (r *Repository) ListBySalon(ctx context.Context, filter domain.CalendarFilter) ([]*domain.ReservationRecord, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(recordColumns...).
		From("reservations").
		Where(squirrel.Eq{"salon_id": filter.SalonID})

	if filter.MasterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"master_id": *filter.MasterID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": dateOnly(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": dateOnly(*filter.EndDate)})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		// Для конкретной даты сортируем по времени начала
		selectBuilder = selectBuilder.OrderBy("start_at ASC")
	} else {
		// Для периода - сначала новые
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_at DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListByClient возвращает историю записей клиента
func (r *Repository) ListByClient(ctx context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.ReservationRecord, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(recordColumns...).
		From("reservations").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("booking_date DESC, start_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ReservationRecord, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(recordColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan record: %v", ErrScanRow, err)
	}

	return rec, nil
}

// scanner общий интерфейс для *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (*domain.ReservationRecord, error) {
	var rec domain.ReservationRecord
	var bookingDate time.Time
	var startAt, endAt time.Time
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rec.ID,
		&rec.MasterID,
		&rec.SalonID,
		&rec.BookingID,
		&rec.ClientID,
		&bookingDate,
		&startAt,
		&endAt,
		&rec.Status,
		&rec.ExpiresAt,
		&rec.DepositAmount,
		&rec.ChargeRef,
		&rec.ServiceName,
		&rec.Notes,
		&rec.CancellationReason,
		&rec.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Interval = domain.Interval{Start: startAt, End: endAt}
	rec.CreatedAt = createdAt.Time
	rec.UpdatedAt = updatedAt.Time

	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]*domain.ReservationRecord, error) {
	records := make([]*domain.ReservationRecord, 0)

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRecords - scan row: %v", ErrScanRow, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRecords - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// dateOnly обнуляет время, оставляя только дату - ключ календаря
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
