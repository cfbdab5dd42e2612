// Package calendarredis redis-реализация календаря мастера.
//
// Календарь пары (master_id, date) хранится одним JSON-значением под ключом
// calendar:{master_id}:{date}. Запись идет через оптимистичный check-and-set:
// WATCH ключа, чтение, применение fn, MULTI SET; при конкурентном изменении
// транзакция отклоняется и цикл повторяется.
package calendarredis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	storage "github.com/katiabooking/KB-BookingService/internal/infra/storage/calendar"
)

// maxRetries максимум попыток CAS-цикла до ErrConflictRetry
const maxRetries = 16

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Store хранилище календарей поверх redis
type Store struct {
	client       *redis.Client
	timeProvider TimeProvider
}

// NewStore создает новое хранилище
func NewStore(client *redis.Client) *Store {
	return &Store{
		client:       client,
		timeProvider: realTimeProvider{},
	}
}

// NewStoreWithTimeProvider создает хранилище с инжектируемыми часами
func NewStoreWithTimeProvider(client *redis.Client, tp TimeProvider) *Store {
	s := NewStore(client)
	s.timeProvider = tp
	return s
}

// Get возвращает снапшот календаря без истекших холдов
func (s *Store) Get(ctx context.Context, masterID int64, date time.Time) ([]*domain.ReservationRecord, error) {
	records, err := s.load(ctx, s.client, masterID, date)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	alive := make([]*domain.ReservationRecord, 0, len(records))
	for _, rec := range records {
		if rec.IsExpiredHold(now) {
			continue
		}
		alive = append(alive, rec)
	}

	return alive, nil
}

// Append добавляет запись через CAS-цикл
func (s *Store) Append(ctx context.Context, masterID int64, date time.Time, rec *domain.ReservationRecord) error {
	return s.Update(ctx, masterID, date, func(recs []*domain.ReservationRecord) ([]*domain.ReservationRecord, error) {
		return append(recs, rec), nil
	})
}

// Replace атомарно заменяет весь календарь
func (s *Store) Replace(ctx context.Context, masterID int64, date time.Time, recs []*domain.ReservationRecord) error {
	payload, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("%w: Replace - marshal calendar: %v", ErrStorage, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key(masterID, date), payload, 0)
		for _, rec := range recs {
			pipe.Set(ctx, recordKey(rec.ID), key(masterID, date), 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: Replace - set: %v", ErrStorage, err)
	}

	return nil
}

// Update выполняет оптимистичный check-and-set над календарем.
// fn получает текущее состояние без истекших холдов (ленивый sweep +
// физическая компакция) и возвращает полное новое состояние
func (s *Store) Update(
	ctx context.Context,
	masterID int64,
	date time.Time,
	fn func(recs []*domain.ReservationRecord) ([]*domain.ReservationRecord, error),
) error {
	calendarKey := key(masterID, date)

	txf := func(tx *redis.Tx) error {
		records, err := s.load(ctx, tx, masterID, date)
		if err != nil {
			return err
		}

		now := s.timeProvider.Now()
		current := make([]*domain.ReservationRecord, 0, len(records))
		for _, rec := range records {
			if rec.IsExpiredHold(now) {
				continue
			}
			current = append(current, rec)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		for _, rec := range next {
			rec.UpdatedAt = now
			if rec.CreatedAt.IsZero() {
				rec.CreatedAt = now
			}
		}

		payload, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("%w: Update - marshal calendar: %v", ErrStorage, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, calendarKey, payload, 0)
			for _, rec := range next {
				pipe.Set(ctx, recordKey(rec.ID), calendarKey, 0)
			}
			return nil
		})
		return err
	}

	for i := 0; i < maxRetries; i++ {
		err := s.client.Watch(ctx, txf, calendarKey)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// Конкурентное изменение ключа - повторяем цикл
			continue
		}
		return err
	}

	return ErrConflictRetry
}

// GetByID ищет запись по идентификатору через обратный индекс
// calendar:record:{id} -> ключ календаря
func (s *Store) GetByID(ctx context.Context, id string) (*domain.ReservationRecord, error) {
	calendarKey, err := s.client.Get(ctx, recordKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - get index: %v", ErrStorage, err)
	}

	payload, err := s.client.Get(ctx, calendarKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - get calendar: %v", ErrStorage, err)
	}

	var records []*domain.ReservationRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}

	// Индекс пережил саму запись (например после Replace)
	return nil, storage.ErrRecordNotFound
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *Store) load(ctx context.Context, client getter, masterID int64, date time.Time) ([]*domain.ReservationRecord, error) {
	payload, err := client.Get(ctx, key(masterID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []*domain.ReservationRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load - get: %v", ErrStorage, err)
	}

	var records []*domain.ReservationRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return records, nil
}

func key(masterID int64, date time.Time) string {
	return fmt.Sprintf("calendar:%d:%s", masterID, date.Format(domain.DateFormat))
}

func recordKey(id string) string {
	return fmt.Sprintf("calendar:record:%s", id)
}
