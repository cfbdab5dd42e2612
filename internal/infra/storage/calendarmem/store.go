// Package calendarmem in-memory реализация календаря мастера.
//
// Используется в тестах и в single-node развертываниях без внешнего
// хранилища. Дисциплина конкурентности - мьютекс на ключ (master_id, date):
// календари разных мастеров и дат не блокируют друг друга.
package calendarmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	storage "github.com/katiabooking/KB-BookingService/internal/infra/storage/calendar"
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

type entry struct {
	mu      sync.Mutex
	records []*domain.ReservationRecord
}

// Store потокобезопасное in-memory хранилище календарей
type Store struct {
	mu           sync.Mutex
	calendars    map[string]*entry
	timeProvider TimeProvider
}

// NewStore создает новое хранилище
func NewStore() *Store {
	return &Store{
		calendars:    make(map[string]*entry),
		timeProvider: realTimeProvider{},
	}
}

// NewStoreWithTimeProvider создает хранилище с инжектируемыми часами
func NewStoreWithTimeProvider(tp TimeProvider) *Store {
	s := NewStore()
	s.timeProvider = tp
	return s
}

// Get возвращает снапшот календаря мастера на дату.
// Истекшие холды отфильтровываются из снапшота (ленивый sweep на чтении),
// физически они удаляются при следующем Update.
func (s *Store) Get(ctx context.Context, masterID int64, date time.Time) ([]*domain.ReservationRecord, error) {
	e := s.entryFor(masterID, date)
	now := s.timeProvider.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	snapshot := make([]*domain.ReservationRecord, 0, len(e.records))
	for _, rec := range e.records {
		if rec.IsExpiredHold(now) {
			continue
		}
		cp := *rec
		snapshot = append(snapshot, &cp)
	}

	return snapshot, nil
}

// Append добавляет запись без проверок уникальности
func (s *Store) Append(ctx context.Context, masterID int64, date time.Time, rec *domain.ReservationRecord) error {
	e := s.entryFor(masterID, date)

	e.mu.Lock()
	defer e.mu.Unlock()

	cp := *rec
	now := s.timeProvider.Now()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	rec.CreatedAt = now
	rec.UpdatedAt = now
	e.records = append(e.records, &cp)

	return nil
}

// Replace атомарно заменяет весь календарь
func (s *Store) Replace(ctx context.Context, masterID int64, date time.Time, recs []*domain.ReservationRecord) error {
	e := s.entryFor(masterID, date)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.records = copyRecords(recs)
	return nil
}

// Update выполняет check-and-set под мьютексом ключа: fn получает текущее
// состояние без истекших холдов и возвращает полное новое состояние.
// Ошибка fn оставляет календарь нетронутым.
func (s *Store) Update(
	ctx context.Context,
	masterID int64,
	date time.Time,
	fn func(recs []*domain.ReservationRecord) ([]*domain.ReservationRecord, error),
) error {
	e := s.entryFor(masterID, date)
	now := s.timeProvider.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Оппортунистическая компакция: истекшие холды не доживают до fn
	current := make([]*domain.ReservationRecord, 0, len(e.records))
	for _, rec := range e.records {
		if rec.IsExpiredHold(now) {
			continue
		}
		cp := *rec
		current = append(current, &cp)
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

	e.records = copyRecords(next)
	return nil
}

// GetByID ищет запись по идентификатору во всех календарях
func (s *Store) GetByID(ctx context.Context, id string) (*domain.ReservationRecord, error) {
	s.mu.Lock()
	entries := make([]*entry, 0, len(s.calendars))
	for _, e := range s.calendars {
		entries = append(entries, e)
	}
	s.mu.Unlock()

	for _, e := range entries {
		e.mu.Lock()
		for _, rec := range e.records {
			if rec.ID == id {
				cp := *rec
				e.mu.Unlock()
				return &cp, nil
			}
		}
		e.mu.Unlock()
	}

	return nil, storage.ErrRecordNotFound
}

func (s *Store) entryFor(masterID int64, date time.Time) *entry {
	key := fmt.Sprintf("%d:%s", masterID, date.Format(domain.DateFormat))

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.calendars[key]
	if !ok {
		e = &entry{}
		s.calendars[key] = e
	}
	return e
}

func copyRecords(recs []*domain.ReservationRecord) []*domain.ReservationRecord {
	out := make([]*domain.ReservationRecord, 0, len(recs))
	for _, rec := range recs {
		cp := *rec
		out = append(out, &cp)
	}
	return out
}
