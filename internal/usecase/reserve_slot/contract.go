package reserve_slot

import (
	"context"
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	"github.com/katiabooking/KB-BookingService/internal/integrations/staffservice"
)

// CalendarStore интерфейс хранилища календарей.
// Update обязан выполнять fn атомарно относительно других записей
// в тот же календарь (masterID, date).
type CalendarStore interface {
	Update(
		ctx context.Context,
		masterID int64,
		date time.Time,
		fn func(recs []*domain.ReservationRecord) ([]*domain.ReservationRecord, error),
	) error
}

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	GetWithHierarchy(ctx context.Context, salonID int64, masterID *int64) (*domain.BookingPolicy, error)
}

// StaffServiceClient интерфейс клиента StaffService
type StaffServiceClient interface {
	GetMaster(ctx context.Context, masterID int64) (*staffservice.Master, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// IDGenerator интерфейс генерации идентификаторов записей
type IDGenerator interface {
	NewID() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
