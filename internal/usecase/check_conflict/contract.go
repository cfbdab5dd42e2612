package check_conflict

import (
	"context"
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	"github.com/katiabooking/KB-BookingService/internal/integrations/staffservice"
)

// CalendarStore интерфейс хранилища календарей
type CalendarStore interface {
	Get(ctx context.Context, masterID int64, date time.Time) ([]*domain.ReservationRecord, error)
}

// StaffServiceClient интерфейс клиента StaffService
type StaffServiceClient interface {
	GetMaster(ctx context.Context, masterID int64) (*staffservice.Master, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
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
