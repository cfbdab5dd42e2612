package reservations

import (
	"context"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	"github.com/katiabooking/KB-BookingService/internal/integrations/staffservice"
)

// ReservationRepository интерфейс репозитория записей календаря
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ReservationRecord, error)
	ListByClient(ctx context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.ReservationRecord, error)
	ListBySalon(ctx context.Context, filter domain.CalendarFilter) ([]*domain.ReservationRecord, error)
}

// StaffServiceClient интерфейс клиента StaffService
type StaffServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*staffservice.Salon, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
