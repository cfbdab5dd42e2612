package policy

import (
	"context"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	"github.com/katiabooking/KB-BookingService/internal/integrations/staffservice"
)

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	GetBySalonAndMaster(ctx context.Context, salonID int64, masterID *int64) (*domain.BookingPolicy, error)
	GetWithHierarchy(ctx context.Context, salonID int64, masterID *int64) (*domain.BookingPolicy, error)
	GetAllBySalon(ctx context.Context, salonID int64) ([]*domain.BookingPolicy, error)
	Upsert(ctx context.Context, p *domain.BookingPolicy) (*domain.BookingPolicy, error)
	Delete(ctx context.Context, salonID int64, masterID *int64) error
}

// StaffServiceClient интерфейс клиента StaffService
type StaffServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*staffservice.Salon, error)
	GetMaster(ctx context.Context, masterID int64) (*staffservice.Master, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
