package get_salon_reservations

import (
	"context"

	"github.com/katiabooking/KB-BookingService/internal/service/reservations/models"
)

type ReservationsService interface {
	GetSalonReservations(ctx context.Context, req *models.GetSalonReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
