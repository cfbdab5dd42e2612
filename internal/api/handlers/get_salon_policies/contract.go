package get_salon_policies

import (
	"context"

	"github.com/katiabooking/KB-BookingService/internal/service/policy/models"
)

type PolicyService interface {
	GetAllBySalon(ctx context.Context, salonID int64, userID int64) (*models.PolicyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
