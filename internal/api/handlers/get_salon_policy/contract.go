package get_salon_policy

import (
	"context"

	"github.com/katiabooking/KB-BookingService/internal/service/policy/models"
)

type PolicyService interface {
	GetEffective(ctx context.Context, salonID int64, masterID *int64) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
