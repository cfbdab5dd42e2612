package delete_salon_policy

import "context"

type PolicyService interface {
	Delete(ctx context.Context, salonID int64, masterID *int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
