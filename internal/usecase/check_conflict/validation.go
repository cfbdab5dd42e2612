package check_conflict

import (
	"fmt"

	"github.com/katiabooking/KB-BookingService/internal/domain"
)

func validateRequest(req Request) error {
	if req.MasterID <= 0 {
		return fmt.Errorf("%w: master_id must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	return nil
}
