package reserve_slot

import (
	"fmt"

	"github.com/katiabooking/KB-BookingService/internal/domain"
)

func validateRequest(req Request) error {
	if req.MasterID <= 0 {
		return fmt.Errorf("%w: master_id must be positive", ErrInvalidInput)
	}

	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salon_id must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: client_id must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.Mode != ModeHold && req.Mode != ModeConfirm {
		return fmt.Errorf("%w: mode must be %q or %q", ErrInvalidInput, ModeHold, ModeConfirm)
	}

	if req.HoldTTLSeconds != nil {
		if req.Mode != ModeHold {
			return fmt.Errorf("%w: hold_ttl_seconds is only allowed in hold mode", ErrInvalidInput)
		}
		ttl := *req.HoldTTLSeconds
		if ttl < domain.MinHoldTTLSeconds || ttl > domain.MaxHoldTTLSeconds {
			return fmt.Errorf("%w: hold_ttl_seconds must be between %d and %d",
				ErrInvalidInput, domain.MinHoldTTLSeconds, domain.MaxHoldTTLSeconds)
		}
	}

	if req.DepositAmount < 0 {
		return fmt.Errorf("%w: deposit_amount must not be negative", ErrInvalidInput)
	}

	if len(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
