package suggest_alternatives

import (
	"time"

	suggestAlternatives "github.com/katiabooking/KB-BookingService/internal/usecase/suggest_alternatives"
)

// SuggestAlternativesRequest HTTP request model
type SuggestAlternativesRequest struct {
	SalonID         int64  `json:"salonId"`
	StartTime       string `json:"startTime"` // RFC 3339
	DurationMinutes int    `json:"durationMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SuggestAlternativesRequest) ToUseCaseRequest(masterID int64) (suggestAlternatives.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return suggestAlternatives.Request{}, err
	}

	return suggestAlternatives.Request{
		MasterID:        masterID,
		SalonID:         r.SalonID,
		Start:           start,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

// AlternativeSlot слот того же мастера рядом с запрошенным временем
type AlternativeSlot struct {
	StartTime       string `json:"startTime"` // RFC 3339
	DurationMinutes int    `json:"durationMinutes"`
}

// AlternativeMaster другой мастер, свободный в запрошенное время
type AlternativeMaster struct {
	MasterID  int64  `json:"masterId"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
}

// SuggestAlternativesResponse HTTP response model
type SuggestAlternativesResponse struct {
	SameMaster []AlternativeSlot   `json:"sameMaster"`
	SameTime   []AlternativeMaster `json:"sameTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *suggestAlternatives.Response) *SuggestAlternativesResponse {
	out := &SuggestAlternativesResponse{
		SameMaster: make([]AlternativeSlot, len(resp.SameMaster)),
		SameTime:   make([]AlternativeMaster, len(resp.SameTime)),
	}

	for i, slot := range resp.SameMaster {
		out.SameMaster[i] = AlternativeSlot{
			StartTime:       slot.Start.Format(time.RFC3339),
			DurationMinutes: slot.DurationMinutes,
		}
	}

	for i, m := range resp.SameTime {
		out.SameTime[i] = AlternativeMaster{
			MasterID:  m.MasterID,
			Name:      m.Name,
			Specialty: m.Specialty,
		}
	}

	return out
}
