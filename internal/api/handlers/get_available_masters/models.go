package get_available_masters

import (
	"time"

	getAvailableMasters "github.com/katiabooking/KB-BookingService/internal/usecase/get_available_masters"
)

// AvailableMastersResponse HTTP response model
type AvailableMastersResponse struct {
	SalonID int64             `json:"salonId"`
	Masters []AvailableMaster `json:"masters"`
}

// AvailableMaster модель свободного мастера
type AvailableMaster struct {
	MasterID  int64  `json:"masterId"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableMasters.Response) *AvailableMastersResponse {
	masters := make([]AvailableMaster, len(resp.Masters))
	for i, m := range resp.Masters {
		masters[i] = AvailableMaster{
			MasterID:  m.MasterID,
			Name:      m.Name,
			Specialty: m.Specialty,
		}
	}

	return &AvailableMastersResponse{
		SalonID: resp.SalonID,
		Masters: masters,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(salonID int64, startTimeStr string, durationMinutes int) (getAvailableMasters.Request, error) {
	start, err := time.Parse(time.RFC3339, startTimeStr)
	if err != nil {
		return getAvailableMasters.Request{}, err
	}

	return getAvailableMasters.Request{
		SalonID:         salonID,
		Start:           start,
		DurationMinutes: durationMinutes,
	}, nil
}
