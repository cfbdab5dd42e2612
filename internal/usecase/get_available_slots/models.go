package get_available_slots

import (
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	MasterID        int64     // ID мастера
	Date            time.Time // Дата, на которую запрашиваются слоты (без времени)
	DurationMinutes int       // Длительность услуги в минутах
	StepMinutes     int       // Шаг сетки слотов; 0 = взять из политики
}

// Response модель ответа со списком доступных слотов
type Response struct {
	MasterID int64
	Date     time.Time
	Slots    []domain.TimeSlot // Свободные слоты в хронологическом порядке
}
