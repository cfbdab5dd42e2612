package check_conflict

import (
	"time"

	checkConflict "github.com/katiabooking/KB-BookingService/internal/usecase/check_conflict"
)

// CheckConflictRequest HTTP request model
type CheckConflictRequest struct {
	StartTime       string `json:"startTime"` // RFC 3339
	DurationMinutes int    `json:"durationMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckConflictRequest) ToUseCaseRequest(masterID int64) (checkConflict.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return checkConflict.Request{}, err
	}

	return checkConflict.Request{
		MasterID:        masterID,
		Start:           start,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

// ConflictInfo информация о пересекающейся записи
type ConflictInfo struct {
	RecordID  string `json:"recordId"`
	StartTime string `json:"startTime"` // RFC 3339
	EndTime   string `json:"endTime"`   // RFC 3339
	Status    string `json:"status"`
}

// CheckConflictResponse HTTP response model
type CheckConflictResponse struct {
	Available           bool          `json:"available"`
	OutsideWorkingHours bool          `json:"outsideWorkingHours,omitempty"`
	Conflict            *ConflictInfo `json:"conflict,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkConflict.Response) *CheckConflictResponse {
	out := &CheckConflictResponse{
		Available:           resp.Available,
		OutsideWorkingHours: resp.OutsideWorkingHours,
	}

	if resp.Conflict != nil {
		out.Conflict = &ConflictInfo{
			RecordID:  resp.Conflict.ID,
			StartTime: resp.Conflict.Interval.Start.Format(time.RFC3339),
			EndTime:   resp.Conflict.Interval.End.Format(time.RFC3339),
			Status:    string(resp.Conflict.Status),
		}
	}

	return out
}
