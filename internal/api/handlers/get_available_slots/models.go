package get_available_slots

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// SlotResponse свободный слот
type SlotResponse struct {
	StartTime       string    `json:"startTime"`  // HH:MM во времени бизнеса
	StartLocal      string    `json:"startLocal"` // "2024-01-08T10:00"
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	DurationMinutes int       `json:"durationMinutes"`
}

// AvailableSlotsResponse ответ со свободными слотами на дату
type AvailableSlotsResponse struct {
	BusinessID            int64          `json:"businessId"`
	Date                  string         `json:"date"`
	DurationMinutes       int            `json:"durationMinutes"`
	TimezoneOffsetMinutes int            `json:"timezoneOffsetMinutes"`
	Slots                 []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос use case из query параметров
func ToUseCaseRequest(businessID int64, date, duration string) (*getAvailableSlots.Request, error) {
	minutes, err := strconv.Atoi(duration)
	if err != nil {
		return nil, fmt.Errorf("duration: %w", err)
	}

	return &getAvailableSlots.Request{
		BusinessID:      businessID,
		Date:            date,
		DurationMinutes: minutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в DTO
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	conv := scheduling.NewConverter(resp.TimezoneOffsetMinutes)

	result := &AvailableSlotsResponse{
		BusinessID:            resp.BusinessID,
		Date:                  resp.Date.String(),
		DurationMinutes:       resp.DurationMinutes,
		TimezoneOffsetMinutes: resp.TimezoneOffsetMinutes,
		Slots:                 make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			StartTime:       s.StartTime.String(),
			StartLocal:      scheduling.FormatLocalDateTime(conv.ToLocal(s.StartAt)),
			StartAt:         s.StartAt.UTC(),
			EndAt:           s.EndAt.UTC(),
			DurationMinutes: s.DurationMinutes,
		})
	}

	return result
}
