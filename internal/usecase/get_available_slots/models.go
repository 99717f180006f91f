package get_available_slots

import (
	"cloud.google.com/go/civil"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID      int64  // ID бизнеса
	Date            string // Локальная дата бизнеса, "2024-01-08"
	DurationMinutes int    // Длительность приёма в минутах
}

// Response модель ответа со списком доступных слотов
type Response struct {
	BusinessID            int64
	Date                  civil.Date
	DurationMinutes       int
	TimezoneOffsetMinutes int
	Slots                 []domain.AvailableSlot // по возрастанию времени начала
}
