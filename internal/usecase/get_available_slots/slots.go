package get_available_slots

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
)

// generateCandidates перебирает начала слотов внутри каждого рабочего интервала дня
// Шаг равен stepMinutes, а если он не задан, длительности приёма.
// Слот попадает в список, только если целиком помещается в интервал
func generateCandidates(date civil.Date, intervals []domain.TimeRange, durationMinutes, stepMinutes int) []civil.DateTime {
	if stepMinutes <= 0 {
		stepMinutes = durationMinutes
	}

	candidates := make([]civil.DateTime, 0)
	for _, interval := range intervals {
		end := interval.End.Minutes()
		for start := interval.Start.Minutes(); start+durationMinutes <= end; start += stepMinutes {
			candidates = append(candidates, civil.DateTime{
				Date: date,
				Time: civil.Time{Hour: start / 60, Minute: start % 60},
			})
		}
	}
	return candidates
}

// filterAvailable оставляет кандидатов, которые принял бы валидатор
// Депозит не проверяется: клиент оплачивает его уже при записи
func filterAvailable(
	candidates []civil.DateTime,
	durationMinutes int,
	settings *domain.BusinessSettings,
	existing []domain.Appointment,
	now time.Time,
) []domain.AvailableSlot {
	slots := make([]domain.AvailableSlot, 0, len(candidates))
	for _, candidate := range candidates {
		decision := scheduling.Validate(scheduling.Request{
			StartLocal:       candidate,
			DurationMinutes:  durationMinutes,
			DepositConfirmed: true,
		}, settings.Rules, settings.Schedule, existing, now)
		if !decision.Accepted {
			continue
		}

		slots = append(slots, domain.AvailableSlot{
			Date:            candidate.Date,
			StartTime:       timeString(candidate.Time),
			DurationMinutes: durationMinutes,
			StartAt:         decision.StartAt,
			EndAt:           decision.EndAt,
		})
	}
	return slots
}
