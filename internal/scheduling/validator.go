package scheduling

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request кандидат в приёмы в местном времени бизнеса
type Request struct {
	StartLocal       civil.DateTime
	DurationMinutes  int
	DepositConfirmed bool
	// ExcludeID пропускает существующий приём, используется при его переносе
	ExcludeID uuid.UUID
}

// Decision результат Validate.
// Принятое решение содержит абсолютные StartAt/EndAt, отклонённое содержит Rejection
type Decision struct {
	Accepted  bool
	StartAt   time.Time
	EndAt     time.Time
	Rejection *Rejection
}

// Err возвращает nil для принятого решения, иначе *RejectionError
func (d Decision) Err() error {
	if d.Accepted {
		return nil
	}
	return d.Rejection.Err()
}

// Reason возвращает вид отказа, пустой для принятого решения
func (d Decision) Reason() ErrorKind {
	if d.Rejection == nil {
		return ""
	}
	return d.Rejection.Reason
}

func reject(kind ErrorKind) Decision {
	return Decision{Rejection: newRejection(kind)}
}

// Validate проверяет кандидата по расписанию, правилам бизнеса и уже
// записанным приёмам. Проверки идут в фиксированном порядке, решает первая
// проваленная: горизонт, часы работы, пересечение с буфером, дневной лимит,
// депозит. existing должен покрывать как минимум местный день кандидата плюс
// буфер с обеих сторон. Отменённые приёмы и приёмы других бизнесов
// (BusinessID != rules.BusinessID) не учитываются
func Validate(req Request, rules domain.BookingRules, schedule domain.WeeklySchedule, existing []domain.Appointment, now time.Time) Decision {
	if !req.StartLocal.IsValid() {
		return reject(KindInvalidTimeFormat)
	}
	if req.DurationMinutes <= 0 {
		return Decision{Rejection: &Rejection{
			Reason:  KindInvalidTimeFormat,
			Message: fmt.Sprintf("%s: duración %d", KindInvalidTimeFormat.Message(), req.DurationMinutes),
		}}
	}

	conv := NewConverter(rules.TimezoneOffsetMinutes)
	startAt := conv.ToAbsolute(req.StartLocal)
	endAt := startAt.Add(time.Duration(req.DurationMinutes) * time.Minute)

	// 1. Горизонт бронирования
	if !withinBookingWindow(conv, req.StartLocal.Date, startAt, now, rules.BookingWindowDays) {
		return reject(KindOutOfBookingWindow)
	}

	// 2. Рабочие часы
	if !fitsSingleInterval(schedule, req.StartLocal, conv.ToLocal(endAt)) {
		return reject(KindOutsideBusinessHours)
	}

	// 3. Пересечение с буфером
	buffer := rules.Buffer()
	for i := range existing {
		a := &existing[i]
		if !counts(a, rules.BusinessID, req.ExcludeID) {
			continue
		}
		if overlapsWithBuffer(startAt, endAt, a.StartAt, a.EndAt, buffer) {
			return reject(KindSlotConflict)
		}
	}

	// 4. Лимит приёмов в день
	if rules.HasDailyLimit() {
		if countOnLocalDate(conv, req.StartLocal.Date, existing, rules.BusinessID, req.ExcludeID) >= rules.MaxDailyAppointments {
			return reject(KindDailyCapacityExceeded)
		}
	}

	// 5. Депозит
	if rules.DepositRequired && !req.DepositConfirmed {
		return reject(KindDepositRequired)
	}

	return Decision{Accepted: true, StartAt: startAt, EndAt: endAt}
}

// withinBookingWindow принимает начало не в прошлом и не позже чем через windowDays
// местных календарных дней после сегодняшнего
func withinBookingWindow(conv Converter, startDate civil.Date, startAt, now time.Time, windowDays int) bool {
	if startAt.Before(now) {
		return false
	}
	return startDate.DaysSince(conv.LocalDate(now)) <= windowDays
}

// overlapsWithBuffer проверяет, пересекается ли [aStart-buf, aEnd+buf) с [bStart, bEnd).
// Расширение любой из сторон на буфер дает тот же результат, одна проверка покрывает оба направления
func overlapsWithBuffer(aStart, aEnd, bStart, bEnd time.Time, buffer time.Duration) bool {
	return aStart.Add(-buffer).Before(bEnd) && bStart.Before(aEnd.Add(buffer))
}

func countOnLocalDate(conv Converter, date civil.Date, existing []domain.Appointment, businessID int64, exclude uuid.UUID) int {
	n := 0
	for i := range existing {
		a := &existing[i]
		if counts(a, businessID, exclude) && conv.LocalDate(a.StartAt) == date {
			n++
		}
	}
	return n
}

func counts(a *domain.Appointment, businessID int64, exclude uuid.UUID) bool {
	if a.BusinessID != businessID || !a.OccupiesSlot() {
		return false
	}
	return exclude == uuid.Nil || a.ID != exclude
}

// NeighbourRange возвращает абсолютный диапазон, приёмы из которого влияют на
// запись на местную дату: весь местный день, расширенный на буфер
func NeighbourRange(date civil.Date, rules domain.BookingRules) (time.Time, time.Time) {
	from, to := NewConverter(rules.TimezoneOffsetMinutes).DayRange(date)
	buffer := rules.Buffer()
	return from.Add(-buffer), to.Add(buffer)
}
