package scheduling

import (
	"math/rand"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// 2024-01-01 is a Monday
var jan1 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func localAt(year int, month time.Month, day, hour, minute int) civil.DateTime {
	return civil.DateTime{
		Date: civil.Date{Year: year, Month: month, Day: day},
		Time: civil.Time{Hour: hour, Minute: minute},
	}
}

func appointmentAt(start time.Time, minutes int) domain.Appointment {
	return domain.Appointment{
		ID:         uuid.New(),
		BusinessID: 1,
		StartAt:    start,
		EndAt:      start.Add(time.Duration(minutes) * time.Minute),
		Status:     domain.StatusConfirmed,
	}
}

func baseRules() domain.BookingRules {
	return domain.BookingRules{
		BusinessID:        1,
		BookingWindowDays: 30,
	}
}

func TestValidate_BufferScenario(t *testing.T) {
	schedule := mustSchedule(t, openDay(domain.Monday, "09:00", "13:00"))
	rules := baseRules()
	rules.BufferMinutes = 10
	existing := []domain.Appointment{
		appointmentAt(time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC), 30),
	}

	rejected := Validate(Request{StartLocal: localAt(2024, time.January, 8, 10, 25), DurationMinutes: 30}, rules, schedule, existing, jan1)
	assert.False(t, rejected.Accepted)
	assert.Equal(t, KindSlotConflict, rejected.Reason())
	assert.Equal(t, "Ese horario ya no está disponible", rejected.Rejection.Message)
	assert.ErrorIs(t, rejected.Err(), ErrSlotConflict)

	accepted := Validate(Request{StartLocal: localAt(2024, time.January, 8, 10, 40), DurationMinutes: 30}, rules, schedule, existing, jan1)
	require.True(t, accepted.Accepted)
	assert.NoError(t, accepted.Err())
	assert.Equal(t, time.Date(2024, time.January, 8, 10, 40, 0, 0, time.UTC), accepted.StartAt)
	assert.Equal(t, time.Date(2024, time.January, 8, 11, 10, 0, 0, time.UTC), accepted.EndAt)

	// Ending inside the buffer before an existing appointment is also a conflict
	before := Validate(Request{StartLocal: localAt(2024, time.January, 8, 9, 25), DurationMinutes: 30}, rules, schedule, existing, jan1)
	assert.Equal(t, KindSlotConflict, before.Reason())

	exactlyBuffered := Validate(Request{StartLocal: localAt(2024, time.January, 8, 9, 20), DurationMinutes: 30}, rules, schedule, existing, jan1)
	assert.True(t, exactlyBuffered.Accepted)
}

func TestValidate_HorizonScenario(t *testing.T) {
	schedule := mustSchedule(t,
		openDay(domain.Monday, "09:00", "18:00"),
		openDay(domain.Tuesday, "09:00", "18:00"),
	)
	rules := baseRules()
	rules.BookingWindowDays = 7

	// 2024-01-09 is a Tuesday, 8 days ahead
	outside := Validate(Request{StartLocal: localAt(2024, time.January, 9, 10, 0), DurationMinutes: 30}, rules, schedule, nil, jan1)
	assert.Equal(t, KindOutOfBookingWindow, outside.Reason())
	assert.ErrorIs(t, outside.Err(), ErrOutOfBookingWindow)

	// 2024-01-08 is a Monday, 7 days ahead
	inside := Validate(Request{StartLocal: localAt(2024, time.January, 8, 10, 0), DurationMinutes: 30}, rules, schedule, nil, jan1)
	assert.True(t, inside.Accepted)
}

func TestValidate_HorizonUsesBusinessLocalToday(t *testing.T) {
	schedule := mustSchedule(t, openDay(domain.Tuesday, "09:00", "18:00"))
	rules := baseRules()
	rules.BookingWindowDays = 0
	rules.TimezoneOffsetMinutes = -300

	// 2024-01-02 03:00 UTC is still Monday 22:00 locally, so Tuesday is one day ahead
	now := time.Date(2024, time.January, 2, 3, 0, 0, 0, time.UTC)
	d := Validate(Request{StartLocal: localAt(2024, time.January, 2, 10, 0), DurationMinutes: 30}, rules, schedule, nil, now)
	assert.Equal(t, KindOutOfBookingWindow, d.Reason())

	rules.BookingWindowDays = 1
	d = Validate(Request{StartLocal: localAt(2024, time.January, 2, 10, 0), DurationMinutes: 30}, rules, schedule, nil, now)
	assert.True(t, d.Accepted)
}

func TestValidate_PastStartIsOutOfWindow(t *testing.T) {
	schedule := mustSchedule(t, openDay(domain.Monday, "09:00", "18:00"))
	now := time.Date(2024, time.January, 8, 12, 0, 0, 0, time.UTC)

	d := Validate(Request{StartLocal: localAt(2024, time.January, 8, 10, 0), DurationMinutes: 30}, baseRules(), schedule, nil, now)
	assert.Equal(t, KindOutOfBookingWindow, d.Reason())
}

func TestValidate_OpenHours(t *testing.T) {
	schedule := mustSchedule(t, splitDay(domain.Monday, "09:00", "13:00", "15:00", "19:00"))
	rules := baseRules()

	tests := []struct {
		name     string
		start    civil.DateTime
		duration int
		accepted bool
	}{
		{name: "fits first interval", start: localAt(2024, time.January, 8, 9, 0), duration: 60, accepted: true},
		{name: "ends exactly at close", start: localAt(2024, time.January, 8, 12, 30), duration: 30, accepted: true},
		{name: "runs past close", start: localAt(2024, time.January, 8, 12, 45), duration: 30},
		{name: "spans the lunch gap", start: localAt(2024, time.January, 8, 12, 30), duration: 180},
		{name: "starts before open", start: localAt(2024, time.January, 8, 8, 45), duration: 30},
		{name: "fits second interval", start: localAt(2024, time.January, 8, 15, 0), duration: 240, accepted: true},
		{name: "closed day", start: localAt(2024, time.January, 7, 10, 0), duration: 30},
		{name: "crosses midnight", start: localAt(2024, time.January, 8, 23, 30), duration: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Validate(Request{StartLocal: tt.start, DurationMinutes: tt.duration}, rules, schedule, nil, jan1)
			if tt.accepted {
				assert.True(t, d.Accepted)
				return
			}
			assert.Equal(t, KindOutsideBusinessHours, d.Reason())
		})
	}
}

func TestValidate_ClosedDayRejectedForEveryTime(t *testing.T) {
	schedule := domain.NewClosedWeek()
	for hour := 0; hour < 24; hour++ {
		d := Validate(Request{StartLocal: localAt(2024, time.January, 10, hour, 0), DurationMinutes: 15}, baseRules(), schedule, nil, jan1)
		assert.Equal(t, KindOutsideBusinessHours, d.Reason(), "hour %d", hour)
	}
}

func TestValidate_OpenHoursWithOffset(t *testing.T) {
	schedule := mustSchedule(t, openDay(domain.Monday, "09:00", "13:00"))
	rules := baseRules()
	rules.TimezoneOffsetMinutes = -300

	d := Validate(Request{StartLocal: localAt(2024, time.January, 8, 9, 0), DurationMinutes: 30}, rules, schedule, nil, jan1)
	require.True(t, d.Accepted)
	assert.Equal(t, time.Date(2024, time.January, 8, 14, 0, 0, 0, time.UTC), d.StartAt)
}

func TestValidate_CapacityBoundary(t *testing.T) {
	schedule := mustSchedule(t, openDay(domain.Monday, "08:00", "20:00"))
	rules := baseRules()
	rules.MaxDailyAppointments = 3

	var existing []domain.Appointment
	for i := 0; i < rules.MaxDailyAppointments; i++ {
		d := Validate(Request{StartLocal: localAt(2024, time.January, 8, 9+i, 0), DurationMinutes: 30}, rules, schedule, existing, jan1)
		require.True(t, d.Accepted, "booking %d", i+1)
		existing = append(existing, appointmentAt(d.StartAt, 30))
	}

	d := Validate(Request{StartLocal: localAt(2024, time.January, 8, 15, 0), DurationMinutes: 30}, rules, schedule, existing, jan1)
	assert.Equal(t, KindDailyCapacityExceeded, d.Reason())

	// Cancelled appointments free capacity
	existing[0].Status = domain.StatusCancelled
	d = Validate(Request{StartLocal: localAt(2024, time.January, 8, 15, 0), DurationMinutes: 30}, rules, schedule, existing, jan1)
	assert.True(t, d.Accepted)
}

func TestValidate_CapacityCountsLocalDay(t *testing.T) {
	schedule := mustSchedule(t, openDay(domain.Monday, "08:00", "20:00"))
	rules := baseRules()
	rules.MaxDailyAppointments = 1
	rules.TimezoneOffsetMinutes = 180

	// Sunday 23:00 local, stored as 20:00 UTC Sunday: another local day
	existing := []domain.Appointment{appointmentAt(time.Date(2024, time.January, 7, 20, 0, 0, 0, time.UTC), 30)}

	d := Validate(Request{StartLocal: localAt(2024, time.January, 8, 9, 0), DurationMinutes: 30}, rules, schedule, existing, jan1)
	assert.True(t, d.Accepted)
}

func TestValidate_DepositScenario(t *testing.T) {
	schedule := mustSchedule(t, openDay(domain.Monday, "09:00", "13:00"))
	rules := baseRules()
	rules.DepositRequired = true
	rules.DepositAmountCents = 20000

	d := Validate(Request{StartLocal: localAt(2024, time.January, 8, 10, 0), DurationMinutes: 30}, rules, schedule, nil, jan1)
	assert.Equal(t, KindDepositRequired, d.Reason())
	assert.ErrorIs(t, d.Err(), ErrDepositRequired)

	d = Validate(Request{StartLocal: localAt(2024, time.January, 8, 10, 0), DurationMinutes: 30, DepositConfirmed: true}, rules, schedule, nil, jan1)
	assert.True(t, d.Accepted)
}

func TestValidate_EvaluationOrder(t *testing.T) {
	schedule := mustSchedule(t, openDay(domain.Monday, "09:00", "13:00"))
	rules := baseRules()
	rules.BufferMinutes = 10
	rules.MaxDailyAppointments = 1
	rules.DepositRequired = true
	rules.DepositAmountCents = 100
	existing := []domain.Appointment{appointmentAt(time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC), 30)}

	// Conflicts, exceeds capacity and lacks deposit: the conflict wins
	d := Validate(Request{StartLocal: localAt(2024, time.January, 8, 10, 15), DurationMinutes: 30}, rules, schedule, existing, jan1)
	assert.Equal(t, KindSlotConflict, d.Reason())

	// No conflict but over capacity and no deposit: capacity wins
	d = Validate(Request{StartLocal: localAt(2024, time.January, 8, 12, 0), DurationMinutes: 30}, rules, schedule, existing, jan1)
	assert.Equal(t, KindDailyCapacityExceeded, d.Reason())

	// Outside hours and beyond the window: the window wins
	rules.BookingWindowDays = 1
	d = Validate(Request{StartLocal: localAt(2024, time.January, 8, 20, 0), DurationMinutes: 30}, rules, schedule, existing, jan1)
	assert.Equal(t, KindOutOfBookingWindow, d.Reason())
}

func TestValidate_ExcludeIDForReschedule(t *testing.T) {
	schedule := mustSchedule(t, openDay(domain.Monday, "09:00", "13:00"))
	rules := baseRules()
	rules.BufferMinutes = 10
	rules.MaxDailyAppointments = 1
	own := appointmentAt(time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC), 30)

	d := Validate(Request{StartLocal: localAt(2024, time.January, 8, 10, 15), DurationMinutes: 30, ExcludeID: own.ID}, rules, schedule, []domain.Appointment{own}, jan1)
	assert.True(t, d.Accepted)
}

func TestValidate_IgnoresOtherBusinesses(t *testing.T) {
	schedule := mustSchedule(t, openDay(domain.Monday, "09:00", "13:00"))
	rules := baseRules()
	rules.MaxDailyAppointments = 1

	foreign := appointmentAt(time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC), 30)
	foreign.BusinessID = 2

	d := Validate(Request{StartLocal: localAt(2024, time.January, 8, 10, 0), DurationMinutes: 30}, rules, schedule, []domain.Appointment{foreign}, jan1)
	require.True(t, d.Accepted, "reason=%s", d.Reason())

	// The same appointment under the business's own ID blocks the slot
	own := foreign
	own.BusinessID = rules.BusinessID
	d = Validate(Request{StartLocal: localAt(2024, time.January, 8, 10, 0), DurationMinutes: 30}, rules, schedule, []domain.Appointment{own}, jan1)
	assert.Equal(t, KindSlotConflict, d.Reason())

	// Nor does the other business use up the daily capacity
	d = Validate(Request{StartLocal: localAt(2024, time.January, 8, 12, 0), DurationMinutes: 30}, rules, schedule, []domain.Appointment{foreign}, jan1)
	assert.True(t, d.Accepted)
}

func TestValidate_InvalidInput(t *testing.T) {
	schedule := mustSchedule(t, openDay(domain.Monday, "09:00", "13:00"))

	d := Validate(Request{StartLocal: localAt(2024, time.February, 30, 10, 0), DurationMinutes: 30}, baseRules(), schedule, nil, jan1)
	assert.Equal(t, KindInvalidTimeFormat, d.Reason())

	d = Validate(Request{StartLocal: localAt(2024, time.January, 8, 10, 0), DurationMinutes: 0}, baseRules(), schedule, nil, jan1)
	assert.Equal(t, KindInvalidTimeFormat, d.Reason())
	assert.ErrorIs(t, d.Err(), ErrInvalidTimeFormat)
}

func TestValidate_NoDoubleBooking(t *testing.T) {
	schedule := mustSchedule(t,
		splitDay(domain.Monday, "08:00", "12:00", "13:00", "18:00"),
		openDay(domain.Tuesday, "09:00", "17:00"),
	)
	rules := baseRules()
	rules.BufferMinutes = 5
	rng := rand.New(rand.NewSource(42))

	var accepted []domain.Appointment
	for i := 0; i < 500; i++ {
		req := Request{
			StartLocal:      localAt(2024, time.January, 8+rng.Intn(2), 7+rng.Intn(11), rng.Intn(12)*5),
			DurationMinutes: 15 + rng.Intn(6)*15,
		}
		d := Validate(req, rules, schedule, accepted, jan1)
		if d.Accepted {
			accepted = append(accepted, appointmentAt(d.StartAt, req.DurationMinutes))
		}
	}

	require.NotEmpty(t, accepted)
	for i := range accepted {
		for j := i + 1; j < len(accepted); j++ {
			a, b := accepted[i], accepted[j]
			assert.False(t, overlapsWithBuffer(a.StartAt, a.EndAt, b.StartAt, b.EndAt, rules.Buffer()),
				"%s-%s overlaps %s-%s", a.StartAt, a.EndAt, b.StartAt, b.EndAt)
			assert.True(t, IsOpenAt(schedule, a.StartAt, 0))
		}
	}
}

func TestNeighbourRange(t *testing.T) {
	rules := baseRules()
	rules.BufferMinutes = 15
	rules.TimezoneOffsetMinutes = 60

	from, to := NeighbourRange(civil.Date{Year: 2024, Month: time.January, Day: 8}, rules)

	assert.Equal(t, time.Date(2024, time.January, 7, 22, 45, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, time.January, 8, 23, 15, 0, 0, time.UTC), to)
}
