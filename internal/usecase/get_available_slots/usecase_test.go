package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeRepo struct {
	items      []domain.Appointment
	lastFilter domain.AppointmentsFilter
	calls      int
}

func (f *fakeRepo) List(_ context.Context, filter domain.AppointmentsFilter) ([]domain.Appointment, error) {
	f.calls++
	f.lastFilter = filter
	return f.items, nil
}

type fakeSettings struct {
	settings domain.BusinessSettings
}

func (f *fakeSettings) GetBusinessSettings(_ context.Context, _ int64) (*domain.BusinessSettings, error) {
	s := f.settings
	return &s, nil
}

func tr(start, end string) *domain.TimeRange {
	return &domain.TimeRange{Start: types.TimeString(start), End: types.TimeString(end)}
}

func splitMonday() domain.BusinessSettings {
	schedule := domain.NewClosedWeek()
	schedule[domain.Monday] = domain.DayAvailability{
		Day:       domain.Monday,
		IsOpen:    true,
		Interval1: tr("09:00", "12:00"),
		Interval2: tr("14:00", "16:00"),
	}
	return domain.BusinessSettings{
		BusinessID: 1,
		Schedule:   schedule,
		Rules:      domain.BookingRules{BusinessID: 1, BookingWindowDays: 30},
	}
}

func newTestUseCase(settings domain.BusinessSettings, step int, items ...domain.Appointment) (*UseCase, *fakeRepo) {
	repo := &fakeRepo{items: items}
	uc := NewUseCase(repo, &fakeSettings{settings: settings}, step, logger.NewNop())
	// 2024-01-01 is a Monday
	uc.timeProvider = fixedTime{t: time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)}
	return uc, repo
}

func booked(startHour, startMinute, minutes int) domain.Appointment {
	start := time.Date(2024, time.January, 8, startHour, startMinute, 0, 0, time.UTC)
	return domain.Appointment{
		ID:         uuid.New(),
		BusinessID: 1,
		StartAt:    start,
		EndAt:      start.Add(time.Duration(minutes) * time.Minute),
		Status:     domain.StatusConfirmed,
	}
}

func startTimes(slots []domain.AvailableSlot) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.StartTime.String())
	}
	return result
}

func TestExecute_StepsByDuration(t *testing.T) {
	uc, repo := newTestUseCase(splitMonday(), 0, booked(10, 0, 30))

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: "2024-01-08", DurationMinutes: 60})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "11:00", "14:00", "15:00"}, startTimes(resp.Slots))
	assert.Equal(t, 1, repo.calls)

	first := resp.Slots[0]
	assert.Equal(t, time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC), first.StartAt)
	assert.Equal(t, time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC), first.EndAt)
	assert.Equal(t, 60, first.DurationMinutes)
}

func TestExecute_ConfiguredStep(t *testing.T) {
	uc, _ := newTestUseCase(splitMonday(), 30, booked(10, 0, 30))

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: "2024-01-08", DurationMinutes: 60})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:30", "11:00", "14:00", "14:30", "15:00"}, startTimes(resp.Slots))
}

func TestExecute_SkipsPastStartsToday(t *testing.T) {
	uc, _ := newTestUseCase(splitMonday(), 30)
	uc.timeProvider = fixedTime{t: time.Date(2024, time.January, 8, 10, 15, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: "2024-01-08", DurationMinutes: 30})
	require.NoError(t, err)

	assert.Equal(t, []string{"10:30", "11:00", "11:30", "14:00", "14:30", "15:00", "15:30"}, startTimes(resp.Slots))
}

func TestExecute_DepositDoesNotHideSlots(t *testing.T) {
	settings := splitMonday()
	settings.Rules.DepositRequired = true
	settings.Rules.DepositAmountCents = 10000
	uc, _ := newTestUseCase(settings, 0)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: "2024-01-08", DurationMinutes: 60})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 5)
}

func TestExecute_DailyCapacityHidesDay(t *testing.T) {
	settings := splitMonday()
	settings.Rules.MaxDailyAppointments = 1
	uc, _ := newTestUseCase(settings, 0, booked(9, 0, 30))

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: "2024-01-08", DurationMinutes: 60})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ClosedDay(t *testing.T) {
	uc, repo := newTestUseCase(splitMonday(), 0)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: "2024-01-09", DurationMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
	assert.Zero(t, repo.calls)
}

func TestExecute_BeyondHorizon(t *testing.T) {
	uc, _ := newTestUseCase(splitMonday(), 0)

	// 2024-02-05 is a Monday, 35 days ahead
	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: "2024-02-05", DurationMinutes: 60})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_OffsetApplied(t *testing.T) {
	settings := splitMonday()
	settings.Rules.TimezoneOffsetMinutes = 120
	uc, repo := newTestUseCase(settings, 0)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: "2024-01-08", DurationMinutes: 60})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	assert.Equal(t, 120, resp.TimezoneOffsetMinutes)
	assert.Equal(t, time.Date(2024, time.January, 8, 7, 0, 0, 0, time.UTC), resp.Slots[0].StartAt)
	require.NotNil(t, repo.lastFilter.From)
	assert.Equal(t, time.Date(2024, time.January, 7, 22, 0, 0, 0, time.UTC), *repo.lastFilter.From)
}

func TestExecute_InvalidRequest(t *testing.T) {
	uc, _ := newTestUseCase(splitMonday(), 0)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: "08/01/2024", DurationMinutes: 60})
	assert.ErrorIs(t, err, scheduling.ErrInvalidTimeFormat)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: 1, Date: "2024-02-30", DurationMinutes: 60})
	assert.ErrorIs(t, err, scheduling.ErrInvalidTimeFormat)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: 1, Date: "2024-01-08", DurationMinutes: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
