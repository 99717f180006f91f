package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/settings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeRepo struct {
	schedules map[int64]domain.WeeklySchedule
	rules     map[int64]domain.BookingRules

	scheduleErr error
	saveErr     error
	saves       int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		schedules: make(map[int64]domain.WeeklySchedule),
		rules:     make(map[int64]domain.BookingRules),
	}
}

func (f *fakeRepo) GetWeeklySchedule(_ context.Context, businessID int64) (domain.WeeklySchedule, error) {
	if f.scheduleErr != nil {
		return domain.WeeklySchedule{}, f.scheduleErr
	}
	if w, ok := f.schedules[businessID]; ok {
		return w, nil
	}
	return domain.NewClosedWeek(), nil
}

func (f *fakeRepo) SaveWeeklySchedule(_ context.Context, businessID int64, schedule domain.WeeklySchedule) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.schedules[businessID] = schedule
	return nil
}

func (f *fakeRepo) GetBookingRules(_ context.Context, businessID int64) (*domain.BookingRules, error) {
	r, ok := f.rules[businessID]
	if !ok {
		return nil, settingsRepo.ErrRulesNotFound
	}
	return &r, nil
}

func (f *fakeRepo) SaveBookingRules(_ context.Context, rules *domain.BookingRules) (*domain.BookingRules, error) {
	f.saves++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	saved := *rules
	saved.UpdatedAt = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	f.rules[rules.BusinessID] = saved
	return &saved, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func defaultRules() domain.BookingRules {
	return domain.BookingRules{
		BufferMinutes:           10,
		BookingWindowDays:       30,
		CancellationWindowHours: 24,
		TimezoneOffsetMinutes:   -360,
	}
}

func newTestService(repo *fakeRepo) (*Service, *fakeTxManager) {
	tx := &fakeTxManager{}
	return NewService(repo, tx, defaultRules(), logger.NewNop()), tx
}

func TestGetBusinessSettings_FallsBackToDefaults(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())

	settings, err := svc.GetBusinessSettings(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), settings.BusinessID)
	assert.Equal(t, int64(7), settings.Rules.BusinessID)
	assert.Equal(t, 10, settings.Rules.BufferMinutes)
	assert.Equal(t, -360, settings.Rules.TimezoneOffsetMinutes)
	for _, d := range settings.Schedule.Days() {
		assert.False(t, d.IsOpen)
	}
}

func TestGet_ReportsDefaultRules(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	resp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, resp.IsDefaultRules)
	assert.Nil(t, resp.UpdatedAt)
	assert.Len(t, resp.Schedule, domain.DaysInWeek)
	assert.Equal(t, "mon", resp.Schedule[0].Day)

	repo.rules[1] = domain.BookingRules{BusinessID: 1, BookingWindowDays: 14, UpdatedAt: time.Now()}
	resp, err = svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, resp.IsDefaultRules)
	assert.Equal(t, 14, resp.Rules.BookingWindowDays)
	assert.NotNil(t, resp.UpdatedAt)
}

func TestGet_RepositoryError(t *testing.T) {
	repo := newFakeRepo()
	repo.scheduleErr = errors.New("connection refused")
	svc, _ := newTestService(repo)

	_, err := svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdate_ScheduleAndRules(t *testing.T) {
	repo := newFakeRepo()
	svc, tx := newTestService(repo)

	req := &models.UpdateSettingsRequest{
		Schedule: []models.DayAvailability{
			{
				Day:       "mon",
				IsOpen:    true,
				Interval1: &models.Interval{Start: "09:00", End: "13:00"},
				Interval2: &models.Interval{Start: "14:00", End: "18:00"},
			},
			{
				// Закрытый день теряет интервалы
				Day:       "sat",
				IsOpen:    false,
				Interval1: &models.Interval{Start: "09:00", End: "12:00"},
			},
		},
		Rules: &models.BookingRules{
			BufferMinutes:           15,
			BookingWindowDays:       60,
			MaxDailyAppointments:    8,
			CancellationWindowHours: 12,
			DepositRequired:         true,
			DepositAmountCents:      5000,
			NoShowPolicyText:        "Se cobra el depósito",
			TimezoneOffsetMinutes:   -300,
		},
	}

	resp, err := svc.Update(context.Background(), 3, req)
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 2, repo.saves)

	assert.False(t, resp.IsDefaultRules)
	assert.Equal(t, 15, resp.Rules.BufferMinutes)
	assert.Equal(t, int64(5000), resp.Rules.DepositAmountCents)

	monday := resp.Schedule[0]
	assert.True(t, monday.IsOpen)
	require.NotNil(t, monday.Interval2)
	assert.Equal(t, "14:00", monday.Interval2.Start)

	saturday := resp.Schedule[5]
	assert.Equal(t, "sat", saturday.Day)
	assert.False(t, saturday.IsOpen)
	assert.Nil(t, saturday.Interval1)

	tuesday := resp.Schedule[1]
	assert.False(t, tuesday.IsOpen)
}

func TestUpdate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdateSettingsRequest
	}{
		{
			name: "empty request",
			req:  &models.UpdateSettingsRequest{},
		},
		{
			name: "unknown day",
			req: &models.UpdateSettingsRequest{Schedule: []models.DayAvailability{
				{Day: "funday", IsOpen: true, Interval1: &models.Interval{Start: "09:00", End: "10:00"}},
			}},
		},
		{
			name: "duplicate day",
			req: &models.UpdateSettingsRequest{Schedule: []models.DayAvailability{
				{Day: "mon", IsOpen: true, Interval1: &models.Interval{Start: "09:00", End: "10:00"}},
				{Day: "mon", IsOpen: false},
			}},
		},
		{
			name: "open day without interval",
			req: &models.UpdateSettingsRequest{Schedule: []models.DayAvailability{
				{Day: "tue", IsOpen: true},
			}},
		},
		{
			name: "reversed interval",
			req: &models.UpdateSettingsRequest{Schedule: []models.DayAvailability{
				{Day: "wed", IsOpen: true, Interval1: &models.Interval{Start: "18:00", End: "09:00"}},
			}},
		},
		{
			name: "overlapping intervals",
			req: &models.UpdateSettingsRequest{Schedule: []models.DayAvailability{
				{
					Day:       "thu",
					IsOpen:    true,
					Interval1: &models.Interval{Start: "09:00", End: "13:00"},
					Interval2: &models.Interval{Start: "12:00", End: "15:00"},
				},
			}},
		},
		{
			name: "bad time string",
			req: &models.UpdateSettingsRequest{Schedule: []models.DayAvailability{
				{Day: "fri", IsOpen: true, Interval1: &models.Interval{Start: "9am", End: "13:00"}},
			}},
		},
		{
			name: "negative window",
			req:  &models.UpdateSettingsRequest{Rules: &models.BookingRules{BookingWindowDays: -1}},
		},
		{
			name: "buffer too large",
			req:  &models.UpdateSettingsRequest{Rules: &models.BookingRules{BufferMinutes: 500, BookingWindowDays: 7}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc, tx := newTestService(repo)

			_, err := svc.Update(context.Background(), 1, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, tx.calls)
			assert.Zero(t, repo.saves)
		})
	}
}

func TestUpdate_SaveError(t *testing.T) {
	repo := newFakeRepo()
	repo.saveErr = errors.New("deadlock")
	svc, _ := newTestService(repo)

	_, err := svc.Update(context.Background(), 1, &models.UpdateSettingsRequest{
		Rules: &models.BookingRules{BookingWindowDays: 7},
	})
	assert.ErrorIs(t, err, ErrInternal)
}
