package appointments

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeRepo struct {
	items      map[uuid.UUID]domain.Appointment
	lastFilter domain.AppointmentsFilter
}

func newFakeRepo(items ...domain.Appointment) *fakeRepo {
	f := &fakeRepo{items: make(map[uuid.UUID]domain.Appointment)}
	for _, a := range items {
		f.items[a.ID] = a
	}
	return f
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return &a, nil
}

func (f *fakeRepo) List(_ context.Context, filter domain.AppointmentsFilter) ([]domain.Appointment, error) {
	f.lastFilter = filter
	var result []domain.Appointment
	for _, a := range f.items {
		if a.BusinessID == filter.BusinessID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	a, ok := f.items[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.Status = status
	f.items[id] = a
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeSettings struct {
	offset int
}

func (f fakeSettings) GetBusinessSettings(_ context.Context, businessID int64) (*domain.BusinessSettings, error) {
	return &domain.BusinessSettings{
		BusinessID: businessID,
		Schedule:   domain.NewClosedWeek(),
		Rules:      domain.BookingRules{BusinessID: businessID, TimezoneOffsetMinutes: f.offset},
	}, nil
}

type passTxManager struct{}

func (passTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newAppointment(businessID int64, status domain.AppointmentStatus) domain.Appointment {
	start := time.Date(2024, time.January, 8, 16, 0, 0, 0, time.UTC)
	return domain.Appointment{
		ID:            uuid.New(),
		BusinessID:    businessID,
		CustomerName:  "Ana López",
		CustomerPhone: "+5215512345678",
		ServiceName:   "Limpieza dental",
		StartAt:       start,
		EndAt:         start.Add(45 * time.Minute),
		Status:        status,
	}
}

func newTestService(repo *fakeRepo, offset int) *Service {
	return NewService(repo, fakeSettings{offset: offset}, passTxManager{}, logger.NewNop())
}

func TestGetByID(t *testing.T) {
	a := newAppointment(1, domain.StatusConfirmed)
	svc := newTestService(newFakeRepo(a), -360)

	resp, err := svc.GetByID(context.Background(), 1, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID.String(), resp.ID)
	assert.Equal(t, "2024-01-08T10:00", resp.StartLocal)
	assert.Equal(t, "2024-01-08T10:45", resp.EndLocal)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestGetByID_Errors(t *testing.T) {
	a := newAppointment(1, domain.StatusConfirmed)
	svc := newTestService(newFakeRepo(a), 0)

	_, err := svc.GetByID(context.Background(), 2, a.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 1, uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestList_ConvertsLocalDates(t *testing.T) {
	repo := newFakeRepo(newAppointment(1, domain.StatusConfirmed), newAppointment(2, domain.StatusConfirmed))
	svc := newTestService(repo, -360)

	from := civil.Date{Year: 2024, Month: time.January, Day: 8}
	to := civil.Date{Year: 2024, Month: time.January, Day: 9}

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		BusinessID: 1,
		From:       &from,
		To:         &to,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	require.NotNil(t, repo.lastFilter.From)
	require.NotNil(t, repo.lastFilter.To)
	// Локальная полночь UTC-6 это 06:00 UTC, To включает весь последний день
	assert.Equal(t, time.Date(2024, time.January, 8, 6, 0, 0, 0, time.UTC), *repo.lastFilter.From)
	assert.Equal(t, time.Date(2024, time.January, 10, 6, 0, 0, 0, time.UTC), *repo.lastFilter.To)
	assert.False(t, repo.lastFilter.IncludeCancelled)
}

func TestList_InvalidInput(t *testing.T) {
	svc := newTestService(newFakeRepo(), 0)

	from := civil.Date{Year: 2024, Month: time.January, Day: 9}
	to := civil.Date{Year: 2024, Month: time.January, Day: 8}
	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{BusinessID: 1, From: &from, To: &to})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListAppointmentsRequest{BusinessID: 1, Status: ptr.Ptr("lost")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_CancelledStatusIncludesCancelled(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, 0)

	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{BusinessID: 1, Status: ptr.Ptr("cancelled")})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusCancelled, *repo.lastFilter.Status)
	assert.True(t, repo.lastFilter.IncludeCancelled)
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.AppointmentStatus
		to      string
		wantErr error
	}{
		{name: "confirm pending", from: domain.StatusPending, to: "confirmed"},
		{name: "complete confirmed", from: domain.StatusConfirmed, to: "completed"},
		{name: "no show rescheduled", from: domain.StatusRescheduled, to: "no_show"},
		{name: "confirm confirmed", from: domain.StatusConfirmed, to: "confirmed", wantErr: ErrInvalidStatusTransition},
		{name: "complete cancelled", from: domain.StatusCancelled, to: "completed", wantErr: ErrInvalidStatusTransition},
		{name: "cancel via status", from: domain.StatusConfirmed, to: "cancelled", wantErr: ErrInvalidStatusTransition},
		{name: "unknown status", from: domain.StatusConfirmed, to: "done", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAppointment(1, tt.from)
			repo := newFakeRepo(a)
			svc := newTestService(repo, 0)

			err := svc.UpdateStatus(context.Background(), 1, a.ID, &models.UpdateStatusRequest{Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, repo.items[a.ID].Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.AppointmentStatus(tt.to), repo.items[a.ID].Status)
		})
	}
}

func TestUpdateStatus_OtherBusiness(t *testing.T) {
	a := newAppointment(1, domain.StatusPending)
	repo := newFakeRepo(a)
	svc := newTestService(repo, 0)

	err := svc.UpdateStatus(context.Background(), 5, a.ID, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusPending, repo.items[a.ID].Status)
}

func TestDelete(t *testing.T) {
	a := newAppointment(1, domain.StatusConfirmed)
	repo := newFakeRepo(a)
	svc := newTestService(repo, 0)

	assert.ErrorIs(t, svc.Delete(context.Background(), 2, a.ID), ErrAccessDenied)
	assert.Len(t, repo.items, 1)

	require.NoError(t, svc.Delete(context.Background(), 1, a.ID))
	assert.Empty(t, repo.items)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1, a.ID), ErrAppointmentNotFound)
}
