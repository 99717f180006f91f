package update_appointment_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeService struct {
	status string
	err    error
}

func (f *fakeService) UpdateStatus(_ context.Context, _ int64, _ uuid.UUID, req *models.UpdateStatusRequest) error {
	if f.err != nil {
		return f.err
	}
	f.status = req.Status
	return nil
}

func (f *fakeService) GetByID(_ context.Context, businessID int64, id uuid.UUID) (*models.AppointmentResponse, error) {
	return &models.AppointmentResponse{ID: id.String(), BusinessID: businessID, Status: f.status}, nil
}

func TestHandle(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "ok", body: `{"status":"completed"}`, wantStatus: http.StatusOK},
		{name: "bad body", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "invalid status", body: `{"status":"done"}`, err: appointments.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", body: `{"status":"completed"}`, err: appointments.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign", body: `{"status":"completed"}`, err: appointments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "transition", body: `{"status":"pending"}`, err: appointments.ErrInvalidStatusTransition, wantStatus: http.StatusConflict},
		{name: "internal", body: `{"status":"completed"}`, err: appointments.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			r := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+id.String()+"/status", strings.NewReader(tt.body))
			r = mux.SetURLVars(r, map[string]string{"appointmentId": id.String()})
			r = r.WithContext(middleware.WithBusinessID(r.Context(), 3))
			w := httptest.NewRecorder()

			NewHandler(svc, logger.NewNop()).Handle(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"status":"completed"`)
			}
		})
	}
}
