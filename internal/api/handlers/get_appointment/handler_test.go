package get_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
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
	businessID int64
	resp       *models.AppointmentResponse
	err        error
}

func (f *fakeService) GetByID(_ context.Context, businessID int64, _ uuid.UUID) (*models.AppointmentResponse, error) {
	f.businessID = businessID
	return f.resp, f.err
}

func request(id string, businessID int64) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/"+id, nil)
	r = mux.SetURLVars(r, map[string]string{"appointmentId": id})
	if businessID > 0 {
		r = r.WithContext(middleware.WithBusinessID(r.Context(), businessID))
	}
	return r
}

func TestHandle(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		id         string
		businessID int64
		err        error
		wantStatus int
	}{
		{name: "ok", id: id.String(), businessID: 3, wantStatus: http.StatusOK},
		{name: "bad id", id: "nope", businessID: 3, wantStatus: http.StatusBadRequest},
		{name: "no tenant", id: id.String(), wantStatus: http.StatusUnauthorized},
		{name: "not found", id: id.String(), businessID: 3, err: appointments.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign", id: id.String(), businessID: 3, err: appointments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", id: id.String(), businessID: 3, err: appointments.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{resp: &models.AppointmentResponse{ID: id.String()}, err: tt.err}
			w := httptest.NewRecorder()

			NewHandler(svc, logger.NewNop()).Handle(w, request(tt.id, tt.businessID))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, int64(3), svc.businessID)
				assert.Contains(t, w.Body.String(), id.String())
			}
		})
	}
}
