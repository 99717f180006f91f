package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tenantRouter(t *testing.T, seen *int64) *mux.Router {
	t.Helper()
	r := mux.NewRouter()
	r.Use(Tenant)
	handler := func(w http.ResponseWriter, req *http.Request) {
		id, ok := GetBusinessID(req.Context())
		require.True(t, ok)
		*seen = id
		w.WriteHeader(http.StatusNoContent)
	}
	r.HandleFunc("/businesses/{businessId}/settings", handler)
	r.HandleFunc("/appointments/{appointmentId}", handler)
	return r
}

func TestTenant(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantID     int64
	}{
		{name: "matching path", path: "/businesses/7/settings", header: "7", wantStatus: http.StatusNoContent, wantID: 7},
		{name: "no business in path", path: "/appointments/abc", header: "7", wantStatus: http.StatusNoContent, wantID: 7},
		{name: "leading zeros in path", path: "/businesses/042/settings", header: "42", wantStatus: http.StatusNoContent, wantID: 42},
		{name: "foreign business", path: "/businesses/8/settings", header: "7", wantStatus: http.StatusForbidden},
		{name: "non-numeric path", path: "/businesses/abc/settings", header: "7", wantStatus: http.StatusForbidden},
		{name: "missing header", path: "/businesses/7/settings", wantStatus: http.StatusUnauthorized},
		{name: "garbage header", path: "/businesses/7/settings", header: "seven", wantStatus: http.StatusUnauthorized},
		{name: "zero header", path: "/appointments/abc", header: "0", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen int64
			router := tenantRouter(t, &seen)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(BusinessIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantID, seen)
		})
	}
}

type observed struct {
	method string
	route  string
	status int
}

type fakeHTTPMetrics struct {
	calls []observed
}

func (f *fakeHTTPMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.calls = append(f.calls, observed{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/appointments/{appointmentId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/api/v1/appointments/1", "/api/v1/appointments/2", "/ok"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Len(t, m.calls, 3)
	assert.Equal(t, observed{method: "GET", route: "/api/v1/appointments/{appointmentId}", status: 404}, m.calls[0])
	assert.Equal(t, m.calls[0], m.calls[1])
	assert.Equal(t, observed{method: "GET", route: "/ok", status: 200}, m.calls[2])
}

func TestRateLimiter_PerBusiness(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	call := func(businessID int64) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(WithBusinessID(req.Context(), businessID))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, call(1))
	assert.Equal(t, http.StatusCreated, call(1))
	assert.Equal(t, http.StatusTooManyRequests, call(1))

	// Лимит другого бизнеса не тронут
	assert.Equal(t, http.StatusCreated, call(2))
}

func TestRateLimiter_RequiresTenant(t *testing.T) {
	limiter := NewRateLimiter(60, 1)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimiter_EvictsIdleBusinesses(t *testing.T) {
	limiter := NewRateLimiter(60, 1)
	now := time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(businessID int64) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithBusinessID(req.Context(), businessID))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	for id := int64(1); id <= 3; id++ {
		require.Equal(t, http.StatusOK, call(id))
	}
	assert.Len(t, limiter.limiters, 3)

	// Бизнес 3 остаётся активным, остальные простаивают
	now = now.Add(limiterIdleTTL / 2)
	require.Equal(t, http.StatusOK, call(3))

	now = now.Add(limiterIdleTTL/2 + time.Second)
	require.Equal(t, http.StatusOK, call(4))

	assert.Len(t, limiter.limiters, 2)
	assert.Contains(t, limiter.limiters, int64(3))
	assert.Contains(t, limiter.limiters, int64(4))
}

func TestRateLimiter_IdleTTLCoversRefill(t *testing.T) {
	// Лимитер не удаляется раньше, чем полностью восстановится его burst
	limiter := NewRateLimiter(1, 30)
	assert.Equal(t, 30*time.Minute, limiter.idleTTL)

	assert.Equal(t, limiterIdleTTL, NewRateLimiter(600, 5).idleTTL)
	assert.Equal(t, limiterIdleTTL, NewRateLimiter(0, 5).idleTTL)
}
