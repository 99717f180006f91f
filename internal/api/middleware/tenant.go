package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

// BusinessIDHeader заголовок, который шлюз выставляет после аутентификации бизнеса
const BusinessIDHeader = "X-Business-ID"

const (
	msgMissingBusinessID = "отсутствует или некорректен заголовок X-Business-ID"
	msgForeignBusiness   = "доступ к данным другого бизнеса запрещен"
)

type contextKey string

const businessIDKey contextKey = "business_id"

// Tenant извлекает ID бизнеса из заголовка и кладёт его в контекст.
// Если маршрут содержит {businessId}, он сравнивается с заголовком как число
func Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		businessID, err := strconv.ParseInt(r.Header.Get(BusinessIDHeader), 10, 64)
		if err != nil || businessID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingBusinessID)
			return
		}

		if rawPathID, ok := mux.Vars(r)["businessId"]; ok {
			pathID, err := strconv.ParseInt(rawPathID, 10, 64)
			if err != nil || pathID != businessID {
				handlers.RespondForbidden(w, msgForeignBusiness)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(WithBusinessID(r.Context(), businessID)))
	})
}

// WithBusinessID кладёт ID бизнеса в контекст
func WithBusinessID(ctx context.Context, businessID int64) context.Context {
	return context.WithValue(ctx, businessIDKey, businessID)
}

// GetBusinessID возвращает ID бизнеса из контекста
func GetBusinessID(ctx context.Context) (int64, bool) {
	businessID, ok := ctx.Value(businessIDKey).(int64)
	return businessID, ok
}
