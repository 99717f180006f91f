package scheduling

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CanCancel проверяет, что до начала приёма осталось не меньше CancellationWindowHours
func CanCancel(a domain.Appointment, rules domain.BookingRules, now time.Time) bool {
	return a.StartAt.Sub(now) >= rules.CancellationWindow()
}

// CheckCancellation возвращает отказ CancellationWindowViolated с политикой неявки бизнеса,
// если приём уже нельзя отменить или перенести
func CheckCancellation(a domain.Appointment, rules domain.BookingRules, now time.Time) *Rejection {
	if CanCancel(a, rules, now) {
		return nil
	}
	rej := newRejection(KindCancellationWindowViolated)
	if policy := strings.TrimSpace(rules.NoShowPolicyText); policy != "" {
		rej.Message = rej.Message + ". " + policy
	}
	return rej
}
