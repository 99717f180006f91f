package create_appointment

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest проверяет входные данные, не зависящие от настроек бизнеса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: business id must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" || len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name must be 1-%d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	phone := strings.TrimSpace(req.CustomerPhone)
	if phone == "" || len(phone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: customer phone must be 1-%d characters", ErrInvalidInput, domain.MaxCustomerPhoneLength)
	}

	service := strings.TrimSpace(req.ServiceName)
	if service == "" || len(service) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: service name must be 1-%d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}

	if req.DurationMinutes < domain.MinAppointmentDurationMinutes || req.DurationMinutes > domain.MaxAppointmentDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinAppointmentDurationMinutes, domain.MaxAppointmentDurationMinutes)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
