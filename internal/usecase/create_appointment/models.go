package create_appointment

import "github.com/m04kA/SMC-SchedulingService/internal/domain"

// Request модель запроса на создание приёма
type Request struct {
	BusinessID       int64   // ID бизнеса
	CustomerName     string  // Имя клиента
	CustomerPhone    string  // Телефон клиента (WhatsApp)
	ServiceName      string  // Название услуги
	StartLocal       string  // Начало во времени бизнеса, "2024-01-08T10:00"
	DurationMinutes  int     // Длительность в минутах
	DepositConfirmed bool    // Депозит оплачен
	Notes            *string // Заметки (опционально)
	// Pending создаёт приём в статусе pending вместо confirmed
	Pending bool
}

// Response модель ответа с созданным приёмом
type Response struct {
	Appointment           domain.Appointment
	TimezoneOffsetMinutes int // смещение бизнеса для отображения локального времени
}
