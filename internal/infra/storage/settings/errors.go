package settings

import "errors"

var (
	// ErrRulesNotFound возвращается, когда бизнес ещё не сохранял правила бронирования
	ErrRulesNotFound = errors.New("settings.repository: booking rules not found")

	// ErrInvalidScheduleRow возвращается, когда строка расписания в БД нарушает инварианты
	ErrInvalidScheduleRow = errors.New("settings.repository: invalid schedule row")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settings.repository: failed to scan row")
)
