package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const (
	tableName = "appointments"

	// pqUniqueViolation код ошибки postgres при нарушении уникального индекса
	pqUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"business_id",
	"customer_name",
	"customer_phone",
	"service_name",
	"start_at",
	"end_at",
	"status",
	"notes",
	"deposit_confirmed",
	"created_at",
	"updated_at",
}

// Repository репозиторий приёмов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория приёмов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет приём и возвращает сохранённую копию, входная структура не изменяется
// Время начала уникально среди неотменённых приёмов бизнеса (частичный уникальный индекс),
// проигравший в гонке получает ErrSlotTaken
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	created := *a
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"business_id",
			"customer_name",
			"customer_phone",
			"service_name",
			"start_at",
			"end_at",
			"status",
			"notes",
			"deposit_confirmed",
		).
		Values(
			created.ID,
			created.BusinessID,
			created.CustomerName,
			created.CustomerPhone,
			created.ServiceName,
			created.StartAt.UTC(),
			created.EndAt.UTC(),
			created.Status,
			created.Notes,
			created.DepositConfirmed,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Create - business=%d start=%s", ErrSlotTaken, created.BusinessID, created.StartAt.UTC())
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return &created, nil
}

// GetByID получает приём по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %w", ErrScanRow, err)
	}

	return a, nil
}

// List возвращает приёмы бизнеса, пересекающие период фильтра, по возрастанию начала
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельные
// бронирования того же дня шли по очереди
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": filter.From.UTC()})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": filter.To.UTC()})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	selectBuilder = selectBuilder.OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan: %w", ErrScanRow, err)
		}
		appointments = append(appointments, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// Update применяет частичное изменение приёма и возвращает обновлённую запись
func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch domain.AppointmentPatch) (*domain.Appointment, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if patch.StartAt != nil {
		updateBuilder = updateBuilder.Set("start_at", patch.StartAt.UTC())
	}
	if patch.EndAt != nil {
		updateBuilder = updateBuilder.Set("end_at", patch.EndAt.UTC())
	}
	if patch.Status != nil {
		updateBuilder = updateBuilder.Set("status", *patch.Status)
	}
	if patch.Notes != nil {
		updateBuilder = updateBuilder.Set("notes", *patch.Notes)
	}
	if patch.DepositConfirmed != nil {
		updateBuilder = updateBuilder.Set("deposit_confirmed", *patch.DepositConfirmed)
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Update - id=%s", ErrSlotTaken, id)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return a, nil
}

// UpdateStatus обновляет статус приёма
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: UpdateStatus - id=%s", ErrSlotTaken, id)
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete удаляет приём физически
// Для освобождения слота с сохранением истории используется отмена
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a     domain.Appointment
		notes sql.NullString
	)

	err := row.Scan(
		&a.ID,
		&a.BusinessID,
		&a.CustomerName,
		&a.CustomerPhone,
		&a.ServiceName,
		&a.StartAt,
		&a.EndAt,
		&a.Status,
		&notes,
		&a.DepositConfirmed,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		a.Notes = &notes.String
	}
	a.StartAt = a.StartAt.UTC()
	a.EndAt = a.EndAt.UTC()

	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
