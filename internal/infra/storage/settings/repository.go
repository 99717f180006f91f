package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const (
	schedulesTable = "business_schedules"
	rulesTable     = "booking_rules"
)

// Repository хранит недельное расписание и правила бронирования бизнеса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeeklySchedule возвращает расписание бизнеса
// Дни без строки в БД считаются выходными
func (r *Repository) GetWeeklySchedule(ctx context.Context, businessID int64) (domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"is_open",
		"interval1_start",
		"interval1_end",
		"interval2_start",
		"interval2_end",
	).
		From(schedulesTable).
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return domain.WeeklySchedule{}, fmt.Errorf("%w: GetWeeklySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.WeeklySchedule{}, fmt.Errorf("%w: GetWeeklySchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]domain.DayAvailability, 0, domain.DaysInWeek)
	for rows.Next() {
		var (
			weekday                    int
			day                        domain.DayAvailability
			start1, end1, start2, end2 types.TimeString
		)

		if err := rows.Scan(&weekday, &day.IsOpen, &start1, &end1, &start2, &end2); err != nil {
			return domain.WeeklySchedule{}, fmt.Errorf("%w: GetWeeklySchedule - scan: %v", ErrScanRow, err)
		}

		day.Day = domain.WeekDay(weekday)
		day.Interval1 = toRange(start1, end1)
		day.Interval2 = toRange(start2, end2)
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return domain.WeeklySchedule{}, fmt.Errorf("%w: GetWeeklySchedule - rows error: %v", ErrScanRow, err)
	}

	schedule, err := domain.NewWeeklySchedule(days)
	if err != nil {
		return domain.WeeklySchedule{}, fmt.Errorf("%w: GetWeeklySchedule - business=%d: %v", ErrInvalidScheduleRow, businessID, err)
	}

	return schedule, nil
}

// SaveWeeklySchedule перезаписывает все семь дней расписания одним запросом
func (r *Repository) SaveWeeklySchedule(ctx context.Context, businessID int64, schedule domain.WeeklySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(schedulesTable).
		Columns(
			"business_id",
			"weekday",
			"is_open",
			"interval1_start",
			"interval1_end",
			"interval2_start",
			"interval2_end",
		)

	for _, day := range schedule.Days() {
		start1, end1 := fromRange(day.Interval1)
		start2, end2 := fromRange(day.Interval2)
		insertBuilder = insertBuilder.Values(businessID, int(day.Day), day.IsOpen, start1, end1, start2, end2)
	}

	query, args, err := insertBuilder.
		Suffix(`ON CONFLICT (business_id, weekday) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			interval1_start = EXCLUDED.interval1_start,
			interval1_end = EXCLUDED.interval1_end,
			interval2_start = EXCLUDED.interval2_start,
			interval2_end = EXCLUDED.interval2_end,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveWeeklySchedule - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveWeeklySchedule - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetBookingRules возвращает правила бронирования бизнеса
func (r *Repository) GetBookingRules(ctx context.Context, businessID int64) (*domain.BookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"business_id",
		"buffer_minutes",
		"booking_window_days",
		"max_daily_appointments",
		"cancellation_window_hours",
		"deposit_required",
		"deposit_amount_cents",
		"no_show_policy_text",
		"timezone_offset_minutes",
		"created_at",
		"updated_at",
	).
		From(rulesTable).
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingRules - build select query: %v", ErrBuildQuery, err)
	}

	var rules domain.BookingRules
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rules.BusinessID,
		&rules.BufferMinutes,
		&rules.BookingWindowDays,
		&rules.MaxDailyAppointments,
		&rules.CancellationWindowHours,
		&rules.DepositRequired,
		&rules.DepositAmountCents,
		&rules.NoShowPolicyText,
		&rules.TimezoneOffsetMinutes,
		&rules.CreatedAt,
		&rules.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRulesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingRules - scan: %v", ErrScanRow, err)
	}

	return &rules, nil
}

// SaveBookingRules создает или обновляет правила бронирования бизнеса
func (r *Repository) SaveBookingRules(ctx context.Context, rules *domain.BookingRules) (*domain.BookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(rulesTable).
		Columns(
			"business_id",
			"buffer_minutes",
			"booking_window_days",
			"max_daily_appointments",
			"cancellation_window_hours",
			"deposit_required",
			"deposit_amount_cents",
			"no_show_policy_text",
			"timezone_offset_minutes",
		).
		Values(
			rules.BusinessID,
			rules.BufferMinutes,
			rules.BookingWindowDays,
			rules.MaxDailyAppointments,
			rules.CancellationWindowHours,
			rules.DepositRequired,
			rules.DepositAmountCents,
			rules.NoShowPolicyText,
			rules.TimezoneOffsetMinutes,
		).
		Suffix(`ON CONFLICT (business_id) DO UPDATE SET
			buffer_minutes = EXCLUDED.buffer_minutes,
			booking_window_days = EXCLUDED.booking_window_days,
			max_daily_appointments = EXCLUDED.max_daily_appointments,
			cancellation_window_hours = EXCLUDED.cancellation_window_hours,
			deposit_required = EXCLUDED.deposit_required,
			deposit_amount_cents = EXCLUDED.deposit_amount_cents,
			no_show_policy_text = EXCLUDED.no_show_policy_text,
			timezone_offset_minutes = EXCLUDED.timezone_offset_minutes,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SaveBookingRules - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rules.CreatedAt, &rules.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: SaveBookingRules - execute upsert: %v", ErrExecQuery, err)
	}

	return rules, nil
}

func toRange(start, end types.TimeString) *domain.TimeRange {
	if start.IsZero() || end.IsZero() {
		return nil
	}
	return &domain.TimeRange{Start: start, End: end}
}

func fromRange(r *domain.TimeRange) (types.TimeString, types.TimeString) {
	if r == nil {
		return "", ""
	}
	return r.Start, r.End
}
