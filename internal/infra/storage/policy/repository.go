package policy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/dbmetrics"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/psqlbuilder"
)

const tablePolicies = "scheduling_policies"

var policyColumns = []string{
	"id",
	"salon_id",
	"resource_id",
	"business_open",
	"business_close",
	"min_duration_minutes",
	"max_duration_minutes",
	"picker_day_start",
	"picker_day_end",
	"picker_step_minutes",
	"duration_options",
	"ignore_cancelled",
	"created_at",
	"updated_at",
}

// Repository репозиторий политик расписания салонов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую политику
func (r *Repository) Create(ctx context.Context, p *domain.SchedulingPolicy) (*domain.SchedulingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tablePolicies).
		Columns(
			"salon_id",
			"resource_id",
			"business_open",
			"business_close",
			"min_duration_minutes",
			"max_duration_minutes",
			"picker_day_start",
			"picker_day_end",
			"picker_step_minutes",
			"duration_options",
			"ignore_cancelled",
		).
		Values(
			p.SalonID,
			p.ResourceID,
			p.BusinessHours.Open,
			p.BusinessHours.Close,
			minutes(p.DurationBounds.Min),
			minutes(p.DurationBounds.Max),
			p.Picker.DayStart,
			p.Picker.DayEnd,
			p.Picker.StepMinutes,
			pq.Array(toInt64s(p.DurationOptions)),
			p.IgnoreCancelled,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetBySalonAndResource получает политику точного уровня иерархии
// resourceID == nil означает политику салона целиком
func (r *Repository) GetBySalonAndResource(ctx context.Context, salonID string, resourceID *string) (*domain.SchedulingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(policyColumns...).
		From(tablePolicies).
		Where(squirrel.Eq{"salon_id": salonID})

	// Фильтрация по resource_id (NULL или конкретное значение)
	if resourceID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *resourceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonAndResource - build select query: %w", ErrBuildQuery, err)
	}

	p, err := scanPolicy(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonAndResource - scan policy: %w", ErrScanRow, err)
	}

	return p, nil
}

// GetWithHierarchy получает политику с учетом иерархии приоритетов
// 1. Политика сотрудника (salonID, resourceID)
// 2. Политика салона (salonID, NULL)
//
// Если политика не найдена ни на одном уровне, возвращает ErrPolicyNotFound
func (r *Repository) GetWithHierarchy(ctx context.Context, salonID string, resourceID *string) (*domain.SchedulingPolicy, error) {
	if resourceID != nil {
		p, err := r.GetBySalonAndResource(ctx, salonID, resourceID)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrPolicyNotFound) {
			return nil, fmt.Errorf("%w: GetWithHierarchy - resource level: %w", ErrExecQuery, err)
		}
	}

	p, err := r.GetBySalonAndResource(ctx, salonID, nil)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrPolicyNotFound) {
		return nil, fmt.Errorf("%w: GetWithHierarchy - salon level: %w", ErrExecQuery, err)
	}

	return nil, ErrPolicyNotFound
}

// ListBySalon получает все политики салона (политика салона первой)
func (r *Repository) ListBySalon(ctx context.Context, salonID string) ([]*domain.SchedulingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(policyColumns...).
		From(tablePolicies).
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("resource_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	policies := make([]*domain.SchedulingPolicy, 0)
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySalon - scan row: %w", ErrScanRow, err)
		}
		policies = append(policies, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - rows error: %w", ErrScanRow, err)
	}

	return policies, nil
}

// Update обновляет политику
func (r *Repository) Update(ctx context.Context, id int64, p *domain.SchedulingPolicy) (*domain.SchedulingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tablePolicies).
		Set("business_open", p.BusinessHours.Open).
		Set("business_close", p.BusinessHours.Close).
		Set("min_duration_minutes", minutes(p.DurationBounds.Min)).
		Set("max_duration_minutes", minutes(p.DurationBounds.Max)).
		Set("picker_day_start", p.Picker.DayStart).
		Set("picker_day_end", p.Picker.DayEnd).
		Set("picker_step_minutes", p.Picker.StepMinutes).
		Set("duration_options", pq.Array(toInt64s(p.DurationOptions))).
		Set("ignore_cancelled", p.IgnoreCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	p.ID = id
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// Delete удаляет политику
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tablePolicies).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
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
		return ErrPolicyNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPolicy(row rowScanner) (*domain.SchedulingPolicy, error) {
	var (
		p                    domain.SchedulingPolicy
		resourceID           sql.NullString
		minMinutes           int
		maxMinutes           int
		options              []int64
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&p.ID,
		&p.SalonID,
		&resourceID,
		&p.BusinessHours.Open,
		&p.BusinessHours.Close,
		&minMinutes,
		&maxMinutes,
		&p.Picker.DayStart,
		&p.Picker.DayEnd,
		&p.Picker.StepMinutes,
		pq.Array(&options),
		&p.IgnoreCancelled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if resourceID.Valid {
		id := resourceID.String
		p.ResourceID = &id
	}
	p.DurationBounds.Min = time.Duration(minMinutes) * time.Minute
	p.DurationBounds.Max = time.Duration(maxMinutes) * time.Minute
	p.DurationOptions = make([]int, 0, len(options))
	for _, o := range options {
		p.DurationOptions = append(p.DurationOptions, int(o))
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

func minutes(d time.Duration) int {
	return int(d / time.Minute)
}

func toInt64s(values []int) []int64 {
	out := make([]int64, 0, len(values))
	for _, v := range values {
		out = append(out, int64(v))
	}
	return out
}
