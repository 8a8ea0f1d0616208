package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	"github.com/m04kA/SMC-CoworkingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CoworkingService/pkg/txmanager"
)

const table = "bookings"

var columns = []string{
	"id",
	"area_id",
	"user_id",
	"start_at",
	"end_at",
	"guest_count",
	"status",
	"unit_price",
	"total_price",
	"pricing_branch",
	"pricing_rule_id",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её:
// подсчет занятости и вставка должны выполняться в одной транзакции
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"area_id",
			"user_id",
			"start_at",
			"end_at",
			"guest_count",
			"status",
			"unit_price",
			"total_price",
			"pricing_branch",
			"pricing_rule_id",
			"notes",
		).
		Values(
			booking.AreaID,
			booking.UserID,
			booking.StartAt.UTC(),
			booking.EndAt.UTC(),
			booking.GuestCount,
			booking.Status,
			booking.UnitPrice,
			booking.TotalPrice,
			booking.PricingBranch,
			booking.PricingRuleID,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// CountActive считает активные бронирования зоны, пересекающиеся с окном [start, end)
//
// Пересечение задается объединением трех условий по диапазонам:
//   - бронирование начинается внутри окна
//   - бронирование заканчивается внутри окна
//   - бронирование целиком покрывает окно
//
// excludeID исключает проверяемое бронирование из подсчета.
// Внутри транзакции пересекающиеся строки блокируются FOR UPDATE (с агрегатами PostgreSQL его не допускает,
// поэтому выбираются id и считаются на стороне приложения)
func (r *Repository) CountActive(ctx context.Context, areaID int64, start, end time.Time, excludeID *int64) (int, error) {
	if !end.After(start) {
		return 0, ErrInvalidWindow
	}

	executor := txmanager.GetExecutor(ctx, r.db)
	lock := txmanager.IsInTransaction(ctx)

	query, args, err := buildCountActiveQuery(areaID, start, end, excludeID, lock)
	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build select query: %v", ErrBuildQuery, err)
	}

	if !lock {
		var count int
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
			return 0, fmt.Errorf("%w: CountActive - scan count: %w", ErrScanRow, err)
		}
		return count, nil
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("%w: CountActive - scan id: %w", ErrScanRow, err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: CountActive - rows error: %w", ErrScanRow, err)
	}

	return count, nil
}

func buildCountActiveQuery(areaID int64, start, end time.Time, excludeID *int64, lock bool) (string, []interface{}, error) {
	start, end = start.UTC(), end.UTC()

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("COUNT(*)")
	if lock {
		selectBuilder = psqlbuilder.Select("id")
	}

	selectBuilder = selectBuilder.
		From(table).
		Where(squirrel.Eq{"area_id": areaID}).
		Where(squirrel.Eq{"status": activeStatuses}).
		Where(squirrel.Or{
			squirrel.And{squirrel.GtOrEq{"start_at": start}, squirrel.Lt{"start_at": end}},
			squirrel.And{squirrel.Gt{"end_at": start}, squirrel.LtOrEq{"end_at": end}},
			squirrel.And{squirrel.LtOrEq{"start_at": start}, squirrel.GtOrEq{"end_at": end}},
		})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if lock {
		selectBuilder = selectBuilder.OrderBy("id").Suffix("FOR UPDATE")
	}

	return selectBuilder.ToSql()
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Cancel", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// GetByUserID получает бронирования пользователя, новые сверху
// status опционален: nil - все статусы
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := buildUserBookingsQuery(userID, status)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByAreaWithFilter получает бронирования зоны с фильтрацией
//
// Примеры:
//
// 1. Активные бронирования зоны:
//    filter := domain.AreaBookingsFilter{AreaID: 3}
//
// 2. Ожидающие решения хоста:
//    status := domain.StatusPending
//    filter := domain.AreaBookingsFilter{AreaID: 3, Status: &status}
//
// 3. Все бронирования, пересекающие период:
//    filter := domain.AreaBookingsFilter{AreaID: 3, From: &from, To: &to, IncludeInactive: true}
func (r *Repository) GetByAreaWithFilter(ctx context.Context, filter domain.AreaBookingsFilter) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := buildAreaBookingsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAreaWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAreaWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func buildUserBookingsQuery(userID int64, status *domain.BookingStatus) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID})

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}

	return selectBuilder.OrderBy("start_at DESC", "id DESC").ToSql()
}

func buildAreaBookingsQuery(filter domain.AreaBookingsFilter) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"area_id": filter.AreaID})

	// Окно [From, To): берем пересекающиеся бронирования
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": filter.From.UTC()})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": filter.To.UTC()})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		activeStatuses := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			activeStatuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatuses})
	}

	return selectBuilder.OrderBy("start_at ASC", "id ASC").ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan booking: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %w", ErrScanRow, err)
	}
	return bookings, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var pricingBranch sql.NullString
	var pricingRuleID sql.NullInt64

	err := row.Scan(
		&booking.ID,
		&booking.AreaID,
		&booking.UserID,
		&booking.StartAt,
		&booking.EndAt,
		&booking.GuestCount,
		&booking.Status,
		&booking.UnitPrice,
		&booking.TotalPrice,
		&pricingBranch,
		&pricingRuleID,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.PricingBranch = pricingBranch.String
	booking.PricingRuleID = pricingRuleID.Int64
	booking.StartAt = booking.StartAt.UTC()
	booking.EndAt = booking.EndAt.UTC()

	return &booking, nil
}
