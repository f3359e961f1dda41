package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/pkg/dbmetrics"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/pkg/psqlbuilder"
)

const tableBookings = "bookings"

var bookingColumns = []string{
	"id",
	"offering_id",
	"client_id",
	"shop_id",
	"shop_name",
	"service_price",
	"pickup_rider_id",
	"delivery_rider_id",
	"total_price",
	"weight",
	"pickup_address",
	"delivery_address",
	"note",
	"payment_method",
	"booking_date",
	"delivery_date",
	"completed_at",
	"canceled_at",
	"stage",
	"is_canceled",
	"version",
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

// Create сохраняет новое бронирование
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"id",
			"offering_id",
			"client_id",
			"shop_id",
			"shop_name",
			"service_price",
			"total_price",
			"weight",
			"pickup_address",
			"delivery_address",
			"note",
			"payment_method",
			"booking_date",
			"stage",
			"is_canceled",
			"version",
		).
		Values(
			booking.ID,
			booking.OfferingID,
			booking.ClientID,
			booking.ShopID,
			booking.ShopName,
			booking.ServicePrice,
			booking.TotalPrice,
			booking.Weight,
			booking.PickupAddress,
			booking.DeliveryAddress,
			booking.Note,
			booking.PaymentMethod,
			booking.BookingDate,
			booking.Stage,
			booking.IsCanceled,
			booking.Version,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetPending получает бронирования, еще не принятые прачечной, в порядке поступления (FIFO).
// shopID == nil - по всем прачечным.
func (r *Repository) GetPending(ctx context.Context, shopID *int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"stage": domain.StageNone}).
		Where(squirrel.Eq{"is_canceled": false}).
		OrderBy("booking_date ASC", "id ASC")

	if shopID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"shop_id": *shopID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByClientID получает историю бронирований клиента, сначала новые
func (r *Repository) GetByClientID(ctx context.Context, clientID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("booking_date DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByShopWithFilter получает бронирования прачечной с фильтрацией по периоду и классу
// жизненного цикла, сначала новые
func (r *Repository) GetByShopWithFilter(ctx context.Context, filter domain.ShopBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"shop_id": filter.ShopID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Class != nil {
		switch *filter.Class {
		case domain.ClassCanceled:
			selectBuilder = selectBuilder.Where(squirrel.Eq{"is_canceled": true})
		case domain.ClassCompleted:
			selectBuilder = selectBuilder.Where(squirrel.Eq{"stage": domain.FinalStage})
		case domain.ClassActive:
			selectBuilder = selectBuilder.
				Where(squirrel.Eq{"is_canceled": false}).
				Where(squirrel.Lt{"stage": domain.FinalStage})
		}
	}

	query, args, err := selectBuilder.OrderBy("booking_date DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateState сохраняет изменения жизненного цикла и коммерческих данных бронирования.
// Запись обусловлена прочитанным вектором состояния (optimistic concurrency): если строка
// с таким состоянием не найдена, а бронирование существует - возвращается ErrStaleState.
// При успехе booking.Version и booking.UpdatedAt обновляются значениями из БД.
func (r *Repository) UpdateState(ctx context.Context, booking *domain.Booking, expected domain.StateVector) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("stage", booking.Stage).
		Set("is_canceled", booking.IsCanceled).
		Set("pickup_rider_id", booking.PickupRiderID).
		Set("delivery_rider_id", booking.DeliveryRiderID).
		Set("delivery_date", booking.DeliveryDate).
		Set("completed_at", booking.CompletedAt).
		Set("canceled_at", booking.CanceledAt).
		Set("weight", booking.Weight).
		Set("total_price", booking.TotalPrice).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", booking.UpdatedAt).
		Where(squirrel.Eq{"id": booking.ID}).
		Where(squirrel.Eq{"stage": expected.Stage}).
		Where(squirrel.Eq{"is_canceled": expected.IsCanceled}).
		Where(squirrel.Eq{"version": expected.Version}).
		Suffix("RETURNING version, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateState - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.Version, &booking.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		exists, existsErr := r.exists(ctx, booking.ID)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return ErrBookingNotFound
		}
		return ErrStaleState
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateState - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// ListReportCandidates выбирает неотмененные бронирования прачечной за период вместе
// с названием услуги (LEFT JOIN: неразрешенная услуга дает NULL, а не отбрасывает строку)
func (r *Repository) ListReportCandidates(ctx context.Context, filter domain.SalesReportFilter) ([]domain.ReportCandidate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.id",
		"b.shop_id",
		"b.booking_date",
		"b.total_price",
		"b.is_canceled",
		"s.name",
	).
		From("bookings b").
		LeftJoin("service_offerings o ON o.id = b.offering_id").
		LeftJoin("laundry_services s ON s.id = o.service_id").
		Where(squirrel.Eq{"b.shop_id": filter.ShopID}).
		Where(squirrel.Eq{"b.is_canceled": false}).
		Where(squirrel.GtOrEq{"b.booking_date": filter.From}).
		Where(squirrel.LtOrEq{"b.booking_date": filter.To}).
		OrderBy("b.booking_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListReportCandidates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListReportCandidates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	candidates := make([]domain.ReportCandidate, 0)
	for rows.Next() {
		var (
			c           domain.ReportCandidate
			serviceName sql.NullString
		)
		if err := rows.Scan(&c.BookingID, &c.ShopID, &c.BookingDate, &c.TotalPrice, &c.IsCanceled, &serviceName); err != nil {
			return nil, fmt.Errorf("%w: ListReportCandidates - scan row: %v", ErrScanRow, err)
		}
		if serviceName.Valid {
			name := serviceName.String
			c.ServiceName = &name
		}
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListReportCandidates - rows error: %v", ErrScanRow, err)
	}

	return candidates, nil
}

func (r *Repository) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - execute query: %v", ErrExecQuery, err)
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в порядке bookingColumns
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.OfferingID,
		&b.ClientID,
		&b.ShopID,
		&b.ShopName,
		&b.ServicePrice,
		&b.PickupRiderID,
		&b.DeliveryRiderID,
		&b.TotalPrice,
		&b.Weight,
		&b.PickupAddress,
		&b.DeliveryAddress,
		&b.Note,
		&b.PaymentMethod,
		&b.BookingDate,
		&b.DeliveryDate,
		&b.CompletedAt,
		&b.CanceledAt,
		&b.Stage,
		&b.IsCanceled,
		&b.Version,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
