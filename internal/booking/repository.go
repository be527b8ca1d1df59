package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"

	"github.com/swarvbook/booking-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, booking *Booking) error

	// ListByStaffRange returns the staff member's bookings starting in [from, to),
	// any status, ordered by start time.
	ListByStaffRange(ctx context.Context, staffID string, from, to time.Time) ([]*Booking, error)
	// ListByClient returns every booking of the client, newest start first.
	ListByClient(ctx context.Context, clientID string) ([]*Booking, error)
}

type pgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(conn db.DBTX) Repository {
	return &pgxRepository{db: conn}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const clientNameExpr = "COALESCE(NULLIF(c.full_name, ''), NULLIF(TRIM(CONCAT_WS(' ', c.first_name, c.last_name)), ''), 'Unknown')"

var bookingColumns = []string{
	"b.id", "b.client_id", "b.staff_id", "b.service_id",
	"b.start_time", "b.end_time", "b.status", "b.notes", "b.created_at", "b.updated_at",
	clientNameExpr, "c.email", "c.phone",
	"st.name", "sv.name", "sv.price", "sv.duration_minutes",
}

var sortColumns = map[string]string{
	"start_time": "b.start_time",
	"created_at": "b.created_at",
	"status":     "b.status",
}

func selectBookings(extra ...string) squirrel.SelectBuilder {
	cols := append(append([]string{}, bookingColumns...), extra...)
	return psql.Select(cols...).
		From("public.bookings b").
		Join("public.clients c ON b.client_id = c.id").
		Join("public.staff st ON b.staff_id = st.id").
		Join("public.services sv ON b.service_id = sv.id")
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	var status string
	dest := []any{
		&b.ID, &b.ClientID, &b.StaffID, &b.ServiceID,
		&b.StartTime, &b.EndTime, &status, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
		&b.ClientName, &b.ClientEmail, &b.ClientPhone,
		&b.StaffName, &b.ServiceName, &b.ServicePrice, &b.ServiceDuration,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	b.Status = Status(status)
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	query, args, err := psql.Insert("public.bookings").
		Columns("client_id", "staff_id", "service_id", "start_time", "end_time", "status", "notes").
		Values(b.ClientID, b.StaffID, b.ServiceID, b.StartTime, b.EndTime, string(b.Status), b.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if db.PgErrorCode(err) == pgerrcode.ExclusionViolation {
			return ErrTimeConflict
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	query := selectBookings("count(*) OVER() AS total_count")

	if filter.ClientID != "" {
		query = query.Where(squirrel.Eq{"b.client_id": filter.ClientID})
	}
	if filter.StaffID != "" {
		query = query.Where(squirrel.Eq{"b.staff_id": filter.StaffID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"b.start_time": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.Lt{"b.start_time": *filter.To})
	}

	orderBy, ok := sortColumns[filter.SortBy]
	if !ok {
		orderBy = "b.start_time"
	}
	orderDir := "DESC"
	if filter.SortOrder == "asc" || filter.SortOrder == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings failed: %w", err)
	}

	return bookings, total, nil
}

func (r *pgxRepository) ListByStaffRange(ctx context.Context, staffID string, from, to time.Time) ([]*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.staff_id": staffID}).
		Where(squirrel.GtOrEq{"b.start_time": from}).
		Where(squirrel.Lt{"b.start_time": to}).
		OrderBy("b.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build staff bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) ListByClient(ctx context.Context, clientID string) ([]*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.client_id": clientID}).
		OrderBy("b.start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build client bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) queryBookings(ctx context.Context, query string, args []any) ([]*Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings failed: %w", err)
	}
	return bookings, nil
}

// Update persists status and notes. Times are immutable once booked.
func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	query, args, err := psql.Update("public.bookings").
		Set("status", string(b.Status)).
		Set("notes", b.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if db.PgErrorCode(err) == pgerrcode.ExclusionViolation {
			return ErrTimeConflict
		}
		return fmt.Errorf("update booking failed: %w", err)
	}
	return nil
}
