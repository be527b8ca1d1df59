package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"

	"github.com/swarvbook/booking-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, s *Staff) error
	GetByID(ctx context.Context, id string) (*Staff, error)
	List(ctx context.Context, activeOnly bool) ([]*Staff, error)
	Update(ctx context.Context, s *Staff) error
}

type pgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(conn db.DBTX) Repository {
	return &pgxRepository{db: conn}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) Create(ctx context.Context, s *Staff) error {
	query, args, err := psql.Insert("public.staff").
		Columns("name", "email", "active").
		Values(s.Name, s.Email, s.Active).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create staff query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
		if db.PgErrorCode(err) == pgerrcode.UniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("create staff failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Staff, error) {
	query, args, err := psql.Select("id", "name", "email", "active", "created_at").
		From("public.staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get staff query failed: %w", err)
	}

	var s Staff
	if err := r.db.QueryRow(ctx, query, args...).Scan(&s.ID, &s.Name, &s.Email, &s.Active, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get staff failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) List(ctx context.Context, activeOnly bool) ([]*Staff, error) {
	q := psql.Select("id", "name", "email", "active", "created_at").
		From("public.staff").
		OrderBy("name ASC")
	if activeOnly {
		q = q.Where(squirrel.Eq{"active": true})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list staff query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list staff failed: %w", err)
	}
	defer rows.Close()

	var out []*Staff
	for rows.Next() {
		var s Staff
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Active, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan staff failed: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate staff failed: %w", err)
	}
	return out, nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Staff) error {
	query, args, err := psql.Update("public.staff").
		Set("name", s.Name).
		Set("email", s.Email).
		Set("active", s.Active).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update staff query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if db.PgErrorCode(err) == pgerrcode.UniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("update staff failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
