package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/swarvbook/booking-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context, filter Filter) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
}

type pgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(conn db.DBTX) Repository {
	return &pgxRepository{db: conn}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) Create(ctx context.Context, item *Item) error {
	query, args, err := psql.Insert("public.services").
		Columns("name", "price", "duration_minutes", "active").
		Values(item.Name, item.Price, item.DurationMinutes, item.Active).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create service query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&item.ID, &item.CreatedAt); err != nil {
		return fmt.Errorf("create service failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	query, args, err := psql.Select("id", "name", "price", "duration_minutes", "active", "created_at").
		From("public.services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get service query failed: %w", err)
	}

	var it Item
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&it.ID, &it.Name, &it.Price, &it.DurationMinutes, &it.Active, &it.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get service failed: %w", err)
	}
	return &it, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Item, error) {
	q := psql.Select("id", "name", "price", "duration_minutes", "active", "created_at").
		From("public.services").
		OrderBy("name ASC")
	if filter.ActiveOnly {
		q = q.Where(squirrel.Eq{"active": true})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list services query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list services failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.DurationMinutes, &it.Active, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service failed: %w", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services failed: %w", err)
	}
	return items, nil
}

func (r *pgxRepository) Update(ctx context.Context, item *Item) error {
	query, args, err := psql.Update("public.services").
		Set("name", item.Name).
		Set("price", item.Price).
		Set("duration_minutes", item.DurationMinutes).
		Set("active", item.Active).
		Where(squirrel.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update service query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update service failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
