package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"

	"github.com/swarvbook/booking-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	GetByEmail(ctx context.Context, email string) (*Client, error)
	// FindByIDPrefix resolves a referral code to the client whose id starts with prefix.
	FindByIDPrefix(ctx context.Context, prefix string) (*Client, error)
	List(ctx context.Context, filter Filter) ([]*Client, int, error)
	ListMarketing(ctx context.Context) ([]*Client, error)
	Update(ctx context.Context, c *Client) error
}

type pgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(conn db.DBTX) Repository {
	return &pgxRepository{db: conn}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var clientColumns = []string{
	"id", "customer_card_id", "first_name", "last_name", "full_name",
	"email", "phone", "address_line", "zipcode", "birthday", "notes",
	"marketing_opt_in", "processing_consent", "trusted", "blacklisted",
	"allergens", "referred_by", "created_at",
}

func scanClient(row pgx.Row, extra ...any) (*Client, error) {
	var c Client
	var birthday *time.Time
	dest := []any{
		&c.ID, &c.CustomerCardID, &c.FirstName, &c.LastName, &c.FullName,
		&c.Email, &c.Phone, &c.AddressLine, &c.Zipcode, &birthday, &c.Notes,
		&c.MarketingOptIn, &c.ProcessingConsent, &c.Trusted, &c.Blacklisted,
		&c.Allergens, &c.ReferredBy, &c.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if birthday != nil {
		d := civil.DateOf(*birthday)
		c.Birthday = &d
	}
	return &c, nil
}

func birthdayArg(d *civil.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.In(time.UTC)
	return &t
}

func (r *pgxRepository) Create(ctx context.Context, c *Client) error {
	query, args, err := psql.Insert("public.clients").
		Columns(
			"first_name", "last_name", "full_name", "email", "phone",
			"address_line", "zipcode", "birthday", "allergens",
			"marketing_opt_in", "processing_consent", "referred_by",
		).
		Values(
			c.FirstName, c.LastName, c.FullName, c.Email, c.Phone,
			c.AddressLine, c.Zipcode, birthdayArg(c.Birthday), c.Allergens,
			c.MarketingOptIn, c.ProcessingConsent, c.ReferredBy,
		).
		Suffix("RETURNING id, customer_card_id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create client query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CustomerCardID, &c.CreatedAt); err != nil {
		if db.PgErrorCode(err) == pgerrcode.UniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("create client failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*Client, error) {
	query, args, err := psql.Select(clientColumns...).
		From("public.clients").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get client query failed: %w", err)
	}

	c, err := scanClient(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get client failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*Client, error) {
	return r.getOne(ctx, squirrel.Expr("lower(email) = ?", strings.ToLower(email)))
}

func (r *pgxRepository) FindByIDPrefix(ctx context.Context, prefix string) (*Client, error) {
	return r.getOne(ctx, squirrel.Like{"id::text": prefix + "%"})
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Client, int, error) {
	cols := append(append([]string{}, clientColumns...), "count(*) OVER() AS total_count")
	query := psql.Select(cols...).
		From("public.clients").
		OrderBy("created_at DESC")

	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + likeEscaper.Replace(term) + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"full_name": like},
			squirrel.ILike{"first_name": like},
			squirrel.ILike{"last_name": like},
			squirrel.ILike{"email": like},
			squirrel.ILike{"phone": like},
		})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = DefaultPageSize
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list clients query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients failed: %w", err)
	}
	defer rows.Close()

	var clients []*Client
	var total int
	for rows.Next() {
		c, err := scanClient(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan client failed: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate clients failed: %w", err)
	}
	return clients, total, nil
}

func (r *pgxRepository) ListMarketing(ctx context.Context) ([]*Client, error) {
	query, args, err := psql.Select(clientColumns...).
		From("public.clients").
		Where(squirrel.Eq{"marketing_opt_in": true}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build marketing segment query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list marketing segment failed: %w", err)
	}
	defer rows.Close()

	var clients []*Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client failed: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients failed: %w", err)
	}
	return clients, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Client) error {
	query, args, err := psql.Update("public.clients").
		Set("notes", c.Notes).
		Set("trusted", c.Trusted).
		Set("blacklisted", c.Blacklisted).
		Set("marketing_opt_in", c.MarketingOptIn).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update client query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update client failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
