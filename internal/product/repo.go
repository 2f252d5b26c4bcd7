// Package product provides the repository interface and PostgreSQL
// implementation for the catalog.
package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/category"
)

var ErrNotFound = errors.New("product not found")

type Query struct {
	Q          string
	CategoryID string
	Limit      int
	Offset     int
}

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, q Query) ([]Product, error)
	Update(ctx context.Context, p *Product, updatePrice, updateAvailable bool) error
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	categoryID := ""
	if p.Category != nil {
		categoryID = p.Category.ID
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, description, price, category_id, image, available, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
	`, p.ID, p.Name, p.Description, p.Price, categoryID, p.Image, p.Available)
	return err
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.price::text, p.image, p.available,
	       p.created_at, p.updated_at,
	       c.id, c.name, c.slug
	FROM products p
	JOIN categories c ON c.id = p.category_id
`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	var c category.Category
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.Available,
		&p.CreatedAt, &p.UpdatedAt, &c.ID, &c.Name, &c.Slug); err != nil {
		return nil, err
	}
	p.Category = &c
	return &p, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, productSelect+` WHERE p.id=$1`, id))
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// List returns available products only; unavailable ones are hidden from
// the catalog rather than deleted.
func (r *PGRepo) List(ctx context.Context, q Query) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	search := strings.TrimSpace(q.Q)

	rows, err := r.db.Query(ctx, productSelect+`
		WHERE p.available
		  AND ($1 = '' OR p.name ILIKE '%'||$1||'%' OR p.description ILIKE '%'||$1||'%')
		  AND ($2 = '' OR p.category_id = $2)
		ORDER BY p.created_at DESC
		LIMIT $3 OFFSET $4
	`, search, q.CategoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, p *Product, updatePrice, updateAvailable bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	categoryID := ""
	if p.Category != nil {
		categoryID = p.Category.ID
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name        = COALESCE(NULLIF($2,''), name),
		    description = COALESCE(NULLIF($3,''), description),
		    price       = CASE WHEN $4 THEN $5::numeric ELSE price END,
		    category_id = COALESCE(NULLIF($6,''), category_id),
		    image       = COALESCE(NULLIF($7,''), image),
		    available   = CASE WHEN $8 THEN $9 ELSE available END,
		    updated_at  = NOW()
		WHERE id = $1
	`, p.ID, p.Name, p.Description, updatePrice, nullIfEmpty(p.Price), categoryID, p.Image, updateAvailable, p.Available)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
