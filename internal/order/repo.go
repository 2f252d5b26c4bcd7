package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/product"
)

var ErrNotFound = errors.New("order not found")

// Scope restricts queries to rows the requester may see. Admins see every
// order; everyone else only their own. A non-admin probing another user's
// order id gets ErrNotFound, never the row.
type Scope struct {
	UserID string
	Admin  bool
}

type Filter struct {
	Status Status
}

// Patch carries partial-update fields; empty means "keep".
type Patch struct {
	Address string
	Phone   string
	Comment string
	Status  Status
}

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string, sc Scope) (*Order, error)
	List(ctx context.Context, sc Scope, f Filter) ([]Order, error)
	Update(ctx context.Context, id string, sc Scope, p Patch) error
	// Cancel transitions to cancelled only from a cancellable status and
	// reports whether a row was changed. The status check happens inside
	// the UPDATE so concurrent cancels cannot both succeed.
	Cancel(ctx context.Context, id string, sc Scope) (bool, error)
	// Delete removes the order (items cascade). With onlyNew set the
	// DELETE only matches status='new'.
	Delete(ctx context.Context, id string, sc Scope, onlyNew bool) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, status, total, address, phone, comment, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
	`, o.ID, o.User.ID, string(o.Status), o.Total, o.Address, o.Phone, o.Comment); err != nil {
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, price)
			VALUES ($1,$2,$3,$4,$5)
		`, it.ID, o.ID, it.ProductID, it.Quantity, it.Price); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

const orderSelect = `
	SELECT o.id, o.status, o.total::text, o.address, o.phone, o.comment,
	       o.created_at, o.updated_at,
	       u.id, u.username, u.email, u.role, u.phone
	FROM orders o
	JOIN users u ON u.id = o.user_id
`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	if err := row.Scan(&o.ID, &o.Status, &o.Total, &o.Address, &o.Phone, &o.Comment,
		&o.CreatedAt, &o.UpdatedAt,
		&o.User.ID, &o.User.Username, &o.User.Email, &o.User.Role, &o.User.Phone); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string, sc Scope) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, orderSelect+`
		WHERE o.id=$1 AND ($2 OR o.user_id=$3)
	`, id, sc.Admin, sc.UserID))
	if err != nil {
		return nil, ErrNotFound
	}
	itemsByOrder, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = itemsByOrder[o.ID]
	return o, nil
}

func (r *PGRepo) List(ctx context.Context, sc Scope, f Filter) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, orderSelect+`
		WHERE ($1 OR o.user_id=$2)
		  AND ($3 = '' OR o.status = $3)
		ORDER BY o.created_at DESC
	`, sc.Admin, sc.UserID, string(f.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	var ids []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	itemsByOrder, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = itemsByOrder[out[i].ID]
	}
	return out, nil
}

// loadItems fetches the line items (with product snapshots) for a set of
// orders in one query.
func (r *PGRepo) loadItems(ctx context.Context, orderIDs []string) (map[string][]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.price::text,
		       p.name, p.description, p.price::text, p.image, p.available
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1)
	`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byOrder := make(map[string][]Item, len(orderIDs))
	for rows.Next() {
		var it Item
		var p product.Product
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price,
			&p.Name, &p.Description, &p.Price, &p.Image, &p.Available); err != nil {
			return nil, err
		}
		p.ID = it.ProductID
		it.Product = &p
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	return byOrder, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, id string, sc Scope, p Patch) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET address    = COALESCE(NULLIF($4,''), address),
		    phone      = COALESCE(NULLIF($5,''), phone),
		    comment    = COALESCE(NULLIF($6,''), comment),
		    status     = COALESCE(NULLIF($7,''), status),
		    updated_at = NOW()
		WHERE id=$1 AND ($2 OR user_id=$3)
	`, id, sc.Admin, sc.UserID, p.Address, p.Phone, p.Comment, string(p.Status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Cancel(ctx context.Context, id string, sc Scope) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = 'cancelled', updated_at = NOW()
		WHERE id=$1 AND ($2 OR user_id=$3) AND status IN ('new','preparing')
	`, id, sc.Admin, sc.UserID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PGRepo) Delete(ctx context.Context, id string, sc Scope, onlyNew bool) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		DELETE FROM orders
		WHERE id=$1 AND ($2 OR user_id=$3) AND (NOT $4 OR status='new')
	`, id, sc.Admin, sc.UserID, onlyNew)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
