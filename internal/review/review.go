package review

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound  = errors.New("review not found")
	ErrBadRating = errors.New("rating must be between 1 and 5")
	ErrEmptyText = errors.New("review text is required")
	ErrNoProduct = errors.New("product not found")
)

// Author is the user summary embedded in a review.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Review struct {
	ID   string `json:"id"`
	User Author `json:"user"`
	// ProductID is nil when the reviewed product was deleted; the review
	// itself survives.
	ProductID   *string   `json:"product_id"`
	ProductName *string   `json:"product_name,omitempty"`
	Text        string    `json:"text"`
	Rating      int       `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateReviewRequest payload. The author is always the requester.
// swagger:model CreateReviewRequest
type CreateReviewRequest struct {
	ProductID string `json:"product_id"`
	Text      string `json:"text"`
	Rating    int    `json:"rating" example:"5"`
}

type Repository interface {
	Create(ctx context.Context, rv *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context, productID string) ([]Review, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, rv *Review) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO reviews (id, user_id, product_id, text, rating, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
	`, rv.ID, rv.User.ID, rv.ProductID, rv.Text, rv.Rating)
	return err
}

const reviewSelect = `
	SELECT r.id, u.id, u.username, r.product_id, p.name, r.text, r.rating, r.created_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	LEFT JOIN products p ON p.id = r.product_id
`

func scanReview(row interface{ Scan(...any) error }) (*Review, error) {
	var rv Review
	if err := row.Scan(&rv.ID, &rv.User.ID, &rv.User.Username, &rv.ProductID,
		&rv.ProductName, &rv.Text, &rv.Rating, &rv.CreatedAt); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rv, err := scanReview(r.db.QueryRow(ctx, reviewSelect+` WHERE r.id=$1`, id))
	if err != nil {
		return nil, ErrNotFound
	}
	return rv, nil
}

func (r *PGRepo) List(ctx context.Context, productID string) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, reviewSelect+`
		WHERE ($1 = '' OR r.product_id = $1)
		ORDER BY r.created_at DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rv)
	}
	return out, rows.Err()
}
