package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shop-backend/internal/httpx"
	"shop-backend/internal/product"
	"shop-backend/internal/review"
	"shop-backend/internal/user"
)

// stubReviewRepo keeps reviews in memory.
type stubReviewRepo struct {
	byID map[string]*review.Review
}

func (s *stubReviewRepo) Create(ctx context.Context, rv *review.Review) error {
	if s.byID == nil {
		s.byID = map[string]*review.Review{}
	}
	cp := *rv
	s.byID[rv.ID] = &cp
	return nil
}

func (s *stubReviewRepo) GetByID(ctx context.Context, id string) (*review.Review, error) {
	rv, ok := s.byID[id]
	if !ok {
		return nil, review.ErrNotFound
	}
	return rv, nil
}

func (s *stubReviewRepo) List(ctx context.Context, productID string) ([]review.Review, error) {
	var out []review.Review
	for _, rv := range s.byID {
		if productID != "" && (rv.ProductID == nil || *rv.ProductID != productID) {
			continue
		}
		out = append(out, *rv)
	}
	return out, nil
}

func newReviewRouter(reviews review.Repository, products product.Repository, u *user.User) *gin.Engine {
	r := gin.New()
	r.Use(authAs(u))
	r.GET("/reviews", listReviewsHandler(reviews))
	r.GET("/reviews/:id", getReviewHandler(reviews))
	r.POST("/reviews", createReviewHandler(reviews, products))
	return r
}

func TestCreateReview_AuthorIsRequester(t *testing.T) {
	t.Parallel()

	prodID := uuid.NewString()
	products := &stubProductRepo{byID: map[string]*product.Product{
		prodID: {ID: prodID, Name: "Carbonara", Price: "12.50", Available: true},
	}}
	reviews := &stubReviewRepo{}
	author := asUser(uuid.NewString())
	r := newReviewRouter(reviews, products, author)

	body := fmt.Sprintf(`{"product_id":%q,"text":"great","rating":5}`, prodID)
	w := doJSON(t, r, http.MethodPost, "/reviews", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got review.Review
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.User.ID != author.ID {
		t.Fatalf("author=%s, expected requester %s", got.User.ID, author.ID)
	}
	if got.ProductID == nil || *got.ProductID != prodID {
		t.Fatalf("product reference missing: %s", w.Body.String())
	}
}

func TestCreateReview_RatingBounds(t *testing.T) {
	t.Parallel()

	prodID := uuid.NewString()
	products := &stubProductRepo{byID: map[string]*product.Product{
		prodID: {ID: prodID, Name: "Carbonara", Price: "12.50"},
	}}
	reviews := &stubReviewRepo{}
	r := newReviewRouter(reviews, products, asUser(uuid.NewString()))

	for _, rating := range []int{0, 6, -1} {
		body := fmt.Sprintf(`{"product_id":%q,"text":"x","rating":%d}`, prodID, rating)
		w := doJSON(t, r, http.MethodPost, "/reviews", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("rating=%d: status=%d body=%s (expected 400)", rating, w.Code, w.Body.String())
		}
		if e := decodeError(t, w); e.Kind != httpx.KindValidation {
			t.Fatalf("rating=%d: kind=%s, expected validation", rating, e.Kind)
		}
	}
	if len(reviews.byID) != 0 {
		t.Fatalf("no review may be created with an out-of-range rating")
	}
}

func TestCreateReview_UnknownProduct(t *testing.T) {
	t.Parallel()

	reviews := &stubReviewRepo{}
	r := newReviewRouter(reviews, &stubProductRepo{byID: map[string]*product.Product{}}, asUser(uuid.NewString()))

	body := fmt.Sprintf(`{"product_id":%q,"text":"x","rating":3}`, uuid.NewString())
	w := doJSON(t, r, http.MethodPost, "/reviews", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (expected 400)", w.Code, w.Body.String())
	}
}

func TestListReviews_FilterByProduct(t *testing.T) {
	t.Parallel()

	prodA, prodB := uuid.NewString(), uuid.NewString()
	reviews := &stubReviewRepo{byID: map[string]*review.Review{}}
	for i, pid := range []string{prodA, prodA, prodB} {
		id := uuid.NewString()
		p := pid
		reviews.byID[id] = &review.Review{
			ID: id, User: review.Author{ID: uuid.NewString(), Username: fmt.Sprintf("u%d", i)},
			ProductID: &p, Text: "t", Rating: 4,
		}
	}
	r := newReviewRouter(reviews, &stubProductRepo{}, nil)

	w := doJSON(t, r, http.MethodGet, "/reviews?product="+prodA, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var out []review.Review
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len=%d, expected 2 reviews for product A", len(out))
	}
}
