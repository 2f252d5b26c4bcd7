package main

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shop-backend/internal/httpx"
	"shop-backend/internal/order"
	"shop-backend/internal/policy"
	"shop-backend/internal/product"
	"shop-backend/internal/user"
)

func newGuardedRouter(u *user.User) *gin.Engine {
	orders := order.NewService(newStubOrderRepo(), nil, nil)
	products := &stubProductRepo{byID: map[string]*product.Product{}}

	r := gin.New()
	r.Use(authAs(u))
	r.GET("/orders", httpx.Require(policy.ResOrder, policy.ActRead), listOrdersHandler(orders))
	r.GET("/products", httpx.Require(policy.ResProduct, policy.ActRead), listProductsHandler(products))
	r.DELETE("/products/:id", httpx.Require(policy.ResProduct, policy.ActDelete), deleteProductHandler(products))
	return r
}

func TestRequire_AnonymousOrderAccessIs401(t *testing.T) {
	t.Parallel()

	r := newGuardedRouter(nil)
	w := doJSON(t, r, http.MethodGet, "/orders", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d body=%s (expected 401)", w.Code, w.Body.String())
	}
	if e := decodeError(t, w); e.Kind != httpx.KindUnauthorized {
		t.Fatalf("kind=%s, expected unauthorized", e.Kind)
	}
}

func TestRequire_AnonymousProductReadAllowed(t *testing.T) {
	t.Parallel()

	r := newGuardedRouter(nil)
	w := doJSON(t, r, http.MethodGet, "/products", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s (guests may browse the catalog)", w.Code, w.Body.String())
	}
}

func TestRequire_NonAdminProductWriteIs403(t *testing.T) {
	t.Parallel()

	r := newGuardedRouter(asUser(uuid.NewString()))
	w := doJSON(t, r, http.MethodDelete, "/products/"+uuid.NewString(), "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status=%d body=%s (expected 403)", w.Code, w.Body.String())
	}
	if e := decodeError(t, w); e.Kind != httpx.KindForbidden {
		t.Fatalf("kind=%s, expected forbidden", e.Kind)
	}
}

func TestRequire_AdminProductWritePasses(t *testing.T) {
	t.Parallel()

	r := newGuardedRouter(asAdmin())
	w := doJSON(t, r, http.MethodDelete, "/products/"+uuid.NewString(), "")
	// the policy gate passes; the repo then reports the missing row
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s (expected 404 from the repo, not 403)", w.Code, w.Body.String())
	}
}
