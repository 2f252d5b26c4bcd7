package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shop-backend/internal/category"
	"shop-backend/internal/httpx"
	"shop-backend/internal/product"
)

func parsePrice(s string) (string, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", err
	}
	if d.IsNegative() {
		return "", errors.New("price must be non-negative")
	}
	return d.StringFixed(2), nil
}

// listProductsHandler godoc
// @Summary  List available products
// @Tags     products
// @Param    q query string false "search in name/description"
// @Param    category query string false "category id"
// @Param    limit query int false "page size"
// @Param    offset query int false "page offset"
// @Success  200 {array} product.Product
// @Router   /products [get]
func listProductsHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))
		items, err := repo.List(c.Request.Context(), product.Query{
			Q:          c.Query("q"),
			CategoryID: c.Query("category"),
			Limit:      limit,
			Offset:     offset,
		})
		if err != nil {
			httpx.Internal(c, "list failed")
			return
		}
		if items == nil {
			items = []product.Product{}
		}
		c.JSON(http.StatusOK, items)
	}
}

// getProductHandler godoc
// @Summary  Get a product
// @Tags     products
// @Success  200 {object} product.Product
// @Failure  404 {object} httpx.ErrorBody
// @Router   /products/{id} [get]
func getProductHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.NotFound(c, "product not found")
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// createProductHandler godoc
// @Summary   Create a product (admin)
// @Tags      products
// @Security  BearerAuth
// @Param     body body product.CreateProductRequest true "product; category referenced by category_id"
// @Success   201 {object} product.Product
// @Failure   400 {object} httpx.ErrorBody
// @Router    /products [post]
func createProductHandler(products product.Repository, categories category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in product.CreateProductRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Validation(c, "invalid json payload")
			return
		}
		if in.Name == "" || in.Price == "" || in.CategoryID == "" {
			httpx.Validation(c, "name, price and category_id are required")
			return
		}
		price, err := parsePrice(in.Price)
		if err != nil {
			httpx.Validation(c, "invalid price: "+err.Error())
			return
		}
		cat, err := categories.GetByID(c.Request.Context(), in.CategoryID)
		if err != nil {
			httpx.Validation(c, "unknown category_id")
			return
		}
		available := true
		if in.Available != nil {
			available = *in.Available
		}
		p := &product.Product{
			ID:          uuid.NewString(),
			Name:        in.Name,
			Description: in.Description,
			Price:       price,
			Category:    cat,
			Image:       in.Image,
			Available:   available,
		}
		if err := products.Create(c.Request.Context(), p); err != nil {
			httpx.Internal(c, "create failed")
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// updateProductHandler godoc
// @Summary   Partially update a product (admin)
// @Tags      products
// @Security  BearerAuth
// @Param     body body product.UpdateProductRequest true "fields to update; empty keeps current"
// @Success   200 {object} product.Product
// @Failure   400 {object} httpx.ErrorBody
// @Failure   404 {object} httpx.ErrorBody
// @Router    /products/{id} [patch]
func updateProductHandler(products product.Repository, categories category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in product.UpdateProductRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Validation(c, "invalid json payload")
			return
		}
		p := &product.Product{
			ID:          c.Param("id"),
			Name:        in.Name,
			Description: in.Description,
			Image:       in.Image,
		}
		updatePrice := false
		if in.Price != "" {
			price, err := parsePrice(in.Price)
			if err != nil {
				httpx.Validation(c, "invalid price: "+err.Error())
				return
			}
			p.Price = price
			updatePrice = true
		}
		if in.CategoryID != "" {
			cat, err := categories.GetByID(c.Request.Context(), in.CategoryID)
			if err != nil {
				httpx.Validation(c, "unknown category_id")
				return
			}
			p.Category = cat
		}
		updateAvailable := false
		if in.Available != nil {
			p.Available = *in.Available
			updateAvailable = true
		}
		if err := products.Update(c.Request.Context(), p, updatePrice, updateAvailable); err != nil {
			if errors.Is(err, product.ErrNotFound) {
				httpx.NotFound(c, err.Error())
				return
			}
			httpx.Internal(c, "update failed")
			return
		}
		out, err := products.GetByID(c.Request.Context(), p.ID)
		if err != nil {
			httpx.NotFound(c, "product not found")
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// deleteProductHandler godoc
// @Summary   Delete a product (admin); order items cascade, reviews keep a null product ref
// @Tags      products
// @Security  BearerAuth
// @Success   204
// @Failure   404 {object} httpx.ErrorBody
// @Router    /products/{id} [delete]
func deleteProductHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Internal(c, "delete failed")
			return
		}
		if !ok {
			httpx.NotFound(c, "product not found")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
