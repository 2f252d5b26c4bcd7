package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shop-backend/internal/httpx"
	"shop-backend/internal/product"
	"shop-backend/internal/review"
)

// listReviewsHandler godoc
// @Summary  List reviews
// @Tags     reviews
// @Param    product query string false "product id"
// @Success  200 {array} review.Review
// @Router   /reviews [get]
func listReviewsHandler(repo review.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := repo.List(c.Request.Context(), c.Query("product"))
		if err != nil {
			httpx.Internal(c, "list failed")
			return
		}
		if reviews == nil {
			reviews = []review.Review{}
		}
		c.JSON(http.StatusOK, reviews)
	}
}

// getReviewHandler godoc
// @Summary  Get a review
// @Tags     reviews
// @Success  200 {object} review.Review
// @Failure  404 {object} httpx.ErrorBody
// @Router   /reviews/{id} [get]
func getReviewHandler(repo review.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		rv, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.NotFound(c, "review not found")
			return
		}
		c.JSON(http.StatusOK, rv)
	}
}

// createReviewHandler godoc
// @Summary   Create a review; the author is always the requester
// @Tags      reviews
// @Security  BearerAuth
// @Param     body body review.CreateReviewRequest true "review"
// @Success   201 {object} review.Review
// @Failure   400 {object} httpx.ErrorBody
// @Router    /reviews [post]
func createReviewHandler(reviews review.Repository, products product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in review.CreateReviewRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Validation(c, "invalid json payload")
			return
		}
		if in.Rating < 1 || in.Rating > 5 {
			httpx.Validation(c, review.ErrBadRating.Error())
			return
		}
		if in.Text == "" {
			httpx.Validation(c, review.ErrEmptyText.Error())
			return
		}
		p, err := products.GetByID(c.Request.Context(), in.ProductID)
		if err != nil {
			httpx.Validation(c, review.ErrNoProduct.Error())
			return
		}
		u := httpx.CurrentUser(c)
		rv := &review.Review{
			ID:          uuid.NewString(),
			User:        review.Author{ID: u.ID, Username: u.Username},
			ProductID:   &p.ID,
			ProductName: &p.Name,
			Text:        in.Text,
			Rating:      in.Rating,
		}
		if err := reviews.Create(c.Request.Context(), rv); err != nil {
			httpx.Internal(c, "create failed")
			return
		}
		c.JSON(http.StatusCreated, rv)
	}
}
