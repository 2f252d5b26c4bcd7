package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shop-backend/internal/category"
	"shop-backend/internal/httpx"
)

// listCategoriesHandler godoc
// @Summary  List categories
// @Tags     categories
// @Success  200 {array} category.Category
// @Router   /categories [get]
func listCategoriesHandler(repo category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := repo.List(c.Request.Context())
		if err != nil {
			httpx.Internal(c, "list failed")
			return
		}
		if cats == nil {
			cats = []category.Category{}
		}
		c.JSON(http.StatusOK, cats)
	}
}

// getCategoryHandler godoc
// @Summary  Get a category
// @Tags     categories
// @Success  200 {object} category.Category
// @Failure  404 {object} httpx.ErrorBody
// @Router   /categories/{id} [get]
func getCategoryHandler(repo category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.NotFound(c, "category not found")
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

type categoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// createCategoryHandler godoc
// @Summary   Create a category
// @Tags      categories
// @Security  BearerAuth
// @Param     body body categoryRequest true "category"
// @Success   201 {object} category.Category
// @Failure   400 {object} httpx.ErrorBody
// @Failure   409 {object} httpx.ErrorBody
// @Router    /categories [post]
func createCategoryHandler(repo category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in categoryRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Validation(c, "invalid json payload")
			return
		}
		if in.Name == "" || in.Slug == "" {
			httpx.Validation(c, "name and slug are required")
			return
		}
		cat := &category.Category{ID: uuid.NewString(), Name: in.Name, Slug: in.Slug}
		if err := repo.Create(c.Request.Context(), cat); err != nil {
			if errors.Is(err, category.ErrSlugTaken) {
				httpx.Conflict(c, err.Error())
				return
			}
			httpx.Internal(c, "create failed")
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

// updateCategoryHandler godoc
// @Summary   Partially update a category
// @Tags      categories
// @Security  BearerAuth
// @Param     body body categoryRequest true "fields to update; empty keeps current"
// @Success   200 {object} category.Category
// @Failure   404 {object} httpx.ErrorBody
// @Router    /categories/{id} [patch]
func updateCategoryHandler(repo category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in categoryRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Validation(c, "invalid json payload")
			return
		}
		cat := &category.Category{ID: c.Param("id"), Name: in.Name, Slug: in.Slug}
		if err := repo.Update(c.Request.Context(), cat); err != nil {
			switch {
			case errors.Is(err, category.ErrNotFound):
				httpx.NotFound(c, err.Error())
			case errors.Is(err, category.ErrSlugTaken):
				httpx.Conflict(c, err.Error())
			default:
				httpx.Internal(c, "update failed")
			}
			return
		}
		out, err := repo.GetByID(c.Request.Context(), cat.ID)
		if err != nil {
			httpx.NotFound(c, "category not found")
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// deleteCategoryHandler godoc
// @Summary   Delete a category; its products (and their order items and reviews) cascade
// @Tags      categories
// @Security  BearerAuth
// @Success   204
// @Failure   404 {object} httpx.ErrorBody
// @Router    /categories/{id} [delete]
func deleteCategoryHandler(repo category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Internal(c, "delete failed")
			return
		}
		if !ok {
			httpx.NotFound(c, "category not found")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
