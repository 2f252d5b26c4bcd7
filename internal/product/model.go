package product

import (
	"time"

	"shop-backend/internal/category"
)

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// We store price as a string to avoid rounding errors (NUMERIC in Postgres)
	Price     string             `json:"price"`
	Category  *category.Category `json:"category,omitempty"`
	Image     string             `json:"image,omitempty"`
	Available bool               `json:"available"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// CreateProductRequest payload of creation. The category is referenced by
// id only; nested category objects are never accepted on write.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name        string `json:"name"        example:"Margherita"`
	Description string `json:"description" example:"Tomato, mozzarella, basil"`
	Price       string `json:"price"       example:"9.90"`
	CategoryID  string `json:"category_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Image       string `json:"image"`
	Available   *bool  `json:"available"`
}

// UpdateProductRequest payload of partial update. Empty fields keep their
// current value.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	CategoryID  string `json:"category_id"`
	Image       string `json:"image"`
	Available   *bool  `json:"available"`
}
