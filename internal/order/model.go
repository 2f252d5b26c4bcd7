package order

import (
	"time"

	"shop-backend/internal/product"
)

type Status string

const (
	StatusNew       Status = "new"
	StatusPreparing Status = "preparing"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusPreparing, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether an order in this status may still be
// cancelled. done and cancelled are terminal.
func (s Status) Cancellable() bool {
	return s == StatusNew || s == StatusPreparing
}

// Owner is the user summary embedded in order responses.
type Owner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
}

type Order struct {
	ID     string `json:"id"`
	User   Owner  `json:"user"`
	Status Status `json:"status"`
	// Total is NUMERIC in Postgres, carried as a string on the wire.
	Total     string    `json:"total_price"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	Items     []Item    `json:"order_items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Item struct {
	ID        string           `json:"id"`
	OrderID   string           `json:"order_id"`
	ProductID string           `json:"product_id"`
	Product   *product.Product `json:"product,omitempty"`
	Quantity  int              `json:"quantity"`
	// Price is a snapshot taken at order time, decoupled from the live
	// product price.
	Price string `json:"price"`
}
