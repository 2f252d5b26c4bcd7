package order

// CreateOrderItem payload of a single line item. Products are referenced
// by id only.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	ProductID string `json:"product_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity  int    `json:"quantity"  example:"2"`
}

// CreateOrderRequest payload of order creation. The owner and status
// fields are never taken from the client: the owner is the requester and
// the status always starts at "new". When items are present the total is
// computed server-side from snapshot prices; total_price is only honored
// for itemless orders.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Items      []CreateOrderItem `json:"items"`
	TotalPrice string            `json:"total_price" example:"39.80"`
	Address    string            `json:"address"`
	Phone      string            `json:"phone"`
	Comment    string            `json:"comment"`
}

// UpdateOrderRequest payload of partial update. Empty fields keep their
// current value. Status may only be set by admins.
// swagger:model UpdateOrderRequest
type UpdateOrderRequest struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Comment string `json:"comment"`
	Status  Status `json:"status"`
}
