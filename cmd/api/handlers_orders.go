package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/httpx"
	"shop-backend/internal/order"
)

// orderError maps order service errors onto the response envelope.
func orderError(c *gin.Context, err error) {
	var ise *order.InvalidStateError
	switch {
	case errors.Is(err, order.ErrNotFound):
		httpx.NotFound(c, err.Error())
	case errors.As(err, &ise):
		httpx.InvalidState(c, ise.Error())
	case errors.Is(err, order.ErrBadStatus),
		errors.Is(err, order.ErrBadQuantity),
		errors.Is(err, order.ErrBadTotal),
		errors.Is(err, order.ErrUnknownProduct):
		httpx.Validation(c, err.Error())
	case errors.Is(err, order.ErrStatusNotAllowed):
		httpx.Forbidden(c, err.Error())
	default:
		httpx.Internal(c, "order operation failed")
	}
}

// listOrdersHandler godoc
// @Summary   List orders (own orders; admins see all)
// @Tags      orders
// @Security  BearerAuth
// @Param     status query string false "filter by status (new|preparing|done|cancelled)"
// @Success   200 {array} order.Order
// @Failure   400 {object} httpx.ErrorBody
// @Router    /orders [get]
func listOrdersHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context(), httpx.CurrentUser(c), c.Query("status"))
		if err != nil {
			orderError(c, err)
			return
		}
		if orders == nil {
			orders = []order.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

// createOrderHandler godoc
// @Summary   Create an order
// @Description  The owner is the requester and the status starts at "new" regardless of the payload.
// @Tags      orders
// @Security  BearerAuth
// @Param     body body order.CreateOrderRequest true "order"
// @Success   201 {object} order.Order
// @Failure   400 {object} httpx.ErrorBody
// @Router    /orders [post]
func createOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.CreateOrderRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Validation(c, "invalid json payload")
			return
		}
		o, err := svc.Create(c.Request.Context(), httpx.CurrentUser(c), in)
		if err != nil {
			orderError(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// getOrderHandler godoc
// @Summary   Get an order (scoped by role)
// @Tags      orders
// @Security  BearerAuth
// @Success   200 {object} order.Order
// @Failure   404 {object} httpx.ErrorBody
// @Router    /orders/{id} [get]
func getOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Get(c.Request.Context(), httpx.CurrentUser(c), c.Param("id"))
		if err != nil {
			orderError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// updateOrderHandler godoc
// @Summary   Partially update an order
// @Tags      orders
// @Security  BearerAuth
// @Param     body body order.UpdateOrderRequest true "fields to update; status is admin-only"
// @Success   200 {object} order.Order
// @Failure   400 {object} httpx.ErrorBody
// @Failure   404 {object} httpx.ErrorBody
// @Router    /orders/{id} [patch]
func updateOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.UpdateOrderRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Validation(c, "invalid json payload")
			return
		}
		o, err := svc.Update(c.Request.Context(), httpx.CurrentUser(c), c.Param("id"), in)
		if err != nil {
			orderError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// cancelOrderHandler godoc
// @Summary   Cancel an order (only while new or preparing)
// @Tags      orders
// @Security  BearerAuth
// @Success   200 {object} map[string]string
// @Failure   400 {object} httpx.ErrorBody "invalid_state when already done or cancelled"
// @Failure   404 {object} httpx.ErrorBody
// @Router    /orders/{id}/cancel [post]
func cancelOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Cancel(c.Request.Context(), httpx.CurrentUser(c), c.Param("id"))
		if err != nil {
			orderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":    "order cancelled",
			"order_id":   o.ID,
			"new_status": string(o.Status),
		})
	}
}

// deleteOrderHandler godoc
// @Summary   Delete an order permanently (admins always; owners only while new)
// @Description  Bound to both DELETE /orders/{id} and DELETE /orders/{id}/delete_order.
// @Tags      orders
// @Security  BearerAuth
// @Success   200 {object} map[string]string
// @Failure   400 {object} httpx.ErrorBody
// @Failure   404 {object} httpx.ErrorBody
// @Router    /orders/{id} [delete]
func deleteOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := svc.Delete(c.Request.Context(), httpx.CurrentUser(c), id); err != nil {
			orderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order deleted", "order_id": id})
	}
}
