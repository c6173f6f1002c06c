package api

import (
	"context"                      // Request-scoped context
	"user_orders/internal/dto"     // Request payloads
	"user_orders/internal/service" // Response envelope

	"github.com/gin-gonic/gin" // Gin web framework
)

// OrderService is the order side of the service layer as seen by HTTP
type OrderService interface {
	CreateOrder(ctx context.Context, req dto.OrderRequest) service.Response
	UpdateOrder(ctx context.Context, id uint, req dto.OrderRequest) service.Response
	DeleteOrder(ctx context.Context, invoiceNumber string) service.Response
}

// CreateOrderHandler places an order for the user named in the body
func CreateOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.OrderRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error()) // Validation failed
			return
		}
		req.CreatedBy = withOperator(c, req.CreatedBy) // Default creator to the caller
		respond(c, svc.CreateOrder(c.Request.Context(), req))
	}
}

// UpdateOrderHandler replaces every field of an order
func UpdateOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var req dto.OrderRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error()) // Validation failed
			return
		}
		req.UpdatedBy = withOperator(c, req.UpdatedBy) // Default updater to the caller
		respond(c, svc.UpdateOrder(c.Request.Context(), id, req))
	}
}

// DeleteOrderHandler removes an order by invoice number
func DeleteOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, svc.DeleteOrder(c.Request.Context(), c.Param("invoiceNumber")))
	}
}
