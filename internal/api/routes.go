package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// RegisterRoutes mounts the user and order endpoints. writeGuard, when given,
// runs in front of every POST, PUT and DELETE route.
func RegisterRoutes(r *gin.Engine, users UserService, orders OrderService, writeGuard ...gin.HandlerFunc) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true}) // Liveness check
	})

	api := r.Group("/api")
	api.GET("/users", GetUsersHandler(users))          // List users endpoint
	api.GET("/users/:username", GetUserHandler(users)) // Get user endpoint

	// Write routes, optionally protected by operator JWT
	write := api.Group("", writeGuard...)
	write.POST("/users", CreateUserHandler(users))                     // Create user endpoint
	write.PUT("/users/:id", UpdateUserHandler(users))                  // Update user endpoint
	write.DELETE("/users/:username", DeleteUserHandler(users))         // Delete user endpoint
	write.POST("/orders", CreateOrderHandler(orders))                  // Create order endpoint
	write.PUT("/orders/:id", UpdateOrderHandler(orders))               // Update order endpoint
	write.DELETE("/orders/:invoiceNumber", DeleteOrderHandler(orders)) // Delete order endpoint
}
