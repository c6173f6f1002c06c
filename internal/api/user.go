package api

import (
	"context"                         // Request-scoped context
	"user_orders/internal/dto"        // Request payloads
	"user_orders/internal/middleware" // Authenticated operator
	"user_orders/internal/service"    // Response envelope

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserService is the user side of the service layer as seen by HTTP
type UserService interface {
	GetUsers(ctx context.Context) service.Response
	GetUser(ctx context.Context, username string) service.Response
	CreateUser(ctx context.Context, req dto.UserRequest) service.Response
	UpdateUser(ctx context.Context, id uint, req dto.UserRequest) service.Response
	DeleteUser(ctx context.Context, username string) service.Response
}

// GetUsersHandler returns all users with their orders
func GetUsersHandler(svc UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, svc.GetUsers(c.Request.Context()))
	}
}

// GetUserHandler returns one user by username
func GetUserHandler(svc UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, svc.GetUser(c.Request.Context(), c.Param("username")))
	}
}

// CreateUserHandler registers a new user
func CreateUserHandler(svc UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error()) // Validation failed
			return
		}
		req.CreatedBy = withOperator(c, req.CreatedBy) // Default creator to the caller
		respond(c, svc.CreateUser(c.Request.Context(), req))
	}
}

// UpdateUserHandler replaces the mutable fields of a user
func UpdateUserHandler(svc UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var req dto.UserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error()) // Validation failed
			return
		}
		req.UpdatedBy = withOperator(c, req.UpdatedBy) // Default updater to the caller
		respond(c, svc.UpdateUser(c.Request.Context(), id, req))
	}
}

// DeleteUserHandler removes a user by username
func DeleteUserHandler(svc UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, svc.DeleteUser(c.Request.Context(), c.Param("username")))
	}
}

// withOperator keeps an explicit audit name and otherwise falls back to the token's operator
func withOperator(c *gin.Context, name *string) *string {
	if name != nil && *name != "" {
		return name
	}
	if op := middleware.Operator(c); op != "" {
		return &op
	}
	return name
}
