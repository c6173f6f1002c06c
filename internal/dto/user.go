package dto

import "time"

// UserRequest is the JSON body for POST /api/users and PUT /api/users/:id.
// Timestamps are accepted for wire compatibility; the server stamps its own.
type UserRequest struct {
	Fullname  string     `json:"fullname" binding:"required"`
	Username  string     `json:"username" binding:"required"`
	Email     string     `json:"email" binding:"required"`
	Address   string     `json:"address" binding:"required"`
	CreatedBy *string    `json:"createdBy"`
	CreatedOn *time.Time `json:"createdOn"`
	UpdatedBy *string    `json:"updatedBy"`
	UpdatedOn *time.Time `json:"updatedOn"`
}
