package dto

import "time"

// OrderRequest is the JSON body for POST /api/orders and PUT /api/orders/:id.
// The owner is referenced by username, not by id.
type OrderRequest struct {
	InvoiceNumber string     `json:"invoiceNumber" binding:"required"`
	ProductName   string     `json:"productName" binding:"required"`
	Quantity      int        `json:"quantity" binding:"required,gt=0"`
	Description   string     `json:"description"`
	Username      string     `json:"username" binding:"required"`
	CreatedBy     *string    `json:"createdBy"`
	CreatedOn     *time.Time `json:"createdOn"`
	UpdatedBy     *string    `json:"updatedBy"`
	UpdatedOn     *time.Time `json:"updatedOn"`
}
