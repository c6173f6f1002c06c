package domain

import "time" // Audit timestamps

// Order Model
type Order struct {
	ID            uint       `gorm:"primaryKey" json:"id"`                               // Primary key
	InvoiceNumber string     `gorm:"size:191;uniqueIndex;not null" json:"invoiceNumber"` // Unique invoice number
	ProductName   string     `gorm:"not null" json:"productName"`                        // Ordered product
	Quantity      int        `gorm:"not null;check:quantity > 0" json:"quantity"`        // Ordered quantity, always positive
	Description   string     `json:"description"`                                        // Free-form description
	UserID        uint       `gorm:"not null;index" json:"userId"`                       // Foreign key to User
	User          *User      `json:"user,omitempty"`                                     // Owning user, loaded on demand
	CreatedBy     string     `gorm:"not null" json:"createdBy"`                          // Who created the row
	CreatedOn     time.Time  `gorm:"not null" json:"createdOn"`                          // When the row was created
	UpdatedBy     *string    `json:"updatedBy"`                                          // Who last updated the row
	UpdatedOn     *time.Time `json:"updatedOn"`                                          // When the row was last updated
}
