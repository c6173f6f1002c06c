package domain

import "time" // Audit timestamps

// User Model
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`                                        // Primary key
	Fullname  string     `gorm:"not null" json:"fullname"`                                    // Full name
	Username  string     `gorm:"size:191;uniqueIndex;not null" json:"username"`               // Unique username
	Email     string     `gorm:"size:191;uniqueIndex;not null" json:"email"`                  // Unique email
	Address   string     `gorm:"not null" json:"address"`                                     // Postal address
	CreatedBy string     `gorm:"not null" json:"createdBy"`                                   // Who created the row
	CreatedOn time.Time  `gorm:"not null" json:"createdOn"`                                   // When the row was created
	UpdatedBy *string    `json:"updatedBy"`                                                   // Who last updated the row
	UpdatedOn *time.Time `json:"updatedOn"`                                                   // When the row was last updated
	Orders    []Order    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"orders"` // One-to-many relationship with Order
}
