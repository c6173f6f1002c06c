package repository

import (
	"context"                     // Request-scoped context
	"user_orders/internal/domain" // Importing domain models

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Association clauses
)

// OrderRepository persists orders with gorm
type OrderRepository struct {
	db *gorm.DB // Database handle
}

// NewOrderRepository creates an order store over db
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// InvoiceExists reports whether any order carries invoiceNumber
func (r *OrderRepository) InvoiceExists(ctx context.Context, invoiceNumber string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Where("invoice_number = ?", invoiceNumber).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindByID loads the order with its owning user
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	if err := r.db.WithContext(ctx).Preload("User").First(&order, id).Error; err != nil {
		return nil, translate(err) // Not found becomes domain.ErrNotFound
	}
	return &order, nil
}

// FindByInvoice loads the order by invoice number
func (r *OrderRepository) FindByInvoice(ctx context.Context, invoiceNumber string) (*domain.Order, error) {
	var order domain.Order
	if err := r.db.WithContext(ctx).Where("invoice_number = ?", invoiceNumber).First(&order).Error; err != nil {
		return nil, translate(err) // Not found becomes domain.ErrNotFound
	}
	return &order, nil
}

// Create inserts the order and fills its ID
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error) // Never upsert the owner
}

// Update writes every column except the creation audit pair. It returns
// domain.ErrStaleWrite when the row no longer exists.
func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	res := r.db.WithContext(ctx).
		Model(order).
		Select("*").                                               // Include zero values
		Omit("ID", "CreatedBy", "CreatedOn", clause.Associations). // Creation audit is immutable
		Updates(order)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrStaleWrite // Row vanished underneath us
	}
	return nil
}

// Delete removes the order
func (r *OrderRepository) Delete(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Delete(order).Error // Delete by primary key
}
