package repository

import (
	"context"                     // Request-scoped context
	"user_orders/internal/domain" // Importing domain models

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Association clauses
)

// UserRepository persists users with gorm
type UserRepository struct {
	db *gorm.DB // Database handle
}

// NewUserRepository creates a user store over db
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// List returns every user with its orders attached
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	// Preload orders, oldest user first
	if err := r.db.WithContext(ctx).Preload("Orders").Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByID loads one user and its orders by primary key
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Preload("Orders").First(&user, id).Error; err != nil {
		return nil, translate(err) // Not found becomes domain.ErrNotFound
	}
	return &user, nil
}

// FindByUsername loads one user and its orders by exact username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Preload("Orders").Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err) // Not found becomes domain.ErrNotFound
	}
	return &user, nil
}

// UsernameExists reports whether any user holds username
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

// EmailExists reports whether any user holds email
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

// exists counts users matching the condition
func (r *UserRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where(query, arg).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts the user and fills its ID
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error) // Orders are never written here
}

// Update writes every column except the creation audit pair. It returns
// domain.ErrStaleWrite when the row no longer exists.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	res := r.db.WithContext(ctx).
		Model(user).
		Select("*").                                               // Include zero values
		Omit("ID", "CreatedBy", "CreatedOn", clause.Associations). // Creation audit is immutable
		Updates(user)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrStaleWrite // Row vanished underneath us
	}
	return nil
}

// Delete removes the user together with its orders
func (r *UserRepository) Delete(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Select("Orders").Delete(user).Error // Cascade to orders
}
