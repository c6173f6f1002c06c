package repository

import (
	"errors"                      // Error inspection
	"user_orders/internal/domain" // Domain sentinels

	"github.com/go-sql-driver/mysql" // MySQL error codes
	"github.com/jackc/pgx/v5/pgconn" // Postgres error codes
	"gorm.io/gorm"                   // GORM ORM library
)

// translate maps driver and gorm errors onto domain sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound // Lookup miss
	case isUniqueViolation(err):
		return errors.Join(domain.ErrDuplicate, err) // Keep the driver error for logs
	default:
		return err
	}
}

// isUniqueViolation covers gorm's translated error plus the raw MySQL (1062)
// and Postgres (23505) codes for connections opened without TranslateError.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062 // ER_DUP_ENTRY
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
