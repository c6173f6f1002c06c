package main

import (
	"user_orders/internal/config" // Custom import path (Config)
	"user_orders/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	gdb, err := db.Open(cfg) // Connect using DB_DRIVER
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("%v", err)
	}
	logrus.Info("Migration completed")
}
