package main

import (
	"flag"                        // Command line flags
	"fmt"                         // Print the token
	"time"                        // Token lifetime
	"user_orders/internal/config" // Custom import path (Config)
	"user_orders/internal/utils"  // JWT utility functions

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Mints an operator token signed with JWT_SECRET
func main() {
	operator := flag.String("operator", "", "name stamped into createdBy/updatedBy")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET is not set")
	}
	token, err := utils.GenerateJWT(*operator, cfg.JWTSecret, *ttl)
	if err != nil {
		logrus.Fatalf("failed to generate token: %v", err)
	}
	fmt.Println(token)
}
