package main

import (
	"time"

	"recipe_api/internal/config" // Custom import path (Config)
	"recipe_api/internal/db"     // Custom import path (Database)
)

// Main entry point for migration. Waits for the database to accept
// connections before migrating, so it can run ahead of the server in
// container orchestration.
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN(), time.Duration(cfg.DBWaitSecs)*time.Second)
}
