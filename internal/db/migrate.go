package db

import (
	"time"

	"recipe_api/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// WaitForDB retries the connection until the database accepts it or the
// wait budget runs out. Containerized databases often come up after the app.
func WaitForDB(dsn string, maxWait time.Duration) (*gorm.DB, error) {
	deadline := time.Now().Add(maxWait)
	for {
		conn, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, err
		}
		logrus.Info("Database unavailable, waiting 1 second...")
		time.Sleep(time.Second)
	}
}

// Migrate performs automatic migration for the database schema
func Migrate(dsn string, maxWait time.Duration) {
	conn, err := WaitForDB(dsn, maxWait) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = conn.AutoMigrate(&domain.User{}, &domain.Tag{}, &domain.Ingredient{}, &domain.Recipe{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
