// File: cmd/server/providers.go
package main

import (
	"log"

	"fixitnow_backend/internal/platform/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// provideCleanup closes the database and flushes the logger when the
// injector's cleanup runs.
func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
