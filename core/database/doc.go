// Package database handles connections to the local mirror database.
//
// It provides a wrapper around GORM to configure PostgreSQL connections
// based on the application's configuration, including pass-through server
// options such as a search_path override.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
package database
