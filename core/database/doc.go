// Package database handles the optional download audit connection and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL, PostgreSQL (pgx) or SQLite
// connections from the application's configuration.
//
// # Connect
//
// Connect opens the configured driver, tunes the pool and pings the server.
// SQLite is limited to a single connection so ":memory:" databases stay shared.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the check command verify that the
// downloads table carries the columns the recorder writes.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Download audit disabled", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "downloads", []string{"artifact", "bytes"})
package database
