// Package config provides configuration management for the OTA server.
//
// It utilizes Viper for loading configuration from environment variables,
// with an optional .env file loaded first through godotenv.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: bind host and port (default 3000)
//   - Artifacts: routes, backing paths and source (disk or bucket)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Database: optional download audit connection
//   - Log: Logging level, format and output
//
// Defaults live in `default` struct tags next to each field. Nested keys map to
// environment variables by replacing dots with underscores, e.g.
// artifacts.binary_path is read from ARTIFACTS_BINARY_PATH.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
