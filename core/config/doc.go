// Package config provides configuration management for the stock checker.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults live next to each setting as `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, upload limit)
//   - Database: MySQL connection details for db:// catalog sources
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Reconcile: stock thresholds, ignored codes and gift box categories
//   - Source: timeout and retries for downloaded exports
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts, _ := cfg.Reconcile.Options()
package config
