// Package config provides configuration management for the scrapper.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults live next to each field in a `default` struct tag
// and are registered by reflection, so every key is also reachable from the
// environment (SOURCE_BASE_URL maps to source.base_url).
//
// # Configuration Structure
//
// The Config struct is divided into subsections owned by their packages:
//   - Server: HTTP port, API key, timeouts
//   - Database: MySQL or SQLite connection details
//   - Storage: S3/MinIO credentials and the report bucket
//   - Log: Logging level and format
//   - Cache: response cache driver (memory, redis) and TTL
//   - Source: external API endpoint, language, rate budget, page size
//   - Pipeline: concurrency budget, phase timeouts, retry policies,
//     conflict strategy, classifier authority
//   - Notify: event sinks
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Source.BaseURL)
package config
