// Package server holds the HTTP server configuration.
//
// While the serve command handles the server startup, this package defines the
// listening port, the API key gate and its public paths, and the read/write
// timeouts. Import endpoints answer synchronously, so the write timeout is long.
//
// # Usage
//
// This package is embedded by core/config and read by cmd/serve.go.
package server
