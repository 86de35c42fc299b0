// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application; this package only defines the
// settings it reads: the listen port, the optional API key and the upload size limit.
//
// # Usage
//
// This package is embedded by core/config and read by cmd/start.go.
package server
