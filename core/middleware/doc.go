// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation for the upload endpoints.
//   - rayid: a unique Request ID (RayID) for every incoming request,
//     stored in the context and echoed in the response headers for tracing.
//
// The start command registers rayid first so every log line carries the id.
package middleware
