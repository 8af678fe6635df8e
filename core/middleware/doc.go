// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - RayID: Assigns a unique Request ID (RayID) to every incoming request,
//     injecting it into the context and response headers for tracing.
//   - RequestLog: Logs each request with its RayID, status and duration.
//
// Both are registered globally by server.NewApp, RayID first.
package middleware
