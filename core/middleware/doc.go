// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key or HS256 bearer token validation protecting the inventory endpoints.
//   - rayid: a unique Request ID (RayID) for every request, stored in the
//     context locals and echoed in the X-Ray-ID response header.
//
// Both are registered globally in the start command.
package middleware
