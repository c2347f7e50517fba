// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It adapts the JSON endpoints under /api to the
// generation and catalog services and maps their errors to status codes.
package api
