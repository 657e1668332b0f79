// Package api provides the HTTP REST API and WebSocket live channel for
// Incubadora Core.
//
// It exposes user registration and login, reading CRUD under
// /sensoresyactuadores, and a WebSocket endpoint that fans record
// mutations out to every connected dashboard.
//
// The server follows the same lifecycle pattern as the other
// infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: all methods are safe for concurrent use.
package api
