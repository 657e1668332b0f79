// Package database manages the SQLite connection for Incubadora Core.
//
// SQLite is the only store: user accounts and sensor/actuator readings both
// live here. The schemaless reading value is persisted as JSON text, which
// keeps the producer-defined value semantics of the original document model
// while staying queryable.
//
// The package also applies embedded schema migrations (see the migrations
// package at the repository root).
package database
