// Package record stores sensor and actuator readings.
//
// A reading is a flat document: a kind (Sensor or Actuador), a free-form
// name, a value, an optional unit, and the moment it was recorded. Values
// arrive from heterogeneous hardware so they are kept schemaless: a
// reading's value may be a number, a boolean, or a string, and the zoo is
// persisted as JSON text in a single column.
//
// The package exposes a Repository interface backed by SQLite. Callers
// that need live updates layer broadcasting on top; the repository itself
// only persists.
package record
