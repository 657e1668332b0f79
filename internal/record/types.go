package record

import (
	"errors"
	"fmt"
	"time"
)

// Kind distinguishes the two classes of device a reading can come from.
type Kind string

const (
	KindSensor   Kind = "Sensor"
	KindActuator Kind = "Actuador"
)

// Valid reports whether k is one of the two accepted kinds.
func (k Kind) Valid() bool {
	return k == KindSensor || k == KindActuator
}

var (
	// ErrRecordNotFound is returned when a reading id has no row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidKind is returned when tipo is neither Sensor nor Actuador.
	ErrInvalidKind = errors.New("tipo must be Sensor or Actuador")

	// ErrValueRequired is returned when a reading carries no value.
	ErrValueRequired = errors.New("valor is required")

	// ErrNameRequired is returned when a reading carries no name.
	ErrNameRequired = errors.New("nombre is required")
)

// Record is one stored reading.
type Record struct {
	ID         string    `json:"_id"`
	Kind       Kind      `json:"tipo"`
	Name       string    `json:"nombre"`
	Value      Value     `json:"valor"`
	Unit       string    `json:"unidad,omitempty"`
	RecordedAt time.Time `json:"fechaHora"`
}

// Validate checks the fields every write path requires.
func (r *Record) Validate() error {
	if !r.Kind.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidKind, r.Kind)
	}
	if r.Name == "" {
		return ErrNameRequired
	}
	if !r.Value.IsSet() {
		return ErrValueRequired
	}
	return nil
}

// Filter narrows a search. Zero-value fields are ignored; set fields
// compose with AND.
type Filter struct {
	Kind Kind
	Name string
}
