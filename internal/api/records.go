package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/incubadora-iot/core/internal/record"
)

// Live-channel event names for record mutations.
const (
	EventRecordSaved   = "datoGuardado"
	EventRecordUpdated = "datoActualizado"
	EventRecordDeleted = "datoEliminado"
)

// handleListRecords returns every stored reading as a plain array.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list records", "error", err)
		writeInternalError(w, "error interno del servidor")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// handleSearchRecords filters readings by tipo and nombre query params.
// Both are optional and compose with AND; no params behaves like the list.
func (s *Server) handleSearchRecords(w http.ResponseWriter, r *http.Request) {
	filter := record.Filter{
		Kind: record.Kind(r.URL.Query().Get("tipo")),
		Name: r.URL.Query().Get("nombre"),
	}
	if filter.Kind != "" && !filter.Kind.Valid() {
		writeBadRequest(w, "tipo debe ser Sensor o Actuador")
		return
	}

	records, err := s.records.Search(r.Context(), filter)
	if err != nil {
		s.logger.Error("failed to search records", "error", err)
		writeInternalError(w, "error interno del servidor")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// handleGetRecord returns one reading.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.records.GetByID(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rec)
	case errors.Is(err, record.ErrRecordNotFound):
		writeNotFound(w, "registro no encontrado")
	default:
		s.logger.Error("failed to get record", "error", err)
		writeInternalError(w, "error interno del servidor")
	}
}

// handleCreateRecord stores a reading and announces it on the live channel.
func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeBadRequest(w, "cuerpo de la petición inválido")
		return
	}

	rec, err := s.createRecord(r.Context(), body)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, rec)
	case isRecordValidationError(err):
		writeBadRequest(w, err.Error())
	default:
		s.logger.Error("failed to create record", "error", err)
		writeInternalError(w, "error interno del servidor")
	}
}

// isRecordValidationError reports whether the error is the caller's fault.
func isRecordValidationError(err error) bool {
	return errors.Is(err, record.ErrInvalidKind) ||
		errors.Is(err, record.ErrValueRequired) ||
		errors.Is(err, record.ErrNameRequired) ||
		errors.Is(err, errBadPayload)
}

// errBadPayload marks bodies that do not decode into a reading.
var errBadPayload = errors.New("cuerpo de la petición inválido")

// createRecord is the single write path for new readings. HTTP posts,
// nuevoDato live messages and broker ingest all land here, so every entry
// point gets the same validation, defaulting, broadcast and telemetry.
func (s *Server) createRecord(ctx context.Context, payload []byte) (*record.Record, error) {
	var rec record.Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, errBadPayload
	}
	rec.ID = ""

	if err := s.records.Create(ctx, &rec); err != nil {
		return nil, err
	}

	s.broadcastRecord(EventRecordSaved, &rec)
	s.mirrorReading(&rec)

	return &rec, nil
}

// handleUpdateRecord replaces a reading and announces the change.
func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	var rec record.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeBadRequest(w, "cuerpo de la petición inválido")
		return
	}
	rec.ID = chi.URLParam(r, "id")

	switch err := s.records.Update(r.Context(), &rec); {
	case err == nil:
		s.broadcastRecord(EventRecordUpdated, &rec)
		s.mirrorReading(&rec)
		writeJSON(w, http.StatusOK, &rec)
	case errors.Is(err, record.ErrRecordNotFound):
		writeNotFound(w, "registro no encontrado")
	case isRecordValidationError(err):
		writeBadRequest(w, err.Error())
	default:
		s.logger.Error("failed to update record", "error", err)
		writeInternalError(w, "error interno del servidor")
	}
}

// handleDeleteRecord removes a reading and announces the deletion. The
// event carries the record as it was before removal.
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.records.GetByID(r.Context(), id)
	if errors.Is(err, record.ErrRecordNotFound) {
		writeNotFound(w, "registro no encontrado")
		return
	}
	if err != nil {
		s.logger.Error("failed to get record", "error", err)
		writeInternalError(w, "error interno del servidor")
		return
	}

	switch err := s.records.Delete(r.Context(), id); {
	case err == nil:
		s.broadcastRecord(EventRecordDeleted, rec)
		writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Registro eliminado"})
	case errors.Is(err, record.ErrRecordNotFound):
		writeNotFound(w, "registro no encontrado")
	default:
		s.logger.Error("failed to delete record", "error", err)
		writeInternalError(w, "error interno del servidor")
	}
}

// broadcastRecord fans a mutation event out to the live channel.
// Broadcast problems never fail the originating request.
func (s *Server) broadcastRecord(event string, rec *record.Record) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(event, rec)
}

// mirrorReading forwards a numeric reading to the telemetry sink, when
// one is wired. Fire and forget.
func (s *Server) mirrorReading(rec *record.Record) {
	if s.influx == nil {
		return
	}
	s.influx.WriteReading(rec)
}
