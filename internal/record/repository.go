package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository persists readings.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context) ([]Record, error)
	Search(ctx context.Context, f Filter) ([]Record, error)
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id string) error
}

// SQLiteRepository implements Repository on a SQLite handle.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a SQLite-backed reading repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const recordColumns = "id, kind, name, value, unit, recorded_at"

// Create inserts a reading, assigning an id and defaulting the
// timestamp to now when the caller left it zero.
func (r *SQLiteRepository) Create(ctx context.Context, rec *Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = "rec-" + uuid.New().String()[:8]
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	encoded, err := rec.Value.encode()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO readings (id, kind, name, value, unit, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, string(rec.Kind), rec.Name, encoded, rec.Unit,
		rec.RecordedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

// GetByID fetches one reading.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Record, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM readings WHERE id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reading: %w", err)
	}
	return rec, nil
}

// List returns every stored reading, oldest first.
func (r *SQLiteRepository) List(ctx context.Context) ([]Record, error) {
	return r.query(ctx,
		"SELECT "+recordColumns+" FROM readings ORDER BY recorded_at, id")
}

// Search returns readings matching the filter. Unset filter fields do
// not constrain the result; an empty filter behaves like List.
func (r *SQLiteRepository) Search(ctx context.Context, f Filter) ([]Record, error) {
	var (
		where []string
		args  []any
	)
	if f.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(f.Kind))
	}
	if f.Name != "" {
		where = append(where, "name = ?")
		args = append(args, f.Name)
	}

	query := "SELECT " + recordColumns + " FROM readings"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY recorded_at, id"

	return r.query(ctx, query, args...)
}

// Update replaces a reading's mutable fields.
func (r *SQLiteRepository) Update(ctx context.Context, rec *Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	encoded, err := rec.Value.encode()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE readings
		SET kind = ?, name = ?, value = ?, unit = ?, recorded_at = ?
		WHERE id = ?`,
		string(rec.Kind), rec.Name, encoded, rec.Unit,
		rec.RecordedAt.UTC().Format(time.RFC3339), rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update reading: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update reading: %w", err)
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete removes a reading.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM readings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete reading: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete reading: %w", err)
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate readings: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	var (
		rec        Record
		kind       string
		rawValue   string
		recordedAt string
	)
	if err := s.Scan(&rec.ID, &kind, &rec.Name, &rawValue, &rec.Unit, &recordedAt); err != nil {
		return nil, err
	}

	rec.Kind = Kind(kind)

	value, err := decodeValue(rawValue)
	if err != nil {
		return nil, err
	}
	rec.Value = value

	ts, err := time.Parse(time.RFC3339, recordedAt)
	if err != nil {
		return nil, fmt.Errorf("parse recorded_at %q: %w", recordedAt, err)
	}
	rec.RecordedAt = ts

	return &rec, nil
}
