// Package snapshot persists named animal genotypes so a pairing can refer to
// a parent by ID instead of restating its genes.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/agenthands/clutch/internal/core/model"
)

var ErrNotFound = errors.New("snapshot not found")

type Snapshot struct {
	ID        string         `json:"id"`
	Species   string         `json:"species"`
	Name      string         `json:"name"`
	Genotype  model.Genotype `json:"genotype"`
	CreatedAt time.Time      `json:"created_at"`
}

type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens or creates the SQLite database at path and brings its schema up
// to date. ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot db '%s': %w", path, err)
	}
	// An in-memory database lives and dies with its connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, logger: logger}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Save(ctx context.Context, snap Snapshot) (Snapshot, error) {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	if snap.Genotype == nil {
		snap.Genotype = model.Genotype{}
	}

	blob, err := json.Marshal(snap.Genotype)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to encode genotype: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, species, name, genotype, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			species = excluded.species,
			name = excluded.name,
			genotype = excluded.genotype`,
		snap.ID, snap.Species, snap.Name, string(blob), snap.CreatedAt.UnixNano())
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to save snapshot %s: %w", snap.ID, err)
	}

	s.logger.Debug("saved snapshot", zap.String("id", snap.ID), zap.String("species", snap.Species))
	return snap, nil
}

func (s *Store) Get(ctx context.Context, id string) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, species, name, genotype, created_at FROM snapshots WHERE id = ?`, id)

	snap, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load snapshot %s: %w", id, err)
	}
	return snap, nil
}

// List returns the snapshots of a species, newest first. An empty species
// lists every snapshot.
func (s *Store) List(ctx context.Context, species string) ([]Snapshot, error) {
	query := `SELECT id, species, name, genotype, created_at FROM snapshots`
	var args []any
	if species != "" {
		query += ` WHERE species = ?`
		args = append(args, species)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	snaps := []Snapshot{}
	for rows.Next() {
		snap, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(r scanner) (Snapshot, error) {
	var (
		snap    Snapshot
		blob    string
		created int64
	)
	if err := r.Scan(&snap.ID, &snap.Species, &snap.Name, &blob, &created); err != nil {
		return Snapshot{}, err
	}
	if err := json.Unmarshal([]byte(blob), &snap.Genotype); err != nil {
		return Snapshot{}, fmt.Errorf("corrupt genotype for %s: %w", snap.ID, err)
	}
	snap.CreatedAt = time.Unix(0, created).UTC()
	return snap, nil
}
