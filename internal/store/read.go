package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Generation is one recorded pipeline emission. Descriptor is only populated
// by ByHash; listings carry metadata alone.
type Generation struct {
	ID          string
	ContentHash string
	CreatedAt   string
	JobCount    int
	EdgeCount   int
	Descriptor  []byte
}

// ErrNotFound is returned when no generation matches a lookup.
var ErrNotFound = errors.New("generation not found")

// List returns recorded generations, newest first.
func (s *Store) List(ctx context.Context) ([]Generation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content_hash, created_at, job_count, edge_count
		FROM generations
		ORDER BY created_at DESC, id COLLATE BINARY DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	var gens []Generation
	for rows.Next() {
		var g Generation
		if err := rows.Scan(&g.ID, &g.ContentHash, &g.CreatedAt, &g.JobCount, &g.EdgeCount); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		gens = append(gens, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	return gens, nil
}

// ByHash returns the generation owning a content hash, descriptor included.
func (s *Store) ByHash(ctx context.Context, hash string) (Generation, error) {
	var g Generation
	err := s.db.QueryRowContext(ctx, `
		SELECT id, content_hash, created_at, job_count, edge_count, descriptor
		FROM generations
		WHERE content_hash = ?
	`, hash).Scan(&g.ID, &g.ContentHash, &g.CreatedAt, &g.JobCount, &g.EdgeCount, &g.Descriptor)
	if errors.Is(err, sql.ErrNoRows) {
		return Generation{}, ErrNotFound
	}
	if err != nil {
		return Generation{}, fmt.Errorf("generation by hash: %w", err)
	}
	return g, nil
}
