package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/halcyard/gantry/internal/pipeline"
)

// Record inserts a generation record for the pipeline. Idempotent on
// content: recording a pipeline whose canonical descriptor already exists is
// a silent no-op, and the existing record's id is returned.
//
// The generation id is a time-ordered UUIDv7, so id order tracks insert
// order. It identifies the store row only; nothing derived from it ever
// reaches the pipeline descriptor, which stays fully deterministic.
func (s *Store) Record(ctx context.Context, p *pipeline.Pipeline) (Generation, error) {
	descriptor, err := p.MarshalCanonical()
	if err != nil {
		return Generation{}, fmt.Errorf("record generation: %w", err)
	}
	hash, err := p.Hash()
	if err != nil {
		return Generation{}, fmt.Errorf("record generation: %w", err)
	}

	gen := Generation{
		ID:          uuid.Must(uuid.NewV7()).String(),
		ContentHash: hash,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		JobCount:    len(p.Jobs),
		EdgeCount:   len(p.Edges),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO generations
		(id, content_hash, created_at, job_count, edge_count, descriptor)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(content_hash) DO NOTHING
	`,
		gen.ID,
		gen.ContentHash,
		gen.CreatedAt,
		gen.JobCount,
		gen.EdgeCount,
		descriptor,
	)
	if err != nil {
		return Generation{}, fmt.Errorf("record generation: %w", err)
	}

	// The insert may have been a conflict no-op; read back the row that owns
	// this content hash so callers always see the stored identity.
	stored, err := s.ByHash(ctx, hash)
	if err != nil {
		return Generation{}, fmt.Errorf("record generation: %w", err)
	}
	return stored, nil
}
