package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// domainPipeline prefixes the content hash for domain separation. The
// version suffix allows a future encoding change without hash collisions
// against descriptors produced by older generators.
const domainPipeline = "gantry/pipeline/v1"

// Hash computes the content-addressed identity of the pipeline: SHA-256 over
// the domain prefix, a null separator, and the canonical serialization. Two
// pipelines hash equal iff their canonical descriptors are byte-identical.
func (p *Pipeline) Hash() (string, error) {
	canonical, err := p.MarshalCanonical()
	if err != nil {
		return "", fmt.Errorf("pipeline hash: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(domainPipeline))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}
