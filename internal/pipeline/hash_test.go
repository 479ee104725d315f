package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyard/gantry/internal/job"
)

func TestHash_SensitiveToContent(t *testing.T) {
	a, err := Resolve([]job.Job{publisher("p", "art")})
	require.NoError(t, err)
	b, err := Resolve([]job.Job{publisher("q", "art")})
	require.NoError(t, err)

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)
}

func TestHash_DomainSeparated(t *testing.T) {
	p, err := Resolve([]job.Job{publisher("p", "art")})
	require.NoError(t, err)

	canonical, err := p.MarshalCanonical()
	require.NoError(t, err)
	bare := sha256.Sum256(canonical)

	h, err := p.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, hex.EncodeToString(bare[:]), h)
}
