package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveReferenceExplicitWins(t *testing.T) {
	explicit := complex(75, 0)
	embedded := complex(50, 0)
	z0, source, err := ResolveReference(&explicit, &embedded)
	require.NoError(t, err)
	assert.Equal(t, explicit, z0)
	assert.Equal(t, SourceExplicit, source)
}

func TestResolveReferenceFallsBackToEmbedded(t *testing.T) {
	embedded := complex(50, 0)
	z0, source, err := ResolveReference(nil, &embedded)
	require.NoError(t, err)
	assert.Equal(t, embedded, z0)
	assert.Equal(t, SourceEmbedded, source)
}

func TestResolveReferenceUnavailable(t *testing.T) {
	_, _, err := ResolveReference(nil, nil)
	require.ErrorIs(t, err, ErrReferenceImpedanceUnavailable)
	assert.Contains(t, err.Error(), "--z0")
}
