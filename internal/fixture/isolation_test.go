package fixture

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolation(t *testing.T) {
	z0 := complex(50, 0)
	iso := Isolation(z0, []complex128{0, 100, 900})
	require.Len(t, iso, 3)
	// Z = 0: no shunt attenuation at all.
	assert.InDelta(t, 0, iso[0], 1e-12)
	// |100/(100+100)| = 0.5 -> 6.02 dB
	assert.InDelta(t, 20*math.Log10(2), iso[1], 1e-12)
	// |100/(100+900)| = 0.1 -> 20 dB
	assert.InDelta(t, 20, iso[2], 1e-12)
}

func TestIsolationPropagatesNonFinite(t *testing.T) {
	iso := Isolation(50, []complex128{cmplx.Inf()})
	require.Len(t, iso, 1)
	assert.True(t, math.IsNaN(iso[0]) || math.IsInf(iso[0], 0),
		"expected a non-finite isolation value, got %v", iso[0])
}
