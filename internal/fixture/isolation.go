package fixture

import (
	"math"
	"math/cmplx"
)

// Isolation computes the leakage across a shunt impedance in a matched
// system, in dB, elementwise:
//
//	Isolation_dB = -20 * log10( | 2*z0 / (2*z0 + Z) | )
//
// Non-finite impedance samples yield non-finite isolation; the values
// are returned as-is.
func Isolation(z0 complex128, z []complex128) []float64 {
	iso := make([]float64, len(z))
	for i, zi := range z {
		iso[i] = -20 * math.Log10(cmplx.Abs(2*z0/(2*z0+zi)))
	}
	return iso
}
