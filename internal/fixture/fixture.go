// Package fixture converts measured S-parameters into impedance for the
// three supported measurement fixtures: a one-port device shunting the
// line, a series element measured in transmission, and a shunt element
// measured through a fixed through-path.
package fixture

import (
	"fmt"
)

// Topology identifies the measurement fixture. It selects both the
// S-parameter channel extracted from the measured network and the
// transform applied to it.
type Topology int

const (
	// ShuntOnePort measures a device shunting the line at port 1 (S11).
	ShuntOnePort Topology = iota
	// SeriesTwoPort measures a series element inserted in the line (S21).
	SeriesTwoPort
	// ShuntThroughTwoPort measures a shunt element through a fixed
	// through-path (S21).
	ShuntThroughTwoPort
)

// Topology names as they appear on the command line.
const (
	nameShuntOnePort        = "shunt-one-port"
	nameSeriesTwoPort       = "series-two-port"
	nameShuntThroughTwoPort = "shunt-through-two-port"
)

// TopologyNames lists the accepted --type values in declaration order.
var TopologyNames = []string{nameShuntOnePort, nameSeriesTwoPort, nameShuntThroughTwoPort}

// String implements pflag.Value.
func (t Topology) String() string {
	switch t {
	case ShuntOnePort:
		return nameShuntOnePort
	case SeriesTwoPort:
		return nameSeriesTwoPort
	case ShuntThroughTwoPort:
		return nameShuntThroughTwoPort
	}
	return fmt.Sprintf("topology(%d)", int(t))
}

// Set implements pflag.Value, so cobra rejects unknown topologies at
// flag-parse time.
func (t *Topology) Set(s string) error {
	switch s {
	case nameShuntOnePort:
		*t = ShuntOnePort
	case nameSeriesTwoPort:
		*t = SeriesTwoPort
	case nameShuntThroughTwoPort:
		*t = ShuntThroughTwoPort
	default:
		return fmt.Errorf("unknown measurement type %q: must be one of %v", s, TopologyNames)
	}
	return nil
}

// Type implements pflag.Value.
func (t Topology) Type() string { return "topology" }

// UnsupportedTopologyError reports a Topology value outside the known
// set. Flag parsing already constrains the value, so this branch is a
// defensive guard rather than an expected failure.
type UnsupportedTopologyError struct {
	Value Topology
}

func (e *UnsupportedTopologyError) Error() string {
	return fmt.Sprintf("unsupported measurement topology %d", int(e.Value))
}

// ShuntOnePortImpedance applies Z = z0 * (1 + S11) / (1 - S11)
// elementwise. The result diverges as S11 approaches 1 (open-circuit
// reflection); non-finite samples are returned as-is.
func ShuntOnePortImpedance(z0 complex128, s11 []complex128) []complex128 {
	z := make([]complex128, len(s11))
	for i, s := range s11 {
		z[i] = z0 * (1 + s) / (1 - s)
	}
	return z
}

// SeriesTwoPortImpedance applies Z = 2 * z0 * (1 - S21) / S21
// elementwise. The result diverges as S21 approaches 0 (full block).
func SeriesTwoPortImpedance(z0 complex128, s21 []complex128) []complex128 {
	z := make([]complex128, len(s21))
	for i, s := range s21 {
		z[i] = 2 * z0 * (1 - s) / s
	}
	return z
}

// ShuntThroughTwoPortImpedance applies Z = z0 * S21 / (2 * (1 - S21))
// elementwise. The result diverges as S21 approaches 1 (unloaded
// through).
func ShuntThroughTwoPortImpedance(z0 complex128, s21 []complex128) []complex128 {
	z := make([]complex128, len(s21))
	for i, s := range s21 {
		z[i] = z0 * s / (2 * (1 - s))
	}
	return z
}

// Channel returns the zero-based (output port, input port) indices of
// the S-parameter this topology measures: (0,0) for S11, (1,0) for S21.
func (t Topology) Channel() (out, in int) {
	if t == ShuntOnePort {
		return 0, 0
	}
	return 1, 0
}

// Impedances extracts the channel this topology needs from the full
// S-parameter array (indexed [frequency][output port][input port]) and
// applies the matching transform. It fails when the measured network
// has too few ports for the fixture, or when the topology value is
// outside the known set.
func (t Topology) Impedances(z0 complex128, params [][][]complex128) ([]complex128, error) {
	out, in := t.Channel()
	ch := make([]complex128, len(params))
	for i, m := range params {
		if out >= len(m) || in >= len(m[out]) {
			return nil, fmt.Errorf("%s requires a %d-port measurement, got %d ports", t, out+1, len(m))
		}
		ch[i] = m[out][in]
	}
	switch t {
	case ShuntOnePort:
		return ShuntOnePortImpedance(z0, ch), nil
	case SeriesTwoPort:
		return SeriesTwoPortImpedance(z0, ch), nil
	case ShuntThroughTwoPort:
		return ShuntThroughTwoPortImpedance(z0, ch), nil
	default:
		return nil, &UnsupportedTopologyError{Value: t}
	}
}
