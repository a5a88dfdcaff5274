package fixture

import "errors"

// ReferenceSource records where the active reference impedance came
// from.
type ReferenceSource int

const (
	// SourceExplicit means the caller supplied z0 on the command line.
	SourceExplicit ReferenceSource = iota
	// SourceEmbedded means z0 was read from the measurement file's
	// calibration reference.
	SourceEmbedded
)

func (s ReferenceSource) String() string {
	if s == SourceExplicit {
		return "command line"
	}
	return "touchstone file"
}

// ErrReferenceImpedanceUnavailable is returned when neither an explicit
// nor an embedded reference impedance exists. The run cannot proceed
// without one.
var ErrReferenceImpedanceUnavailable = errors.New("unknown reference impedance: supply one with --z0")

// ResolveReference picks the reference impedance for the run. An
// explicit value always wins over one embedded in the measurement
// file. Resolution happens exactly once, before any computation.
func ResolveReference(explicit, embedded *complex128) (complex128, ReferenceSource, error) {
	if explicit != nil {
		return *explicit, SourceExplicit, nil
	}
	if embedded != nil {
		return *embedded, SourceEmbedded, nil
	}
	return 0, 0, ErrReferenceImpedanceUnavailable
}
