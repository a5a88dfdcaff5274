// Package touchstone reads Touchstone v1 S-parameter files (.s1p,
// .s2p) into frequency-swept complex arrays.
package touchstone

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"os"
	"strconv"
	"strings"
)

// Network holds one parsed S-parameter measurement.
type Network struct {
	// Frequencies is strictly increasing, in Hz.
	Frequencies []float64
	// Params is indexed [frequency][output port][input port].
	Params [][][]complex128
	// Ports is 1 or 2.
	Ports int
	// Reference is the calibration reference impedance from the option
	// line's R token, or nil when the file does not state one.
	Reference *complex128
}

// Option-line frequency unit multipliers.
var frequencyUnits = map[string]float64{
	"HZ":  1,
	"KHZ": 1e3,
	"MHZ": 1e6,
	"GHZ": 1e9,
}

// Sample formats accepted on the option line.
const (
	formatRI = "RI" // real, imaginary
	formatMA = "MA" // magnitude, angle in degrees
	formatDB = "DB" // 20*log10(magnitude), angle in degrees
)

type options struct {
	unitScale float64
	format    string
	reference *complex128
}

func defaultOptions() options {
	return options{unitScale: 1e9, format: formatMA} // Touchstone defaults: GHz, MA
}

// ParseFile reads and parses the file at path. The port count is taken
// from the extension (.s1p or .s2p); any other extension is rejected.
func ParseFile(path string) (*Network, error) {
	ports, err := portsFromExtension(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	net, err := Parse(f, ports)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return net, nil
}

func portsFromExtension(path string) (int, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".s1p"):
		return 1, nil
	case strings.HasSuffix(strings.ToLower(path), ".s2p"):
		return 2, nil
	}
	return 0, fmt.Errorf("%s: unrecognized touchstone extension (want .s1p or .s2p)", path)
}

// Parse reads a Touchstone v1 document with the given port count.
//
// Comment lines start with '!', the option line with '#'. Data lines
// carry the frequency followed by the sample pairs for every port
// combination; for two ports the order is S11, S21, S12, S22.
func Parse(r io.Reader, ports int) (*Network, error) {
	if ports != 1 && ports != 2 {
		return nil, fmt.Errorf("unsupported port count %d", ports)
	}

	opts := defaultOptions()
	sawOptions := false
	net := &Network{Ports: ports}
	valuesPerLine := 1 + 2*ports*ports

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '!'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if sawOptions {
				// Touchstone v1 allows at most one option line.
				return nil, fmt.Errorf("line %d: duplicate option line", lineNo)
			}
			sawOptions = true
			var err error
			if opts, err = parseOptions(line); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != valuesPerLine {
			return nil, fmt.Errorf("line %d: want %d values for a %d-port record, got %d",
				lineNo, valuesPerLine, ports, len(fields))
		}
		values := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad number %q", lineNo, f)
			}
			values[i] = v
		}

		freq := values[0] * opts.unitScale
		if n := len(net.Frequencies); n > 0 && freq <= net.Frequencies[n-1] {
			return nil, fmt.Errorf("line %d: frequency %g not strictly increasing", lineNo, freq)
		}
		net.Frequencies = append(net.Frequencies, freq)
		net.Params = append(net.Params, sampleMatrix(values[1:], ports, opts.format))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(net.Frequencies) == 0 {
		return nil, fmt.Errorf("no data records found")
	}
	net.Reference = opts.reference
	return net, nil
}

// parseOptions parses "# [unit] [param] [format] [R n]" with every
// token optional and case-insensitive.
func parseOptions(line string) (options, error) {
	opts := defaultOptions()
	tokens := strings.Fields(strings.TrimPrefix(line, "#"))
	for i := 0; i < len(tokens); i++ {
		tok := strings.ToUpper(tokens[i])
		switch {
		case frequencyUnits[tok] != 0:
			opts.unitScale = frequencyUnits[tok]
		case tok == formatRI || tok == formatMA || tok == formatDB:
			opts.format = tok
		case tok == "S":
			// scattering parameters, the only kind supported
		case tok == "Y" || tok == "Z" || tok == "H" || tok == "G":
			return opts, fmt.Errorf("unsupported parameter type %s", tok)
		case tok == "R":
			if i+1 >= len(tokens) {
				return opts, fmt.Errorf("option line: R without a value")
			}
			i++
			r, err := strconv.ParseFloat(tokens[i], 64)
			if err != nil {
				return opts, fmt.Errorf("option line: bad reference resistance %q", tokens[i])
			}
			z0 := complex(r, 0)
			opts.reference = &z0
		default:
			return opts, fmt.Errorf("option line: unrecognized token %q", tokens[i])
		}
	}
	return opts, nil
}

// sampleMatrix converts one record's value pairs into a ports×ports
// matrix. Touchstone v1 two-port records are ordered S11 S21 S12 S22
// (column-major over the port pair).
func sampleMatrix(pairs []float64, ports int, format string) [][]complex128 {
	m := make([][]complex128, ports)
	for i := range m {
		m[i] = make([]complex128, ports)
	}
	for k := 0; k*2 < len(pairs); k++ {
		s := toComplex(pairs[k*2], pairs[k*2+1], format)
		// k walks S11, S21, S12, S22: input port is the slow index.
		out, in := k%ports, k/ports
		m[out][in] = s
	}
	return m
}

func toComplex(a, b float64, format string) complex128 {
	switch format {
	case formatRI:
		return complex(a, b)
	case formatDB:
		return cmplx.Rect(math.Pow(10, a/20), b*math.Pi/180)
	default: // MA
		return cmplx.Rect(a, b*math.Pi/180)
	}
}
