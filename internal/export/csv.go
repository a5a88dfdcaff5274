// Package export serializes computed impedance sweeps.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteCSV writes one record per frequency to w: the frequency in Hz
// and the impedance as a complex literal that strconv.ParseComplex
// round-trips (e.g. "(150+0i)"). No header row; records keep the input
// order. Non-finite impedance samples are written as-is.
func WriteCSV(w io.Writer, frequencies []float64, impedances []complex128) error {
	if len(frequencies) != len(impedances) {
		return fmt.Errorf("export: %d frequencies but %d impedances", len(frequencies), len(impedances))
	}
	cw := csv.NewWriter(w)
	for i, f := range frequencies {
		record := []string{
			strconv.FormatFloat(f, 'g', -1, 64),
			strconv.FormatComplex(impedances[i], 'g', -1, 128),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: record %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// WriteCSVFile writes the sweep to path, truncating any existing file.
// The file is the run's only writer and is closed on every exit path;
// a close failure surfaces unless a write error already did.
func WriteCSVFile(path string, frequencies []float64, impedances []complex128) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("export: %w", closeErr)
		}
	}()
	return WriteCSV(f, frequencies, impedances)
}
