package export

import (
	"bytes"
	"encoding/csv"
	"math"
	"math/cmplx"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVGolden(t *testing.T) {
	buf := &bytes.Buffer{}
	frequencies := []float64{1e6, 2e6, 3e6}
	impedances := []complex128{50, 150, complex(16.5, -2.25)}
	require.NoError(t, WriteCSV(buf, frequencies, impedances))

	g := goldie.New(t)
	g.Assert(t, "impedance_sweep", buf.Bytes())
}

func TestWriteCSVRoundTrip(t *testing.T) {
	frequencies := []float64{1.81e6, 3.5e6, 28.7e6}
	impedances := []complex128{
		complex(50, 0),
		complex(-12.75, 3301.5),
		complex(0.001, -0.25),
	}
	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, frequencies, impedances))

	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, record := range records {
		require.Len(t, record, 2)
		f, err := strconv.ParseFloat(record[0], 64)
		require.NoError(t, err)
		assert.Equal(t, frequencies[i], f)
		z, err := strconv.ParseComplex(record[1], 128)
		require.NoError(t, err)
		assert.Equal(t, impedances[i], z)
	}
}

func TestWriteCSVNonFinite(t *testing.T) {
	// A singular sample must still produce a record.
	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, []float64{1e6, 2e6}, []complex128{cmplx.Inf(), 50}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	z, err := strconv.ParseComplex(strings.SplitN(lines[0], ",", 2)[1], 128)
	require.NoError(t, err)
	assert.True(t, math.IsInf(real(z), 0) || math.IsInf(imag(z), 0))
}

func TestWriteCSVLengthMismatch(t *testing.T) {
	err := WriteCSV(&bytes.Buffer{}, []float64{1, 2}, []complex128{50})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 frequencies but 1 impedances")
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "impedance.csv")
	require.NoError(t, WriteCSVFile(path, []float64{1e6}, []complex128{50}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1e+06,(50+0i)\n", string(data))
}

func TestWriteCSVFileBadPath(t *testing.T) {
	err := WriteCSVFile(filepath.Join(t.TempDir(), "no", "such", "dir.csv"), nil, nil)
	require.Error(t, err)
}
