package chart

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRendererFor(t *testing.T) {
	for _, path := range []string{"out.png", "out.svg", "out.pdf", "OUT.PNG"} {
		r, err := RendererFor(path)
		require.NoError(t, err, path)
		assert.IsType(t, &plotRenderer{}, r, path)
	}
	r, err := RendererFor("out.xlsx")
	require.NoError(t, err)
	assert.IsType(t, &workbookRenderer{}, r)

	_, err = RendererFor("out.gif")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no renderer")
}

func testModel(cfg Config) *Model {
	frequencies := []float64{1e6, 5e6, 10e6, 20e6, 30e6}
	impedances := []complex128{
		complex(120, 80),
		complex(800, 300),
		complex(2500, -150),
		complex(900, -700),
		complex(400, -350),
	}
	cfg.Width, cfg.Height = 6, 4
	return Compose(frequencies, impedances, 50, cfg)
}

func TestPlotRendererWritesImage(t *testing.T) {
	dir := t.TempDir()
	m := testModel(Config{RefBands: true, AmateurBands: true, Isolation: true, Sketch: true})

	for _, name := range []string{"chart.png", "chart.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, (&plotRenderer{}).Render(m, path), name)
		info, err := os.Stat(path)
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

func TestPlotRendererSkipsNonFinite(t *testing.T) {
	m := testModel(Config{})
	m.Series[0].Y[2] = math.Inf(1)
	m.Series[1].Y[3] = math.NaN()

	path := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, (&plotRenderer{}).Render(m, path))
}

func TestWorkbookRendererRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.xlsx")
	m := testModel(Config{Title: "Choke", Isolation: true})
	require.NoError(t, (&workbookRenderer{}).Render(m, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	head, err := f.GetCellValue(dataSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Frequency (Hz)", head)
	head, err = f.GetCellValue(dataSheet, "E1")
	require.NoError(t, err)
	assert.Equal(t, "Isolation (dB)", head)

	freq, err := f.GetCellValue(dataSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "1000000", freq)
	resistance, err := f.GetCellValue(dataSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "120", resistance)

	rows, err := f.GetRows(dataSheet)
	require.NoError(t, err)
	assert.Len(t, rows, len(m.Frequencies)+1)
}

func TestVisibleFrequencyBandsClampToSweep(t *testing.T) {
	bands := amateurBands()

	// A 1-3 MHz sweep only touches the 160m band.
	visible := visibleFrequencyBands(bands, 1e6, 3e6)
	require.Len(t, visible, 1)
	assert.Equal(t, FrequencyBand{Label: "160m", Min: 1.81e6, Max: 2.0e6}, visible[0])

	// A sweep starting mid-band gets the band clipped to the sweep.
	visible = visibleFrequencyBands(bands, 1.9e6, 8e6)
	require.Len(t, visible, 3)
	assert.Equal(t, FrequencyBand{Label: "160m", Min: 1.9e6, Max: 2.0e6}, visible[0])
	assert.Equal(t, "80m", visible[1].Label)
	assert.Equal(t, "40m", visible[2].Label)

	assert.Empty(t, visibleFrequencyBands(bands, 100e6, 200e6))
}

func TestChartAxesUseEngineeringNumberFormat(t *testing.T) {
	c := newImpedanceChart(testModel(Config{}), nil)
	assert.Contains(t, c.XAxis.NumFmt.CustomNumFmt, `"M"`)
	assert.Contains(t, c.XAxis.NumFmt.CustomNumFmt, `"k"`)
	assert.Contains(t, c.YAxis.NumFmt.CustomNumFmt, `"k"`)
}

func TestWorkbookRendererWarnsAboutDroppedBands(t *testing.T) {
	buf := &bytes.Buffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "chart.xlsx")
	m := testModel(Config{RefBands: true, AmateurBands: true})
	require.NoError(t, (&workbookRenderer{}).Render(m, path))
	assert.Contains(t, buf.String(), "shaded bands")

	buf.Reset()
	require.NoError(t, (&workbookRenderer{}).Render(testModel(Config{}), path))
	assert.Empty(t, buf.String())
}

func TestWorkbookRendererLeavesSingularCellsBlank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.xlsx")
	m := testModel(Config{})
	m.Series[2].Y[0] = math.Inf(1)
	require.NoError(t, (&workbookRenderer{}).Render(m, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(dataSheet, "D2")
	require.NoError(t, err)
	assert.Empty(t, v)
}
