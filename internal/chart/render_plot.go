package chart

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// plotRenderer draws the model with gonum/plot. The output format
// (png, svg, pdf) follows from the path extension.
type plotRenderer struct{}

var seriesColors = []color.Color{
	color.RGBA{R: 0xd6, G: 0x28, B: 0x28, A: 0xff}, // resistance
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, // reactance
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, // magnitude
}

var isolationColor = color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff}

func (r *plotRenderer) Render(m *Model, path string) error {
	p := plot.New()
	p.Title.Text = m.Title
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = "Impedance (Ω)"
	p.X.Tick.Marker = engTicks{}
	p.Y.Tick.Marker = engTicks{}
	p.Legend.Top = true
	p.Legend.Left = true

	xmin, xmax := xRange(m.Frequencies)
	ymin, ymax := yRange(m.Series)
	p.X.Min, p.X.Max = xmin, xmax
	p.Y.Min, p.Y.Max = ymin, ymax

	// Overlays go in before the data series so the lines stay on top.
	if err := addImpedanceBands(p, m, xmin, xmax, ymin, ymax); err != nil {
		return err
	}
	if err := addFrequencyBands(p, m, xmin, xmax, ymin, ymax); err != nil {
		return err
	}

	// Sketch jitter is seeded so repeated renders are identical.
	rng := rand.New(rand.NewSource(1))
	for i, s := range m.Series {
		line, err := plotter.NewLine(seriesXYs(m, s.Y, ymin, ymax, rng))
		if err != nil {
			return fmt.Errorf("chart: series %s: %w", s.Name, err)
		}
		line.Color = seriesColors[i%len(seriesColors)]
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	if m.Isolation != nil {
		if err := addIsolation(p, m, xmax, ymin, ymax); err != nil {
			return err
		}
	}

	w := vg.Length(m.Width) * vg.Inch
	h := vg.Length(m.Height) * vg.Inch
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	return nil
}

// seriesXYs builds the polyline for one series, skipping non-finite
// samples and applying sketch jitter when enabled.
func seriesXYs(m *Model, ys []float64, ymin, ymax float64, rng *rand.Rand) plotter.XYs {
	xys := make(plotter.XYs, 0, len(ys))
	amp := 0.0
	if m.Sketch {
		amp = 0.004 * (ymax - ymin)
	}
	for i, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		if amp != 0 {
			y += (rng.Float64() - 0.5) * 2 * amp
		}
		xys = append(xys, plotter.XY{X: m.Frequencies[i], Y: y})
	}
	return xys
}

func addImpedanceBands(p *plot.Plot, m *Model, xmin, xmax, ymin, ymax float64) error {
	for i, b := range m.ImpedanceBands {
		lo, hi, ok := overlap(b.Min, b.Max, ymin, ymax)
		if !ok {
			continue
		}
		poly, err := plotter.NewPolygon(rectXYs(xmin, xmax, lo, hi))
		if err != nil {
			return fmt.Errorf("chart: impedance band %s: %w", b.Name, err)
		}
		// Heavier shade for each step up in choking impedance.
		alpha := uint8(18 + 12*i)
		poly.Color = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: alpha}
		poly.LineStyle.Width = 0
		p.Add(poly)
	}
	return nil
}

// addFrequencyBands shades the bands clamped to the sweep's x-range;
// anything the polygons cover beyond the measured sweep would widen
// the autoscaled axis into empty chart.
func addFrequencyBands(p *plot.Plot, m *Model, xmin, xmax, ymin, ymax float64) error {
	visible := visibleFrequencyBands(m.FrequencyBands, xmin, xmax)
	if len(visible) == 0 {
		return nil
	}
	labels := plotter.XYLabels{}
	for _, b := range visible {
		poly, err := plotter.NewPolygon(rectXYs(b.Min, b.Max, ymin, ymax))
		if err != nil {
			return fmt.Errorf("chart: frequency band %s: %w", b.Label, err)
		}
		poly.Color = color.NRGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0x30}
		poly.LineStyle.Width = 0
		p.Add(poly)
		labels.XYs = append(labels.XYs, plotter.XY{
			X: (b.Min + b.Max) / 2,
			Y: ymax - 0.03*(ymax-ymin),
		})
		labels.Labels = append(labels.Labels, b.Label)
	}
	l, err := plotter.NewLabels(labels)
	if err != nil {
		return fmt.Errorf("chart: frequency band labels: %w", err)
	}
	p.Add(l)
	return nil
}

// addIsolation draws the isolation trace against a fixed 0-50 dB scale
// remapped onto the impedance axis, with a labeled tick column on the
// right edge standing in for a secondary axis.
func addIsolation(p *plot.Plot, m *Model, xmax, ymin, ymax float64) error {
	mapDB := func(db float64) float64 {
		return ymin + db/IsolationAxisMax*(ymax-ymin)
	}
	xys := make(plotter.XYs, 0, len(m.Isolation))
	for i, db := range m.Isolation {
		if math.IsNaN(db) || math.IsInf(db, 0) {
			continue
		}
		xys = append(xys, plotter.XY{X: m.Frequencies[i], Y: mapDB(math.Min(math.Max(db, 0), IsolationAxisMax))})
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("chart: isolation: %w", err)
	}
	line.Color = isolationColor
	line.Width = vg.Points(1)
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(line)
	p.Legend.Add("Isolation (dB)", line)

	ticks := plotter.XYLabels{}
	for db := 0.0; db <= IsolationAxisMax; db += 10 {
		ticks.XYs = append(ticks.XYs, plotter.XY{X: xmax, Y: mapDB(db)})
		ticks.Labels = append(ticks.Labels, fmt.Sprintf("%.0f dB", db))
	}
	l, err := plotter.NewLabels(ticks)
	if err != nil {
		return fmt.Errorf("chart: isolation axis: %w", err)
	}
	p.Add(l)
	return nil
}

// visibleFrequencyBands clamps each band to [xmin, xmax] and drops the
// ones outside the sweep entirely.
func visibleFrequencyBands(bands []FrequencyBand, xmin, xmax float64) []FrequencyBand {
	visible := make([]FrequencyBand, 0, len(bands))
	for _, b := range bands {
		lo, hi, ok := overlap(b.Min, b.Max, xmin, xmax)
		if !ok {
			continue
		}
		visible = append(visible, FrequencyBand{Label: b.Label, Min: lo, Max: hi})
	}
	return visible
}

// overlap clamps [lo, hi] to [min, max]; ok is false when the
// intervals do not intersect.
func overlap(lo, hi, min, max float64) (float64, float64, bool) {
	lo, hi = math.Max(lo, min), math.Min(hi, max)
	return lo, hi, lo < hi
}

func rectXYs(x0, x1, y0, y1 float64) plotter.XYs {
	return plotter.XYs{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}
}

func xRange(xs []float64) (min, max float64) {
	if len(xs) == 0 {
		return 0, 1
	}
	min, max = xs[0], xs[len(xs)-1]
	if min == max {
		max = min + 1
	}
	return min, max
}

// yRange spans the finite samples of every series, padded slightly,
// so singular samples never blow up the axis.
func yRange(series []Series) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, y := range s.Y {
			if math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			min = math.Min(min, y)
			max = math.Max(max, y)
		}
	}
	if min > max {
		return 0, 1
	}
	if min == max {
		return min - 1, max + 1
	}
	pad := 0.05 * (max - min)
	return min - pad, max + pad
}

// engTicks formats axis ticks in engineering notation.
type engTicks struct{}

func (engTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range ticks {
		if t.Label == "" {
			continue
		}
		ticks[i].Label = engFormat(t.Value)
	}
	return ticks
}
