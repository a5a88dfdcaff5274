// Package chart composes impedance sweep visualizations. The composer
// is pure: it derives plot series and style directives into a Model,
// and rendering backends turn a Model into an artifact without ever
// touching the source arrays.
package chart

import (
	"math"

	"github.com/rfbench/vic/internal/fixture"
)

// Config selects the optional overlays and presentation style.
type Config struct {
	Title        string
	Width        float64 // inches
	Height       float64 // inches
	Sketch       bool    // hand-drawn rendering style, presentation only
	AbsReactance bool    // plot |X| instead of signed reactance
	RefBands     bool    // shaded choke reference impedance bands
	AmateurBands bool    // labeled amateur-radio frequency bands
	Isolation    bool    // secondary 0-50 dB isolation axis
}

// Series is one plotted impedance-derived line.
type Series struct {
	Name string
	Y    []float64 // ohms, aligned with Model.Frequencies
}

// ImpedanceBand is a shaded horizontal guide band in ohms.
type ImpedanceBand struct {
	Name string  `yaml:"name"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

// FrequencyBand is a shaded, labeled vertical band in Hz.
type FrequencyBand struct {
	Label string  `yaml:"label"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

// Model is everything a rendering backend needs. It carries data
// series and advisory overlays; nothing in it aliases the caller's
// arrays.
type Model struct {
	Title  string
	Width  float64
	Height float64
	Sketch bool

	Frequencies []float64
	Series      []Series

	ImpedanceBands []ImpedanceBand // empty unless Config.RefBands
	FrequencyBands []FrequencyBand // empty unless Config.AmateurBands

	// Isolation holds dB values for the fixed 0-50 dB secondary axis,
	// or nil when the axis is disabled.
	Isolation []float64
}

// IsolationAxisMax is the fixed top of the secondary isolation axis.
const IsolationAxisMax = 50.0

// Compose derives the chart model for an impedance sweep. The sweep
// arrays are copied, never retained.
func Compose(frequencies []float64, impedances []complex128, z0 complex128, cfg Config) *Model {
	m := &Model{
		Title:       cfg.Title,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Sketch:      cfg.Sketch,
		Frequencies: append([]float64(nil), frequencies...),
	}
	if m.Title == "" {
		m.Title = "Impedance"
	}
	if m.Width <= 0 {
		m.Width = 15
	}
	if m.Height <= 0 {
		m.Height = 10
	}

	resistance := make([]float64, len(impedances))
	reactance := make([]float64, len(impedances))
	magnitude := make([]float64, len(impedances))
	for i, z := range impedances {
		resistance[i] = real(z)
		reactance[i] = imag(z)
		if cfg.AbsReactance {
			reactance[i] = math.Abs(reactance[i])
		}
		magnitude[i] = math.Hypot(real(z), imag(z))
	}
	reactanceName := "Reactance"
	if cfg.AbsReactance {
		reactanceName = "|Reactance|"
	}
	m.Series = []Series{
		{Name: "Resistance", Y: resistance},
		{Name: reactanceName, Y: reactance},
		{Name: "Magnitude", Y: magnitude},
	}

	if cfg.RefBands {
		m.ImpedanceBands = referenceBands()
	}
	if cfg.AmateurBands {
		m.FrequencyBands = amateurBands()
	}
	if cfg.Isolation {
		m.Isolation = fixture.Isolation(z0, impedances)
	}
	return m
}
