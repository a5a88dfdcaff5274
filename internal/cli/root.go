// Package cli defines the vic command line surface.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rfbench/vic/internal/chart"
	"github.com/rfbench/vic/internal/export"
	"github.com/rfbench/vic/internal/fixture"
	"github.com/rfbench/vic/internal/touchstone"
)

// Options holds every flag of the vic command.
type Options struct {
	Type       fixture.Topology
	Z0         *complex128 // nil until --z0 is given
	Output     string
	Plot       bool
	PlotOutput string
	Title      string
	Width      float64
	Height     float64
	Sketch     bool
	RefBands   bool
	AbsReact   bool
	Bands      bool
	Isolation  bool
	Verbose    bool
}

// NewRootCommand creates the vic command.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "vic <filename>",
		Short: "Calculate impedance from S-parameters",
		Long: `vic converts a Touchstone S-parameter measurement into impedance
versus frequency for one of three fixture topologies, writes the result
as CSV, and optionally renders a chart.

Example:
  vic --type shunt-one-port -z 50 choke.s1p
  vic -t series-two-port -o out.csv --plot --bands --refs choke.s2p`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculation(opts, args[0])
		},
	}

	fl := cmd.Flags()
	fl.VarP(&opts.Type, "type", "t", fmt.Sprintf("measurement type, one of %v", fixture.TopologyNames))
	fl.VarP(complexFlag{&opts.Z0}, "z0", "z", "reference impedance, e.g. 50 or 50+2i (default: value embedded in the file)")
	fl.StringVarP(&opts.Output, "output", "o", "impedance.csv", "output file name")
	fl.BoolVarP(&opts.Plot, "plot", "p", false, "render a chart of the impedance sweep")
	fl.StringVar(&opts.PlotOutput, "plot-output", "", "chart file name; extension selects the format (.png, .svg, .pdf, .xlsx; shaded bands draw on image formats only)")
	fl.StringVar(&opts.Title, "title", "", "chart title")
	fl.Float64Var(&opts.Width, "width", 15, "chart width in inches")
	fl.Float64Var(&opts.Height, "height", 10, "chart height in inches")
	fl.BoolVarP(&opts.Sketch, "xkcd", "x", false, "sketch rendering style")
	fl.BoolVarP(&opts.RefBands, "refs", "r", false, "shade common-mode-choke reference impedance bands")
	fl.BoolVarP(&opts.AbsReact, "abs", "a", false, "plot absolute reactance instead of signed")
	fl.BoolVarP(&opts.Bands, "bands", "b", false, "label the amateur-radio frequency bands")
	fl.BoolVarP(&opts.Isolation, "isolation", "i", false, "add a secondary 0-50 dB isolation axis")
	fl.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	return cmd
}

// runCalculation executes the whole pipeline: resolve the reference
// impedance, compute the impedance sweep, export it, and optionally
// render the chart.
func runCalculation(opts *Options, filename string) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	net, err := touchstone.ParseFile(filename)
	if err != nil {
		return WrapExitError(ExitFailure, "cannot open S-parameters file", err)
	}
	slog.Info("loaded measurement", "file", filename, "ports", net.Ports, "points", len(net.Frequencies))

	z0, source, err := fixture.ResolveReference(opts.Z0, net.Reference)
	if err != nil {
		return WrapExitError(ExitFailure, "no reference impedance", err)
	}
	slog.Info("reference impedance resolved",
		"z0", strconv.FormatComplex(z0, 'g', -1, 128), "source", source.String())
	slog.Info("measurement type", "type", opts.Type.String())

	impedances, err := opts.Type.Impedances(z0, net.Params)
	if err != nil {
		return WrapExitError(ExitFailure, "cannot compute impedance", err)
	}

	if err := export.WriteCSVFile(opts.Output, net.Frequencies, impedances); err != nil {
		return WrapExitError(ExitCommandError, "cannot write output", err)
	}
	slog.Info("wrote impedance export", "file", opts.Output)

	if !opts.Plot {
		return nil
	}
	plotPath := opts.PlotOutput
	if plotPath == "" {
		plotPath = strings.TrimSuffix(opts.Output, filepath.Ext(opts.Output)) + ".png"
	}
	model := chart.Compose(net.Frequencies, impedances, z0, chart.Config{
		Title:        chartTitle(opts.Title, filename),
		Width:        opts.Width,
		Height:       opts.Height,
		Sketch:       opts.Sketch,
		AbsReactance: opts.AbsReact,
		RefBands:     opts.RefBands,
		AmateurBands: opts.Bands,
		Isolation:    opts.Isolation,
	})
	renderer, err := chart.RendererFor(plotPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot render chart", err)
	}
	if err := renderer.Render(model, plotPath); err != nil {
		return WrapExitError(ExitCommandError, "cannot render chart", err)
	}
	slog.Info("wrote chart", "file", plotPath)
	return nil
}

func chartTitle(override, filename string) string {
	if override != "" {
		return override
	}
	return filepath.Base(filename)
}

// complexFlag parses --z0 with strconv.ParseComplex and records
// whether the flag was given at all.
type complexFlag struct {
	dst **complex128
}

func (f complexFlag) String() string {
	if f.dst == nil || *f.dst == nil {
		return ""
	}
	return strconv.FormatComplex(**f.dst, 'g', -1, 128)
}

func (f complexFlag) Set(s string) error {
	c, err := strconv.ParseComplex(s, 128)
	if err != nil {
		return fmt.Errorf("invalid complex impedance %q", s)
	}
	*f.dst = &c
	return nil
}

func (f complexFlag) Type() string { return "complex" }
