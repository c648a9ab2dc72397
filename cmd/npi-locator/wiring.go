// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pdiddy/npi-locator/internal/geocode"
	"github.com/pdiddy/npi-locator/internal/httputil"
	"github.com/pdiddy/npi-locator/internal/input"
	"github.com/pdiddy/npi-locator/internal/locator"
	"github.com/pdiddy/npi-locator/internal/mapview"
	"github.com/pdiddy/npi-locator/internal/registry"
	"github.com/pdiddy/npi-locator/internal/table"
	"github.com/pdiddy/npi-locator/pkg/types"
)

// stdoutPath selects standard output for --out and --map-out.
const stdoutPath = "-"

func httpClient(cmd *cobra.Command, c types.HTTPConfig) *http.Client {
	var trace io.Writer
	if on, _ := cmd.Flags().GetBool("trace"); on {
		trace = os.Stderr
	}
	return httputil.NewClient(c, trace)
}

func newRegistryClient(cmd *cobra.Command) *registry.Client {
	return registry.NewClient(httpClient(cmd, cfg.Registry.HTTPConfig), cfg.Registry)
}

func newResolver(cmd *cobra.Command) (*geocode.Resolver, error) {
	p, err := geocode.NewProvider(cfg.Geocode, httpClient(cmd, cfg.Geocode.HTTPConfig))
	if err != nil {
		return nil, err
	}
	return geocode.NewResolver(p, geocode.CountryFromConfig(cfg.Geocode), log), nil
}

// readInputs returns args followed by the identifiers in file. An
// unreadable file is reported and contributes nothing, and neither do
// args, so a half-read batch never runs.
func readInputs(w io.Writer, args []string, file string) []string {
	out := append([]string{}, args...)
	if file == "" {
		return out
	}
	ids, err := input.ReadIdentifiers(file)
	if err != nil {
		fmt.Fprintf(w, "Error reading file: %v\n", err)
		return nil
	}
	return append(out, ids...)
}

// messages returns where user-facing lines go: stdout, unless the table
// itself is written there.
func messages(out string) io.Writer {
	if out == stdoutPath {
		return os.Stderr
	}
	return os.Stdout
}

// create opens path for writing, or returns standard output for "-".
func create(path string) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func writeTable(path string, t *table.Table, asJSON, bom bool) error {
	w, err := create(path)
	if err != nil {
		return err
	}
	if asJSON {
		err = t.WriteJSON(w)
	} else {
		err = t.WriteCSV(w, table.CSVOptions{BOM: bom})
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeMap(path string, points []mapview.Point) error {
	w, err := create(path)
	if err != nil {
		return err
	}
	err = mapview.WriteGeoJSON(w, points)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

// progressObserver draws one progress bar per pipeline phase when stderr
// is a terminal.
type progressObserver struct {
	bar *progressbar.ProgressBar
}

// newObserver returns the observer for a run and a function that clears
// its last bar. Without a terminal the observer is nil.
func newObserver() (locator.Observer, func()) {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return nil, func() {}
	}
	o := &progressObserver{}
	return o, o.finish
}

func (o *progressObserver) Start(phase string, total int) {
	if o.bar != nil {
		_ = o.bar.Finish()
	}
	o.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(phaseLabel(phase)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (o *progressObserver) Step(string) {
	if o.bar != nil {
		_ = o.bar.Add(1)
	}
}

func (o *progressObserver) finish() {
	if o.bar != nil {
		_ = o.bar.Finish()
	}
}

func phaseLabel(phase string) string {
	switch phase {
	case locator.PhaseLookup:
		return "Fetching NPI details"
	case locator.PhaseGeocode:
		return "Geocoding addresses"
	case locator.PhaseSearch:
		return "Searching addresses"
	default:
		return phase
	}
}
