// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/npi-locator/internal/locator"
	"github.com/pdiddy/npi-locator/internal/server"
)

var npiCmd = &cobra.Command{
	Use:   "npi [ids...]",
	Short: "Fetch NPI details and geocode provider addresses",
	Long: `npi looks each NPI ID up in the NPPES registry, in input order. Every ID
produces one row: the flattened record, or a "Not Found" / "Error: ..." marker.
The first address of every found record is geocoded.

IDs come from the arguments and from --file (.csv, .tsv and .xlsx files
contribute the first column after the header row; other files one ID per
line).`,
	RunE: runNPI,
}

func init() {
	f := npiCmd.Flags()
	f.String("file", "", "read NPI IDs from a CSV, TSV, XLSX or text file")
	f.String("out", server.NPIFilename, `output table path ("-" for stdout)`)
	f.String("map-out", "", "write located providers as GeoJSON to this path")
	f.Bool("json", false, "write the table as JSON instead of CSV")
	f.Bool("bom", false, "prefix CSV output with a UTF-8 byte order mark")
	f.Bool("found-only", false, "write only found records with their geocoding columns")

	rootCmd.AddCommand(npiCmd)
}

func runNPI(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	out, _ := cmd.Flags().GetString("out")
	mapOut, _ := cmd.Flags().GetString("map-out")
	asJSON, _ := cmd.Flags().GetBool("json")
	bom, _ := cmd.Flags().GetBool("bom")
	foundOnly, _ := cmd.Flags().GetBool("found-only")

	msg := messages(out)
	ids := readInputs(msg, args, file)
	if len(ids) == 0 {
		fmt.Fprintln(msg, "Please enter at least one NPI ID or upload a file.")
		return errors.New("no NPI IDs supplied")
	}

	resolver, err := newResolver(cmd)
	if err != nil {
		return err
	}
	obs, done := newObserver()
	p := &locator.NPI{
		Registry: newRegistryClient(cmd),
		Geocoder: resolver,
		Log:      log,
		Observer: obs,
	}
	res := p.Run(cmd.Context(), ids)
	done()

	report := res.Export
	if foundOnly {
		report = res.Located
	}
	if res.Located.Empty() {
		fmt.Fprintln(msg, "No valid NPI details found.")
	}
	if !report.Empty() {
		if err := writeTable(out, report, asJSON, bom); err != nil {
			return err
		}
	}

	if mapOut != "" {
		if len(res.Points) == 0 {
			fmt.Fprintln(msg, "No valid coordinates found for mapping.")
		}
		if err := writeMap(mapOut, res.Points); err != nil {
			return err
		}
	}

	fmt.Fprintf(msg, "\nNPI summary: %d found, %d not found, %d failed, %d geocoded (total: %d)\n",
		res.Found, res.NotFound, res.Failed, res.Geocoded, res.Total())
	if res.HasFailures() {
		return fmt.Errorf("%d NPI lookup(s) failed", res.Failed)
	}
	return nil
}
