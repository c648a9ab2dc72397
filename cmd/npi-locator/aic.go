// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/npi-locator/internal/locator"
	"github.com/pdiddy/npi-locator/internal/server"
)

var aicCmd = &cobra.Command{
	Use:   "aic [queries...]",
	Short: "Resolve AIC names and locations/ZIP codes to addresses",
	Long: `aic geocodes each free-text query, keeping up to --limit matches inside the
configured country. A query without matches produces one "Not Found" row.

Quote queries that contain spaces: npi-locator aic "General Hospital, 90210".`,
	RunE: runAIC,
}

func init() {
	f := aicCmd.Flags()
	f.String("file", "", "read queries from a CSV, TSV, XLSX or text file")
	f.String("out", server.AICFilename, `output table path ("-" for stdout)`)
	f.String("map-out", "", "write found addresses as GeoJSON to this path")
	f.Int("limit", 0, "maximum matches per query (default from config, 5)")
	f.Bool("json", false, "write the table as JSON instead of CSV")
	f.Bool("bom", false, "prefix CSV output with a UTF-8 byte order mark")

	rootCmd.AddCommand(aicCmd)
}

func runAIC(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	out, _ := cmd.Flags().GetString("out")
	mapOut, _ := cmd.Flags().GetString("map-out")
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")
	bom, _ := cmd.Flags().GetBool("bom")
	if limit <= 0 {
		limit = cfg.Geocode.MaxResults
	}

	msg := messages(out)
	queries := readInputs(msg, args, file)
	if len(queries) == 0 {
		fmt.Fprintln(msg, "Please enter at least one AIC name and location/ZIP or upload a file.")
		return errors.New("no AIC queries supplied")
	}

	resolver, err := newResolver(cmd)
	if err != nil {
		return err
	}
	obs, done := newObserver()
	p := &locator.AIC{
		Geocoder: resolver,
		Limit:    limit,
		Log:      log,
		Observer: obs,
	}
	res := p.Run(cmd.Context(), queries)
	done()

	if err := writeTable(out, res.Results, asJSON, bom); err != nil {
		return err
	}
	if res.Found.Empty() {
		fmt.Fprintln(msg, "No valid addresses found for mapping.")
	}
	if mapOut != "" {
		if err := writeMap(mapOut, res.Points); err != nil {
			return err
		}
	}

	fmt.Fprintf(msg, "\nAIC summary: %d matched, %d not found, %d addresses (total: %d)\n",
		res.Matched, res.Unmatched, res.Found.Len(), res.Total())
	return nil
}
