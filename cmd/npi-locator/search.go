// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/npi-locator/internal/flatten"
	"github.com/pdiddy/npi-locator/internal/registry"
	"github.com/pdiddy/npi-locator/internal/table"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the NPI registry by name, taxonomy or location",
	Long: `search runs one multi-field registry query. Only the criteria you supply
are sent. Matching records are flattened into a table, one row per record.

A failed or rejected search is logged and produces an empty table.`,
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.String("number", "", "NPI number")
	f.String("enumeration-type", "", "NPI-1 (individual) or NPI-2 (organization)")
	f.String("taxonomy", "", "taxonomy description")
	f.String("first-name", "", "provider first name")
	f.String("last-name", "", "provider last name")
	f.String("organization", "", "organization name")
	f.String("address-purpose", "", "LOCATION, MAILING, PRIMARY or SECONDARY")
	f.String("city", "", "city")
	f.String("state", "", "two-letter state code")
	f.String("postal-code", "", "postal code (prefix match with trailing *)")
	f.String("country-code", "", "two-letter country code")
	f.Int("limit", 0, "records to return (default from config)")
	f.Int("skip", 0, "records to skip")
	f.String("out", stdoutPath, `output table path ("-" for stdout)`)
	f.Bool("json", false, "write the table as JSON instead of CSV")
	f.Bool("bom", false, "prefix CSV output with a UTF-8 byte order mark")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	str := func(name string) string {
		v, _ := f.GetString(name)
		return v
	}
	limit, _ := f.GetInt("limit")
	skip, _ := f.GetInt("skip")
	asJSON, _ := f.GetBool("json")
	bom, _ := f.GetBool("bom")
	out := str("out")

	cr := registry.Criteria{
		Number:              str("number"),
		EnumerationType:     str("enumeration-type"),
		TaxonomyDescription: str("taxonomy"),
		FirstName:           str("first-name"),
		LastName:            str("last-name"),
		OrganizationName:    str("organization"),
		AddressPurpose:      str("address-purpose"),
		City:                str("city"),
		State:               str("state"),
		PostalCode:          str("postal-code"),
		CountryCode:         str("country-code"),
		Limit:               limit,
		Skip:                skip,
	}
	msg := messages(out)
	if cr.IsEmpty() {
		fmt.Fprintln(msg, "Please enter at least one search criterion.")
		return errors.New("no search criteria supplied")
	}

	client := newRegistryClient(cmd)
	log.Debug().Str("url", client.SearchURL(cr)).Msg("registry search")
	records, err := client.Search(cmd.Context(), cr)
	if err != nil {
		log.Warn().Err(err).Msg("registry search failed")
	}

	t := table.New()
	for _, rec := range records {
		t.Append(flatten.Record(rec))
	}
	if err := writeTable(out, t, asJSON, bom); err != nil {
		return err
	}
	fmt.Fprintf(msg, "\nSearch summary: %d record(s)\n", t.Len())
	return nil
}
