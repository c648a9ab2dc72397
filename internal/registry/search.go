// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Criteria holds the optional fields of a multi-field registry search.
// Empty fields are not sent.
type Criteria struct {
	Number              string
	EnumerationType     string // NPI-1 (individual) or NPI-2 (organization)
	TaxonomyDescription string
	FirstName           string
	LastName            string
	OrganizationName    string
	AddressPurpose      string // LOCATION, MAILING, PRIMARY, SECONDARY
	City                string
	State               string
	PostalCode          string
	CountryCode         string
	Limit               int
	Skip                int
}

// IsEmpty reports whether no search field is set. Limit and Skip alone do
// not make a searchable query.
func (c Criteria) IsEmpty() bool {
	for _, p := range c.params() {
		if p.key != "limit" && p.key != "skip" {
			return false
		}
	}
	return true
}

type param struct{ key, value string }

// params lists the supplied criteria in the order they are appended to the URL.
func (c Criteria) params() []param {
	all := []param{
		{"number", c.Number},
		{"enumeration_type", c.EnumerationType},
		{"taxonomy_description", c.TaxonomyDescription},
		{"first_name", c.FirstName},
		{"last_name", c.LastName},
		{"organization_name", c.OrganizationName},
		{"address_purpose", c.AddressPurpose},
		{"city", c.City},
		{"state", c.State},
		{"postal_code", c.PostalCode},
		{"country_code", c.CountryCode},
	}
	if c.Limit > 0 {
		all = append(all, param{"limit", strconv.Itoa(c.Limit)})
	}
	if c.Skip > 0 {
		all = append(all, param{"skip", strconv.Itoa(c.Skip)})
	}

	var out []param
	for _, p := range all {
		if strings.TrimSpace(p.value) != "" {
			out = append(out, p)
		}
	}
	return out
}

// SearchURL builds the search request URL by appending "&key=value" for
// every supplied criterion.
func (c *Client) SearchURL(cr Criteria) string {
	if cr.Limit <= 0 && c.cfg.SearchLimit > 0 {
		cr.Limit = c.cfg.SearchLimit
	}
	var b strings.Builder
	b.WriteString(c.cfg.SearchURL)
	for _, p := range cr.params() {
		b.WriteString("&")
		b.WriteString(p.key)
		b.WriteString("=")
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// Search returns every record matching cr in registry order. Zero matches
// is an empty slice and a nil error. Any failure also yields an empty slice,
// together with the typed cause so the caller can decide whether to report it.
func (c *Client) Search(ctx context.Context, cr Criteria) ([]Record, error) {
	if cr.IsEmpty() {
		return []Record{}, fmt.Errorf("%w: no search criteria supplied", ErrRejectedQuery)
	}

	resp, err := c.get(ctx, c.SearchURL(cr))
	if err != nil {
		return []Record{}, err
	}
	if len(resp.Errors) > 0 {
		return []Record{}, fmt.Errorf("%w: %s", ErrRejectedQuery, resp.Errors[0].Description)
	}
	if resp.ResultCount == 0 || len(resp.Results) == 0 {
		return []Record{}, nil
	}
	return resp.Results, nil
}
