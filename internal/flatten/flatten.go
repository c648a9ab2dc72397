// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package flatten turns nested registry records into flat table rows.
//
// Scalar fields map to fixed column names. Repeated groups (addresses,
// practice locations, taxonomies, identifiers) become one column per member
// attribute named {Group}_{position}_{Attribute}, with 1-based positions in
// source order. An empty group contributes no columns.
package flatten

import (
	"strconv"

	"github.com/pdiddy/npi-locator/internal/registry"
	"github.com/pdiddy/npi-locator/internal/table"
)

// Scalar column names.
const (
	ColQuery             = "Query"
	ColNPI               = "NPI ID"
	ColFirstName         = "First Name"
	ColLastName          = "Last Name"
	ColMiddleName        = "Middle Name"
	ColOrganizationName  = "Organization Name"
	ColCredential        = "Credential"
	ColSoleProprietor    = "Sole Proprietor"
	ColGender            = "Gender"
	ColEnumerationDate   = "Enumeration Date"
	ColLastUpdated       = "Last Updated"
	ColCertificationDate = "Certification Date"
	ColStatus            = "Status"
	ColEnumerationType   = "Enumeration Type"
)

// Repeated group names.
const (
	GroupAddress          = "Address"
	GroupPracticeLocation = "PracticeLocation"
	GroupTaxonomy         = "Taxonomy"
	GroupIdentifier       = "Identifier"
)

// Column returns the column name for attr of the pos-th (1-based) member of group.
func Column(group string, pos int, attr string) string {
	return group + "_" + strconv.Itoa(pos) + "_" + attr
}

// Result flattens a lookup result. Found results go through Record; markers
// go through Marker. Either way the row carries the caller's query.
func Result(res registry.Result) table.Row {
	if res.Outcome == registry.OutcomeFound {
		return build(res.Query, res.Record, statusOf(res.Record))
	}
	return Marker(res)
}

// Record flattens a full registry record. Status is "Found" when the record
// carries a number and "Not Found" otherwise.
func Record(rec registry.Record) table.Row {
	return build("", rec, statusOf(rec))
}

// Marker flattens a not-found or error result. The record fields come out
// empty and the carried status is kept verbatim, error detail included.
func Marker(res registry.Result) table.Row {
	status := res.Status
	if status == "" {
		status = registry.StatusNotFound
	}
	return build(res.Query, res.Record, status)
}

func statusOf(rec registry.Record) string {
	if rec.Number != "" {
		return registry.StatusFound
	}
	return registry.StatusNotFound
}

func build(query string, rec registry.Record, status string) table.Row {
	r := table.NewRow()
	b := rec.Basic

	r.Set(ColQuery, query)
	r.Set(ColNPI, rec.Number.String())
	r.Set(ColFirstName, b.FirstName)
	r.Set(ColLastName, b.LastName)
	r.Set(ColMiddleName, b.MiddleName)
	r.Set(ColOrganizationName, b.OrganizationName)
	r.Set(ColCredential, b.Credential)
	r.Set(ColSoleProprietor, b.SoleProprietor)
	r.Set(ColGender, b.Gender)
	r.Set(ColEnumerationDate, b.EnumerationDate)
	r.Set(ColLastUpdated, b.LastUpdated)
	r.Set(ColCertificationDate, b.CertificationDate)
	r.Set(ColStatus, status)
	r.Set(ColEnumerationType, rec.EnumerationType)

	for i, a := range rec.Addresses {
		p := i + 1
		r.Set(Column(GroupAddress, p, "Purpose"), a.Purpose)
		r.Set(Column(GroupAddress, p, "Type"), a.Type)
		r.Set(Column(GroupAddress, p, "Address1"), a.Address1)
		r.Set(Column(GroupAddress, p, "Address2"), a.Address2)
		r.Set(Column(GroupAddress, p, "City"), a.City)
		r.Set(Column(GroupAddress, p, "State"), a.State)
		r.Set(Column(GroupAddress, p, "Postal Code"), a.PostalCode)
		r.Set(Column(GroupAddress, p, "Telephone"), a.Telephone)
		r.Set(Column(GroupAddress, p, "Fax"), a.Fax)
	}

	for i, l := range rec.PracticeLocations {
		p := i + 1
		r.Set(Column(GroupPracticeLocation, p, "Address1"), l.Address1)
		r.Set(Column(GroupPracticeLocation, p, "City"), l.City)
		r.Set(Column(GroupPracticeLocation, p, "State"), l.State)
		r.Set(Column(GroupPracticeLocation, p, "Postal Code"), l.PostalCode)
		r.Set(Column(GroupPracticeLocation, p, "Telephone"), l.Telephone)
		r.Set(Column(GroupPracticeLocation, p, "Fax"), l.Fax)
	}

	for i, tx := range rec.Taxonomies {
		p := i + 1
		r.Set(Column(GroupTaxonomy, p, "Code"), tx.Code)
		r.Set(Column(GroupTaxonomy, p, "Description"), tx.Description)
		r.Set(Column(GroupTaxonomy, p, "State"), tx.State)
		r.Set(Column(GroupTaxonomy, p, "License"), tx.License)
		r.Set(Column(GroupTaxonomy, p, "Primary"), tx.Primary.String())
	}

	for i, id := range rec.Identifiers {
		p := i + 1
		r.Set(Column(GroupIdentifier, p, "Code"), id.Code)
		r.Set(Column(GroupIdentifier, p, "Description"), id.Description)
		r.Set(Column(GroupIdentifier, p, "Identifier"), id.Identifier)
		r.Set(Column(GroupIdentifier, p, "State"), id.State)
	}

	return r
}
