// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Record is one provider record as returned by the NPPES registry API.
type Record struct {
	Number            FlexString         `json:"number"`
	EnumerationType   string             `json:"enumeration_type"`
	CreatedEpoch      FlexString         `json:"created_epoch"`
	LastUpdatedEpoch  FlexString         `json:"last_updated_epoch"`
	Basic             Basic              `json:"basic"`
	Addresses         []Address          `json:"addresses"`
	PracticeLocations []PracticeLocation `json:"practiceLocations"`
	Taxonomies        []Taxonomy         `json:"taxonomies"`
	Identifiers       []Identifier       `json:"identifiers"`
}

// Basic is the scalar block of a provider record. Individual providers fill
// the name fields; organizations fill OrganizationName.
type Basic struct {
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	MiddleName        string     `json:"middle_name"`
	OrganizationName  string     `json:"organization_name"`
	Credential        string     `json:"credential"`
	SoleProprietor    string     `json:"sole_proprietor"`
	Gender            string     `json:"gender"`
	EnumerationDate   string     `json:"enumeration_date"`
	LastUpdated       string     `json:"last_updated"`
	CertificationDate string     `json:"certification_date"`
	Status            FlexString `json:"status"`
}

// Address is a mailing or location address.
type Address struct {
	Purpose     string `json:"address_purpose"`
	Type        string `json:"address_type"`
	Address1    string `json:"address_1"`
	Address2    string `json:"address_2"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
	Telephone   string `json:"telephone_number"`
	Fax         string `json:"fax_number"`
}

// PracticeLocation is a secondary practice address.
type PracticeLocation struct {
	Address1   string `json:"address_1"`
	Address2   string `json:"address_2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Telephone  string `json:"telephone_number"`
	Fax        string `json:"fax_number"`
}

// Taxonomy is a provider specialty classification.
type Taxonomy struct {
	Code        string   `json:"code"`
	Description string   `json:"desc"`
	State       string   `json:"state"`
	License     string   `json:"license"`
	Primary     FlexBool `json:"primary"`
}

// Identifier is an additional provider identifier (Medicaid, payer IDs).
type Identifier struct {
	Code        string `json:"code"`
	Description string `json:"desc"`
	Identifier  string `json:"identifier"`
	State       string `json:"state"`
	Issuer      string `json:"issuer"`
}

// FlexString decodes a JSON string or number into a string. The registry
// returns "number" as a JSON number while other mirrors send a string.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = FlexString(n.String())
	return nil
}

// String returns the underlying value.
func (s FlexString) String() string { return string(s) }

// FlexBool decodes a JSON boolean, or the strings "true"/"false"/"Y"/"N",
// while remembering whether the field was present at all. Any other string
// is kept verbatim in Raw.
type FlexBool struct {
	Value bool
	Set   bool
	Raw   string
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = FlexBool{}
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*b = FlexBool{Value: v, Set: true}
	case string:
		switch v {
		case "Y", "y":
			*b = FlexBool{Value: true, Set: true}
		case "N", "n", "":
			*b = FlexBool{Value: false, Set: v != ""}
		default:
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				*b = FlexBool{Set: true, Raw: v}
				return nil
			}
			*b = FlexBool{Value: parsed, Set: true}
		}
	default:
		*b = FlexBool{}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (b FlexBool) MarshalJSON() ([]byte, error) {
	if !b.Set {
		return []byte("null"), nil
	}
	if b.Raw != "" {
		return json.Marshal(b.Raw)
	}
	return json.Marshal(b.Value)
}

// String renders the flag as "true"/"false", Raw when the text was not a
// boolean, or "" when absent.
func (b FlexBool) String() string {
	if !b.Set {
		return ""
	}
	if b.Raw != "" {
		return b.Raw
	}
	return strconv.FormatBool(b.Value)
}
