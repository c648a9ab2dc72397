// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry looks up healthcare providers in the NPPES NPI registry.
//
// Lookup never returns an error: a missing record or a failed call comes back
// as a Result whose Outcome says what happened, so a batch can keep going and
// still show the failure next to the identifier that caused it.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/npi-locator/pkg/types"
)

// Status strings carried by Results and by the flattened Status column.
const (
	StatusFound    = "Found"
	StatusNotFound = "Not Found"
)

// placeholder is replaced by the identifier in the lookup URL template.
const placeholder = "{}"

// Outcome classifies a lookup.
type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeNotFound
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrMalformedResponse reports a registry response body that could not be decoded.
var ErrMalformedResponse = errors.New("invalid response format")

// ErrRejectedQuery reports a query the registry refused to run, such as a
// search without any usable criteria.
var ErrRejectedQuery = errors.New("registry rejected query")

// TransportError wraps a failed HTTP exchange with the registry.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("registry returned HTTP %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Result is the outcome of a single Lookup.
type Result struct {
	// Query is the identifier exactly as the caller supplied it.
	Query string

	Outcome Outcome

	// Status is "Found", "Not Found", or "Error: <detail>".
	Status string

	// Record is the first registry result. Zero unless Outcome is OutcomeFound.
	Record Record

	// Err is the typed cause when Outcome is OutcomeError.
	Err error
}

// Client talks to the registry API.
type Client struct {
	HTTP *http.Client
	cfg  types.RegistryConfig
}

// NewClient returns a Client using httpClient for every request.
func NewClient(httpClient *http.Client, cfg types.RegistryConfig) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{HTTP: httpClient, cfg: cfg}
}

// response is the registry's JSON envelope.
type response struct {
	ResultCount int      `json:"result_count"`
	Results     []Record `json:"results"`
	Errors      []struct {
		Description string     `json:"description"`
		Field       string     `json:"field"`
		Number      FlexString `json:"number"`
	} `json:"Errors"`
}

// LookupURL returns the request URL for id. The identifier is substituted
// into the template unmodified.
func (c *Client) LookupURL(id string) string {
	return strings.ReplaceAll(c.cfg.LookupURL, placeholder, id)
}

// Lookup fetches the record for id. It makes exactly one request and does
// not retry. A registry validation error (for example a non-numeric id)
// carries no results and therefore comes back as not found.
func (c *Client) Lookup(ctx context.Context, id string) Result {
	resp, err := c.get(ctx, c.LookupURL(id))
	if err != nil {
		return errorResult(id, err)
	}
	if resp.ResultCount > 0 && len(resp.Results) > 0 {
		return Result{Query: id, Outcome: OutcomeFound, Status: StatusFound, Record: resp.Results[0]}
	}
	return Result{Query: id, Outcome: OutcomeNotFound, Status: StatusNotFound}
}

func errorResult(id string, err error) Result {
	status := "Error: " + err.Error()
	if errors.Is(err, ErrMalformedResponse) {
		status = "Error: Invalid response format"
	}
	return Result{Query: id, Outcome: OutcomeError, Status: status, Err: err}
}

// get performs one GET and decodes the envelope.
func (c *Client) get(ctx context.Context, reqURL string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%d %s for url: %s", resp.StatusCode, http.StatusText(resp.StatusCode), reqURL),
		}
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &r, nil
}
