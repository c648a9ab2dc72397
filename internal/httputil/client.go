// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil builds the HTTP client shared by the registry client
// and the geocoding providers.
package httputil

import (
	"fmt"
	"io"
	"net/http"
	stdhttputil "net/http/httputil"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/npi-locator/pkg/types"
)

// NewClient returns a client with cfg's timeout that stamps cfg's
// User-Agent on requests lacking one. When trace is non-nil every exchange
// is dumped to it.
func NewClient(cfg types.HTTPConfig, trace io.Writer) *http.Client {
	var rt http.RoundTripper = http.DefaultTransport
	if trace != nil {
		rt = &TraceRoundTripper{Transport: rt, Writer: trace}
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = types.DefaultUserAgent
	}
	rt = &HeaderRoundTripper{
		Transport: rt,
		Headers:   map[string]string{"User-Agent": ua},
	}

	return &http.Client{Timeout: cfg.Timeout, Transport: rt}
}

// HeaderRoundTripper sets default headers. Headers already present on
// the request are left alone.
type HeaderRoundTripper struct {
	Transport http.RoundTripper
	Headers   map[string]string
}

// RoundTrip implements http.RoundTripper.
func (t *HeaderRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	var missing []string
	for k := range t.Headers {
		if req.Header.Get(k) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		// A RoundTripper must not modify the caller's request.
		req = req.Clone(req.Context())
		for _, k := range missing {
			req.Header.Set(k, t.Headers[k])
		}
	}
	return transport(t.Transport).RoundTrip(req)
}

// TraceRoundTripper dumps requests and response headers to Writer. API
// keys in query strings are masked.
type TraceRoundTripper struct {
	Transport http.RoundTripper
	Writer    io.Writer
	DumpBody  bool
}

// RoundTrip implements http.RoundTripper.
func (t *TraceRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	next := transport(t.Transport)
	if t.Writer == nil {
		return next.RoundTrip(req)
	}

	dump, err := stdhttputil.DumpRequestOut(req, true)
	if err != nil {
		return nil, fmt.Errorf("tracing HTTP request: %w", err)
	}
	t.write('>', dump)

	start := time.Now()
	resp, err := next.RoundTrip(req)
	if err != nil {
		fmt.Fprintf(t.Writer, "< ERROR: %v\n", err)
		return nil, err
	}

	dump, err = stdhttputil.DumpResponse(resp, t.DumpBody)
	if err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("tracing HTTP response: %w", err)
	}
	fmt.Fprintf(t.Writer, "< RESPONSE: [%v]\n", time.Since(start))
	t.write('<', dump)
	return resp, nil
}

var apiKeyParam = regexp.MustCompile(`([?&]key=)[^&\s]+`)

const maxTraceLine = 512

func (t *TraceRoundTripper) write(prefix rune, dump []byte) {
	var b strings.Builder
	for _, line := range strings.Split(string(dump), "\n") {
		line = apiKeyParam.ReplaceAllString(strings.TrimRight(line, "\r"), "${1}REDACTED")
		if len(line) > maxTraceLine {
			line = line[:maxTraceLine] + "…"
		}
		fmt.Fprintf(&b, "%c %s\n", prefix, line)
	}
	io.WriteString(t.Writer, b.String())
}

func transport(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		return http.DefaultTransport
	}
	return rt
}
