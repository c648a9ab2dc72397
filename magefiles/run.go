// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build mage

package main

import (
	"strings"

	"github.com/magefile/mage/sh"
)

// Npi runs the NPI pipeline from source over a comma-separated ID list,
// writing the table to stdout.
func Npi(ids string) error {
	args := append([]string{"run", cmdPkg, "npi", "--out", "-"}, splitList(ids)...)
	return sh.RunV("go", args...)
}

// Aic runs the AIC pipeline from source over a semicolon-separated query
// list, writing the table to stdout.
func Aic(queries string) error {
	args := []string{"run", cmdPkg, "aic", "--out", "-"}
	for _, q := range strings.Split(queries, ";") {
		if q = strings.TrimSpace(q); q != "" {
			args = append(args, q)
		}
	}
	return sh.RunV("go", args...)
}

// Serve runs the HTTP server from source.
func Serve() error {
	return sh.RunV("go", "run", cmdPkg, "serve")
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
