// FitPrint - photo print layout on the command line
//
// Packs photo orders (CSV, Excel, YAML, DXF or image files) onto paper
// pages and writes print-ready PDFs, proofs, labels, DXF cut lines and
// Excel reports.
//
// Build:
//   go build -o fitprint ./cmd/fitprint
//
// Examples:
//   fitprint pack order.csv --paper a4 --spacing 3 --pdf prints.pdf
//   fitprint compare order.xlsx --paper letter
//   fitprint validate order.yaml --margin 5

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
