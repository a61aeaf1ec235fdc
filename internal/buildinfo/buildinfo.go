// Package buildinfo exposes build metadata injected at link time.
//
// The variables are meant to be set via ldflags, e.g.:
//
//	go build -ldflags "-X github.com/hhsksonu/kpcli/internal/buildinfo.Version=v1.2.0 \
//	  -X github.com/hhsksonu/kpcli/internal/buildinfo.Date=2026-08-28 \
//	  -X github.com/hhsksonu/kpcli/internal/buildinfo.Commit=abc1234"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// Print writes the build banner to w.
func Print(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
