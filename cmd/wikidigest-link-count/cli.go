package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrian5/wikidigest-link-count/report"
)

const (
	minBufSizeMiB = 9
	maxBufSizeMiB = 1023
)

// config holds the fully parsed and validated CLI configuration (spec §6).
type config struct {
	pageFile       string
	redirectFile   string
	pagelinksFile  string
	outputFile     string
	namespacesFrom []uint32
	namespacesTo   []uint32
	bufSizeMiB     int
	cutoff         uint64
	format         report.Format
}

func parseArgs(args []string) (*config, error) {
	fs := flag.NewFlagSet("wikidigest-link-count", flag.ContinueOnError)

	pageFile := fs.String("page", "", "Path to the page-table SQL dump (…page.sql(.gz))")
	redirectFile := fs.String("redirect", "", "Path to the redirect-table SQL dump (…redirect.sql(.gz))")
	pagelinksFile := fs.String("pagelinks", "", "Path to the pagelinks-table SQL dump (…pagelinks.sql(.gz))")
	outputFile := fs.String("output", "./results", "Path to write results to")
	namespacesFrom := fs.String("from", "0", "Namespace(s) of pages from which links may originate, comma-separated")
	namespacesTo := fs.String("to", "0", "Namespace(s) of pages to which links may lead, comma-separated")
	bufSize := fs.Int("bufsize", 32, "Buffer size per worker, in MiB")
	cutoff := fs.Uint64("cutoff", 25000, "Output only pages with a link count at or above this threshold")
	format := fs.String("format", "text", "Format to export results as: text, wiki or markdown")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *pageFile == "" || *redirectFile == "" || *pagelinksFile == "" {
		return nil, fmt.Errorf("-page, -redirect and -pagelinks are all required")
	}

	if *bufSize < minBufSizeMiB || *bufSize > maxBufSizeMiB {
		return nil, fmt.Errorf("-bufsize must be between %d and %d MiB, got %d", minBufSizeMiB, maxBufSizeMiB, *bufSize)
	}

	from, err := parseNamespaceList(*namespacesFrom)
	if err != nil {
		return nil, fmt.Errorf("-from: %w", err)
	}
	to, err := parseNamespaceList(*namespacesTo)
	if err != nil {
		return nil, fmt.Errorf("-to: %w", err)
	}

	parsedFormat, err := report.ParseFormat(*format)
	if err != nil {
		return nil, fmt.Errorf("-format: %w", err)
	}

	return &config{
		pageFile:       *pageFile,
		redirectFile:   *redirectFile,
		pagelinksFile:  *pagelinksFile,
		outputFile:     *outputFile,
		namespacesFrom: from,
		namespacesTo:   to,
		bufSizeMiB:     *bufSize,
		cutoff:         *cutoff,
		format:         parsedFormat,
	}, nil
}

func parseNamespaceList(s string) ([]uint32, error) {
	parts := strings.Split(s, ",")
	namespaces := make([]uint32, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		ns, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid namespace %q: %w", p, err)
		}
		namespaces = append(namespaces, uint32(ns))
	}
	return namespaces, nil
}

// outputPath appends format's conventional extension unless the
// user-supplied path already has one (spec §6).
func outputPath(base string, format report.Format) string {
	if strings.Contains(strings.TrimPrefix(filepath.Base(base), "."), ".") {
		return base
	}
	return base + format.Extension()
}
