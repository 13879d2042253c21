package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/adrian5/wikidigest-link-count/bufpool"
	"github.com/adrian5/wikidigest-link-count/linkpass"
	"github.com/adrian5/wikidigest-link-count/progress"
	"github.com/adrian5/wikidigest-link-count/report"
)

// numPrinter renders the diagnostic counts logged between passes with
// locale thousands separators; it never touches the ranked report itself,
// whose row layout is literal per spec.
var numPrinter = message.NewPrinter(language.English)

// run executes the three-pass pipeline described by cfg and writes the
// resulting report to cfg.outputFile (already created by the caller).
func run(ctx context.Context, cfg *config, out *os.File, logger *log.Logger) error {
	workers := runtime.NumCPU()
	chunkSize := cfg.bufSizeMiB << 20
	pool := bufpool.New(workers+1, chunkSize, logger)

	pages, err := runPass(ctx, cfg.pageFile, "1/3 page     ", chunkSize, pool, func(src io.Reader, onProgress func(int)) (linkpass.PageDir, error) {
		return linkpass.BuildPageDir(ctx, src, chunkSize, pool, cfg.namespacesTo, onProgress)
	})
	if err != nil {
		return fmt.Errorf("pass 1 (page): %w", err)
	}
	logger.Print(numPrinter.Sprintf("pass 1: found %d redirect-table candidate pages", len(pages)))

	redirects, err := runPass(ctx, cfg.redirectFile, "2/3 redirect ", chunkSize, pool, func(src io.Reader, onProgress func(int)) (linkpass.RedirectMap, error) {
		return linkpass.BuildRedirectMap(ctx, src, chunkSize, pool, pages, cfg.namespacesTo, onProgress)
	})
	if err != nil {
		return fmt.Errorf("pass 2 (redirect): %w", err)
	}

	counts, err := runPass(ctx, cfg.pagelinksFile, "3/3 pagelinks", chunkSize, pool, func(src io.Reader, onProgress func(int)) (linkpass.LinkCounter, error) {
		return linkpass.CountLinks(ctx, src, chunkSize, pool, redirects, cfg.namespacesFrom, cfg.namespacesTo, onProgress)
	})
	if err != nil {
		return fmt.Errorf("pass 3 (pagelinks): %w", err)
	}

	entries := report.FilterAndSort(counts, cfg.cutoff)
	logger.Print(numPrinter.Sprintf("writing %d entries at or above cutoff %d", len(entries), cfg.cutoff))
	if err := report.Write(out, entries, cfg.format); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// runPass opens path, drives a progress bar over its raw bytes, and hands
// the (possibly gzip-wrapped) reader to pass.
func runPass[T any](ctx context.Context, path, stage string, chunkSize int, pool *bufpool.Pool, pass func(src io.Reader, onProgress func(int)) (T, error)) (T, error) {
	var zero T

	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return zero, err
	}

	bar := progress.Start(stage, info.Size())
	defer bar.Finish()

	tracked := bar.Proxy(f)

	ext := strings.ToLower(filepath.Ext(path))
	var src io.Reader = tracked
	if ext == ".gz" || ext == ".gzip" {
		gz, err := gzip.NewReader(tracked)
		if err != nil {
			return zero, fmt.Errorf("opening gzip stream %s: %w", path, err)
		}
		defer gz.Close()
		src = gz
	}

	return pass(src, nil)
}
