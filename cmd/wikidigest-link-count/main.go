// Command wikidigest-link-count counts inbound links to a set of
// MediaWiki namespaces by streaming three SQL table dumps (page,
// redirect, pagelinks) without ever loading a dump fully into memory.
package main

import (
	"context"
	"log"
	"os"
)

func main() {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		logger.Fatal(err)
	}

	outPath := outputPath(cfg.outputFile, cfg.format)
	out, err := os.Create(outPath)
	if err != nil {
		logger.Fatalf("creating output file %s: %v", outPath, err)
	}
	defer out.Close()

	if err := run(context.Background(), cfg, out, logger); err != nil {
		logger.Fatal(err)
	}

	logger.Printf("wrote results to %s", outPath)
}
