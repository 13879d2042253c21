package linkpass

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/adrian5/wikidigest-link-count/bufpool"
	"github.com/adrian5/wikidigest-link-count/sqlpattern"
)

// CountLinks runs pass 3 (spec §4.6): it scans a `pagelinks` table dump
// and returns, for every (namespace, title) in toNamespaces, the number
// of direct and indirect (via a single redirect hop) inbound links
// originating from a page in fromNamespaces.
func CountLinks(ctx context.Context, src io.Reader, chunkSize int, pool *bufpool.Pool, redirects RedirectMap, fromNamespaces, toNamespaces []uint32, onProgress func(int)) (LinkCounter, error) {
	pattern, err := sqlpattern.Pagelinks(fromNamespaces, toNamespaces)
	if err != nil {
		return nil, fmt.Errorf("linkpass: building pagelinks pattern: %w", err)
	}

	extract := func(chunk []byte, re *regexp.Regexp, local LinkCounter) error {
		return extractPagelinks(chunk, re, redirects, local)
	}

	return run(
		ctx, src, chunkSize, pool, pattern,
		func() LinkCounter { return make(LinkCounter) },
		extract,
		func(shared, local LinkCounter) { shared.merge(local) },
		onProgress,
	)
}

func extractPagelinks(chunk []byte, re *regexp.Regexp, redirects RedirectMap, local LinkCounter) error {
	for _, m := range re.FindAllSubmatch(chunk, -1) {
		ns, err := strconv.ParseUint(string(m[1]), 10, 32)
		if err != nil {
			return fmt.Errorf("parsing pl_namespace %q: %w", m[1], err)
		}
		title := m[2]

		if target, ok := redirects.get(Namespace(ns), title); ok {
			// Link targets a known redirect: credit its resolved target,
			// not the redirect page itself. A target that is itself a
			// redirect is not chased further (single-hop, spec §3/§9).
			local.addIndirect(Namespace(ns), target)
		} else {
			local.addDirect(Namespace(ns), title)
		}
	}
	return nil
}
