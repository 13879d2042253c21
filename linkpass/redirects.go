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

// BuildRedirectMap runs pass 2 (spec §4.5): it scans a `redirect` table
// dump and returns a map of (namespace, source title) -> target title for
// internal redirects whose source page is present in pages. Redirects
// whose (namespace, id) is not found in pages are silently skipped: the
// upstream dump may reference pages that pass 1 filtered out.
func BuildRedirectMap(ctx context.Context, src io.Reader, chunkSize int, pool *bufpool.Pool, pages PageDir, toNamespaces []uint32, onProgress func(int)) (RedirectMap, error) {
	pattern, err := sqlpattern.Redirect(toNamespaces)
	if err != nil {
		return nil, fmt.Errorf("linkpass: building redirect pattern: %w", err)
	}

	extract := func(chunk []byte, re *regexp.Regexp, local RedirectMap) error {
		return extractRedirects(chunk, re, pages, local)
	}

	return run(
		ctx, src, chunkSize, pool, pattern,
		func() RedirectMap { return make(RedirectMap) },
		extract,
		mergeRedirectMap,
		onProgress,
	)
}

func extractRedirects(chunk []byte, re *regexp.Regexp, pages PageDir, local RedirectMap) error {
	for _, m := range re.FindAllSubmatch(chunk, -1) {
		sourceID, err := strconv.ParseUint(string(m[1]), 10, 32)
		if err != nil {
			return fmt.Errorf("parsing rd_from %q: %w", m[1], err)
		}
		ns, err := strconv.ParseUint(string(m[2]), 10, 32)
		if err != nil {
			return fmt.Errorf("parsing rd_namespace %q: %w", m[2], err)
		}

		sourceTitle, ok := pages[pageKey{NS: Namespace(ns), ID: PageID(sourceID)}]
		if !ok {
			continue // unresolved source: not itself a recorded redirect page
		}

		local.put(Namespace(ns), sourceTitle, string(m[3]))
	}
	return nil
}

func mergeRedirectMap(shared, local RedirectMap) {
	for ns, inner := range local {
		dst, ok := shared[ns]
		if !ok {
			dst = make(map[PageTitle]PageTitle, len(inner))
			shared[ns] = dst
		}
		for title, target := range inner {
			dst[title] = target
		}
	}
}
