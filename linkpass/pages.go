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

// BuildPageDir runs pass 1 (spec §4.4): it scans a `page` table dump and
// returns a directory of (namespace, id) -> title for pages that are
// themselves redirects (page_is_redirect=1) in one of toNamespaces.
func BuildPageDir(ctx context.Context, src io.Reader, chunkSize int, pool *bufpool.Pool, toNamespaces []uint32, onProgress func(int)) (PageDir, error) {
	pattern, err := sqlpattern.Page(toNamespaces)
	if err != nil {
		return nil, fmt.Errorf("linkpass: building page pattern: %w", err)
	}

	return run(
		ctx, src, chunkSize, pool, pattern,
		func() PageDir { return make(PageDir) },
		extractPages,
		mergePageDir,
		onProgress,
	)
}

func extractPages(chunk []byte, re *regexp.Regexp, local PageDir) error {
	for _, m := range re.FindAllSubmatch(chunk, -1) {
		id, err := strconv.ParseUint(string(m[1]), 10, 32)
		if err != nil {
			return fmt.Errorf("parsing page_id %q: %w", m[1], err)
		}
		ns, err := strconv.ParseUint(string(m[2]), 10, 32)
		if err != nil {
			return fmt.Errorf("parsing page_namespace %q: %w", m[2], err)
		}
		local[pageKey{NS: Namespace(ns), ID: PageID(id)}] = string(m[3])
	}
	return nil
}

func mergePageDir(shared, local PageDir) {
	for k, v := range local {
		shared[k] = v
	}
}
