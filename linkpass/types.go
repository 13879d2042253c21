// Package linkpass implements the three streaming passes over MediaWiki
// SQL dumps (page, redirect, pagelinks) and the generic pass executor
// that drives them.
package linkpass

// Namespace is a MediaWiki page namespace tag (articles, talk, templates, ...).
type Namespace = uint32

// PageID uniquely identifies a page within a namespace.
type PageID = uint32

// PageTitle is the raw (escape-not-unwrapped) title text captured from a
// SQL string literal.
type PageTitle = string

type pageKey struct {
	NS Namespace
	ID PageID
}

// PageDir maps (namespace, id) to title. It only ever holds pages that
// are themselves redirects (spec §4.4's page_is_redirect=1 anchor), since
// those are the only rows the redirect table's rd_from/rd_namespace
// columns can reference.
type PageDir map[pageKey]PageTitle

// RedirectMap maps (namespace, source title) to the redirect's resolved
// target title. It is partitioned by namespace first so that a lookup of
// the form m[ns][string(titleBytes)] can use the compiler's no-copy
// string-from-bytes optimization for the inner map index (spec §9's
// "borrowed key lookup" requirement), rather than allocating a throwaway
// string for every probe of a composite-key map.
type RedirectMap map[Namespace]map[PageTitle]PageTitle

// get looks up the redirect target of (ns, title) without allocating a
// string for the probe.
func (m RedirectMap) get(ns Namespace, title []byte) (PageTitle, bool) {
	inner, ok := m[ns]
	if !ok {
		return "", false
	}
	target, ok := inner[string(title)]
	return target, ok
}

func (m RedirectMap) put(ns Namespace, source, target PageTitle) {
	inner, ok := m[ns]
	if !ok {
		inner = make(map[PageTitle]PageTitle)
		m[ns] = inner
	}
	inner[source] = target
}

// LinkCount carries the direct and indirect inbound link counts for one
// (namespace, title) key.
type LinkCount struct {
	Direct   uint32
	Indirect uint32
}

// Total returns Direct + Indirect.
func (c LinkCount) Total() uint64 {
	return uint64(c.Direct) + uint64(c.Indirect)
}

// Add accumulates other's fields into c.
func (c *LinkCount) Add(other LinkCount) {
	c.Direct += other.Direct
	c.Indirect += other.Indirect
}

// LinkCounter maps (namespace, title) to its link count, partitioned by
// namespace for the same borrowed-lookup reason as RedirectMap.
type LinkCounter map[Namespace]map[PageTitle]LinkCount

func (m LinkCounter) addDirect(ns Namespace, title []byte) {
	inner, ok := m[ns]
	if !ok {
		inner = make(map[PageTitle]LinkCount)
		m[ns] = inner
	}
	if c, ok := inner[string(title)]; ok {
		c.Direct++
		inner[string(title)] = c
		return
	}
	inner[string(title)] = LinkCount{Direct: 1}
}

func (m LinkCounter) addIndirect(ns Namespace, title PageTitle) {
	inner, ok := m[ns]
	if !ok {
		inner = make(map[PageTitle]LinkCount)
		m[ns] = inner
	}
	c := inner[title]
	c.Indirect++
	inner[title] = c
}

func (m LinkCounter) merge(other LinkCounter) {
	for ns, inner := range other {
		dst, ok := m[ns]
		if !ok {
			dst = make(map[PageTitle]LinkCount, len(inner))
			m[ns] = dst
		}
		for title, count := range inner {
			c := dst[title]
			c.Add(count)
			dst[title] = c
		}
	}
}
