// Package sqlpattern builds the namespace-parameterised regular
// expressions used to extract rows from MediaWiki `page`, `redirect` and
// `pagelinks` SQL dump tuples.
package sqlpattern

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// ErrEmptyNamespaceSet is returned when a namespace alternation is built
// from zero namespaces; such a pattern would match nothing (or be an
// invalid empty alternation) and is rejected rather than silently
// compiled into something useless.
var ErrEmptyNamespaceSet = errors.New("sqlpattern: namespace set must not be empty")

// titleBody matches the body of a single-quoted MediaWiki title: any byte
// sequence that is not an unescaped quote, up to 255 characters, allowing
// the `\'` escape. It does not unescape; callers compare titles byte-wise.
const titleBody = `(?:[^']|\\')` + `{1,255}?`

// Alternation renders namespaces as a regex alternation, matching longer
// (multi-digit) numbers before shorter prefixes of themselves so that a
// leftmost-first engine does not stop at "1" when "12" was meant.
func Alternation(namespaces []uint32) (string, error) {
	if len(namespaces) == 0 {
		return "", ErrEmptyNamespaceSet
	}
	if len(namespaces) == 1 {
		return strconv.FormatUint(uint64(namespaces[0]), 10), nil
	}

	sorted := slices.Clone(namespaces)
	slices.Sort(sorted)
	slices.Reverse(sorted)

	parts := make([]string, len(sorted))
	for i, ns := range sorted {
		parts[i] = strconv.FormatUint(uint64(ns), 10)
	}
	return strings.Join(parts, "|"), nil
}

// Page compiles the `page` table row pattern (spec §4.4): captures
// page_id, page_namespace and page_title for rows whose namespace is in
// namespaces and whose page_is_redirect flag is 1.
//
// Row shape: (page_id,page_namespace,'page_title','page_restrictions',1,…
func Page(namespaces []uint32) (*regexp.Regexp, error) {
	alt, err := Alternation(namespaces)
	if err != nil {
		return nil, fmt.Errorf("building page pattern: %w", err)
	}
	pattern := fmt.Sprintf(`\((\d+),(%s),'(%s)','[a-z,:=]*?',1,`, alt, titleBody)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("building page pattern: %w", err)
	}
	return re, nil
}

// Redirect compiles the `redirect` table row pattern (spec §4.5):
// captures rd_from, rd_namespace and rd_title for internal redirects
// (empty rd_interwiki) in namespaces.
//
// Row shape: (rd_from,rd_namespace,'rd_title','','rd_fragment')
func Redirect(namespaces []uint32) (*regexp.Regexp, error) {
	alt, err := Alternation(namespaces)
	if err != nil {
		return nil, fmt.Errorf("building redirect pattern: %w", err)
	}
	pattern := fmt.Sprintf(`\((\d+),(%s),'(%s)','','%s'\)`, alt, titleBody, `(?:[^']|\\'){0,255}?`)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("building redirect pattern: %w", err)
	}
	return re, nil
}

// Pagelinks compiles the `pagelinks` table row pattern (spec §4.6):
// captures pl_namespace and pl_title for link targets in toNamespaces,
// anchored on pl_from_namespace being in fromNamespaces.
//
// Row shape: (pl_from,pl_namespace,'pl_title',pl_from_namespace)
func Pagelinks(fromNamespaces, toNamespaces []uint32) (*regexp.Regexp, error) {
	fromAlt, err := Alternation(fromNamespaces)
	if err != nil {
		return nil, fmt.Errorf("building pagelinks pattern: %w", err)
	}
	toAlt, err := Alternation(toNamespaces)
	if err != nil {
		return nil, fmt.Errorf("building pagelinks pattern: %w", err)
	}
	pattern := fmt.Sprintf(`\(\d+,(%s),'(%s)',(?:%s)\)`, toAlt, titleBody, fromAlt)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("building pagelinks pattern: %w", err)
	}
	return re, nil
}
