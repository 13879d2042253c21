package report

import (
	"fmt"
	"io"
	"strings"
)

// titleCleaner rewrites MediaWiki's underscore-for-space title encoding
// at output time only; stored keys keep their underscores so that titles
// compare byte-wise across all three passes (spec §3).
var titleCleaner = strings.NewReplacer("_", " ")

// Format identifies one of the output layouts of spec §6.
type Format string

const (
	FormatText     Format = "text"
	FormatWiki     Format = "wiki"
	FormatMarkdown Format = "markdown"
)

// Extension returns the file extension conventionally used for format.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	default:
		return ".txt"
	}
}

// ParseFormat validates a user-supplied format flag.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatWiki, FormatMarkdown:
		return Format(s), nil
	default:
		return "", fmt.Errorf("report: unknown export format %q (want text, wiki or markdown)", s)
	}
}

// Write renders entries to w in the given format.
func Write(w io.Writer, entries []Entry, format Format) error {
	switch format {
	case FormatText:
		return writePlain(w, entries)
	case FormatWiki:
		return writeWiki(w, entries)
	case FormatMarkdown:
		return writeMarkdown(w, entries)
	default:
		return fmt.Errorf("report: unknown export format %q", format)
	}
}

func writePlain(w io.Writer, entries []Entry) error {
	if _, err := fmt.Fprint(w, "page title [namespace]  →  links-total (direct + indirect)\n\n"); err != nil {
		return err
	}
	for _, e := range entries {
		title := titleCleaner.Replace(e.Title)
		if _, err := fmt.Fprintf(w, "%s [%d]  →  %d (%d + %d)\n",
			title, e.Namespace, e.Count.Total(), e.Count.Direct, e.Count.Indirect); err != nil {
			return err
		}
	}
	return nil
}

func writeWiki(w io.Writer, entries []Entry) error {
	if _, err := fmt.Fprint(w, "{|class=\"wikitable sortable\"\n! Page !! Ns !! Links total !! Direct !! via redirect\n|-\n"); err != nil {
		return err
	}
	for _, e := range entries {
		title := titleCleaner.Replace(e.Title)
		if _, err := fmt.Fprintf(w, "| [[%s]] || %d || %d || %d || %d\n|-\n",
			title, e.Namespace, e.Count.Total(), e.Count.Direct, e.Count.Indirect); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "|}\n")
	return err
}

func writeMarkdown(w io.Writer, entries []Entry) error {
	if _, err := fmt.Fprint(w, "Page | Ns | Links total | Direct | via redirect\n:--- | :---: | ---: | ---: | ---:\n"); err != nil {
		return err
	}
	for _, e := range entries {
		title := titleCleaner.Replace(e.Title)
		if _, err := fmt.Fprintf(w, "%s | %d | %d | %d | %d\n",
			title, e.Namespace, e.Count.Total(), e.Count.Direct, e.Count.Indirect); err != nil {
			return err
		}
	}
	return nil
}
