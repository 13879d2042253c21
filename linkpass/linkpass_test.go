package linkpass

import (
	"context"
	"strings"
	"testing"

	"github.com/adrian5/wikidigest-link-count/bufpool"
)

func newTestPool(chunkSize int) *bufpool.Pool {
	return bufpool.New(3, chunkSize, nil)
}

// scenarioA: one direct link, no redirects involved.
func TestScenarioADirectLink(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(256)

	pageDump := "(10,0,'Alpha','',0,0,0.5,'20200101000000',NULL,0,0,'wikitext',NULL),\n"
	pages, err := BuildPageDir(ctx, strings.NewReader(pageDump), 256, pool, []uint32{0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 0 {
		t.Fatalf("expected no redirect-flagged pages, got %v", pages)
	}

	redirects, err := BuildRedirectMap(ctx, strings.NewReader(""), 256, pool, pages, []uint32{0}, nil)
	if err != nil {
		t.Fatal(err)
	}

	pagelinksDump := "(99,0,'Alpha',0)\n"
	counts, err := CountLinks(ctx, strings.NewReader(pagelinksDump), 256, pool, redirects, []uint32{0}, []uint32{0}, nil)
	if err != nil {
		t.Fatal(err)
	}

	c := counts[0]["Alpha"]
	if c.Direct != 1 || c.Indirect != 0 {
		t.Fatalf("got %+v, want {Direct:1 Indirect:0}", c)
	}
}

// scenarioB: one indirect link via a redirect.
func TestScenarioBIndirectLink(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(256)

	pageDump := "(10,0,'Al','',0,0,0.5,'20200101000000',NULL,0,0,'wikitext',NULL),\n" +
		"(11,0,'Alpha','',1,0,0.5,'20200101000000',NULL,0,0,'wikitext',NULL),\n"
	pages, err := BuildPageDir(ctx, strings.NewReader(pageDump), 256, pool, []uint32{0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected exactly 1 redirect-flagged page, got %v", pages)
	}

	redirectDump := "(11,0,'Al','',''),\n"
	redirects, err := BuildRedirectMap(ctx, strings.NewReader(redirectDump), 256, pool, pages, []uint32{0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := redirects[0]["Alpha"]; got != "Al" {
		t.Fatalf("expected redirect Alpha -> Al, got %q", got)
	}

	pagelinksDump := "(99,0,'Alpha',0)\n"
	counts, err := CountLinks(ctx, strings.NewReader(pagelinksDump), 256, pool, redirects, []uint32{0}, []uint32{0}, nil)
	if err != nil {
		t.Fatal(err)
	}

	c := counts[0]["Al"]
	if c.Direct != 0 || c.Indirect != 1 {
		t.Fatalf("got %+v, want {Direct:0 Indirect:1}", c)
	}
	if _, exists := counts[0]["Alpha"]; exists {
		t.Fatal("the redirect page itself must not receive a direct credit")
	}
}

// scenarioD: identical titles in different namespaces must stay isolated.
func TestScenarioDNamespaceIsolation(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(256)

	pagelinksDump := "(1,0,'T',0)\n(2,1,'T',1)\n"
	redirects := RedirectMap{}
	counts, err := CountLinks(ctx, strings.NewReader(pagelinksDump), 256, pool, redirects, []uint32{0, 1}, []uint32{0}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(counts) != 1 {
		t.Fatalf("to-namespace set {0} should only ever produce ns-0 entries, got namespaces %v", keysOf(counts))
	}
	if counts[0]["T"].Direct != 1 {
		t.Fatalf("got %+v", counts[0]["T"])
	}
}

func keysOf(m LinkCounter) []Namespace {
	keys := make([]Namespace, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// scenarioE: result must be identical regardless of chunk size.
func TestScenarioEChunkBoundarySafety(t *testing.T) {
	ctx := context.Background()

	var b strings.Builder
	for i := 0; i < 500; i++ {
		b.WriteString("(1,0,'Target',0)\n")
	}
	dump := b.String()

	small := newTestPool(32)
	bigCounts, err := CountLinks(ctx, strings.NewReader(dump), len(dump)+16, newTestPool(len(dump)+16), RedirectMap{}, []uint32{0}, []uint32{0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	smallCounts, err := CountLinks(ctx, strings.NewReader(dump), 32, small, RedirectMap{}, []uint32{0}, []uint32{0}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if bigCounts[0]["Target"] != smallCounts[0]["Target"] {
		t.Fatalf("chunk-size-dependent result: big=%+v small=%+v", bigCounts[0]["Target"], smallCounts[0]["Target"])
	}
	if bigCounts[0]["Target"].Direct != 500 {
		t.Fatalf("got %+v, want 500 direct links", bigCounts[0]["Target"])
	}
}

func TestRedirectIgnoresUnresolvedSource(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(256)

	redirectDump := "(999,0,'Ghost','',''),\n"
	redirects, err := BuildRedirectMap(ctx, strings.NewReader(redirectDump), 256, pool, PageDir{}, []uint32{0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(redirects) != 0 {
		t.Fatalf("expected unresolved redirect source to be skipped, got %v", redirects)
	}
}

func TestRedirectRejectsExternalInterwiki(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(256)

	pages := PageDir{{NS: 0, ID: 11}: "Alpha"}
	redirectDump := "(11,0,'Al','en',''),\n"
	redirects, err := BuildRedirectMap(ctx, strings.NewReader(redirectDump), 256, pool, pages, []uint32{0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(redirects) != 0 {
		t.Fatalf("expected interwiki redirect to be rejected, got %v", redirects)
	}
}
