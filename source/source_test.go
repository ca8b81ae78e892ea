package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	sources, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	if len(sources) != 19 {
		t.Fatalf("expected 19 sources, got %d", len(sources))
	}
	seen := make(map[string]struct{})
	for _, s := range sources {
		if _, ok := seen[s.ID]; ok {
			t.Fatalf("duplicate source id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
}

func TestSearchFor(t *testing.T) {
	s := mustSource(t, "ebay")
	got := s.SearchFor("nintendo switch lite", true)
	want := "https://www.ebay.com/sch/i.html?_nkw=nintendo+switch+lite"
	if got != want {
		t.Fatalf("SearchFor: got %q, want %q", got, want)
	}
}

func TestSearchFor_BuyItNowFilter(t *testing.T) {
	s := mustSource(t, "ebay")
	got := s.SearchFor("rtx 4090", false)
	want := "https://www.ebay.com/sch/i.html?_nkw=rtx+4090&LH_BIN=1&LH_Auction=0"
	if got != want {
		t.Fatalf("SearchFor: got %q, want %q", got, want)
	}

	// Sources without buy-it-now support ignore the flag.
	amazon := mustSource(t, "amazon")
	if amazon.SearchFor("rtx 4090", false) != amazon.SearchFor("rtx 4090", true) {
		t.Fatal("amazon URL should not change with the auctions flag")
	}
}

func TestMatchesProduct(t *testing.T) {
	tests := []struct {
		id   string
		url  string
		want bool
	}{
		{"ebay", "https://www.ebay.com/itm/1234", true},
		{"ebay", "https://www.ebay.com/sch/i.html?_nkw=x", false},
		{"newegg", "https://www.newegg.com/p/N82E16819113664", true},
		{"newegg", "https://www.newegg.com/p/pl?d=cpu", false},
		{"newegg", "https://www.newegg.com/Product/Product.aspx?Item=1", true},
		{"bestbuy", "https://www.bestbuy.com/site/nintendo-switch/6364255.p", true},
		{"bestbuy", "https://www.bestbuy.com/site/searchpage.jsp?st=x", false},
		{"amazon", "https://www.amazon.com/dp/B0BCNKKZ91", true},
		{"pawnamerica", "https://www.pawnamerica.com/product/123", true}, // patterns are case-insensitive
	}
	for _, tt := range tests {
		s := mustSource(t, tt.id)
		if got := s.MatchesProduct(tt.url); got != tt.want {
			t.Errorf("%s: MatchesProduct(%q) = %v, want %v", tt.id, tt.url, got, tt.want)
		}
	}
}

func TestMatchesProduct_NoPatternsAcceptsAll(t *testing.T) {
	s := Source{ID: "x", Name: "X", BaseURL: "https://x.com", SearchURL: "https://x.com/s?q={query}"}
	if err := s.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !s.MatchesProduct("https://x.com/anything") {
		t.Fatal("patternless source should accept any URL")
	}
}

func TestSettle(t *testing.T) {
	def := 1600 * time.Millisecond
	s := Source{SettleMS: 2200}
	if got := s.Settle(def); got != 2200*time.Millisecond {
		t.Fatalf("Settle: got %v", got)
	}
	if got := (&Source{}).Settle(def); got != def {
		t.Fatalf("Settle default: got %v", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	data := `sources:
  - id: shoplocal
    name: Shop Local
    base_url: https://shop.example.com
    search_url: https://shop.example.com/search?q={query}
    settle_ms: 1200
    product_path_patterns:
      - /item/
    static: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}
	s := sources[0]
	if s.ID != "shoplocal" || !s.Static {
		t.Fatalf("unexpected source: %+v", s)
	}
	if !s.MatchesProduct("https://shop.example.com/item/42") {
		t.Fatal("pattern from file should match")
	}
	if s.MatchesProduct("https://shop.example.com/about") {
		t.Fatal("non-product URL should not match")
	}
}

func TestLoadFile_RejectsIncompleteEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte("sources:\n  - id: broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for incomplete entry")
	}
}

func mustSource(t *testing.T, id string) *Source {
	t.Helper()
	sources, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	for i := range sources {
		if sources[i].ID == id {
			return &sources[i]
		}
	}
	t.Fatalf("source %q not in defaults", id)
	return nil
}
