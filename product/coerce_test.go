package product

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/hazyhaar/dealscout/extract"
	"github.com/hazyhaar/dealscout/source"
)

func testSource(t *testing.T, patterns ...string) *source.Source {
	t.Helper()
	src := &source.Source{
		ID:                  "shopexample",
		Name:                "Shop Example",
		BaseURL:             "https://shop.example.com",
		SearchURL:           "https://shop.example.com/search?q={query}",
		ProductPathPatterns: patterns,
	}
	if err := src.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}
	return src
}

func TestCoerce_Pipeline(t *testing.T) {
	src := testSource(t, "/item/")
	raw := []extract.RawCandidate{
		{Href: "", Name: "No Link", PriceText: "$5"},
		{Href: "/item/1", Name: "Nintendo Switch Lite", PriceText: "$199.99", ImageURL: "/img/1.jpg"},
		{Href: "/item/1", Name: "Nintendo Switch Lite (dup)", PriceText: "$199.99"},
		{Href: "/about", Name: "Nintendo About Page", PriceText: "$1"},
		{Href: "/item/2", Name: "", PriceText: "$10"},
		{Href: "/item/3", Name: "Garden Hose", PriceText: "$15"},
		{Href: "/item/4", Name: "Nintendo Switch Dock", PriceText: "$0.00"},
		{Href: "/item/5", Name: "Switch Carrying Case", PriceText: "no price listed"},
	}

	got := Coerce(raw, src, "nintendo switch", 35)
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d: %+v", len(got), got)
	}

	first := got[0]
	if first.URL != "https://shop.example.com/item/1" {
		t.Fatalf("unexpected URL: %q", first.URL)
	}
	if first.Price == nil || *first.Price != 199.99 {
		t.Fatalf("unexpected price: %v", first.Price)
	}
	if first.Source != "Shop Example" {
		t.Fatalf("unexpected source name: %q", first.Source)
	}
	if first.ImageURL == nil || *first.ImageURL != "/img/1.jpg" {
		t.Fatalf("unexpected image: %v", first.ImageURL)
	}

	// Unparsable price text becomes a product with no price.
	second := got[1]
	if second.Name != "Switch Carrying Case" || second.Price != nil {
		t.Fatalf("unexpected second product: %+v", second)
	}
}

func TestCoerce_Idempotent(t *testing.T) {
	src := testSource(t, "/item/")
	raw := []extract.RawCandidate{
		{Href: "/item/1", Name: "Nintendo Switch", PriceText: "$199.99"},
		{Href: "/item/2", Name: "Nintendo Switch OLED", PriceText: "$349.99"},
	}
	first := Coerce(raw, src, "nintendo switch", 35)
	second := Coerce(raw, src, "nintendo switch", 35)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("pipeline runs differ:\n%+v\n%+v", first, second)
	}
}

func TestCoerce_CapKeepsFirstSeenOrder(t *testing.T) {
	src := testSource(t, "/item/")
	var raw []extract.RawCandidate
	for i := 0; i < 50; i++ {
		raw = append(raw, extract.RawCandidate{
			Href:      fmt.Sprintf("/item/%d", i),
			Name:      fmt.Sprintf("Nintendo Switch Game %d", i),
			PriceText: "$59.99",
		})
	}

	got := Coerce(raw, src, "nintendo switch", 10)
	if len(got) != 10 {
		t.Fatalf("expected 10 products, got %d", len(got))
	}
	for i, p := range got {
		want := fmt.Sprintf("https://shop.example.com/item/%d", i)
		if p.URL != want {
			t.Fatalf("position %d: got %q, want %q", i, p.URL, want)
		}
	}
}

func TestCoerce_EmptyQueryAdmitsEverything(t *testing.T) {
	src := testSource(t, "/item/")
	raw := []extract.RawCandidate{
		{Href: "/item/1", Name: "Completely Unrelated Thing", PriceText: "$9.99"},
	}
	if got := Coerce(raw, src, "a deal for sale", 35); len(got) != 1 {
		t.Fatalf("stopword-only query should admit everything, got %d", len(got))
	}
}

func TestCoerce_NoPatternsAcceptsAnyPath(t *testing.T) {
	src := testSource(t)
	raw := []extract.RawCandidate{
		{Href: "/anything/at/all", Name: "Nintendo Switch", PriceText: "$199.99"},
	}
	if got := Coerce(raw, src, "nintendo switch", 35); len(got) != 1 {
		t.Fatalf("patternless source should accept any URL, got %d", len(got))
	}
}
