package product

import "testing"

func fp(v float64) *float64 { return &v }

func names(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestNormalizeSort(t *testing.T) {
	if got := NormalizeSort("price_low"); got != SortPriceLow {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeSort("cheapest"); got != SortRelevance {
		t.Fatalf("invalid mode should fall back to relevance, got %q", got)
	}
	if got := NormalizeSort(""); got != SortRelevance {
		t.Fatalf("empty mode should fall back to relevance, got %q", got)
	}
}

func TestSort_Relevance(t *testing.T) {
	products := []Product{
		{Name: "Light Switch Wall Plate", Price: fp(3.99), URL: "https://a.com/3"},
		{Name: "Nintendo Switch Lite Carrying Case", Price: fp(19.99), URL: "https://a.com/2"},
		{Name: "Nintendo Switch Lite Console Turquoise", Price: fp(199.99), URL: "https://a.com/1"},
	}
	got := Sort(products, "nintendo switch lite", SortRelevance)
	want := []string{
		"Nintendo Switch Lite Console Turquoise",
		"Nintendo Switch Lite Carrying Case",
		"Light Switch Wall Plate",
	}
	for i, name := range names(got) {
		if name != want[i] {
			t.Fatalf("position %d: got %q, want %q (full order %v)", i, name, want[i], names(got))
		}
	}
}

func TestSort_PriceLow(t *testing.T) {
	products := []Product{
		{Name: "B", Price: fp(20), URL: "https://a.com/b"},
		{Name: "C", Price: nil, URL: "https://a.com/c"},
		{Name: "A", Price: fp(5), URL: "https://a.com/a"},
	}
	got := Sort(products, "", SortPriceLow)
	if got[0].Name != "A" || got[1].Name != "B" || got[2].Name != "C" {
		t.Fatalf("unexpected order: %v", names(got))
	}
}

func TestSort_PriceHigh(t *testing.T) {
	products := []Product{
		{Name: "A", Price: fp(5), URL: "https://a.com/a"},
		{Name: "C", Price: nil, URL: "https://a.com/c"},
		{Name: "B", Price: fp(20), URL: "https://a.com/b"},
	}
	got := Sort(products, "", SortPriceHigh)
	if got[0].Name != "B" || got[1].Name != "A" || got[2].Name != "C" {
		t.Fatalf("unexpected order: %v", names(got))
	}
}

func TestSort_EndingSoon(t *testing.T) {
	products := []Product{
		{Name: "NoEnd", URL: "https://a.com/n"},
		{Name: "Later", AuctionEnd: fp(2000), URL: "https://a.com/l"},
		{Name: "Sooner", AuctionEnd: fp(1000), URL: "https://a.com/s"},
	}
	got := Sort(products, "", SortEndingSoon)
	if got[0].Name != "Sooner" || got[1].Name != "Later" || got[2].Name != "NoEnd" {
		t.Fatalf("unexpected order: %v", names(got))
	}
}

func TestSort_URLTieBreakIsDeterministic(t *testing.T) {
	products := []Product{
		{Name: "Widget", Price: fp(10), URL: "https://a.com/z"},
		{Name: "Widget", Price: fp(10), URL: "https://a.com/a"},
	}
	for i := 0; i < 5; i++ {
		got := Sort(products, "widget", SortRelevance)
		if got[0].URL != "https://a.com/a" {
			t.Fatalf("run %d: tie should break on URL, got %v", i, got[0].URL)
		}
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	products := []Product{
		{Name: "B", Price: fp(20), URL: "https://a.com/b"},
		{Name: "A", Price: fp(5), URL: "https://a.com/a"},
	}
	_ = Sort(products, "", SortPriceLow)
	if products[0].Name != "B" {
		t.Fatal("Sort mutated its input")
	}
}
