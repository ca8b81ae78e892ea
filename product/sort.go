package product

import (
	"sort"

	"github.com/hazyhaar/dealscout/rank"
)

// Sort modes accepted by the search endpoints.
const (
	SortRelevance  = "relevance"
	SortPriceLow   = "price_low"
	SortPriceHigh  = "price_high"
	SortEndingSoon = "ending_soon"
)

// NormalizeSort returns sortBy when it names a known mode, else relevance.
func NormalizeSort(sortBy string) string {
	switch sortBy {
	case SortRelevance, SortPriceLow, SortPriceHigh, SortEndingSoon:
		return sortBy
	}
	return SortRelevance
}

// Sort returns a new slice ordered for the given mode. Products without a
// price (or auction end, for ending_soon) sort last in the price modes. The
// URL is the final tie-break in every mode so the order is reproducible.
func Sort(products []Product, query, sortBy string) []Product {
	out := make([]Product, len(products))
	copy(out, products)

	switch sortBy {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return priceLess(out[i], out[j], false)
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return priceLess(out[i], out[j], true)
		})
	case SortEndingSoon:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if (a.AuctionEnd == nil) != (b.AuctionEnd == nil) {
				return a.AuctionEnd != nil
			}
			if a.AuctionEnd != nil && *a.AuctionEnd != *b.AuctionEnd {
				return *a.AuctionEnd < *b.AuctionEnd
			}
			return a.URL < b.URL
		})
	default:
		sortByRelevance(out, query)
	}
	return out
}

func priceLess(a, b Product, highFirst bool) bool {
	if (a.Price == nil) != (b.Price == nil) {
		return a.Price != nil
	}
	if a.Price != nil && *a.Price != *b.Price {
		if highFirst {
			return *a.Price > *b.Price
		}
		return *a.Price < *b.Price
	}
	return a.URL < b.URL
}

func sortByRelevance(products []Product, query string) {
	tokens := rank.QueryTokens(query)
	keys := make([]rank.Key, len(products))
	for i, p := range products {
		keys[i] = rank.Score(p.Name, query, tokens)
	}
	indexes := make([]int, len(products))
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(x, y int) bool {
		i, j := indexes[x], indexes[y]
		if keys[i] != keys[j] {
			return keys[i].Less(keys[j])
		}
		// Cheapest priced item first, unpriced items last.
		a, b := products[i], products[j]
		if (a.Price == nil) != (b.Price == nil) {
			return a.Price != nil
		}
		if a.Price != nil && *a.Price != *b.Price {
			return *a.Price < *b.Price
		}
		return a.URL < b.URL
	})

	sorted := make([]Product, len(products))
	for pos, idx := range indexes {
		sorted[pos] = products[idx]
	}
	copy(products, sorted)
}
