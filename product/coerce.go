package product

import (
	"strings"

	"github.com/hazyhaar/dealscout/extract"
	"github.com/hazyhaar/dealscout/rank"
	"github.com/hazyhaar/dealscout/source"
)

// Coerce turns raw candidates into canonical products. Per candidate, in
// order: drop empty hrefs, resolve to an absolute URL, drop URLs already
// seen in this run, drop non-product paths, drop empty names, drop names
// sharing no token with the query, drop non-positive parsed prices. Stops at
// maxItems; candidates keep first-seen DOM order, so the cap favors early
// page position over score.
func Coerce(raw []extract.RawCandidate, src *source.Source, query string, maxItems int) []Product {
	var products []Product
	seen := make(map[string]struct{})
	tokens := rank.QueryTokens(query)

	for _, item := range raw {
		href := strings.TrimSpace(item.Href)
		if href == "" {
			continue
		}

		fullURL := ResolveURL(href, src.BaseURL)
		if _, ok := seen[fullURL]; ok {
			continue
		}
		seen[fullURL] = struct{}{}

		if !src.MatchesProduct(fullURL) {
			continue
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		if !rank.IsRelevantName(name, tokens) {
			continue
		}

		var price *float64
		if priceText := strings.TrimSpace(item.PriceText); priceText != "" {
			if v, ok := ParsePrice(priceText); ok {
				price = &v
			}
		}
		if price != nil && *price <= 0 {
			continue
		}

		var imageURL *string
		if img := strings.TrimSpace(item.ImageURL); img != "" {
			imageURL = &img
		}

		products = append(products, Product{
			Name:     name,
			Price:    price,
			URL:      fullURL,
			Source:   src.Name,
			ImageURL: imageURL,
		})
		if len(products) >= maxItems {
			break
		}
	}

	return products
}
