// Package product defines the canonical listing record and the pipeline
// that builds it from raw scraped candidates: URL resolution, dedup,
// product-path filtering, price parsing, relevance filtering and per-source
// caps. Products are immutable once built and live for one request.
package product

// Product is one normalized listing from a single source. URL is absolute
// and unique within a result set; Price, when present, is strictly
// positive; Name is never empty.
type Product struct {
	Name       string   `json:"name"`
	Price      *float64 `json:"price"`
	URL        string   `json:"url"`
	Source     string   `json:"source"`
	ImageURL   *string  `json:"image_url"`
	AuctionEnd *float64 `json:"auction_end"`
}
