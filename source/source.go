// Package source defines the catalog of retail sites a search fans out to.
// Each Source is static configuration: where to search, how long to let the
// page settle, and which URL paths count as real product pages. The catalog
// is built once at startup and read-only afterwards.
package source

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Source configures one retail site.
type Source struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`

	// SearchURL is the search page template; {query} is replaced with the
	// URL-escaped query.
	SearchURL string `yaml:"search_url"`

	// WaitFor is an optional selector the page should render before
	// extraction. A wait timeout is tolerated, not fatal.
	WaitFor string `yaml:"wait_for_selector"`

	// SettleMS is the post-load delay before extraction; 0 means the
	// engine default.
	SettleMS int `yaml:"settle_ms"`

	// ProductPathPatterns identify real product URLs. Empty accepts any URL.
	// ExcludePathPatterns veto URLs that would otherwise match (search
	// listing pages living under the same prefix as product pages).
	ProductPathPatterns []string `yaml:"product_path_patterns"`
	ExcludePathPatterns []string `yaml:"exclude_path_patterns"`

	// BuyItNowParams is appended to the search URL when auction listings
	// are excluded, for sites that support bid-vs-buy-now URL filtering.
	BuyItNowParams string `yaml:"buy_it_now_params"`

	// Static marks sites whose search results render server-side: they are
	// fetched with a plain HTTP GET instead of a browser page.
	Static bool `yaml:"static"`

	patterns []*regexp.Regexp
	excludes []*regexp.Regexp
}

// Compile builds the product-path matchers. Sources constructed by hand
// (rather than via Defaults or LoadFile) must be compiled before use.
func (s *Source) Compile() error {
	for _, p := range s.ProductPathPatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return fmt.Errorf("source %s: pattern %q: %w", s.ID, p, err)
		}
		s.patterns = append(s.patterns, re)
	}
	for _, p := range s.ExcludePathPatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return fmt.Errorf("source %s: exclude pattern %q: %w", s.ID, p, err)
		}
		s.excludes = append(s.excludes, re)
	}
	return nil
}

// MatchesProduct reports whether a URL looks like a product page for this
// source. No configured patterns means every URL passes.
func (s *Source) MatchesProduct(u string) bool {
	for _, re := range s.excludes {
		if re.MatchString(u) {
			return false
		}
	}
	if len(s.patterns) == 0 {
		return true
	}
	for _, re := range s.patterns {
		if re.MatchString(u) {
			return true
		}
	}
	return false
}

// SearchFor builds the search page URL for a query. When auctions are
// excluded and the source supports it, the buy-it-now filter is appended.
func (s *Source) SearchFor(query string, includeAuctions bool) string {
	u := strings.ReplaceAll(s.SearchURL, "{query}", url.QueryEscape(query))
	if !includeAuctions && s.BuyItNowParams != "" {
		u += s.BuyItNowParams
	}
	return u
}

// Settle returns the post-load delay, falling back to def when unset.
func (s *Source) Settle(def time.Duration) time.Duration {
	if s.SettleMS > 0 {
		return time.Duration(s.SettleMS) * time.Millisecond
	}
	return def
}
