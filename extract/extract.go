// Package extract pulls raw product candidates out of search result pages.
// Extractors run a script against a rendered page (or walk fetched HTML for
// static sites) and return whatever name/price/link tuples the current
// markup yields. Zero candidates is a normal outcome, never an error.
package extract

import "context"

// RawCandidate is one unvalidated listing scraped from a page. Field names
// mirror the JSON the extraction scripts emit.
type RawCandidate struct {
	Href      string `json:"href"`
	Name      string `json:"name"`
	PriceText string `json:"priceText"`
	ImageURL  string `json:"imageUrl"`
}

// Page is the rendered-page capability extractors evaluate scripts against.
// The script must be a JS function expression returning a JSON-serialisable
// value; the result is decoded into out.
type Page interface {
	Eval(ctx context.Context, script string, out any) error
}

// Extractor produces raw candidates from a rendered page.
type Extractor interface {
	Extract(ctx context.Context, page Page) ([]RawCandidate, error)
}

// scriptExtractor evaluates one extraction script against the page.
type scriptExtractor struct {
	script string
}

func (e scriptExtractor) Extract(ctx context.Context, page Page) ([]RawCandidate, error) {
	var out []RawCandidate
	if err := page.Eval(ctx, e.script, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// bespoke maps source ids to site-specific extraction scripts. These sites
// either have structured grids the generic anchor walk misses, or too much
// priced noise around each link for the walk to stay precise.
var bespoke = map[string]string{
	"pawnamerica": pawnAmericaScript,
	"newegg":      neweggScript,
	"walmart":     walmartScript,
	"bestbuy":     bestBuyScript,
	"slickdeals":  slickdealsScript,
}

// ForSource returns the extractor for a source id. Sources without a bespoke
// script get the generic anchor-walk extractor.
func ForSource(id string) Extractor {
	if script, ok := bespoke[id]; ok {
		return scriptExtractor{script: script}
	}
	return scriptExtractor{script: genericScript}
}
