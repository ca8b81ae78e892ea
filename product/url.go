package product

import "strings"

// ResolveURL makes an href absolute against a source's base URL. Absolute
// URLs pass through untouched; root-relative paths are prefixed with the
// base; anything else is joined with a single slash. No percent-decoding or
// query canonicalization happens here.
func ResolveURL(href, baseURL string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return baseURL + href
	}
	return baseURL + "/" + href
}
