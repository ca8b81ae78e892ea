package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var staticPricePattern = regexp.MustCompile(`\$\s*\d[\d,]*(?:\.\d{2})?`)

// Static extracts candidates from already-fetched HTML, for sources whose
// search results render server-side. It applies the same anchor-walk
// heuristic as the generic script: climb at most 7 ancestors from each link
// until the container text holds a price, then take the link text or a
// nearby image alt as the name.
func Static(body []byte) ([]RawCandidate, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("extract: parse html: %w", err)
	}

	var results []RawCandidate
	seen := make(map[string]struct{})

	for _, link := range findAll(doc, isAnchorWithHref) {
		href := attrVal(link, "href")
		if href == "" {
			continue
		}

		container := link
		containerText := ""
		for i := 0; i < 7; i++ {
			if container == nil || container.Parent == nil {
				break
			}
			containerText = strings.TrimSpace(nodeText(container))
			if staticPricePattern.MatchString(containerText) {
				break
			}
			container = container.Parent
		}
		if !staticPricePattern.MatchString(containerText) {
			continue
		}

		name := strings.TrimSpace(nodeText(link))
		if name == "" {
			if img := findFirst(link, isImageWithAlt); img != nil {
				name = strings.TrimSpace(attrVal(img, "alt"))
			} else if img := findFirst(container, isImageWithAlt); img != nil {
				name = strings.TrimSpace(attrVal(img, "alt"))
			}
		}

		imageURL := ""
		if img := findFirst(link, isImage); img != nil {
			imageURL = attrVal(img, "src")
		} else if img := findFirst(container, isImage); img != nil {
			imageURL = attrVal(img, "src")
		}

		priceText := staticPricePattern.FindString(containerText)

		key := href + "|" + name + "|" + priceText
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		results = append(results, RawCandidate{
			Href:      href,
			Name:      name,
			PriceText: priceText,
			ImageURL:  imageURL,
		})
	}

	return results, nil
}

func isAnchorWithHref(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.A && attrVal(n, "href") != ""
}

func isImage(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Img && attrVal(n, "src") != ""
}

func isImageWithAlt(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Img && attrVal(n, "alt") != ""
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// findAll walks the tree collecting every node matching pred.
func findAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// findFirst returns the first descendant (or root itself) matching pred.
func findFirst(root *html.Node, pred func(*html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	if pred(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// nodeText approximates innerText: text nodes joined with single spaces,
// script and style contents skipped.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
