package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

// Small traversal helpers over the x/net/html node tree. The news sites'
// markup is matched loosely (substring class checks), the way their layouts
// drift in practice.

func parseHTML(content string) (*html.Node, error) {
	return html.Parse(strings.NewReader(content))
}

// walk visits every element node in depth-first order until visit returns
// false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if n.Type == html.ElementNode {
		if !visit(n) {
			return false
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// findAll collects element nodes matching pred.
func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var nodes []*html.Node
	walk(n, func(el *html.Node) bool {
		if pred(el) {
			nodes = append(nodes, el)
		}
		return true
	})
	return nodes
}

// findFirst returns the first element node matching pred, or nil.
func findFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(el *html.Node) bool {
		if pred(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// classContains reports whether any class token contains the substring.
func classContains(n *html.Node, substr string) bool {
	return strings.Contains(strings.ToLower(attr(n, "class")), strings.ToLower(substr))
}

// hasClass reports whether the node carries the exact class token.
func hasClass(n *html.Node, class string) bool {
	for _, token := range strings.Fields(attr(n, "class")) {
		if token == class {
			return true
		}
	}
	return false
}

func isTag(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

// nodeText returns the concatenated, trimmed visible text of a node,
// skipping script and style subtrees.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(el *html.Node) {
		if el.Type == html.ElementNode && (el.Data == "script" || el.Data == "style") {
			return
		}
		if el.Type == html.TextNode {
			sb.WriteString(el.Data)
		}
		for c := el.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// paragraphTexts returns the non-empty text of every <p> under n.
func paragraphTexts(n *html.Node) []string {
	var parts []string
	for _, p := range findAll(n, func(el *html.Node) bool { return isTag(el, "p") }) {
		if text := nodeText(p); text != "" {
			parts = append(parts, text)
		}
	}
	return parts
}
