package sso

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractHiddenFields returns the name/value pairs of every hidden input in
// the document. Inputs lacking a name or a value attribute are skipped; an
// empty value is kept. When a name repeats, the last occurrence wins.
func ExtractHiddenFields(document string) map[string]string {
	fields := make(map[string]string)

	doc, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return fields
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "input" {
			typ, _ := lookupAttr(n, "type")
			name, hasName := lookupAttr(n, "name")
			value, hasValue := lookupAttr(n, "value")
			if strings.EqualFold(strings.TrimSpace(typ), "hidden") && hasName && hasValue {
				fields[name] = value
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return fields
}

// lookupAttr retrieves an attribute value and whether it was present.
// The parser lowercases attribute keys, so key must be lowercase.
func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
