package usecase

import (
	"strings"

	"portfolio-customizer/internal/editor"

	"golang.org/x/net/html"
)

// StageValidationResult reports which requested sections a generated page
// lacks. A page that misses some is still usable.
type StageValidationResult struct {
	Valid   bool
	Missing []string
}

// pageSections are the parts the generation prompt asks for, each with the
// element ids, classes and tags that count as having it.
var pageSections = []struct {
	name    string
	markers []string
}{
	{"navbar", []string{"nav", "#navbar", ".navbar"}},
	{"hero", []string{"h1", "#hero", "#home", ".hero"}},
	{"about", []string{"#about", ".about"}},
	{"projects", []string{"#projects", ".projects"}},
	{"skills", []string{"#skills", ".skills"}},
	{"contact", []string{"#contact", ".contact", "a[mailto]"}},
}

// PageValidator checks a freshly generated document for the sections the
// prompt requested.
func PageValidator(doc editor.DocumentService) *StageValidationResult {
	result := &StageValidationResult{Valid: true, Missing: []string{}}
	body := doc.Body()
	if body == nil {
		result.Valid = false
		result.Missing = append(result.Missing, "body")
		return result
	}
	for _, s := range pageSections {
		if !hasAnyMarker(body, s.markers) {
			result.Valid = false
			result.Missing = append(result.Missing, s.name)
		}
	}
	return result
}

func hasAnyMarker(root *html.Node, markers []string) bool {
	found := false
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode {
			for _, m := range markers {
				if matchesMarker(n, m) {
					found = true
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

func matchesMarker(n *html.Node, m string) bool {
	switch {
	case m == "a[mailto]":
		return n.Data == "a" && strings.HasPrefix(attr(n, "href"), "mailto:")
	case strings.HasPrefix(m, "#"):
		return strings.EqualFold(attr(n, "id"), m[1:])
	case strings.HasPrefix(m, "."):
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == m[1:] {
				return true
			}
		}
		return false
	default:
		return n.Data == m
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
