package editor

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/publicsuffix"
)

// Link is an anchor in the document as the link panel lists it.
type Link struct {
	Path  ElementPath `json:"path"`
	Href  string      `json:"href"`
	Text  string      `json:"text"`
	Label string      `json:"label"`
}

// Links lists every anchor in the body with a short domain label.
func (e *Editor) Links() []Link {
	var out []Link
	walkElements(e.doc.Body(), func(n *html.Node) {
		if n.DataAtom != atom.A {
			return
		}
		href, _ := getAttr(n, "href")
		out = append(out, Link{
			Path:  ComputePath(n),
			Href:  href,
			Text:  strings.Join(strings.Fields(textContent(n)), " "),
			Label: LinkLabel(href),
		})
	})
	return out
}

// LinkLabel reduces an href to its registrable domain ("github.com") for
// display. Fragment, mailto and relative links keep a readable form.
func LinkLabel(href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "" || strings.HasPrefix(href, "#"):
		return "section"
	case strings.HasPrefix(href, "mailto:"):
		return strings.TrimPrefix(href, "mailto:")
	case strings.HasPrefix(href, "/"):
		return href
	}
	candidate := href
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Hostname() == "" {
		return href
	}
	host := parsed.Hostname()
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}
