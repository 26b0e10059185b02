package editor

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Segment is one step of an element address: a tag plus an optional id or
// class discriminator. At most one of ID and Class is set.
type Segment struct {
	Tag   string
	ID    string
	Class string
}

func (s Segment) String() string {
	switch {
	case s.ID != "":
		return s.Tag + "#" + s.ID
	case s.Class != "":
		return s.Tag + "." + s.Class
	default:
		return s.Tag
	}
}

// ParseSegment reads "tag", "tag#id" or "tag.class". Everything after the
// first separator is the discriminator.
func ParseSegment(raw string) Segment {
	raw = strings.TrimSpace(raw)
	i := strings.IndexAny(raw, "#.")
	if i < 0 {
		return Segment{Tag: strings.ToLower(raw)}
	}
	seg := Segment{Tag: strings.ToLower(raw[:i])}
	if raw[i] == '#' {
		seg.ID = raw[i+1:]
	} else {
		seg.Class = raw[i+1:]
	}
	return seg
}

func (s Segment) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Segment) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = ParseSegment(raw)
	return nil
}

func (s Segment) matches(n *html.Node) bool {
	if n.Type != html.ElementNode || !strings.EqualFold(n.Data, s.Tag) {
		return false
	}
	switch {
	case s.ID != "":
		id, _ := getAttr(n, "id")
		return id == s.ID
	case s.Class != "":
		return hasClass(n, s.Class)
	default:
		return true
	}
}

// ElementPath addresses a node from the document's top-level content node
// (body or head) downwards.
type ElementPath []Segment

func (p ElementPath) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, " > ")
}

// ParsePath accepts the " > " joined form produced by String. Only the
// spaced separator splits, so a class like "[&>*]:p-2" survives.
func ParsePath(raw string) ElementPath {
	var p ElementPath
	for _, part := range strings.Split(raw, " > ") {
		if part = strings.TrimSpace(part); part != "" {
			p = append(p, ParseSegment(part))
		}
	}
	return p
}

// ComputePath walks from n up to, but excluding, the <html> element.
func ComputePath(n *html.Node) ElementPath {
	var p ElementPath
	for cur := n; cur != nil && cur.Type == html.ElementNode && cur.DataAtom != atom.Html; cur = cur.Parent {
		seg := Segment{Tag: strings.ToLower(cur.Data)}
		if id, _ := getAttr(cur, "id"); id != "" {
			seg.ID = id
		} else if c := firstClass(cur); c != "" {
			seg.Class = c
		}
		p = append(p, seg)
	}
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// firstClass skips the editor's own selection marker.
func firstClass(n *html.Node) string {
	for _, c := range classList(n) {
		if c != SelectedClass {
			return c
		}
	}
	return ""
}

// ResolvePath is best effort: any segment without a matching child yields
// not-found. There is no backtracking.
func ResolvePath(doc DocumentService, path ElementPath) (*html.Node, bool) {
	if len(path) == 0 {
		return nil, false
	}
	var cur *html.Node
	for _, top := range []*html.Node{doc.Body(), doc.Head()} {
		// the top-level node is matched on tag alone
		if top != nil && strings.EqualFold(top.Data, path[0].Tag) {
			cur = top
			break
		}
	}
	if cur == nil {
		return nil, false
	}
	for _, seg := range path[1:] {
		var next *html.Node
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if seg.matches(c) {
				next = c
				break
			}
		}
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
