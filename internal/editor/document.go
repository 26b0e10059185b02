package editor

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DocumentService owns the live tree the editor mutates. Snapshots cross the
// boundary only as full serialized strings.
type DocumentService interface {
	Load(snapshot string) error
	Serialize() (string, error)
	QueryNode(path ElementPath) (*html.Node, bool)
	HTML() *html.Node
	Head() *html.Node
	Body() *html.Node
}

// Document is the x/net/html backed DocumentService.
type Document struct {
	root *html.Node
}

var ErrEmptyDocument = errors.New("document is empty")

// NewDocument parses snapshot into a fresh tree.
func NewDocument(snapshot string) (*Document, error) {
	d := &Document{}
	if err := d.Load(snapshot); err != nil {
		return nil, err
	}
	return d, nil
}

// Load replaces the whole tree. When it returns the new tree is attached and
// queryable.
func (d *Document) Load(snapshot string) error {
	root, err := html.Parse(strings.NewReader(snapshot))
	if err != nil {
		return err
	}
	d.root = root
	return nil
}

func (d *Document) Serialize() (string, error) {
	if d.root == nil {
		return "", ErrEmptyDocument
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (d *Document) QueryNode(path ElementPath) (*html.Node, bool) {
	return ResolvePath(d, path)
}

// HTML returns the <html> element.
func (d *Document) HTML() *html.Node {
	if d.root == nil {
		return nil
	}
	return childElement(d.root, atom.Html)
}

func (d *Document) Head() *html.Node {
	return childElement(d.HTML(), atom.Head)
}

func (d *Document) Body() *html.Node {
	return childElement(d.HTML(), atom.Body)
}

// Title returns the <title> text, or the first <h1> text when no title is set.
func (d *Document) Title() string { return DocumentTitle(d) }

// DocumentTitle is the <title> text of doc, or its first <h1> text.
func DocumentTitle(doc DocumentService) string {
	if t := findFirst(doc.Head(), atom.Title); t != nil {
		if s := strings.TrimSpace(textContent(t)); s != "" {
			return s
		}
	}
	if h := findFirst(doc.Body(), atom.H1); h != nil {
		return strings.Join(strings.Fields(textContent(h)), " ")
	}
	return ""
}

func childElement(n *html.Node, a atom.Atom) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
	}
	return nil
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := findFirst(c, a); f != nil {
			return f
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// walkElements visits n and every element below it in document order.
func walkElements(n *html.Node, fn func(*html.Node)) {
	if n == nil {
		return
	}
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, fn)
	}
}

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func innerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(cloneNode(ch))
	}
	return c
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

func classList(n *html.Node) []string {
	v, _ := getAttr(n, "class")
	return strings.Fields(v)
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range classList(n) {
		if c == class {
			return true
		}
	}
	return false
}

func addClass(n *html.Node, class string) {
	if hasClass(n, class) {
		return
	}
	setAttr(n, "class", strings.TrimSpace(strings.Join(append(classList(n), class), " ")))
}

func removeClass(n *html.Node, class string) {
	if !hasClass(n, class) {
		return
	}
	var keep []string
	for _, c := range classList(n) {
		if c != class {
			keep = append(keep, c)
		}
	}
	if len(keep) == 0 {
		removeAttr(n, "class")
		return
	}
	setAttr(n, "class", strings.Join(keep, " "))
}

var (
	leadingFence  = regexp.MustCompile("^```html\\s*")
	trailingFence = regexp.MustCompile("```\\s*$")
)

// StripCodeFences removes the markdown fence a text model tends to wrap its
// HTML answer in.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = leadingFence.ReplaceAllString(s, "")
	s = strings.TrimPrefix(s, "```")
	return strings.TrimSpace(trailingFence.ReplaceAllString(s, ""))
}
