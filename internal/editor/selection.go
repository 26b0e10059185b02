package editor

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SelectedClass marks the selected node in the live tree. It never reaches a
// snapshot.
const SelectedClass = "portfolio-element-selected"

// Selection is the read state of the selected node. Node is only valid for
// the tree it was taken from; after a document reload it is re-derived from
// Path.
type Selection struct {
	Node       *html.Node        `json:"-"`
	Tag        string            `json:"tag"`
	Path       ElementPath       `json:"path"`
	Styles     map[string]string `json:"styles"`
	Content    string            `json:"content"`
	Attributes map[string]string `json:"attributes"`
}

func (e *Editor) selectNode(n *html.Node) {
	walkElements(e.doc.HTML(), func(el *html.Node) {
		removeClass(el, SelectedClass)
	})
	addClass(n, SelectedClass)

	styles := map[string]string{}
	computed := e.styles.Computed(e.doc, n)
	for _, p := range StyleProperties {
		if v, ok := computed[p]; ok {
			styles[p] = v
		}
	}
	for k, v := range InlineStyles(n) {
		styles[k] = v
	}

	attrs := map[string]string{}
	for _, a := range n.Attr {
		if a.Key == "style" || a.Key == "class" {
			continue
		}
		attrs[a.Key] = a.Val
	}

	e.sel = &Selection{
		Node:       n,
		Tag:        n.Data,
		Path:       ComputePath(n),
		Styles:     styles,
		Content:    innerHTML(n),
		Attributes: attrs,
	}
}

// Select addresses a node by path and makes it the selection.
func (e *Editor) Select(path ElementPath) error {
	n, ok := e.doc.QueryNode(path)
	if !ok {
		return ErrNotFound
	}
	e.selectNode(n)
	return nil
}

// Click selects like a pointer click in the preview: images win over the
// element that contains them.
func (e *Editor) Click(path ElementPath) error {
	n, ok := e.doc.QueryNode(path)
	if !ok {
		return ErrNotFound
	}
	if img := imageTarget(n); img != nil {
		n = img
	}
	e.selectNode(n)
	return nil
}

func imageTarget(n *html.Node) *html.Node {
	if n.DataAtom == atom.Img {
		return n
	}
	for _, c := range elementChildren(n) {
		if c.DataAtom == atom.Img {
			return c
		}
	}
	return findFirst(n, atom.Img)
}

func (e *Editor) ClearSelection() {
	if e.sel != nil {
		removeClass(e.sel.Node, SelectedClass)
	}
	e.sel = nil
}

// Selection returns the current selection or nil.
func (e *Editor) Selection() *Selection {
	return e.sel
}
