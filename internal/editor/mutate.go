package editor

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SetStyle writes one inline declaration on the selected node. Property
// names may be in DOM (fontSize) or CSS (font-size) form. Values are not
// validated.
func (e *Editor) SetStyle(property, value string) error {
	if e.sel == nil {
		return ErrNoSelection
	}
	setInlineStyle(e.sel.Node, KebabCase(property), strings.TrimSpace(value))
	return e.commit()
}

// SetContent replaces the selected node's children with markup parsed in the
// node's context. Malformed markup is kept as far as the parser can.
func (e *Editor) SetContent(markup string) error {
	if e.sel == nil {
		return ErrNoSelection
	}
	n := e.sel.Node
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		return fmt.Errorf("parse content: %w", err)
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return e.commit()
}

func (e *Editor) SetAttribute(name, value string) error {
	if e.sel == nil {
		return ErrNoSelection
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fmt.Errorf("attribute name is empty")
	}
	if name == "class" {
		// keep the marker so serialize can strip it
		value = strings.TrimSpace(value + " " + SelectedClass)
	}
	setAttr(e.sel.Node, name, value)
	return e.commit()
}

func (e *Editor) RemoveAttribute(name string) error {
	if e.sel == nil {
		return ErrNoSelection
	}
	name = strings.ToLower(strings.TrimSpace(name))
	removeAttr(e.sel.Node, name)
	if name == "class" {
		addClass(e.sel.Node, SelectedClass)
	}
	return e.commit()
}

// CloneLastChild duplicates the last element child of the selected
// container. A cloned id gets a "-copy-<millis>" suffix.
func (e *Editor) CloneLastChild() error {
	if e.sel == nil {
		return ErrNoSelection
	}
	n := e.sel.Node
	if !e.isContainer(n) {
		return ErrNotContainer
	}
	children := elementChildren(n)
	if len(children) == 0 {
		return ErrEmptyContainer
	}
	clone := cloneNode(children[len(children)-1])
	if id, _ := getAttr(clone, "id"); id != "" {
		setAttr(clone, "id", fmt.Sprintf("%s-copy-%d", id, e.now().UnixMilli()))
	}
	n.AppendChild(clone)
	e.logger.Debug("cloned item", "container", e.sel.Path.String())
	return e.commit()
}

// InsertTemplate appends a catalog fragment to the selected container.
func (e *Editor) InsertTemplate(kind TemplateKind) error {
	if e.sel == nil {
		return ErrNoSelection
	}
	n := e.sel.Node
	if !e.isContainer(n) {
		return ErrNotContainer
	}
	nodes, err := html.ParseFragment(strings.NewReader(Fragment(kind)), n)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", kind, err)
	}
	if len(nodes) == 0 {
		return fmt.Errorf("template %s is empty", kind)
	}
	n.AppendChild(nodes[0])
	e.logger.Debug("inserted template", "kind", kind, "container", e.sel.Path.String())
	return e.commit()
}

// RemoveSelected detaches the selected node and selects its former parent.
// The structural html, head and body elements are never removed. Callers
// confirm with the user before calling.
func (e *Editor) RemoveSelected() error {
	if e.sel == nil {
		return ErrNoSelection
	}
	n := e.sel.Node
	switch n.DataAtom {
	case atom.Html, atom.Head, atom.Body:
		return ErrProtectedElement
	}
	parent := n.Parent
	if parent == nil {
		return ErrProtectedElement
	}
	parent.RemoveChild(n)
	e.selectNode(parent)
	return e.commit()
}
