package editor

import (
	"strings"

	"golang.org/x/net/html"
)

// ContainerFunc decides whether n can take repeated items. display is the
// node's resolved layout mode.
type ContainerFunc func(n *html.Node, display string) bool

var (
	containerClassKeywords = []string{"grid", "flex", "container", "projects", "cards", "items", "gallery"}
	containerIDKeywords    = []string{"projects", "gallery", "portfolio", "grid", "container"}
)

// DefaultContainer is a naming heuristic, not a structural guarantee.
func DefaultContainer(n *html.Node, display string) bool {
	if strings.Contains(display, "grid") || strings.Contains(display, "flex") {
		return true
	}
	class, _ := getAttr(n, "class")
	if containsAny(strings.ToLower(class), containerClassKeywords) {
		return true
	}
	id, _ := getAttr(n, "id")
	return containsAny(strings.ToLower(id), containerIDKeywords)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func (e *Editor) isContainer(n *html.Node) bool {
	display := e.styles.Computed(e.doc, n)["display"]
	return e.container(n, display)
}
