package editor

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StyleProperties are the properties captured for a selection, in the order
// the editor panel shows them.
var StyleProperties = []string{
	"color",
	"background-color",
	"font-size",
	"font-weight",
	"text-align",
	"padding",
	"margin",
	"border-radius",
	"width",
	"height",
}

var initialValues = map[string]string{
	"color":            "rgb(0, 0, 0)",
	"background-color": "rgba(0, 0, 0, 0)",
	"font-size":        "16px",
	"font-weight":      "400",
	"text-align":       "start",
	"padding":          "0px",
	"margin":           "0px",
	"border-radius":    "0px",
	"width":            "auto",
	"height":           "auto",
	"display":          "inline",
}

var inheritedProperties = map[string]bool{
	"color":       true,
	"font-size":   true,
	"font-weight": true,
	"text-align":  true,
}

// StyleResolver stands in for the rendering engine's computed style.
type StyleResolver interface {
	Computed(doc DocumentService, n *html.Node) map[string]string
}

// SheetResolver cascades the document's own <style> blocks and inline
// declarations. Selectors cascadia cannot parse, dynamic pseudo-classes
// and pseudo-elements are skipped.
type SheetResolver struct{}

func (SheetResolver) Computed(doc DocumentService, n *html.Node) map[string]string {
	rules := collectRules(doc)
	cache := map[*html.Node]map[string]string{}

	var chain []*html.Node
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		chain = append(chain, cur)
	}

	custom := map[string]string{}
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range declared(rules, chain[i], cache) {
			if strings.HasPrefix(k, "--") {
				custom[k] = v
			}
		}
	}

	out := map[string]string{}
	own := declared(rules, n, cache)
	for k, v := range own {
		if !strings.HasPrefix(k, "--") {
			out[k] = resolveVars(v, custom)
		}
	}
	for prop := range inheritedProperties {
		if _, ok := out[prop]; ok {
			continue
		}
		for _, anc := range chain[1:] {
			if v, ok := declared(rules, anc, cache)[prop]; ok {
				out[prop] = resolveVars(v, custom)
				break
			}
		}
	}
	for prop, v := range initialValues {
		if _, ok := out[prop]; !ok {
			out[prop] = v
		}
	}
	return out
}

type styleRule struct {
	sel   cascadia.Sel
	decls []*css.Declaration
	order int
}

func collectRules(doc DocumentService) []styleRule {
	var rules []styleRule
	order := 0
	var sheets []*html.Node
	walkElements(doc.Head(), func(n *html.Node) {
		if n.DataAtom == atom.Style {
			sheets = append(sheets, n)
		}
	})
	walkElements(doc.Body(), func(n *html.Node) {
		if n.DataAtom == atom.Style {
			sheets = append(sheets, n)
		}
	})
	for _, s := range sheets {
		sheet, err := parser.Parse(textContent(s))
		if err != nil {
			continue
		}
		for _, r := range sheet.Rules {
			if r.Kind != css.QualifiedRule {
				continue
			}
			for _, raw := range r.Selectors {
				sel, err := cascadia.ParseWithPseudoElement(raw)
				if err != nil || sel.PseudoElement() != "" {
					continue
				}
				rules = append(rules, styleRule{sel: sel, decls: r.Declarations, order: order})
				order++
			}
		}
	}
	return rules
}

// declared returns the cascaded declarations of n: sheet rules, then inline,
// then !important sheet rules.
func declared(rules []styleRule, n *html.Node, cache map[*html.Node]map[string]string) map[string]string {
	if m, ok := cache[n]; ok {
		return m
	}
	var hits []styleRule
	for _, r := range rules {
		if r.sel.Match(n) {
			hits = append(hits, r)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i].sel.Specificity(), hits[j].sel.Specificity()
		if a != b {
			return a.Less(b)
		}
		return hits[i].order < hits[j].order
	})
	out := map[string]string{}
	for _, r := range hits {
		for _, d := range r.decls {
			if !d.Important {
				out[strings.ToLower(d.Property)] = d.Value
			}
		}
	}
	for k, v := range InlineStyles(n) {
		out[k] = v
	}
	for _, r := range hits {
		for _, d := range r.decls {
			if d.Important {
				out[strings.ToLower(d.Property)] = d.Value
			}
		}
	}
	cache[n] = out
	return out
}

var varRef = regexp.MustCompile(`var\(\s*(--[\w-]+)\s*(?:,\s*([^)]*))?\)`)

func resolveVars(v string, custom map[string]string) string {
	for i := 0; i < 4 && strings.Contains(v, "var("); i++ {
		v = varRef.ReplaceAllStringFunc(v, func(m string) string {
			parts := varRef.FindStringSubmatch(m)
			if val, ok := custom[parts[1]]; ok {
				return val
			}
			return strings.TrimSpace(parts[2])
		})
	}
	return v
}

// InlineStyles parses the style attribute of n into kebab-case properties.
func InlineStyles(n *html.Node) map[string]string {
	out := map[string]string{}
	raw, ok := getAttr(n, "style")
	if !ok || strings.TrimSpace(raw) == "" {
		return out
	}
	decls, err := parser.ParseDeclarations(raw)
	if err != nil {
		return out
	}
	for _, d := range decls {
		out[strings.ToLower(d.Property)] = d.Value
	}
	return out
}

// setInlineStyle rewrites the style attribute with property set to value.
// An empty value removes the declaration.
func setInlineStyle(n *html.Node, property, value string) {
	raw, _ := getAttr(n, "style")
	decls, err := parser.ParseDeclarations(raw)
	if err != nil {
		decls = nil
	}
	var parts []string
	for _, d := range decls {
		if strings.EqualFold(d.Property, property) {
			continue
		}
		parts = append(parts, formatDeclaration(d.Property, d.Value, d.Important))
	}
	if value != "" {
		parts = append(parts, formatDeclaration(property, value, false))
	}
	if len(parts) == 0 {
		removeAttr(n, "style")
		return
	}
	setAttr(n, "style", strings.Join(parts, " "))
}

func formatDeclaration(prop, value string, important bool) string {
	if important {
		return prop + ": " + value + " !important;"
	}
	return prop + ": " + value + ";"
}

// KebabCase converts a DOM style property name (backgroundColor) to its CSS
// form (background-color). Names already in CSS form pass through.
func KebabCase(prop string) string {
	prop = strings.TrimSpace(prop)
	if strings.HasPrefix(prop, "--") {
		return prop
	}
	var sb strings.Builder
	for i, r := range prop {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
