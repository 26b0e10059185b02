package editor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Theme is a named palette of semantic colors.
type Theme struct {
	Name            string `json:"name"`
	Primary         string `json:"primary"`
	Secondary       string `json:"secondary"`
	Accent          string `json:"accent"`
	Background      string `json:"background"`
	Foreground      string `json:"foreground"`
	Card            string `json:"card"`
	CardForeground  string `json:"cardForeground"`
	Border          string `json:"border"`
	Muted           string `json:"muted"`
	MutedForeground string `json:"mutedForeground"`
	IsDark          bool   `json:"isDark"`
}

var themes = []Theme{
	{"Indigo Light", "#4F46E5", "#818CF8", "#C7D2FE", "#F9FAFB", "#1F2937", "#FFFFFF", "#1F2937", "#E5E7EB", "#F3F4F6", "#6B7280", false},
	{"Violet Light", "#8B5CF6", "#A78BFA", "#DDD6FE", "#F5F3FF", "#1E1B4B", "#FFFFFF", "#1E1B4B", "#E5E7EB", "#F3F4F6", "#6B7280", false},
	{"Emerald Light", "#10B981", "#34D399", "#A7F3D0", "#ECFDF5", "#064E3B", "#FFFFFF", "#064E3B", "#D1FAE5", "#F0FDF9", "#047857", false},
	{"Amber Light", "#F59E0B", "#FBBF24", "#FDE68A", "#FFFBEB", "#78350F", "#FFFFFF", "#78350F", "#FEF3C7", "#FFFBEB", "#92400E", false},
	{"Rose Light", "#E11D48", "#FB7185", "#FDA4AF", "#FFF1F2", "#881337", "#FFFFFF", "#881337", "#FCE7F3", "#FFF1F2", "#9D174D", false},
	{"Slate Dark", "#6366F1", "#818CF8", "#C7D2FE", "#0F172A", "#E2E8F0", "#1E293B", "#E2E8F0", "#334155", "#1E293B", "#94A3B8", true},
	{"Violet Dark", "#8B5CF6", "#A78BFA", "#DDD6FE", "#1E1B4B", "#F5F3FF", "#2E1065", "#F5F3FF", "#4C1D95", "#2E1065", "#C4B5FD", true},
	{"Emerald Dark", "#10B981", "#34D399", "#A7F3D0", "#064E3B", "#ECFDF5", "#065F46", "#ECFDF5", "#047857", "#065F46", "#6EE7B7", true},
	{"Rose Dark", "#E11D48", "#FB7185", "#FDA4AF", "#881337", "#FFF1F2", "#9F1239", "#FFF1F2", "#BE123C", "#9F1239", "#FDA4AF", true},
	{"Cyberpunk", "#F9CB28", "#FEF08A", "#FDE047", "#171717", "#FAFAFA", "#262626", "#FAFAFA", "#404040", "#262626", "#A3A3A3", true},
}

// Themes returns a copy of the catalog.
func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

func ThemeByName(name string) (Theme, bool) {
	for _, t := range themes {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Theme{}, false
}

// ThemeStyleID is the id of the injected theme stylesheet.
const ThemeStyleID = "theme-colors"

var themeSheet = template.Must(template.New("theme").Parse(`
:root {
  --color-primary: {{.Primary}};
  --color-secondary: {{.Secondary}};
  --color-accent: {{.Accent}};
  --color-background: {{.Background}};
  --color-foreground: {{.Foreground}};
  --color-card: {{.Card}};
  --color-card-foreground: {{.CardForeground}};
  --color-border: {{.Border}};
  --color-muted: {{.Muted}};
  --color-muted-foreground: {{.MutedForeground}};
}

body {
  background-color: var(--color-background);
  color: var(--color-foreground);
}

.card, .bg-card, .bg-white, .bg-background-alt, section, header, footer, aside, nav {
  background-color: var(--color-card);
  color: var(--color-card-foreground);
}

.border, [class*="border-"], hr {
  border-color: var(--color-border);
}

.bg-primary, .bg-indigo-600, .bg-blue-600, .bg-violet-600,
[class*="bg-indigo-"], [class*="bg-blue-"], [class*="bg-violet-"] {
  background-color: var(--color-primary) !important;
  color: white !important;
}

.text-primary, .text-indigo-600, .text-blue-600, .text-violet-600,
[class*="text-indigo-"], [class*="text-blue-"], [class*="text-violet-"] {
  color: var(--color-primary) !important;
}

.border-primary, .border-indigo-600, .border-blue-600, .border-violet-600,
[class*="border-indigo-"], [class*="border-blue-"], [class*="border-violet-"] {
  border-color: var(--color-primary) !important;
}

.bg-secondary, .bg-indigo-400, .bg-blue-400, .bg-violet-400 {
  background-color: var(--color-secondary) !important;
  color: white !important;
}

.text-secondary, .text-indigo-400, .text-blue-400, .text-violet-400 {
  color: var(--color-secondary) !important;
}

.border-secondary, .border-indigo-400, .border-blue-400, .border-violet-400 {
  border-color: var(--color-secondary) !important;
}

.bg-accent, .bg-indigo-200, .bg-blue-200, .bg-violet-200 {
  background-color: var(--color-accent) !important;
}

.text-accent, .text-indigo-200, .text-blue-200, .text-violet-200 {
  color: var(--color-accent) !important;
}

.border-accent, .border-indigo-200, .border-blue-200, .border-violet-200 {
  border-color: var(--color-accent) !important;
}

.bg-muted, .bg-gray-100, .bg-slate-100 {
  background-color: var(--color-muted) !important;
}

.text-muted-foreground, .text-gray-500, .text-slate-500, .text-gray-600, .text-slate-600 {
  color: var(--color-muted-foreground) !important;
}

button, .btn, [class*="btn-"], a.bg-indigo-600, a.bg-blue-600, a.bg-violet-600,
a[class*="bg-indigo-"], a[class*="bg-blue-"], a[class*="bg-violet-"],
button[class*="bg-indigo-"], button[class*="bg-blue-"], button[class*="bg-violet-"],
.button, a.button, .btn-primary, a.btn-primary {
  background-color: var(--color-primary) !important;
  color: white !important;
  border-color: var(--color-primary) !important;
}

button:hover, .btn:hover, [class*="btn-"]:hover, .button:hover, a.button:hover, .btn-primary:hover {
  background-color: var(--color-secondary) !important;
  border-color: var(--color-secondary) !important;
}

a {
  color: var(--color-primary);
}

a:hover {
  color: var(--color-secondary);
}

[class*="bg-gradient"] {
  background-image: linear-gradient(to right, var(--color-primary), var(--color-secondary)) !important;
}

h1 span, h2 span, h3 span, h4 span, h5 span, h6 span,
.text-xl span, .text-2xl span, .text-3xl span, .text-4xl span, .text-5xl span, .text-6xl span {
  color: var(--color-primary) !important;
}

.skills span, [id="skills"] span, [id*="skill"] span,
span.px-4.py-2, span.px-3.py-1, span.px-2.py-1,
.skill-tag, .tag, .badge, .pill {
  background-color: var(--color-primary) !important;
  color: white !important;
  border-color: var(--color-primary) !important;
}
{{if .IsDark}}
.bg-white, .bg-gray-50, .bg-slate-50 {
  background-color: var(--color-card) !important;
  color: var(--color-card-foreground) !important;
}

.text-gray-800, .text-slate-800, .text-gray-900, .text-slate-900, .text-black {
  color: var(--color-foreground) !important;
}

img:not([src*=".svg"]) {
  filter: brightness(0.9);
}

h1, h2, h3, h4, h5, h6 {
  color: white !important;
}

.skills span, [id="skills"] span, [id*="skill"] span,
span.px-4.py-2, span.px-3.py-1, span.px-2.py-1,
.skill-tag, .tag, .badge, .pill {
  background-color: var(--color-primary) !important;
  color: white !important;
}
{{end}}`))

// Stylesheet renders the override rules for t. Dark-mode rules come last so
// they win on source order.
func Stylesheet(t Theme) string {
	var sb strings.Builder
	if err := themeSheet.Execute(&sb, t); err != nil {
		// the template is static and Theme only carries strings
		panic(err)
	}
	return sb.String()
}

// HexToHSL converts "#RRGGBB" to "H S% L%".
func HexToHSL(hex string) (string, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return "", fmt.Errorf("invalid hex color %q", hex)
	}
	var ch [3]float64
	for i := range ch {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return "", fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		ch[i] = float64(v) / 255
	}
	r, g, b := ch[0], ch[1], ch[2]
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))

	var h, s float64
	l := (max + min) / 2
	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}
		switch max {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h *= 60
	}
	return fmt.Sprintf("%d %d%% %d%%", int(math.Round(h)), int(math.Round(s*100)), int(math.Round(l*100))), nil
}

// Palette is the editor shell's own color variable set.
type Palette struct {
	Vars map[string]string `json:"vars"`
	Dark bool              `json:"dark"`
}

// ShellPalette mirrors t onto the shell variables as HSL triples.
func ShellPalette(t Theme) (Palette, error) {
	src := []struct{ name, hex string }{
		{"--background", t.Background},
		{"--foreground", t.Foreground},
		{"--card", t.Card},
		{"--card-foreground", t.CardForeground},
		{"--primary", t.Primary},
		{"--secondary", t.Secondary},
		{"--accent", t.Accent},
		{"--muted", t.Muted},
		{"--muted-foreground", t.MutedForeground},
		{"--border", t.Border},
	}
	p := Palette{Vars: make(map[string]string, len(src)), Dark: t.IsDark}
	for _, v := range src {
		hsl, err := HexToHSL(v.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("%s: %w", v.name, err)
		}
		p.Vars[v.name] = hsl
	}
	return p, nil
}

// ApplyTheme injects or replaces the theme stylesheet, updates the shell
// palette and commits.
func (e *Editor) ApplyTheme(t Theme) error {
	palette, err := ShellPalette(t)
	if err != nil {
		return err
	}
	head := e.doc.Head()
	if head == nil {
		return ErrNoHead
	}
	style := findByID(head, ThemeStyleID)
	if style == nil {
		style = &html.Node{Type: html.ElementNode, DataAtom: atom.Style, Data: "style"}
		setAttr(style, "id", ThemeStyleID)
		head.AppendChild(style)
	}
	setAttr(style, "data-theme", t.Name)
	for c := style.FirstChild; c != nil; c = style.FirstChild {
		style.RemoveChild(c)
	}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: Stylesheet(t)})

	e.palette = palette
	e.logger.Debug("theme applied", "theme", t.Name, "dark", t.IsDark)
	return e.commit()
}

// CurrentTheme reads the theme baked into the document.
func (e *Editor) CurrentTheme() (Theme, bool) {
	style := findByID(e.doc.Head(), ThemeStyleID)
	if style == nil {
		return Theme{}, false
	}
	name, _ := getAttr(style, "data-theme")
	return ThemeByName(name)
}

// Palette returns the shell variables of the document's current theme.
func (e *Editor) Palette() Palette {
	return e.palette
}

func findByID(n *html.Node, id string) *html.Node {
	var found *html.Node
	walkElements(n, func(el *html.Node) {
		if found != nil {
			return
		}
		if v, _ := getAttr(el, "id"); v == id {
			found = el
		}
	})
	return found
}
