package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToHSL(t *testing.T) {
	tests := map[string]string{
		"#4F46E5": "243 75% 59%",
		"#10B981": "160 84% 39%",
		"#FFFFFF": "0 0% 100%",
		"#000000": "0 0% 0%",
		"#FF0000": "0 100% 50%",
		"#00ff00": "120 100% 50%",
		"#0000FF": "240 100% 50%",
	}
	for hex, want := range tests {
		got, err := HexToHSL(hex)
		require.NoError(t, err, hex)
		assert.Equal(t, want, got, hex)
	}
}

func TestHexToHSLRejectsMalformed(t *testing.T) {
	for _, hex := range []string{"", "#12", "#4F46E", "#GGGGGG"} {
		_, err := HexToHSL(hex)
		assert.Error(t, err, hex)
	}
}

func TestThemeCatalog(t *testing.T) {
	themes := Themes()
	require.Len(t, themes, 10)
	dark := 0
	for _, th := range themes {
		if th.IsDark {
			dark++
		}
		_, err := ShellPalette(th)
		assert.NoError(t, err, th.Name)
	}
	assert.Equal(t, 5, dark)

	_, ok := ThemeByName("emerald dark")
	assert.True(t, ok)
	_, ok = ThemeByName("Neon")
	assert.False(t, ok)
}

func TestStylesheetDarkRulesComeLast(t *testing.T) {
	light, _ := ThemeByName("Indigo Light")
	dark, _ := ThemeByName("Slate Dark")

	ls := Stylesheet(light)
	assert.Contains(t, ls, "--color-primary: #4F46E5;")
	assert.NotContains(t, ls, "brightness(0.9)")

	ds := Stylesheet(dark)
	assert.Contains(t, ds, "--color-background: #0F172A;")
	assert.Greater(t, strings.Index(ds, "brightness(0.9)"), strings.Index(ds, ".skill-tag"))
}

func TestShellPalette(t *testing.T) {
	emerald, _ := ThemeByName("Emerald Light")
	p, err := ShellPalette(emerald)
	require.NoError(t, err)
	assert.Equal(t, "160 84% 39%", p.Vars["--primary"])
	assert.Equal(t, "0 0% 100%", p.Vars["--card"])
	assert.False(t, p.Dark)
}

func TestApplyThemeWithoutHead(t *testing.T) {
	e := newTestEditor(t, fixture)
	head := e.doc.Head()
	head.Parent.RemoveChild(head)
	th, _ := ThemeByName("Rose Light")
	assert.ErrorIs(t, e.ApplyTheme(th), ErrNoHead)
}
