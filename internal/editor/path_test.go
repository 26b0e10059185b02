package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestParseSegment(t *testing.T) {
	tests := []struct {
		raw  string
		want Segment
	}{
		{"div", Segment{Tag: "div"}},
		{"SECTION#hero", Segment{Tag: "section", ID: "hero"}},
		{"p.lead", Segment{Tag: "p", Class: "lead"}},
		{"span.w-1.5", Segment{Tag: "span", Class: "w-1.5"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSegment(tt.raw))
		})
	}
}

func TestParsePathRoundTrip(t *testing.T) {
	raw := "body > section#hero > p.lead"
	p := ParsePath(raw)
	require.Len(t, p, 3)
	assert.Equal(t, raw, p.String())
	assert.Empty(t, ParsePath("  "))
}

func TestParsePathKeepsArbitraryVariantClass(t *testing.T) {
	doc, err := NewDocument(`<html><body><ul class="[&>*]:p-2"><li>a</li></ul></body></html>`)
	require.NoError(t, err)
	ul := elementChildren(doc.Body())[0]

	raw := ComputePath(ul).String()
	assert.Equal(t, "body > ul.[&>*]:p-2", raw)
	p := ParsePath(raw)
	require.Len(t, p, 2)
	assert.Equal(t, "[&>*]:p-2", p[1].Class)
	n, ok := doc.QueryNode(p)
	require.True(t, ok)
	assert.Same(t, ul, n)
}

func TestElementPathJSON(t *testing.T) {
	p := ParsePath("body > div#p1 > h3")
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `["body","div#p1","h3"]`, string(b))

	var back ElementPath
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, p, back)
}

func TestComputeResolveEveryNode(t *testing.T) {
	doc, err := NewDocument(fixture)
	require.NoError(t, err)

	count := 0
	for _, top := range []*html.Node{doc.Body(), doc.Head()} {
		walkElements(top, func(n *html.Node) {
			got, ok := ResolvePath(doc, ComputePath(n))
			require.True(t, ok, ComputePath(n).String())
			assert.Same(t, n, got, ComputePath(n).String())
			count++
		})
	}
	assert.Greater(t, count, 15)
}

func TestComputePathPrefersID(t *testing.T) {
	doc, err := NewDocument(fixture)
	require.NoError(t, err)
	n, ok := ResolvePath(doc, ParsePath("body > section#work > div#p1"))
	require.True(t, ok)
	assert.Equal(t, "body > section#work > div#p1", ComputePath(n).String(), "id wins over class")
}

func TestComputePathSkipsMarker(t *testing.T) {
	doc, err := NewDocument(`<html><body><p class="portfolio-element-selected intro">x</p><div class="portfolio-element-selected"></div></body></html>`)
	require.NoError(t, err)
	p := elementChildren(doc.Body())
	assert.Equal(t, "body > p.intro", ComputePath(p[0]).String())
	assert.Equal(t, "body > div", ComputePath(p[1]).String())
}

func TestResolveTakesFirstMatch(t *testing.T) {
	doc, err := NewDocument(`<html><body><ul><li>a</li><li>b</li></ul></body></html>`)
	require.NoError(t, err)
	items := elementChildren(elementChildren(doc.Body())[0])
	got, ok := ResolvePath(doc, ComputePath(items[1]))
	require.True(t, ok)
	assert.Same(t, items[0], got, "siblings without discriminator collapse onto the first")
}

func TestResolveMisses(t *testing.T) {
	doc, err := NewDocument(fixture)
	require.NoError(t, err)
	for _, raw := range []string{"", "main", "body > section#gone", "body > section#hero > p.missing"} {
		_, ok := ResolvePath(doc, ParsePath(raw))
		assert.False(t, ok, raw)
	}
}

func TestResolveAfterRemoval(t *testing.T) {
	doc, err := NewDocument(fixture)
	require.NoError(t, err)
	path := ParsePath("body > footer > p.note")
	n, ok := ResolvePath(doc, path)
	require.True(t, ok)
	n.Parent.RemoveChild(n)
	_, ok = ResolvePath(doc, path)
	assert.False(t, ok)
}
