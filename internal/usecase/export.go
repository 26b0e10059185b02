package usecase

import (
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
)

var (
	minifier *minify.M
	once     sync.Once
)

func getMinifier() *minify.M {
	once.Do(func() {
		minifier = minify.New()
		minifier.AddFunc("text/css", css.Minify)
		minifier.Add("text/html", &html.Minifier{
			KeepDocumentTags: true,
			KeepEndTags:      true,
			KeepQuotes:       true,
		})
	})
	return minifier
}

// minifyHTML strips insignificant whitespace. On failure the input is
// returned unchanged.
func minifyHTML(doc string) string {
	out, err := getMinifier().String("text/html", doc)
	if err != nil {
		return doc
	}
	return out
}
