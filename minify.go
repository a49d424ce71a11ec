package main

import (
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/xml"
)

const (
	mediaTypeHTML = "text/html"
	mediaTypeRSS  = "application/rss+xml"
	mediaTypeAtom = "application/atom+xml"
)

// artifactMinifier shrinks written artifacts. The zero value passes them
// through untouched.
type artifactMinifier struct {
	m *minify.M
}

func newArtifactMinifier(enabled bool) artifactMinifier {
	if !enabled {
		return artifactMinifier{}
	}
	m := minify.New()
	m.AddFunc(mediaTypeHTML, html.Minify)
	m.AddFuncRegexp(regexp.MustCompile(`[/+]xml$`), xml.Minify)
	return artifactMinifier{m: m}
}

func (a artifactMinifier) minify(mediaType string, b []byte) ([]byte, error) {
	if a.m == nil {
		return b, nil
	}
	return a.m.Bytes(mediaType, b)
}
