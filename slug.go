package main

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSeparators   = regexp.MustCompile(`[\s-]+`)
)

var accentTransformerPool = &sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	},
}

func removeAccents(s string) string {
	t := accentTransformerPool.Get().(transform.Transformer)
	out, _, err := transform.String(t, s)
	t.Reset()
	accentTransformerPool.Put(t)
	if err != nil {
		return s
	}
	return out
}

// slugify turns a title into a URL path segment made of [a-z0-9-] with no
// leading, trailing or doubled hyphens. The result may be empty.
func slugify(s string) string {
	s = removeAccents(strings.ToLower(s))
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugSeparators.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(s, "-")
}

// postSlug picks the slug for a post without an explicit one.
func postSlug(title, fileBaseName string) string {
	if s := slugify(title); s != "" {
		return s
	}
	if s := slugify(fileBaseName); s != "" {
		return s
	}
	return "post"
}
