package main

import (
	"bytes"
	"fmt"

	"github.com/russross/blackfriday/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const (
	markdownBlackfriday = "blackfriday"
	markdownGoldmark    = "goldmark"
)

type renderer interface {
	render(in []byte) string
}

func newMarkdownRenderer(name string) (renderer, error) {
	switch name {
	case "", markdownBlackfriday:
		return newBlackfridayRenderer(), nil
	case markdownGoldmark:
		return newGoldmarkRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown markdown converter %q", name)
	}
}

const blackfridayFlags = blackfriday.UseXHTML |
	blackfriday.Smartypants |
	blackfriday.SmartypantsFractions |
	blackfriday.SmartypantsLatexDashes

const blackfridayExtensions = blackfriday.NoIntraEmphasis |
	blackfriday.Tables |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough

type blackfridayHtmlRenderer struct {
	r          blackfriday.Renderer
	extensions blackfriday.Extensions
}

func newBlackfridayRenderer() renderer {
	r := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: blackfridayFlags})
	return &blackfridayHtmlRenderer{r, blackfridayExtensions}
}

func (b *blackfridayHtmlRenderer) render(in []byte) string {
	return string(blackfriday.Run(in, blackfriday.WithRenderer(b.r), blackfriday.WithExtensions(b.extensions)))
}

type goldmarkRenderer struct {
	md goldmark.Markdown
}

func newGoldmarkRenderer() renderer {
	return &goldmarkRenderer{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)}
}

// render never fails the build: goldmark only errors on writer failures,
// which a bytes.Buffer does not produce.
func (g *goldmarkRenderer) render(in []byte) string {
	var buf bytes.Buffer
	if err := g.md.Convert(in, &buf); err != nil {
		return ""
	}
	return buf.String()
}
