package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// escapeHTML must wrap every value that did not come out of the markdown
// converter, in text nodes and attributes alike.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// metaSeparator joins date and description in headers and listings.
const metaSeparator = " ─ "

func joinMeta(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, metaSeparator)
}

// pageRenderer turns posts into complete HTML documents. It holds no mutable
// state and is safe to share between language builds.
type pageRenderer struct {
	conf *SiteConf
}

type shellParams struct {
	Title       string
	PageURL     string
	Description string
	Lang        Language
}

type ldWebSite struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

type ldWebPage struct {
	Context     string    `json:"@context"`
	Type        string    `json:"@type"`
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPartOf    ldWebSite `json:"isPartOf"`
}

type ldEntity struct {
	Type string `json:"@type"`
	ID   string `json:"@id,omitempty"`
	Name string `json:"name,omitempty"`
}

type ldBlogPosting struct {
	Context          string   `json:"@context"`
	Type             string   `json:"@type"`
	Headline         string   `json:"headline"`
	DatePublished    string   `json:"datePublished,omitempty"`
	Description      string   `json:"description,omitempty"`
	MainEntityOfPage ldEntity `json:"mainEntityOfPage"`
	Author           ldEntity `json:"author"`
	Publisher        ldEntity `json:"publisher"`
	URL              string   `json:"url"`
}

// jsonLD renders a structured-data script block. encoding/json escapes <, >
// and & so the payload cannot terminate the script element.
func jsonLD(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		// Only plain structs of strings reach here.
		panic(err)
	}
	return `<script type="application/ld+json">` + string(b) + `</script>`
}

func (r pageRenderer) renderShellOpen(sp shellParams) string {
	lb := labelsFor(sp.Lang)
	title := escapeHTML(sp.Title)
	description := escapeHTML(sp.Description)

	webPage := ldWebPage{
		Context:     "https://schema.org",
		Type:        "WebPage",
		URL:         sp.PageURL,
		Name:        sp.Title,
		Description: sp.Description,
		IsPartOf:    ldWebSite{Type: "WebSite", URL: r.conf.BaseURL + "/", Name: r.conf.SiteName},
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<!doctype html>
<html lang="%s">
<head>
  <meta charset="utf-8" />
  <title>%s</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <meta name="description" content="%s" />
  <link rel="alternate" type="application/rss+xml" href="%s" title="%s Blog RSS (%s)" />
  <link rel="stylesheet" href="/assets/site.css" />
  <script src="/assets/site.js" defer></script>
  <script src="/assets/structured-data.js" defer></script>
  %s
</head>
<body itemscope itemtype="http://schema.org/WebSite" typeof="schema:WebSite">
  <header class="container">
    <button id="menuBtn" aria-controls="drawer" aria-expanded="false" aria-label="Open menu">☰</button>
    <span class="pill">%s</span>
    <h1>%s</h1>
`,
		escapeHTML(lb.HTMLLang), title, description,
		escapeHTML(r.conf.feedPath(sp.Lang)), escapeHTML(r.conf.SiteName), sp.Lang,
		jsonLD(webPage),
		escapeHTML(lb.SiteName), title)
	if sp.Description != "" {
		fmt.Fprintf(&b, "    <h2 style=\"margin:.25rem 0 0; font-weight:500; color:var(--muted);\">%s</h2>\n", description)
	}

	lang := sp.Lang.String()
	fmt.Fprintf(&b, `  </header>
  <div id="scrim" class="scrim" hidden></div>
  <aside id="drawer" class="drawer" aria-hidden="true" aria-label="Site menu">
    <nav class="menu" role="navigation">
      <a href="/%[1]s/">%[2]s</a>
      <a href="/%[1]s/project-power/">%[3]s</a>
      <a href="/%[1]s/blog/">%[4]s</a>
      <a href="/%[1]s/imprint/">%[5]s</a>
      <hr style="border:1px solid var(--line);border-width:0 0 1px;margin:.5rem 0" />
      <label class="switch"><input id="themeToggle" type="checkbox"/> %[6]s</label>
      <div style="margin-top:.5rem;">
        <strong>Language</strong>
        <div class="lang-switch">
`, lang, escapeHTML(lb.Home), escapeHTML(lb.ProjectPower), escapeHTML(lb.Blog), escapeHTML(lb.Imprint), escapeHTML(lb.LightMode))
	for _, l := range supportedLanguages {
		fmt.Fprintf(&b, "          <button data-lang=\"%s\" class=\"lang-btn\">%s</button>\n", l, strings.ToUpper(l.String()))
	}
	b.WriteString(`        </div>
      </div>
    </nav>
  </aside>
  <main class="container" style="padding:1.5rem 0;">
`)
	return b.String()
}

func (r pageRenderer) renderShellClose() string {
	return `
  </main>
  <footer class="container">
    <span>` + escapeHTML(r.conf.Copyright) + `</span>
  </footer>
</body>
</html>
`
}

func (r pageRenderer) renderPost(p *post, lang Language) string {
	url := r.conf.postURL(lang, p.Slug)
	org := ldEntity{Type: "Organization", Name: r.conf.SiteName}
	posting := ldBlogPosting{
		Context:          "https://schema.org",
		Type:             "BlogPosting",
		Headline:         p.Title,
		DatePublished:    p.Date,
		Description:      p.Description,
		MainEntityOfPage: ldEntity{Type: "WebPage", ID: url},
		Author:           org,
		Publisher:        org,
		URL:              url,
	}

	var b strings.Builder
	b.WriteString(r.renderShellOpen(shellParams{
		Title:       p.Title + metaSeparator + r.conf.SiteName,
		PageURL:     url,
		Description: joinMeta(p.Date, p.Description),
		Lang:        lang,
	}))
	b.WriteString(jsonLD(posting))
	b.WriteString(`<article class="post">`)
	b.WriteString(p.BodyHTML)
	b.WriteString(`</article>`)
	b.WriteString(r.renderShellClose())
	return b.String()
}

func (r pageRenderer) renderIndex(ps posts, lang Language) string {
	lb := labelsFor(lang)

	var b strings.Builder
	b.WriteString(r.renderShellOpen(shellParams{
		Title:       lb.Blog + metaSeparator + r.conf.SiteName,
		PageURL:     r.conf.blogRoot(lang),
		Description: lb.Description,
		Lang:        lang,
	}))
	b.WriteString(`<div class="list">`)
	if len(ps) == 0 {
		fmt.Fprintf(&b, "<p>%s</p>", escapeHTML(lb.NoPosts))
	}
	for i, p := range ps {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, `<a href="%s" class="item"><strong>%s</strong><br><span class="muted">%s</span></a>`,
			escapeHTML(r.conf.postPath(lang, p.Slug)),
			escapeHTML(p.Title),
			escapeHTML(joinMeta(p.Date, p.Description)))
	}
	b.WriteString(`</div>`)
	b.WriteString(r.renderShellClose())
	return b.String()
}
