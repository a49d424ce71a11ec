package main

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"
)

const (
	feedDescription   = "Insights on Microsoft 365, Power Platform, Azure Cloud & Azure AI."
	feedGenerator     = "365cloud.ai static generator"
	feedSummaryLength = 200
)

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Generator     string    `xml:"generator"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        rssGUID  `xml:"guid"`
	PubDate     string   `xml:"pubDate"`
	Description rssCDATA `xml:"description"`
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssCDATA struct {
	Value string `xml:",cdata"`
}

// httpDate formats t the way HTTP and RSS 2.0 readers expect it.
func httpDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

func feedTitle(conf *SiteConf, lang Language) string {
	return conf.SiteName + metaSeparator + "Blog (" + lang.String() + ")"
}

// summary prefers the explicit description and falls back to the start of
// the post's plain text.
func (p *post) summary() string {
	if p.Description != "" {
		return p.Description
	}
	runes := []rune(p.PlainText)
	if len(runes) > feedSummaryLength {
		runes = runes[:feedSummaryLength]
	}
	return string(runes)
}

// buildFeed renders the RSS 2.0 document of one language. Undated posts are
// stamped with the build time.
func buildFeed(ps posts, lang Language, conf *SiteConf, now time.Time) (string, error) {
	buildDate := httpDate(now)
	feed := rss{
		Version: "2.0",
		Channel: rssChannel{
			Title:         feedTitle(conf, lang),
			Link:          conf.blogRoot(lang),
			Description:   feedDescription,
			Language:      lang.String(),
			LastBuildDate: buildDate,
			Generator:     feedGenerator,
		},
	}

	for _, p := range ps {
		link := conf.postURL(lang, p.Slug)
		pubDate := buildDate
		if !p.Published.IsZero() {
			pubDate = httpDate(p.Published)
		}
		feed.Channel.Items = append(feed.Channel.Items, rssItem{
			Title:       p.Title,
			Link:        link,
			GUID:        rssGUID{IsPermaLink: "true", Value: link},
			PubDate:     pubDate,
			Description: rssCDATA{Value: escapeXML(p.summary())},
		})
	}

	out, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(out) + "\n", nil
}

// escapeXML escapes text that ends up inside CDATA, so readers that unwrap
// the section still get inert markup. encoding/xml writes CDATA unchecked,
// so runes XML 1.0 forbids are dropped here.
func escapeXML(s string) string {
	return htmlEscaper.Replace(strings.Map(xmlChar, s))
}

// xmlChar keeps r if it matches the XML 1.0 Char production.
func xmlChar(r rune) rune {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return r
	case r >= 0x20 && r <= 0xD7FF, r >= 0xE000 && r <= 0xFFFD, r >= 0x10000 && r <= 0x10FFFF:
		return r
	}
	return -1
}
