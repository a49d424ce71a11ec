package main

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireWellFormed walks every token so any XML syntax error surfaces.
func requireWellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
	}
}

func parseFeed(t *testing.T, doc string) rss {
	t.Helper()
	requireWellFormed(t, doc)
	var feed rss
	require.NoError(t, xml.Unmarshal([]byte(doc), &feed))
	return feed
}

func TestBuildFeed_Channel(t *testing.T) {
	conf := testConf()
	doc, err := buildFeed(nil, LangDE, conf, testBuildTime)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`))
	feed := parseFeed(t, doc)
	assert.Equal(t, "2.0", feed.Version)
	assert.Equal(t, "365cloud.ai ─ Blog (de)", feed.Channel.Title)
	assert.Equal(t, "https://example.com/blog/de/", feed.Channel.Link)
	assert.Equal(t, "de", feed.Channel.Language)
	assert.Equal(t, "Sun, 01 Jun 2025 12:00:00 GMT", feed.Channel.LastBuildDate)
	assert.Equal(t, feedDescription, feed.Channel.Description)
	assert.Empty(t, feed.Channel.Items)
	assert.NotContains(t, doc, "<item>")
}

func TestBuildFeed_Items(t *testing.T) {
	conf := testConf()
	ps := posts{
		testPost("March", "2024-03-01", "Spring things"),
		testPost("Undated", "", ""),
	}

	doc, err := buildFeed(ps, LangEN, conf, testBuildTime)
	require.NoError(t, err)
	feed := parseFeed(t, doc)
	require.Len(t, feed.Channel.Items, 2)

	first := feed.Channel.Items[0]
	assert.Equal(t, "March", first.Title)
	assert.Equal(t, "https://example.com/blog/en/march/", first.Link)
	assert.Equal(t, first.Link, first.GUID.Value)
	assert.Equal(t, "true", first.GUID.IsPermaLink)
	assert.Equal(t, "Fri, 01 Mar 2024 00:00:00 GMT", first.PubDate)
	assert.Equal(t, "Spring things", first.Description.Value)
	assert.Contains(t, doc, "<description><![CDATA[Spring things]]></description>")

	undated := feed.Channel.Items[1]
	assert.Equal(t, "Sun, 01 Jun 2025 12:00:00 GMT", undated.PubDate)
	assert.Equal(t, "Body of Undated\n", undated.Description.Value)
}

func TestBuildFeed_LinksAreAbsoluteAndMatchGUIDs(t *testing.T) {
	conf := testConf()
	ps := posts{testPost("One", "2024-01-01", ""), testPost("Two", "", "")}
	ps[1].Slug = "explicit-two"

	doc, err := buildFeed(ps, LangDE, conf, testBuildTime)
	require.NoError(t, err)
	for _, item := range parseFeed(t, doc).Channel.Items {
		assert.True(t, strings.HasPrefix(item.Link, conf.BaseURL+"/"), item.Link)
		assert.Equal(t, item.Link, item.GUID.Value)
	}
}

func TestBuildFeed_DescriptionFallsBackToPlainTextPrefix(t *testing.T) {
	p := testPost("Long", "", "")
	p.PlainText = strings.Repeat("ä", 250)

	doc, err := buildFeed(posts{p}, LangDE, testConf(), testBuildTime)
	require.NoError(t, err)
	item := parseFeed(t, doc).Channel.Items[0]
	assert.Equal(t, strings.Repeat("ä", 200), item.Description.Value)
}

func TestBuildFeed_EscapesAdversarialText(t *testing.T) {
	p := testPost("A & B <script>", "", `x ]]> "y" & 'z' <b>`)

	doc, err := buildFeed(posts{p}, LangEN, testConf(), testBuildTime)
	require.NoError(t, err)

	assert.Contains(t, doc, "<title>A &amp; B &lt;script&gt;</title>")
	assert.NotContains(t, doc, "A & B <script>")
	feed := parseFeed(t, doc)
	require.Len(t, feed.Channel.Items, 1)
	assert.Equal(t, "A & B <script>", feed.Channel.Items[0].Title)
	assert.Equal(t, "x ]]&gt; &quot;y&quot; &amp; &#39;z&#39; &lt;b&gt;", feed.Channel.Items[0].Description.Value)
}

func TestBuildFeed_DropsCharactersXMLForbids(t *testing.T) {
	p := testPost("Page\x0cbreak", "", "")
	p.PlainText = "Page\x0cbreak \x01done\ttab"

	doc, err := buildFeed(posts{p}, LangEN, testConf(), testBuildTime)
	require.NoError(t, err)

	feed := parseFeed(t, doc)
	require.Len(t, feed.Channel.Items, 1)
	assert.Equal(t, "Pagebreak done\ttab", feed.Channel.Items[0].Description.Value)
}

func TestEscapeXML_KeepsValidRunes(t *testing.T) {
	assert.Equal(t, "ä 😀 \r\n", escapeXML("ä\x00 😀 \uFFFE\r\n"))
}
