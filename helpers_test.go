package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

var testBuildTime = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func testConf() *SiteConf {
	conf := defaultConf()
	conf.BaseURL = "https://example.com"
	conf.ContentDir = "/content"
	conf.OutDir = "/out"
	conf.PublicDir = "/"
	return &conf
}

func fixedClock() time.Time { return testBuildTime }

func writeTestFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func readTestFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	b, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(b)
}

func testPost(title, date, description string) *post {
	p := &post{
		Title:       title,
		Date:        date,
		Description: description,
		Slug:        postSlug(title, "post"),
		BodyHTML:    "<p>Body of " + title + "</p>\n",
	}
	p.PlainText = stripTags(p.BodyHTML)
	p.Published = parsePostDate(date)
	return p
}
