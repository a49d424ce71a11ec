package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestReadConf_MissingFileUsesDefaults(t *testing.T) {
	unsetEnv(t, "SITE_URL")
	dir := t.TempDir()

	conf, err := readConf(filepath.Join(dir, "blog.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://365cloud.ai", conf.BaseURL)
	assert.Equal(t, "/blog", conf.BlogPath)
	assert.Equal(t, ".md", conf.ContentExtension)
	assert.Equal(t, markdownBlackfriday, conf.Markdown)
	assert.True(t, conf.Atom)
	assert.False(t, conf.Minify)
	assert.Equal(t, filepath.Join(dir, "public", "blog", "posts"), conf.ContentDir)
	assert.Equal(t, filepath.Join(dir, "public", "blog"), conf.OutDir)
	assert.Equal(t, filepath.Join(dir, "public"), conf.PublicDir)
	assert.Empty(t, conf.StaticDir)
}

func TestReadConf_FileValues(t *testing.T) {
	unsetEnv(t, "SITE_URL")
	dir := t.TempDir()
	path := filepath.Join(dir, "blog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
baseUrl: https://staging.example.com/
blogPath: news/
contentDir: content
outDir: /srv/www/news
contentExtension: markdown
markdown: goldmark
atom: false
minify: true
staticDir: static
`), 0o644))

	conf, err := readConf(path)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.example.com", conf.BaseURL)
	assert.Equal(t, "/news", conf.BlogPath)
	assert.Equal(t, filepath.Join(dir, "content"), conf.ContentDir)
	assert.Equal(t, "/srv/www/news", conf.OutDir)
	assert.Equal(t, filepath.Join(dir, "static"), conf.StaticDir)
	assert.Equal(t, ".markdown", conf.ContentExtension)
	assert.Equal(t, markdownGoldmark, conf.Markdown)
	assert.False(t, conf.Atom)
	assert.True(t, conf.Minify)
	assert.Equal(t, "https://staging.example.com/news/de/x/", conf.postURL(LangDE, "x"))
}

func TestReadConf_EnvironmentOverridesBaseURL(t *testing.T) {
	t.Setenv("SITE_URL", "https://preview.example.org/")
	conf, err := readConf(filepath.Join(t.TempDir(), "blog.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://preview.example.org", conf.BaseURL)
}

func TestReadConf_DotEnvFile(t *testing.T) {
	unsetEnv(t, "SITE_URL")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SITE_URL=https://dotenv.example.net\n"), 0o644))

	conf, err := readConf(filepath.Join(dir, "blog.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://dotenv.example.net", conf.BaseURL)
}

func TestReadConf_Errors(t *testing.T) {
	unsetEnv(t, "SITE_URL")
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("baseUrl: [oops\n"), 0o644))
	_, err := readConf(bad)
	require.Error(t, err)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("markdown: pandoc\n"), 0o644))
	_, err = readConf(unknown)
	require.ErrorContains(t, err, "pandoc")
}

func TestSiteConf_URLs(t *testing.T) {
	conf := testConf()
	assert.Equal(t, "https://example.com/blog/en/", conf.blogRoot(LangEN))
	assert.Equal(t, "/blog/en/hello/", conf.postPath(LangEN, "hello"))
	assert.Equal(t, "https://example.com/blog/en/hello/", conf.postURL(LangEN, "hello"))
	assert.Equal(t, "/blog/de/feed.xml", conf.feedPath(LangDE))
}

func TestBuildClock(t *testing.T) {
	t.Setenv("SOURCE_DATE_EPOCH", "1717243200")
	now, err := buildClock()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC), now())

	t.Setenv("SOURCE_DATE_EPOCH", "yesterday")
	_, err = buildClock()
	require.Error(t, err)

	t.Setenv("SOURCE_DATE_EPOCH", "")
	now, err = buildClock()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), now(), time.Minute)
}
