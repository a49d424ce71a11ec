package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultSiteURL = "https://365cloud.ai"

type SiteConf struct {
	BaseURL   string `yaml:"baseUrl"`
	SiteName  string `yaml:"siteName"`
	Copyright string `yaml:"copyright"`
	// URL path the blog is published under, e.g. "/blog".
	BlogPath string `yaml:"blogPath"`

	ContentDir       string `yaml:"contentDir"`
	ContentExtension string `yaml:"contentExtension"`
	StaticDir        string `yaml:"staticDir"`
	OutDir           string `yaml:"outDir"`
	// Root served by the serve command. The blog output lives below it.
	PublicDir string `yaml:"publicDir"`

	Markdown string `yaml:"markdown"`
	Atom     bool   `yaml:"atom"`
	Minify   bool   `yaml:"minify"`
}

func defaultConf() SiteConf {
	return SiteConf{
		BaseURL:          defaultSiteURL,
		SiteName:         "365cloud.ai",
		Copyright:        "© 2025 365cloud.ai",
		BlogPath:         "/blog",
		ContentDir:       filepath.Join("public", "blog", "posts"),
		ContentExtension: ".md",
		OutDir:           filepath.Join("public", "blog"),
		PublicDir:        "public",
		Markdown:         markdownBlackfriday,
		Atom:             true,
	}
}

// readConf loads the YAML configuration at fileName. A missing file is not an
// error: the defaults apply and relative paths resolve against its directory.
func readConf(fileName string) (*SiteConf, error) {
	conf := defaultConf()

	rawConf, err := os.ReadFile(fileName)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("No config file found, using defaults", "path", fileName)
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", fileName, err)
	default:
		if err := yaml.Unmarshal(rawConf, &conf); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", fileName, err)
		}
	}

	// .env next to the config wins over nothing but loses to the real environment.
	baseDir := filepath.Dir(fileName)
	if err := godotenv.Load(filepath.Join(baseDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	if u := os.Getenv("SITE_URL"); u != "" {
		conf.BaseURL = u
	}

	if err := conf.normalize(baseDir); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *SiteConf) normalize(baseDir string) error {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultSiteURL
	}
	c.BlogPath = "/" + strings.Trim(c.BlogPath, "/")
	if c.BlogPath == "/" {
		c.BlogPath = ""
	}
	if c.ContentExtension != "" && !strings.HasPrefix(c.ContentExtension, ".") {
		c.ContentExtension = "." + c.ContentExtension
	}
	if _, err := newMarkdownRenderer(c.Markdown); err != nil {
		return err
	}

	// Directories are relative to the config file, not the working directory.
	for _, dir := range []*string{&c.ContentDir, &c.OutDir, &c.PublicDir, &c.StaticDir} {
		if *dir != "" && !filepath.IsAbs(*dir) {
			*dir = filepath.Join(baseDir, *dir)
		}
	}
	slog.Debug("Resolved directories", "content", c.ContentDir, "out", c.OutDir, "public", c.PublicDir, "static", c.StaticDir)
	return nil
}

// blogRoot is the absolute URL of a language's blog index.
func (c *SiteConf) blogRoot(l Language) string {
	return c.BaseURL + c.blogRootPath(l)
}

func (c *SiteConf) blogRootPath(l Language) string {
	return c.BlogPath + "/" + l.String() + "/"
}

func (c *SiteConf) postPath(l Language, slug string) string {
	return c.blogRootPath(l) + slug + "/"
}

func (c *SiteConf) postURL(l Language, slug string) string {
	return c.BaseURL + c.postPath(l, slug)
}

func (c *SiteConf) feedPath(l Language) string {
	return c.blogRootPath(l) + "feed.xml"
}

// buildClock honours SOURCE_DATE_EPOCH so that repeated builds of unchanged
// content produce identical feeds.
func buildClock() (func() time.Time, error) {
	epoch := os.Getenv("SOURCE_DATE_EPOCH")
	if epoch == "" {
		return time.Now, nil
	}
	secs, err := strconv.ParseInt(epoch, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SOURCE_DATE_EPOCH %q: %w", epoch, err)
	}
	t := time.Unix(secs, 0).UTC()
	return func() time.Time { return t }, nil
}
