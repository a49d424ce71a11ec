package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/araddon/dateparse"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
)

// SkippedFile is a source file or artifact left out of a build, with why.
type SkippedFile struct {
	Path   string
	Reason string
}

var htmlTag = regexp.MustCompile(`<[^>]*?>`)

// stripTags is a best-effort plain-text view of rendered HTML. Entities are
// left encoded.
func stripTags(html string) string {
	return htmlTag.ReplaceAllString(html, "")
}

type postsReader struct {
	fs        afero.Fs
	dir       string
	extension string
	toHtml    renderer
}

// findPostFiles lists content files directly in dir, sorted by name. A
// missing directory means no posts.
func (pr *postsReader) findPostFiles() ([]string, error) {
	infos, err := afero.ReadDir(pr.fs, pr.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(infos))
	for _, info := range infos {
		if !info.IsDir() && strings.HasSuffix(info.Name(), pr.extension) {
			files = append(files, filepath.Join(pr.dir, info.Name()))
		}
	}
	return files, nil
}

// readPosts reads every content file of the directory. Files that cannot be
// read are reported as skipped; they never abort the language.
func (pr *postsReader) readPosts() (posts, []SkippedFile, error) {
	files, err := pr.findPostFiles()
	if err != nil {
		return nil, nil, err
	}

	ps := make(posts, 0, len(files))
	var skipped []SkippedFile
	for _, f := range files {
		p, err := pr.readPostFromFile(f)
		if err != nil {
			slog.Warn("Skipping post", keyPath, f, keyError, err)
			skipped = append(skipped, SkippedFile{Path: f, Reason: err.Error()})
			continue
		}
		slog.Debug("Read post", keyPath, f, "post", p.String())
		ps = append(ps, p)
	}

	ps.sortNewestFirst()
	return ps, skipped, nil
}

func (pr *postsReader) readPostFromFile(path string) (*post, error) {
	fileBaseName := filepath.Base(path)
	fileBaseName = fileBaseName[:len(fileBaseName)-len(pr.extension)]

	fileContent, err := afero.ReadFile(pr.fs, path)
	if err != nil {
		return nil, err
	}

	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(fileContent), &meta)
	if err != nil {
		slog.Warn("Could not parse front matter, treating file as plain markdown", keyPath, path, keyError, err)
		body = fileContent
		meta = map[string]any{}
	}

	p := &post{
		Title:       firstMetaValue(meta, "Title", "title"),
		Date:        firstMetaValue(meta, "Date", "date"),
		Description: firstMetaValue(meta, "Description", "description"),
		Slug:        firstMetaValue(meta, "Slug", "slug"),
		SourcePath:  path,
	}
	if p.Title == "" {
		p.Title = fileBaseName
	}
	if p.Slug == "" {
		p.Slug = postSlug(p.Title, fileBaseName)
	} else if err := checkSlug(p.Slug); err != nil {
		return nil, err
	}
	p.Published = parsePostDate(p.Date)
	if p.Date != "" && p.Published.IsZero() {
		slog.Warn("Unrecognized post date, sorting as undated", keyPath, path, "date", p.Date)
	}

	p.BodyHTML = pr.toHtml.render(body)
	p.PlainText = stripTags(p.BodyHTML)

	return p, nil
}

// checkSlug rejects explicit slugs that are not a single path segment, since
// the slug names the post's output directory.
func checkSlug(slug string) error {
	if slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return fmt.Errorf("slug %q is not a single path segment", slug)
	}
	return nil
}

// firstMetaValue returns the first non-empty value among keys.
func firstMetaValue(meta map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := meta[k]
		if !ok || v == nil {
			continue
		}
		var s string
		if t, isTime := v.(time.Time); isTime {
			s = formatMetaTime(t)
		} else {
			s = cast.ToString(v)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// formatMetaTime keeps date-only YAML timestamps in their written form.
func formatMetaTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}

func parsePostDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
