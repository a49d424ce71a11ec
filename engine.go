// Command blog365 builds the multi-language blog of the 365cloud.ai site:
// Markdown posts with front matter become post pages, a listing and RSS and
// Atom feeds per language, wrapped in the site's shared page shell.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/otiai10/copy"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

type Site struct {
	conf     *SiteConf
	fs       afero.Fs
	now      func() time.Time
	recorder Recorder
	pages    pageRenderer
	minifier artifactMinifier
}

type SiteOption func(*Site)

// WithClock pins the build time stamped into feeds.
func WithClock(now func() time.Time) SiteOption {
	return func(s *Site) { s.now = now }
}

func WithRecorder(r Recorder) SiteOption {
	return func(s *Site) { s.recorder = r }
}

func NewSite(conf *SiteConf, fs afero.Fs, opts ...SiteOption) *Site {
	s := &Site{
		conf:     conf,
		fs:       fs,
		now:      time.Now,
		recorder: noopRecorder{},
		pages:    pageRenderer{conf: conf},
		minifier: newArtifactMinifier(conf.Minify),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// BuildResult reports what a build wrote, per requested language in order.
type BuildResult struct {
	BuildTime time.Time
	Languages []LanguageResult
}

type LanguageResult struct {
	Lang      Language
	Posts     int
	Artifacts []string
	Skipped   []SkippedFile
}

func (r *BuildResult) Language(l Language) (LanguageResult, bool) {
	for _, lr := range r.Languages {
		if lr.Lang == l {
			return lr, true
		}
	}
	return LanguageResult{}, false
}

// artifactError is a fatal filesystem failure while writing output.
type artifactError struct {
	Lang Language
	Path string
	Err  error
}

func (e *artifactError) Error() string {
	return fmt.Sprintf("lang %s: writing %s: %v", e.Lang, e.Path, e.Err)
}

func (e *artifactError) Unwrap() error { return e.Err }

// Build runs the pipeline of every language. Languages share no state and
// build concurrently; the first write failure aborts the run and leaves what
// was already written in place.
func (s *Site) Build(ctx context.Context, langs []Language) (*BuildResult, error) {
	start := time.Now()
	result := &BuildResult{
		BuildTime: s.now().UTC(),
		Languages: make([]LanguageResult, len(langs)),
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, lang := range langs {
		g.Go(func() error {
			lr, err := s.buildLanguage(ctx, lang, result.BuildTime)
			if err != nil {
				return err
			}
			result.Languages[i] = *lr
			return nil
		})
	}
	err := g.Wait()

	elapsed := time.Since(start)
	s.recorder.ObserveBuildDuration(elapsed)
	slog.Debug("Build finished", slog.Int64(keyDuration, elapsed.Milliseconds()), slog.Bool("ok", err == nil))
	if err != nil {
		s.recorder.IncBuildOutcome(outcomeFailed)
		return nil, err
	}
	s.recorder.IncBuildOutcome(outcomeSuccess)
	return result, nil
}

func (s *Site) buildLanguage(ctx context.Context, lang Language, now time.Time) (*LanguageResult, error) {
	toHtml, err := newMarkdownRenderer(s.conf.Markdown)
	if err != nil {
		return nil, err
	}
	reader := postsReader{
		fs:        s.fs,
		dir:       filepath.Join(s.conf.ContentDir, lang.String()),
		extension: s.conf.ContentExtension,
		toHtml:    toHtml,
	}
	ps, skipped, err := reader.readPosts()
	if err != nil {
		return nil, fmt.Errorf("lang %s: reading posts: %w", lang, err)
	}

	lr := &LanguageResult{Lang: lang, Posts: len(ps), Skipped: skipped}
	outDir := filepath.Join(s.conf.OutDir, lang.String())
	w := artifactWriter{site: s, lang: lang, result: lr}

	if err := w.mkdir(outDir); err != nil {
		return nil, err
	}

	for _, p := range ps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dest := filepath.Join(outDir, p.Slug)
		if err := w.mkdir(dest); err != nil {
			return nil, err
		}
		if err := w.write(filepath.Join(dest, "index.html"), mediaTypeHTML, []byte(s.pages.renderPost(p, lang))); err != nil {
			return nil, err
		}
	}

	if err := w.write(filepath.Join(outDir, "index.html"), mediaTypeHTML, []byte(s.pages.renderIndex(ps, lang))); err != nil {
		return nil, err
	}

	feed, err := buildFeed(ps, lang, s.conf, now)
	if err != nil {
		return nil, fmt.Errorf("lang %s: rendering feed: %w", lang, err)
	}
	if err := w.write(filepath.Join(outDir, "feed.xml"), mediaTypeRSS, []byte(feed)); err != nil {
		return nil, err
	}

	if s.conf.Atom {
		atomPath := filepath.Join(outDir, "atom.xml")
		atomXml, err := renderAtom(ps, lang, s.conf, now)
		if err != nil {
			lr.Skipped = append(lr.Skipped, SkippedFile{Path: atomPath, Reason: err.Error()})
		} else if err := w.write(atomPath, mediaTypeAtom, atomXml); err != nil {
			return nil, err
		}
	}

	s.recorder.AddPostsBuilt(lang, len(ps))
	s.recorder.AddSkippedFiles(lang, len(lr.Skipped))
	slog.Info("Built posts and feed", langAttr(lang), slog.Int(keyPosts, len(ps)), slog.Int(keyArtifacts, len(lr.Artifacts)))
	return lr, nil
}

type artifactWriter struct {
	site   *Site
	lang   Language
	result *LanguageResult
}

// mkdir is idempotent: existing directories are fine.
func (w artifactWriter) mkdir(dir string) error {
	if err := w.site.fs.MkdirAll(dir, os.FileMode(0775)); err != nil {
		return &artifactError{Lang: w.lang, Path: dir, Err: err}
	}
	return nil
}

func (w artifactWriter) write(path, mediaType string, content []byte) error {
	content, err := w.site.minifier.minify(mediaType, content)
	if err != nil {
		return fmt.Errorf("lang %s: minifying %s: %w", w.lang, path, err)
	}
	if err := afero.WriteFile(w.site.fs, path, content, os.FileMode(0664)); err != nil {
		return &artifactError{Lang: w.lang, Path: path, Err: err}
	}
	w.result.Artifacts = append(w.result.Artifacts, path)
	return nil
}

// CopyStaticFiles copies the configured static directory into the output
// directory. Without a static directory there is nothing to do.
func (s *Site) CopyStaticFiles() error {
	srcDir := s.conf.StaticDir
	if srcDir == "" {
		return nil
	}
	dest := s.conf.OutDir
	slog.Info("Copying static files", keyPath, srcDir, "dest", dest)
	return copy.Copy(srcDir, dest)
}
