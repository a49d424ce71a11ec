package main

import (
	"errors"
	"log/slog"
	"time"

	atom "github.com/thomas11/atomgenerator"
)

// renderAtom builds the Atom companion of a language's RSS feed.
func renderAtom(ps posts, lang Language, conf *SiteConf, now time.Time) ([]byte, error) {
	updated := ps.latestDate()
	if updated.IsZero() {
		updated = now
	}

	feed := atom.Feed{
		Title:   feedTitle(conf, lang),
		Link:    conf.blogRoot(lang),
		PubDate: updated,
	}
	feed.AddAuthor(atom.Author{
		Name: conf.SiteName,
		Uri:  conf.BaseURL + "/",
	})

	for _, p := range ps {
		feed.AddEntry(entryForPost(p, lang, conf, now))
	}

	if errs := feed.Validate(); len(errs) > 0 {
		slog.Warn("Atom feed is not valid", langAttr(lang), keyError, errors.Join(errs...))
		return nil, errs[0]
	}

	return feed.GenXml()
}

func entryForPost(p *post, lang Language, conf *SiteConf, now time.Time) *atom.Entry {
	pubDate := p.Published
	if pubDate.IsZero() {
		pubDate = now
	}
	return &atom.Entry{
		Title:       p.Title,
		Description: p.summary(),
		Link:        conf.postURL(lang, p.Slug),
		PubDate:     pubDate,
		Content:     p.BodyHTML,
	}
}
