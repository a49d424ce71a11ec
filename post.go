package main

import (
	"bytes"
	"slices"
	"time"
)

type post struct {
	Title, Slug, Description string
	// Date is the front matter value as written; Published is its parsed
	// form and stays zero for undated or unparseable posts.
	Date       string
	Published  time.Time
	BodyHTML   string
	PlainText  string
	SourcePath string
}

func (p *post) String() string {
	b := new(bytes.Buffer)
	b.WriteString("title: ")
	b.WriteString(p.Title)
	b.WriteString("\nslug: ")
	b.WriteString(p.Slug)
	b.WriteString("\ndate: ")
	b.WriteString(p.Date)
	b.WriteString("\ndescription: ")
	b.WriteString(p.Description)

	body := p.PlainText
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	b.WriteString("\nbody: ")
	b.WriteString(body)

	return b.String()
}

type posts []*post

// sortNewestFirst orders by publish date, undated posts last. The sort is
// stable so equal dates keep the order the files were read in.
func (ps posts) sortNewestFirst() {
	slices.SortStableFunc(ps, func(a, b *post) int {
		return b.Published.Compare(a.Published)
	})
}

func (ps posts) latestDate() time.Time {
	var t time.Time
	for _, p := range ps {
		if p.Published.After(t) {
			t = p.Published
		}
	}
	return t
}
