package main

import "fmt"

// Language is one of the locales the blog is published in.
type Language string

const (
	LangDE Language = "de"
	LangEN Language = "en"
)

// supportedLanguages is the build order. Extending the blog to another locale
// means a new constant, an entry here and a record in languageLabels.
var supportedLanguages = []Language{LangDE, LangEN}

func (l Language) String() string { return string(l) }

type labels struct {
	HTMLLang     string
	SiteName     string
	Home         string
	ProjectPower string
	Blog         string
	Imprint      string
	LightMode    string
	Description  string
	NoPosts      string
}

var languageLabels = map[Language]labels{
	LangDE: {
		HTMLLang:     "de",
		SiteName:     "365cloud.ai ─ Engineering Digital Transformations",
		Home:         "Startseite",
		ProjectPower: "Projekt Power",
		Blog:         "Blog",
		Imprint:      "Impressum",
		LightMode:    "Helles Design",
		Description:  "Consulting für Microsoft 365, Power Platform, Azure Cloud und Azure AI.",
		NoPosts:      "Noch keine Beiträge.",
	},
	LangEN: {
		HTMLLang:     "en",
		SiteName:     "365cloud.ai ─ Engineering Digital Transformations",
		Home:         "Home",
		ProjectPower: "Project Power",
		Blog:         "Blog",
		Imprint:      "Imprint",
		LightMode:    "Light mode",
		Description:  "Consulting for Microsoft 365, Power Platform, Azure Cloud and Azure AI.",
		NoPosts:      "No posts yet.",
	},
}

// labelsFor falls back to English for a language without its own table.
func labelsFor(l Language) labels {
	if lb, ok := languageLabels[l]; ok {
		return lb
	}
	return languageLabels[LangEN]
}

func parseLanguage(code string) (Language, error) {
	for _, l := range supportedLanguages {
		if string(l) == code {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q", code)
}

// parseLanguages maps CLI codes to languages. No codes means all of them.
func parseLanguages(codes []string) ([]Language, error) {
	if len(codes) == 0 {
		return append([]Language(nil), supportedLanguages...), nil
	}
	langs := make([]Language, 0, len(codes))
	seen := make(map[Language]bool, len(codes))
	for _, c := range codes {
		l, err := parseLanguage(c)
		if err != nil {
			return nil, err
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		langs = append(langs, l)
	}
	return langs, nil
}
