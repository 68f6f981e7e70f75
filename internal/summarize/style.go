package summarize

import (
	"strconv"
	"strings"
)

// Style selects the structure of a generated summary.
type Style int

const (
	StyleGeneral  Style = iota // flowing overview
	StyleArticle               // title, intro, main points, conclusion
	StyleProject               // purpose, steps, results, implications
	StyleBullets               // 5-10 numbered key points
	StyleResearch              // abstract plus keywords
	StyleResume                // professional profile
)

// Styles lists every style in menu order; menu number i+1 selects Styles[i].
var Styles = []Style{StyleGeneral, StyleArticle, StyleProject, StyleBullets, StyleResearch, StyleResume}

// String returns the canonical selector name.
func (s Style) String() string {
	switch s {
	case StyleArticle:
		return "article"
	case StyleProject:
		return "project"
	case StyleBullets:
		return "bullets"
	case StyleResearch:
		return "research"
	case StyleResume:
		return "resume"
	default:
		return "general"
	}
}

// Label is the human-readable name shown in menus.
func (s Style) Label() string {
	switch s {
	case StyleArticle:
		return "Article"
	case StyleProject:
		return "Project report"
	case StyleBullets:
		return "Key points"
	case StyleResearch:
		return "Research abstract"
	case StyleResume:
		return "Resume profile"
	default:
		return "General overview"
	}
}

var styleAliases = map[string]Style{
	"general":  StyleGeneral,
	"overview": StyleGeneral,
	"article":  StyleArticle,
	"project":  StyleProject,
	"report":   StyleProject,
	"bullets":  StyleBullets,
	"bullet":   StyleBullets,
	"points":   StyleBullets,
	"research": StyleResearch,
	"abstract": StyleResearch,
	"resume":   StyleResume,
	"profile":  StyleResume,
}

// ParseStyle accepts a selector name, alias or menu number ("1".."6").
// Anything unrecognized is StyleGeneral.
func ParseStyle(selector string) Style {
	key := strings.ToLower(strings.TrimSpace(selector))
	if style, ok := styleAliases[key]; ok {
		return style
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(Styles) {
		return Styles[n-1]
	}
	return StyleGeneral
}
