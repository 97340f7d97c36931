package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mergestat/timediff"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates. Pages are addressed by file
// name, e.g. "question_list.html".
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// UserPath is the profile location for username.
func UserPath(username string) string {
	return "/users/" + url.PathEscape(username)
}

// FuncMap holds the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"timeago": func(t time.Time) string {
			return timediff.TimeDiff(t)
		},
		"count": func(n int64) string {
			return humanize.Comma(n)
		},
		"plural": func(n int64, singular, plural string) string {
			if n == 1 {
				return singular
			}
			return plural
		},
		"add": func(a, b int) int {
			return a + b
		},
		"userpath": UserPath,
	}
}
