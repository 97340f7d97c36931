package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, page := range []string{
		"home.html", "error.html", "login.html", "register.html",
		"question_list.html", "question_detail.html", "question_form.html", "question_confirm_delete.html",
		"answer_form.html", "answer_confirm_delete.html",
		"user_detail.html", "user_form.html", "user_confirm_delete.html",
	} {
		assert.NotNil(t, tmpl.Lookup(page), page)
	}
}

func TestErrorPage(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "error.html", map[string]any{
		"title":  "Forbidden",
		"status": 403,
		"error":  "Permission denied",
	}))
	assert.Contains(t, buf.String(), "Permission denied")
}

func TestFuncMap(t *testing.T) {
	funcs := FuncMap()

	assert.Equal(t, "1,234", funcs["count"].(func(int64) string)(1234))
	plural := funcs["plural"].(func(int64, string, string) string)
	assert.Equal(t, "vote", plural(1, "vote", "votes"))
	assert.Equal(t, "votes", plural(0, "vote", "votes"))
	assert.Equal(t, 3, funcs["add"].(func(int, int) int)(1, 2))
	assert.Equal(t, "/users/alice", funcs["userpath"].(func(string) string)("alice"))
	assert.Contains(t, funcs["timeago"].(func(time.Time) string)(time.Now().Add(-2*time.Hour)), "hours ago")
}

func TestUserPath(t *testing.T) {
	assert.Equal(t, "/users/alice", UserPath("alice"))
	assert.Equal(t, "/users/a%20b", UserPath("a b"))
	assert.Equal(t, "/users/a%3Fnext=x%23top", UserPath("a?next=x#top"))
	assert.Equal(t, "/users/..%2Fadmin", UserPath("../admin"))
}

func TestProfileLinksEscapeUsername(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "user_form.html", map[string]any{
		"title": "Edit profile",
		"user":  map[string]any{"Username": "a?b c"},
	}))
	assert.Contains(t, buf.String(), `action="/users/a%3Fb%20c/edit"`)
}
