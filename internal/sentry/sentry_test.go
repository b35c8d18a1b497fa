package sentry

import (
	"testing"

	gosentry "github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
)

func TestInit_Disabled(t *testing.T) {
	assert.NoError(t, Init("1.0.0", false))
	assert.False(t, IsEnabled())
	// no-ops while disabled
	Flush()
	SetContext(AppContext{Touch: true})
}

func TestInit_EmptyDSN(t *testing.T) {
	origDSN := dsn
	dsn = ""
	defer func() { dsn = origDSN }()

	assert.NoError(t, Init("1.0.0", true))
	assert.False(t, IsEnabled())
}

func TestRedact(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`append alias "mail.example": exists`, `append alias "…": exists`},
		{`open "/home/a/vault.db" and "b"`, `open "…" and "…"`},
		{`escaped "a \"quoted\" name" done`, `escaped "…" done`},
		{"no quotes here", "no quotes here"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Redact(tt.in), tt.in)
	}
}

func TestScrubEvent(t *testing.T) {
	ev := &gosentry.Event{
		ServerName: "laptop",
		User:       gosentry.User{Username: "alice"},
		Request:    &gosentry.Request{URL: "x"},
		Message:    `remove alias "bank"`,
		Exception:  []gosentry.Exception{{Value: `open "/tmp/v.db"`}},
	}
	out := scrubEvent(ev, nil)
	assert.Empty(t, out.ServerName)
	assert.Empty(t, out.User.Username)
	assert.Nil(t, out.Request)
	assert.Equal(t, `remove alias "…"`, out.Message)
	assert.Equal(t, `open "…"`, out.Exception[0].Value)
}

func TestScrubBreadcrumb(t *testing.T) {
	b := &gosentry.Breadcrumb{Message: `close "x"`, Data: map[string]interface{}{"k": "v"}}
	out := scrubBreadcrumb(b, nil)
	assert.Equal(t, `close "…"`, out.Message)
	assert.Nil(t, out.Data)
}

func TestAppContext_Tags(t *testing.T) {
	tags := AppContext{Touch: true, VaultExists: true}.tags()
	assert.Equal(t, map[string]string{
		"touch":        "true",
		"keyboard":     "false",
		"vault_exists": "true",
	}, tags)
}
