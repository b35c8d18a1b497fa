package sentry

import (
	"os"
	"regexp"
	"runtime"
	"strconv"
	"time"

	gosentry "github.com/getsentry/sentry-go"
)

// dsnEnv names the environment variable holding the DSN. There is no built-in
// DSN, so reports go nowhere unless the user sets one.
const dsnEnv = "PSH_SENTRY_DSN"

const (
	flushTimeout   = 2 * time.Second
	maxBreadcrumbs = 30
)

// dsn is a package-level var so tests can override it.
var dsn = os.Getenv(dsnEnv)

// enabled tracks whether sentry was successfully initialized.
var enabled bool

// Init starts the Sentry client when telemetry is on and a DSN is set.
// Otherwise every function in this package is a no-op.
func Init(version string, telemetryEnabled bool) error {
	if !telemetryEnabled || dsn == "" {
		enabled = false
		return nil
	}

	err := gosentry.Init(gosentry.ClientOptions{
		Dsn:              dsn,
		Release:          "psh@" + version,
		AttachStacktrace: true,
		SendDefaultPII:   false,
		MaxBreadcrumbs:   maxBreadcrumbs,
		BeforeSend:       scrubEvent,
		BeforeBreadcrumb: scrubBreadcrumb,
	})
	if err != nil {
		return err
	}

	gosentry.ConfigureScope(func(scope *gosentry.Scope) {
		scope.SetTags(map[string]string{
			"os":         runtime.GOOS,
			"arch":       runtime.GOARCH,
			"go_version": runtime.Version(),
		})
	})

	enabled = true
	return nil
}

// quoted matches Go-quoted strings as produced by %q.
var quoted = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)

// Redact blanks every quoted string in msg. File paths are logged quoted.
func Redact(msg string) string {
	return quoted.ReplaceAllString(msg, `"…"`)
}

// scrubEvent drops machine and user identifiers and redacts message text.
func scrubEvent(event *gosentry.Event, _ *gosentry.EventHint) *gosentry.Event {
	event.ServerName = ""
	event.User = gosentry.User{}
	event.Request = nil
	event.Message = Redact(event.Message)
	for i := range event.Exception {
		event.Exception[i].Value = Redact(event.Exception[i].Value)
	}
	return event
}

func scrubBreadcrumb(b *gosentry.Breadcrumb, _ *gosentry.BreadcrumbHint) *gosentry.Breadcrumb {
	b.Message = Redact(b.Message)
	b.Data = nil
	return b
}

// IsEnabled returns whether sentry is active.
func IsEnabled() bool {
	return enabled
}

// Flush waits for buffered events to be sent.
func Flush() {
	if !enabled {
		return
	}
	gosentry.Flush(flushTimeout)
}

// RecoverPanic reports a panic, flushes, then re-panics.
// Usage: defer sentry.RecoverPanic()
func RecoverPanic() {
	if !enabled {
		return
	}
	if err := recover(); err != nil {
		gosentry.CurrentHub().Recover(err)
		gosentry.Flush(flushTimeout)
		panic(err)
	}
}

// AppContext is the startup state attached to every report.
type AppContext struct {
	Touch       bool
	Keyboard    bool
	VaultExists bool
}

func (c AppContext) tags() map[string]string {
	return map[string]string{
		"touch":        strconv.FormatBool(c.Touch),
		"keyboard":     strconv.FormatBool(c.Keyboard),
		"vault_exists": strconv.FormatBool(c.VaultExists),
	}
}

// SetContext tags the current scope with c.
func SetContext(c AppContext) {
	if !enabled {
		return
	}
	gosentry.ConfigureScope(func(scope *gosentry.Scope) {
		scope.SetTags(c.tags())
	})
}
