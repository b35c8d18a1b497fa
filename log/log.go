package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/uvizhe/psh-gui/internal/sentry"
)

var (
	WarningLog *log.Logger
	InfoLog    *log.Logger
	ErrorLog   *log.Logger
)

var logFileName = filepath.Join(os.TempDir(), "psh.log")

var globalLogFile *os.File

// Initialize should be called once at the beginning of the program to set up logging.
// defer Close() after calling this function. It sets the go log output to the file in
// the os temp directory. When telemetry is enabled, every logger also feeds the sentry
// writer (errors become events, the rest become breadcrumbs).
func Initialize(telemetry bool) {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		panic(fmt.Sprintf("could not open log file: %s", err))
	}
	globalLogFile = f

	var out io.Writer = f
	newLogger := func(prefix string, level sentry.Level) *log.Logger {
		w := out
		if telemetry {
			w = sentry.NewWriter(out, level)
		}
		return log.New(w, prefix, log.Ldate|log.Ltime|log.Lshortfile)
	}

	InfoLog = newLogger("INFO:", sentry.LevelInfo)
	WarningLog = newLogger("WARNING:", sentry.LevelWarning)
	ErrorLog = newLogger("ERROR:", sentry.LevelError)

	log.SetOutput(f)
}

// Close flushes and closes the log file. Call it once the alt screen is gone so the
// path hint lands on the user's terminal.
func Close() {
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
	fmt.Println("wrote logs to " + logFileName)
}

// FileName returns the path of the log file.
func FileName() string {
	return logFileName
}

// Every is used to log at most once every timeout duration.
type Every struct {
	mu       sync.Mutex
	timeout  time.Duration
	lastFire time.Time
}

func NewEvery(timeout time.Duration) *Every {
	return &Every{timeout: timeout}
}

// ShouldLog returns true if the timeout has passed since the last log.
func (e *Every) ShouldLog() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := time.Now()
	if now.Sub(e.lastFire) < e.timeout {
		return false
	}
	e.lastFire = now
	return true
}
