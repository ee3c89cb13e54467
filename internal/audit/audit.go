// Package audit appends one NDJSON line per mpy-cross invocation to a
// daily log file. Writing is best effort and never fails a compilation.
package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hyperifyio/mpycross"
)

// timeNow is a package-level clock to enable deterministic tests.
var timeNow = time.Now

// Entry is the on-disk audit record.
type Entry struct {
	TS          string   `json:"ts"`
	Tool        string   `json:"tool"`
	Argv        []string `json:"argv"`
	CWD         string   `json:"cwd"`
	Exit        int      `json:"exit"`
	MS          int64    `json:"ms"`
	OutputBytes int      `json:"outputBytes"`
}

// Writer appends entries under Dir/YYYYMMDD.log.
type Writer struct {
	Dir string
	// Logger receives write failures at warn level; nil drops them.
	Logger *log.Logger

	mu sync.Mutex
}

// New returns a Writer rooted at dir.
func New(dir string, logger *log.Logger) *Writer {
	return &Writer{Dir: dir, Logger: logger}
}

// Observe records inv. It matches mpycross.Invoker.Observer.
func (w *Writer) Observe(inv mpycross.Invocation) {
	pats := envPatterns()
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	entry := Entry{
		TS:          timeNow().UTC().Format(time.RFC3339Nano),
		Tool:        redactString(inv.Binary, pats),
		Argv:        redactStrings(inv.Args, pats),
		CWD:         redactString(cwd, pats),
		Exit:        inv.ExitCode,
		MS:          inv.Duration.Milliseconds(),
		OutputBytes: inv.OutputBytes,
	}
	if err := w.append(entry); err != nil && w.Logger != nil {
		w.Logger.Warn("audit write failed", "dir", w.Dir, "err", err)
	}
}

func (w *Writer) append(entry Entry) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(w.Dir, timeNow().UTC().Format("20060102")+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
