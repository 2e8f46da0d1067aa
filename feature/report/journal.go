package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"report-reconciler/core/outcome"
	"report-reconciler/core/output"
)

// Separator opens every run section of the log.
var Separator = strings.Repeat("-", 37)

// DefaultTimeFormat is the timestamp layout used when none is configured.
const DefaultTimeFormat = "2006-01-02 15:04:05.000000"

// Run identifies one reconciliation run in the log.
type Run struct {
	ID       string
	Vendor   string
	Filename string
	Started  time.Time
}

// Journal is the run log. Writes are sticky on error: after the first failure
// nothing else is written and every later call returns that error.
type Journal struct {
	path       string
	file       *os.File
	console    io.Writer
	messages   outcome.Messages
	timeFormat string
	fresh      bool
	err        error
}

// OpenJournal opens the run log at path, creating missing folders. With truncate
// the previous content is discarded, otherwise new sections are appended.
func OpenJournal(path string, truncate bool) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log folder: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log %s: %w", path, err)
	}

	return &Journal{
		path:       path,
		file:       f,
		messages:   outcome.DefaultMessages(),
		timeFormat: DefaultTimeFormat,
		fresh:      truncate,
	}, nil
}

// Path returns the location of the log.
func (j *Journal) Path() string {
	return j.path
}

// SetConsole echoes every line to w. A nil writer disables the echo.
func (j *Journal) SetConsole(w io.Writer) {
	j.console = w
}

// SetMessages replaces the outcome messages.
func (j *Journal) SetMessages(m outcome.Messages) {
	j.messages = m
}

// SetTimeFormat replaces the layout of section timestamps.
func (j *Journal) SetTimeFormat(layout string) {
	if layout != "" {
		j.timeFormat = layout
	}
}

// Begin writes the header of a run section.
func (j *Journal) Begin(run Run) error {
	if j.fresh {
		j.write(fmt.Sprintf("Test results for '%s'\n", run.Vendor))
		j.fresh = false
	}
	j.write("\n\n" + Separator + "\n")
	j.linef("Test results for '%s' - '%s' - %s (run %s)", run.Vendor, run.Filename, run.Started.Format(j.timeFormat), run.ID)
	return j.err
}

// Abort narrates an error that stopped the run before any stage ran.
func (j *Journal) Abort(err error) error {
	j.linef("ERROR: %v", err)
	j.message(outcome.InputUnavailable)
	return j.err
}

// Close releases the log file. It returns the first write error, if any.
func (j *Journal) Close() error {
	if j.file == nil {
		return j.err
	}
	err := j.file.Close()
	j.file = nil
	return errors.Join(j.err, err)
}

func (j *Journal) message(o outcome.Outcome) {
	j.line(j.messages.Text(o))
}

func (j *Journal) linef(format string, args ...any) {
	j.line(fmt.Sprintf(format, args...))
}

func (j *Journal) line(s string) {
	j.write(s + "\n")
}

// table renders a text table into the log.
func (j *Journal) table(data output.Data) {
	if j.err != nil {
		return
	}
	var b strings.Builder
	if err := output.RenderTable(&b, data); err != nil {
		j.err = fmt.Errorf("failed to render table: %w", err)
		return
	}
	j.write(b.String())
}

func (j *Journal) write(s string) {
	if j.err != nil {
		return
	}
	if j.file == nil {
		j.err = errors.New("run log is closed")
		return
	}
	if _, err := io.WriteString(j.file, s); err != nil {
		j.err = fmt.Errorf("failed to write run log: %w", err)
		return
	}
	if j.console != nil {
		_, _ = io.WriteString(j.console, s)
	}
}
