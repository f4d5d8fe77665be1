// Package hooklog implements the append-only diagnostic log written by the
// hook. A record is a timestamped header, the raw input, status lines and a
// trailing separator. The file is opened, appended to and closed on every
// write; no handle outlives a single write.
package hooklog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jingkaihe/skillhook/pkg/logger"
	"github.com/pkg/errors"
	"github.com/rogpeppe/go-internal/lockedfile"
)

// Separator terminates every record.
const Separator = "----------------------------------------"

// Sink receives the diagnostic record of a single hook invocation.
// Implementations must not fail the caller; write errors are reported
// through the logger only.
type Sink interface {
	// Begin writes the record header and the raw input.
	Begin(input string)
	// Printf appends a single status line.
	Printf(format string, args ...any)
	// Output appends captured subprocess text under an OUTPUT: marker.
	Output(text string)
	// End writes the trailing separator.
	End()
}

// File is a Sink backed by a plain-text file that is created lazily.
type File struct {
	path  string
	title string
	now   func() time.Time
}

// Option configures a File sink
type Option func(*File)

// WithTitle sets the label printed in each record header
func WithTitle(title string) Option {
	return func(f *File) {
		f.title = title
	}
}

// WithClock overrides the time source used for record headers
func WithClock(now func() time.Time) Option {
	return func(f *File) {
		f.now = now
	}
}

// NewFile returns a File sink appending to path.
func NewFile(path string, opts ...Option) *File {
	f := &File{
		path:  path,
		title: "skillhook",
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the log file location
func (f *File) Path() string {
	return f.path
}

// Begin implements Sink
func (f *File) Begin(input string) {
	header := fmt.Sprintf("[%s] %s\n", f.now().Format(time.RFC3339), f.title)
	f.write(header + "INPUT: " + strings.TrimRight(input, "\r\n") + "\n")
}

// Printf implements Sink
func (f *File) Printf(format string, args ...any) {
	f.write(strings.TrimRight(fmt.Sprintf(format, args...), "\n") + "\n")
}

// Output implements Sink
func (f *File) Output(text string) {
	if text == "" {
		return
	}
	f.write("OUTPUT:\n" + strings.TrimRight(text, "\n") + "\n")
}

// End implements Sink
func (f *File) End() {
	f.write(Separator + "\n")
}

func (f *File) write(text string) {
	if err := f.append(text); err != nil {
		logger.L.WithError(err).WithField("path", f.path).Warn("failed to write hook log")
	}
}

func (f *File) append(text string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create log directory")
	}

	file, err := lockedfile.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "failed to open log file")
	}
	defer file.Close()

	if _, err := file.WriteString(text); err != nil {
		return errors.Wrap(err, "failed to append to log file")
	}
	return nil
}

// Discard is a Sink that drops everything
var Discard Sink = discard{}

type discard struct{}

func (discard) Begin(string) {}
func (discard) Printf(string, ...any) {}
func (discard) Output(string) {}
func (discard) End() {}
