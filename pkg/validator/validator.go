// Package validator runs the external skill validation executable and
// captures its result. Only the exit status and the two text streams of the
// tool are consumed; its checks are owned by the tool itself.
package validator

import (
	"bytes"
	"context"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/jingkaihe/skillhook/pkg/logger"
	"github.com/jingkaihe/skillhook/pkg/osutil"
	"github.com/pkg/errors"
)

// DefaultPath is the validator location relative to the project root.
const DefaultPath = ".venv/bin/skills-ref"

// DefaultSubcommand is the first argument passed to the validator.
const DefaultSubcommand = "validate"

// ErrNotInstalled is returned when the validator cannot be resolved to an
// executable file.
var ErrNotInstalled = errors.New("validator not installed")

// Validator checks a single unit directory.
type Validator interface {
	Validate(ctx context.Context, unitDir string) (Report, error)
}

// Report is the captured result of one validator run. A nonzero ExitCode is
// a validation failure, not an error.
type Report struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Passed reports whether the validator exited with status 0
func (r Report) Passed() bool {
	return r.ExitCode == 0
}

// Combined returns stdout followed by stderr, skipping empty streams
func (r Report) Combined() string {
	var parts []string
	for _, s := range []string{r.Stdout, r.Stderr} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimRight(s, "\n"))
		}
	}
	return strings.Join(parts, "\n")
}

// Command runs an external executable as "<path> <subcommand> <unit-dir>".
type Command struct {
	path       string
	dir        string
	subcommand string
	timeout    time.Duration
}

// Option configures a Command
type Option func(*Command)

// WithDir sets the working directory of the validator and the base used to
// resolve a relative validator path.
func WithDir(dir string) Option {
	return func(c *Command) {
		c.dir = dir
	}
}

// WithTimeout bounds a validator run. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Command) {
		c.timeout = timeout
	}
}

// WithSubcommand overrides the first argument passed to the validator
func WithSubcommand(subcommand string) Option {
	return func(c *Command) {
		c.subcommand = subcommand
	}
}

// NewCommand creates a Command for the executable at path.
func NewCommand(path string, opts ...Option) *Command {
	c := &Command{
		path:       path,
		subcommand: DefaultSubcommand,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve returns the executable the command will run. Absolute paths are
// used as is, paths with a separator are joined to the working directory,
// and bare names are looked up on $PATH.
func (c *Command) Resolve() (string, error) {
	if c.path == "" {
		return "", errors.Wrap(ErrNotInstalled, "no validator path configured")
	}

	path := c.path
	if !filepath.IsAbs(path) && strings.ContainsAny(path, `/\`) && c.dir != "" {
		path = filepath.Join(c.dir, path)
	}

	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", errors.Wrapf(ErrNotInstalled, "cannot resolve %s (%v)", path, err)
	}
	return resolved, nil
}

// Validate runs the validator against unitDir and waits for it to finish.
func (c *Command) Validate(ctx context.Context, unitDir string) (Report, error) {
	executable, err := c.Resolve()
	if err != nil {
		return Report{}, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := c.command(ctx, executable, unitDir)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.G(ctx).WithField("validator", executable).WithField("unit", unitDir).Debug("running validator")

	runErr := cmd.Run()
	report := Report{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if runErr == nil {
		return report, nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		return report, errors.Errorf("validator timed out after %s", c.timeout)
	}
	if ctx.Err() != nil {
		return report, errors.Wrap(ctx.Err(), "validator run cancelled")
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		report.ExitCode = exitErr.ExitCode()
		if report.ExitCode == -1 {
			// terminated by a signal
			report.ExitCode = 1
		}
		return report, nil
	}

	if errors.Is(runErr, fs.ErrNotExist) || errors.Is(runErr, fs.ErrPermission) {
		return report, errors.Wrapf(ErrNotInstalled, "cannot start %s (%v)", executable, runErr)
	}

	return report, errors.Wrapf(runErr, "failed to run validator %s", executable)
}

// command builds the validator process. Without a timeout it stays in the
// hook's process group so signals sent by the host reach it too.
func (c *Command) command(ctx context.Context, executable, unitDir string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, executable, c.subcommand, unitDir)
	cmd.Dir = c.dir
	if c.timeout > 0 {
		osutil.SetProcessGroup(cmd)
		osutil.SetProcessGroupKill(cmd)
	}
	return cmd
}
