package hooks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jingkaihe/skillhook/pkg/hooklog"
	"github.com/jingkaihe/skillhook/pkg/logger"
	"github.com/jingkaihe/skillhook/pkg/presenter"
	"github.com/jingkaihe/skillhook/pkg/skills"
	"github.com/jingkaihe/skillhook/pkg/validator"
	"github.com/pkg/errors"
)

// Handler maps one hook event to one Result. It never changes the process
// working directory; every relative path is joined to the project root.
type Handler struct {
	root      string
	scope     Scope
	validator validator.Validator
	log       hooklog.Sink
	presenter presenter.Presenter
}

// Option configures a Handler
type Option func(*Handler)

// WithScope sets the scope root the hook reacts to
func WithScope(scope Scope) Option {
	return func(h *Handler) {
		h.scope = scope
	}
}

// WithLog sets the diagnostic log sink
func WithLog(sink hooklog.Sink) Option {
	return func(h *Handler) {
		h.log = sink
	}
}

// WithPresenter sets where host-facing messages are written
func WithPresenter(p presenter.Presenter) Option {
	return func(h *Handler) {
		h.presenter = p
	}
}

// NewHandler creates a Handler for the project rooted at root.
func NewHandler(root string, v validator.Validator, opts ...Option) *Handler {
	h := &Handler{
		root:      root,
		scope:     NewScope(DefaultScopeRoot),
		validator: v,
		log:       hooklog.Discard,
		presenter: presenter.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle processes one raw hook event. Every decision is appended to the
// diagnostic log as it is made.
func (h *Handler) Handle(ctx context.Context, raw []byte) Result {
	h.log.Begin(string(raw))
	defer h.log.End()

	result := h.handle(ctx, raw)

	logger.G(ctx).
		WithField("outcome", result.Kind.String()).
		WithField("unit", result.Unit).
		WithField("reason", result.Reason).
		Debug("hook finished")

	return result
}

func (h *Handler) handle(ctx context.Context, raw []byte) Result {
	payload, err := DecodePayload(raw)
	if err != nil {
		h.log.Printf("Skipping: could not parse hook input: %v", err)
		return Skipped("invalid input")
	}

	filePath, ok := payload.FilePath()
	if !ok {
		h.log.Printf("Skipping: no file path in hook input")
		return Skipped("no file path")
	}

	relPath := filepath.ToSlash(RelativePath(filePath, payload.Cwd()))
	if tool := payload.ToolName(); tool != "" {
		h.log.Printf("Tool: %s", tool)
	}
	h.log.Printf("File: %s", relPath)

	if !h.scope.Contains(relPath) {
		h.log.Printf("Skipping: %s is not under %s", relPath, h.scope.Root())
		return Skipped("out of scope")
	}

	unit, ok := h.scope.UnitDir(relPath)
	if !ok {
		h.log.Printf("Skipping: no skill directory in %s", relPath)
		return Skipped("no skill directory")
	}

	info, err := os.Stat(filepath.Join(h.root, filepath.FromSlash(unit)))
	if err != nil || !info.IsDir() {
		h.log.Printf("Skill directory not found: %s", unit)
		return Result{Kind: KindSkipped, Unit: unit, Reason: "skill directory not found"}
	}

	if skill, err := skills.Load(h.root, unit); err == nil {
		h.log.Printf("Skill: %s", skill.Name)
	} else {
		logger.G(ctx).WithError(err).WithField("unit", unit).Debug("no skill metadata")
	}

	return h.delegate(ctx, unit)
}

// delegate runs the validator and converts every way it can go wrong into a
// Result. A panicking validator is reported as a warning.
func (h *Handler) delegate(ctx context.Context, unit string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.Errorf("validator panicked: %v", r)
			result = h.warn(ctx, unit, err)
		}
	}()

	h.log.Printf("Validating skill: %s", unit)

	report, err := h.validator.Validate(ctx, unit)
	if err != nil {
		if errors.Is(err, validator.ErrNotInstalled) {
			h.log.Printf("Warning: skill validator not installed, skipping validation (%v)", err)
			h.presenter.Warning(fmt.Sprintf("Skill validator not installed, skipping validation of %s", unit))
			return Warned(unit, "validator not installed")
		}
		return h.warn(ctx, unit, err)
	}

	h.log.Output(report.Stdout)
	h.log.Output(report.Stderr)
	h.presenter.Raw(report.Stdout)
	h.presenter.Raw(report.Stderr)

	if report.Passed() {
		h.log.Printf("Validation passed: %s", unit)
		h.presenter.Success(fmt.Sprintf("Skill validation passed: %s", unit))
		return Result{Kind: KindPassed, Unit: unit, Report: &report}
	}

	h.log.Printf("Validation failed (exit %d): %s", report.ExitCode, unit)
	h.presenter.Error(
		errors.Errorf("validator exited with status %d", report.ExitCode),
		fmt.Sprintf("Skill validation failed for %s", unit),
	)
	return Result{Kind: KindBlocked, Unit: unit, Reason: "validation failed", Report: &report}
}

func (h *Handler) warn(ctx context.Context, unit string, err error) Result {
	h.log.Printf("Warning: skill validation could not run: %v", err)
	h.presenter.Warning(fmt.Sprintf("Skill validation could not run for %s: %v", unit, err))
	logger.G(ctx).WithError(err).WithField("unit", unit).Warn("skill validation could not run")
	return Warned(unit, err.Error())
}
