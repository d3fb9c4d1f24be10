// Package calculator binds the compound-interest engine, the share token codec
// and an undo history into a single calculator session. It plays the role of
// the form and address-bar adapter: edits go in, the result and the token to
// publish come out.
package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/finance-calculators/pkg/compound"
	"github.com/iwvelando/finance-calculators/pkg/format"
	"github.com/iwvelando/finance-calculators/pkg/history"
	"github.com/iwvelando/finance-calculators/pkg/sharestate"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

var (
	// ErrInvalidInputs wraps validation failures returned by Apply and Set.
	ErrInvalidInputs = errors.New("invalid calculator inputs")

	// ErrResultOverflow is returned by Report when the future value does not
	// fit in a float64.
	ErrResultOverflow = errors.New("result is too large to represent")
)

// Report is a snapshot of a session suitable for rendering.
type Report struct {
	Inputs      compound.Inputs   `json:"inputs"`
	Result      float64           `json:"result"`
	Token       string            `json:"token"`
	ShareURL    string            `json:"shareUrl,omitempty"`
	Description string            `json:"description"`
	Schedule    []compound.Period `json:"schedule,omitempty"`
	Warnings    []string          `json:"warnings,omitempty"`
}

// Session is one calculator's state. It is not safe for concurrent use.
type Session struct {
	logger   *zap.Logger
	history  *history.History
	result   float64
	token    string
	baseURL  string
	warnings []string
}

// Option configures a Session.
type Option func(*Session)

// WithHistoryLimit bounds the number of undo steps.
func WithHistoryLimit(limit int) Option {
	return func(s *Session) {
		s.history = history.New(s.history.Current(), limit)
	}
}

// WithBaseURL sets the link that share URLs are built from.
func WithBaseURL(base string) Option {
	return func(s *Session) {
		s.baseURL = base
	}
}

// WithInputs starts the session from in instead of the defaults. Invalid
// inputs are ignored with a warning.
func WithInputs(in compound.Inputs) Option {
	return func(s *Session) {
		if err := validation.ValidateInputs(in); err != nil {
			s.logger.Warn("ignoring invalid initial inputs",
				zap.String("op", "calculator.WithInputs"),
				zap.Error(err),
			)
			s.warnings = append(s.warnings, err.Error())
			return
		}
		s.history.Reset(in)
	}
}

// New creates a session starting from the default inputs.
func New(logger *zap.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		logger:  logger,
		history: history.New(compound.DefaultInputs(), history.DefaultLimit),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recompute()
	return s
}

// Inputs returns the current inputs.
func (s *Session) Inputs() compound.Inputs { return s.history.Current() }

// Result returns the future value for the current inputs.
func (s *Session) Result() float64 { return s.result }

// Token returns the share token for the current inputs.
func (s *Session) Token() string { return s.token }

// Warnings returns the problems found while loading state, if any.
func (s *Session) Warnings() []string { return append([]string(nil), s.warnings...) }

// Description renders the result sentence for the current inputs.
func (s *Session) Description() string {
	return format.Describe(s.Inputs(), s.result)
}

// Schedule returns the year-by-year breakdown for the current inputs.
func (s *Session) Schedule() []compound.Period {
	return s.Inputs().Schedule()
}

// ShareURL returns the configured base URL carrying the current token. It is
// empty when no base URL was configured.
func (s *Session) ShareURL() (string, error) {
	if s.baseURL == "" {
		return "", nil
	}
	return sharestate.ShareURL(s.baseURL, s.Inputs())
}

// Set parses raw form text for one field and applies it.
func (s *Session) Set(field, raw string) error {
	value, err := validation.ParseField(field, raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInputs, err)
	}
	next, err := validation.SetField(s.Inputs(), field, value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInputs, err)
	}
	s.push(next)
	return nil
}

// Apply replaces every field at once.
func (s *Session) Apply(in compound.Inputs) error {
	if err := validation.ValidateInputs(in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInputs, err)
	}
	s.push(in)
	return nil
}

// Load restores the session from a share token. Fields that cannot be read
// fall back to their defaults and are reported as warnings. The undo history
// restarts at the restored inputs.
func (s *Session) Load(token string) {
	in, issues := sharestate.DecodeDetailed(token)
	s.restore(in, issues, "calculator.Load")
}

// LoadURL restores the session from a full shareable link.
func (s *Session) LoadURL(rawURL string) error {
	in, issues, err := sharestate.DecodeURL(rawURL)
	if err != nil {
		return err
	}
	s.restore(in, issues, "calculator.LoadURL")
	return nil
}

// Undo reverts the last change.
func (s *Session) Undo() bool {
	if _, ok := s.history.Undo(); !ok {
		return false
	}
	s.recompute()
	return true
}

// Redo re-applies the last undone change.
func (s *Session) Redo() bool {
	if _, ok := s.history.Redo(); !ok {
		return false
	}
	s.recompute()
	return true
}

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Report snapshots the session.
func (s *Session) Report(includeSchedule bool) (Report, error) {
	if math.IsInf(s.result, 0) || math.IsNaN(s.result) {
		return Report{}, fmt.Errorf("%w: %s", ErrResultOverflow, s.token)
	}
	shareURL, err := s.ShareURL()
	if err != nil {
		return Report{}, err
	}
	report := Report{
		Inputs:      s.Inputs(),
		Result:      s.result,
		Token:       s.token,
		ShareURL:    shareURL,
		Description: s.Description(),
		Warnings:    s.Warnings(),
	}
	if includeSchedule {
		report.Schedule = s.Schedule()
	}
	return report, nil
}

func (s *Session) push(next compound.Inputs) {
	if s.history.Push(next) {
		s.recompute()
	}
}

func (s *Session) restore(in compound.Inputs, issues []sharestate.FieldIssue, op string) {
	s.warnings = s.warnings[:0]
	for _, issue := range issues {
		if sharestate.IsMissing(issue) {
			s.logger.Debug("share token field missing",
				zap.String("op", op),
				zap.String("field", issue.Field),
			)
			continue
		}
		s.logger.Warn("share token field invalid",
			zap.String("op", op),
			zap.String("field", issue.Field),
			zap.String("value", issue.Value),
			zap.String("reason", issue.Reason),
		)
		s.warnings = append(s.warnings, issue.String())
	}
	s.history.Reset(in)
	s.recompute()
}

func (s *Session) recompute() {
	in := s.Inputs()
	s.result = in.Result()
	s.token = sharestate.Encode(in)
	s.logger.Debug("calculation updated",
		zap.String("op", "calculator.recompute"),
		zap.String("token", s.token),
		zap.Float64("result", s.result),
	)
}
