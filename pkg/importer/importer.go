// Package importer runs the strain import pipeline: optional template check,
// local extraction, optional LLM extraction, merge and review scoring.
//
// The LLM is a collaborator that may fail at any time. A failed LLM call never
// fails an import; the local candidate is used and the failure is reported in
// the Result.
package importer

import (
	"context"
	"strings"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agentstation/strainmap/pkg/errors"
	"github.com/agentstation/strainmap/pkg/logging"
	"github.com/agentstation/strainmap/pkg/parser"
	"github.com/agentstation/strainmap/pkg/reconciler"
	"github.com/agentstation/strainmap/pkg/strains"
	"github.com/agentstation/strainmap/pkg/template"
)

// Extractor maps free text onto one untyped profile candidate.
type Extractor interface {
	Extract(ctx context.Context, text string) (strains.Candidate, error)
}

// Researcher looks up strain names and returns one candidate per profile found.
type Researcher interface {
	Research(ctx context.Context, names []string) ([]strains.Candidate, error)
}

// Status describes which candidates produced the merged profile.
type Status string

// Import statuses.
const (
	// StatusLocal means only the local parser ran.
	StatusLocal Status = "local"
	// StatusMerged means the LLM candidate was merged over the local one.
	StatusMerged Status = "merged"
	// StatusFallback means the LLM was requested but failed.
	StatusFallback Status = "fallback"
)

// Result is the outcome of one import.
type Result struct {
	Local    strains.Profile        `json:"local" yaml:"local"`
	LLM      *strains.Profile       `json:"llm,omitempty" yaml:"llm,omitempty"`
	Merged   strains.Profile        `json:"merged" yaml:"merged"`
	UsedLLM  bool                   `json:"usedLlm" yaml:"usedLlm"`
	LLMError string                 `json:"llmError,omitempty" yaml:"llmError,omitempty"`
	Rows     []reconciler.ReviewRow `json:"rows" yaml:"rows"`
	Summary  reconciler.Summary     `json:"summary" yaml:"summary"`
	Status   Status                 `json:"status" yaml:"status"`
}

// Importer runs imports and research requests.
type Importer struct {
	extractor        Extractor
	researcher       Researcher
	useLLM           bool
	validateTemplate bool
	logger           *zerolog.Logger
	clock            strains.Clock
}

// Option configures an Importer.
type Option func(*Importer) error

// WithExtractor sets the LLM extractor.
func WithExtractor(e Extractor) Option {
	return func(i *Importer) error {
		if e == nil {
			return &errors.ValidationError{
				Field:   "extractor",
				Message: "cannot be nil",
			}
		}
		i.extractor = e
		return nil
	}
}

// WithResearcher sets the LLM researcher.
func WithResearcher(r Researcher) Option {
	return func(i *Importer) error {
		if r == nil {
			return &errors.ValidationError{
				Field:   "researcher",
				Message: "cannot be nil",
			}
		}
		i.researcher = r
		return nil
	}
}

// WithLLM enables or disables the LLM step of Import. Enabled by default;
// it only runs when an extractor is configured.
func WithLLM(enabled bool) Option {
	return func(i *Importer) error {
		i.useLLM = enabled
		return nil
	}
}

// WithTemplateValidation rejects import text that lacks required template labels.
func WithTemplateValidation(enabled bool) Option {
	return func(i *Importer) error {
		i.validateTemplate = enabled
		return nil
	}
}

// WithLogger sets the logger. Defaults to the logger in the request context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(i *Importer) error {
		if logger == nil {
			return &errors.ValidationError{
				Field:   "logger",
				Message: "cannot be nil",
			}
		}
		i.logger = logger
		return nil
	}
}

// WithClock sets the clock used for createdAt stamps.
func WithClock(clock strains.Clock) Option {
	return func(i *Importer) error {
		if clock == nil {
			return &errors.ValidationError{
				Field:   "clock",
				Message: "cannot be nil",
			}
		}
		i.clock = clock
		return nil
	}
}

// New creates an Importer.
func New(opts ...Option) (*Importer, error) {
	i := &Importer{
		useLLM: true,
		clock:  utc.Now,
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	return i, nil
}

// LLMEnabled reports whether Import will call the extractor.
func (i *Importer) LLMEnabled() bool {
	return i.useLLM && i.extractor != nil
}

// Import extracts a profile from text with the configured LLM setting.
func (i *Importer) Import(ctx context.Context, text string) (*Result, error) {
	return i.run(ctx, text, i.useLLM)
}

// ImportLocal extracts a profile with the local parser only.
func (i *Importer) ImportLocal(ctx context.Context, text string) (*Result, error) {
	return i.run(ctx, text, false)
}

func (i *Importer) run(ctx context.Context, text string, useLLM bool) (*Result, error) {
	ctx = i.scope(ctx, "import")
	logger := logging.FromContext(logging.WithSource(ctx, "local"))

	if strings.TrimSpace(text) == "" {
		return nil, errors.NewValidationError("text", text, "import text cannot be empty")
	}
	if i.validateTemplate {
		if v := template.Validate(text); !v.Valid {
			return nil, &errors.ValidationError{
				Field:   "text",
				Value:   v.Missing,
				Message: "template incomplete, " + v.String(),
			}
		}
	}

	local := parser.Parse(text, strains.WithClock(i.clock))
	logger.Debug().Str("strain", local.Name).Msg("Parsed strain text")
	result := &Result{
		Local:  local,
		Merged: local,
		Status: StatusLocal,
	}

	if useLLM && i.extractor != nil {
		llmCtx := logging.WithSource(ctx, "llm")
		candidate, err := i.extractor.Extract(llmCtx, text)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, errors.Join(errors.ErrCanceled, ctx.Err())
		case err != nil:
			logging.FromContext(llmCtx).Warn().Err(err).Str("strain", local.Name).Msg("LLM extraction failed, using local parser")
			result.LLMError = err.Error()
			result.Status = StatusFallback
		default:
			llm := strains.Normalize(candidate, strains.WithoutTimestamp())
			result.LLM = &llm
			result.Merged = strains.Merge(local, llm, strains.WithClock(i.clock))
			result.UsedLLM = true
			result.Status = StatusMerged
		}
	}

	var llm any
	if result.LLM != nil {
		llm = *result.LLM
	}
	result.Rows = reconciler.Review(result.Local, llm, result.Merged, result.UsedLLM)
	result.Summary = reconciler.Summarize(result.Rows)

	source := "local"
	if result.UsedLLM {
		source = "llm"
	}
	logging.FromContext(logging.WithSource(ctx, source)).Info().
		Str("strain", result.Merged.Name).
		Str("status", string(result.Status)).
		Int("rows", result.Summary.Rows).
		Int("low", result.Summary.Low).
		Msg("Imported strain text")
	return result, nil
}

// scope returns ctx carrying the importer's logger tagged with operation.
// Collaborators log through logging.FromContext and inherit the fields.
func (i *Importer) scope(ctx context.Context, operation string) context.Context {
	return logging.WithOperation(logging.WithLogger(ctx, i.loggerFor(ctx)), operation)
}

func (i *Importer) loggerFor(ctx context.Context) *zerolog.Logger {
	if i.logger != nil {
		return i.logger
	}
	return logging.FromContext(ctx)
}
