// Package gemini wraps the Google Gen AI SDK for the two LLM calls strainmap
// makes: extracting one profile from free text, and researching a list of
// strain names with the Google Search tool.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/agentstation/strainmap/pkg/constants"
	"github.com/agentstation/strainmap/pkg/errors"
	"github.com/agentstation/strainmap/pkg/logging"
	"github.com/agentstation/strainmap/pkg/strains"
)

// Config holds the connection settings for the Gemini API.
type Config struct {
	APIKey      string
	Model       string
	Endpoint    string // optional base URL override
	Temperature float32
	Timeout     time.Duration
	HTTPClient  *http.Client // optional, see internal/transport
}

// Generator is the subset of the genai models service the client needs.
// *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Option configures a Client.
type Option func(*Client) error

// WithGenerator replaces the genai models service, e.g. with a test double.
func WithGenerator(g Generator) Option {
	return func(c *Client) error {
		if g == nil {
			return &errors.ValidationError{
				Field:   "generator",
				Message: "cannot be nil",
			}
		}
		c.generator = g
		return nil
	}
}

// Client performs extraction and research requests.
type Client struct {
	generator   Generator
	model       string
	temperature float32
	timeout     time.Duration
}

// New builds a client. Without WithGenerator an API key is required and a
// genai client for the Gemini API backend is created.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	c := &Client{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
	if c.model == "" {
		c.model = constants.DefaultGeminiModel
	}
	if c.temperature <= 0 {
		c.temperature = constants.DefaultLLMTemperature
	}
	if c.timeout <= 0 {
		c.timeout = constants.LLMRequestTimeout
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.generator != nil {
		return c, nil
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, &errors.AuthenticationError{
			Provider: constants.GeminiProvider,
			Method:   "api-key",
			Message:  "API key required for the Gemini API",
		}
	}

	config := &genai.ClientConfig{
		Backend:    genai.BackendGeminiAPI,
		APIKey:     apiKey,
		HTTPClient: cfg.HTTPClient,
	}
	if endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/"); endpoint != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: endpoint + "/"}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, errors.NewConfigError(constants.GeminiProvider, "failed to create genai client", err)
	}
	c.generator = client.Models
	return c, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Extract asks the model to map free text onto one profile candidate.
func (c *Client) Extract(ctx context.Context, text string) (strains.Candidate, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewValidationError("text", text, "cannot be empty")
	}

	raw, err := c.generate(ctx, "extract", extractInstruction, text, false)
	if err != nil {
		return nil, err
	}

	obj, err := ParseJSON(raw)
	if err != nil {
		return nil, errors.Join(errors.ErrLLMUnavailable, err)
	}
	return strains.Candidate(obj), nil
}

// Research looks up the given strain names with web search and returns one
// candidate per profile in the response.
func (c *Client) Research(ctx context.Context, names []string) ([]strains.Candidate, error) {
	var cleaned []string
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			cleaned = append(cleaned, name)
		}
	}
	if len(cleaned) == 0 {
		return nil, errors.NewValidationError("names", names, "at least one strain name is required")
	}

	raw, err := c.generate(ctx, "research", researchInstruction, researchQuery(cleaned), true)
	if err != nil {
		return nil, err
	}

	obj, err := ParseJSON(raw)
	if err != nil {
		return nil, errors.Join(errors.ErrLLMUnavailable, err)
	}

	items, _ := obj["profiles"].([]any)
	var candidates []strains.Candidate
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			candidates = append(candidates, strains.Candidate(m))
		}
	}
	if len(candidates) == 0 {
		return nil, errors.ErrNoProfiles
	}
	return candidates, nil
}

func (c *Client) generate(ctx context.Context, call, instruction, prompt string, search bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logger := logging.FromContext(ctx)
	start := time.Now()

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		Temperature:       genai.Ptr(c.temperature),
		ResponseMIMEType:  "application/json",
	}
	if search {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := c.generator.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("call", call).
			Str("model", c.model).
			Dur("elapsed", time.Since(start)).
			Msg("Gemini request failed")
		return "", wrapError(ctx, err)
	}

	var text string
	if resp != nil {
		text = resp.Text()
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.NewAPIError(constants.GeminiProvider, 0, "response carries no text part")
	}

	logger.Debug().
		Str("call", call).
		Str("model", c.model).
		Int("chars", len(text)).
		Dur("elapsed", time.Since(start)).
		Msg("Gemini request completed")
	return text, nil
}

func wrapError(ctx context.Context, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &errors.APIError{
			Provider:   constants.GeminiProvider,
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Err:        err,
		}
	}

	wrapped := errors.WrapAPI(constants.GeminiProvider, 0, err)
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return errors.Join(errors.ErrTimeout, wrapped)
	case context.Canceled:
		return errors.Join(errors.ErrCanceled, wrapped)
	}
	return wrapped
}

func researchQuery(names []string) string {
	var b strings.Builder
	b.WriteString("Recherchiere folgende Strains mit Websuche und liefere strukturierte Profile:")
	for i, name := range names {
		fmt.Fprintf(&b, "\n%d. %s", i+1, name)
	}
	return b.String()
}
