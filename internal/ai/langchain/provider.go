package langchain

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Options configures a langchain-backed provider.
type Options struct {
	Provider    string // "openai" or "ollama"
	Model       string
	APIKey      string
	BaseURL     string // optional OpenAI-compatible endpoint or Ollama server
	Temperature float64
}

// Provider implements ai.Provider on top of langchaingo model clients.
type Provider struct {
	llm         llms.Model
	name        string
	temperature float64
}

// New builds the configured model client.
func New(opts Options) (*Provider, error) {
	var model llms.Model
	var err error

	switch opts.Provider {
	case "openai":
		oaiOpts := []openai.Option{
			openai.WithToken(opts.APIKey),
			openai.WithModel(opts.Model),
		}
		if opts.BaseURL != "" {
			oaiOpts = append(oaiOpts, openai.WithBaseURL(opts.BaseURL))
		}
		model, err = openai.New(oaiOpts...)
	case "ollama":
		ollamaOpts := []ollama.Option{ollama.WithModel(opts.Model)}
		if opts.BaseURL != "" {
			ollamaOpts = append(ollamaOpts, ollama.WithServerURL(opts.BaseURL))
		}
		model, err = ollama.New(ollamaOpts...)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", opts.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", opts.Provider, err)
	}

	return &Provider{
		llm:         model,
		name:        fmt.Sprintf("%s/%s", opts.Provider, opts.Model),
		temperature: opts.Temperature,
	}, nil
}

func (p *Provider) Name() string { return p.name }

// Suggest sends the prompt as a single completion request and returns the
// raw response text.
func (p *Provider) Suggest(ctx context.Context, prompt string) (string, error) {
	resp, err := llms.GenerateFromSinglePrompt(ctx, p.llm, prompt,
		llms.WithTemperature(p.temperature))
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}
	return resp, nil
}
