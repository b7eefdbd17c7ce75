package ai

import "context"

// Provider is the opaque model boundary: it takes the fully-built prompt and
// returns the model's raw textual response. The resolution engine never
// depends on it.
type Provider interface {
	Name() string
	Suggest(ctx context.Context, prompt string) (string, error)
}
