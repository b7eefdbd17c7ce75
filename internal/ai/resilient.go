package ai

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/redline/internal/retry"
)

// Resilient wraps a Provider with exponential-backoff retries for the
// transient failures model APIs throw off (rate limits, gateway errors).
// Permanent errors (bad key, malformed request) surface immediately.
type Resilient struct {
	inner Provider
	cfg   retry.Config
	log   zerolog.Logger
}

// NewResilient wraps provider with the LLM retry profile.
func NewResilient(provider Provider, log zerolog.Logger) *Resilient {
	return &Resilient{inner: provider, cfg: retry.LLM(), log: log}
}

func (r *Resilient) Name() string { return r.inner.Name() }

func (r *Resilient) Suggest(ctx context.Context, prompt string) (string, error) {
	var out string
	var permanent error
	res := retry.Do(ctx, r.cfg, r.log, func() error {
		s, err := r.inner.Suggest(ctx, prompt)
		if err == nil {
			out = s
			return nil
		}
		if !retry.IsRetryable(err) {
			// Returning nil stops the retry loop; the failure is
			// reported from here instead.
			permanent = err
			return nil
		}
		return err
	})
	if permanent != nil {
		return "", permanent
	}
	if !res.Success {
		return "", res.LastError
	}
	return out, nil
}
