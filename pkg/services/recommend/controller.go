package recommend

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sec-tools/inspector-notify/pkg/models/domain"
	"github.com/sec-tools/inspector-notify/pkg/services/finding"
)

// Generator errors the controller maps to fallback classes. Any other
// generation error counts as the service being unavailable.
var (
	// ErrNoCompletion means the model answered with no usable candidate.
	ErrNoCompletion = errors.New("model returned no completion")
	// ErrBadResponse means the model response envelope could not be decoded.
	ErrBadResponse = errors.New("cannot decode model response")
)

// Generator produces remediation text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Controller turns a raw event into remediation guidance. It is the
// pipeline's failure-isolation boundary: every failure mode folds into
// a fallback result so a notification always goes out.
type Controller struct {
	generator Generator
}

func NewController(generator Generator) *Controller {
	return &Controller{generator: generator}
}

// GetRecommendation never fails; the returned result always carries
// non-empty text.
func (c *Controller) GetRecommendation(ctx context.Context, event domain.Event) (result domain.RecommendationResult) {
	logger := zerolog.Ctx(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Any("panic", r).Msg("recommendation generation panicked")
			result = domain.FallbackFor(domain.ReasonInternal)
		}
	}()

	normalized, err := finding.Normalize(ctx, event)
	if err != nil {
		logger.Error().Err(err).Msg("cannot normalize finding")
		if errors.Is(err, domain.ErrMissingDetail) {
			return domain.FallbackFor(domain.ReasonMalformedEvent)
		}
		return domain.FallbackFor(domain.ReasonInternal)
	}

	prompt := finding.BuildPrompt(normalized)

	text, err := c.generator.Generate(ctx, prompt)
	switch {
	case errors.Is(err, ErrBadResponse):
		logger.Error().Err(err).Msg("malformed model response")
		return domain.FallbackFor(domain.ReasonBadResponse)
	case errors.Is(err, ErrNoCompletion):
		logger.Warn().Msg("model generated no recommendations")
		return domain.FallbackFor(domain.ReasonEmpty)
	case err != nil:
		logger.Error().Err(err).Msg("model invocation failed")
		return domain.FallbackFor(domain.ReasonUnavailable)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		logger.Warn().Msg("model returned blank output")
		return domain.FallbackFor(domain.ReasonEmpty)
	}

	return domain.Generated(text)
}
