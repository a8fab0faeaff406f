package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"travel_itinerary_planner/metrics"
)

// Fetcher walks an ordered list of candidate models until one returns a
// usable completion. The order is fixed at construction: primary first,
// then the cheaper fallbacks.
type Fetcher struct {
	llm    LLMClient
	models []string
	log    *zap.SugaredLogger
}

func NewFetcher(llm LLMClient, models []string, log *zap.SugaredLogger) (*Fetcher, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if len(models) == 0 {
		return nil, errors.New("at least one candidate model is required")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Fetcher{llm: llm, models: models, log: log}, nil
}

// Fetch asks each candidate in order and returns the first response that is
// non-empty after trimming whitespace, together with the model that produced
// it. The text itself is returned untrimmed. A call error or a blank
// response both move the loop to the next model; blank responses are not
// errors. When the list is exhausted the *CompletionError carries the
// ordered attempts and wraps the most recent call error, if any.
func (f *Fetcher) Fetch(ctx context.Context, prompt Prompt) (string, string, error) {
	var attempts []ModelAttempt
	var lastErr error
	for _, model := range f.models {
		text, err := f.llm.Complete(ctx, model, prompt)
		attempts = append(attempts, ModelAttempt{Model: model, Text: text, Err: err})
		if err != nil {
			lastErr = err
			f.log.Warnw("completion attempt failed", "model", model, "error", err)
			metrics.CompletionAttempts.WithLabelValues(model, "error").Inc()
			continue
		}
		if strings.TrimSpace(text) == "" {
			f.log.Warnw("completion attempt returned empty text", "model", model)
			metrics.CompletionAttempts.WithLabelValues(model, "empty").Inc()
			continue
		}
		metrics.CompletionAttempts.WithLabelValues(model, "ok").Inc()
		f.log.Infow("completion succeeded", "model", model, "chars", len(text))
		return text, model, nil
	}
	return "", "", &CompletionError{Attempts: attempts, LastErr: lastErr}
}

// CompletionError reports that every candidate model failed to produce an
// itinerary. The message surfaces only the most recent call failure; the
// full attempt trail stays on the value for logging.
type CompletionError struct {
	Attempts []ModelAttempt
	LastErr  error
}

func (e *CompletionError) Error() string {
	if e.LastErr != nil {
		return fmt.Sprintf("failed to generate plan: %v", e.LastErr)
	}
	return "failed to generate plan: every model returned empty text"
}

func (e *CompletionError) Unwrap() error { return e.LastErr }
