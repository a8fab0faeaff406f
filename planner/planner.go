package planner

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"travel_itinerary_planner/metrics"
)

// Planner turns a trip request into a finished itinerary: build the prompt,
// fetch a completion with fallback, post-process the markdown.
type Planner struct {
	fetcher *Fetcher
	log     *zap.SugaredLogger
	now     func() time.Time
}

func NewPlanner(fetcher *Fetcher, log *zap.SugaredLogger) (*Planner, error) {
	if fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Planner{fetcher: fetcher, log: log, now: time.Now}, nil
}

// Generate performs one fresh completion for req. Nothing is cached;
// resubmitting the same request asks the models again.
func (p *Planner) Generate(ctx context.Context, req TripRequest) (Itinerary, error) {
	prompt := BuildPrompt(req)
	text, model, err := p.fetcher.Fetch(ctx, prompt)
	if err != nil {
		return Itinerary{}, err
	}
	it, err := PostProcess(text, model)
	if err != nil {
		return Itinerary{}, err
	}
	it.GeneratedAt = p.now()
	metrics.ItinerariesGenerated.Inc()
	p.log.Infow("itinerary generated", "model", model, "sections", len(it.Outline))
	return it, nil
}
