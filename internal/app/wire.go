package app

import (
	"context"
	"fmt"

	"ai-trip-planner/internal/calendar"
	"ai-trip-planner/internal/config"
	"ai-trip-planner/internal/extract"
	"ai-trip-planner/internal/geo"
	"ai-trip-planner/internal/llm"
	"ai-trip-planner/internal/planner"
)

// Wire builds the production App from cfg. Fields already set on base
// (MetricsStore, Collector, OnMeta, Logger) are kept; adapters, extraction,
// enrichment and timezones come from cfg. The returned close function
// releases the completion client.
func Wire(ctx context.Context, cfg *config.Config, base Deps) (*App, func() error, error) {
	textGen, closeLLM, err := llm.New(ctx, cfg)
	if err != nil {
		return nil, closeLLM, fmt.Errorf("failed to create %s client: %w", cfg.LLMProvider, err)
	}

	timezones, err := calendar.NewTimezoneResolver(cfg.DefaultTimezone)
	if err != nil {
		return nil, closeLLM, err
	}

	d := base
	d.Extractor = extract.Default(textGen, nil, base.Logger)
	d.Geocoder = geo.NewNominatim(cfg.NominatimURL, cfg.AdapterTimeout)
	d.Forecaster = geo.NewOpenMeteo(cfg.OpenMeteoURL, cfg.AdapterTimeout)
	d.Directory = geo.NewOverpass(cfg.OverpassURL, cfg.AdapterTimeout, base.Logger)
	d.Enricher = planner.NewEnricher(textGen, base.Logger)
	d.Timezones = timezones
	d.AdapterTimeout = cfg.AdapterTimeout
	if d.Synthesizer == nil {
		d.Synthesizer = planner.NewSynthesizer(cfg.PlannerSeed)
	}
	return NewApp(d), closeLLM, nil
}
