package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ai-trip-planner/internal/calendar"
	"ai-trip-planner/internal/extract"
	"ai-trip-planner/internal/geo"
	"ai-trip-planner/internal/metrics"
	"ai-trip-planner/internal/planner"
	"ai-trip-planner/internal/shared"
	"ai-trip-planner/internal/trip"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const hotelSuggestions = 3

// ParameterExtractor turns user text into a trip request.
type ParameterExtractor interface {
	Extract(ctx context.Context, text string) (extract.Result, error)
}

// Enricher produces free-text suggestions for a trip.
type Enricher interface {
	Suggest(ctx context.Context, req trip.TripRequest) (string, *shared.AgentMeta, error)
}

// MetaObserver is notified of every LLM call made during a run.
type MetaObserver func(runID string, meta shared.AgentMeta)

// Deps holds the application's dependencies. Enricher, MetricsStore,
// Collector, Timezones and OnMeta are optional.
type Deps struct {
	Extractor      ParameterExtractor
	Geocoder       geo.Geocoder
	Forecaster     geo.Forecaster
	Directory      geo.Directory
	Synthesizer    *planner.Synthesizer
	Enricher       Enricher
	MetricsStore   *metrics.Store
	Collector      *metrics.Collector
	Timezones      *calendar.TimezoneResolver
	OnMeta         MetaObserver
	Logger         *slog.Logger
	AdapterTimeout time.Duration
}

// App runs planning requests end to end.
type App struct {
	extractor      ParameterExtractor
	geocoder       geo.Geocoder
	forecaster     geo.Forecaster
	directory      geo.Directory
	synthesizer    *planner.Synthesizer
	enricher       Enricher
	metricsStore   *metrics.Store
	collector      *metrics.Collector
	timezones      *calendar.TimezoneResolver
	onMeta         MetaObserver
	logger         *slog.Logger
	adapterTimeout time.Duration
	now            func() time.Time
}

// NewApp creates and initializes a new App instance.
func NewApp(d Deps) *App {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.AdapterTimeout <= 0 {
		d.AdapterTimeout = 10 * time.Second
	}
	if d.Synthesizer == nil {
		d.Synthesizer = planner.NewSynthesizer(0)
	}
	return &App{
		extractor:      d.Extractor,
		geocoder:       d.Geocoder,
		forecaster:     d.Forecaster,
		directory:      d.Directory,
		synthesizer:    d.Synthesizer,
		enricher:       d.Enricher,
		metricsStore:   d.MetricsStore,
		collector:      d.Collector,
		timezones:      d.Timezones,
		onMeta:         d.OnMeta,
		logger:         d.Logger,
		adapterTimeout: d.AdapterTimeout,
		now:            time.Now,
	}
}

type enrichment struct {
	text string
	meta *shared.AgentMeta
	err  error
}

// PlanTrip extracts the trip parameters from text and builds an itinerary.
// Adapter failures degrade to empty data; only extraction failure
// (extract.ErrExtractionFailed) or cancellation of ctx is returned as an error.
func (a *App) PlanTrip(ctx context.Context, text string) (*trip.Itinerary, error) {
	started := a.now()
	runID := uuid.NewString()
	log := a.logger.With("run_id", runID)

	res, err := a.extractor.Extract(ctx, text)
	a.recordMetas(ctx, log, runID, res.Metas)
	if err != nil {
		a.collector.PlanFinished("extraction_failed", 0, a.now().Sub(started))
		log.Info("could not extract trip parameters", "error", err)
		return nil, fmt.Errorf("failed to plan trip: %w", err)
	}
	a.collector.Extracted(res.Stage)
	req := res.Request
	log = log.With("city", req.City)

	enrichDone := make(chan enrichment, 1)
	if a.enricher != nil {
		go func() {
			suggestion, meta, err := a.enricher.Suggest(ctx, req)
			enrichDone <- enrichment{text: suggestion, meta: meta, err: err}
		}()
	} else {
		close(enrichDone)
	}

	var (
		location *trip.Coordinates
		weather  map[string]trip.WeatherDay
		raw      []geo.RawPlace
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		location, weather = a.fetchWeather(gctx, log, req)
		return nil
	})
	g.Go(func() error {
		raw = a.fetchPlaces(gctx, log, req)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		a.collector.PlanFinished("cancelled", 0, a.now().Sub(started))
		return nil, fmt.Errorf("planning interrupted: %w", err)
	}

	pool := planner.BuildPool(raw)
	days := a.synthesizer.Synthesize(req, weather, pool, planner.NewState())

	it := &trip.Itinerary{
		RunID:     runID,
		Request:   req,
		Location:  location,
		Hotels:    planner.SuggestHotels(pool, req, hotelSuggestions),
		Days:      days,
		CreatedAt: a.now(),
	}

	select {
	case e, ok := <-enrichDone:
		if ok {
			if e.meta != nil {
				a.recordMetas(ctx, log, runID, []shared.AgentMeta{*e.meta})
			}
			if e.err != nil {
				log.Warn("enrichment failed", "error", e.err)
			}
			it.Enrichment = e.text
		}
	case <-ctx.Done():
		log.Warn("enrichment abandoned", "error", ctx.Err())
	}

	took := a.now().Sub(started)
	a.collector.PlanFinished("ok", it.VisitCount(), took)
	log.Info("trip planned",
		"stage", res.Stage,
		"days", req.DayCount(),
		"pool", len(pool),
		"visits", it.VisitCount(),
		"hotels", len(it.Hotels),
		"took", took)
	return it, nil
}

func (a *App) fetchWeather(ctx context.Context, log *slog.Logger, req trip.TripRequest) (*trip.Coordinates, map[string]trip.WeatherDay) {
	weather := map[string]trip.WeatherDay{}
	if a.geocoder == nil {
		return nil, weather
	}

	gctx, cancel := context.WithTimeout(ctx, a.adapterTimeout)
	coords, err := a.geocoder.Resolve(gctx, req.City)
	cancel()
	if err != nil {
		a.adapterFailed(log, "nominatim", err)
		return nil, weather
	}
	if a.forecaster == nil {
		return &coords, weather
	}

	fctx, cancel := context.WithTimeout(ctx, a.adapterTimeout)
	defer cancel()
	forecast, err := a.forecaster.Forecast(fctx, coords, req.Start, req.End)
	if err != nil {
		a.adapterFailed(log, "open-meteo", err)
		return &coords, weather
	}
	return &coords, geo.WeatherByDate(forecast)
}

func (a *App) fetchPlaces(ctx context.Context, log *slog.Logger, req trip.TripRequest) []geo.RawPlace {
	if a.directory == nil {
		return nil
	}
	sctx, cancel := context.WithTimeout(ctx, a.adapterTimeout)
	defer cancel()
	places, err := a.directory.Search(sctx, req.City, trip.SearchCategories)
	if err != nil {
		a.adapterFailed(log, "overpass", err)
		return nil
	}
	return places
}

func (a *App) adapterFailed(log *slog.Logger, adapter string, err error) {
	kind := string(geo.KindOf(err))
	if kind == "" {
		kind = "unknown"
	}
	a.collector.AdapterFailed(adapter, kind)
	log.Warn("adapter failed, continuing without its data", "adapter", adapter, "kind", kind, "error", err)
}

func (a *App) recordMetas(ctx context.Context, log *slog.Logger, runID string, metas []shared.AgentMeta) {
	for _, meta := range metas {
		if a.onMeta != nil {
			a.onMeta(runID, meta)
		}
		if a.metricsStore == nil {
			continue
		}
		if err := a.metricsStore.RecordMeta(ctx, runID, meta); err != nil {
			log.Warn("failed to record metrics", "agent", meta.AgentName, "error", err)
		}
	}
}

// CalendarEvents lays the itinerary out in the destination's local time.
func (a *App) CalendarEvents(it *trip.Itinerary) []calendar.Event {
	loc := time.UTC
	if a.timezones != nil {
		loc = a.timezones.Locate(it.Location)
	}
	return calendar.BuildEvents(it, loc)
}

// ExportCalendar writes the itinerary into sink and counts the outcome.
func (a *App) ExportCalendar(ctx context.Context, sink calendar.EventSink, sinkName, userID string, it *trip.Itinerary) (int, error) {
	created, err := calendar.Export(ctx, sink, userID, a.CalendarEvents(it))
	outcome := "ok"
	if err != nil {
		outcome = "failed"
		if created > 0 {
			outcome = "partial"
		}
		a.logger.Warn("calendar export failed", "run_id", it.RunID, "sink", sinkName, "created", created, "error", err)
	}
	a.collector.Exported(sinkName, outcome)
	return created, err
}
