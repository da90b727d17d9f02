package geo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"ai-trip-planner/internal/trip"

	"golang.org/x/sync/errgroup"
)

// osmTags maps categories to their OpenStreetMap tag filter.
var osmTags = map[trip.Category]string{
	trip.Museum:     `["tourism"="museum"]`,
	trip.Park:       `["leisure"="park"]`,
	trip.Restaurant: `["amenity"="restaurant"]`,
	trip.Cafe:       `["amenity"="cafe"]`,
	trip.ArtGallery: `["tourism"="art_gallery"]`,
	trip.Hotel:      `["tourism"="hotel"]`,
}

// Overpass searches OpenStreetMap through an Overpass API interpreter. Each
// category is a separate query; a failing category is logged and skipped.
type Overpass struct {
	endpoint    string
	client      httpClient
	concurrency int
	logger      *slog.Logger
}

func NewOverpass(endpoint string, timeout time.Duration, logger *slog.Logger) *Overpass {
	if logger == nil {
		logger = slog.Default()
	}
	return &Overpass{
		endpoint:    endpoint,
		client:      newHTTPClient("overpass", timeout),
		concurrency: 2,
		logger:      logger,
	}
}

type overpassPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *overpassPoint    `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

func (o *Overpass) Search(ctx context.Context, city string, categories []trip.Category) ([]RawPlace, error) {
	results := make([][]RawPlace, len(categories))
	errs := make([]error, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, cat := range categories {
		g.Go(func() error {
			places, err := o.searchCategory(gctx, city, cat)
			if err != nil {
				o.logger.Warn("overpass category failed", "category", cat, "error", err)
				errs[i] = err
				return nil
			}
			results[i] = places
			return nil
		})
	}
	_ = g.Wait()

	var places []RawPlace
	failed := 0
	for i := range categories {
		if errs[i] != nil {
			failed++
			continue
		}
		places = append(places, results[i]...)
	}
	if len(categories) > 0 && failed == len(categories) {
		return nil, errors.Join(errs...)
	}
	return places, nil
}

func (o *Overpass) searchCategory(ctx context.Context, city string, cat trip.Category) ([]RawPlace, error) {
	filter, ok := osmTags[cat]
	if !ok {
		return nil, nil
	}

	form := url.Values{}
	form.Set("data", buildOverpassQuery(city, filter))

	var resp overpassResponse
	if err := o.client.postForm(ctx, o.endpoint, form.Encode(), &resp); err != nil {
		return nil, err
	}

	places := make([]RawPlace, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		p := RawPlace{Name: strings.TrimSpace(el.Tags["name"]), Category: cat}
		switch {
		case el.Lat != nil && el.Lon != nil:
			p.Location = trip.Coordinates{Lat: *el.Lat, Lon: *el.Lon}
			p.Located = true
		case el.Center != nil:
			p.Location = trip.Coordinates{Lat: el.Center.Lat, Lon: el.Center.Lon}
			p.Located = true
		}
		places = append(places, p)
	}
	return places, nil
}

func buildOverpassQuery(city, filter string) string {
	name := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(city)
	return fmt.Sprintf(`[out:json][timeout:25];
area["name"="%s"]->.searchArea;
(
  node%s(area.searchArea);
  way%s(area.searchArea);
);
out center 50;`, name, filter, filter)
}
