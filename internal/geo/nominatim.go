package geo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ai-trip-planner/internal/trip"

	"github.com/patrickmn/go-cache"
)

// Nominatim geocodes city names against an OpenStreetMap Nominatim server.
// Results are cached in memory since city coordinates do not move.
type Nominatim struct {
	baseURL string
	client  httpClient
	cache   *cache.Cache
}

func NewNominatim(baseURL string, timeout time.Duration) *Nominatim {
	return &Nominatim{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient("nominatim", timeout),
		cache:   cache.New(24*time.Hour, 1*time.Hour),
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (n *Nominatim) Resolve(ctx context.Context, city string) (trip.Coordinates, error) {
	key := strings.ToLower(strings.TrimSpace(city))
	if cached, found := n.cache.Get(key); found {
		return cached.(trip.Coordinates), nil
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("format", "json")
	q.Set("limit", "1")

	var results []nominatimResult
	if err := n.client.get(ctx, n.baseURL+"/search?"+q.Encode(), &results); err != nil {
		return trip.Coordinates{}, err
	}
	if len(results) == 0 {
		return trip.Coordinates{}, newAdapterError("nominatim", KindNoData, fmt.Errorf("no match for %q", city))
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLon != nil {
		return trip.Coordinates{}, newAdapterError("nominatim", KindMalformed,
			fmt.Errorf("bad coordinates %q,%q", results[0].Lat, results[0].Lon))
	}

	coords := trip.Coordinates{Lat: lat, Lon: lon}
	n.cache.Set(key, coords, cache.DefaultExpiration)
	return coords, nil
}
