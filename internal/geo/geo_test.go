package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"ai-trip-planner/internal/trip"
)

func TestNominatim_Resolve(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/search" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "Москва" || r.URL.Query().Get("limit") != "1" {
			t.Errorf("Unexpected query %q", r.URL.RawQuery)
		}
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "trip-bot") {
			t.Errorf("Expected trip-bot user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`[{"lat": "55.7558", "lon": "37.6173", "display_name": "Москва"}]`))
	}))
	defer server.Close()

	n := NewNominatim(server.URL+"/", time.Second)
	coords, err := n.Resolve(context.Background(), "Москва")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if coords.Lat != 55.7558 || coords.Lon != 37.6173 {
		t.Errorf("Unexpected coordinates %+v", coords)
	}

	if _, err := n.Resolve(context.Background(), " москва "); err != nil {
		t.Fatalf("Expected cached result, got %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("Expected one upstream call, got %d", hits.Load())
	}
}

func TestNominatim_Failures(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
		want Kind
	}{
		{"Empty", `[]`, http.StatusOK, KindNoData},
		{"Garbage", `<html>`, http.StatusOK, KindMalformed},
		{"BadCoordinates", `[{"lat": "north", "lon": "1"}]`, http.StatusOK, KindMalformed},
		{"ServerError", `oops`, http.StatusBadGateway, KindStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := NewNominatim(server.URL, time.Second).Resolve(context.Background(), "Нигде")
			var ae *AdapterError
			if !errors.As(err, &ae) {
				t.Fatalf("Expected AdapterError, got %v", err)
			}
			if ae.Kind != tc.want || ae.Adapter != "nominatim" {
				t.Errorf("Expected %s/nominatim, got %s/%s", tc.want, ae.Kind, ae.Adapter)
			}
		})
	}
}

func TestNominatim_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	_, err := NewNominatim(server.URL, 20*time.Millisecond).Resolve(context.Background(), "Москва")
	if KindOf(err) != KindUnavailable {
		t.Errorf("Expected unavailable, got %v", err)
	}
}

func TestOpenMeteo_Forecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/v1/forecast" || q.Get("timezone") != "auto" || q.Get("start_date") != "2025-06-15" || q.Get("end_date") != "2025-06-17" {
			t.Errorf("Unexpected request %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		w.Write([]byte(`{"daily": {
			"time": ["2025-06-15", "2025-06-16", "2025-06-17"],
			"temperature_2m_max": [24.0, 20.0, null],
			"temperature_2m_min": [16.0, 12.0, 10.0],
			"precipitation_sum": [0.0, 3.2, null]
		}}`))
	}))
	defer server.Close()

	start := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	days, err := NewOpenMeteo(server.URL, time.Second).Forecast(context.Background(),
		trip.Coordinates{Lat: 55.75, Lon: 37.61}, start, start.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("Expected 3 days, got %d", len(days))
	}

	weather := WeatherByDate(days)
	if w := weather["2025-06-15"]; w.Condition != trip.Clear || w.MeanTemperature != 20 {
		t.Errorf("Unexpected first day %+v", w)
	}
	if w := weather["2025-06-16"]; w.Condition != trip.Rain {
		t.Errorf("Expected rain on second day, got %+v", w)
	}
	if w := weather["2025-06-17"]; w.HasTemperature || w.Condition != trip.Clear {
		t.Errorf("Expected unknown temperature and clear sky, got %+v", w)
	}
}

func TestOpenMeteo_Malformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily": {"time": ["2025-06-15"], "temperature_2m_max": [], "temperature_2m_min": [1], "precipitation_sum": [0]}}`))
	}))
	defer server.Close()

	_, err := NewOpenMeteo(server.URL, time.Second).Forecast(context.Background(), trip.Coordinates{}, time.Now(), time.Now())
	if KindOf(err) != KindMalformed {
		t.Errorf("Expected malformed, got %v", err)
	}
}

func TestOverpass_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Failed to parse form: %v", err)
		}
		query := r.PostForm.Get("data")
		if !strings.Contains(query, `area["name"="Москва"]`) || !strings.Contains(query, "out center 50;") {
			t.Errorf("Unexpected query %q", query)
		}
		switch {
		case strings.Contains(query, `"tourism"="museum"`):
			w.Write([]byte(`{"elements": [
				{"type": "node", "lat": 55.74, "lon": 37.60, "tags": {"name": "Третьяковская галерея"}},
				{"type": "way", "center": {"lat": 55.75, "lon": 37.62}, "tags": {"name": "Исторический музей"}},
				{"type": "node", "lat": 55.70, "lon": 37.50, "tags": {}}
			]}`))
		case strings.Contains(query, `"leisure"="park"`):
			http.Error(w, "too many requests", http.StatusTooManyRequests)
		default:
			w.Write([]byte(`{"elements": []}`))
		}
	}))
	defer server.Close()

	places, err := NewOverpass(server.URL, time.Second, nil).Search(context.Background(), "Москва",
		[]trip.Category{trip.Museum, trip.Park, trip.Cafe})
	if err != nil {
		t.Fatalf("Expected partial success, got %v", err)
	}
	if len(places) != 3 {
		t.Fatalf("Expected 3 raw places, got %d", len(places))
	}
	if places[0].Name != "Третьяковская галерея" || places[0].Category != trip.Museum || !places[0].Located {
		t.Errorf("Unexpected first place %+v", places[0])
	}
	if places[1].Location.Lat != 55.75 || !places[1].Located {
		t.Errorf("Expected way center to be used, got %+v", places[1])
	}
	if places[2].Name != "" {
		t.Errorf("Expected unnamed element to be kept raw, got %+v", places[2])
	}
}

func TestOverpass_AllCategoriesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewOverpass(server.URL, time.Second, nil).Search(context.Background(), "Москва",
		[]trip.Category{trip.Museum, trip.Cafe})
	if KindOf(err) != KindStatus {
		t.Errorf("Expected status failure, got %v", err)
	}
}

func TestBuildOverpassQuery_EscapesCity(t *testing.T) {
	q := buildOverpassQuery(`Sankt "Peter" \ burg`, osmTags[trip.Cafe])
	if !strings.Contains(q, `area["name"="Sankt \"Peter\" \\ burg"]`) {
		t.Errorf("City not escaped: %s", q)
	}
	if _, err := url.ParseQuery(url.Values{"data": {q}}.Encode()); err != nil {
		t.Errorf("Query does not survive form encoding: %v", err)
	}
}
