package geo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ai-trip-planner/internal/trip"
)

// OpenMeteo fetches daily forecasts from the Open-Meteo API.
type OpenMeteo struct {
	baseURL string
	client  httpClient
}

func NewOpenMeteo(baseURL string, timeout time.Duration) *OpenMeteo {
	return &OpenMeteo{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient("open-meteo", timeout),
	}
}

type openMeteoResponse struct {
	Daily struct {
		Time          []string   `json:"time"`
		MaxTemp       []*float64 `json:"temperature_2m_max"`
		MinTemp       []*float64 `json:"temperature_2m_min"`
		Precipitation []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

func (o *OpenMeteo) Forecast(ctx context.Context, at trip.Coordinates, start, end time.Time) ([]DailyForecast, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(at.Lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(at.Lon, 'f', 4, 64))
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
	q.Set("timezone", "auto")
	q.Set("start_date", trip.DateKey(start))
	q.Set("end_date", trip.DateKey(end))

	var resp openMeteoResponse
	if err := o.client.get(ctx, o.baseURL+"/v1/forecast?"+q.Encode(), &resp); err != nil {
		return nil, err
	}

	d := resp.Daily
	if len(d.Time) == 0 {
		return nil, newAdapterError("open-meteo", KindNoData, fmt.Errorf("empty daily series"))
	}
	if len(d.MaxTemp) != len(d.Time) || len(d.MinTemp) != len(d.Time) || len(d.Precipitation) != len(d.Time) {
		return nil, newAdapterError("open-meteo", KindMalformed, fmt.Errorf("daily series lengths differ"))
	}

	days := make([]DailyForecast, 0, len(d.Time))
	for i, raw := range d.Time {
		date, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return nil, newAdapterError("open-meteo", KindMalformed, fmt.Errorf("bad date %q: %w", raw, err))
		}
		days = append(days, DailyForecast{
			Date:          date,
			MaxTemp:       d.MaxTemp[i],
			MinTemp:       d.MinTemp[i],
			Precipitation: d.Precipitation[i],
		})
	}
	return days, nil
}

// WeatherByDate maps forecasts to planner weather keyed by trip.DateKey.
func WeatherByDate(days []DailyForecast) map[string]trip.WeatherDay {
	out := make(map[string]trip.WeatherDay, len(days))
	for _, d := range days {
		out[trip.DateKey(d.Date)] = trip.WeatherFromForecast(d.Date, d.MaxTemp, d.MinTemp, d.Precipitation)
	}
	return out
}
