package planner

import (
	"ai-trip-planner/internal/trip"

	"github.com/samber/lo"
)

// SuggestHotels picks up to limit hotels whose stay for the whole trip fits
// the total budget. Lodging is checked against the total, not the daily
// activity budget.
func SuggestHotels(pool []trip.Place, req trip.TripRequest, limit int) []trip.Place {
	nights := req.DayCount()
	hotels := lo.Filter(pool, func(p trip.Place, _ int) bool {
		return p.Category == trip.Hotel && p.Cost*nights <= req.TotalBudget
	})
	if len(hotels) > limit {
		hotels = hotels[:limit]
	}
	return hotels
}
