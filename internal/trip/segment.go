package trip

// DaySegment is a named time slot and the categories that may fill it.
type DaySegment struct {
	Key        string
	Label      string
	Categories []Category
}

// Accepts reports whether c may fill the segment.
func (s DaySegment) Accepts(c Category) bool {
	for _, sc := range s.Categories {
		if sc == c {
			return true
		}
	}
	return false
}

// DefaultSegments is the fixed daily template, in scheduling order.
var DefaultSegments = []DaySegment{
	{Key: "breakfast", Label: "🍳 Завтрак", Categories: []Category{Cafe}},
	{Key: "morning", Label: "🏛️ Утреннее занятие", Categories: []Category{Museum, ArtGallery}},
	{Key: "lunch", Label: "🍽️ Обед", Categories: []Category{Restaurant}},
	{Key: "afternoon", Label: "🚶 После обеда", Categories: []Category{Park, Cafe, Museum, ArtGallery}},
	{Key: "evening", Label: "🌙 Вечером", Categories: []Category{Cafe, Restaurant, ArtGallery, Park}},
}
