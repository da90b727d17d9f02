package extract

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Russian phrase templates, tried in order against the lower-cased text.
var phrasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:^|[^а-яё])(?:в|город)\s+(?P<city>[а-яё-]+)\s*,?\s*(?P<dates>\d+.+\d+\s*[а-я]+)\s*,?\s*(?:за|бюджет)?\s*(?P<budget>\d[\d\s]*)`),
	regexp.MustCompile(`(?P<city>[а-яё-]+)\s+(?:с|на)\s+(?P<dates>\d+.+\d+\s*[а-я]+)\s*,?\s*(?:за|бюджет)\s*(?P<budget>\d[\d\s]*)`),
}

// PatternExtractor matches conversational phrasings such as
// "в казань 10-12 июля за 30000" or "сочи с 1 по 5 августа за 60000".
type PatternExtractor struct {
	Clock Clock
}

func (e *PatternExtractor) Name() string { return "pattern" }

func (e *PatternExtractor) Extract(_ context.Context, text string) Outcome {
	lower := strings.ToLower(text)
	title := cases.Title(language.Russian)
	for _, re := range phrasePatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		city := title.String(m[re.SubexpIndex("city")])
		req, ok := assemble(city, m[re.SubexpIndex("dates")], m[re.SubexpIndex("budget")], e.Clock.now())
		if ok {
			return Outcome{Request: req, OK: true}
		}
	}
	return Outcome{}
}
