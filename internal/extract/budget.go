package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var budgetDigits = regexp.MustCompile(`\d{3,}`)

// ParseBudget finds the first run of three or more digits once separators
// (whitespace of any kind, commas) are removed. Short numbers are treated as
// noise rather than a budget.
func ParseBudget(text string) (int, bool) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ',' {
			return -1
		}
		return r
	}, text)

	digits := budgetDigits.FindString(compact)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
