package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var russianMonths = map[string]time.Month{
	"января":   time.January,
	"февраля":  time.February,
	"марта":    time.March,
	"апреля":   time.April,
	"мая":      time.May,
	"июня":     time.June,
	"июля":     time.July,
	"августа":  time.August,
	"сентября": time.September,
	"октября":  time.October,
	"ноября":   time.November,
	"декабря":  time.December,
}

var (
	russianDateRe = regexp.MustCompile(`(\d{1,2})\s+([а-яё]+)\s+(\d{4})`)
	dottedDateRe  = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`)
)

// ParseIssueDate parses newspaper issue dates as printed on the legacy site:
// "9 января 2025 г." first, dotted "09.01.2025" as the fallback. When
// neither pattern matches the issue is pinned to January 1st of the given
// year rather than rejected.
func ParseIssueDate(raw string, fallbackYear int) time.Time {
	raw = strings.ToLower(strings.TrimSpace(raw))

	if m := russianDateRe.FindStringSubmatch(raw); m != nil {
		if month, ok := russianMonths[m[2]]; ok {
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[3])
			if day >= 1 && day <= 31 {
				return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			}
		}
	}

	if m := dottedDateRe.FindStringSubmatch(raw); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if day >= 1 && day <= 31 && month >= 1 && month <= 12 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		}
	}

	return time.Date(fallbackYear, time.January, 1, 0, 0, 0, 0, time.UTC)
}
