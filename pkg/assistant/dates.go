package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	dayLayout   = "Monday, January 2, 2006"
	shortLayout = "Jan 2, 2006"
)

var monthNames = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

// monthPattern accepts the three-letter abbreviation or the full name, so
// words like "marketing" or "decision" are never read as months.
const monthPattern = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sept?(?:ember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`

type datePattern struct {
	re    *regexp.Regexp
	parts func(m []string) (day, month, year string)
}

// ORDER MATTERS: the first pattern that matches and forms a valid calendar
// day wins.
var datePatterns = []datePattern{
	{ // DD-MM-YYYY or DD/MM/YYYY
		re:    regexp.MustCompile(`\b(\d{1,2})[-/](\d{1,2})[-/](\d{4})\b`),
		parts: func(m []string) (string, string, string) { return m[1], m[2], m[3] },
	},
	{ // YYYY-MM-DD
		re:    regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`),
		parts: func(m []string) (string, string, string) { return m[3], m[2], m[1] },
	},
	{ // DD MMM YYYY
		re:    regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+` + monthPattern + `,?\s+(\d{4})\b`),
		parts: func(m []string) (string, string, string) { return m[1], m[2], m[3] },
	},
	{ // MMM DD, YYYY
		re:    regexp.MustCompile(`\b` + monthPattern + `\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`),
		parts: func(m []string) (string, string, string) { return m[2], m[1], m[3] },
	},
}

// ExtractDate finds the first explicit date in text and returns it at
// midnight in loc.
func ExtractDate(text string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	lower := strings.ToLower(text)
	for _, p := range datePatterns {
		for _, m := range p.re.FindAllStringSubmatch(lower, -1) {
			d, mo, y := p.parts(m)
			if t, ok := buildDate(d, mo, y, loc); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func buildDate(day, month, year string, loc *time.Location) (time.Time, bool) {
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}

	var mo time.Month
	if n, err := strconv.Atoi(month); err == nil {
		mo = time.Month(n)
	} else if len(month) >= 3 {
		mo = monthNames[month[:3]]
	}
	if mo < time.January || mo > time.December || d < 1 {
		return time.Time{}, false
	}

	t := time.Date(y, mo, d, 0, 0, 0, 0, loc)
	// time.Date normalizes 31-02 into March; reject instead.
	if t.Day() != d || t.Month() != mo || t.Year() != y {
		return time.Time{}, false
	}
	return t, true
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay compares calendar days, converting b into a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateRange is a half-open range of days [From, To).
type DateRange struct {
	From  time.Time
	To    time.Time
	Label string
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	t = t.In(r.From.Location())
	return !t.Before(r.From) && t.Before(r.To)
}

// SingleDay reports whether the range spans exactly one calendar day.
func (r DateRange) SingleDay() bool {
	return SameDay(r.From, r.To.Add(-time.Nanosecond))
}

// DayRange is the range holding one calendar day.
func DayRange(day time.Time, label string) DateRange {
	from := StartOfDay(day)
	return DateRange{From: from, To: from.AddDate(0, 0, 1), Label: label}
}

// relativeKeywords are checked in this order.
var relativeKeywords = []string{"yesterday", "today", "last week", "last month"}

func hasRelativeKeyword(lower string) bool {
	return containsAny(lower, relativeKeywords)
}

// RelativeRange resolves relative day keywords against now: "yesterday",
// "today", "last week" (7 days back through today) and "last month"
// (one calendar month back through today).
func RelativeRange(lower string, now time.Time) (DateRange, bool) {
	today := StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	switch {
	case strings.Contains(lower, "yesterday"):
		y := today.AddDate(0, 0, -1)
		return DayRange(y, "yesterday ("+y.Format(dayLayout)+")"), true
	case strings.Contains(lower, "today"):
		return DayRange(today, "today ("+today.Format(dayLayout)+")"), true
	case strings.Contains(lower, "last week"):
		from := today.AddDate(0, 0, -7)
		return DateRange{From: from, To: tomorrow, Label: spanLabel("in the last week", from, today)}, true
	case strings.Contains(lower, "last month"):
		from := monthBefore(today)
		return DateRange{From: from, To: tomorrow, Label: spanLabel("in the last month", from, today)}, true
	}
	return DateRange{}, false
}

// monthBefore steps one calendar month back, clamping to the end of a
// shorter month: Mar 31 gives Feb 28 (or 29), not Mar 3.
func monthBefore(t time.Time) time.Time {
	y, m, d := t.Date()
	lastDay := time.Date(y, m, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(y, m-1, d, 0, 0, 0, 0, t.Location())
}

// ResolveDateRange prefers an explicit date token and falls back to the
// relative keywords.
func ResolveDateRange(msg Normalized, now time.Time) (DateRange, bool) {
	if d, ok := ExtractDate(msg.Lower, now.Location()); ok {
		return DayRange(d, "on "+d.Format(dayLayout)), true
	}
	return RelativeRange(msg.Lower, now)
}

func hasDateExpression(msg Normalized, loc *time.Location) bool {
	if hasRelativeKeyword(msg.Lower) {
		return true
	}
	_, ok := ExtractDate(msg.Lower, loc)
	return ok
}

func spanLabel(prefix string, from, to time.Time) string {
	return fmt.Sprintf("%s (%s to %s)", prefix, from.Format(shortLayout), to.Format(shortLayout))
}
