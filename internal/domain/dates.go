package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var datePhraseRe = regexp.MustCompile(
	`(?i)\b(` +
		`\d{4}-\d{2}-\d{2}` +
		`|` +
		`(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\s+\d{1,2},?\s+\d{4}` +
		`|` +
		`today|yesterday|now` +
		`|` +
		`last\s+(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday|week|month)` +
		`|` +
		`\d+\s+(?:day|week|hour)s?\s+ago` +
		`)`,
)

var agoRe = regexp.MustCompile(`^(\d+)\s+(day|week|hour)s?\s+ago$`)

// ParseDateArgument interprets a date-like tool argument. Full timestamps in any
// common layout are accepted as is; relative phrases ("yesterday", "3 days ago",
// "last monday") resolve against ref.
func ParseDateArgument(text string, ref time.Time, loc *time.Location) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	if t, ok := resolveRelative(strings.Join(strings.Fields(strings.ToLower(text)), " "), ref, loc); ok {
		return t, true
	}
	if t, err := dateparse.ParseIn(text, loc); err == nil {
		return t, true
	}

	m := datePhraseRe.FindStringSubmatch(text)
	if len(m) < 2 {
		return time.Time{}, false
	}
	token := strings.Join(strings.Fields(strings.ToLower(m[1])), " ")

	if t, ok := resolveRelative(token, ref, loc); ok {
		return t, true
	}

	t, err := dateparse.ParseIn(token, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func resolveRelative(token string, ref time.Time, loc *time.Location) (time.Time, bool) {
	ref = ref.In(loc)

	switch token {
	case "now":
		return ref, true
	case "today":
		return dateOnly(ref), true
	case "yesterday":
		return dateOnly(ref).AddDate(0, 0, -1), true
	case "last week":
		return dateOnly(ref).AddDate(0, 0, -7), true
	case "last month":
		return dateOnly(ref).AddDate(0, -1, 0), true
	}

	if m := agoRe.FindStringSubmatch(token); m != nil {
		n := 0
		for _, c := range m[1] {
			n = n*10 + int(c-'0')
		}
		switch m[2] {
		case "hour":
			return ref.Add(-time.Duration(n) * time.Hour), true
		case "day":
			return dateOnly(ref).AddDate(0, 0, -n), true
		case "week":
			return dateOnly(ref).AddDate(0, 0, -7*n), true
		}
	}

	if after, ok := strings.CutPrefix(token, "last "); ok {
		wd, ok := parseWeekday(after)
		if !ok {
			return time.Time{}, false
		}
		return previousWeekday(dateOnly(ref), wd), true
	}

	return time.Time{}, false
}

func parseWeekday(s string) (time.Weekday, bool) {
	switch strings.ToLower(s) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	default:
		return 0, false
	}
}

func previousWeekday(ref time.Time, target time.Weekday) time.Time {
	cur := ref.Weekday()
	delta := (int(cur) - int(target) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return ref.AddDate(0, 0, -delta)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
