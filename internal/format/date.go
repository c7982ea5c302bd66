package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	monthNames = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
	monthAbbr = [...]string{"ene", "feb", "mar", "abr", "may", "jun",
		"jul", "ago", "sept", "oct", "nov", "dic"}
	weekdayNames = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	weekdayAbbr  = [...]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"}

	upper = cases.Upper(language.Spanish)
)

// compactDate matches the YYYYMMDD value ACF date pickers return.
var compactDate = regexp.MustCompile(`^\d{8}$`)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"January 2, 2006",
}

// ParseEventDate reads the date formats WordPress and ACF emit. Values without a
// zone are interpreted as UTC.
func ParseEventDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if compactDate.MatchString(s) {
		t, err := time.Parse("20060102", s)
		return t, err == nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a long Spanish date, e.g. "lunes, 15 de enero de 2024".
// Unparsable input is returned unchanged.
func FormatDate(s string) string {
	t, ok := ParseEventDate(s)
	if !ok {
		return s
	}
	return fmt.Sprintf("%s, %d de %s de %d", weekdayNames[t.Weekday()], t.Day(), monthNames[t.Month()-1], t.Year())
}

// FormatShortDate renders "15 de enero de 2024". Unparsable input is returned unchanged.
func FormatShortDate(s string) string {
	t, ok := ParseEventDate(s)
	if !ok {
		return s
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// EventDate is the split date shown on event cards.
type EventDate struct {
	Day     string
	Month   string
	Year    string
	Weekday string
}

// FormatEventDate splits a date for the calendar badge: zero-padded day and
// uppercased abbreviations. ok is false when the input cannot be parsed.
func FormatEventDate(s string) (EventDate, bool) {
	t, ok := ParseEventDate(s)
	if !ok {
		return EventDate{}, false
	}
	return EventDate{
		Day:     fmt.Sprintf("%02d", t.Day()),
		Month:   upper.String(monthAbbr[t.Month()-1]),
		Year:    fmt.Sprintf("%d", t.Year()),
		Weekday: upper.String(weekdayAbbr[t.Weekday()]),
	}, true
}

// Year returns the four-digit year of a date, or "" when it cannot be parsed.
func Year(s string) string {
	t, ok := ParseEventDate(s)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d", t.Year())
}
