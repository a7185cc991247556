package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var defaultLocation = time.UTC

// ResolveLocation returns the configured location with UTC fallback.
func ResolveLocation(timezone string) (*time.Location, bool) {
	if timezone == "" {
		return defaultLocation, true
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return defaultLocation, true
	}
	return loc, false
}

// Fixed bilingual keyword table for relative dates (Indonesian/English).
var relativeDayOffsets = map[string]int{
	"hari ini":           0,
	"today":              0,
	"besok":              1,
	"tomorrow":           1,
	"lusa":               2,
	"day after tomorrow": 2,
}

// Weekday names matched by substring, both languages.
var weekdayNames = map[string]time.Weekday{
	"senin":     time.Monday,
	"monday":    time.Monday,
	"selasa":    time.Tuesday,
	"tuesday":   time.Tuesday,
	"rabu":      time.Wednesday,
	"wednesday": time.Wednesday,
	"kamis":     time.Thursday,
	"thursday":  time.Thursday,
	"jumat":     time.Friday,
	"friday":    time.Friday,
	"sabtu":     time.Saturday,
	"saturday":  time.Saturday,
	"minggu":    time.Sunday,
	"sunday":    time.Sunday,
}

// weekdayOrder fixes iteration order over weekdayNames so resolution does
// not depend on map order.
var weekdayOrder = []string{
	"senin", "monday",
	"selasa", "tuesday",
	"rabu", "wednesday",
	"kamis", "thursday",
	"jumat", "friday",
	"sabtu", "saturday",
	"minggu", "sunday",
}

var (
	// The leading \b keeps D/M/Y from matching inside a 4-digit year, so
	// Y-M-D input actually reaches its own branch.
	dayFirstPattern  = regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})`)
	yearFirstPattern = regexp.MustCompile(`\b(\d{4})[/\-.](\d{1,2})[/\-.](\d{1,2})`)
	clockPattern     = regexp.MustCompile(`(\d{1,2})[:.](\d{2})`)
	integerPattern   = regexp.MustCompile(`\d+`)
	hoursPattern     = regexp.MustCompile(`(\d+)\s*(?:jam|hours?)`)
	minutesPattern   = regexp.MustCompile(`(\d+)\s*(?:menit|minutes?)`)
)

// ResolveDate parses free-form date text relative to now and returns the
// resolved calendar date at midnight in now's location.
//
// Branches are tried in a fixed order and later branches assume earlier ones
// did not match: keyword table, next-week/next-month substrings, D/M/Y,
// Y-M-D, weekday names. "minggu depan" (next week) must be checked before
// weekday names or the "minggu" (Sunday) substring would claim it.
func ResolveDate(text string, now time.Time) (time.Time, error) {
	text = strings.ToLower(strings.TrimSpace(text))

	if offset, ok := relativeDayOffsets[text]; ok {
		return midnight(now.AddDate(0, 0, offset)), nil
	}

	if strings.Contains(text, "minggu depan") || strings.Contains(text, "next week") {
		return midnight(now.AddDate(0, 0, 7)), nil
	}
	// Next month is approximated as a fixed 30-day offset.
	if strings.Contains(text, "bulan depan") || strings.Contains(text, "next month") {
		return midnight(now.AddDate(0, 0, 30)), nil
	}

	if m := dayFirstPattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location()), nil
	}

	if m := yearFirstPattern.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location()), nil
	}

	for _, name := range weekdayOrder {
		if !strings.Contains(text, name) {
			continue
		}
		target := weekdayNames[name]
		ahead := int(target) - int(now.Weekday())
		// Naming today's weekday means next week; "today" has its own keyword.
		if ahead <= 0 {
			ahead += 7
		}
		return midnight(now.AddDate(0, 0, ahead)), nil
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %q", text)
}

// ScanHourMinute extracts an hour and minute from text containing at least
// two embedded integers, the first taken as hour and the second as minute.
// An afternoon/evening marker ("pm", "sore", "malam") bumps an hour below
// twelve by twelve. Hour and minute are not range-checked; garbage in
// propagates, matching the original dialogue behavior.
func ScanHourMinute(text string) (hour, minute int, err error) {
	numbers := integerPattern.FindAllString(text, 2)
	if len(numbers) < 2 {
		return 0, 0, fmt.Errorf("need hour and minute, got %d number(s)", len(numbers))
	}

	hour, _ = strconv.Atoi(numbers[0])
	minute, _ = strconv.Atoi(numbers[1])

	lower := strings.ToLower(text)
	if hour < 12 && (strings.Contains(lower, "pm") || strings.Contains(lower, "sore") || strings.Contains(lower, "malam")) {
		hour += 12
	}

	return hour, minute, nil
}

// ResolveClock parses standalone time text. An H:M or H.M pattern is tried
// first and honors only plain am/pm markers; a bare integer falls back to
// hour-with-zero-minutes and additionally honors the Indonesian period
// words (pagi=AM, sore/malam=PM).
func ResolveClock(text string) (hour, minute int, err error) {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, word := range []string{"jam", "pukul", "at"} {
		text = strings.ReplaceAll(text, word, "")
	}
	text = strings.TrimSpace(text)

	if m := clockPattern.FindStringSubmatch(text); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])

		if strings.Contains(text, "pm") && hour < 12 {
			hour += 12
		} else if strings.Contains(text, "am") && hour == 12 {
			hour = 0
		}
		return hour, minute, nil
	}

	if m := integerPattern.FindString(text); m != "" {
		hour, _ = strconv.Atoi(m)

		switch {
		case strings.Contains(text, "malam"), strings.Contains(text, "sore"), strings.Contains(text, "pm"):
			if hour < 12 {
				hour += 12
			}
		case strings.Contains(text, "pagi"), strings.Contains(text, "am"):
			if hour == 12 {
				hour = 0
			}
		}
		return hour, 0, nil
	}

	return 0, 0, fmt.Errorf("unable to parse time: %q", text)
}

// ResolveDuration parses free-form duration text. An integer immediately
// before an hour marker and one before a minute marker contribute
// additively; with neither present the duration defaults to one hour.
// Parsing never fails.
func ResolveDuration(text string) (hours, minutes int) {
	text = strings.ToLower(text)

	if m := hoursPattern.FindStringSubmatch(text); m != nil {
		hours, _ = strconv.Atoi(m[1])
	}
	if m := minutesPattern.FindStringSubmatch(text); m != nil {
		minutes, _ = strconv.Atoi(m[1])
	}

	if hours == 0 && minutes == 0 {
		hours = 1
	}
	return hours, minutes
}

// CombineDateClock builds an instant from a midnight-normalized date and a
// clock time, in the date's location.
func CombineDateClock(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

// ParseDateClock parses a strict YYYY-MM-DD date and HH:MM clock pair into
// an instant in loc. Used for structured payloads coming back from the
// language model.
func ParseDateClock(dateStr, clockStr string, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(dateStr) == "" || strings.TrimSpace(clockStr) == "" {
		return time.Time{}, fmt.Errorf("date and time are required")
	}

	t, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+clockStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse %q %q: %w", dateStr, clockStr, err)
	}
	return t, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
