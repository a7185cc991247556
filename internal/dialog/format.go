package dialog

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/satriadp/jadwalbot/internal/gcal"
)

// Telegram rejects messages above 4096 characters; stay under with room
// for emoji and URL expansion.
const maxMessageLength = 4000

var indonesianDays = map[time.Weekday]string{
	time.Monday:    "Senin",
	time.Tuesday:   "Selasa",
	time.Wednesday: "Rabu",
	time.Thursday:  "Kamis",
	time.Friday:    "Jumat",
	time.Saturday:  "Sabtu",
	time.Sunday:    "Minggu",
}

// listToday replies with the remaining schedule for the current day.
func (e *Engine) listToday() []string {
	if !e.calendarReady() {
		return []string{replyCalendarUnavailable}
	}

	now := e.clockNow()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, e.location)
	events, err := e.calendar.ListEventsInRange(dayStart, dayStart.AddDate(0, 0, 1), maxDeleteCandidates)
	if err != nil {
		return []string{fmt.Sprintf(replyListFailed, err)}
	}
	if len(events) == 0 {
		return []string{replyNoEventsToday}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Jadwal Hari Ini (%s, %s)\n", indonesianDays[now.Weekday()], now.Format("02/01/2006"))
	for _, ev := range events {
		b.WriteString("\n")
		b.WriteString(e.formatEvent(ev))
	}
	return splitMessage(b.String())
}

// listWeek replies with the schedule from Monday through Sunday of the
// current week, grouped by day.
func (e *Engine) listWeek() []string {
	if !e.calendarReady() {
		return []string{replyCalendarUnavailable}
	}

	now := e.clockNow()
	offset := (int(now.Weekday()) + 6) % 7 // days since Monday
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, e.location).AddDate(0, 0, -offset)
	events, err := e.calendar.ListEventsInRange(weekStart, weekStart.AddDate(0, 0, 7), 50)
	if err != nil {
		return []string{fmt.Sprintf(replyListFailed, err)}
	}
	if len(events) == 0 {
		return []string{replyNoEventsWeek}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🗓️ Jadwal Minggu Ini (%s - %s)\n",
		weekStart.Format("02/01"), weekStart.AddDate(0, 0, 6).Format("02/01/2006"))

	var currentDay string
	for _, ev := range events {
		day := ev.StartTime.In(e.location).Format("2006-01-02")
		if day != currentDay {
			currentDay = day
			local := ev.StartTime.In(e.location)
			fmt.Fprintf(&b, "\n%s, %s\n", indonesianDays[local.Weekday()], local.Format("02/01"))
		}
		b.WriteString(e.formatEvent(ev))
		b.WriteString("\n")
	}
	return splitMessage(b.String())
}

// formatEvent renders one event as a bullet line.
func (e *Engine) formatEvent(ev gcal.EventDetails) string {
	title := ev.Summary
	if title == "" {
		title = "Untitled Event"
	}

	line := fmt.Sprintf("• %s %s", e.formatEventTime(ev), title)
	if ev.Location != "" {
		line += fmt.Sprintf("\n  📍 %s", ev.Location)
	}
	if ev.Description != "" {
		snippet := ev.Description
		if runes := []rune(snippet); len(runes) > 50 {
			snippet = string(runes[:50]) + "..."
		}
		line += fmt.Sprintf("\n  📝 %s", snippet)
	}
	return line
}

func (e *Engine) formatEventTime(ev gcal.EventDetails) string {
	if ev.AllDay {
		return "Sepanjang hari"
	}
	start := ev.StartTime.In(e.location)
	end := ev.EndTime.In(e.location)
	return fmt.Sprintf("%s - %s", start.Format("15:04"), end.Format("15:04"))
}

// formatDuration renders a duration the way it is echoed back to the user,
// normalizing overflow minutes into hours first.
func formatDuration(hours, minutes int) string {
	hours += minutes / 60
	minutes %= 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%d jam %d menit", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%d jam", hours)
	default:
		return fmt.Sprintf("%d menit", minutes)
	}
}

// greeting picks a salutation for the hour of day. Hours before five are
// still night.
func greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Selamat pagi"
	case hour >= 12 && hour < 15:
		return "Selamat siang"
	case hour >= 15 && hour < 18:
		return "Selamat sore"
	default:
		return "Selamat malam"
	}
}

// splitMessage cuts a long reply into chunks Telegram will accept,
// preferring to break on a newline. A cut never lands inside a multi-byte
// character.
func splitMessage(text string) []string {
	if len(text) <= maxMessageLength {
		return []string{text}
	}

	var parts []string
	for len(text) > maxMessageLength {
		cut := strings.LastIndexByte(text[:maxMessageLength], '\n')
		if cut <= 0 {
			cut = maxMessageLength
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		parts = append(parts, text[:cut])
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}
