package dialog

import (
	"fmt"
	"strings"
	"time"

	"github.com/satriadp/jadwalbot/internal/gcal"
	"github.com/satriadp/jadwalbot/internal/session"
	"github.com/satriadp/jadwalbot/internal/timeutil"
)

const createdViaTag = "Dibuat melalui Jadwal Bot"

// startGuided opens the step-by-step event creation dialogue, replacing
// any dialogue the user already had open.
func (e *Engine) startGuided(userID int64) []string {
	if !e.calendarReady() {
		return []string{replyCalendarUnavailable}
	}

	e.sessions.Begin(userID, session.StageAwaitTitle)
	return []string{replyAskTitle}
}

// handleGuidedTurn advances the guided dialogue by one step. A turn that
// fails to parse re-prompts without changing the stage.
func (e *Engine) handleGuidedTurn(userID int64, sess *session.Session, text string) []string {
	switch sess.Stage {
	case session.StageAwaitTitle:
		sess.Draft.Title = text
		sess.Stage = session.StageAwaitDate
		return []string{fmt.Sprintf(replyAskDate, text)}

	case session.StageAwaitDate:
		date, err := timeutil.ResolveDate(text, e.clockNow())
		if err != nil {
			return []string{replyBadDate}
		}
		sess.Draft.Date = date
		sess.Stage = session.StageAwaitTime
		return []string{fmt.Sprintf(replyAskTime, date.Format("02/01/2006"))}

	case session.StageAwaitTime:
		hour, minute, err := timeutil.ScanHourMinute(text)
		if err != nil {
			return []string{replyBadTime}
		}
		sess.Draft.Hour = hour
		sess.Draft.Minute = minute
		sess.Stage = session.StageAwaitDuration
		return []string{fmt.Sprintf(replyAskDuration, hour, minute)}

	case session.StageAwaitLocation:
		if !isSkip(text) {
			sess.Draft.Location = text
		}
		return e.createFromDraft(userID, sess)

	default: // session.StageAwaitDuration
		hours, minutes := timeutil.ResolveDuration(text)
		sess.Draft.DurationHours = hours
		sess.Draft.DurationMinutes = minutes
		sess.Stage = session.StageAwaitLocation
		return []string{fmt.Sprintf(replyAskLocation, formatDuration(hours, minutes))}
	}
}

func isSkip(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.EqualFold(trimmed, "skip") || strings.EqualFold(trimmed, "lewati")
}

// createFromDraft turns the accumulated draft into a calendar event and
// closes the dialogue whether creation succeeds or not.
func (e *Engine) createFromDraft(userID int64, sess *session.Session) []string {
	defer e.sessions.End(userID)

	draft := sess.Draft
	start := timeutil.CombineDateClock(draft.Date, draft.Hour, draft.Minute)
	end := start.Add(time.Duration(draft.DurationHours)*time.Hour +
		time.Duration(draft.DurationMinutes)*time.Minute)

	created, err := e.calendar.CreateEvent(gcal.EventInput{
		Summary:     draft.Title,
		Description: createdViaTag,
		Location:    draft.Location,
		StartTime:   start,
		EndTime:     end,
	})
	if err != nil {
		return []string{fmt.Sprintf(replyCreateFailed, err)}
	}

	reply := fmt.Sprintf(replyCreated,
		draft.Title,
		start.Format("02/01/2006"),
		start.Format("15:04"),
		end.Format("15:04"))
	if draft.Location != "" {
		reply += fmt.Sprintf("\n📍 Lokasi: %s", draft.Location)
	}
	if created != nil && created.HTMLLink != "" {
		reply += fmt.Sprintf("\n\n🔗 Lihat di Google Calendar: %s", created.HTMLLink)
	}
	return []string{reply}
}
