package dialog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/satriadp/jadwalbot/internal/session"
)

const maxDeleteCandidates = 10

// startDeletion lists upcoming events and opens the selection dialogue.
// The numbered list shown to the user and the stored candidate slice are
// built from the same snapshot, so a selection always maps to the event
// the user saw.
func (e *Engine) startDeletion(userID int64) []string {
	if !e.calendarReady() {
		return []string{replyCalendarUnavailable}
	}

	events, err := e.calendar.ListUpcoming(maxDeleteCandidates)
	if err != nil {
		return []string{fmt.Sprintf(replyListFailed, err)}
	}
	if len(events) == 0 {
		return []string{replyNothingToDelete}
	}

	sess := e.sessions.Begin(userID, session.StageAwaitSelection)

	var b strings.Builder
	b.WriteString(replyDeleteHeader)
	for i, ev := range events {
		title := ev.Summary
		if title == "" {
			title = "Untitled Event"
		}
		sess.Candidates = append(sess.Candidates, session.Candidate{ID: ev.ID, Title: title})
		fmt.Fprintf(&b, "\n%d. %s (%s)", i+1, title, e.formatEventTime(ev))
	}
	b.WriteString(replyDeleteFooter)
	return []string{b.String()}
}

// handleSelectionTurn resolves the user's pick against the stored
// candidates. Invalid input re-prompts and keeps the dialogue open.
func (e *Engine) handleSelectionTurn(userID int64, sess *session.Session, text string) []string {
	trimmed := strings.TrimSpace(text)
	if strings.EqualFold(trimmed, "cancel") || strings.EqualFold(trimmed, "batal") {
		e.sessions.End(userID)
		return []string{replyDeleteCancelled}
	}

	choice, err := strconv.Atoi(trimmed)
	if err != nil {
		return []string{replyBadSelection}
	}
	if choice < 1 || choice > len(sess.Candidates) {
		return []string{fmt.Sprintf(replySelectionOutOfRange, len(sess.Candidates))}
	}

	candidate := sess.Candidates[choice-1]
	e.sessions.End(userID)

	if err := e.calendar.DeleteEvent(candidate.ID); err != nil {
		return []string{fmt.Sprintf(replyDeleteFailed, err)}
	}
	return []string{fmt.Sprintf(replyDeleted, candidate.Title)}
}
