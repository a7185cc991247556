package dialog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/satriadp/jadwalbot/internal/gcal"
	"github.com/satriadp/jadwalbot/internal/timeutil"
)

// ResultKind classifies a model reply.
type ResultKind int

const (
	// ResultChat is a plain conversational reply, relayed verbatim.
	ResultChat ResultKind = iota
	// ResultSchedule is a reply carrying a structured scheduling payload.
	ResultSchedule
	// ResultError means the model call itself failed.
	ResultError
)

// SchedulePayload is the structured event the model embeds in its reply
// when it detects scheduling intent.
type SchedulePayload struct {
	Action      string `json:"action"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	StartTime   string `json:"start_time"`
	EndDate     string `json:"end_date"`
	EndTime     string `json:"end_time"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// ExtractionResult is the bridge's classification of one model reply.
type ExtractionResult struct {
	Kind    ResultKind
	Payload *SchedulePayload
	Message string
}

// extract sends the user's text to the model and classifies the reply. A
// reply counts as a schedule only when the region between its first '{'
// and last '}' decodes as a payload object.
func (e *Engine) extract(ctx context.Context, userID int64, text string) ExtractionResult {
	reply, err := e.model.Reply(ctx, userID, text)
	if err != nil {
		return ExtractionResult{
			Kind:    ResultError,
			Message: fmt.Sprintf(replyModelFailed, err),
		}
	}
	return classifyReply(reply)
}

func classifyReply(reply string) ExtractionResult {
	start := strings.IndexByte(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start >= 0 && end > start {
		var payload SchedulePayload
		if err := json.Unmarshal([]byte(reply[start:end+1]), &payload); err == nil {
			return ExtractionResult{Kind: ResultSchedule, Payload: &payload, Message: reply}
		}
	}
	return ExtractionResult{Kind: ResultChat, Message: reply}
}

// handleFreeText routes text with no open dialogue through the model and,
// when a create_event payload comes back, into the calendar.
func (e *Engine) handleFreeText(ctx context.Context, userID int64, text string) []string {
	if e.model == nil || !e.model.IsConfigured() {
		return []string{replyModelUnavailable}
	}

	result := e.extract(ctx, userID, text)
	if result.Kind != ResultSchedule {
		return splitMessage(result.Message)
	}
	if result.Payload.Action != "create_event" || !e.calendarReady() {
		// Unknown action or no calendar: hand the raw reply back so the
		// user still sees what the model said.
		return splitMessage(result.Message)
	}

	return []string{e.createFromPayload(result.Payload, result.Message)}
}

// createFromPayload turns an extracted payload into a calendar event. Any
// failure keeps the raw model reply visible so the user can retry by hand.
func (e *Engine) createFromPayload(p *SchedulePayload, raw string) string {
	start, err := timeutil.ParseDateClock(p.StartDate, p.StartTime, e.location)
	if err != nil {
		return fmt.Sprintf(replyExtractFailed, err, raw)
	}
	end, err := timeutil.ParseDateClock(p.EndDate, p.EndTime, e.location)
	if err != nil {
		return fmt.Sprintf(replyExtractFailed, err, raw)
	}
	if !end.After(start) {
		return fmt.Sprintf(replyExtractFailed, fmt.Errorf("waktu selesai harus setelah waktu mulai"), raw)
	}

	title := p.Title
	if title == "" {
		title = "Untitled Event"
	}
	created, err := e.calendar.CreateEvent(gcal.EventInput{
		Summary:     title,
		Description: p.Description,
		Location:    p.Location,
		StartTime:   start,
		EndTime:     end,
	})
	if err != nil {
		return fmt.Sprintf(replyExtractFailed, err, raw)
	}

	reply := fmt.Sprintf(replyCreated,
		title,
		start.Format("02/01/2006"),
		start.Format("15:04"),
		end.Format("15:04"))
	if p.Location != "" {
		reply += fmt.Sprintf("\n📍 Lokasi: %s", p.Location)
	}
	if created != nil && created.HTMLLink != "" {
		reply += fmt.Sprintf("\n\n🔗 Lihat di Google Calendar: %s", created.HTMLLink)
	}
	return reply
}
