// Package dialog implements the bot's conversation core: the guided
// event-creation dialogue, the deletion dialogue, and the AI extraction
// bridge, all driven by one turn-at-a-time engine.
package dialog

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/satriadp/jadwalbot/internal/gcal"
	"github.com/satriadp/jadwalbot/internal/session"
)

// Calendar is the calendar provider consumed by the dialogues.
type Calendar interface {
	IsAuthenticated() bool
	CreateEvent(input gcal.EventInput) (*gcal.EventDetails, error)
	ListUpcoming(max int64) ([]gcal.EventDetails, error)
	ListEventsInRange(timeMin, timeMax time.Time, max int64) ([]gcal.EventDetails, error)
	DeleteEvent(eventID string) error
}

// Model is the language model consumed by the extraction bridge. Reply
// returns the raw model text; classification is the bridge's job.
type Model interface {
	Reply(ctx context.Context, userID int64, text string) (string, error)
	ClearHistory(userID int64)
	IsConfigured() bool
}

// Engine routes one user turn at a time to whichever dialogue is open for
// that user, or to the AI extraction bridge when none is.
type Engine struct {
	sessions *session.Store
	calendar Calendar
	model    Model
	timezone string
	location *time.Location
	now      func() time.Time

	// Per-user locks stop concurrent turns for the same user from
	// interleaving session reads and writes. Arrival ordering is the
	// transport's job.
	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex
}

// EngineConfig holds dependencies for the dialogue engine.
type EngineConfig struct {
	Sessions *session.Store
	Calendar Calendar
	Model    Model
	Timezone string
	Location *time.Location
}

// NewEngine creates a dialogue engine.
func NewEngine(cfg EngineConfig) *Engine {
	sessions := cfg.Sessions
	if sessions == nil {
		sessions = session.NewStore()
	}
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}

	return &Engine{
		sessions: sessions,
		calendar: cfg.Calendar,
		model:    cfg.Model,
		timezone: cfg.Timezone,
		location: location,
		now:      time.Now,
		locks:    make(map[int64]*sync.Mutex),
	}
}

// HandleTurn processes one inbound text turn for a user and returns the
// replies to send back, in order.
func (e *Engine) HandleTurn(ctx context.Context, userID int64, text string) []string {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	trimmed := strings.TrimSpace(text)

	if command, args, ok := parseCommand(trimmed); ok {
		return e.handleCommand(ctx, userID, command, args)
	}

	sess := e.sessions.Get(userID)
	if sess != nil {
		switch sess.Stage {
		case session.StageAwaitSelection:
			return e.handleSelectionTurn(userID, sess, text)
		default:
			return e.handleGuidedTurn(userID, sess, text)
		}
	}

	return e.handleFreeText(ctx, userID, trimmed)
}

// parseCommand recognizes slash commands and the original reply-keyboard
// button labels, which arrive as plain text.
func parseCommand(text string) (command, args string, ok bool) {
	switch text {
	case "📅 Tambah Jadwal":
		return "add_event", "", true
	case "📋 Lihat Hari Ini":
		return "list_events", "", true
	case "🗓️ Lihat Minggu":
		return "list_week", "", true
	case "🗑️ Hapus Jadwal":
		return "delete_event", "", true
	case "🤖 Chat AI":
		return "ai_mode", "", true
	case "📚 Bantuan":
		return "help", "", true
	}

	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}

	body := strings.TrimPrefix(text, "/")
	command, args, _ = strings.Cut(body, " ")
	// Strip a @botname suffix, Telegram appends it in groups.
	command, _, _ = strings.Cut(command, "@")
	return strings.ToLower(command), strings.TrimSpace(args), command != ""
}

func (e *Engine) handleCommand(ctx context.Context, userID int64, command, args string) []string {
	switch command {
	case "start":
		return []string{welcomeMessage(e.clockNow().Hour())}
	case "help":
		return []string{replyHelp}
	case "ai_mode":
		return []string{replyAIMode}
	case "connect_calendar":
		return e.connectCalendar()
	case "add_event":
		return e.startGuided(userID)
	case "delete_event":
		return e.startDeletion(userID)
	case "list_events":
		return e.listToday()
	case "list_week":
		return e.listWeek()
	case "ai":
		if args == "" {
			return []string{replyAIUsage}
		}
		return e.handleFreeText(ctx, userID, args)
	case "reset":
		if e.model != nil {
			e.model.ClearHistory(userID)
		}
		return []string{replyHistoryCleared}
	case "cancel":
		e.sessions.End(userID)
		return []string{replyCancelled}
	}

	return []string{replyUnknownCommand}
}

// connectCalendar reports calendar availability with a remediation hint.
func (e *Engine) connectCalendar() []string {
	if e.calendar != nil && e.calendar.IsAuthenticated() {
		return []string{replyCalendarConnected}
	}
	return []string{replyCalendarUnavailable}
}

func (e *Engine) userLock(userID int64) *sync.Mutex {
	e.locksMu.Lock()
	defer e.locksMu.Unlock()

	lock, ok := e.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[userID] = lock
	}
	return lock
}

// clockNow returns the current time in the configured zone.
func (e *Engine) clockNow() time.Time {
	return e.now().In(e.location)
}

func (e *Engine) calendarReady() bool {
	return e.calendar != nil && e.calendar.IsAuthenticated()
}
