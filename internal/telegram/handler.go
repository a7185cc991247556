package telegram

import (
	"fmt"
	"sync"
	"time"

	"github.com/gotd/td/tg"
)

// Turn is one inbound text message from a user, ready for the dialogue
// engine.
type Turn struct {
	UserID    int64
	Text      string
	Timestamp time.Time
}

// Handler turns raw Telegram updates into Turns (direct messages only)
type Handler struct {
	turnChan chan Turn

	mu    sync.RWMutex
	users map[int64]*tg.User // Cache of user info, needed for reply peers
}

// NewHandler creates a new Telegram update handler
func NewHandler() *Handler {
	return &Handler{
		turnChan: make(chan Turn, 100),
		users:    make(map[int64]*tg.User),
	}
}

// TurnChan returns the channel of inbound turns
func (h *Handler) TurnChan() <-chan Turn {
	return h.turnChan
}

// HandleUpdate processes a Telegram update
func (h *Handler) HandleUpdate(update tg.UpdatesClass) {
	switch u := update.(type) {
	case *tg.Updates:
		h.cacheEntities(u.Users)
		for _, upd := range u.Updates {
			h.handleSingleUpdate(upd)
		}
	case *tg.UpdatesCombined:
		h.cacheEntities(u.Users)
		for _, upd := range u.Updates {
			h.handleSingleUpdate(upd)
		}
	case *tg.UpdateShort:
		h.handleSingleUpdate(u.Update)
	case *tg.UpdateShortMessage:
		h.handleShortMessage(u)
	case *tg.UpdateShortChatMessage:
		// Group messages not supported - only direct chats
		return
	}
}

// cacheEntities caches user information from an update envelope
func (h *Handler) cacheEntities(users []tg.UserClass) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, u := range users {
		if user, ok := u.(*tg.User); ok {
			h.users[user.ID] = user
		}
	}
}

// handleSingleUpdate processes a single update
func (h *Handler) handleSingleUpdate(update tg.UpdateClass) {
	switch msg := update.(type) {
	case *tg.UpdateNewMessage:
		h.handleNewMessage(msg.Message)
	}
}

// handleNewMessage processes a new message (direct chats only)
func (h *Handler) handleNewMessage(msg tg.MessageClass) {
	message, ok := msg.(*tg.Message)
	if !ok {
		return
	}
	if message.Out || message.Message == "" {
		return
	}

	// Only process direct messages from users, skip groups/channels
	peer, ok := message.PeerID.(*tg.PeerUser)
	if !ok {
		return
	}

	h.push(Turn{
		UserID:    peer.UserID,
		Text:      message.Message,
		Timestamp: time.Unix(int64(message.Date), 0),
	})
}

// handleShortMessage processes a short direct message update
func (h *Handler) handleShortMessage(msg *tg.UpdateShortMessage) {
	if msg.Out || msg.Message == "" {
		return
	}

	h.push(Turn{
		UserID:    msg.UserID,
		Text:      msg.Message,
		Timestamp: time.Unix(int64(msg.Date), 0),
	})
}

func (h *Handler) push(turn Turn) {
	fmt.Printf("[Telegram DM: %s] %s\n", h.displayName(turn.UserID), truncateText(turn.Text, 100))

	select {
	case h.turnChan <- turn:
	default:
		fmt.Println("Telegram: turn channel full, dropping message")
	}
}

// inputPeer builds the reply peer for a user seen in an earlier update.
func (h *Handler) inputPeer(userID int64) (tg.InputPeerClass, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	user, ok := h.users[userID]
	if !ok {
		return nil, fmt.Errorf("no cached peer for user %d", userID)
	}
	return &tg.InputPeerUser{UserID: user.ID, AccessHash: user.AccessHash}, nil
}

// displayName returns a name for logging
func (h *Handler) displayName(userID int64) string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	user, ok := h.users[userID]
	if !ok {
		return fmt.Sprintf("User %d", userID)
	}
	if user.FirstName != "" {
		if user.LastName != "" {
			return user.FirstName + " " + user.LastName
		}
		return user.FirstName
	}
	if user.Username != "" {
		return "@" + user.Username
	}
	return fmt.Sprintf("User %d", user.ID)
}

// truncateText shortens text for logging
func truncateText(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
