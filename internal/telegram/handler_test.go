package telegram

import (
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleUpdate_DirectMessage(t *testing.T) {
	h := NewHandler()

	h.HandleUpdate(&tg.Updates{
		Users: []tg.UserClass{
			&tg.User{ID: 7, AccessHash: 99, FirstName: "Sari"},
		},
		Updates: []tg.UpdateClass{
			&tg.UpdateNewMessage{
				Message: &tg.Message{
					PeerID:  &tg.PeerUser{UserID: 7},
					Message: "besok meeting jam 10",
					Date:    1718160600,
				},
			},
		},
	})

	select {
	case turn := <-h.TurnChan():
		assert.Equal(t, int64(7), turn.UserID)
		assert.Equal(t, "besok meeting jam 10", turn.Text)
	default:
		t.Fatal("expected a turn on the channel")
	}

	peer, err := h.inputPeer(7)
	require.NoError(t, err)
	user, ok := peer.(*tg.InputPeerUser)
	require.True(t, ok)
	assert.Equal(t, int64(99), user.AccessHash)
}

func TestHandleUpdate_ShortMessage(t *testing.T) {
	h := NewHandler()

	h.HandleUpdate(&tg.UpdateShortMessage{
		UserID:  11,
		Message: "/start",
		Date:    1718160600,
	})

	select {
	case turn := <-h.TurnChan():
		assert.Equal(t, int64(11), turn.UserID)
		assert.Equal(t, "/start", turn.Text)
	default:
		t.Fatal("expected a turn on the channel")
	}
}

func TestHandleUpdate_Skips(t *testing.T) {
	h := NewHandler()

	// Outgoing messages, empty text, and group chats never become turns.
	h.HandleUpdate(&tg.UpdateShortMessage{UserID: 5, Message: "echo", Out: true})
	h.HandleUpdate(&tg.UpdateShortMessage{UserID: 5, Message: ""})
	h.HandleUpdate(&tg.UpdateShortChatMessage{ChatID: 3, Message: "hi group"})
	h.HandleUpdate(&tg.Updates{
		Updates: []tg.UpdateClass{
			&tg.UpdateNewMessage{
				Message: &tg.Message{
					PeerID:  &tg.PeerChat{ChatID: 3},
					Message: "group text",
				},
			},
		},
	})

	select {
	case turn := <-h.TurnChan():
		t.Fatalf("unexpected turn: %+v", turn)
	default:
	}
}

func TestInputPeer_UnknownUser(t *testing.T) {
	h := NewHandler()

	_, err := h.inputPeer(404)
	assert.Error(t, err)
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "abc", truncateText("abc", 5))
	assert.Equal(t, "abcde...", truncateText("abcdefgh", 5))
}
