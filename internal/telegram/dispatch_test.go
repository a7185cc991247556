package telegram

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEngine records the order turns arrive per user.
type recordingEngine struct {
	mu       sync.Mutex
	seen     map[int64][]string
	total    int
	expected int
	done     chan struct{}
}

func newRecordingEngine(expected int) *recordingEngine {
	return &recordingEngine{
		seen:     make(map[int64][]string),
		expected: expected,
		done:     make(chan struct{}),
	}
}

func (e *recordingEngine) HandleTurn(_ context.Context, userID int64, text string) []string {
	// Stall a little so a racy dispatcher would visibly reorder.
	time.Sleep(time.Millisecond)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.seen[userID] = append(e.seen[userID], text)
	e.total++
	if e.total == e.expected {
		close(e.done)
	}
	return nil
}

type nopSender struct{}

func (nopSender) SendMessage(context.Context, int64, string) error { return nil }

func TestDispatcher_KeepsPerUserOrder(t *testing.T) {
	const users = 6
	const turnsPerUser = 25

	engine := newRecordingEngine(users * turnsPerUser)
	turns := make(chan Turn, users*turnsPerUser)

	d := NewDispatcher(engine, nopSender{}, turns, 3)
	d.Start()
	defer d.Stop()

	// Interleave users the way real traffic arrives.
	for i := 0; i < turnsPerUser; i++ {
		for u := int64(1); u <= users; u++ {
			turns <- Turn{UserID: u, Text: fmt.Sprintf("turn-%d", i)}
		}
	}

	select {
	case <-engine.done:
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for turns to be processed")
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()
	for u := int64(1); u <= users; u++ {
		require.Len(t, engine.seen[u], turnsPerUser)
		for i, text := range engine.seen[u] {
			assert.Equal(t, fmt.Sprintf("turn-%d", i), text,
				"user %d saw turns out of order", u)
		}
	}
}

// collectingSender records every outbound reply.
type collectingSender struct {
	mu      sync.Mutex
	replies []string
}

func (s *collectingSender) SendMessage(_ context.Context, _ int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, text)
	return nil
}

type echoEngine struct{}

func (echoEngine) HandleTurn(_ context.Context, _ int64, text string) []string {
	return []string{"re: " + text, ""}
}

func TestDispatcher_SendsRepliesAndSkipsEmpty(t *testing.T) {
	sender := &collectingSender{}
	turns := make(chan Turn, 1)

	d := NewDispatcher(echoEngine{}, sender, turns, 1)
	d.Start()

	turns <- Turn{UserID: 7, Text: "halo"}

	assert.Eventually(t, func() bool {
		sender.mu.Lock()
		defer sender.mu.Unlock()
		return len(sender.replies) == 1
	}, 5*time.Second, 10*time.Millisecond)

	d.Stop()

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Equal(t, []string{"re: halo"}, sender.replies)
}

func TestShardFor(t *testing.T) {
	assert.Equal(t, 1, shardFor(5, 4))
	assert.Equal(t, 0, shardFor(8, 4))
	// Negative IDs still land on a valid shard.
	assert.GreaterOrEqual(t, shardFor(-3, 4), 0)
	assert.Less(t, shardFor(-3, 4), 4)
	// Same user always maps to the same shard.
	assert.Equal(t, shardFor(42, 4), shardFor(42, 4))
}
