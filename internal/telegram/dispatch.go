package telegram

import (
	"context"
	"fmt"
	"sync"
)

const defaultWorkerCount = 4

// TurnHandler is the dialogue engine consumed by the dispatcher.
type TurnHandler interface {
	HandleTurn(ctx context.Context, userID int64, text string) []string
}

// ReplySender delivers outbound reply text to a user.
type ReplySender interface {
	SendMessage(ctx context.Context, userID int64, text string) error
}

// Dispatcher routes every inbound turn to a fixed worker chosen by user
// ID, so one user's turns are processed strictly in arrival order while
// different users proceed in parallel.
type Dispatcher struct {
	engine      TurnHandler
	sender      ReplySender
	turns       <-chan Turn
	workerCount int
	shards      []chan Turn

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher over the given turn channel
func NewDispatcher(engine TurnHandler, sender ReplySender, turns <-chan Turn, workerCount int) *Dispatcher {
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}

	ctx, cancel := context.WithCancel(context.Background())

	shards := make([]chan Turn, workerCount)
	for i := range shards {
		shards[i] = make(chan Turn, 20)
	}

	return &Dispatcher{
		engine:      engine,
		sender:      sender,
		turns:       turns,
		workerCount: workerCount,
		shards:      shards,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start begins processing turns from the channel
func (d *Dispatcher) Start() {
	fmt.Println("Turn dispatcher started")

	for _, shard := range d.shards {
		d.wg.Add(1)
		go d.processLoop(shard)
	}

	d.wg.Add(1)
	go d.routeLoop()
}

// Stop gracefully shuts down the dispatcher
func (d *Dispatcher) Stop() {
	fmt.Println("Stopping turn dispatcher...")
	d.cancel()
	d.wg.Wait()
	fmt.Println("Turn dispatcher stopped")
}

// routeLoop assigns each turn to its user's shard. Same user, same shard:
// a single goroutine drains each shard, so arrival order survives end to
// end. A full shard applies backpressure instead of reordering.
func (d *Dispatcher) routeLoop() {
	defer d.wg.Done()

	for {
		select {
		case <-d.ctx.Done():
			return
		case turn, ok := <-d.turns:
			if !ok {
				fmt.Println("Turn dispatcher: channel closed")
				return
			}
			select {
			case d.shards[shardFor(turn.UserID, d.workerCount)] <- turn:
			case <-d.ctx.Done():
				return
			}
		}
	}
}

// processLoop drains one shard sequentially
func (d *Dispatcher) processLoop(shard <-chan Turn) {
	defer d.wg.Done()

	for {
		select {
		case <-d.ctx.Done():
			return
		case turn := <-shard:
			d.processTurn(turn)
		}
	}
}

// processTurn runs one turn through the engine and sends every reply
func (d *Dispatcher) processTurn(turn Turn) {
	replies := d.engine.HandleTurn(d.ctx, turn.UserID, turn.Text)

	for _, reply := range replies {
		if reply == "" {
			continue
		}
		if err := d.sender.SendMessage(d.ctx, turn.UserID, reply); err != nil {
			fmt.Printf("Turn dispatcher: error replying to %d: %v\n", turn.UserID, err)
		}
	}
}

func shardFor(userID int64, workerCount int) int {
	idx := int(userID % int64(workerCount))
	if idx < 0 {
		idx += workerCount
	}
	return idx
}
