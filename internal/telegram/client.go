package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/message"
	"github.com/gotd/td/tg"
)

// Client manages the Telegram connection for the bot account
type Client struct {
	apiID       int
	apiHash     string
	botToken    string
	sessionPath string
	client      *telegram.Client
	api         *tg.Client
	sender      *message.Sender
	handler     *Handler
	connected   bool
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	updatesChan chan tg.UpdatesClass
}

// ClientConfig holds configuration for the Telegram client
type ClientConfig struct {
	APIID       int
	APIHash     string
	BotToken    string
	SessionPath string
	Handler     *Handler
}

// NewClient creates a new Telegram client
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIID == 0 || cfg.APIHash == "" {
		return nil, fmt.Errorf("Telegram API ID and API Hash are required")
	}
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("Telegram bot token is required")
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Client{
		apiID:       cfg.APIID,
		apiHash:     cfg.APIHash,
		botToken:    cfg.BotToken,
		sessionPath: cfg.SessionPath,
		handler:     cfg.Handler,
		ctx:         ctx,
		cancel:      cancel,
		updatesChan: make(chan tg.UpdatesClass, 100),
	}

	return c, nil
}

// Connect initializes the client and signs in with the bot token
func (c *Client) Connect() error {
	c.mu.RLock()
	if c.connected || c.api != nil {
		c.mu.RUnlock()
		return nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	if c.connected || c.api != nil {
		c.mu.Unlock()
		return nil
	}

	sessionStorage := &FileSessionStorage{Path: c.sessionPath}

	client := telegram.NewClient(c.apiID, c.apiHash, telegram.Options{
		SessionStorage: sessionStorage,
		UpdateHandler:  c,
	})

	c.client = client
	c.mu.Unlock()

	go func() {
		if err := client.Run(c.ctx, func(ctx context.Context) error {
			status, err := client.Auth().Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get auth status: %w", err)
			}

			if !status.Authorized {
				fmt.Println("Telegram: Signing in with bot token...")
				if _, err := client.Auth().Bot(ctx, c.botToken); err != nil {
					return fmt.Errorf("bot sign-in failed: %w", err)
				}
			} else {
				fmt.Println("Telegram: Already authorized")
			}

			api := client.API()
			c.mu.Lock()
			c.api = api
			c.sender = message.NewSender(api)
			c.connected = true
			c.mu.Unlock()

			// Block until context is cancelled
			<-ctx.Done()
			return ctx.Err()
		}); err != nil && err != context.Canceled {
			fmt.Printf("Telegram client error: %v\n", err)
		}
	}()

	// Wait for sign-in with timeout
	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			return fmt.Errorf("timeout waiting for Telegram client to connect")
		case <-ticker.C:
			c.mu.RLock()
			ready := c.connected
			c.mu.RUnlock()
			if ready {
				fmt.Println("Telegram: Client connected and ready")
				return nil
			}
		}
	}
}

// Disconnect closes the Telegram connection
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	c.connected = false
}

// IsConnected returns whether the client is connected and signed in
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// SendMessage sends a text reply to a user seen in an earlier update
func (c *Client) SendMessage(ctx context.Context, userID int64, text string) error {
	c.mu.RLock()
	sender := c.sender
	c.mu.RUnlock()

	if sender == nil {
		return fmt.Errorf("client not connected")
	}

	peer, err := c.handler.inputPeer(userID)
	if err != nil {
		return err
	}

	if _, err := sender.To(peer).Text(ctx, text); err != nil {
		return fmt.Errorf("failed to send message to %d: %w", userID, err)
	}
	return nil
}

// Handle implements telegram.UpdateHandler
func (c *Client) Handle(ctx context.Context, u tg.UpdatesClass) error {
	if c.handler == nil {
		return nil
	}

	select {
	case c.updatesChan <- u:
	default:
		fmt.Println("Telegram: Updates channel full, dropping update")
	}

	return nil
}

// StartUpdateLoop starts processing updates
func (c *Client) StartUpdateLoop() {
	go func() {
		for {
			select {
			case <-c.ctx.Done():
				return
			case update := <-c.updatesChan:
				c.handler.HandleUpdate(update)
			}
		}
	}()
}
