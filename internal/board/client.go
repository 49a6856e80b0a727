// Package board mirrors live worksheet results to a remote board over a
// WebSocket connection.
package board

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pengelbrecht/mathx/internal/worksheet"
)

const (
	// DefaultBoardURL is the default board WebSocket endpoint.
	DefaultBoardURL = "wss://mathx.sh/api/sheets"

	// EnvToken is the environment variable for the board token.
	EnvToken = "MATHX_TOKEN"

	// EnvBoardURL is the environment variable to override the board URL.
	EnvBoardURL = "MATHX_URL"

	// ConfigFileName is the name of the config file in the user's home directory.
	ConfigFileName = ".mathxrc"
)

// State represents the connection state of the board client.
type State int

const (
	// Disconnected means not connected to the board.
	Disconnected State = iota
	// Connecting means attempting to connect.
	Connecting
	// Connected means connected and mirroring.
	Connected
	// StateError means the last connection attempt failed.
	StateError
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// SheetFullMessage carries the complete worksheet state, sent on connect.
type SheetFullMessage struct {
	Type     string              `json:"type"` // "sheet_full"
	Sheet    string              `json:"sheet"`
	Snapshot *worksheet.Snapshot `json:"snapshot"`
}

// ResultUpdateMessage carries a re-evaluated snapshot after a change.
type ResultUpdateMessage struct {
	Type     string              `json:"type"` // "result_update"
	Sheet    string              `json:"sheet"`
	Snapshot *worksheet.Snapshot `json:"snapshot"`
}

// Client manages the connection to a results board.
type Client struct {
	token    string
	boardURL string
	sheet    string

	conn   *websocket.Conn
	connMu sync.Mutex

	stopChan chan struct{}

	state    State
	stateMu  sync.RWMutex
	lastSync time.Time

	// Offline queue for snapshots produced while disconnected.
	pending   [][]byte
	pendingMu sync.Mutex

	// LoadSheet supplies the full worksheet state sent on (re)connect.
	LoadSheet func() (*worksheet.Snapshot, error)

	// OnStateChange is called on connection state transitions (optional).
	// Like LoadSheet it must be assigned before Run starts.
	OnStateChange func(state State)
}

// Config holds the board client configuration.
type Config struct {
	Token    string
	BoardURL string
	Sheet    string // worksheet name shown on the board (required)
}

// NewClient creates a board client with the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("token is required")
	}
	if cfg.Sheet == "" {
		return nil, fmt.Errorf("sheet name is required")
	}

	boardURL := cfg.BoardURL
	if boardURL == "" {
		boardURL = DefaultBoardURL
	}

	return &Client{
		token:    cfg.Token,
		boardURL: boardURL,
		sheet:    cfg.Sheet,
		stopChan: make(chan struct{}),
	}, nil
}

// LoadConfig assembles board configuration from environment and ~/.mathxrc.
// Returns nil if no token is configured (the board is optional).
// fallbackURL, typically from project config, is used when neither the
// environment nor the rc file sets a URL.
func LoadConfig(sheet, fallbackURL string) *Config {
	fileCfg := readConfigFile()

	token := os.Getenv(EnvToken)
	if token == "" {
		token = fileCfg.Token
	}
	if token == "" {
		return nil
	}

	boardURL := os.Getenv(EnvBoardURL)
	if boardURL == "" {
		boardURL = fileCfg.URL
	}
	if boardURL == "" {
		boardURL = fallbackURL
	}

	return &Config{
		Token:    token,
		BoardURL: boardURL,
		Sheet:    sheet,
	}
}

// configFile holds values read from ~/.mathxrc.
type configFile struct {
	Token string
	URL   string
}

// readConfigFile reads token and URL from ~/.mathxrc.
func readConfigFile() configFile {
	home, err := os.UserHomeDir()
	if err != nil {
		return configFile{}
	}

	data, err := os.ReadFile(filepath.Join(home, ConfigFileName))
	if err != nil {
		return configFile{}
	}

	return parseConfigFile(string(data))
}

// parseConfigFile parses key=value lines: token=xxx, url=xxx.
func parseConfigFile(content string) configFile {
	var cfg configFile
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "token=") {
			cfg.Token = strings.TrimPrefix(line, "token=")
		} else if strings.HasPrefix(line, "url=") {
			cfg.URL = strings.TrimPrefix(line, "url=")
		} else if cfg.Token == "" {
			// Legacy: first non-empty line without key= is the token
			cfg.Token = line
		}
	}
	return cfg
}

// Connect establishes the WebSocket connection to the board.
func (c *Client) Connect(ctx context.Context) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	wsURL := fmt.Sprintf("%s/%s/live?token=%s", c.boardURL, url.PathEscape(c.sheet), c.token)

	// Extract hostname for TLS ServerName (needed if connecting via IP).
	host := "mathx.sh"
	if strings.Contains(c.boardURL, "://") {
		parts := strings.SplitN(c.boardURL, "://", 2)
		if len(parts) == 2 {
			hostPort := strings.SplitN(parts[1], "/", 2)[0]
			host = strings.SplitN(hostPort, ":", 2)[0]
		}
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 30 * time.Second,
		TLSClientConfig: &tls.Config{
			ServerName: host,
		},
	}

	conn, resp, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			switch resp.StatusCode {
			case 401:
				return fmt.Errorf("authentication failed: missing or invalid token")
			case 403:
				return fmt.Errorf("access denied: token invalid, expired, or no access to sheet")
			}
		}
		return fmt.Errorf("failed to connect to board: %w", err)
	}

	c.conn = conn
	return nil
}

// Run connects to the board and mirrors snapshots until the context is
// cancelled. It automatically reconnects with exponential backoff.
func (c *Client) Run(ctx context.Context) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		select {
		case <-ctx.Done():
			c.setState(Disconnected)
			c.Close()
			return ctx.Err()
		case <-c.stopChan:
			c.setState(Disconnected)
			c.Close()
			return nil
		default:
		}

		c.setState(Connecting)

		if err := c.Connect(ctx); err != nil {
			c.setState(StateError)
			pending := c.PendingCount()
			if pending > 0 {
				fmt.Fprintf(os.Stderr, "board: connection failed: %v (retrying in %v, %d pending)\n", err, backoff, pending)
			} else {
				fmt.Fprintf(os.Stderr, "board: connection failed: %v (retrying in %v)\n", err, backoff)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		c.setState(Connected)
		fmt.Fprintf(os.Stderr, "board: connected to %s as %s\n", c.boardURL, c.sheet)
		backoff = time.Second

		if err := c.sendFullSheet(); err != nil {
			fmt.Fprintf(os.Stderr, "board: initial sync failed: %v (reconnecting...)\n", err)
			c.setState(StateError)
			continue
		}

		if err := c.flushPending(); err != nil {
			fmt.Fprintf(os.Stderr, "board: flush failed: %v (will retry)\n", err)
		}

		if err := c.handleMessages(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.setState(Disconnected)
			fmt.Fprintf(os.Stderr, "board: disconnected: %v (reconnecting...)\n", err)
		}
	}
}

// handleMessages keeps the connection alive and surfaces server errors.
func (c *Client) handleMessages(ctx context.Context) error {
	c.connMu.Lock()
	conn := c.conn
	c.connMu.Unlock()

	if conn == nil {
		return fmt.Errorf("connection closed")
	}

	conn.SetPongHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	pingDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-pingDone:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.connMu.Lock()
				conn := c.conn
				c.connMu.Unlock()
				if conn != nil {
					if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
						return
					}
				}
			}
		}
	}()
	defer close(pingDone)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.connMu.Lock()
		conn := c.conn
		c.connMu.Unlock()

		if conn == nil {
			return fmt.Errorf("connection closed")
		}

		conn.SetReadDeadline(time.Now().Add(90 * time.Second))

		_, rawMsg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read error: %w", err)
		}

		c.handleServerMessage(rawMsg)
	}
}

// handleServerMessage processes a JSON message from the board server.
// The mirror is one-directional; only errors are acted on.
func (c *Client) handleServerMessage(data []byte) {
	var typeOnly struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &typeOnly); err != nil {
		fmt.Fprintf(os.Stderr, "board: invalid message: %v\n", err)
		return
	}

	switch typeOnly.Type {
	case "error":
		var errMsg struct {
			Message string `json:"message"`
		}
		json.Unmarshal(data, &errMsg)
		fmt.Fprintf(os.Stderr, "board: server error: %s\n", errMsg.Message)
	default:
		// Unknown message types are ignored.
	}
}

// Publish sends a snapshot update to the board. If the connection is down,
// the update is queued and flushed on reconnect.
func (c *Client) Publish(snap *worksheet.Snapshot) error {
	msg := ResultUpdateMessage{
		Type:     "result_update",
		Sheet:    c.sheet,
		Snapshot: snap,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		c.queue(data)
		return nil
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.queue(data)
		return nil
	}

	return nil
}

// sendFullSheet sends the complete worksheet state on (re)connect.
func (c *Client) sendFullSheet() error {
	if c.LoadSheet == nil {
		return nil
	}

	snap, err := c.LoadSheet()
	if err != nil {
		return fmt.Errorf("load sheet: %w", err)
	}

	msg := SheetFullMessage{
		Type:     "sheet_full",
		Sheet:    c.sheet,
		Snapshot: snap,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("not connected")
	}

	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Close closes the connection with a proper WebSocket close handshake.
func (c *Client) Close() error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn != nil {
		closeMsg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "client shutting down")
		c.conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(5*time.Second))
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}

// Stop signals the client to stop and close.
func (c *Client) Stop() {
	close(c.stopChan)
}

// IsConnected returns true if the client is currently connected.
func (c *Client) IsConnected() bool {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	return c.conn != nil
}

// State returns the current connection state.
func (c *Client) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

// LastSync returns the time of the last successful connection.
func (c *Client) LastSync() time.Time {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.lastSync
}

// PendingCount returns the number of queued updates waiting to be sent.
func (c *Client) PendingCount() int {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	return len(c.pending)
}

// queue adds an update to the offline queue. Caller holds connMu.
func (c *Client) queue(data []byte) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	c.pending = append(c.pending, data)
}

// flushPending sends all queued updates.
func (c *Client) flushPending() error {
	c.pendingMu.Lock()
	pending := c.pending
	c.pending = nil
	c.pendingMu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	fmt.Fprintf(os.Stderr, "board: flushing %d pending updates\n", len(pending))

	for i, data := range pending {
		c.connMu.Lock()
		conn := c.conn
		c.connMu.Unlock()

		if conn == nil {
			c.requeue(pending[i:])
			return fmt.Errorf("connection closed while flushing")
		}

		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			c.requeue(pending[i:])
			return fmt.Errorf("write failed: %w", err)
		}
	}

	return nil
}

func (c *Client) requeue(pending [][]byte) {
	c.pendingMu.Lock()
	c.pending = append(pending, c.pending...)
	c.pendingMu.Unlock()
}

// setState updates the connection state and calls the callback if set.
func (c *Client) setState(state State) {
	c.stateMu.Lock()
	c.state = state
	if state == Connected {
		c.lastSync = time.Now()
	}
	c.stateMu.Unlock()

	if c.OnStateChange != nil {
		c.OnStateChange(state)
	}
}
