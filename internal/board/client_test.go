package board

import (
	"testing"

	"github.com/pengelbrecht/mathx/internal/worksheet"
)

func TestParseConfigFile(t *testing.T) {
	cases := []struct {
		name      string
		content   string
		wantToken string
		wantURL   string
	}{
		{"key value pairs", "token=abc123\nurl=wss://example.test/boards\n", "abc123", "wss://example.test/boards"},
		{"token only", "token=abc123", "abc123", ""},
		{"legacy bare token", "abc123\n", "abc123", ""},
		{"comments and blanks", "# my config\n\ntoken=abc123\n", "abc123", ""},
		{"empty", "", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := parseConfigFile(tc.content)
			if cfg.Token != tc.wantToken {
				t.Errorf("Token = %q, want %q", cfg.Token, tc.wantToken)
			}
			if cfg.URL != tc.wantURL {
				t.Errorf("URL = %q, want %q", cfg.URL, tc.wantURL)
			}
		})
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{Sheet: "demo"}); err == nil {
		t.Error("expected error for missing token")
	}
	if _, err := NewClient(Config{Token: "abc"}); err == nil {
		t.Error("expected error for missing sheet")
	}

	c, err := NewClient(Config{Token: "abc", Sheet: "demo"})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	if c.boardURL != DefaultBoardURL {
		t.Errorf("boardURL = %q, want default %q", c.boardURL, DefaultBoardURL)
	}
}

func TestPublishQueuesWhenDisconnected(t *testing.T) {
	c, err := NewClient(Config{Token: "abc", Sheet: "demo"})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}

	snap := &worksheet.Snapshot{Name: "demo"}
	if err := c.Publish(snap); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if got := c.PendingCount(); got != 1 {
		t.Errorf("PendingCount() = %d, want 1", got)
	}
	if c.IsConnected() {
		t.Error("IsConnected() = true without a connection")
	}
}

func TestSetStateInvokesCallback(t *testing.T) {
	c, err := NewClient(Config{Token: "abc", Sheet: "demo"})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}

	var got []State
	c.OnStateChange = func(state State) {
		got = append(got, state)
	}

	c.setState(Connecting)
	c.setState(Connected)

	if len(got) != 2 || got[0] != Connecting || got[1] != Connected {
		t.Errorf("callback states = %v, want [Connecting Connected]", got)
	}
	if c.State() != Connected {
		t.Errorf("State() = %v, want Connected", c.State())
	}
	if c.LastSync().IsZero() {
		t.Error("LastSync() should be set after Connected")
	}
}

func TestStateString(t *testing.T) {
	cases := []struct {
		state    State
		expected string
	}{
		{Disconnected, "disconnected"},
		{Connecting, "connecting"},
		{Connected, "connected"},
		{StateError, "error"},
		{State(99), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.state.String(); got != tc.expected {
			t.Errorf("State(%d).String() = %q, want %q", tc.state, got, tc.expected)
		}
	}
}
