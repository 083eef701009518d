//go:build !integration

// File: internal/domain/model/order_test.go
package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/Chakis0/multibot-service/internal/domain"
)

func TestOrderIDRoundTrip(t *testing.T) {
	cases := []struct {
		botKey string
		chatID int64
	}{
		{"bot1", 42},
		{"shop", -100123456789}, // group chats have negative ids
		{"k", 1},
	}
	for _, c := range cases {
		id := NewOrderID(c.botKey, c.chatID)

		key, err := BotKeyFromOrderID(id)
		if err != nil {
			t.Fatalf("BotKeyFromOrderID(%q): %v", id, err)
		}
		if key != c.botKey {
			t.Errorf("bot key: got %q, want %q", key, c.botKey)
		}

		gotKey, gotChat, err := SplitOrderID(id)
		if err != nil {
			t.Fatalf("SplitOrderID(%q): %v", id, err)
		}
		if gotKey != c.botKey || gotChat != c.chatID {
			t.Errorf("split %q: got (%q, %d), want (%q, %d)", id, gotKey, gotChat, c.botKey, c.chatID)
		}
	}
}

func TestOrderIDSuffixShape(t *testing.T) {
	id := NewOrderID("bot1", 42)
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		t.Fatalf("order id %q has %d parts", id, len(parts))
	}
	if len(parts[2]) != 8 {
		t.Errorf("suffix %q should be 8 chars", parts[2])
	}
	for _, c := range parts[2] {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Errorf("suffix %q contains non-hex char %q", parts[2], c)
		}
	}
}

func TestOrderIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewOrderID("bot1", 42)
		if seen[id] {
			t.Fatalf("duplicate order id %q", id)
		}
		seen[id] = true
	}
}

func TestSplitOrderIDMalformed(t *testing.T) {
	for _, bad := range []string{
		"",
		"noseparator",
		"bot1-42",         // missing suffix
		"bot1-abc-deadbe", // chat id not a number
		"-42-deadbeef",    // empty key
	} {
		if _, _, err := SplitOrderID(bad); !errors.Is(err, domain.ErrMalformedOrderID) {
			t.Errorf("SplitOrderID(%q): got %v, want ErrMalformedOrderID", bad, err)
		}
	}
}

func TestBotKeyFromOrderIDMalformed(t *testing.T) {
	for _, bad := range []string{"", "nodash", "-42-deadbeef"} {
		if _, err := BotKeyFromOrderID(bad); !errors.Is(err, domain.ErrMalformedOrderID) {
			t.Errorf("BotKeyFromOrderID(%q): got %v, want ErrMalformedOrderID", bad, err)
		}
	}
}
