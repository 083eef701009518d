//go:build !integration

// File: internal/usecase/session_uc_test.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Chakis0/multibot-service/internal/domain"
)

func TestSessionTracker(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()

	t.Run("append extends the tracked message and edits it", func(t *testing.T) {
		bots := newMockResolver("bot1")
		tr := NewSessionTracker(newMemSessionRepo(), bots, logger)

		if err := tr.Record(ctx, "bot1-42-deadbeef", "bot1", 42, 7, "💳 Ссылка на оплату:\nhttps://pay.example/x"); err != nil {
			t.Fatal(err)
		}
		if err := tr.AppendText(ctx, "bot1", 42, "заказ #123"); err != nil {
			t.Fatalf("AppendText: %v", err)
		}

		edits := bots.senders["bot1"].Edited
		if len(edits) != 1 {
			t.Fatalf("got %d edits, want 1", len(edits))
		}
		if edits[0].MessageID != 7 {
			t.Errorf("edited message %d, want 7", edits[0].MessageID)
		}
		want := "💳 Ссылка на оплату:\nhttps://pay.example/x\nзаказ #123"
		if edits[0].Text != want {
			t.Errorf("edited text = %q, want %q", edits[0].Text, want)
		}

		s, err := tr.LookupByOrder(ctx, "bot1-42-deadbeef")
		if err != nil {
			t.Fatal(err)
		}
		if s.BaseText != want {
			t.Errorf("stored text = %q, want %q", s.BaseText, want)
		}
	})

	t.Run("append without a tracked message reports not found", func(t *testing.T) {
		bots := newMockResolver("bot1")
		tr := NewSessionTracker(newMemSessionRepo(), bots, logger)
		if err := tr.AppendText(ctx, "bot1", 42, "x"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("replace edits the existing message in place", func(t *testing.T) {
		bots := newMockResolver("bot1")
		tr := NewSessionTracker(newMemSessionRepo(), bots, logger)

		if err := tr.Record(ctx, "bot1-42-deadbeef", "bot1", 42, 9, "old text"); err != nil {
			t.Fatal(err)
		}
		if err := tr.ReplaceMessage(ctx, "bot1", 42, "new text"); err != nil {
			t.Fatalf("ReplaceMessage: %v", err)
		}

		sender := bots.senders["bot1"]
		if len(sender.Sent) != 0 {
			t.Error("replace must edit, not send, when a message exists")
		}
		if len(sender.Edited) != 1 || sender.Edited[0].MessageID != 9 || sender.Edited[0].Text != "new text" {
			t.Errorf("unexpected edits: %+v", sender.Edited)
		}
	})

	t.Run("replace sends a fresh message when the chat has none", func(t *testing.T) {
		bots := newMockResolver("bot1")
		tr := NewSessionTracker(newMemSessionRepo(), bots, logger)

		if err := tr.ReplaceMessage(ctx, "bot1", 42, "first text"); err != nil {
			t.Fatalf("ReplaceMessage: %v", err)
		}
		sender := bots.senders["bot1"]
		if len(sender.Sent) != 1 || sender.Sent[0].Text != "first text" {
			t.Fatalf("unexpected sends: %+v", sender.Sent)
		}

		// The fresh message becomes the tracked one.
		if err := tr.AppendText(ctx, "bot1", 42, "more"); err != nil {
			t.Fatalf("AppendText after replace: %v", err)
		}
		if len(sender.Edited) != 1 {
			t.Fatalf("append did not edit the fresh message")
		}
	})

	t.Run("concurrent replaces send exactly one message", func(t *testing.T) {
		bots := newMockResolver("bot1")
		tr := NewSessionTracker(newMemSessionRepo(), bots, logger)

		const n = 20
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if err := tr.ReplaceMessage(ctx, "bot1", 42, fmt.Sprintf("text-%d", i)); err != nil {
					t.Error(err)
				}
			}(i)
		}
		wg.Wait()

		sender := bots.senders["bot1"]
		if len(sender.Sent) != 1 {
			t.Errorf("sent %d messages, want exactly 1", len(sender.Sent))
		}
		if len(sender.Edited) != n-1 {
			t.Errorf("got %d edits, want %d", len(sender.Edited), n-1)
		}
	})

	t.Run("last message per chat is independent across tenants", func(t *testing.T) {
		bots := newMockResolver("bot1", "bot2")
		tr := NewSessionTracker(newMemSessionRepo(), bots, logger)

		if err := tr.Record(ctx, "bot1-42-aaaaaaaa", "bot1", 42, 1, "a"); err != nil {
			t.Fatal(err)
		}
		if err := tr.Record(ctx, "bot2-42-bbbbbbbb", "bot2", 42, 2, "b"); err != nil {
			t.Fatal(err)
		}

		s, err := tr.LastForChat(ctx, "bot1", 42)
		if err != nil {
			t.Fatal(err)
		}
		if s.OrderID != "bot1-42-aaaaaaaa" {
			t.Errorf("bot1 last = %q", s.OrderID)
		}
		s, err = tr.LastForChat(ctx, "bot2", 42)
		if err != nil {
			t.Fatal(err)
		}
		if s.OrderID != "bot2-42-bbbbbbbb" {
			t.Errorf("bot2 last = %q", s.OrderID)
		}
	})
}
