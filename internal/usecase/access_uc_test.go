//go:build !integration

// File: internal/usecase/access_uc_test.go
package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestAccessControl(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()

	t.Run("base whitelist members have access on every tenant", func(t *testing.T) {
		ac := NewAccessControl([]int64{100}, newMockWhitelistRepo(), logger)
		if !ac.HasAccess(ctx, "bot1", 100) || !ac.HasAccess(ctx, "bot2", 100) {
			t.Error("base member must have access on all tenants")
		}
		if ac.HasAccess(ctx, "bot1", 200) {
			t.Error("unknown chat must not have access")
		}
	})

	t.Run("granted access is per tenant", func(t *testing.T) {
		wl := newMockWhitelistRepo()
		ac := NewAccessControl(nil, wl, logger)

		if err := ac.Grant(ctx, "bot1", 200); err != nil {
			t.Fatal(err)
		}
		if !ac.HasAccess(ctx, "bot1", 200) {
			t.Error("granted chat must have access")
		}
		if ac.HasAccess(ctx, "bot2", 200) {
			t.Error("grant on bot1 must not leak to bot2")
		}
	})

	t.Run("revoke reports whether the chat was present", func(t *testing.T) {
		wl := newMockWhitelistRepo()
		ac := NewAccessControl(nil, wl, logger)

		if err := ac.Grant(ctx, "bot1", 200); err != nil {
			t.Fatal(err)
		}
		removed, err := ac.Revoke(ctx, "bot1", 200)
		if err != nil || !removed {
			t.Errorf("Revoke = (%v, %v), want (true, nil)", removed, err)
		}
		removed, err = ac.Revoke(ctx, "bot1", 200)
		if err != nil || removed {
			t.Errorf("second Revoke = (%v, %v), want (false, nil)", removed, err)
		}
	})

	t.Run("repository failure denies access", func(t *testing.T) {
		wl := newMockWhitelistRepo()
		wl.ContainsErr = errors.New("disk on fire")
		ac := NewAccessControl(nil, wl, logger)
		if ac.HasAccess(ctx, "bot1", 200) {
			t.Error("lookup failure must deny access")
		}
	})

	t.Run("only base members are admins", func(t *testing.T) {
		ac := NewAccessControl([]int64{100}, newMockWhitelistRepo(), logger)
		if !ac.IsAdmin(100) {
			t.Error("base member must be admin")
		}
		if err := ac.Grant(ctx, "bot1", 200); err != nil {
			t.Fatal(err)
		}
		if ac.IsAdmin(200) {
			t.Error("dynamically granted chat must not be admin")
		}
	})
}
