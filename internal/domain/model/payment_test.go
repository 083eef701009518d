//go:build !integration

// File: internal/domain/model/payment_test.go
package model

import (
	"errors"
	"testing"

	"github.com/Chakis0/multibot-service/internal/domain"
)

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		currency string
		amount   int64
		wantErr  error
	}{
		{CurrencyRUB, 200, nil},
		{CurrencyRUB, 85000, nil},
		{CurrencyRUB, 199, domain.ErrAmountOutOfRange},
		{CurrencyRUB, 85001, domain.ErrAmountOutOfRange},
		{CurrencyRUB, 0, domain.ErrAmountOutOfRange},
		{CurrencyRUB, -500, domain.ErrAmountOutOfRange},
		{CurrencyUSD, 10, nil},
		{CurrencyUSD, 990, nil},
		{CurrencyUSD, 9, domain.ErrAmountOutOfRange},
		{CurrencyUSD, 991, domain.ErrAmountOutOfRange},
		{CurrencyUSDT, 100, domain.ErrUnsupportedCurrency}, // confirmation-only currency
		{"EUR", 100, domain.ErrUnsupportedCurrency},
		{"", 100, domain.ErrUnsupportedCurrency},
	}
	for _, c := range cases {
		err := ValidateAmount(c.currency, c.amount)
		if c.wantErr == nil {
			if err != nil {
				t.Errorf("ValidateAmount(%s, %d): unexpected error %v", c.currency, c.amount, err)
			}
			continue
		}
		if !errors.Is(err, c.wantErr) {
			t.Errorf("ValidateAmount(%s, %d): got %v, want %v", c.currency, c.amount, err, c.wantErr)
		}
	}
}

func TestMinorUnits(t *testing.T) {
	if got := MinorUnits(500); got != 50000 {
		t.Errorf("MinorUnits(500) = %d, want 50000", got)
	}
}

func TestMinorToHuman(t *testing.T) {
	cases := []struct {
		raw, currency, want string
	}{
		{"50000", "RUB", "500.00"},
		{"50050", "RUB", "500.50"},
		{"1", "RUB", "0.01"},
		{"99900", "USD", "999.00"},
		{"123456", "USDT", "1234.56"},
		{"-50000", "RUB", "-500.00"},
		{"50000", "BTC", "50000"}, // unknown currency passes through whole
		{"oops", "RUB", "oops"},   // unparseable echoes as received
	}
	for _, c := range cases {
		if got := MinorToHuman(c.raw, c.currency); got != c.want {
			t.Errorf("MinorToHuman(%q, %q) = %q, want %q", c.raw, c.currency, got, c.want)
		}
	}
}

func TestFormatThousands(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{200, "200"},
		{1500, "1 500"},
		{85000, "85 000"},
		{1234567, "1 234 567"},
		{-85000, "-85 000"},
	}
	for _, c := range cases {
		if got := FormatThousands(c.in); got != c.want {
			t.Errorf("FormatThousands(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
