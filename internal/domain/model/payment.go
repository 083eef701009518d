package model

import (
	"fmt"
	"strconv"

	"github.com/Chakis0/multibot-service/internal/domain"
)

// Supported payment currencies. USDT appears only on the confirmation side
// (the processor may settle profit in it); payments are issued in RUB or USD.
const (
	CurrencyRUB  = "RUB"
	CurrencyUSD  = "USD"
	CurrencyUSDT = "USDT"
)

// Processor-imposed bounds on user-supplied amounts, in whole currency units.
var amountBounds = map[string]struct{ Min, Max int64 }{
	CurrencyRUB: {Min: 200, Max: 85000},
	CurrencyUSD: {Min: 10, Max: 990},
}

// ValidateAmount checks amount against the currency's bounds. It must be
// called before any network I/O on the issue path.
func ValidateAmount(currency string, amount int64) error {
	b, ok := amountBounds[currency]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedCurrency, currency)
	}
	if amount < b.Min || amount > b.Max {
		return fmt.Errorf("%w: %d %s is outside %d..%d", domain.ErrAmountOutOfRange, amount, currency, b.Min, b.Max)
	}
	return nil
}

// MinorUnits converts a whole-unit amount to the processor's minor units.
func MinorUnits(amount int64) int64 { return amount * 100 }

// MinorToHuman renders a raw minor-unit value for humans: divide by 100 with
// two decimals for RUB/USD/USDT, everything else passes through unchanged.
// The non-uniform rule mirrors the processor's own minor-unit convention.
func MinorToHuman(raw, currency string) string {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return raw
	}
	switch currency {
	case CurrencyRUB, CurrencyUSD, CurrencyUSDT:
		sign := ""
		if v < 0 {
			sign, v = "-", -v
		}
		return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
	}
	return strconv.FormatInt(v, 10)
}

// FormatThousands renders a whole-unit amount with space-separated thousands
// groups, the way link messages show ruble amounts.
func FormatThousands(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	if amount < 0 {
		return "-" + FormatThousands(-amount)
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, c)
	}
	return string(out)
}

// PaymentRequest is the transient body of one payment-creation call.
type PaymentRequest struct {
	OrderID     string
	CustomerID  string // pseudo-random customer/account identifier
	AmountMinor int64
	Currency    string
	Description string
}

// PaymentLink is the successful outcome of an issue: a processor-hosted link
// plus the order id the confirmation will later carry.
type PaymentLink struct {
	Link    string `json:"payment_link"`
	OrderID string `json:"order_id"`
}
