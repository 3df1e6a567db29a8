package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankEndpoint is a bank page that publishes its exchange rates.
type BankEndpoint struct {
	Bank string
	URL  string
}

// Quote is a pair of rates published by one bank. Sell is what the bank charges for
// one unit of foreign currency, Buy is what it pays for it.
type Quote struct {
	Sell decimal.Decimal
	Buy  decimal.Decimal
}

func (q Quote) Valid() bool {
	return q.Sell.IsPositive() && q.Buy.IsPositive()
}

type BankQuote struct {
	Bank string
	Quote
}

// Snapshot holds the quotes gathered during one collection cycle, one per bank,
// in configured bank order.
type Snapshot []BankQuote

func (s Snapshot) Empty() bool { return len(s) == 0 }

func (s Snapshot) Banks() []string {
	banks := make([]string, 0, len(s))
	for _, q := range s {
		banks = append(banks, q.Bank)
	}
	return banks
}

// RateObservation is a persisted row of the rates log.
type RateObservation struct {
	ID         int64
	Bank       string
	Sell       decimal.Decimal
	Buy        decimal.Decimal
	ObservedAt time.Time
}
