package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Outcome string

const (
	OutcomeNoData Outcome = "no_data"
	OutcomeReady  Outcome = "ready"
)

type BankAverage struct {
	Bank    string
	AvgSell decimal.Decimal
}

// Report is the result of analyzing a snapshot. Only Outcome is meaningful when it is
// OutcomeNoData.
type Report struct {
	Outcome    Outcome
	Cheapest   BankQuote
	Priciest   BankQuote
	Margin     decimal.Decimal
	Trend      []BankAverage
	ObservedAt time.Time
}

func NoDataReport() Report {
	return Report{Outcome: OutcomeNoData}
}

func (r Report) Ready() bool { return r.Outcome == OutcomeReady }

// Favorable reports whether buying at the cheapest bank and selling at the priciest one
// leaves a positive spread.
func (r Report) Favorable() bool {
	return r.Ready() && r.Margin.IsPositive()
}
