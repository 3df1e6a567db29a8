package rate

import (
	"slices"
	"strings"

	"bankrates/internal/domain"

	"github.com/shopspring/decimal"
)

const trendPlaces = 2

// Analyze picks the bank with the lowest sell rate and the bank with the highest buy
// rate. On equal rates the bank that comes first in the snapshot wins, which makes the
// configured bank order the tie-break. An empty snapshot yields a no-data report.
func Analyze(snapshot domain.Snapshot, history []domain.RateObservation) domain.Report {
	if snapshot.Empty() {
		return domain.NoDataReport()
	}

	cheapest, priciest := snapshot[0], snapshot[0]
	for _, q := range snapshot[1:] {
		if q.Sell.LessThan(cheapest.Sell) {
			cheapest = q
		}
		if q.Buy.GreaterThan(priciest.Buy) {
			priciest = q
		}
	}

	return domain.Report{
		Outcome:  domain.OutcomeReady,
		Cheapest: cheapest,
		Priciest: priciest,
		Margin:   priciest.Buy.Sub(cheapest.Sell),
		Trend:    Trend(history),
	}
}

// Trend returns every bank's mean sell rate over history, rounded to two places and
// sorted by bank name. Empty history gives an empty trend.
func Trend(history []domain.RateObservation) []domain.BankAverage {
	if len(history) == 0 {
		return nil
	}

	type acc struct {
		sum   decimal.Decimal
		count int64
	}
	byBank := make(map[string]*acc)
	for _, o := range history {
		a, ok := byBank[o.Bank]
		if !ok {
			a = &acc{}
			byBank[o.Bank] = a
		}
		a.sum = a.sum.Add(o.Sell)
		a.count++
	}

	trend := make([]domain.BankAverage, 0, len(byBank))
	for bank, a := range byBank {
		avg := a.sum.Div(decimal.NewFromInt(a.count)).Round(trendPlaces)
		trend = append(trend, domain.BankAverage{Bank: bank, AvgSell: avg})
	}
	slices.SortFunc(trend, func(a, b domain.BankAverage) int {
		return strings.Compare(a.Bank, b.Bank)
	})
	return trend
}
