package finance

import "github.com/shopspring/decimal"

// ledger keeps a running total in decimal so long horizons do not drift
// before cumulative savings and investment are compared.
type ledger struct {
	total  decimal.Decimal
	series []float64
}

func newLedger(capacity int) *ledger {
	return &ledger{total: decimal.Zero, series: make([]float64, 0, capacity)}
}

// post adds amount to the running total and records the new balance.
func (l *ledger) post(amount float64) {
	l.total = l.total.Add(decimal.NewFromFloat(amount))
	l.series = append(l.series, l.totalFloat())
}

func (l *ledger) totalFloat() float64 {
	return l.total.Round(2).InexactFloat64()
}
