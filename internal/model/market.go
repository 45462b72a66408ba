package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// AlignedTable holds closing prices for several trading pairs joined
// on a shared ascending timestamp axis. Every row has a close for
// every pair; rows without full coverage were dropped by the join.
type AlignedTable struct {
	Pairs  []string
	Times  []time.Time
	Closes map[string][]float64
}

// Len returns the number of aligned rows.
func (t *AlignedTable) Len() int { return len(t.Times) }

// Column returns the close series for the given pair.
func (t *AlignedTable) Column(pair string) ([]float64, bool) {
	c, ok := t.Closes[pair]
	return c, ok
}
