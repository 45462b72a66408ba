package loader

import (
	"time"

	"PairScope/internal/model"
)

// MockLoader returns controllable fixed data for development and testing.
type MockLoader struct {
	// Series maps pair identifiers to canned bars. Pairs without an
	// entry get generated bars around BasePrice.
	Series    map[string][]model.OHLCV
	BasePrice float64
	// Err, when set, is returned (wrapped in a LoadError) for every load.
	Err error
}

func (m *MockLoader) Name() string { return "mock" }

func (m *MockLoader) Load(req Request) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, &LoadError{Exchange: req.Exchange, Pair: req.Pair, Err: m.Err}
	}
	if bars, ok := m.Series[req.Pair]; ok {
		return bars, nil
	}
	return generateMockBars(m.BasePrice, req.Start, req.NumTicks), nil
}

func generateMockBars(basePrice float64, start time.Time, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   start.Add(time.Duration(i) * time.Minute),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000,
		}
	}
	return bars
}
