package loader

import (
	"fmt"
	"time"

	"PairScope/internal/model"
)

// Request identifies one cached price history slice.
type Request struct {
	DataDir  string
	Exchange string
	Pair     string
	TickSize string
	Start    time.Time
	NumTicks int
}

// Loader defines the interface for loading cached candle series.
type Loader interface {
	Load(req Request) ([]model.OHLCV, error)
	Name() string
}

// LoadError is returned when a requested series cannot be retrieved,
// either because the range is unavailable or the backing storage is
// unreadable. Callers propagate it unchanged.
type LoadError struct {
	Exchange string
	Pair     string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s on %s: %v", e.Pair, e.Exchange, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
