package calculator

import (
	"errors"
	"math"
)

// Ema is an exponential moving average parameterized by the half life
// of its samples: after halfLife steps a sample's weight has decayed
// to one half.
type Ema struct {
	a             float64
	value         float64
	seeded        bool
	samplesNeeded int
}

// NewEma creates an EMA with the given half life in samples.
func NewEma(halfLife float64) (*Ema, error) {
	if halfLife <= 0 {
		return nil, errors.New("half life must be positive")
	}
	return &Ema{
		a:             math.Pow(0.5, 1/halfLife),
		samplesNeeded: int(math.Ceil(halfLife)),
	}, nil
}

// Step feeds one sample into the average.
func (e *Ema) Step(v float64) {
	if !e.seeded {
		e.value = v
		e.seeded = true
	}
	e.value = e.a*e.value + (1-e.a)*v
	if e.samplesNeeded > 0 {
		e.samplesNeeded--
	}
}

// Value returns the current average.
func (e *Ema) Value() float64 { return e.value }

// Ready reports whether at least a half life of samples has been seen.
func (e *Ema) Ready() bool { return e.samplesNeeded == 0 }

// SmoothSeries returns a copy of values smoothed by an EMA with the
// given half life. The output has the same length as the input.
func SmoothSeries(values []float64, halfLife float64) ([]float64, error) {
	ema, err := NewEma(halfLife)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		ema.Step(v)
		out[i] = ema.Value()
	}
	return out, nil
}
