package service

import (
	"sync"

	"cointemper/internal/http-api/models"
)

// BaseTemperature is the derived value of a symbol nobody has voted on.
const BaseTemperature = 36.5

// TemperStep is how far one vote moves a symbol's temperature.
const TemperStep = 0.1

// TemperatureTracker accumulates up/down sentiment per coin symbol and
// derives a temperature from the balance. State is process-wide and
// in-memory only: a restart resets every symbol to the base temperature,
// which callers must treat as expected behavior.
type TemperatureTracker struct {
	mu       sync.Mutex
	counters map[models.CoinSymbol]*temperCounter
}

type temperCounter struct {
	up   int64
	down int64
}

// NewTemperatureTracker returns a tracker with zeroed accumulators for every
// supported symbol.
func NewTemperatureTracker() *TemperatureTracker {
	counters := make(map[models.CoinSymbol]*temperCounter, len(models.AllSymbols))
	for _, sym := range models.AllSymbols {
		counters[sym] = &temperCounter{}
	}
	return &TemperatureTracker{counters: counters}
}

// Increase records a buy signal and returns the new derived temperature.
func (t *TemperatureTracker) Increase(symbol models.CoinSymbol) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	c := t.counters[symbol]
	c.up++
	return derive(c)
}

// Decrease records a sell signal and returns the new derived temperature.
func (t *TemperatureTracker) Decrease(symbol models.CoinSymbol) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	c := t.counters[symbol]
	c.down++
	return derive(c)
}

// Snapshot returns the derived temperature for every tracked symbol in the
// fixed {BTC, ETH, XRP} order.
func (t *TemperatureTracker) Snapshot() []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]float64, 0, len(models.AllSymbols))
	for _, sym := range models.AllSymbols {
		out = append(out, derive(t.counters[sym]))
	}
	return out
}

// derive maps the signed vote balance onto a temperature. An increase
// followed by a decrease lands back on the prior value exactly.
func derive(c *temperCounter) float64 {
	return BaseTemperature + TemperStep*float64(c.up-c.down)
}
