package models

import "fmt"

// CoinSymbol identifies one of the tracked coins. Each symbol owns its own
// comment thread and temperature accumulator.
type CoinSymbol string

const (
	SymbolBTC CoinSymbol = "BTC"
	SymbolETH CoinSymbol = "ETH"
	SymbolXRP CoinSymbol = "XRP"
)

// AllSymbols is the fixed, stable ordering used by every endpoint that
// returns per-symbol values.
var AllSymbols = []CoinSymbol{SymbolBTC, SymbolETH, SymbolXRP}

// ParseSymbol validates a raw path segment against the supported set.
func ParseSymbol(raw string) (CoinSymbol, error) {
	switch CoinSymbol(raw) {
	case SymbolBTC, SymbolETH, SymbolXRP:
		return CoinSymbol(raw), nil
	}
	return "", fmt.Errorf("unsupported coin symbol %q", raw)
}

func (s CoinSymbol) String() string {
	return string(s)
}
