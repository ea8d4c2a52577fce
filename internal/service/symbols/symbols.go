// Package symbols holds the shared crypto symbol to CoinGecko coin-id table.
// Both the quote and history clients resolve ids through the same lookup so
// the mappings cannot drift apart.
package symbols

import "strings"

// Lookup maps upper-case ticker symbols to provider coin ids.
type Lookup map[string]string

// DefaultCryptoIDs returns the built-in symbol table for common assets.
func DefaultCryptoIDs() Lookup {
	return Lookup{
		"BTC":  "bitcoin",
		"ETH":  "ethereum",
		"XRP":  "ripple",
		"DOGE": "dogecoin",
		"SOL":  "solana",
		"DOT":  "polkadot",
	}
}

// CoinID resolves a ticker symbol to a coin id. Unknown symbols fall back to
// the lower-cased symbol itself, which works for coins whose id matches their
// ticker.
func (l Lookup) CoinID(symbol string) string {
	if id, ok := l[strings.ToUpper(symbol)]; ok {
		return id
	}
	return strings.ToLower(symbol)
}
