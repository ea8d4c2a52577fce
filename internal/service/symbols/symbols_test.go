package symbols

import "testing"

func TestCoinIDKnownSymbols(t *testing.T) {
	l := DefaultCryptoIDs()
	cases := map[string]string{
		"BTC":  "bitcoin",
		"btc":  "bitcoin",
		"ETH":  "ethereum",
		"DOGE": "dogecoin",
		"SOL":  "solana",
		"DOT":  "polkadot",
		"XRP":  "ripple",
	}
	for sym, want := range cases {
		if got := l.CoinID(sym); got != want {
			t.Fatalf("%s: want %s, got %s", sym, want, got)
		}
	}
}

func TestCoinIDUnknownFallsBackToLowercase(t *testing.T) {
	l := DefaultCryptoIDs()
	if got := l.CoinID("ADA"); got != "ada" {
		t.Fatalf("want ada, got %s", got)
	}
}
