// =============================
// File: internal/swap/token.go
// =============================
package swap

// Rate is the fixed number of quote units (DUPC) per base unit (TON).
const Rate = 100000

// Fraction digits used when rendering derived amounts.
const (
	QuoteDigits int32 = 0
	BaseDigits  int32 = 8
)

// Token describes one side of the pair.
type Token struct {
	Symbol string
	// Decimals is the number of on-chain fraction digits.
	Decimals int32
	// USDPrice is a hardcoded per-unit price used only for the decorative estimate.
	USDPrice float64
}

var (
	TON  = Token{Symbol: "TON", Decimals: 9, USDPrice: 2}
	DUPC = Token{Symbol: "DUPC", Decimals: 9, USDPrice: 0.00002}
)

// Pair is the base/quote token pair the widget swaps between.
type Pair struct {
	Base  Token
	Quote Token
}

// DefaultPair returns the TON/DUPC pair.
func DefaultPair() Pair {
	return Pair{Base: TON, Quote: DUPC}
}

// Direction tells which token the user is sending.
type Direction int

const (
	// Forward sends the base token and receives the quote token.
	Forward Direction = iota
	// Reversed sends the quote token and receives the base token.
	Reversed
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Forward {
		return Reversed
	}
	return Forward
}

// SendsBase reports whether the base token is on the send side.
func (d Direction) SendsBase() bool {
	return d == Forward
}

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reversed:
		return "reversed"
	default:
		return "unknown"
	}
}

// Send returns the token on the send side for direction d.
func (p Pair) Send(d Direction) Token {
	if d.SendsBase() {
		return p.Base
	}
	return p.Quote
}

// Receive returns the token on the receive side for direction d.
func (p Pair) Receive(d Direction) Token {
	if d.SendsBase() {
		return p.Quote
	}
	return p.Base
}
