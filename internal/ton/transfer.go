package ton

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Contract operations carried in message payloads.
const (
	OpBuy  = "buy"
	OpSell = "sell"
)

// Networks as identified by TON Connect.
const (
	Mainnet = "-239"
	Testnet = "-3"
)

// Payload is the body attached to an outgoing message.
type Payload struct {
	Op                  string `json:"op"`
	QueryID             uint64 `json:"query_id"`
	JettonAmount        string `json:"jetton_amount,omitempty"`
	ResponseDestination string `json:"response_destination,omitempty"`
}

// Message is one internal message the wallet is asked to send.
type Message struct {
	Address string   `json:"address"`
	Amount  string   `json:"amount"` // nanotons
	Payload *Payload `json:"payload,omitempty"`
}

// TransferRequest mirrors a TON Connect sendTransaction request.
type TransferRequest struct {
	ID         string    `json:"id"`
	From       string    `json:"from"`
	Network    string    `json:"network"`
	ValidUntil int64     `json:"valid_until"`
	Messages   []Message `json:"messages"`
}

// Sender delivers transfer requests to the wallet for signing.
type Sender interface {
	Send(ctx context.Context, req *TransferRequest) error
}

// Builder assembles transfer requests for the connected wallet.
type Builder struct {
	session  *Session
	network  string
	validFor time.Duration
	now      func() time.Time
}

// NewBuilder creates a request builder. validFor bounds how long the wallet
// may take to sign.
func NewBuilder(session *Session, network string, validFor time.Duration) *Builder {
	if network == "" {
		network = Mainnet
	}
	if validFor <= 0 {
		validFor = 5 * time.Minute
	}
	return &Builder{
		session:  session,
		network:  network,
		validFor: validFor,
		now:      time.Now,
	}
}

// Session returns the wallet session the builder signs for.
func (b *Builder) Session() *Session {
	return b.session
}

// QueryID returns a query id derived from the current time.
func (b *Builder) QueryID() uint64 {
	return uint64(b.now().UnixNano())
}

// Build wraps messages into a request from the connected wallet.
func (b *Builder) Build(msgs ...Message) (*TransferRequest, error) {
	if b.session == nil || !b.session.Connected() {
		return nil, ErrNotConnected
	}
	return &TransferRequest{
		ID:         uuid.NewString(),
		From:       b.session.Address(),
		Network:    b.network,
		ValidUntil: b.now().Add(b.validFor).Unix(),
		Messages:   msgs,
	}, nil
}
