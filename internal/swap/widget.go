package swap

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrSubmitDisabled is returned by Submit when no wallet is connected or the
// send amount is empty.
var ErrSubmitDisabled = errors.New("swap submit is disabled")

// Connector exposes the wallet connection signal.
type Connector interface {
	Connected() bool
}

// Minter is the jetton minter contract. BuyCoins pays base tokens for quote
// tokens; Address and TotalSupply are read-only metadata.
type Minter interface {
	BuyCoins(ctx context.Context, amount string) error
	Address() string
	TotalSupply(ctx context.Context) (string, error)
}

// JettonWallet is the user's quote-token wallet contract.
type JettonWallet interface {
	SellCoins(ctx context.Context, amount string) error
}

// View is a rendered snapshot of the widget.
type View struct {
	Direction      Direction
	SendToken      Token
	ReceiveToken   Token
	SendAmount     string
	ReceiveAmount  string
	ReceiveDisplay string
	SendUSD        string
	ReceiveUSD     string
	RateLine       string
	ButtonLabel    string
	ButtonEnabled  bool
}

// Widget holds the ephemeral swap form state: the direction flag, the
// user-entered send amount and the derived receive amount.
type Widget struct {
	pair   Pair
	wallet Connector
	minter Minter
	jetton JettonWallet
	logger *zap.Logger

	direction     Direction
	sendAmount    string
	receiveAmount string
}

// NewWidget creates a widget in the forward direction with empty amounts.
func NewWidget(wallet Connector, minter Minter, jetton JettonWallet, logger *zap.Logger) *Widget {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Widget{
		pair:      DefaultPair(),
		wallet:    wallet,
		minter:    minter,
		jetton:    jetton,
		logger:    logger.Named("swap"),
		direction: Forward,
	}
}

func (w *Widget) Pair() Pair { return w.pair }
func (w *Widget) Direction() Direction { return w.direction }
func (w *Widget) SendAmount() string { return w.sendAmount }
func (w *Widget) ReceiveAmount() string { return w.receiveAmount }
func (w *Widget) SendToken() Token { return w.pair.Send(w.direction) }
func (w *Widget) ReceiveToken() Token { return w.pair.Receive(w.direction) }
func (w *Widget) connected() bool { return w.wallet != nil && w.wallet.Connected() }
func (w *Widget) receiveIsBase() bool { return !w.direction.SendsBase() }

func (w *Widget) buttonLabel() string {
	if w.connected() {
		return "Swap"
	}
	return "Connect Wallet"
}

// SetSendAmount stores the raw input and recomputes the receive amount.
func (w *Widget) SetSendAmount(amount string) {
	w.sendAmount = amount
	w.receiveAmount = Convert(amount, w.direction)
}

// Flip swaps the send and receive sides. The previous receive amount becomes
// the send amount and is converted in the new direction.
func (w *Widget) Flip() {
	w.direction = w.direction.Flip()
	w.sendAmount = w.receiveAmount
	w.receiveAmount = Convert(w.sendAmount, w.direction)

	w.logger.Debug("Direction flipped",
		zap.Stringer("direction", w.direction),
		zap.String("send", w.sendAmount))
}

// CanSubmit reports whether a wallet is connected and an amount was entered.
func (w *Widget) CanSubmit() bool {
	return w.connected() && w.sendAmount != ""
}

// Action is a submit call bound to the amount and direction it was
// created with.
type Action func(ctx context.Context) error

// SubmitAction captures the current send amount and direction into an
// Action that buys when sending the base token and sells otherwise. The raw
// send amount is passed through unmodified.
func (w *Widget) SubmitAction() (Action, error) {
	if !w.CanSubmit() {
		return nil, ErrSubmitDisabled
	}

	amount, dir := w.sendAmount, w.direction
	w.logger.Info("Submitting swap",
		zap.Stringer("direction", dir),
		zap.String("amount", amount))

	if dir.SendsBase() {
		minter := w.minter
		return func(ctx context.Context) error {
			return minter.BuyCoins(ctx, amount)
		}, nil
	}

	jetton := w.jetton
	return func(ctx context.Context) error {
		return jetton.SellCoins(ctx, amount)
	}, nil
}

// Submit runs SubmitAction synchronously. The collaborator's error is
// returned as is.
func (w *Widget) Submit(ctx context.Context) error {
	action, err := w.SubmitAction()
	if err != nil {
		return err
	}
	return action(ctx)
}

// Snapshot renders the current state.
func (w *Widget) Snapshot() View {
	send, receive := w.SendToken(), w.ReceiveToken()
	return View{
		Direction:      w.direction,
		SendToken:      send,
		ReceiveToken:   receive,
		SendAmount:     w.sendAmount,
		ReceiveAmount:  w.receiveAmount,
		ReceiveDisplay: FormatAmount(w.receiveAmount, w.receiveIsBase()),
		SendUSD:        USDEstimate(w.sendAmount, send),
		ReceiveUSD:     USDEstimate(w.receiveAmount, receive),
		RateLine:       RateLine(w.pair, w.direction),
		ButtonLabel:    w.buttonLabel(),
		ButtonEnabled:  w.CanSubmit(),
	}
}
