package ton

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SellForwardNano is the TON attached to a sell message to pay for the
// jetton wallet and minter execution (0.05 TON).
const SellForwardNano = "50000000"

// WalletSource resolves the jetton wallet an owner holds for a minter.
type WalletSource interface {
	JettonWallet(ctx context.Context, owner, master string) (*JettonWalletInfo, error)
}

// JettonWallet is the user's DUPC wallet contract. Selling asks it to burn
// jettons back into the minter for TON.
type JettonWallet struct {
	minter  string
	builder *Builder
	sender  Sender
	wallets WalletSource
	logger  *zap.Logger

	mu      sync.Mutex
	address string
	owner   string
}

// NewJettonWallet creates the adapter. When address is empty it is resolved
// through wallets on the first sell.
func NewJettonWallet(address, minter string, builder *Builder, sender Sender, wallets WalletSource, logger *zap.Logger) *JettonWallet {
	return &JettonWallet{
		minter:  minter,
		builder: builder,
		sender:  sender,
		wallets: wallets,
		logger:  logger.Named("jetton_wallet"),
		address: address,
	}
}

// SellCoins sells amount DUPC back to the minter.
func (w *JettonWallet) SellCoins(ctx context.Context, amount string) error {
	units, err := ToUnits(amount, NanoDecimals)
	if err != nil {
		return fmt.Errorf("sell: %w", err)
	}

	address, err := w.resolve(ctx)
	if err != nil {
		return fmt.Errorf("sell: %w", err)
	}

	req, err := w.builder.Build(Message{
		Address: address,
		Amount:  SellForwardNano,
		Payload: &Payload{
			Op:                  OpSell,
			QueryID:             w.builder.QueryID(),
			JettonAmount:        units.String(),
			ResponseDestination: w.builder.Session().Address(),
		},
	})
	if err != nil {
		return fmt.Errorf("sell: %w", err)
	}

	w.logger.Info("Sending sell request",
		zap.String("request_id", req.ID),
		zap.String("dupc", amount),
		zap.String("jetton_units", units.String()))

	if err := w.sender.Send(ctx, req); err != nil {
		return fmt.Errorf("sell: %w", err)
	}
	return nil
}

// Balance returns the indexed DUPC balance of the connected wallet.
func (w *JettonWallet) Balance(ctx context.Context) (decimal.Decimal, error) {
	owner := w.builder.Session().Address()
	if owner == "" {
		return decimal.Zero, ErrNotConnected
	}
	if w.wallets == nil {
		return decimal.Zero, fmt.Errorf("balance: no indexer configured")
	}

	info, err := w.wallets.JettonWallet(ctx, owner, w.minter)
	if err != nil {
		return decimal.Zero, fmt.Errorf("balance: %w", err)
	}
	return FromUnits(info.Balance, NanoDecimals)
}

// resolve returns the jetton wallet address for the connected owner. A
// configured address is used as is; a looked-up one is cached per owner.
func (w *JettonWallet) resolve(ctx context.Context) (string, error) {
	owner := w.builder.Session().Address()
	if owner == "" {
		return "", ErrNotConnected
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.address != "" && (w.owner == "" || w.owner == owner) {
		return w.address, nil
	}
	if w.wallets == nil {
		return "", fmt.Errorf("jetton wallet address is not configured")
	}

	info, err := w.wallets.JettonWallet(ctx, owner, w.minter)
	if err != nil {
		return "", err
	}

	w.address = info.Address
	w.owner = owner
	w.logger.Debug("Resolved jetton wallet",
		zap.String("owner", owner),
		zap.String("address", info.Address))
	return w.address, nil
}
