package ton

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"
)

// MasterSource looks up jetton minter state.
type MasterSource interface {
	JettonMaster(ctx context.Context, address string) (*JettonMaster, error)
}

// Minter is the DUPC minter contract. Buying sends TON to it with a buy op.
type Minter struct {
	address  string
	builder  *Builder
	sender   Sender
	masters  MasterSource
	cache    *ristretto.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewMinter creates the minter adapter. Total supply lookups are cached for
// cacheTTL; zero disables caching.
func NewMinter(address string, builder *Builder, sender Sender, masters MasterSource, cacheTTL time.Duration, logger *zap.Logger) (*Minter, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100,
		MaxCost:     10,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create supply cache: %w", err)
	}

	return &Minter{
		address:  address,
		builder:  builder,
		sender:   sender,
		masters:  masters,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.Named("minter"),
	}, nil
}

// Address returns the minter contract address.
func (m *Minter) Address() string {
	return m.address
}

// BuyCoins sends amount TON to the minter in exchange for DUPC.
func (m *Minter) BuyCoins(ctx context.Context, amount string) error {
	nano, err := ToUnits(amount, NanoDecimals)
	if err != nil {
		return fmt.Errorf("buy: %w", err)
	}

	req, err := m.builder.Build(Message{
		Address: m.address,
		Amount:  nano.String(),
		Payload: &Payload{Op: OpBuy, QueryID: m.builder.QueryID()},
	})
	if err != nil {
		return fmt.Errorf("buy: %w", err)
	}

	m.logger.Info("Sending buy request",
		zap.String("request_id", req.ID),
		zap.String("ton", amount),
		zap.String("amount_nano", nano.String()))

	if err := m.sender.Send(ctx, req); err != nil {
		return fmt.Errorf("buy: %w", err)
	}
	return nil
}

// TotalSupply returns the jetton total supply in jetton units.
func (m *Minter) TotalSupply(ctx context.Context) (string, error) {
	if v, ok := m.cache.Get(m.address); ok {
		if supply, ok := v.(string); ok {
			return supply, nil
		}
	}
	if m.masters == nil {
		return "", fmt.Errorf("total supply: no indexer configured")
	}

	master, err := m.masters.JettonMaster(ctx, m.address)
	if err != nil {
		return "", fmt.Errorf("total supply: %w", err)
	}

	if m.cacheTTL > 0 {
		m.cache.SetWithTTL(m.address, master.TotalSupply, 1, m.cacheTTL)
		m.cache.Wait()
	}
	return master.TotalSupply, nil
}

// Close releases the supply cache.
func (m *Minter) Close() {
	m.cache.Close()
}
