package ton

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrNotFound is returned when toncenter has no record for an address.
var ErrNotFound = errors.New("not found")

// DefaultToncenterURL is the public toncenter v3 endpoint.
const DefaultToncenterURL = "https://toncenter.com"

// JettonMaster is the indexed state of a jetton minter contract.
type JettonMaster struct {
	Address      string `json:"address"`
	TotalSupply  string `json:"total_supply"`
	Mintable     bool   `json:"mintable"`
	AdminAddress string `json:"admin_address"`
}

// JettonWalletInfo is the indexed state of a jetton wallet contract.
type JettonWalletInfo struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
	Owner   string `json:"owner"`
	Jetton  string `json:"jetton"`
}

// Toncenter is a read-only client for the toncenter indexer API.
type Toncenter struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	retry   RetryOptions
	logger  *zap.Logger

	observer RequestObserver
}

// NewToncenter creates a client limited to rps requests per second; rps <= 0
// disables limiting.
func NewToncenter(baseURL, apiKey string, rps float64, retry RetryOptions, logger *zap.Logger) *Toncenter {
	if baseURL == "" {
		baseURL = DefaultToncenterURL
	}

	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &Toncenter{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(limit, 1),
		retry:   retry.withDefaults(),
		logger:  logger.Named("toncenter"),
	}
}

// SetObserver reports the latency of every later request to o.
func (c *Toncenter) SetObserver(o RequestObserver) {
	c.observer = o
}

// JettonMaster fetches the minter contract state.
func (c *Toncenter) JettonMaster(ctx context.Context, address string) (*JettonMaster, error) {
	var resp struct {
		JettonMasters []JettonMaster `json:"jetton_masters"`
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("limit", "1")
	if err := c.get(ctx, "/api/v3/jetton/masters", q, &resp); err != nil {
		return nil, err
	}
	if len(resp.JettonMasters) == 0 {
		return nil, fmt.Errorf("jetton master %s: %w", address, ErrNotFound)
	}
	return &resp.JettonMasters[0], nil
}

// JettonWallet finds the jetton wallet that owner holds for the master.
func (c *Toncenter) JettonWallet(ctx context.Context, owner, master string) (*JettonWalletInfo, error) {
	var resp struct {
		JettonWallets []JettonWalletInfo `json:"jetton_wallets"`
	}

	q := url.Values{}
	q.Set("owner_address", owner)
	q.Set("jetton_address", master)
	q.Set("limit", "1")
	if err := c.get(ctx, "/api/v3/jetton/wallets", q, &resp); err != nil {
		return nil, err
	}
	if len(resp.JettonWallets) == 0 {
		return nil, fmt.Errorf("jetton wallet of %s for %s: %w", owner, master, ErrNotFound)
	}
	return &resp.JettonWallets[0], nil
}

func (c *Toncenter) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + query.Encode()

	notify := func(err error, d time.Duration) {
		c.logger.Debug("Toncenter request failed, retrying",
			zap.String("path", path),
			zap.Error(err),
			zap.Duration("backoff", d))
	}

	op := func() (struct{}, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return struct{}{}, backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("X-API-Key", c.apiKey)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return struct{}{}, err
		}
		defer resp.Body.Close()

		if err := checkStatus(resp); err != nil {
			return struct{}{}, err
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return struct{}{}, backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}
		return struct{}{}, nil
	}

	start := time.Now()
	_, err := backoff.Retry(ctx, op, c.retry.retryOpts(notify)...)
	if c.observer != nil {
		c.observer.ObserveRequest(path, time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("toncenter %s: %w", path, err)
	}
	return nil
}
