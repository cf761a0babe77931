// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"net"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/rovshanmuradov/dupc-swap/internal/ton"
)

type Config struct {
	WalletAddress         string  `mapstructure:"wallet_address"`
	Network               string  `mapstructure:"network"`
	MinterAddress         string  `mapstructure:"minter_address"`
	JettonWalletAddress   string  `mapstructure:"jetton_wallet_address"`
	ToncenterURL          string  `mapstructure:"toncenter_url"`
	ToncenterAPIKey       string  `mapstructure:"toncenter_api_key"`
	BridgeURL             string  `mapstructure:"bridge_url"`
	RequestRPS            float64 `mapstructure:"request_rps"`
	Retries               int     `mapstructure:"retries"`
	ValidForSeconds       int     `mapstructure:"valid_for_seconds"`
	SupplyCacheTTLSeconds int     `mapstructure:"supply_cache_ttl_seconds"`
	JournalPath           string  `mapstructure:"journal_path"`
	MetricsAddr           string  `mapstructure:"metrics_addr"`
	DebugLogging          bool    `mapstructure:"debug_logging"`
}

const (
	DefaultNetwork        = ton.Mainnet
	DefaultRequestRPS     = 1.0
	DefaultRetries        = 3
	DefaultValidFor       = 300
	DefaultSupplyCacheTTL = 60
	EnvPrefix             = "DUPC_SWAP"
)

// ValidFor is how long a transfer request stays signable.
func (c *Config) ValidFor() time.Duration {
	return time.Duration(c.ValidForSeconds) * time.Second
}

// SupplyCacheTTL is how long a fetched total supply is reused.
func (c *Config) SupplyCacheTTL() time.Duration {
	return time.Duration(c.SupplyCacheTTLSeconds) * time.Second
}

// DryRun reports whether transfer requests are only logged.
func (c *Config) DryRun() bool {
	return c.BridgeURL == ""
}

// LoadConfig reads the JSON config at path, applies DUPC_SWAP_* environment
// overrides and validates the result. A missing file is allowed when path is
// empty; every key then comes from defaults and the environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"network":                  DefaultNetwork,
		"toncenter_url":            ton.DefaultToncenterURL,
		"request_rps":              DefaultRequestRPS,
		"retries":                  DefaultRetries,
		"valid_for_seconds":        DefaultValidFor,
		"supply_cache_ttl_seconds": DefaultSupplyCacheTTL,
		"debug_logging":            false,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about.
	for _, key := range []string{"wallet_address", "minter_address", "jetton_wallet_address", "toncenter_api_key", "bridge_url", "journal_path", "metrics_addr"} {
		_ = v.BindEnv(key)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if cfg.MinterAddress == "" {
		return errors.New("missing minter_address in configuration")
	}
	if cfg.Network != ton.Mainnet && cfg.Network != ton.Testnet {
		return errors.New("network must be -239 (mainnet) or -3 (testnet)")
	}
	if err := validateURLWithCache(cfg.ToncenterURL, "http"); err != nil {
		return errors.New("invalid toncenter_url")
	}
	if cfg.BridgeURL != "" {
		if err := validateURLWithCache(cfg.BridgeURL, "http"); err != nil {
			return errors.New("invalid bridge_url")
		}
	}
	if cfg.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(cfg.MetricsAddr); err != nil {
			return errors.New("invalid metrics_addr")
		}
	}
	return validateNumericParams(cfg)
}

func validateNumericParams(cfg *Config) error {
	if cfg.RequestRPS < 0 {
		return errors.New("invalid request_rps")
	}
	if cfg.Retries < 0 {
		return errors.New("invalid retries count")
	}
	if cfg.ValidForSeconds <= 0 {
		return errors.New("invalid valid_for_seconds")
	}
	if cfg.SupplyCacheTTLSeconds < 0 {
		return errors.New("invalid supply_cache_ttl_seconds")
	}
	return nil
}

var urlCache sync.Map

func validateURLWithCache(rawURL string, protocol string) error {
	if _, ok := urlCache.Load(rawURL); ok {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) || parsed.Host == "" {
		return errors.New("invalid URL protocol")
	}
	urlCache.Store(rawURL, parsed)
	return nil
}
