package reactor

import (
	"time"

	"github.com/spf13/viper"
)

// Config is the ambient runtime configuration for a reactor-driven
// client or listener: the peer address(es), the accept address, the
// container-id, flow-control window, reconnect ceiling, reactor
// timeout, and log verbosity. Loaded with viper so it can come from a
// file or env vars (REACTOR_*), matching the config layer the
// retrieved AMQP worker repo uses for its own service configuration
// (see DESIGN.md).
type Config struct {
	// ListenAddr is the address Acceptor binds for an inbound-only or
	// bidirectional process; empty means this process never accepts.
	ListenAddr string `mapstructure:"listen_addr"`

	// ConnectURL is a single outbound peer address. ConnectURLs, if
	// set, takes precedence — see Urls.
	ConnectURL string `mapstructure:"connect_url"`

	// ConnectURLs is a round-robin outbound peer address list, for
	// brokers fronted by more than one node.
	ConnectURLs []string `mapstructure:"connect_urls"`

	ContainerID string `mapstructure:"container_id"`

	// CreditWindow is FlowController's flat per-link replenishment
	// target.
	CreditWindow uint32 `mapstructure:"credit_window"`

	// MaxBackoff caps Connector's reconnect delay below Backoff's own
	// 10s ceiling; zero leaves the 10s ceiling in place.
	MaxBackoff time.Duration `mapstructure:"max_backoff"`

	ReactorTimeout time.Duration `mapstructure:"reactor_timeout"`

	LogLevel int `mapstructure:"log_level"`
}

// DefaultConfig returns the configuration every field falls back to
// when unset.
func DefaultConfig() Config {
	return Config{
		ConnectURL:     "amqp://localhost:5672",
		ContainerID:    "reactor-client",
		CreditWindow:   10,
		MaxBackoff:     0,
		ReactorTimeout: DefaultTimeout,
		LogLevel:       0,
	}
}

// LoadConfig reads configuration from configPath (if non-empty) merged
// over environment variables prefixed REACTOR_ and the defaults above.
func LoadConfig(configPath string) (Config, error) {
	v := viper.New()
	cfg := DefaultConfig()

	v.SetDefault("listen_addr", cfg.ListenAddr)
	v.SetDefault("connect_url", cfg.ConnectURL)
	v.SetDefault("connect_urls", cfg.ConnectURLs)
	v.SetDefault("container_id", cfg.ContainerID)
	v.SetDefault("credit_window", cfg.CreditWindow)
	v.SetDefault("max_backoff", cfg.MaxBackoff)
	v.SetDefault("reactor_timeout", cfg.ReactorTimeout)
	v.SetDefault("log_level", cfg.LogLevel)

	v.SetEnvPrefix("reactor")
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var out Config
	if err := v.Unmarshal(&out); err != nil {
		return Config{}, err
	}
	return out, nil
}

// Urls resolves ConnectURLs (if set) or ConnectURL into a Urls
// round-robin iterator for Connector.Connect. Returns ErrNoAddress if
// neither was set, matching spec.md §7's documented misuse case.
func (c Config) Urls() (*Urls, error) {
	if len(c.ConnectURLs) > 0 {
		return NewUrls(c.ConnectURLs...)
	}
	if c.ConnectURL != "" {
		return NewUrls(c.ConnectURL)
	}
	return nil, ErrNoAddress
}
