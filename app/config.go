package app

import (
	"fmt"
	"io"
	"strings"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
)

// EnvPrefix prefixes every environment override, e.g. PAWSWAP_AMM_LOG_LEVEL.
const EnvPrefix = "PAWSWAP"

const (
	LogFormatPlain = "plain"
	LogFormatJSON  = "json"
)

const (
	keyLogLevel              = "amm.log_level"
	keyLogFormat             = "amm.log_format"
	keyMetricsEnabled        = "amm.metrics_enabled"
	keyDefaultProtocolFeeBps = "amm.default_protocol_fee_bps"
	keyMinimumLiquidity      = "amm.minimum_liquidity"
)

// Config holds the node-level settings of the amm ledger.
type Config struct {
	LogLevel              string
	LogFormat             string
	MetricsEnabled        bool
	DefaultProtocolFeeBps uint32
	MinimumLiquidity      math.Int
}

// DefaultConfig returns the configuration used when no file or override is given.
func DefaultConfig() Config {
	params := ammtypes.DefaultParams()
	return Config{
		LogLevel:              zerolog.InfoLevel.String(),
		LogFormat:             LogFormatPlain,
		MetricsEnabled:        true,
		DefaultProtocolFeeBps: params.DefaultProtocolFeeBps,
		MinimumLiquidity:      params.MinimumLiquidity,
	}
}

// LoadConfig reads the [amm] section of a TOML file at path and applies
// PAWSWAP_* environment overrides. An empty path reads the environment only.
func LoadConfig(path string) (Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyLogLevel, def.LogLevel)
	v.SetDefault(keyLogFormat, def.LogFormat)
	v.SetDefault(keyMetricsEnabled, def.MetricsEnabled)
	v.SetDefault(keyDefaultProtocolFeeBps, def.DefaultProtocolFeeBps)
	v.SetDefault(keyMinimumLiquidity, def.MinimumLiquidity.String())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("LoadConfig: read %s: %w", path, err)
		}
	}

	minLiquidity, ok := math.NewIntFromString(strings.TrimSpace(v.GetString(keyMinimumLiquidity)))
	if !ok {
		return Config{}, fmt.Errorf("LoadConfig: invalid %s %q", keyMinimumLiquidity, v.GetString(keyMinimumLiquidity))
	}

	cfg := Config{
		LogLevel:              strings.ToLower(strings.TrimSpace(v.GetString(keyLogLevel))),
		LogFormat:             strings.ToLower(strings.TrimSpace(v.GetString(keyLogFormat))),
		MetricsEnabled:        v.GetBool(keyMetricsEnabled),
		DefaultProtocolFeeBps: v.GetUint32(keyDefaultProtocolFeeBps),
		MinimumLiquidity:      minLiquidity,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("LoadConfig: %w", err)
	}
	return cfg, nil
}

// Validate checks the logging settings and the module params derived from cfg.
func (cfg Config) Validate() error {
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	switch cfg.LogFormat {
	case LogFormatPlain, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format %q: expected %q or %q", cfg.LogFormat, LogFormatPlain, LogFormatJSON)
	}
	return cfg.Params().Validate()
}

// Params converts the config into amm module params for genesis.
func (cfg Config) Params() ammtypes.Params {
	return ammtypes.Params{
		DefaultProtocolFeeBps: cfg.DefaultProtocolFeeBps,
		MinimumLiquidity:      cfg.MinimumLiquidity,
	}
}

// NewLogger builds the root logger writing to w.
func NewLogger(cfg Config, w io.Writer) (log.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("NewLogger: %w", err)
	}

	opts := []log.Option{log.LevelOption(level)}
	if cfg.LogFormat == LogFormatJSON {
		opts = append(opts, log.OutputJSONOption())
	} else {
		opts = append(opts, log.ColorOption(false))
	}
	return log.NewLogger(w, opts...), nil
}
