package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// IssuanceConfig carries the tunable defaults applied when issuing invoices
// and encoding payment descriptors.
type IssuanceConfig struct {
	Currency       string `mapstructure:"currency"`
	DueDays        int    `mapstructure:"dueDays"`
	DefaultCountry string `mapstructure:"defaultCountry"`
	QRSize         int    `mapstructure:"qrSize"`
}

func DefaultIssuanceConfig() IssuanceConfig {
	return IssuanceConfig{
		Currency:       "CZK",
		DueDays:        14,
		DefaultCountry: "Czech Republic",
		QRSize:         256,
	}
}

// IssuanceConfigHolder exposes the current issuance defaults and hot-reloads
// them when the config file changes.
type IssuanceConfigHolder struct {
	current atomic.Value // holds IssuanceConfig
}

func NewIssuanceConfigHolder() (*IssuanceConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("issuance")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/fakturio")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FAKTURIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// if config file not found, use defaults
		defaults := DefaultIssuanceConfig()
		v.SetDefault("issuance.currency", defaults.Currency)
		v.SetDefault("issuance.dueDays", defaults.DueDays)
		v.SetDefault("issuance.defaultCountry", defaults.DefaultCountry)
		v.SetDefault("issuance.qrSize", defaults.QRSize)
	}

	var cfg IssuanceConfig
	if err := v.UnmarshalKey("issuance", &cfg); err != nil {
		return nil, err
	}
	if err := validateIssuanceConfig(cfg); err != nil {
		return nil, err
	}

	holder := &IssuanceConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated IssuanceConfig
		if err := v.UnmarshalKey("issuance", &updated); err != nil {
			log.Printf("[issuance-config] reload failed: %v", err)
			return
		}
		if err := validateIssuanceConfig(updated); err != nil {
			log.Printf("[issuance-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[issuance-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *IssuanceConfigHolder) Get() IssuanceConfig {
	return h.current.Load().(IssuanceConfig)
}

func validateIssuanceConfig(cfg IssuanceConfig) error {
	if len(cfg.Currency) != 3 {
		return errors.New("issuance.currency must be a 3-letter code")
	}
	if cfg.DueDays <= 0 {
		return errors.New("issuance.dueDays must be positive")
	}
	if cfg.QRSize <= 0 {
		return errors.New("issuance.qrSize must be positive")
	}
	return nil
}
