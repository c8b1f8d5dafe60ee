package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from an optional YAML file, filling in
// defaults for every key. Environment variables override the file:
// NETPULSE_PROBE_INTERVAL=2s overrides probe.interval, and so on with
// dots replaced by underscores.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetDefault("targets", []string{"8.8.8.8", "1.1.1.1", "208.67.222.222"})

	v.SetDefault("probe.mode", "system")
	v.SetDefault("probe.interval", "1s")
	v.SetDefault("probe.timeout", "2s")
	v.SetDefault("probe.privileged", false)

	v.SetDefault("history.capacity", 15)

	v.SetDefault("thresholds.good_ms", 100.0)
	v.SetDefault("thresholds.warn_ms", 200.0)

	v.SetDefault("database.path", "netpulse.db")
	v.SetDefault("database.retention", "168h")

	v.SetDefault("server.port", 8080)

	v.SetDefault("dns.adapter", "")
	v.SetDefault("dns.probe_domain", "example.com")
	v.SetDefault("dns.timeout", "3s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetEnvPrefix("NETPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
