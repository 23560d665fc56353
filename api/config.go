package api

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"github.com/warin-th/ctrlkit/log"
)

// Config is the application-level configuration loaded at process start.
type Config struct {
	BasePath string     `mapstructure:"base_path"`
	Server   Server     `mapstructure:"server"`
	Log      log.Config `mapstructure:"log"`
}

// Server holds the listener settings for the hosting process.
type Server struct {
	Addr string `mapstructure:"addr"`
}

// LoadConfig reads configuration from an optional file plus the environment.
// Environment variables override file values and use the CTRLKIT_ prefix with
// underscores for nesting (CTRLKIT_SERVER_ADDR, CTRLKIT_LOG_LEVEL). A missing
// file is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("base_path", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetEnvPrefix("CTRLKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("api: read config %q: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("api: unmarshal config: %w", err)
	}
	return cfg, nil
}
