package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".cloudahk"
	envPrefix  = "CLOUDAHK"

	KeyPrefix          = "prefix"
	KeyVariantsPath    = "variants.path"
	KeySecretsDir      = "secrets.dir"
	KeyBackendTimeout  = "backend.timeout"
	KeyReplIdleTimeout = "repl.idle_timeout"
	KeyLogLevel        = "log.level"
	KeyPasteBaseURL    = "paste.base_url"
)

// LoadConfig applies defaults, binds CLOUDAHK_* environment variables and
// reads ~/.cloudahk/config.toml when present.
func LoadConfig(cfg *viper.Viper) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}
	root := filepath.Join(homeDir, configDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(root)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(KeyPrefix, "=")
	cfg.SetDefault(KeyVariantsPath, filepath.Join(root, variantsConfigFile))
	cfg.SetDefault(KeySecretsDir, filepath.Join(root, "secrets"))
	cfg.SetDefault(KeyBackendTimeout, 20*time.Second)
	cfg.SetDefault(KeyReplIdleTimeout, 10*time.Minute)
	cfg.SetDefault(KeyLogLevel, "info")
	cfg.SetDefault(KeyPasteBaseURL, "https://p.ahkscript.org/")

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	return nil
}
