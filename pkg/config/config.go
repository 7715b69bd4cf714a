package config

import (
	"fmt"
	"os"
	"sync"

	"autoap/pkg/globals"

	"github.com/spf13/viper"
)

// Config holds the autoAP.conf settings. The file is a bash-style key=value
// list (# comments allowed); viper's env format reads exactly that shape.
type Config struct {
	// Seconds to stay in AP mode after AP-ENABLED before retrying the
	// client network
	EnableWait int
	// Seconds to wait after the last AP station disconnects before
	// retrying the client network
	DisconnectWait int
	// Debug logging. In the config file 0 means on, 1 means off; the
	// installed file documents this and existing installs depend on it.
	Debug bool
}

var instance *Config
var once sync.Once

// Init loads autoAP.conf. A missing file yields defaults; a malformed one is
// an error, since a mis-read wait time changes switching behavior silently.
func Init() error {
	var err error
	once.Do(func() {
		instance, err = load(globals.ConfigPath)
	})
	return err
}

// Get returns the singleton config instance
func Get() *Config {
	if instance == nil {
		panic("config not initialized - call Init() first")
	}
	return instance
}

func load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.SetDefault("enablewait", 300)
	v.SetDefault("disconnectwait", 20)
	v.SetDefault("debug", 1)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	cfg := &Config{
		EnableWait:     v.GetInt("enablewait"),
		DisconnectWait: v.GetInt("disconnectwait"),
		Debug:          v.GetInt("debug") == 0,
	}

	if cfg.EnableWait <= 0 || cfg.DisconnectWait <= 0 {
		return nil, fmt.Errorf("invalid wait values in %s: enablewait=%d disconnectwait=%d",
			path, cfg.EnableWait, cfg.DisconnectWait)
	}

	return cfg, nil
}
