package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/beanbocchi/flowmeter/pkg/validator"
)

var (
	once sync.Once
	cfg  *Config
)

// GetConfig loads the configuration on first use and returns the singleton.
// It panics on load failure: the process cannot do anything useful without
// a valid configuration.
func GetConfig() *Config {
	once.Do(func() {
		loaded, err := Load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
		cfg = loaded
	})
	return cfg
}

// Load reads config.yaml from the working directory (or the directory named
// by FLOWMETER_CONFIG_DIR), applies FLOWMETER_* environment overrides,
// fills in defaults and validates the result.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := os.Getenv("FLOWMETER_CONFIG_DIR"); dir != "" {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("FLOWMETER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, defaults plus env must then carry the config.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.Validate(&c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.addSource", false)
	v.SetDefault("app.name", "flowmeter")
	v.SetDefault("app.host", "")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.jobBuffer", 64)
	v.SetDefault("app.snapshotInterval", time.Second)
	v.SetDefault("sqlite.path", "flowmeter.db")
	v.SetDefault("objectstore.type", "local")
	v.SetDefault("objectstore.local.root", "./objects")
}
