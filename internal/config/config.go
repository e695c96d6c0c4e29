package config

import (
	"flag"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	AccountsAddress string        `env:"ACCOUNTS_API_ADDRESS" envDefault:"localhost:8090"`
	GameAddress     string        `env:"GAME_API_ADDRESS"     envDefault:"localhost:8090"`
	MockAPIAddress  string        `env:"MOCKAPI_ADDRESS"      envDefault:"localhost:8090"`
	SessionFile     string        `env:"SESSION_FILE"         envDefault:".billquest-session"`
	LogLvl          string        `env:"LOG_LVL"              envDefault:"info"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT"         envDefault:"15s"`
	SaveDebounce    time.Duration `env:"SAVE_DEBOUNCE"        envDefault:"1500ms"`
}

func New() *Config {
	cfg := &Config{}

	env.Parse(cfg)

	flag.StringVar(&cfg.AccountsAddress, "a", cfg.AccountsAddress, "accounts API address and port")
	flag.StringVar(&cfg.GameAddress, "g", cfg.GameAddress, "gamification API address and port")
	flag.StringVar(&cfg.MockAPIAddress, "m", cfg.MockAPIAddress, "address and port to run the mock API server")
	flag.StringVar(&cfg.SessionFile, "s", cfg.SessionFile, "session file path")
	flag.StringVar(&cfg.LogLvl, "l", cfg.LogLvl, "log level")
	flag.Parse()

	if !strings.HasPrefix(cfg.AccountsAddress, "http://") && !strings.HasPrefix(cfg.AccountsAddress, "https://") {
		cfg.AccountsAddress = "http://" + cfg.AccountsAddress
	}
	if !strings.HasPrefix(cfg.GameAddress, "http://") && !strings.HasPrefix(cfg.GameAddress, "https://") {
		cfg.GameAddress = "http://" + cfg.GameAddress
	}

	return cfg
}
