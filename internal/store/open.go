package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hy4ri/daycal/internal/api"
	"github.com/hy4ri/daycal/internal/config"
)

// Open creates the store selected by cfg.
func Open(cfg config.StoreConfig, log *zap.SugaredLogger) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemory(cfg.Owner, log), nil

	case config.BackendSQLite:
		return NewSQLite(cfg.Path, cfg.Owner, log)

	case config.BackendRemote:
		token, err := config.GetToken()
		if err != nil {
			return nil, fmt.Errorf("failed to read access token: %w", err)
		}
		if token == "" {
			return nil, fmt.Errorf("no access token configured: run 'daycal login' or set %s", config.TokenEnv)
		}
		client := api.NewClient(cfg.BaseURL, token)
		return NewRemote(client, cfg.PollInterval, log), nil
	}

	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
