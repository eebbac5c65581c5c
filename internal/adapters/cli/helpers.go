package cli

import (
	"fmt"

	"github.com/andrescamacho/factory-planner/internal/infrastructure/config"
)

// userConfigHandler opens the user preferences file, honouring --user-config-dir
func (o *rootOptions) userConfigHandler() (*config.UserConfigHandler, error) {
	if o.userConfigDir != "" {
		return config.NewUserConfigHandlerAt(o.userConfigDir)
	}
	return config.NewUserConfigHandler()
}

// resolveDataPath resolves the game data file.
// Priority: --data flag > gamedata.path config > user default
func (o *rootOptions) resolveDataPath(cfg *config.Config) (string, error) {
	if o.dataPath != "" {
		return o.dataPath, nil
	}
	if cfg.GameData.Path != "" {
		return cfg.GameData.Path, nil
	}

	userCfg, err := o.loadUserConfig()
	if err != nil {
		return "", fmt.Errorf("no game data specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultDataPath != "" {
		return userCfg.DefaultDataPath, nil
	}

	return "", fmt.Errorf("no game data specified: use --data, or set a default with 'factory-planner config set-data'")
}

// resolvePlanPath resolves the plan file.
// Priority: --plan flag > gamedata.plan_path config > user default
func (o *rootOptions) resolvePlanPath(cfg *config.Config) (string, error) {
	if o.planPath != "" {
		return o.planPath, nil
	}
	if cfg.GameData.PlanPath != "" {
		return cfg.GameData.PlanPath, nil
	}

	userCfg, err := o.loadUserConfig()
	if err != nil {
		return "", fmt.Errorf("no plan specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultPlanPath != "" {
		return userCfg.DefaultPlanPath, nil
	}

	return "", fmt.Errorf("no plan specified: use --plan, or set a default with 'factory-planner config set-plan'")
}

func (o *rootOptions) loadUserConfig() (*config.UserConfig, error) {
	handler, err := o.userConfigHandler()
	if err != nil {
		return nil, err
	}
	return handler.Load()
}
