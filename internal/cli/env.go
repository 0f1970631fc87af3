package cli

import (
	"fmt"

	"brtoolchain/internal/config"
	"brtoolchain/internal/paths"
	"brtoolchain/pkg/toolchainfile"
)

// runEnv is the resolved configuration shared by every command.
type runEnv struct {
	Paths  paths.AppPaths
	Config config.Config
	Policy toolchainfile.Policy
}

func loadEnv() (runEnv, error) {
	pp, err := paths.Resolve(configPath)
	if err != nil {
		return runEnv{}, err
	}
	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return runEnv{}, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return runEnv{}, fmt.Errorf("config %s: %w", pp.ConfigFile, err)
	}
	return runEnv{
		Paths:  paths.ApplyConfig(pp, cfg),
		Config: cfg,
		Policy: policy,
	}, nil
}

// policyOverride returns the policy named by flag, or fallback when empty.
func policyOverride(flag string, fallback toolchainfile.Policy) (toolchainfile.Policy, error) {
	if flag == "" {
		return fallback, nil
	}
	return toolchainfile.ParsePolicy(flag)
}
