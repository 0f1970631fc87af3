// Package paths resolves the files and directories used by a discovery run.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"brtoolchain/internal/config"
	"brtoolchain/pkg/toolchainfile"
)

// RegistryEnv overrides the registry file location.
const RegistryEnv = "BRTOOLCHAIN_REGISTRY"

// AppPaths captures canonical locations for a discovery run.
type AppPaths struct {
	Home         string
	ConfigFile   string
	RegistryFile string
	DataDir      string
	StateDir     string
	OutputDir    string
	LogsDir      string
	LogFile      string
}

// Resolve determines the canonical locations using the optional --config flag
// or the per-user default when the flag is empty.
func Resolve(configFlag string) (AppPaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return AppPaths{}, fmt.Errorf("detect user home: %w", err)
	}

	configFile := filepath.Join(configDir(home), "config.yaml")
	if configFlag != "" {
		configFile, err = filepath.Abs(ExpandHome(home, configFlag))
		if err != nil {
			return AppPaths{}, fmt.Errorf("resolve config path: %w", err)
		}
	}

	pp := newAppPaths(home, configFile)
	if override := strings.TrimSpace(os.Getenv(RegistryEnv)); override != "" {
		pp.RegistryFile = ExpandHome(home, override)
	}
	return pp, nil
}

func newAppPaths(home, configFile string) AppPaths {
	data := dataDir(home)
	logs := filepath.Join(data, "logs")
	return AppPaths{
		Home:         home,
		ConfigFile:   configFile,
		RegistryFile: filepath.Join(home, toolchainfile.FileName),
		DataDir:      data,
		StateDir:     filepath.Join(data, "state"),
		OutputDir:    filepath.Join(data, "extensions"),
		LogsDir:      logs,
		LogFile:      filepath.Join(logs, "brtoolchain.log"),
	}
}

func configDir(home string) string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "brtoolchain")
	}
	return filepath.Join(home, ".config", "brtoolchain")
}

func dataDir(home string) string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "brtoolchain")
	}
	return filepath.Join(home, ".local", "share", "brtoolchain")
}

// ApplyConfig overrides default locations with the ones set in cfg. The
// registry environment override wins over the configuration file.
func ApplyConfig(pp AppPaths, cfg config.Config) AppPaths {
	if registry := strings.TrimSpace(cfg.RegistryFile); registry != "" {
		if strings.TrimSpace(os.Getenv(RegistryEnv)) == "" {
			pp.RegistryFile = ExpandHome(pp.Home, registry)
		}
	}
	if state := strings.TrimSpace(cfg.StateDir); state != "" {
		pp.StateDir = ExpandHome(pp.Home, state)
	}
	if out := strings.TrimSpace(cfg.OutputDir); out != "" {
		pp.OutputDir = ExpandHome(pp.Home, out)
	}
	if logFile := strings.TrimSpace(cfg.Log.File); logFile != "" {
		pp.LogFile = ExpandHome(pp.Home, logFile)
		pp.LogsDir = filepath.Dir(pp.LogFile)
	}
	return pp
}

// ExpandHome replaces a leading ~ with home.
func ExpandHome(home, path string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return filepath.Join(home, path[2:])
	}
	return path
}

// EnsureDirs creates the state, output and logs directories.
func (p AppPaths) EnsureDirs() error {
	dirs := []string{p.StateDir, p.OutputDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
