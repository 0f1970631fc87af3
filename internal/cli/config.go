package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"brtoolchain/internal/config"
	"brtoolchain/internal/paths"
)

var configShowFormat string

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit the configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigValidateCmd())
	cmd.AddCommand(newConfigEditCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE:  runConfigShow,
	}
	cmd.Flags().StringVar(&configShowFormat, "format", "", "Output format: yaml or toml (default: format of the config file)")
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration for errors",
		RunE:  runConfigValidate,
	}
}

func newConfigEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the configuration in $EDITOR",
		RunE:  runConfigEdit,
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(configPath)
	if err != nil {
		return err
	}

	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return err
	}

	format := config.FormatOf(pp.ConfigFile)
	switch strings.ToLower(configShowFormat) {
	case "":
	case string(config.FormatYAML), "yml":
		format = config.FormatYAML
	case string(config.FormatTOML):
		format = config.FormatTOML
	default:
		return fmt.Errorf("unknown format %q", configShowFormat)
	}

	data, err := cfg.MarshalFormat(format)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	if len(data) == 0 || data[len(data)-1] != '\n' {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(configPath)
	if err != nil {
		return err
	}

	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return err
	}

	results := cfg.Validate()
	if outputJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "configuration OK")
	} else {
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.Level, r.Message)
		}
	}

	if config.HasErrors(results) {
		return errors.New("configuration has errors")
	}
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(configPath)
	if err != nil {
		return err
	}
	created, err := seedConfigFile(pp.ConfigFile)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(cmd.ErrOrStderr(), "created %s\n", pp.ConfigFile)
	}

	argv, err := editorArgv(os.Getenv("EDITOR"), pp.ConfigFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	editor := exec.CommandContext(ctx, argv[0], argv[1:]...)
	editor.Stdin, editor.Stdout, editor.Stderr = cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()
	if err := editor.Run(); err != nil {
		return fmt.Errorf("run editor %s: %w", argv[0], err)
	}
	return nil
}

// editorArgv splits the EDITOR value and appends file. vi is used when unset.
func editorArgv(value, file string) ([]string, error) {
	if strings.TrimSpace(value) == "" {
		value = "vi"
	}
	argv := strings.Fields(value)
	if len(argv) == 0 {
		return nil, fmt.Errorf("invalid EDITOR value: %q", value)
	}
	return append(argv, file), nil
}

// seedConfigFile writes the default configuration to path, in the format its
// extension selects, unless the file already exists.
func seedConfigFile(path string) (bool, error) {
	exists, err := paths.FileExists(path)
	if err != nil {
		return false, fmt.Errorf("stat config: %w", err)
	}
	if exists {
		return false, nil
	}

	data, err := config.Default().MarshalFormat(config.FormatOf(path))
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write default config: %w", err)
	}
	return true, nil
}
