package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"brtoolchain/internal/config"
	"brtoolchain/internal/descriptor"
	"brtoolchain/internal/paths"
	"brtoolchain/internal/tools"
	"brtoolchain/pkg/toolchainfile"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and toolchain health",
		RunE:  runDoctor,
	}
}

type healthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Summary string `json:"summary"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(configPath)
	if err != nil {
		return err
	}

	var checks []healthCheck

	cfg, cfgErr := config.Load(pp.ConfigFile)
	checks = append(checks, checkConfig(cfg, cfgErr))
	if cfgErr != nil {
		return writeDoctorResult(cmd, pp.ConfigFile, checks)
	}

	pp = paths.ApplyConfig(pp, cfg)
	installs, loadErr := toolchainfile.Load(pp.RegistryFile, toolchainfile.PolicySkip)
	checks = append(checks, checkRegistry(pp.RegistryFile, installs, loadErr))
	if len(installs) > 0 {
		checks = append(checks, checkToolchains(tools.FSProber{}, installs))
	}
	checks = append(checks, checkStateDir(pp.StateDir))

	return writeDoctorResult(cmd, pp.ConfigFile, checks)
}

func checkConfig(cfg config.Config, cfgErr error) healthCheck {
	if cfgErr != nil {
		return healthCheck{Name: "Config", Status: "error", Summary: cfgErr.Error()}
	}

	var warnings, errs int
	for _, v := range cfg.Validate() {
		switch v.Level {
		case "warning":
			warnings++
		case "error":
			errs++
		}
	}

	summary := fmt.Sprintf("policy %s, log level %s", cfg.MalformedLines, cfg.Log.Level)
	if errs > 0 {
		return healthCheck{Name: "Config", Status: "error", Summary: fmt.Sprintf("%s; %d errors", summary, errs)}
	}
	if warnings > 0 {
		return healthCheck{Name: "Config", Status: "warning", Summary: fmt.Sprintf("%s; %d warnings", summary, warnings)}
	}
	return healthCheck{Name: "Config", Status: "ok", Summary: summary}
}

func checkRegistry(path string, installs []toolchainfile.Installation, loadErr error) healthCheck {
	if errors.Is(loadErr, toolchainfile.ErrRegistryMissing) {
		return healthCheck{Name: "Registry", Status: "error", Summary: "missing " + path}
	}
	var lineErrs toolchainfile.LineErrors
	if errors.As(loadErr, &lineErrs) {
		return healthCheck{
			Name:    "Registry",
			Status:  "warning",
			Summary: fmt.Sprintf("%d installations, %d malformed lines", len(installs), len(lineErrs)),
		}
	}
	if loadErr != nil {
		return healthCheck{Name: "Registry", Status: "error", Summary: loadErr.Error()}
	}
	return healthCheck{Name: "Registry", Status: "ok", Summary: fmt.Sprintf("%d installations", len(installs))}
}

func checkToolchains(p tools.Prober, installs []toolchainfile.Installation) healthCheck {
	var usable int
	var missing []string
	for _, inst := range installs {
		if p.Exists(inst.Path, inst.Prefix, tools.CCompiler) {
			usable++
			continue
		}
		missing = append(missing, inst.Path)
	}

	if len(missing) == 0 {
		return healthCheck{Name: "Toolchains", Status: "ok", Summary: fmt.Sprintf("%d usable", usable)}
	}
	return healthCheck{
		Name:    "Toolchains",
		Status:  "warning",
		Summary: fmt.Sprintf("%d of %d without a C compiler: %s", len(missing), len(installs), strings.Join(missing, ", ")),
	}
}

func checkStateDir(dir string) healthCheck {
	ok, err := paths.DirExists(dir)
	if err != nil {
		return healthCheck{Name: "State", Status: "error", Summary: err.Error()}
	}
	if !ok {
		return healthCheck{Name: "State", Status: "warning", Summary: dir + " does not exist yet"}
	}

	var missing []string
	for _, kind := range []descriptor.ToolKind{descriptor.CCompiler, descriptor.CppCompiler} {
		name := kind.SpecFileName()
		exists, err := paths.FileExists(filepath.Join(dir, name))
		if err != nil {
			return healthCheck{Name: "State", Status: "error", Summary: err.Error()}
		}
		if !exists {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return healthCheck{
			Name:    "State",
			Status:  "warning",
			Summary: fmt.Sprintf("%s lacks %s (run scan)", dir, strings.Join(missing, ", ")),
		}
	}
	return healthCheck{Name: "State", Status: "ok", Summary: dir}
}

func writeDoctorResult(cmd *cobra.Command, configFile string, checks []healthCheck) error {
	if outputJSON {
		data, err := json.MarshalIndent(checks, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("HEALTH:")+" "+configFile)

	labels := map[string]string{"ok": "OK", "warning": "WARN", "error": "ERROR"}
	for _, c := range checks {
		statusStr := statusStyle(c.Status).Render(labels[c.Status])
		fmt.Fprintf(out, "  %-12s %s    %s\n", c.Name+":", statusStr, c.Summary)
	}

	return nil
}
