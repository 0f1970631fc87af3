package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"brtoolchain/internal/tools"
	"brtoolchain/pkg/toolchainfile"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered installations and their binaries",
		RunE:  runList,
	}
}

type installationStatus struct {
	toolchainfile.Installation
	Binaries []tools.Status `json:"binaries"`
}

func runList(cmd *cobra.Command, _ []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	// Malformed lines are reported but never hide the valid ones.
	installs, loadErr := toolchainfile.Load(env.Paths.RegistryFile, toolchainfile.PolicySkip)
	if errors.Is(loadErr, toolchainfile.ErrRegistryMissing) {
		return loadErr
	}

	statuses := listStatuses(tools.FSProber{}, installs)
	if outputJSON {
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		printInstallations(cmd.OutOrStdout(), statuses)
	}
	return loadErr
}

func listStatuses(p tools.Prober, installs []toolchainfile.Installation) []installationStatus {
	out := make([]installationStatus, 0, len(installs))
	for _, inst := range installs {
		out = append(out, installationStatus{
			Installation: inst,
			Binaries:     tools.Detect(p, inst.Path, inst.Prefix),
		})
	}
	return out
}

func printInstallations(out io.Writer, statuses []installationStatus) {
	if len(statuses) == 0 {
		fmt.Fprintln(out, "(no installations)")
		return
	}

	for _, st := range statuses {
		fmt.Fprintf(out, "%s %s\n", headerStyle.Render(st.Architecture), st.Path)
		for _, bin := range st.Binaries {
			mark := statusStyle("present").Render("yes")
			if !bin.Present {
				if bin.Required {
					mark = statusStyle("missing").Render("no ")
				} else {
					mark = statusStyle("absent").Render("no ")
				}
			}
			fmt.Fprintf(out, "  %-11s %s  %s\n", bin.Binary, mark, bin.Path)
		}
	}
}
