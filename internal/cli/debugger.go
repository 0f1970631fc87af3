package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"brtoolchain/internal/debugger"
	"brtoolchain/internal/registry"
	"brtoolchain/internal/startup"
	"brtoolchain/internal/tools"
)

func newDebuggerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debugger [name]",
		Short: "Show the debugger configuration of registered toolchains",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDebugger,
	}
}

type debuggerEntry struct {
	Name string `json:"name"`
	debugger.Config
}

func runDebugger(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	session, err := startup.New(startup.Options{
		RegistryFile: env.Paths.RegistryFile,
		Policy:       env.Policy,
		StateDir:     env.Paths.StateDir,
		Probe:        tools.FSProber{},
		Sink:         &registry.MemorySink{},
	})
	if err != nil {
		return err
	}
	defer session.Stop()

	res := session.Start(cmd.Context())
	entries := debuggerEntries(session.Debuggers(), args)
	if len(args) == 1 && len(entries) == 0 {
		return fmt.Errorf("no debugger configuration for %q", args[0])
	}

	if outputJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		printDebuggers(cmd.OutOrStdout(), entries)
	}
	if len(res.Registered) == 0 {
		return res.Err()
	}
	return nil
}

func debuggerEntries(reg *debugger.Registry, names []string) []debuggerEntry {
	if len(names) == 0 {
		names = reg.Names()
	}
	var out []debuggerEntry
	for _, name := range names {
		if cfg, ok := reg.Lookup(name); ok {
			out = append(out, debuggerEntry{Name: name, Config: cfg})
		}
	}
	return out
}

func printDebuggers(out io.Writer, entries []debuggerEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "(no debugger configurations)")
		return
	}
	for _, e := range entries {
		fmt.Fprintln(out, headerStyle.Render(e.Name))
		fmt.Fprintf(out, "  gdb:   %s\n", e.DebugName)
		fmt.Fprintf(out, "  solib: %s\n", e.SolibPath)
	}
}
