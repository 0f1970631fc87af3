package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"brtoolchain/internal/logx"
	"brtoolchain/internal/registry"
	"brtoolchain/internal/startup"
	"brtoolchain/internal/tools"
)

var (
	scanOutputDir string
	scanPolicy    string
	scanDryRun    bool
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Register every toolchain listed in the registry file",
		RunE:  runScan,
	}

	cmd.Flags().StringVar(&scanOutputDir, "output", "", "Directory receiving the registration documents")
	cmd.Flags().StringVar(&scanPolicy, "policy", "", "Malformed line policy: strict or skip")
	cmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "Assemble documents without writing them")

	return cmd
}

type scanReport struct {
	startup.Result
	Output string   `json:"output,omitempty"`
	Errs   []string `json:"errors,omitempty"`
}

func runScan(cmd *cobra.Command, _ []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	policy, err := policyOverride(scanPolicy, env.Policy)
	if err != nil {
		return err
	}
	if scanOutputDir != "" {
		env.Paths.OutputDir = scanOutputDir
	}

	logger := logx.Discard()
	if !scanDryRun {
		if err := env.Paths.EnsureDirs(); err != nil {
			return err
		}
		if err := startup.EnsureSpecFiles(env.Paths.StateDir); err != nil {
			return err
		}
		var closer io.Closer
		logger, closer, err = logx.New(env.Paths.LogFile, env.Config.Log.Level)
		if err != nil {
			return err
		}
		defer closer.Close()
	}

	sessionID := uuid.NewString()
	var sink registry.Sink = &registry.MemorySink{}
	if !scanDryRun {
		sink = registry.NewDirSink(env.Paths.OutputDir, sessionID)
	}

	session, err := startup.New(startup.Options{
		RegistryFile: env.Paths.RegistryFile,
		Policy:       policy,
		StateDir:     env.Paths.StateDir,
		Probe:        tools.FSProber{},
		Sink:         sink,
		Logger:       logger,
		SessionID:    sessionID,
	})
	if err != nil {
		return err
	}
	defer session.Stop()

	res := session.Start(cmd.Context())
	report := scanReport{Result: res}
	if !scanDryRun {
		report.Output = env.Paths.OutputDir
	}
	for _, e := range res.Errors {
		report.Errs = append(report.Errs, e.Error())
	}

	if outputJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		printScanReport(cmd.OutOrStdout(), report)
	}

	logger.WithFields(logrus.Fields{"documents": res.Documents}).Debug("scan command finished")
	if len(res.Registered) == 0 && len(res.Errors) > 0 {
		return res.Err()
	}
	return nil
}

func printScanReport(out io.Writer, r scanReport) {
	fmt.Fprintln(out, headerStyle.Render("SCAN:")+" "+r.SessionID)
	for _, path := range r.Registered {
		fmt.Fprintf(out, "  %s  %s\n", statusStyle("registered").Render("REGISTERED"), path)
	}
	for _, path := range r.Skipped {
		fmt.Fprintf(out, "  %s  %s (no C compiler)\n", statusStyle("skipped").Render("SKIPPED   "), path)
	}
	for _, path := range r.Failed {
		fmt.Fprintf(out, "  %s  %s\n", statusStyle("failed").Render("FAILED    "), path)
	}
	for _, msg := range r.Errs {
		fmt.Fprintf(out, "  error: %s\n", msg)
	}
	if r.Output != "" {
		fmt.Fprintf(out, "%d documents written to %s\n", r.Documents, r.Output)
	} else {
		fmt.Fprintf(out, "%d documents assembled\n", r.Documents)
	}
}
