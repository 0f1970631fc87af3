package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"brtoolchain/internal/descriptor"
	"brtoolchain/internal/document"
	"brtoolchain/internal/tools"
	"brtoolchain/pkg/toolchainfile"
)

var describeAssumeCpp bool

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <path> <prefix> <architecture>",
		Short: "Print the registration documents of one installation",
		Args:  cobra.ExactArgs(3),
		RunE:  runDescribe,
	}
	cmd.Flags().BoolVar(&describeAssumeCpp, "assume-cpp", false, "Emit the C++ toolchain without probing for g++")
	return cmd
}

type describedDocument struct {
	ID   string        `json:"id"`
	Kind document.Kind `json:"kind"`
	XML  string        `json:"xml"`
}

func runDescribe(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	inst := toolchainfile.Installation{
		Path:         args[0],
		Prefix:       args[1],
		Architecture: strings.ToUpper(args[2]),
	}

	var probe tools.Prober = tools.FSProber{}
	if describeAssumeCpp {
		probe = tools.ProberFunc(func(path, prefix, base string) bool {
			return base == tools.CppCompiler || tools.FSProber{}.Exists(path, prefix, base)
		})
	}

	docs, err := describeInstallation(descriptor.NewBuilder(probe, env.Paths.StateDir), inst)
	if err != nil {
		return err
	}

	if outputJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	for i, doc := range docs {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "<!-- %s: %s -->\n", doc.Kind, doc.ID)
		fmt.Fprint(cmd.OutOrStdout(), doc.XML)
	}
	return nil
}

func describeInstallation(b *descriptor.Builder, inst toolchainfile.Installation) ([]describedDocument, error) {
	set, err := document.Assemble(b.Build(inst))
	if err != nil {
		return nil, err
	}
	var out []describedDocument
	for _, doc := range set.All() {
		data, err := doc.Bytes()
		if err != nil {
			return nil, err
		}
		out = append(out, describedDocument{ID: doc.ID, Kind: doc.Kind, XML: string(data)})
	}
	return out, nil
}
