package descriptor

import (
	"path/filepath"
	"strings"

	"brtoolchain/internal/ident"
	"brtoolchain/internal/tools"
	"brtoolchain/pkg/toolchainfile"
)

// DefaultStateDir is substituted by the host registry with the plug-in state
// location when no explicit state directory is configured.
const DefaultStateDir = "${plugin_state_location}"

const (
	osList         = "linux"
	archList       = "all"
	valueString    = "string"
	resourceAll    = "all"
	cleanCommand   = "rm -rf"
	builderCommand = "make"
	probeArguments = "-E -P -v -dD"
)

var managedArtifacts = []ArtifactKind{Executable, SharedLib, StaticLib}

// Builder composes descriptor trees. Probe decides whether the C++ part of
// the main toolchain is emitted.
type Builder struct {
	Probe    tools.Prober
	StateDir string
}

// NewBuilder returns a Builder probing through p.
func NewBuilder(p tools.Prober, stateDir string) *Builder {
	return &Builder{Probe: p, StateDir: stateDir}
}

// Build composes the full tree for inst. Callers gate on the C compiler
// before calling Build.
func (b *Builder) Build(inst toolchainfile.Installation) Tree {
	hasCpp := b.Probe != nil && b.Probe.Exists(inst.Path, inst.Prefix, tools.CppCompiler)

	tree := Tree{Installation: inst}
	tree.Toolchain, tree.Profiles = b.mainToolchain(inst, hasCpp)
	for _, artifact := range managedArtifacts {
		tree.ProjectTypes = append(tree.ProjectTypes, managedProjectType(inst.Path, artifact))
	}
	tree.Autotools = autotoolsToolchain(inst)
	tree.AutotoolsProject = autotoolsProjectType(inst.Path)
	return tree
}

func (b *Builder) mainToolchain(inst toolchainfile.Installation, hasCpp bool) (Toolchain, []ScannerProfile) {
	id := ident.ToolchainBase(inst.Path)
	tc := Toolchain{
		ID:                  id,
		Name:                ident.ToolName(inst.Architecture, inst.Path, ""),
		EnvironmentSupplier: environmentSupplier,
		OSList:              osList,
		ArchList:            archList,
	}
	tc.Category, tc.Options = genericOptions(inst, id)
	tc.Platform = &TargetPlatform{
		ID:           ident.Identifier(inst.Path, "platform.base"),
		Name:         ident.ToolName(inst.Architecture, inst.Path, "Platform"),
		BinaryParser: elfBinaryParser,
		OSList:       osList,
		ArchList:     archList,
	}

	kinds := []ToolKind{Assembler, CCompiler, CLinker}
	if hasCpp {
		kinds = append(kinds, CppCompiler, CppLinker)
	}
	kinds = append(kinds, PkgConfig)

	var profiles []ScannerProfile
	for _, kind := range kinds {
		tool := managedTool(inst, kind)
		if tool.Input != nil {
			profiles = append(profiles, b.scannerProfile(inst, kind, tool.Command))
		}
		tc.Tools = append(tc.Tools, tool)
	}

	tc.Builder = &MakeBuilder{
		ID:         ident.Identifier(inst.Path, "builder"),
		Name:       ident.ToolName(inst.Architecture, inst.Path, "builder"),
		Command:    builderCommand,
		SuperClass: gnuBuilderSuperClass,
	}
	return tc, profiles
}

func genericOptions(inst toolchainfile.Installation, toolchainID string) (OptionCategory, []Option) {
	category := OptionCategory{ID: toolchainID + ".optionCategory", Name: "Generic Buildroot Settings"}
	options := []Option{
		{
			ID:             toolchainID + ".option.path",
			Name:           "Path",
			Category:       category.ID,
			Value:          tools.BinDir(inst.Path),
			ValueType:      valueString,
			ResourceFilter: resourceAll,
		},
		{
			ID:             toolchainID + ".option.prefix",
			Name:           "Prefix",
			Category:       category.ID,
			Value:          inst.Prefix,
			ValueType:      valueString,
			ResourceFilter: resourceAll,
		},
	}
	return category, options
}

func managedTool(inst toolchainfile.Installation, kind ToolKind) Tool {
	meta := toolTable[kind]
	tool := Tool{
		Kind:                 kind,
		ID:                   ident.Identifier(inst.Path, meta.idSuffix),
		Name:                 ident.ToolName(inst.Architecture, inst.Path, meta.description),
		Command:              tools.BinaryPath(inst.Path, inst.Prefix, meta.binary),
		CommandLineGenerator: commandLineGenerator,
		SuperClass:           meta.superClass,
		Nature:               meta.nature,
	}
	if meta.input != nil {
		tool.Input = &InputType{
			ID:               ident.Identifier(inst.Path, meta.input.idSuffix),
			SuperClass:       meta.input.superClass,
			ScannerProfileID: scannerProfileID(inst, kind),
		}
	}
	return tool
}

func scannerProfileID(inst toolchainfile.Installation, kind ToolKind) string {
	return ident.Identifier(inst.Path, inst.Architecture+toolTable[kind].input.profileSuffix)
}

func (b *Builder) scannerProfile(inst toolchainfile.Installation, kind ToolKind, command string) ScannerProfile {
	spec := toolTable[kind].input.specFileName
	stateDir := b.StateDir
	if stateDir == "" {
		stateDir = DefaultStateDir
	}
	return ScannerProfile{
		ID:           scannerProfileID(inst, kind),
		Name:         "Buildroot ManagedMakePerProjectProfile " + ident.ToolName(inst.Architecture, inst.Path, toolTable[kind].description),
		Compiler:     kind,
		SpecFileName: spec,
		Command:      command,
		Arguments:    probeArguments + " " + joinStatePath(stateDir, spec),
	}
}

func joinStatePath(stateDir, name string) string {
	if stateDir == DefaultStateDir {
		return stateDir + "/" + name
	}
	return filepath.Join(stateDir, name)
}

func managedProjectType(path string, artifact ArtifactKind) ProjectType {
	pt := ProjectType{
		Artifact:            artifact,
		ID:                  ident.Identifier(path, artifact.String()),
		BuildArtefactType:   buildArtefactTypePrefix + artifact.String(),
		EnvironmentSupplier: environmentSupplier,
	}
	for _, kind := range []ConfigKind{Debug, Release} {
		suffix := artifact.String() + "." + kind.String()
		pt.Configurations = append(pt.Configurations, Configuration{
			Kind:            kind,
			ID:              ident.Identifier(path, suffix),
			Name:            kind.String(),
			Parent:          gnuConfigParent,
			BuildProperties: buildTypeProperty + kind.String(),
			CleanCommand:    cleanCommand,
			Toolchain: ToolchainRef{
				ID:         ident.Identifier(path, suffix+".toolchain"),
				SuperClass: ident.ToolchainBase(path),
			},
		})
	}
	return pt
}

func autotoolsToolchain(inst toolchainfile.Installation) Toolchain {
	id := ident.AutotoolsToolchainBase(inst.Path)
	tc := Toolchain{
		ID:                  id,
		Name:                "Autotools " + ident.ToolName(inst.Architecture, inst.Path, ""),
		SuperClass:          autotoolsToolchainSuper,
		EnvironmentSupplier: environmentSupplier,
		OSList:              osList,
		ArchList:            archList,
	}
	tc.Category, tc.Options = genericOptions(inst, id)

	tc.Tools = append(tc.Tools, configureTool(inst))
	// The C++ compiler is declared without probing; see DESIGN.md.
	for _, kind := range []ToolKind{CCompiler, CppCompiler} {
		tc.Tools = append(tc.Tools, autotoolsTool(inst, kind))
	}
	return tc
}

// configureKind marks the configure tool, which has no managed ToolKind.
const configureKind ToolKind = -1

func configureTool(inst toolchainfile.Installation) Tool {
	return Tool{
		Kind:       configureKind,
		ID:         ident.Identifier(inst.Path, "autotools.tool.configure"),
		SuperClass: autotoolsConfigureSuper,
		Options: []Option{{
			ID:             ident.Identifier(inst.Path, "autotools.toolChain.option.host"),
			Name:           "Host",
			SuperClass:     autotoolsHostOptionSuper,
			DefaultValue:   HostTriplet(inst.Prefix),
			ValueType:      valueString,
			ResourceFilter: resourceAll,
		}},
	}
}

// HostTriplet derives the configure --host value from a tool prefix by
// trimming its trailing separator.
func HostTriplet(prefix string) string {
	return strings.TrimSuffix(prefix, "-")
}

func autotoolsTool(inst toolchainfile.Installation, kind ToolKind) Tool {
	meta := toolTable[kind]
	return Tool{
		Kind:                 kind,
		ID:                   ident.Identifier(inst.Path, meta.autotoolsIDSuffix),
		Name:                 "Autotools " + ident.ToolName(inst.Architecture, inst.Path, meta.description),
		Command:              tools.BinaryPath(inst.Path, inst.Prefix, meta.binary),
		CommandLineGenerator: commandLineGenerator,
		SuperClass:           meta.autotoolsSuper,
		Nature:               meta.nature,
		Input: &InputType{
			ID:               ident.Identifier(inst.Path, meta.input.autotoolsIDSuffix),
			SuperClass:       meta.input.superClass,
			ScannerProfileID: scannerProfileID(inst, kind),
		},
	}
}

func autotoolsProjectType(path string) ProjectType {
	return ProjectType{
		Artifact:          Autotools,
		ID:                ident.Identifier(path, Autotools.String()),
		BuildArtefactType: autotoolsArtefactType,
		Configurations: []Configuration{{
			Kind:            Default,
			ID:              ident.Identifier(path, "autotools.default"),
			Name:            "Configuration",
			Parent:          autotoolsConfigParent,
			BuildProperties: autotoolsBuildProperties,
			Toolchain: ToolchainRef{
				ID:         ident.Identifier(path, "autotools.default.toolchain"),
				SuperClass: ident.AutotoolsToolchainBase(path),
			},
		}},
	}
}
