// Package descriptor models the build definitions registered for a Buildroot
// toolchain installation as a typed tree.
package descriptor

import "brtoolchain/pkg/toolchainfile"

// OptionCategory groups the generic options of a toolchain.
type OptionCategory struct {
	ID   string
	Name string
}

// Option is a string option of a toolchain or tool. Value is a fixed value,
// DefaultValue a user-overridable one.
type Option struct {
	ID             string
	Name           string
	Category       string
	SuperClass     string
	Value          string
	DefaultValue   string
	ValueType      string
	ResourceFilter string
}

// TargetPlatform describes the binaries a toolchain produces.
type TargetPlatform struct {
	ID           string
	Name         string
	BinaryParser string
	OSList       string
	ArchList     string
}

// InputType binds a compiler to its scanner discovery profile.
type InputType struct {
	ID               string
	SuperClass       string
	ScannerProfileID string
}

// Tool is one tool of a toolchain.
type Tool struct {
	Kind                 ToolKind
	ID                   string
	Name                 string
	Command              string
	CommandLineGenerator string
	SuperClass           string
	Nature               Nature
	Input                *InputType
	Options              []Option
}

// MakeBuilder is the build command of a managed toolchain.
type MakeBuilder struct {
	ID         string
	Name       string
	Command    string
	SuperClass string
}

// Toolchain is a complete toolchain definition.
type Toolchain struct {
	ID                  string
	Name                string
	SuperClass          string
	EnvironmentSupplier string
	OSList              string
	ArchList            string
	Category            OptionCategory
	Options             []Option
	Platform            *TargetPlatform
	Tools               []Tool
	Builder             *MakeBuilder
}

// Tool returns the first tool of the given kind.
func (tc Toolchain) Tool(kind ToolKind) (Tool, bool) {
	for _, tool := range tc.Tools {
		if tool.Kind == kind {
			return tool, true
		}
	}
	return Tool{}, false
}

// ToolchainRef points a configuration at the toolchain it builds with.
type ToolchainRef struct {
	ID         string
	SuperClass string
}

// Configuration is a build configuration of a project type.
type Configuration struct {
	Kind            ConfigKind
	ID              string
	Name            string
	Parent          string
	BuildProperties string
	CleanCommand    string
	Toolchain       ToolchainRef
}

// ProjectType is a buildable artifact shape.
type ProjectType struct {
	Artifact            ArtifactKind
	ID                  string
	BuildArtefactType   string
	EnvironmentSupplier string
	Configurations      []Configuration
}

// ScannerProfile describes how a compiler is probed for its built-in include
// paths and macros.
type ScannerProfile struct {
	ID           string
	Name         string
	Compiler     ToolKind
	SpecFileName string
	Command      string
	Arguments    string
}

// Tree holds every descriptor built for one installation.
type Tree struct {
	Installation     toolchainfile.Installation
	Toolchain        Toolchain
	ProjectTypes     []ProjectType
	Autotools        Toolchain
	AutotoolsProject ProjectType
	Profiles         []ScannerProfile
}

// HasCpp reports whether the main toolchain carries a C++ compiler.
func (t Tree) HasCpp() bool {
	_, ok := t.Toolchain.Tool(CppCompiler)
	return ok
}

// IDs lists every identifier generated for the tree, in build order.
func (t Tree) IDs() []string {
	var ids []string
	ids = appendToolchainIDs(ids, t.Toolchain)
	for _, pt := range t.ProjectTypes {
		ids = appendProjectIDs(ids, pt)
	}
	ids = appendToolchainIDs(ids, t.Autotools)
	ids = appendProjectIDs(ids, t.AutotoolsProject)
	for _, p := range t.Profiles {
		ids = append(ids, p.ID)
	}
	return ids
}

func appendToolchainIDs(ids []string, tc Toolchain) []string {
	ids = append(ids, tc.ID, tc.Category.ID)
	for _, opt := range tc.Options {
		ids = append(ids, opt.ID)
	}
	if tc.Platform != nil {
		ids = append(ids, tc.Platform.ID)
	}
	for _, tool := range tc.Tools {
		ids = append(ids, tool.ID)
		for _, opt := range tool.Options {
			ids = append(ids, opt.ID)
		}
		if tool.Input != nil {
			ids = append(ids, tool.Input.ID)
		}
	}
	if tc.Builder != nil {
		ids = append(ids, tc.Builder.ID)
	}
	return ids
}

func appendProjectIDs(ids []string, pt ProjectType) []string {
	ids = append(ids, pt.ID)
	for _, cfg := range pt.Configurations {
		ids = append(ids, cfg.ID, cfg.Toolchain.ID)
	}
	return ids
}
