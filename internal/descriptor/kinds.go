package descriptor

import "brtoolchain/internal/tools"

// ToolKind tags the tools a toolchain descriptor may carry.
type ToolKind int

const (
	Assembler ToolKind = iota
	CCompiler
	CppCompiler
	CLinker
	CppLinker
	PkgConfig
)

func (k ToolKind) String() string {
	switch k {
	case Assembler:
		return "assembler"
	case CCompiler:
		return "c-compiler"
	case CppCompiler:
		return "cpp-compiler"
	case CLinker:
		return "c-linker"
	case CppLinker:
		return "cpp-linker"
	case PkgConfig:
		return "pkg-config"
	}
	return "unknown"
}

// Nature restricts a tool to C projects, C++ projects or both.
type Nature string

const (
	NatureBoth Nature = "both"
	NatureC    Nature = "cnature"
	NatureCpp  Nature = "ccnature"
)

// ArtifactKind tags the project types registered per installation.
type ArtifactKind int

const (
	Executable ArtifactKind = iota
	SharedLib
	StaticLib
	Autotools
)

func (k ArtifactKind) String() string {
	switch k {
	case Executable:
		return "exe"
	case SharedLib:
		return "sharedLib"
	case StaticLib:
		return "staticLib"
	case Autotools:
		return "autotools"
	}
	return "unknown"
}

// ConfigKind tags the build configurations of a project type.
type ConfigKind int

const (
	Debug ConfigKind = iota
	Release
	Default
)

func (k ConfigKind) String() string {
	switch k {
	case Debug:
		return "debug"
	case Release:
		return "release"
	case Default:
		return "default"
	}
	return "unknown"
}

// Host registry classes the generated descriptors extend.
const (
	commandLineGenerator     = "org.eclipse.cdt.managedbuilder.internal.core.ManagedCommandLineGenerator"
	environmentSupplier      = "org.buildroot.cdt.toolchain.BuildrootEnvironmentVariableSupplier"
	gnuBuilderSuperClass     = "cdt.managedbuild.target.gnu.builder"
	gnuConfigParent          = "cdt.managedbuild.config.gnu.base"
	elfBinaryParser          = "org.eclipse.cdt.core.GNU_ELF"
	buildArtefactTypePrefix  = "org.eclipse.cdt.build.core.buildArtefactType."
	buildTypeProperty        = "org.eclipse.cdt.build.core.buildType=org.eclipse.cdt.build.core.buildType."
	autotoolsToolchainSuper  = "org.eclipse.linuxtools.cdt.autotools.core.toolChain"
	autotoolsToolSuperPrefix = "org.eclipse.linuxtools.cdt.autotools.core.toolchain.tool."
	autotoolsConfigureSuper  = "org.eclipse.linuxtools.cdt.autotools.core.tool.configure"
	autotoolsHostOptionSuper = "org.eclipse.linuxtools.cdt.autotools.core.option.configure.host"
	autotoolsArtefactType    = "org.eclipse.linuxtools.cdt.autotools.core.buildArtefactType.autotools"
	autotoolsBuildProperties = "org.eclipse.linuxtools.cdt.autotools.core.buildType.default"
	autotoolsConfigParent    = "org.eclipse.linuxtools.cdt.autotools.core.configuration.build"
	scannerProfileSuffixC    = "_ManagedMakePerProjectProfileC"
	scannerProfileSuffixCpp  = "_ManagedMakePerProjectProfileCPP"
)

type inputMeta struct {
	idSuffix          string
	autotoolsIDSuffix string
	superClass        string
	profileSuffix     string
	specFileName      string
}

type toolMeta struct {
	binary      string
	idSuffix    string
	description string
	superClass  string
	nature      Nature
	input       *inputMeta
	// Autotools variants exist for compilers only.
	autotoolsIDSuffix string
	autotoolsSuper    string
}

var toolTable = map[ToolKind]toolMeta{
	Assembler: {
		binary:      tools.Assembler,
		idSuffix:    "assembler",
		description: "Assembler",
		superClass:  "cdt.managedbuild.tool.gnu.assembler",
		nature:      NatureBoth,
	},
	CCompiler: {
		binary:      tools.CCompiler,
		idSuffix:    "c.compiler",
		description: "C Compiler",
		superClass:  "cdt.managedbuild.tool.gnu.c.compiler",
		nature:      NatureBoth,
		input: &inputMeta{
			idSuffix:          "c.input",
			autotoolsIDSuffix: "autotools.c.input",
			superClass:        "cdt.managedbuild.tool.gnu.c.compiler.input",
			profileSuffix:     scannerProfileSuffixC,
			specFileName:      "specs.c",
		},
		autotoolsIDSuffix: "autotools.c.compiler",
		autotoolsSuper:    autotoolsToolSuperPrefix + "gcc",
	},
	CppCompiler: {
		binary:      tools.CppCompiler,
		idSuffix:    "cc.compiler",
		description: "C++ Compiler",
		superClass:  "cdt.managedbuild.tool.gnu.cpp.compiler",
		nature:      NatureCpp,
		input: &inputMeta{
			idSuffix:          "cpp.input",
			autotoolsIDSuffix: "autotools.cpp.input",
			superClass:        "cdt.managedbuild.tool.gnu.cpp.compiler.input",
			profileSuffix:     scannerProfileSuffixCpp,
			specFileName:      "specs.cpp",
		},
		autotoolsIDSuffix: "autotools.cc.compiler",
		autotoolsSuper:    autotoolsToolSuperPrefix + "gpp",
	},
	CLinker: {
		binary:      tools.CCompiler,
		idSuffix:    "c.linker",
		description: "C Linker",
		superClass:  "cdt.managedbuild.tool.gnu.c.linker",
		nature:      NatureC,
	},
	CppLinker: {
		binary:      tools.CppCompiler,
		idSuffix:    "cc.linker",
		description: "C++ Linker",
		superClass:  "cdt.managedbuild.tool.gnu.cpp.linker",
		nature:      NatureCpp,
	},
	PkgConfig: {
		binary:      tools.PkgConfig,
		idSuffix:    "pkgconfig",
		description: "Pkg config",
		superClass:  "org.eclipse.cdt.managedbuilder.pkgconfig.tool",
		nature:      NatureBoth,
	},
}

// Binary returns the base name of the executable behind a tool kind.
func (k ToolKind) Binary() string {
	return toolTable[k].binary
}

// SpecFileName returns the scanner spec file probed for a compiler kind, or
// the empty string for kinds without an input type.
func (k ToolKind) SpecFileName() string {
	if in := toolTable[k].input; in != nil {
		return in.specFileName
	}
	return ""
}
