package descriptor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"brtoolchain/internal/ident"
	"brtoolchain/internal/tools"
	"brtoolchain/pkg/toolchainfile"
)

func probeWith(present ...string) tools.Prober {
	set := map[string]bool{}
	for _, name := range present {
		set[name] = true
	}
	return tools.ProberFunc(func(_, _, base string) bool { return set[base] })
}

var armInstall = toolchainfile.Installation{Path: "/opt/br/output", Prefix: "arm-linux-", Architecture: "ARM"}

func toolKinds(tc Toolchain) []ToolKind {
	kinds := make([]ToolKind, 0, len(tc.Tools))
	for _, tool := range tc.Tools {
		kinds = append(kinds, tool.Kind)
	}
	return kinds
}

func TestBuildFullToolchain(t *testing.T) {
	tree := NewBuilder(probeWith(tools.CCompiler, tools.CppCompiler), "/state").Build(armInstall)

	tc := tree.Toolchain
	assert.Equal(t, "org.buildroot.opt.br.output.toolchain.base", tc.ID)
	assert.Equal(t, "ARM (/opt/br/output)", tc.Name)
	assert.Equal(t, []ToolKind{Assembler, CCompiler, CLinker, CppCompiler, CppLinker, PkgConfig}, toolKinds(tc))
	assert.True(t, tree.HasCpp())

	require.Len(t, tc.Options, 2)
	assert.Equal(t, "/opt/br/output/host/usr/bin", tc.Options[0].Value)
	assert.Equal(t, "arm-linux-", tc.Options[1].Value)
	assert.Equal(t, tc.Category.ID, tc.Options[0].Category)

	require.NotNil(t, tc.Platform)
	assert.Equal(t, "org.buildroot.opt.br.output.platform.base", tc.Platform.ID)
	require.NotNil(t, tc.Builder)
	assert.Equal(t, "make", tc.Builder.Command)

	cc, ok := tc.Tool(CCompiler)
	require.True(t, ok)
	assert.Equal(t, "/opt/br/output/host/usr/bin/arm-linux-gcc", cc.Command)
	require.NotNil(t, cc.Input)
	assert.Equal(t, "org.buildroot.opt.br.output.ARM_ManagedMakePerProjectProfileC", cc.Input.ScannerProfileID)

	pkg, ok := tc.Tool(PkgConfig)
	require.True(t, ok)
	assert.Equal(t, "/opt/br/output/host/usr/bin/pkg-config", pkg.Command)

	require.Len(t, tree.Profiles, 2)
	assert.Equal(t, "specs.c", tree.Profiles[0].SpecFileName)
	assert.Equal(t, "-E -P -v -dD /state/specs.c", tree.Profiles[0].Arguments)
	assert.Equal(t, "/opt/br/output/host/usr/bin/arm-linux-gcc", tree.Profiles[0].Command)
	assert.Equal(t, "specs.cpp", tree.Profiles[1].SpecFileName)
	assert.Equal(t, "/opt/br/output/host/usr/bin/arm-linux-g++", tree.Profiles[1].Command)
}

func TestBuildProjectTypes(t *testing.T) {
	tree := NewBuilder(probeWith(tools.CCompiler), "").Build(armInstall)

	require.Len(t, tree.ProjectTypes, 3)
	wantArtifacts := []ArtifactKind{Executable, SharedLib, StaticLib}
	for i, pt := range tree.ProjectTypes {
		assert.Equal(t, wantArtifacts[i], pt.Artifact)
		require.Len(t, pt.Configurations, 2)
		assert.Equal(t, Debug, pt.Configurations[0].Kind)
		assert.Equal(t, Release, pt.Configurations[1].Kind)
		for _, cfg := range pt.Configurations {
			assert.Equal(t, tree.Toolchain.ID, cfg.Toolchain.SuperClass)
			assert.NotEqual(t, cfg.ID, cfg.Toolchain.ID)
		}
	}
	assert.Equal(t, "org.buildroot.opt.br.output.exe.debug", tree.ProjectTypes[0].Configurations[0].ID)

	ap := tree.AutotoolsProject
	assert.Equal(t, Autotools, ap.Artifact)
	require.Len(t, ap.Configurations, 1)
	assert.Equal(t, Default, ap.Configurations[0].Kind)
	assert.Equal(t, tree.Autotools.ID, ap.Configurations[0].Toolchain.SuperClass)
}

func TestBuildWithoutCppOmitsCppFromMainToolchain(t *testing.T) {
	tree := NewBuilder(probeWith(tools.CCompiler), "").Build(armInstall)

	assert.False(t, tree.HasCpp())
	assert.Equal(t, []ToolKind{Assembler, CCompiler, CLinker, PkgConfig}, toolKinds(tree.Toolchain))
	_, ok := tree.Toolchain.Tool(CppLinker)
	assert.False(t, ok)

	require.Len(t, tree.Profiles, 1)
	assert.Equal(t, CCompiler, tree.Profiles[0].Compiler)
	assert.Equal(t, DefaultStateDir+"/specs.c", tree.Profiles[0].Arguments[len(probeArguments)+1:])

	cppProfile := ident.Identifier(armInstall.Path, "ARM"+scannerProfileSuffixCpp)
	for _, tool := range tree.Toolchain.Tools {
		if tool.Input != nil {
			assert.NotEqual(t, cppProfile, tool.Input.ScannerProfileID)
		}
	}
}

func TestAutotoolsBranchAlwaysDeclaresCppCompiler(t *testing.T) {
	// The main toolchain honours the C++ probe, the Autotools toolchain does not.
	for _, present := range [][]string{{tools.CCompiler}, {tools.CCompiler, tools.CppCompiler}} {
		tree := NewBuilder(probeWith(present...), "").Build(armInstall)

		at := tree.Autotools
		assert.Equal(t, "org.buildroot.opt.br.output.autotools.toolchain.base", at.ID)
		assert.Equal(t, []ToolKind{configureKind, CCompiler, CppCompiler}, toolKinds(at), "present=%v", present)

		cpp, ok := at.Tool(CppCompiler)
		require.True(t, ok)
		assert.Equal(t, NatureCpp, cpp.Nature)
		assert.Equal(t, "/opt/br/output/host/usr/bin/arm-linux-g++", cpp.Command)

		_, linker := at.Tool(CLinker)
		assert.False(t, linker)
		_, asm := at.Tool(Assembler)
		assert.False(t, asm)
	}
}

func TestAutotoolsInputTypes(t *testing.T) {
	tree := NewBuilder(probeWith(tools.CCompiler, tools.CppCompiler), "").Build(armInstall)

	want := map[ToolKind][2]string{
		CCompiler:   {"org.buildroot.opt.br.output.autotools.c.input", "cdt.managedbuild.tool.gnu.c.compiler.input"},
		CppCompiler: {"org.buildroot.opt.br.output.autotools.cpp.input", "cdt.managedbuild.tool.gnu.cpp.compiler.input"},
	}
	for kind, w := range want {
		at, ok := tree.Autotools.Tool(kind)
		require.True(t, ok, kind.String())
		require.NotNil(t, at.Input, kind.String())
		assert.Equal(t, w[0], at.Input.ID)
		assert.Equal(t, w[1], at.Input.SuperClass)

		main, ok := tree.Toolchain.Tool(kind)
		require.True(t, ok)
		assert.NotEqual(t, main.Input.ID, at.Input.ID)
		assert.Equal(t, main.Input.ScannerProfileID, at.Input.ScannerProfileID)
	}
}

func TestConfigureToolHostOption(t *testing.T) {
	tree := NewBuilder(probeWith(tools.CCompiler), "").Build(armInstall)

	configure := tree.Autotools.Tools[0]
	require.Len(t, configure.Options, 1)
	assert.Equal(t, "Host", configure.Options[0].Name)
	assert.Equal(t, "arm-linux", configure.Options[0].DefaultValue)
}

func TestHostTriplet(t *testing.T) {
	assert.Equal(t, "arm-linux", HostTriplet("arm-linux-"))
	assert.Equal(t, "arm-linux", HostTriplet("arm-linux"))
	assert.Equal(t, "", HostTriplet(""))
}

func TestIDsUniqueWithinInstallation(t *testing.T) {
	tree := NewBuilder(probeWith(tools.CCompiler, tools.CppCompiler), "").Build(armInstall)

	seen := map[string]bool{}
	for _, id := range tree.IDs() {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestIDsUniqueAcrossInstallations(t *testing.T) {
	b := NewBuilder(probeWith(tools.CCompiler, tools.CppCompiler), "")

	rapid.Check(t, func(t *rapid.T) {
		segment := rapid.StringMatching(`[a-z][0-9]{1,3}`)
		first := rapid.SliceOfN(segment, 1, 4).Draw(t, "first")
		second := rapid.SliceOfN(segment, 1, 4).Draw(t, "second")

		pathA := "/" + joinSegments(first)
		pathB := "/" + joinSegments(second)
		if pathA == pathB {
			t.Skip("same installation path")
		}

		idsA := b.Build(toolchainfile.Installation{Path: pathA, Prefix: "a-", Architecture: "ARM"}).IDs()
		idsB := b.Build(toolchainfile.Installation{Path: pathB, Prefix: "b-", Architecture: "ARM"}).IDs()

		seen := map[string]bool{}
		for _, id := range idsA {
			seen[id] = true
		}
		for _, id := range idsB {
			if seen[id] {
				t.Fatalf("id %s generated for both %s and %s", id, pathA, pathB)
			}
		}
	})
}

func joinSegments(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "/"
		}
		out += p
	}
	return out
}

func TestToolKindMetadata(t *testing.T) {
	tests := []struct {
		kind   ToolKind
		binary string
		spec   string
	}{
		{Assembler, "as", ""},
		{CCompiler, "gcc", "specs.c"},
		{CppCompiler, "g++", "specs.cpp"},
		{CLinker, "gcc", ""},
		{CppLinker, "g++", ""},
		{PkgConfig, "pkg-config", ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.binary, tt.kind.Binary())
			assert.Equal(t, tt.spec, tt.kind.SpecFileName())
		})
	}
}
