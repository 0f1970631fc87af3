package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brtoolchain/internal/descriptor"
	"brtoolchain/internal/tools"
	"brtoolchain/pkg/toolchainfile"
)

var install = toolchainfile.Installation{Path: "/opt/br", Prefix: "arm-linux-", Architecture: "ARM"}

func buildTree(t *testing.T, cpp bool) descriptor.Tree {
	t.Helper()
	probe := tools.ProberFunc(func(_, _, base string) bool {
		return base == tools.CCompiler || (cpp && base == tools.CppCompiler)
	})
	return descriptor.NewBuilder(probe, "/var/lib/brtoolchain").Build(install)
}

func ids(e *Element) map[string]bool {
	out := map[string]bool{}
	e.Walk(func(el *Element) {
		if id, ok := el.Attr("id"); ok {
			out[id] = true
		}
	})
	return out
}

func TestBuildDefinitionsLayout(t *testing.T) {
	doc, err := BuildDefinitions(buildTree(t, true))
	require.NoError(t, err)

	assert.Equal(t, KindBuildDefinitions, doc.Kind)
	assert.Equal(t, "/opt/br", doc.Source)
	assert.Equal(t, "plugin", doc.Root.Name)
	require.Len(t, doc.Root.Children, 1)

	ext := doc.Extension()
	require.NotNil(t, ext)
	point, _ := ext.Attr("point")
	assert.Equal(t, buildDefinitionsPoint, point)

	var names []string
	for _, child := range ext.Children {
		names = append(names, child.Name)
	}
	assert.Equal(t, []string{"toolChain", "projectType", "projectType", "projectType", "toolChain", "projectType"}, names)

	main := ext.Children[0]
	var toolIDs []string
	for _, tool := range main.Find("tool") {
		id, _ := tool.Attr("id")
		toolIDs = append(toolIDs, id)
	}
	assert.Equal(t, []string{
		"org.buildroot.opt.br.assembler",
		"org.buildroot.opt.br.c.compiler",
		"org.buildroot.opt.br.c.linker",
		"org.buildroot.opt.br.cc.compiler",
		"org.buildroot.opt.br.cc.linker",
		"org.buildroot.opt.br.pkgconfig",
	}, toolIDs)
	require.Len(t, main.Find("builder"), 1)
	require.Len(t, main.Find("targetPlatform"), 1)
	require.Len(t, main.Find("option"), 2)

	for _, pt := range ext.Find("projectType") {
		require.NotEmpty(t, pt.Find("configuration"))
	}
}

func TestMainDocumentWithoutCpp(t *testing.T) {
	doc, err := BuildDefinitions(buildTree(t, false))
	require.NoError(t, err)

	ext := doc.Extension()
	main := ext.Children[0]
	for _, tool := range main.Find("tool") {
		nature, _ := tool.Attr("natureFilter")
		assert.NotEqual(t, string(descriptor.NatureCpp), nature, "main toolchain carries a C++ tool")
	}

	// The Autotools toolchain still declares its C++ compiler.
	autotools := ext.Children[4]
	found := false
	for _, tool := range autotools.Find("tool") {
		if id, _ := tool.Attr("id"); id == "org.buildroot.opt.br.autotools.cc.compiler" {
			found = true
		}
	}
	assert.True(t, found)

	all := ids(doc.Root)
	assert.False(t, all["org.buildroot.opt.br.cc.compiler"])
	assert.False(t, all["org.buildroot.opt.br.cpp.input"])
}

func TestBuildDefinitionsRejectsDuplicateIDs(t *testing.T) {
	tree := buildTree(t, true)
	tree.ProjectTypes[1].ID = tree.ProjectTypes[0].ID

	_, err := BuildDefinitions(tree)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateID))
}

func TestScannerProfileDocument(t *testing.T) {
	tree := buildTree(t, true)
	set, err := Assemble(tree)
	require.NoError(t, err)
	require.Len(t, set.Profiles, 2)

	doc := set.Profiles[1]
	assert.Equal(t, KindScannerProfile, doc.Kind)
	assert.Equal(t, "org.buildroot.opt.br.ARM_ManagedMakePerProjectProfileCPP", doc.ID)

	ext := doc.Extension()
	require.NotNil(t, ext)
	id, _ := ext.Attr("id")
	assert.Equal(t, doc.ID, id)

	require.Len(t, ext.Find("scannerInfoCollector"), 1)
	output := ext.Find("buildOutputProvider")
	require.Len(t, output, 1)
	assert.Len(t, output[0].Find("open"), 1)
	assert.Len(t, output[0].Find("scannerInfoConsoleParser"), 1)

	provider := ext.Find("scannerInfoProvider")
	require.Len(t, provider, 1)
	run := provider[0].Find("run")
	require.Len(t, run, 1)
	args, _ := run[0].Attr("arguments")
	cmd, _ := run[0].Attr("command")
	assert.Equal(t, "-E -P -v -dD /var/lib/brtoolchain/specs.cpp", args)
	assert.Equal(t, "/opt/br/host/usr/bin/arm-linux-g++", cmd)
}

func TestSetAllRegistersProfilesFirst(t *testing.T) {
	set, err := Assemble(buildTree(t, false))
	require.NoError(t, err)

	all := set.All()
	require.Len(t, all, 2)
	assert.Equal(t, KindScannerProfile, all[0].Kind)
	assert.Equal(t, KindBuildDefinitions, all[1].Kind)
}

func TestBytesRendersWellFormedXML(t *testing.T) {
	set, err := Assemble(buildTree(t, true))
	require.NoError(t, err)

	for _, doc := range set.All() {
		data, err := doc.Bytes()
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(string(data), Header))

		dec := xml.NewDecoder(bytes.NewReader(data))
		for {
			_, err := dec.Token()
			if errors.Is(err, io.EOF) {
				break
			}
			require.NoError(t, err)
		}
	}

	data, err := set.Main.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(data), `value="/opt/br/host/usr/bin"`)
	assert.Contains(t, string(data), `defaultValue="arm-linux"`)
	assert.Contains(t, string(data), `command="make"`)
}

func TestBytesWithoutRoot(t *testing.T) {
	_, err := Document{ID: "x"}.Bytes()
	assert.Error(t, err)
}
