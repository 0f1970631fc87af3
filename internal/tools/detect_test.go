package tools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installBinary(t *testing.T, root, name string, mode os.FileMode) {
	t.Helper()
	dir := BinDir(root)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), mode))
}

func TestBinaryPath(t *testing.T) {
	assert.Equal(t, filepath.FromSlash("/opt/br/host/usr/bin/arm-linux-gcc"), BinaryPath("/opt/br", "arm-linux-", CCompiler))
	assert.Equal(t, filepath.FromSlash("/opt/br/host/usr/bin/pkg-config"), BinaryPath("/opt/br", "arm-linux-", PkgConfig))
	assert.Equal(t, filepath.FromSlash("/opt/br/host/usr/bin/arm-linux-objdump"), BinaryPath("/opt/br", "arm-linux-", "objdump"))
}

func TestFSProberRequiresExecutableRegularFile(t *testing.T) {
	root := t.TempDir()
	installBinary(t, root, "arm-linux-gcc", 0o755)
	installBinary(t, root, "arm-linux-g++", 0o644)
	require.NoError(t, os.MkdirAll(filepath.Join(BinDir(root), "arm-linux-as"), 0o755))
	installBinary(t, root, "pkg-config", 0o755)

	p := FSProber{}
	assert.True(t, p.Exists(root, "arm-linux-", CCompiler))
	assert.False(t, p.Exists(root, "arm-linux-", CppCompiler), "not executable")
	assert.False(t, p.Exists(root, "arm-linux-", Assembler), "directory")
	assert.False(t, p.Exists(root, "arm-linux-", Debugger), "missing")
	assert.True(t, p.Exists(root, "arm-linux-", PkgConfig), "unprefixed")
	assert.False(t, p.Exists(root, "mips-linux-", CCompiler), "other prefix")
}

func TestDetectReportsKnownBinaries(t *testing.T) {
	root := t.TempDir()
	installBinary(t, root, "arm-linux-gcc", 0o755)

	statuses := Detect(FSProber{}, root, "arm-linux-")
	require.Len(t, statuses, len(KnownBinaries()))

	byName := map[string]Status{}
	for _, st := range statuses {
		byName[st.Binary] = st
	}
	assert.True(t, byName[CCompiler].Present)
	assert.True(t, byName[CCompiler].Required)
	assert.False(t, byName[CppCompiler].Present)
	assert.False(t, byName[PkgConfig].Prefixed)
}

func TestProberFunc(t *testing.T) {
	var calls []string
	p := ProberFunc(func(_, prefix, base string) bool {
		calls = append(calls, prefix+base)
		return base == CCompiler
	})

	assert.True(t, p.Exists("/x", "a-", CCompiler))
	assert.False(t, p.Exists("/x", "a-", CppCompiler))
	assert.Equal(t, []string{"a-gcc", "a-g++"}, calls)
}
