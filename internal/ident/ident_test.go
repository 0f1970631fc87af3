package ident

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		path   string
		suffix string
		want   string
	}{
		{"/opt/br/output", "toolchain.base", "org.buildroot.opt.br.output.toolchain.base"},
		{"/opt/br/output/", "builder", "org.buildroot.opt.br.output.builder"},
		{"relative/dir", "c.compiler", "org.buildroot.relative.dir.c.compiler"},
		{"", "x", "org.buildroot..x"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Identifier(tt.path, tt.suffix), tt.path)
	}
}

func TestIdentifierTrailingSeparatorIgnored(t *testing.T) {
	assert.Equal(t, Identifier("a/b", "x"), Identifier("a/b/", "x"))
}

func TestNormalizeSeparatorOnlyPaths(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", ""},
		{"//", ""},
		{"///", "."},
		{"////", ".."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.path), "path %q", tt.path)
	}
	assert.Equal(t, "org.buildroot..toolchain.base", ToolchainBase("/"))
}

func TestNormalizeStripsOnlyOneDotEachSide(t *testing.T) {
	assert.Equal(t, ".a.", Normalize("//a//"))
}

func TestNamedDerivations(t *testing.T) {
	assert.Equal(t, "org.buildroot.opt.br.toolchain.base", ToolchainBase("/opt/br"))
	assert.Equal(t, "org.buildroot.opt.br.autotools.toolchain.base", AutotoolsToolchainBase("/opt/br"))
}

func TestToolName(t *testing.T) {
	assert.Equal(t, "ARM (/opt/br)", ToolName("arm", "/opt/br", ""))
	assert.Equal(t, "ARM C Compiler (/opt/br)", ToolName("ARM", "/opt/br", "C Compiler"))
}

func TestIdentifierDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		path := rapid.StringMatching(`[a-z/]{0,24}`).Draw(t, "path")
		suffix := rapid.StringMatching(`[a-z.]{1,12}`).Draw(t, "suffix")

		id := Identifier(path, suffix)
		if id != Identifier(path, suffix) {
			t.Fatalf("identifier not deterministic for %q", path)
		}
		if !strings.HasPrefix(id, Namespace+".") || !strings.HasSuffix(id, "."+suffix) {
			t.Fatalf("identifier %q lacks namespace or suffix", id)
		}
		if strings.Contains(id, "/") {
			t.Fatalf("identifier %q still contains a separator", id)
		}
	})
}
