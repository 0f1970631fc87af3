// Package ident derives the globally unique identifiers and display names of
// the descriptors registered for a toolchain installation.
package ident

import (
	"os"
	"strings"
)

// Namespace prefixes every generated identifier.
const Namespace = "org.buildroot"

const (
	toolchainBaseSuffix          = "toolchain.base"
	autotoolsToolchainBaseSuffix = "autotools.toolchain.base"
)

// Identifier returns Namespace + "." + Normalize(path) + "." + suffix.
func Identifier(path, suffix string) string {
	return Namespace + "." + Normalize(path) + "." + suffix
}

// Normalize turns an installation path into an identifier segment: every path
// separator becomes a dot, then one trailing and one leading dot are removed.
func Normalize(path string) string {
	normalized := strings.ReplaceAll(path, "/", ".")
	if os.PathSeparator != '/' {
		normalized = strings.ReplaceAll(normalized, string(os.PathSeparator), ".")
	}
	normalized = strings.TrimSuffix(normalized, ".")
	normalized = strings.TrimPrefix(normalized, ".")
	return normalized
}

// ToolchainBase is the identifier of the main toolchain of an installation.
func ToolchainBase(path string) string {
	return Identifier(path, toolchainBaseSuffix)
}

// AutotoolsToolchainBase is the identifier of the Autotools toolchain of an
// installation.
func AutotoolsToolchainBase(path string) string {
	return Identifier(path, autotoolsToolchainBaseSuffix)
}

// ToolName builds the human readable name shown for a descriptor. Without a
// description it doubles as the key of the debugger configuration registry.
func ToolName(architecture, path, description string) string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(architecture))
	if description != "" {
		b.WriteString(" ")
		b.WriteString(description)
	}
	b.WriteString(" (")
	b.WriteString(path)
	b.WriteString(")")
	return b.String()
}
