// Package tools locates the binaries of a Buildroot toolchain installation.
package tools

import (
	"os"
	"path/filepath"
)

// Prober reports whether a toolchain binary is available.
type Prober interface {
	Exists(installPath, prefix, base string) bool
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(installPath, prefix, base string) bool

// Exists implements Prober.
func (f ProberFunc) Exists(installPath, prefix, base string) bool {
	return f(installPath, prefix, base)
}

// FSProber checks the filesystem for an executable regular file.
type FSProber struct{}

// Exists implements Prober.
func (FSProber) Exists(installPath, prefix, base string) bool {
	info, err := os.Stat(BinaryPath(installPath, prefix, base))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

// BinDir is the directory holding the host tools of an installation.
func BinDir(installPath string) string {
	return filepath.Join(installPath, filepath.FromSlash(hostBinSubdir))
}

// BinaryPath returns the location of base inside the installation. Unknown
// binaries are assumed to carry the toolchain prefix.
func BinaryPath(installPath, prefix, base string) string {
	name := base
	if def, ok := Definition(base); !ok || def.Prefixed {
		name = prefix + base
	}
	return filepath.Join(BinDir(installPath), name)
}

// Detect reports every known binary for an installation.
func Detect(p Prober, installPath, prefix string) []Status {
	names := KnownBinaries()
	statuses := make([]Status, 0, len(names))
	for _, name := range names {
		def, _ := Definition(name)
		statuses = append(statuses, Status{
			Binary:   name,
			Path:     BinaryPath(installPath, prefix, name),
			Prefixed: def.Prefixed,
			Required: def.Required,
			Present:  p.Exists(installPath, prefix, name),
		})
	}
	return statuses
}
