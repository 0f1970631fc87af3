package tools

// BinarySpec describes an executable looked up inside a toolchain's host
// binary directory.
type BinarySpec struct {
	Name        string
	Description string
	// Prefixed binaries carry the toolchain prefix, e.g. arm-linux-gcc.
	Prefixed bool
	// Required binaries gate whether an installation is registered at all.
	Required bool
}

// Status captures the resolved state of one binary for an installation.
type Status struct {
	Binary   string `json:"binary"`
	Path     string `json:"path"`
	Prefixed bool   `json:"prefixed"`
	Required bool   `json:"required"`
	Present  bool   `json:"present"`
}
