package tools

import "sort"

// Base names of the binaries a toolchain may provide.
const (
	Assembler   = "as"
	CCompiler   = "gcc"
	CppCompiler = "g++"
	Debugger    = "gdb"
	PkgConfig   = "pkg-config"
)

const hostBinSubdir = "host/usr/bin"

var binaryDefinitions = map[string]BinarySpec{
	Assembler:   {Name: Assembler, Description: "Assembler", Prefixed: true},
	CCompiler:   {Name: CCompiler, Description: "C Compiler", Prefixed: true, Required: true},
	CppCompiler: {Name: CppCompiler, Description: "C++ Compiler", Prefixed: true},
	Debugger:    {Name: Debugger, Description: "Debugger", Prefixed: true},
	PkgConfig:   {Name: PkgConfig, Description: "Pkg config"},
}

// KnownBinaries returns the names of the binaries reported by Detect.
func KnownBinaries() []string {
	names := make([]string, 0, len(binaryDefinitions))
	for name := range binaryDefinitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definition returns the binary definition for the provided base name.
func Definition(name string) (BinarySpec, bool) {
	def, ok := binaryDefinitions[name]
	return def, ok
}
