package document

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"brtoolchain/internal/descriptor"
	"brtoolchain/internal/ident"
)

const (
	buildDefinitionsPoint = "org.eclipse.cdt.managedbuilder.core.buildDefinitions"
	scannerProfilePoint   = "org.eclipse.cdt.make.core.ScannerConfigurationDiscoveryProfile"

	scannerInfoCollector = "org.buildroot.cdt.toolchain.DefaultGCCScannerInfoCollector"
	managedConsoleParser = "org.buildroot.cdt.toolchain.ManagedGCCScannerInfoConsoleParser"
	specsRunProvider     = "org.eclipse.cdt.make.internal.core.scannerconfig2.GCCSpecsRunSIProvider"
	specsConsoleParser   = "org.eclipse.cdt.make.internal.core.scannerconfig.gnu.GCCSpecsConsoleParser"
)

// Set holds every document produced for one installation.
type Set struct {
	Main     Document
	Profiles []Document
}

// All returns the profile documents followed by the main document, the order
// in which they are registered.
func (s Set) All() []Document {
	out := make([]Document, 0, len(s.Profiles)+1)
	out = append(out, s.Profiles...)
	return append(out, s.Main)
}

// Assemble renders the main document and one scanner profile document per
// compiler input type of the tree.
func Assemble(tree descriptor.Tree) (Set, error) {
	main, err := BuildDefinitions(tree)
	if err != nil {
		return Set{}, err
	}
	set := Set{Main: main}
	for _, p := range tree.Profiles {
		set.Profiles = append(set.Profiles, ScannerProfile(p, tree.Installation.Path))
	}
	return set, nil
}

// BuildDefinitions wraps all descriptors of the tree as siblings of a single
// extension block.
func BuildDefinitions(tree descriptor.Tree) (Document, error) {
	seen := mapset.NewThreadUnsafeSet[string]()
	for _, id := range tree.IDs() {
		if !seen.Add(id) {
			return Document{}, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
	}

	ext := NewElement("extension", "point", buildDefinitionsPoint)
	ext.Add(toolchainElement(tree.Toolchain))
	for _, pt := range tree.ProjectTypes {
		ext.Add(projectTypeElement(pt))
	}
	ext.Add(toolchainElement(tree.Autotools))
	ext.Add(projectTypeElement(tree.AutotoolsProject))

	path := tree.Installation.Path
	return Document{
		ID:     ident.Identifier(path, "buildDefinitions"),
		Kind:   KindBuildDefinitions,
		Source: path,
		Root:   NewElement("plugin").Add(ext),
	}, nil
}

// ScannerProfile renders the standalone discovery profile document of one
// compiler.
func ScannerProfile(p descriptor.ScannerProfile, source string) Document {
	ext := NewElement("extension",
		"id", p.ID,
		"name", p.Name,
		"point", scannerProfilePoint,
	)
	ext.Add(
		NewElement("scannerInfoCollector", "class", scannerInfoCollector, "scope", "project"),
		NewElement("buildOutputProvider").Add(
			NewElement("open"),
			NewElement("scannerInfoConsoleParser", "class", managedConsoleParser),
		),
		NewElement("scannerInfoProvider", "providerId", "specsFile").Add(
			NewElement("run",
				"arguments", p.Arguments,
				"class", specsRunProvider,
				"command", p.Command,
			),
			NewElement("scannerInfoConsoleParser", "class", specsConsoleParser),
		),
	)
	return Document{
		ID:     p.ID,
		Kind:   KindScannerProfile,
		Source: source,
		Root:   NewElement("plugin").Add(ext),
	}
}

func toolchainElement(tc descriptor.Toolchain) *Element {
	e := NewElement("toolChain",
		"archList", tc.ArchList,
		"configurationEnvironmentSupplier", tc.EnvironmentSupplier,
		"id", tc.ID,
		"isAbstract", "false",
		"name", tc.Name,
		"osList", tc.OSList,
	)
	e.SetNonEmpty("superClass", tc.SuperClass)

	e.Add(NewElement("optionCategory", "id", tc.Category.ID, "name", tc.Category.Name))
	for _, opt := range tc.Options {
		e.Add(optionElement(opt))
	}
	if p := tc.Platform; p != nil {
		e.Add(NewElement("targetPlatform",
			"archList", p.ArchList,
			"binaryParser", p.BinaryParser,
			"id", p.ID,
			"isAbstract", "false",
			"name", p.Name,
			"osList", p.OSList,
		))
	}
	for _, tool := range tc.Tools {
		e.Add(toolElement(tool))
	}
	if b := tc.Builder; b != nil {
		e.Add(NewElement("builder",
			"command", b.Command,
			"id", b.ID,
			"isAbstract", "false",
			"name", b.Name,
			"isVariableCaseSensitive", "false",
			"superClass", b.SuperClass,
		))
	}
	return e
}

func optionElement(opt descriptor.Option) *Element {
	e := NewElement("option")
	e.SetNonEmpty("category", opt.Category)
	e.Set("id", opt.ID)
	e.Set("isAbstract", "false")
	e.Set("name", opt.Name)
	e.Set("resourceFilter", opt.ResourceFilter)
	e.SetNonEmpty("superClass", opt.SuperClass)
	if opt.DefaultValue != "" {
		e.Set("defaultValue", opt.DefaultValue)
	} else {
		e.Set("value", opt.Value)
	}
	e.Set("valueType", opt.ValueType)
	return e
}

func toolElement(tool descriptor.Tool) *Element {
	e := NewElement("tool")
	e.SetNonEmpty("command", tool.Command)
	e.SetNonEmpty("commandLineGenerator", tool.CommandLineGenerator)
	e.Set("id", tool.ID)
	e.Set("isAbstract", "false")
	e.SetNonEmpty("name", tool.Name)
	e.SetNonEmpty("natureFilter", string(tool.Nature))
	e.Set("superClass", tool.SuperClass)
	for _, opt := range tool.Options {
		e.Add(optionElement(opt))
	}
	if in := tool.Input; in != nil {
		e.Add(NewElement("inputType",
			"superClass", in.SuperClass,
			"id", in.ID,
			"scannerConfigDiscoveryProfileId", in.ScannerProfileID,
		))
	}
	return e
}

func projectTypeElement(pt descriptor.ProjectType) *Element {
	e := NewElement("projectType",
		"buildArtefactType", pt.BuildArtefactType,
		"id", pt.ID,
		"isAbstract", "false",
	)
	if pt.Artifact != descriptor.Autotools {
		e.Set("isTest", "false")
	}
	e.SetNonEmpty("projectEnvironmentSupplier", pt.EnvironmentSupplier)
	for _, cfg := range pt.Configurations {
		c := NewElement("configuration", "buildProperties", cfg.BuildProperties)
		c.SetNonEmpty("cleanCommand", cfg.CleanCommand)
		c.Set("id", cfg.ID)
		c.Set("name", cfg.Name)
		c.Set("parent", cfg.Parent)
		c.Add(NewElement("toolChain", "id", cfg.Toolchain.ID, "superClass", cfg.Toolchain.SuperClass))
		e.Add(c)
	}
	return e
}
