// Package startup runs the discovery pass that turns the toolchain registry
// file into registered documents and debugger settings.
package startup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"brtoolchain/internal/debugger"
	"brtoolchain/internal/descriptor"
	"brtoolchain/internal/document"
	"brtoolchain/internal/ident"
	"brtoolchain/internal/logx"
	"brtoolchain/internal/registry"
	"brtoolchain/internal/tools"
	"brtoolchain/pkg/toolchainfile"
)

// Launcher is the launch configuration collaborator. It receives the
// populated debugger registry once the scan is complete.
type Launcher interface {
	Attach(ctx context.Context, debuggers *debugger.Registry) error
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(ctx context.Context, debuggers *debugger.Registry) error

// Attach implements Launcher.
func (f LauncherFunc) Attach(ctx context.Context, debuggers *debugger.Registry) error {
	return f(ctx, debuggers)
}

// Options configures a Session. Sink is required; every other field has a
// usable default.
type Options struct {
	RegistryFile string
	Policy       toolchainfile.Policy
	StateDir     string
	Probe        tools.Prober
	Sink         registry.Sink
	Debuggers    *debugger.Registry
	Launcher     Launcher
	Logger       *logrus.Logger
	SessionID    string
}

// Session owns the state of one discovery pass.
type Session struct {
	id        string
	file      string
	policy    toolchainfile.Policy
	probe     tools.Prober
	builder   *descriptor.Builder
	sink      registry.Sink
	debuggers *debugger.Registry
	launcher  Launcher
	log       *logrus.Entry
}

// Result summarizes a discovery pass.
type Result struct {
	SessionID  string   `json:"session_id"`
	Registered []string `json:"registered"`
	Skipped    []string `json:"skipped"`
	Failed     []string `json:"failed"`
	Documents  int      `json:"documents"`
	Errors     []error  `json:"-"`
}

// Err joins every error recorded during the pass.
func (r Result) Err() error {
	return errors.Join(r.Errors...)
}

// New validates opts and returns a ready session.
func New(opts Options) (*Session, error) {
	if opts.Sink == nil {
		return nil, errors.New("startup: sink is required")
	}
	if opts.RegistryFile == "" {
		return nil, errors.New("startup: registry file is required")
	}
	policy := opts.Policy
	if policy == "" {
		policy = toolchainfile.PolicyStrict
	}
	probe := opts.Probe
	if probe == nil {
		probe = tools.FSProber{}
	}
	stateDir := opts.StateDir
	if stateDir == "" {
		stateDir = descriptor.DefaultStateDir
	}
	debuggers := opts.Debuggers
	if debuggers == nil {
		debuggers = debugger.NewRegistry()
	}
	id := opts.SessionID
	if id == "" {
		id = uuid.NewString()
	}

	return &Session{
		id:        id,
		file:      opts.RegistryFile,
		policy:    policy,
		probe:     probe,
		builder:   descriptor.NewBuilder(probe, stateDir),
		sink:      opts.Sink,
		debuggers: debuggers,
		launcher:  opts.Launcher,
		log:       logx.Named(opts.Logger, "startup").WithField("session", id),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Debuggers returns the registry populated by Start.
func (s *Session) Debuggers() *debugger.Registry { return s.debuggers }

// Start reads the registry file and registers every installation that has a
// C compiler. Failures are logged and collected in the result; one failing
// installation never stops the others.
func (s *Session) Start(ctx context.Context) Result {
	res := Result{SessionID: s.id}

	installs, err := toolchainfile.Load(s.file, s.policy)
	if err != nil {
		s.log.WithError(err).Error("read toolchain registry")
		res.Errors = append(res.Errors, err)
		if errors.Is(err, toolchainfile.ErrRegistryMissing) {
			return res
		}
	}

	// Paths that normalize to the same identifiers are one installation.
	seen := mapset.NewThreadUnsafeSet[string]()
	for _, inst := range installs {
		if ctx.Err() != nil {
			res.Errors = append(res.Errors, ctx.Err())
			break
		}
		if !seen.Add(ident.ToolchainBase(inst.Path)) {
			s.log.WithField("path", inst.Path).Warn("duplicate toolchain entry ignored")
			res.Skipped = append(res.Skipped, inst.Path)
			continue
		}
		s.install(ctx, inst, &res)
	}

	if s.launcher != nil {
		if err := s.launcher.Attach(ctx, s.debuggers); err != nil {
			s.log.WithError(err).Error("attach launch configurations")
			res.Errors = append(res.Errors, fmt.Errorf("attach launcher: %w", err))
		}
	}

	s.log.WithFields(logrus.Fields{
		"registered": len(res.Registered),
		"skipped":    len(res.Skipped),
		"failed":     len(res.Failed),
	}).Info("toolchain scan complete")
	return res
}

func (s *Session) install(ctx context.Context, inst toolchainfile.Installation, res *Result) {
	log := s.log.WithFields(logrus.Fields{
		"path":   inst.Path,
		"prefix": inst.Prefix,
		"arch":   inst.Architecture,
	})

	if !s.probe.Exists(inst.Path, inst.Prefix, tools.CCompiler) {
		log.Warn("no C compiler, toolchain ignored")
		res.Skipped = append(res.Skipped, inst.Path)
		return
	}

	tree := s.builder.Build(inst)
	log = log.WithField("cpp", tree.HasCpp())
	set, err := document.Assemble(tree)
	if err != nil {
		s.fail(log, inst, fmt.Errorf("assemble %s: %w", inst.Path, err), res)
		return
	}

	for _, doc := range set.All() {
		if err := s.sink.Register(ctx, doc); err != nil {
			s.fail(log, inst, fmt.Errorf("register %s: %w", doc.ID, err), res)
			return
		}
		res.Documents++
	}

	key := s.debuggers.Register(inst.Architecture, inst.Prefix, inst.Path)
	log.WithField("debugger", key).Info("toolchain registered")
	res.Registered = append(res.Registered, inst.Path)
}

func (s *Session) fail(log *logrus.Entry, inst toolchainfile.Installation, err error, res *Result) {
	log.WithError(err).Error("toolchain registration failed")
	res.Failed = append(res.Failed, inst.Path)
	res.Errors = append(res.Errors, err)
}

// Stop clears the debugger registry owned by the session.
func (s *Session) Stop() {
	s.debuggers.Clear()
	s.log.Debug("session stopped")
}

// EnsureSpecFiles creates the empty input files the scanner probe commands
// preprocess. Existing files are left untouched.
func EnsureSpecFiles(stateDir string) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	for _, kind := range []descriptor.ToolKind{descriptor.CCompiler, descriptor.CppCompiler} {
		path := filepath.Join(stateDir, kind.SpecFileName())
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
	}
	return nil
}
