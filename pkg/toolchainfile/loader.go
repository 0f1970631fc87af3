// Package toolchainfile reads the Buildroot toolchain registry, a line-oriented
// file where every entry has the form path:prefix:architecture.
package toolchainfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileName is the registry file Buildroot writes into the user's home
// directory when BR2_ECLIPSE_REGISTER is enabled.
const FileName = ".buildroot-eclipse.toolchains"

const requiredFields = 3

// Policy selects how malformed lines are treated.
type Policy string

const (
	// PolicyStrict stops the scan at the first malformed line.
	PolicyStrict Policy = "strict"
	// PolicySkip records malformed lines and keeps scanning.
	PolicySkip Policy = "skip"
)

// ParsePolicy maps a configuration value onto a Policy. The empty string
// selects PolicyStrict.
func ParsePolicy(value string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(value))) {
	case "", PolicyStrict:
		return PolicyStrict, nil
	case PolicySkip:
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("unknown malformed line policy %q (want strict or skip)", value)
	}
}

// Installation is one cross toolchain listed in the registry.
type Installation struct {
	Path         string `json:"path" yaml:"path"`
	Prefix       string `json:"prefix" yaml:"prefix"`
	Architecture string `json:"architecture" yaml:"architecture"`
}

func (i Installation) String() string {
	return i.Path + ":" + i.Prefix + ":" + i.Architecture
}

// Load reads the registry at path. A missing file yields an error wrapping
// ErrRegistryMissing and no installations.
//
// Under PolicyStrict the installations parsed before the first malformed line
// are returned together with its *LineError. Under PolicySkip every valid
// installation is returned and malformed lines are reported as LineErrors.
func Load(path string, policy Policy) ([]Installation, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRegistryMissing, path)
		}
		return nil, fmt.Errorf("open registry: %w", err)
	}
	defer file.Close()

	return Parse(file, policy)
}

// Parse reads registry lines from r.
func Parse(r io.Reader, policy Policy) ([]Installation, error) {
	var (
		installs []Installation
		errs     LineErrors
		line     = 0
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		inst, lerr := parseLine(line, text)
		if lerr != nil {
			if policy == PolicySkip {
				errs = append(errs, lerr)
				continue
			}
			return installs, lerr
		}
		installs = append(installs, inst)
	}
	if err := scanner.Err(); err != nil {
		return installs, fmt.Errorf("read registry: %w", err)
	}

	if len(errs) > 0 {
		return installs, errs
	}
	return installs, nil
}

func parseLine(line int, text string) (Installation, *LineError) {
	fields := strings.Split(text, ":")
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	if len(fields) < requiredFields {
		return Installation{}, &LineError{
			Line:    line,
			Text:    text,
			Message: fmt.Sprintf("expected path:prefix:architecture, found %d field(s)", len(fields)),
		}
	}
	inst := Installation{
		Path:         fields[0],
		Prefix:       fields[1],
		Architecture: strings.ToUpper(fields[2]),
	}
	switch {
	case inst.Path == "":
		return Installation{}, &LineError{Line: line, Text: text, Message: "empty toolchain path"}
	case inst.Architecture == "":
		return Installation{}, &LineError{Line: line, Text: text, Message: "empty architecture"}
	}
	return inst, nil
}
