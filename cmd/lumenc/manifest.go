package main

import (
	"fmt"
	"os"

	"github.com/lumenlang/lumenc/internal/driver"
	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk shape of lumenc.yaml (§6 [FULL]): the
// build-target configuration the original spec leaves unspecified for
// CLI purposes but which cmd/lumenc still needs some concrete form of.
type Manifest struct {
	Sources         []string `yaml:"sources"`
	OutputKind      string   `yaml:"output_kind"`
	OutputName      string   `yaml:"output_name"`
	Arch            string   `yaml:"arch"`
	OS              string   `yaml:"os"`
	OutputHeaders   bool     `yaml:"output_headers"`
	TestOutput      bool     `yaml:"test_output"`
	RunAfterCompile bool     `yaml:"run_after_compile"`
	LexOnly         bool     `yaml:"lex_only"`
	ParseOnly       bool     `yaml:"parse_only"`
	LibDir          string   `yaml:"lib_dir"`
}

// LoadManifest reads and decodes a lumenc.yaml file. A missing file is
// not an error here; the caller falls back to flag-derived defaults,
// matching the teacher's own preference for flags over config files.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}

// outputKinds maps the manifest's string spelling to the driver enum.
var outputKinds = map[string]driver.OutputKind{
	"executable": driver.OutputExecutable,
	"test":       driver.OutputTest,
	"object":     driver.OutputObject,
	"headers":    driver.OutputHeadersKind,
}

// ToBuildTarget converts a fully-resolved manifest into the driver's
// BuildTarget, resolving the host's default architecture for the
// platform-link decision of §4.E step 8.
func (m *Manifest) ToBuildTarget(hostArch string) (driver.BuildTarget, error) {
	kind, ok := outputKinds[m.OutputKind]
	if !ok && m.OutputKind != "" {
		return driver.BuildTarget{}, fmt.Errorf("unknown output_kind %q", m.OutputKind)
	}
	return driver.BuildTarget{
		OutputKind:          kind,
		Arch:                m.Arch,
		OS:                  m.OS,
		OutputName:          m.OutputName,
		OutputHeaders:       m.OutputHeaders,
		TestOutput:          m.TestOutput,
		RunAfterCompile:     m.RunAfterCompile,
		PlatformDefaultArch: hostArch,
	}, nil
}
