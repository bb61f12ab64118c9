package driver

// OutputKind selects what the pipeline ultimately produces.
type OutputKind int

const (
	OutputExecutable OutputKind = iota
	OutputTest
	OutputObject
	OutputHeadersKind
)

// BuildTarget is the input to the codegen fan-out and link driver
// (§4.E): output kind, architecture/OS tuple, output name, and the
// flags that change its control flow.
type BuildTarget struct {
	OutputKind OutputKind
	Arch       string
	OS         string
	OutputName string

	OutputHeaders   bool
	TestOutput      bool
	RunAfterCompile bool

	// PlatformDefaultArch is the host's default architecture; used at
	// step 8 to decide between PlatformLink and the generic Linker.
	PlatformDefaultArch string

	// SequentialCodegen models "a platform without thread support"
	// (§4.E step 7, §5). No such platform exists among Go's build
	// targets; this flag exists so the sequential fallback branch the
	// spec requires is reachable and testable. See DESIGN.md.
	SequentialCodegen bool
}

// WantsExecutable implements §4.E step 6: an executable is produced
// iff the target is executable/test and it isn't a compile-only
// (test-output) build.
func (bt BuildTarget) WantsExecutable() bool {
	if bt.TestOutput {
		return false
	}
	return bt.OutputKind == OutputExecutable || bt.OutputKind == OutputTest
}

// IsPlatformDefaultArch reports whether bt targets the host's default
// architecture, gating step 8's linker choice.
func (bt BuildTarget) IsPlatformDefaultArch() bool {
	return bt.Arch == bt.PlatformDefaultArch
}
