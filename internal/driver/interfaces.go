package driver

// This file defines the collaborator interfaces the spec explicitly
// keeps out of the driver core (§1, §6): the lexer/parser, the
// per-pass semantic analyzers, the backend code generator, the
// platform linker, and source loading. The driver depends only on
// these shapes; concrete implementations (a real Lumen lexer, a real
// x86-64 backend) are supplied by an embedder.

// FileHandle identifies a loaded source file. It is opaque to the
// driver; SourceLoader implementations are free to use it however they
// like (a path, an index into their own table, ...).
type FileHandle any

// SourceLoader loads file contents from wherever sources live. Load is
// idempotent: loading the same path twice returns alreadyLoaded=true
// the second time and the driver does not re-parse.
type SourceLoader interface {
	Load(path string) (file FileHandle, alreadyLoaded bool, err error)
}

// AnalysisContext is whatever a Parser produces for one file. The
// driver never inspects it; parsing registers modules and declarations
// against the shared Context as a side effect, which is the only
// channel through which the driver observes a parse.
type AnalysisContext any

// Parser turns a loaded file into an AnalysisContext, registering
// modules/decls into ctx as a side effect.
type Parser interface {
	Parse(ctx *Context, file FileHandle) (AnalysisContext, error)
}

// Pass is one stage of the fixed analysis pipeline (§4.D). It advances
// m by exactly one stage's worth of work. Failure is communicated by
// recording Diagnostics against ctx (which the scheduler inspects via
// ctx.HasErrors after the pass returns) rather than by the returned
// error, which is reserved for driver-level faults unrelated to the
// source being compiled (e.g. a collaborator panicking internally).
type Pass func(ctx *Context, m *Module) error

// CodegenContext is an opaque, backend-owned handle produced by
// Backend.Gen from one module and consumed by Backend.Codegen. The
// driver's only use of it is to keep track of which module index it
// came from, for the deterministic result-slot assignment required by
// §4.E step 7 / §5.
type CodegenContext interface {
	ModuleIndex() int
}

// Backend is the code generator collaborator (§6). Setup runs once.
// Gen runs per module while front-end arenas are still live and may
// return a nil CodegenContext meaning "nothing to emit for this
// module". Codegen runs per context after front-end arenas have been
// freed, and is the step §4.E fans out across workers.
type Backend interface {
	Setup() error
	Gen(ctx *Context, m *Module) (CodegenContext, error)
	Codegen(cc CodegenContext) (objectPath string, err error)
}

// HeaderEmitter is the collaborator used when BuildTarget.OutputHeaders
// is set (§4.E step 1): it's invoked instead of the backend and the
// pipeline terminates without ever calling Backend.
type HeaderEmitter interface {
	EmitHeader(ctx *Context, m *Module) (path string, err error)
}

// Linker is the platform linker collaborator (§6).
type Linker interface {
	// PlatformLink links for the host's default architecture.
	PlatformLink(outputName string, objPaths []string) error
	// Link is the generic linker used for non-default target
	// architectures whose object format supports linking.
	Link(outputName string, objPaths []string) error
	// ObjFormatLinkingSupported gates the Link path: if false, the
	// driver skips linking entirely and cancels RunAfterCompile.
	ObjFormatLinkingSupported(format string) bool
}

// Runner executes the produced binary as a child process when
// RunAfterCompile is set (§6). Kept as a collaborator interface rather
// than a direct os/exec call so tests can assert "was this invoked"
// without actually spawning a process.
type Runner interface {
	Run(outputName string) error
}
