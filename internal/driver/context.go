package driver

import (
	"fmt"

	"github.com/lumenlang/lumenc/internal/config"
)

// PoisonHandle is a reserved Decl handle meaning "this name has
// multiple public definitions and must not be used." It is the maximum
// representable Handle, a value normal bump allocation (which starts
// at 0 and grows by one) will never produce in practice for any
// compilation this driver could actually run to completion.
const PoisonHandle Handle = ^Handle(0)

// Context is the process-wide global compilation context: every arena,
// every symbol table, the module registry, and the error counters. The
// spec models this as a singleton; this implementation keeps it as a
// single explicitly-passed aggregate instead, so individual passes
// and the scheduler can be unit tested against a fresh Context per
// test rather than fighting process-global state.
type Context struct {
	// Arenas. AST/Expr/Decl/TypeInfo/SrcLoc/TokType/TokData, per §3.
	// The driver core only needs the ones it touches directly
	// (Module and Decl); the remaining front-end arenas are owned
	// here so lifetime (FreeAll timing, §4.E step 5) is centralized,
	// but their record types are supplied by the embedder (the AST,
	// expr, and type-info shapes are out of scope per §1) via AnyArena.
	Modules  *Arena[Module]
	Decls    *Arena[Decl]
	SrcLoc   *Arena[SrcLocRecord]
	TokType  *Arena[TokTypeRecord]
	TokData  *Arena[TokDataRecord]
	AST      AnyArena
	Expr     AnyArena
	TypeInfo AnyArena

	interner *Interner

	moduleRegistry *SymbolTable[Handle] // dotted path -> module handle
	moduleList     []Handle             // non-generic, parse order
	genericList    []Handle             // generic modules, never scheduled

	globalSymbols *SymbolTable[Handle] // unqualified name -> decl handle or PoisonHandle
	qualified     *SymbolTable[*SymbolTable[Handle]]

	scratch *ScratchBuffer
	cfg     *config.Config

	diagnostics []Diagnostic
	nerrors     int
	nwarnings   int
	panicMode   bool

	stdlibModule Handle
	hasStdlib    bool
}

// SrcLocRecord, TokTypeRecord, and TokDataRecord are the record shapes
// for the three arenas that reserve handle 0 as a null sentinel. Their
// fields are intentionally minimal: the lexer/parser (out of scope per
// §1) own the real payloads and are expected to wrap these with their
// own types via AnyArena if richer data is needed; the driver core only
// needs them to exist so the discard-handle-0 step and the free/retain
// schedule in §4.E have something concrete to operate on.
type SrcLocRecord struct {
	File   string
	Offset int
}
type TokTypeRecord struct{ Name string }
type TokDataRecord struct{ Raw string }

// AnyArena is the minimal interface the driver core needs from an
// arena it doesn't otherwise know the record type of, so that AST and
// TypeInfo storage (owned by the out-of-scope parser/sema collaborators)
// can still be freed at the right point in §4.E step 5.
type AnyArena interface {
	FreeAll()
	BytesAllocated() uintptr
}

// NewContext implements compiler_init: it must be called exactly once
// before any parsing begins. It takes no standard-library directory and
// does not resolve one, neither from an argument nor from a platform
// search; cmd/lumenc handles its lib_dir setting itself, by passing it
// to PrependStdlib.
//
// ast, expr, and typeInfo are supplied by the caller rather than built
// here because their record types are out of scope (§1): the driver
// core knows only that they exist and must be sized and freed at the
// right points, never what they hold. The caller is still responsible
// for sizing them from the same arena.*_capacity settings NewContext
// uses for the Decl, SrcLoc, TokType, and TokData arenas (the module
// arena is sized with a fixed 64).
func NewContext(cfg *config.Config, ast, expr, typeInfo AnyArena) *Context {
	c := &Context{
		Modules:        NewArena[Module](64),
		Decls:          NewArena[Decl](cfg.GetInt("arena.decl_capacity")),
		SrcLoc:         NewArena[SrcLocRecord](cfg.GetInt("arena.srcloc_capacity")),
		TokType:        NewArena[TokTypeRecord](cfg.GetInt("arena.toktype_capacity")),
		TokData:        NewArena[TokDataRecord](cfg.GetInt("arena.tokdata_capacity")),
		AST:            ast,
		Expr:           expr,
		TypeInfo:       typeInfo,
		interner:       NewInterner(cfg.GetInt("symtab.global_capacity")),
		moduleRegistry: NewSymbolTable[Handle](cfg.GetInt("symtab.module_capacity")),
		globalSymbols:  NewSymbolTable[Handle](cfg.GetInt("symtab.global_capacity")),
		qualified:      NewSymbolTable[*SymbolTable[Handle]](cfg.GetInt("symtab.module_capacity")),
		scratch:        NewScratchBuffer(cfg.GetInt("buffer.scratch_max")),
		cfg:            cfg,
	}

	// Discard handle 0 in the three arenas that use it as a sentinel.
	c.SrcLoc.DiscardSentinel()
	c.TokType.DiscardSentinel()
	c.TokData.DiscardSentinel()

	return c
}

// Interner exposes the context's string interner.
func (c *Context) Interner() *Interner { return c.interner }

// Config exposes the context's settings.
func (c *Context) Config() *config.Config { return c.cfg }

// Scratch exposes the shared scratch buffer.
func (c *Context) Scratch() *ScratchBuffer { return c.scratch }

// ModuleList returns the non-generic module list in parse order, the
// iteration order used by both the analysis scheduler and codegen.
func (c *Context) ModuleList() []Handle { return c.moduleList }

// GenericModuleList returns modules declared with generic parameters.
// The driver never schedules or codegens these; how they're
// instantiated is left to the embedder (§9 open question).
func (c *Context) GenericModuleList() []Handle { return c.genericList }

// FindOrCreateModule implements compiler_find_or_create_module: if a
// module with this dotted path already exists it is returned as-is;
// otherwise a new one is allocated, registered, and appended to either
// the generic or main module list.
func (c *Context) FindOrCreateModule(pathSegments []string, genericParams []string) Handle {
	parts, full := c.interner.DottedPath(pathSegments)
	if h, ok := c.moduleRegistry.Get(full.String()); ok {
		return h
	}

	h := c.Modules.AllocZeroed()
	m := c.Modules.Deref(h)
	m.Name = full
	m.Path = parts
	m.Local = NewSymbolTable[Handle](c.cfg.GetInt("symtab.module_local_capacity"))
	m.Public = NewSymbolTable[Handle](c.cfg.GetInt("symtab.module_local_capacity") / 64)

	for _, p := range genericParams {
		m.GenericParams = append(m.GenericParams, c.interner.Intern(p))
	}

	c.moduleRegistry.Set(full.String(), h)
	if m.IsGeneric() {
		c.genericList = append(c.genericList, h)
	} else {
		c.moduleList = append(c.moduleList, h)
	}
	return h
}

// LookupModule returns the module registered under the given dotted
// path, if any.
func (c *Context) LookupModule(dottedPath string) (Handle, bool) {
	return c.moduleRegistry.Get(dottedPath)
}

// InstallStdlibModule pre-populates the synthetic standard-library
// module and pre-sets its stage to Functions (terminal), so every pass
// skips it (§4.D). populate is called with the new module's handle so
// the embedder can register its predefined compile-time constants.
func (c *Context) InstallStdlibModule(populate func(c *Context, stdlib Handle)) Handle {
	h := c.FindOrCreateModule([]string{"std", "$builtin"}, nil)
	m := c.Modules.Deref(h)
	m.synthetic = true
	m.Stage = lastStage
	c.stdlibModule = h
	c.hasStdlib = true
	if populate != nil {
		populate(c, h)
	}
	return h
}

// RegisterPublicSymbol implements compiler_register_public_symbol. It
// installs decl into the global unqualified table (poisoning on
// collision) and into the qualified namespace for decl's owning
// module (same poison rule). It does not touch the owning module's
// own Local/Public tables — per the spec, that's "typically performed
// by the caller that also calls this registration" alongside building
// the Decl.
func (c *Context) RegisterPublicSymbol(declHandle Handle) {
	decl := c.Decls.Deref(declHandle)
	name := decl.Name.String()

	if existing, ok := c.globalSymbols.Get(name); ok {
		if existing != PoisonHandle {
			c.globalSymbols.Set(name, PoisonHandle)
		}
	} else {
		c.globalSymbols.Set(name, declHandle)
	}

	mod := c.Modules.Deref(decl.Module)
	modPath := mod.Name.String()
	ns, ok := c.qualified.Get(modPath)
	if !ok {
		ns = NewSymbolTable[Handle](64)
		c.qualified.Set(modPath, ns)
	}
	if existing, ok := ns.Get(name); ok {
		if existing != PoisonHandle {
			ns.Set(name, PoisonHandle)
		}
	} else {
		ns.Set(name, declHandle)
	}
}

// LookupGlobal implements lookup_global: it returns the registered
// decl, PoisonHandle if the name is ambiguous across modules, or
// (0, false) if the name was never publicly registered.
func (c *Context) LookupGlobal(name string) (Handle, bool) {
	return c.globalSymbols.Get(name)
}

// LookupQualified implements lookup_qualified for a specific module's
// public namespace.
func (c *Context) LookupQualified(modulePath, name string) (Handle, bool) {
	ns, ok := c.qualified.Get(modulePath)
	if !ok {
		return 0, false
	}
	return ns.Get(name)
}

// FreeFrontendArenas releases the AST/Expr/Decl/TypeInfo/SrcLoc/TokData
// arenas, per §4.E step 5. TokType is deliberately retained: backend IR
// may still reference token types after this call.
func (c *Context) FreeFrontendArenas() {
	c.AST.FreeAll()
	c.Expr.FreeAll()
	c.TypeInfo.FreeAll()
	c.Decls.FreeAll()
	c.SrcLoc.FreeAll()
	c.TokData.FreeAll()
}

// FreeRemainingArenas releases what FreeFrontendArenas left standing
// (§4.E step 10): the module arena and the token-type arena.
func (c *Context) FreeRemainingArenas() {
	c.TokType.FreeAll()
	c.Modules.FreeAll()
}

// MemoryStats is gathered by CodegenDriver between codegen's two phases
// (§4.E step 4), before front-end arenas are released; cmd/lumenc
// prints it once the run has finished.
type MemoryStats struct {
	ASTBytes      uintptr
	ExprBytes     uintptr
	TypeInfoBytes uintptr
	DeclBytes     uintptr
	SrcLocBytes   uintptr
	TokTypeBytes  uintptr
	TokDataBytes  uintptr
}

func (m MemoryStats) String() string {
	return fmt.Sprintf(
		"ast=%dB expr=%dB type=%dB decl=%dB srcloc=%dB toktype=%dB tokdata=%dB",
		m.ASTBytes, m.ExprBytes, m.TypeInfoBytes, m.DeclBytes, m.SrcLocBytes, m.TokTypeBytes, m.TokDataBytes,
	)
}

// MemoryStats gathers front-end arena sizes.
func (c *Context) MemoryStats() MemoryStats {
	return MemoryStats{
		ASTBytes:      c.AST.BytesAllocated(),
		ExprBytes:     c.Expr.BytesAllocated(),
		TypeInfoBytes: c.TypeInfo.BytesAllocated(),
		DeclBytes:     c.Decls.BytesAllocated(),
		SrcLocBytes:   c.SrcLoc.BytesAllocated(),
		TokTypeBytes:  c.TokType.BytesAllocated(),
		TokDataBytes:  c.TokData.BytesAllocated(),
	}
}
