package driver

// Stage is one point in the fixed, totally ordered semantic analysis
// pipeline. Values increase monotonically in pipeline order; a Module's
// Stage field is only ever advanced, never regressed (§3 invariant).
type Stage int

const (
	NotBegun Stage = iota
	Imports
	RegisterGlobals
	ConditionalCompilation
	Decls
	CTAssert
	Functions

	lastStage = Functions
)

func (s Stage) String() string {
	switch s {
	case NotBegun:
		return "NOT_BEGUN"
	case Imports:
		return "IMPORTS"
	case RegisterGlobals:
		return "REGISTER_GLOBALS"
	case ConditionalCompilation:
		return "CONDITIONAL_COMPILATION"
	case Decls:
		return "DECLS"
	case CTAssert:
		return "CT_ASSERT"
	case Functions:
		return "FUNCTIONS"
	default:
		return "UNKNOWN_STAGE"
	}
}

// Visibility controls whether a Decl is registered into a module's
// public table and the global/qualified tables.
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityPublic
	VisibilityExternal
)

// ResolveStatus tracks a Decl's progress through the DECLS/FUNCTIONS
// passes, independent of its owning Module's Stage (a module advances
// in lockstep; individual decls within it resolve one at a time).
type ResolveStatus int

const (
	Unresolved ResolveStatus = iota
	InProgress
	Resolved
	Poisoned
)

// DeclKind tags what kind of thing a Decl describes.
type DeclKind int

const (
	DeclVariable DeclKind = iota
	DeclFunction
	DeclType
	DeclConst
)

// Decl owns a name, a kind, a visibility, the module that defines it, a
// resolve status, and a kind-specific payload. Decls live in the decl
// arena; the owning Module is the logical (not memory) owner.
type Decl struct {
	Name     Sym
	Kind     DeclKind
	Vis      Visibility
	Module   Handle // handle into the module arena
	Status   ResolveStatus
	Payload  any // kind-specific data, opaque to the driver core
}

// Module is a translation unit grouped under a dotted-path name,
// sharing one symbol namespace. Modules are created lazily the first
// time their path is encountered during parsing and are never
// destroyed before process exit.
type Module struct {
	Name   Sym
	Path   []Sym // dotted path segments, for qualified lookups
	Stage  Stage
	Local  *SymbolTable[Handle] // name -> decl handle, all decls (incl. private)
	Public *SymbolTable[Handle] // name -> decl handle, public decls only

	GenericParams []Sym // nil if this is not a generic module
	Decls         []Handle

	// synthetic marks the pre-populated standard-library module,
	// which is pre-set to Functions (terminal) and is therefore
	// skipped by every pass.
	synthetic bool
}

// IsGeneric reports whether this module was declared with generic
// parameters. Generic modules are segregated into their own registry
// and are never scheduled by the analysis driver.
func (m *Module) IsGeneric() bool { return len(m.GenericParams) > 0 }

// CanAdvanceTo reports whether the module's current stage permits
// advancing to target; advancing is only ever target == Stage+1,
// repeated one step at a time by the scheduler.
func (m *Module) CanAdvanceTo(target Stage) bool { return m.Stage < target }
