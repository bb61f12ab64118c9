package driver

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// CodegenDriver runs §4.E end to end: header emission (terminal) or
// backend codegen, parallel object emission, and an optional link +
// run step.
type CodegenDriver struct {
	ctx     *Context
	target  BuildTarget
	backend Backend
	headers HeaderEmitter
	linker  Linker
	runner  Runner

	lastStats MemoryStats
}

// LastStats returns the front-end memory statistics gathered just
// before front-end arenas were freed during the most recent Run.
func (d *CodegenDriver) LastStats() MemoryStats { return d.lastStats }

// NewCodegenDriver wires the collaborators needed to drive target to
// completion. headers, linker, and runner may be nil when target never
// exercises that path (e.g. a headers-only or test-output build never
// needs a Linker).
func NewCodegenDriver(ctx *Context, target BuildTarget, backend Backend, headers HeaderEmitter, linker Linker, runner Runner) *CodegenDriver {
	return &CodegenDriver{ctx: ctx, target: target, backend: backend, headers: headers, linker: linker, runner: runner}
}

// Run executes the full pipeline and returns the produced object file
// paths (nil for a headers-only build) or an error.
func (d *CodegenDriver) Run() ([]string, error) {
	if d.target.OutputHeaders {
		return nil, d.emitHeaders()
	}

	if err := d.backend.Setup(); err != nil {
		return nil, fmt.Errorf("backend setup: %w", err)
	}

	modules := d.ctx.ModuleList()
	contexts := make([]CodegenContext, 0, len(modules))
	for i, h := range modules {
		m := d.ctx.Modules.Deref(h)
		cc, err := d.backend.Gen(d.ctx, m)
		if err != nil {
			return nil, fmt.Errorf("gen module %d (%s): %w", i, m.Name, err)
		}
		if cc == nil {
			continue
		}
		contexts = append(contexts, cc)
	}

	d.lastStats = d.ctx.MemoryStats() // printed by the caller (cmd/lumenc); gathered here to fix the timing (§4.E step 4)

	// Front-end arenas are frozen: everything the backend needs has
	// already been copied into codegen contexts above.
	d.ctx.FreeFrontendArenas()

	wantExe := d.target.WantsExecutable()

	objPaths, err := d.emitObjects(contexts, wantExe)
	if err != nil {
		return nil, err
	}

	if wantExe {
		if err := d.link(objPaths); err != nil {
			return nil, err
		}
		if d.target.RunAfterCompile && d.runner != nil {
			if err := d.runner.Run(d.target.OutputName); err != nil {
				return nil, fmt.Errorf("run: %w", err)
			}
		}
	}

	d.ctx.FreeRemainingArenas()
	return objPaths, nil
}

func (d *CodegenDriver) emitHeaders() error {
	for _, h := range d.ctx.ModuleList() {
		m := d.ctx.Modules.Deref(h)
		if _, err := d.headers.EmitHeader(d.ctx, m); err != nil {
			return fmt.Errorf("emit header for %s: %w", m.Name, err)
		}
	}
	return nil
}

// emitObjects is §4.E step 7: one worker per codegen context, joined
// in a fixed order. Results land at the slot matching the worker's
// module index regardless of completion order (§5's determinism
// guarantee). On SequentialCodegen, the same loop runs without
// spawning goroutines.
func (d *CodegenDriver) emitObjects(contexts []CodegenContext, wantExe bool) ([]string, error) {
	// Sized and indexed by the absolute module index (cc.ModuleIndex()),
	// not by position in contexts: contexts has already dropped any
	// module whose Gen returned nil, so a position-based index would
	// shift every later module's result into the wrong slot.
	objPaths := make([]string, len(d.ctx.ModuleList()))

	emit := func(cc CodegenContext) (string, error) {
		path, err := d.backend.Codegen(cc)
		if err != nil {
			return "", err
		}
		if path == "" && wantExe {
			return "", fmt.Errorf("codegen for module index %d returned no object but an executable was requested", cc.ModuleIndex())
		}
		return path, nil
	}

	if d.target.SequentialCodegen {
		for _, cc := range contexts {
			path, err := emit(cc)
			if err != nil {
				return nil, err
			}
			objPaths[cc.ModuleIndex()] = path
		}
		return objPaths, nil
	}

	var g errgroup.Group
	for _, cc := range contexts {
		cc := cc
		g.Go(func() error {
			path, err := emit(cc)
			if err != nil {
				return err
			}
			objPaths[cc.ModuleIndex()] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return objPaths, nil
}

// link implements §4.E step 8: use the platform linker for the default
// architecture, otherwise fall back to the generic linker if the
// object format supports it, or skip linking with a diagnostic and
// cancel RunAfterCompile.
func (d *CodegenDriver) link(objPaths []string) error {
	if d.target.IsPlatformDefaultArch() {
		return d.linker.PlatformLink(d.target.OutputName, objPaths)
	}
	if !d.linker.ObjFormatLinkingSupported(d.target.Arch) {
		d.target.RunAfterCompile = false
		d.ctx.AddDiagnostic(Diagnostic{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("linking not supported for object format %q, skipping link step", d.target.Arch),
		})
		return nil
	}
	return d.linker.Link(d.target.OutputName, objPaths)
}
