package driver

import "fmt"

// passTable is the fixed, ordered dispatch table described in §9: the
// stage enum is the contract, and adding a pass means extending both
// it and this table, not adding another implementer to an open-ended
// interface hierarchy. Index i runs when a module advances from stage
// Stage(i) to Stage(i+1).
type passTable [int(lastStage)]Pass

// Scheduler drives every non-generic module through the fixed pass
// sequence, stage by stage, enforcing that all modules complete stage
// k before any module begins stage k+1 (§4.D, §5).
type Scheduler struct {
	ctx   *Context
	table passTable
}

// NewScheduler builds a scheduler over ctx. passes must have exactly
// one entry per Stage transition (Imports, RegisterGlobals,
// ConditionalCompilation, Decls, CTAssert, Functions), in that order.
func NewScheduler(ctx *Context, passes [6]Pass) *Scheduler {
	return &Scheduler{ctx: ctx, table: passTable(passes)}
}

// AnalyzeStage implements sema_analyze_stage: while m.Stage < target,
// it advances m one stage at a time, running the corresponding pass.
// It stops immediately (leaving m at the failing stage) the moment the
// global error counter becomes nonzero. AnalyzeStage itself keeps no
// record of that; it is Driver that never calls it again once a sweep
// has left errors recorded.
func (s *Scheduler) AnalyzeStage(m *Module, target Stage) error {
	if m.synthetic {
		return nil
	}
	if m.Stage > target {
		return fmt.Errorf("module %s: stage %s already past target %s", m.Name, m.Stage, target)
	}
	for m.Stage < target {
		next := m.Stage + 1
		pass := s.table[int(next)-1]
		if pass == nil {
			return fmt.Errorf("no pass registered for stage %s", next)
		}
		if err := pass(s.ctx, m); err != nil {
			return err
		}
		m.Stage = next
		if s.ctx.HasErrors() {
			return nil
		}
	}
	return nil
}

// AnalyzeToStage implements analyze_to_stage: every module in the
// non-generic module list, in parse order, is driven up to target.
// Errors from different modules are batched within this single sweep
// before the caller (Driver) decides whether to halt.
func (s *Scheduler) AnalyzeToStage(target Stage) error {
	for _, h := range s.ctx.ModuleList() {
		m := s.ctx.Modules.Deref(h)
		if err := s.AnalyzeStage(m, target); err != nil {
			return err
		}
	}
	return nil
}

// Driver runs every stage of the pipeline in order, per §4.D: "iterate
// target_stage from the first to the last enum value, invoking
// analyze_to_stage(target_stage) at each step." It returns after the
// first stage sweep that leaves errors recorded, without attempting
// later stages — this is the stop-on-first-error policy at the
// sequencing level (per-module stop-on-first-error is AnalyzeStage's
// job; this is the cross-module, cross-stage version).
func (s *Scheduler) Driver() error {
	for stage := Imports; stage <= lastStage; stage++ {
		if err := s.AnalyzeToStage(stage); err != nil {
			return err
		}
		if s.ctx.HasErrors() {
			return fmt.Errorf("compilation failed: %d error(s) at stage %s", s.ctx.Errors(), stage)
		}
	}
	return nil
}
