// Package pipeline provides a unified compilation pipeline for corehir:
// spec §5's fixed phase order (Validate, Transform, Infer, Check, Validate,
// Coerce, Check, Desugar, Lower), each phase wrapped with timing and
// wrapped errors, matching the shape of the teacher's own pipeline.Run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sunholo/corehir/internal/coerce"
	"github.com/sunholo/corehir/internal/config"
	"github.com/sunholo/corehir/internal/desugar"
	"github.com/sunholo/corehir/internal/errors"
	"github.com/sunholo/corehir/internal/hir"
	"github.com/sunholo/corehir/internal/hirtypes"
	"github.com/sunholo/corehir/internal/infer"
	"github.com/sunholo/corehir/internal/lower"
	"github.com/sunholo/corehir/internal/mir"
	"github.com/sunholo/corehir/internal/synth"
	"github.com/sunholo/corehir/internal/validate"
)

// Mode selects how far the pipeline runs.
type Mode int

const (
	// ModeCheck runs every phase through Coerce+Check, stopping short of
	// desugaring and MIR lowering. Used by `corehirc typecheck`.
	ModeCheck Mode = iota
	// ModeLower runs the full pipeline through MIR lowering. Used by
	// `corehirc lower`.
	ModeLower
)

// Config controls pipeline execution.
type Config struct {
	Mode Mode
	// Configuration is the type configuration used for synth/desugar/lower
	// (spec §6.4). Callers typically load this from a YAML file via
	// config.Load; a zero-value TypeConfiguration is usable for modules
	// that don't exercise List/Map/String/Number/Error desugaring.
	Configuration *config.TypeConfiguration
}

// Source is a single parsed-and-built HIR module awaiting compilation. HIR
// construction (parsing a concrete surface syntax into hir.Module) is
// explicitly out of scope (spec §1's "concrete surface syntax" non-goal);
// callers hand the pipeline an already-built Module.
type Source struct {
	Module *hir.Module
}

// Artifacts holds the module at each phase boundary, so callers that want
// to dump an intermediate representation (corehirc's --dump-hir etc.) don't
// need to re-run earlier phases.
type Artifacts struct {
	Validated *hir.Module
	Inferred  *hir.Module
	Coerced   *hir.Module
	Desugared *hir.Module
}

// Result is the pipeline's output.
type Result struct {
	Environment  *hirtypes.Environment
	Artifacts    Artifacts
	MIR          *mir.Module // nil unless Config.Mode == ModeLower
	PhaseTimings map[string]int64
}

// Run executes the compilation pipeline over src according to cfg,
// stopping after type checking (ModeCheck) or after MIR lowering
// (ModeLower). ctx is checked at the boundary between every phase (spec
// §5: "passes expose a check() interface point between functions"); if
// ctx is cancelled before a phase starts, Run aborts immediately with
// errors.CancelledByDriver rather than starting that phase.
func Run(ctx context.Context, cfg Config, src Source) (Result, error) {
	result := Result{PhaseTimings: make(map[string]int64)}
	typeConfig := cfg.Configuration
	if typeConfig == nil {
		typeConfig = &config.TypeConfiguration{}
	}

	m := src.Module
	env := m.BuildEnvironment()
	result.Environment = env

	if err := checkCancelled(ctx); err != nil {
		return result, err
	}
	if err := phase(result.PhaseTimings, "validate", func() error {
		if err := validate.DuplicateNames(m); err != nil {
			return err
		}
		if err := validate.TypeExistence(m, env); err != nil {
			return err
		}
		return validate.TryPlacement(m, env)
	}); err != nil {
		return result, fmt.Errorf("validate phase: %w", err)
	}
	if err := checkCancelled(ctx); err != nil {
		return result, err
	}

	if err := phase(result.PhaseTimings, "transform", func() error {
		transformed, err := synth.Module(m, env, typeConfig)
		if err != nil {
			return err
		}
		m = transformed
		env = m.BuildEnvironment()
		return nil
	}); err != nil {
		return result, fmt.Errorf("transform phase: %w", err)
	}
	if err := checkCancelled(ctx); err != nil {
		return result, err
	}

	if err := phase(result.PhaseTimings, "infer", func() error {
		inferred, err := infer.Module(m, env)
		if err != nil {
			return err
		}
		m = inferred
		result.Artifacts.Inferred = m
		return nil
	}); err != nil {
		return result, fmt.Errorf("infer phase: %w", err)
	}
	if err := checkCancelled(ctx); err != nil {
		return result, err
	}

	if err := phase(result.PhaseTimings, "check", func() error {
		return infer.Check(m, env)
	}); err != nil {
		return result, fmt.Errorf("check phase: %w", err)
	}
	if err := checkCancelled(ctx); err != nil {
		return result, err
	}

	if err := phase(result.PhaseTimings, "validate_post_infer", func() error {
		if err := validate.RecordFieldPrivacy(m, env); err != nil {
			return err
		}
		return validate.RecordFields(m, env)
	}); err != nil {
		return result, fmt.Errorf("post-inference validation: %w", err)
	}
	result.Artifacts.Validated = m
	if err := checkCancelled(ctx); err != nil {
		return result, err
	}

	if err := phase(result.PhaseTimings, "coerce", func() error {
		coerced, err := coerce.Module(m, env)
		if err != nil {
			return err
		}
		m = coerced
		result.Artifacts.Coerced = m
		return nil
	}); err != nil {
		return result, fmt.Errorf("coerce phase: %w", err)
	}
	if err := checkCancelled(ctx); err != nil {
		return result, err
	}

	if err := phase(result.PhaseTimings, "check_post_coerce", func() error {
		return infer.Check(m, env)
	}); err != nil {
		return result, fmt.Errorf("post-coercion check: %w", err)
	}

	if cfg.Mode == ModeCheck {
		return result, nil
	}
	if err := checkCancelled(ctx); err != nil {
		return result, err
	}

	if err := phase(result.PhaseTimings, "desugar", func() error {
		desugared, err := desugar.Module(m, env, typeConfig)
		if err != nil {
			return err
		}
		m = desugared
		result.Artifacts.Desugared = m
		return nil
	}); err != nil {
		return result, fmt.Errorf("desugar phase: %w", err)
	}
	if err := checkCancelled(ctx); err != nil {
		return result, err
	}

	if err := phase(result.PhaseTimings, "lower", func() error {
		lowered, err := lower.Module(m, env, typeConfig)
		if err != nil {
			return err
		}
		result.MIR = lowered
		return nil
	}); err != nil {
		return result, fmt.Errorf("lower phase: %w", err)
	}

	return result, nil
}

func phase(timings map[string]int64, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	timings[name] = time.Since(start).Milliseconds()
	return err
}

// checkCancelled is the "check() interface point between functions" spec
// §5 requires: if ctx carries a cancellation, the pipeline stops before
// starting the next phase rather than running it to completion and
// discarding the result.
func checkCancelled(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return errors.CancelledByDriver()
	default:
		return nil
	}
}
