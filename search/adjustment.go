package search

import (
	"context"
	"math"
	"time"

	"github.com/efyj-go/efyj/eval"
	"github.com/efyj-go/efyj/kappa"
	"github.com/efyj-go/efyj/model"
	"github.com/efyj-go/efyj/options"
	"github.com/efyj-go/efyj/status"
	"github.com/efyj-go/efyj/walker"
)

const opAdjustment = "search.Adjustment"

// Adjustment scores the unmodified model (k=0),
// then for k = 1, 2, ... up to opts.LineLimit (or the full position
// count, if unbounded), search for the edit tuple maximizing squared
// weighted kappa on ds. Tie-break: strictly greater kappa replaces the
// incumbent; ties keep the first found, per the walker's fixed
// enumeration order.
func Adjustment(ctx context.Context, m *model.Model, ds *options.Dataset, opts Options) ([]StepResult, error) {
	if err := ds.Validate(m); err != nil {
		return nil, status.Wrap(status.OptionsInconsistent, opAdjustment, err)
	}

	calc, err := kappa.NewCalculator(m.RootScaleSize())
	if err != nil {
		return nil, status.Wrap(status.InternalError, opAdjustment, err)
	}
	prog := eval.Compile(m)

	start := time.Now()
	baseTables := m.Tables()
	sim := evalDataset(prog, baseTables, ds)
	k0, err := calc.Squared(ds.Observed, sim)
	if err != nil {
		return nil, status.Wrap(status.SolverError, opAdjustment, err)
	}

	results := []StepResult{{
		K: 0, Kappa: k0, TimeSeconds: time.Since(start).Seconds(),
		KappaEvaluations: 1, FunctionEvaluations: ds.N,
	}}
	if !report(opts, results[0]) {
		return results, status.Wrap(status.Cancelled, opAdjustment, context.Canceled)
	}
	if opts.LineLimit == 0 {
		return results, nil
	}

	w := walker.New(m)
	if opts.ReduceMode {
		touched := touchedPositions(m, ds)
		w.Reduce(func(a, r int) bool { return touched[[2]int{a, r}] })
	}

	maxK := len(w.Positions())
	if opts.LineLimit > 0 && opts.LineLimit < maxK {
		maxK = opts.LineLimit
	}

	for k := 1; k <= maxK; k++ {
		if err := ctxErr(ctx); err != nil {
			return results, status.Wrap(status.Cancelled, opAdjustment, err)
		}
		step, err := adjustmentStep(ctx, w, prog, ds, calc, k)
		if err != nil {
			return results, err
		}
		results = append(results, step)
		if !report(opts, step) {
			return results, status.Wrap(status.Cancelled, opAdjustment, context.Canceled)
		}
	}

	return results, nil
}

func adjustmentStep(
	ctx context.Context, w *walker.Walker, prog *eval.Program, ds *options.Dataset, calc *kappa.Calculator, k int,
) (StepResult, error) {
	stepStart := time.Now()
	if err := w.InitWalkers(k); err != nil {
		return StepResult{}, status.Wrap(status.InternalError, opAdjustment, err)
	}

	bestKappa := math.Inf(-1)
	var bestEdits []walker.Edit
	kappaEvals, funcEvals := 0, 0

	for {
		if err := ctxErr(ctx); err != nil {
			return StepResult{}, status.Wrap(status.Cancelled, opAdjustment, err)
		}
		w.InitNextValue()
		for {
			if err := w.Apply(); err != nil {
				return StepResult{}, status.Wrap(status.InternalError, opAdjustment, err)
			}
			sim := evalDataset(prog, w.Working(), ds)
			funcEvals += ds.N
			kp, err := calc.Squared(ds.Observed, sim)
			kappaEvals++
			if err != nil {
				return StepResult{}, status.Wrap(status.SolverError, opAdjustment, err)
			}
			if kp > bestKappa {
				bestKappa = kp
				edits, _ := w.Updaters()
				bestEdits = append([]walker.Edit(nil), edits...)
			}
			if err := w.Restore(); err != nil {
				return StepResult{}, status.Wrap(status.InternalError, opAdjustment, err)
			}
			if !w.NextValue() {
				break
			}
		}
		if !w.NextLine() {
			break
		}
	}

	return StepResult{
		K: k, Modifiers: bestEdits, Kappa: bestKappa,
		TimeSeconds: time.Since(stepStart).Seconds(),
		KappaEvaluations: kappaEvals, FunctionEvaluations: funcEvals,
	}, nil
}

func ctxErr(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
