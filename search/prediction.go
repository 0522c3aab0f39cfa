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

const opPrediction = "search.Prediction"

// Prediction runs the same k-loop as Adjustment, but
// each candidate edit tuple is scored per distinct learning subset
// (cached by ReducedID) rather than on the whole dataset — each option
// is "predicted" using the tuple that best fits its own subset, and the
// step's kappa is computed over the gathered predictions.
//
// Reported Modifiers for a step are the union of the distinct per-subset
// winning edit tuples for the line that produced the step's kappa (a
// single outer line can train several different tuples, one per
// distinct subset shape).
func Prediction(ctx context.Context, m *model.Model, ds *options.Dataset, opts Options) ([]StepResult, error) {
	if err := ds.Validate(m); err != nil {
		return nil, status.Wrap(status.OptionsInconsistent, opPrediction, err)
	}
	if ds.Subset == nil {
		ds.DeriveSubsets()
	}
	for i := range ds.Subset {
		if len(ds.Subset[i]) == 0 {
			return nil, status.Wrap(status.SolverError, opPrediction, errUnableToTrain(i))
		}
	}

	calc, err := kappa.NewCalculator(m.RootScaleSize())
	if err != nil {
		return nil, status.Wrap(status.InternalError, opPrediction, err)
	}
	prog := eval.Compile(m)

	start := time.Now()
	baseTables := m.Tables()
	sim := evalDataset(prog, baseTables, ds)
	k0, err := calc.Squared(ds.Observed, sim)
	if err != nil {
		return nil, status.Wrap(status.SolverError, opPrediction, err)
	}
	results := []StepResult{{
		K: 0, Kappa: k0, TimeSeconds: time.Since(start).Seconds(),
		KappaEvaluations: 1, FunctionEvaluations: ds.N,
	}}
	if !report(opts, results[0]) {
		return results, status.Wrap(status.Cancelled, opPrediction, context.Canceled)
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
			return results, status.Wrap(status.Cancelled, opPrediction, err)
		}
		step, err := predictionStep(ctx, w, prog, ds, calc, k)
		if err != nil {
			return results, err
		}
		results = append(results, step)
		if !report(opts, step) {
			return results, status.Wrap(status.Cancelled, opPrediction, context.Canceled)
		}
	}

	return results, nil
}

func predictionStep(
	ctx context.Context, w *walker.Walker, prog *eval.Program, ds *options.Dataset, calc *kappa.Calculator, k int,
) (StepResult, error) {
	stepStart := time.Now()
	if err := w.InitWalkers(k); err != nil {
		return StepResult{}, status.Wrap(status.InternalError, opPrediction, err)
	}

	bestLineKappa := math.Inf(-1)
	var bestLineEdits []walker.Edit
	kappaEvals, funcEvals := 0, 0

	for {
		if err := ctxErr(ctx); err != nil {
			return StepResult{}, status.Wrap(status.Cancelled, opPrediction, err)
		}

		bestPerSubset := make(map[int]struct {
			kappa float64
			edits []walker.Edit
		})

		w.InitNextValue()
		for {
			edits, err := w.Updaters()
			if err != nil {
				return StepResult{}, status.Wrap(status.InternalError, opPrediction, err)
			}
			if err := w.Apply(); err != nil {
				return StepResult{}, status.Wrap(status.InternalError, opPrediction, err)
			}

			for _, reducedID := range distinctReducedIDs(ds) {
				rep := firstWithReducedID(ds, reducedID)
				subset := ds.Subset[rep]
				obsSub := make([]int8, len(subset))
				simSub := make([]int8, len(subset))
				for i, row := range subset {
					obsSub[i] = ds.Observed[row]
					simSub[i] = prog.Run(w.Working(), ds.Row(row))
				}
				funcEvals += len(subset)
				kp, err := calc.Squared(obsSub, simSub)
				kappaEvals++
				if err != nil {
					return StepResult{}, status.Wrap(status.SolverError, opPrediction, err)
				}
				cur := bestPerSubset[reducedID]
				if kp > cur.kappa || cur.edits == nil {
					bestPerSubset[reducedID] = struct {
						kappa float64
						edits []walker.Edit
					}{kappa: kp, edits: append([]walker.Edit(nil), edits...)}
				}
			}

			if err := w.Restore(); err != nil {
				return StepResult{}, status.Wrap(status.InternalError, opPrediction, err)
			}
			if !w.NextValue() {
				break
			}
		}

		predictions := make([]int8, ds.N)
		tables := w.Working()
		for i := 0; i < ds.N; i++ {
			best := bestPerSubset[ds.ReducedID[i]]
			applied := applyEdits(tables, best.edits)
			predictions[i] = prog.Run(tables, ds.Row(i))
			restoreEdits(tables, applied)
		}
		funcEvals += ds.N
		lineKappa, err := calc.Squared(ds.Observed, predictions)
		kappaEvals++
		if err != nil {
			return StepResult{}, status.Wrap(status.SolverError, opPrediction, err)
		}
		if lineKappa > bestLineKappa {
			bestLineKappa = lineKappa
			bestLineEdits = unionEdits(bestPerSubset)
		}

		if !w.NextLine() {
			break
		}
	}

	return StepResult{
		K: k, Modifiers: bestLineEdits, Kappa: bestLineKappa,
		TimeSeconds: time.Since(stepStart).Seconds(),
		KappaEvaluations: kappaEvals, FunctionEvaluations: funcEvals,
	}, nil
}

func distinctReducedIDs(ds *options.Dataset) []int {
	seen := make(map[int]bool)
	var out []int
	for _, id := range ds.ReducedID {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	return out
}

func firstWithReducedID(ds *options.Dataset, id int) int {
	for i, rid := range ds.ReducedID {
		if rid == id {
			return i
		}
	}

	return 0
}

func unionEdits(bestPerSubset map[int]struct {
	kappa float64
	edits []walker.Edit
}) []walker.Edit {
	seen := make(map[walker.Edit]bool)
	var out []walker.Edit
	for _, v := range bestPerSubset {
		for _, e := range v.edits {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}

	return out
}
