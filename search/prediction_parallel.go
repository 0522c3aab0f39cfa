package search

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/efyj-go/efyj/eval"
	"github.com/efyj-go/efyj/kappa"
	"github.com/efyj-go/efyj/model"
	"github.com/efyj-go/efyj/options"
	"github.com/efyj-go/efyj/status"
	"github.com/efyj-go/efyj/walker"
)

const opPredictionParallel = "search.PredictionParallel"

// PredictionParallel is Prediction's parallel counterpart, and
// AdjustmentParallel's for leave-subset-out prediction: same stride partition of the outer line
// enumeration as AdjustmentParallel, each worker running the full
// per-subset training/predicting inner logic of predictionStep for its
// share of lines.
func PredictionParallel(ctx context.Context, m *model.Model, ds *options.Dataset, opts Options, threads int) ([]StepResult, error) {
	if threads <= 1 {
		return Prediction(ctx, m, ds, opts)
	}
	if err := ds.Validate(m); err != nil {
		return nil, status.Wrap(status.OptionsInconsistent, opPredictionParallel, err)
	}
	if ds.Subset == nil {
		ds.DeriveSubsets()
	}
	for i := range ds.Subset {
		if len(ds.Subset[i]) == 0 {
			return nil, status.Wrap(status.SolverError, opPredictionParallel, errUnableToTrain(i))
		}
	}

	calc0, err := kappa.NewCalculator(m.RootScaleSize())
	if err != nil {
		return nil, status.Wrap(status.InternalError, opPredictionParallel, err)
	}
	prog := eval.Compile(m)

	start := time.Now()
	sim := evalDataset(prog, m.Tables(), ds)
	k0, err := calc0.Squared(ds.Observed, sim)
	if err != nil {
		return nil, status.Wrap(status.SolverError, opPredictionParallel, err)
	}
	results := []StepResult{{
		K: 0, Kappa: k0, TimeSeconds: time.Since(start).Seconds(),
		KappaEvaluations: 1, FunctionEvaluations: ds.N,
	}}
	if !report(opts, results[0]) {
		return results, status.Wrap(status.Cancelled, opPredictionParallel, context.Canceled)
	}
	if opts.LineLimit == 0 {
		return results, nil
	}

	var touched map[[2]int]bool
	if opts.ReduceMode {
		touched = touchedPositions(m, ds)
	}
	probe := walker.New(m)
	if touched != nil {
		probe.Reduce(func(a, r int) bool { return touched[[2]int{a, r}] })
	}
	maxK := len(probe.Positions())
	if opts.LineLimit > 0 && opts.LineLimit < maxK {
		maxK = opts.LineLimit
	}

	for k := 1; k <= maxK; k++ {
		if err := ctxErr(ctx); err != nil {
			return results, status.Wrap(status.Cancelled, opPredictionParallel, err)
		}
		stepStart := time.Now()
		agg := newAggregator()

		g, gctx := errgroup.WithContext(ctx)
		for worker := 0; worker < threads; worker++ {
			worker := worker
			g.Go(func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = fmt.Errorf("worker %d: panic: %v", worker, r)
					}
				}()
				w := walker.New(m)
				if touched != nil {
					w.Reduce(func(a, r int) bool { return touched[[2]int{a, r}] })
				}
				calc, err := kappa.NewCalculator(m.RootScaleSize())
				if err != nil {
					return err
				}
				log, err := workerLogger(opts.LogDir, worker)
				if err != nil {
					return err
				}

				return predictionWorker(gctx, w, prog, ds, calc, k, worker, threads, agg, log)
			})
		}
		if err := g.Wait(); err != nil {
			if ctxErr(ctx) != nil {
				return results, status.Wrap(status.Cancelled, opPredictionParallel, err)
			}

			return results, status.Wrap(status.InternalError, opPredictionParallel, err)
		}

		step := StepResult{
			K: k, Modifiers: agg.bestEdits, Kappa: agg.bestKappa,
			TimeSeconds: time.Since(stepStart).Seconds(),
			KappaEvaluations: agg.kappaEvals, FunctionEvaluations: agg.funcEvals,
		}
		results = append(results, step)
		if !report(opts, step) {
			return results, status.Wrap(status.Cancelled, opPredictionParallel, context.Canceled)
		}
	}

	return results, nil
}

func predictionWorker(
	ctx context.Context, w *walker.Walker, prog *eval.Program, ds *options.Dataset,
	calc *kappa.Calculator, k, workerID, threads int, agg *resultAggregator, log *logrus.Logger,
) error {
	if err := w.InitWalkers(k); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"k": k, "worker": workerID, "threads": threads}).Info("worker started")

	bestLineKappa := math.Inf(-1)
	var bestLineEdits []walker.Edit
	kappaEvals, funcEvals := 0, 0
	reducedIDs := distinctReducedIDs(ds)

	lineIdx := 0
	for {
		if lineIdx%threads == workerID {
			if err := ctxErr(ctx); err != nil {
				return err
			}

			bestPerSubset := make(map[int]struct {
				kappa float64
				edits []walker.Edit
			})

			w.InitNextValue()
			for {
				edits, err := w.Updaters()
				if err != nil {
					return err
				}
				if err := w.Apply(); err != nil {
					return err
				}
				for _, reducedID := range reducedIDs {
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
						return err
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
					return err
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
				return err
			}
			if lineKappa > bestLineKappa {
				bestLineKappa = lineKappa
				bestLineEdits = unionEdits(bestPerSubset)
			}
		}

		lineIdx++
		if !w.NextLine() {
			break
		}
	}

	log.WithFields(logrus.Fields{"k": k, "worker": workerID, "best_kappa": bestLineKappa, "kappa_evals": kappaEvals}).Info("worker finished")
	agg.merge(bestLineKappa, bestLineEdits, kappaEvals, funcEvals)

	return nil
}
