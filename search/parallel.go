package search

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/efyj-go/efyj/efyjlog"
	"github.com/efyj-go/efyj/eval"
	"github.com/efyj-go/efyj/kappa"
	"github.com/efyj-go/efyj/model"
	"github.com/efyj-go/efyj/options"
	"github.com/efyj-go/efyj/status"
	"github.com/efyj-go/efyj/walker"
)

const opAdjustmentParallel = "search.AdjustmentParallel"

// resultAggregator merges per-worker bests under a mutex, so concurrent
// workers can share a single running best without racing.
type resultAggregator struct {
	mu                  sync.Mutex
	bestKappa           float64
	bestEdits           []walker.Edit
	kappaEvals, funcEvals int
}

func newAggregator() *resultAggregator {
	return &resultAggregator{bestKappa: math.Inf(-1)}
}

// workerLogger builds the per-worker logger named by opts.LogDir,
// efyjlog.WorkerPath(opts.LogDir, id). An empty LogDir gives every
// worker a discarding logger instead.
func workerLogger(logDir string, id int) (*logrus.Logger, error) {
	if logDir == "" {
		log := logrus.New()
		log.SetOutput(io.Discard)

		return log, nil
	}

	return efyjlog.New(efyjlog.Config{Sink: efyjlog.File, Path: efyjlog.WorkerPath(logDir, id), Level: logrus.InfoLevel})
}

func (r *resultAggregator) merge(kappaVal float64, edits []walker.Edit, kappaEvals, funcEvals int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kappaEvals += kappaEvals
	r.funcEvals += funcEvals
	if kappaVal > r.bestKappa {
		r.bestKappa = kappaVal
		r.bestEdits = edits
	}
}

// AdjustmentParallel partitions the outer line enumeration by stride
// across threads goroutines: each worker owns its own Walker over its
// own table clone and evaluates every threads-th line, merging into a
// shared resultAggregator. threads <= 1 behaves like a sequential run.
func AdjustmentParallel(ctx context.Context, m *model.Model, ds *options.Dataset, opts Options, threads int) ([]StepResult, error) {
	if threads <= 1 {
		return Adjustment(ctx, m, ds, opts)
	}
	if err := ds.Validate(m); err != nil {
		return nil, status.Wrap(status.OptionsInconsistent, opAdjustmentParallel, err)
	}

	calc0, err := kappa.NewCalculator(m.RootScaleSize())
	if err != nil {
		return nil, status.Wrap(status.InternalError, opAdjustmentParallel, err)
	}
	prog := eval.Compile(m)

	start := time.Now()
	sim := evalDataset(prog, m.Tables(), ds)
	k0, err := calc0.Squared(ds.Observed, sim)
	if err != nil {
		return nil, status.Wrap(status.SolverError, opAdjustmentParallel, err)
	}
	results := []StepResult{{
		K: 0, Kappa: k0, TimeSeconds: time.Since(start).Seconds(),
		KappaEvaluations: 1, FunctionEvaluations: ds.N,
	}}
	if !report(opts, results[0]) {
		return results, status.Wrap(status.Cancelled, opAdjustmentParallel, context.Canceled)
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
			return results, status.Wrap(status.Cancelled, opAdjustmentParallel, err)
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

				return adjustmentWorker(gctx, w, prog, ds, calc, k, worker, threads, agg, log)
			})
		}
		if err := g.Wait(); err != nil {
			if ctxErr(ctx) != nil {
				return results, status.Wrap(status.Cancelled, opAdjustmentParallel, err)
			}

			return results, status.Wrap(status.InternalError, opAdjustmentParallel, err)
		}

		step := StepResult{
			K: k, Modifiers: agg.bestEdits, Kappa: agg.bestKappa,
			TimeSeconds: time.Since(stepStart).Seconds(),
			KappaEvaluations: agg.kappaEvals, FunctionEvaluations: agg.funcEvals,
		}
		results = append(results, step)
		if !report(opts, step) {
			return results, status.Wrap(status.Cancelled, opAdjustmentParallel, context.Canceled)
		}
	}

	return results, nil
}

// adjustmentWorker walks w's full line enumeration but evaluates only
// every threads-th line, starting at offset workerID — a stride
// partition of the shared, deterministic enumeration order.
func adjustmentWorker(
	ctx context.Context, w *walker.Walker, prog *eval.Program, ds *options.Dataset,
	calc *kappa.Calculator, k, workerID, threads int, agg *resultAggregator, log *logrus.Logger,
) error {
	if err := w.InitWalkers(k); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"k": k, "worker": workerID, "threads": threads}).Info("worker started")

	bestKappa := math.Inf(-1)
	var bestEdits []walker.Edit
	kappaEvals, funcEvals := 0, 0

	lineIdx := 0
	for {
		if lineIdx%threads == workerID {
			if err := ctxErr(ctx); err != nil {
				return err
			}
			w.InitNextValue()
			for {
				if err := w.Apply(); err != nil {
					return err
				}
				sim := evalDataset(prog, w.Working(), ds)
				funcEvals += ds.N
				kp, err := calc.Squared(ds.Observed, sim)
				kappaEvals++
				if err != nil {
					return err
				}
				if kp > bestKappa {
					bestKappa = kp
					edits, _ := w.Updaters()
					bestEdits = append([]walker.Edit(nil), edits...)
				}
				if err := w.Restore(); err != nil {
					return err
				}
				if !w.NextValue() {
					break
				}
			}
		}
		lineIdx++
		if !w.NextLine() {
			break
		}
	}

	log.WithFields(logrus.Fields{"k": k, "worker": workerID, "best_kappa": bestKappa, "kappa_evals": kappaEvals}).Info("worker finished")
	agg.merge(bestKappa, bestEdits, kappaEvals, funcEvals)

	return nil
}
