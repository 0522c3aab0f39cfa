package search

import "github.com/efyj-go/efyj/walker"

// StepResult is one step's outcome: modifiers, kappa, wall-clock time,
// and the evaluation counters used to judge search cost.
type StepResult struct {
	K                   int           `json:"k"`
	Modifiers           []walker.Edit `json:"modifiers"`
	Kappa               float64       `json:"kappa"`
	TimeSeconds         float64       `json:"time_seconds"`
	KappaEvaluations    int           `json:"kappa_evaluations"`
	FunctionEvaluations int           `json:"function_evaluations"`
}

// Options configures a search run.
type Options struct {
	// LineLimit bounds k: 0 evaluates the unmodified model only; a
	// positive value searches up to k=LineLimit; a negative value
	// searches unbounded, up to the walker's full position count.
	LineLimit int

	// ReduceMode prunes the walker's position set to rows actually
	// touched by some option, shrinking the search space.
	ReduceMode bool

	// Progress is called after every emitted step, including the k=0
	// baseline. Returning false cancels the search (the caller's
	// callback declining continuation maps to a Cancelled error). Nil
	// means no callback.
	Progress func(StepResult) bool

	// LogDir, when non-empty, makes AdjustmentParallel/PredictionParallel
	// give each worker goroutine its own logger sink at
	// efyjlog.WorkerPath(LogDir, workerID), where it logs a start and a
	// finish line for every k step it works on. Empty means
	// workers log nothing. Ignored by the sequential Adjustment/
	// Prediction entry points, which have only one goroutine to log from.
	LogDir string
}

func report(opts Options, step StepResult) bool {
	if opts.Progress == nil {
		return true
	}

	return opts.Progress(step)
}
