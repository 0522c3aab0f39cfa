package repository

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/efyj-go/efyj/dexireader"
	"github.com/efyj-go/efyj/eval"
	"github.com/efyj-go/efyj/kappa"
	"github.com/efyj-go/efyj/model"
	"github.com/efyj-go/efyj/options"
	"github.com/efyj-go/efyj/search"
	"github.com/efyj-go/efyj/status"
)

// Repository is the public façade: Information, Evaluate, Adjustment,
// Prediction, ExtractOptions and MergeOptions, each translating
// internal errors into a *status.Error at the boundary.
type Repository struct {
	log *logrus.Logger
}

// New wraps log (see efyjlog.New) into a Repository. A nil log is
// replaced with a logger that discards everything, so callers that
// don't care about logging don't have to build one.
func New(log *logrus.Logger) *Repository {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	return &Repository{log: log}
}

// Information is the model's basic-attribute summary.
type Information struct {
	BasicAttributeNames      []string `json:"basic_attribute_names"`
	BasicAttributeScaleSizes []int    `json:"basic_attribute_scale_sizes"`
}

// Information loads the model at modelPath and reports its leaves.
func (r *Repository) Information(modelPath string) (Information, error) {
	const op = "repository.Information"

	m, err := r.loadModel(modelPath, op)
	if err != nil {
		return Information{}, err
	}

	leaves := m.Leaves()
	info := Information{
		BasicAttributeNames:      make([]string, len(leaves)),
		BasicAttributeScaleSizes: make([]int, len(leaves)),
	}
	for i, idx := range leaves {
		info.BasicAttributeNames[i] = m.Attributes[idx].Name
		info.BasicAttributeScaleSizes[i] = m.Attributes[idx].Scale.Size()
	}

	return info, nil
}

// EvaluationResult reports predicted classes, their confusion matrix
// against observed classes, and both weighted kappas.
type EvaluationResult struct {
	OptionsMatrix    [][]int8   `json:"options_matrix"`
	AttributesMatrix [][]string `json:"attributes_matrix"`
	Simulations      []int8     `json:"simulations"`
	Observations     []int8     `json:"observations"`
	Confusion        [][]int    `json:"confusion"`
	LinearKappa      float64    `json:"linear_kappa"`
	SquaredKappa     float64    `json:"squared_kappa"`
}

// Evaluate runs m's unmodified aggregation tables over ds and reports
// the predicted class per row, the confusion matrix, and both weighted
// kappas.
func (r *Repository) Evaluate(m *model.Model, ds *options.Dataset) (EvaluationResult, error) {
	const op = "repository.Evaluate"

	if err := ds.Validate(m); err != nil {
		return EvaluationResult{}, status.Wrap(status.OptionsInconsistent, op, err)
	}

	prog := eval.Compile(m)
	tables := m.Tables()
	sim := make([]int8, ds.N)
	for i := 0; i < ds.N; i++ {
		sim[i] = prog.Run(tables, ds.Row(i))
	}

	calc, err := kappa.NewCalculator(m.RootScaleSize())
	if err != nil {
		return EvaluationResult{}, status.Wrap(status.InternalError, op, err)
	}
	linear, err := calc.Linear(ds.Observed, sim)
	if err != nil {
		return EvaluationResult{}, status.Wrap(status.SolverError, op, err)
	}
	squared, err := calc.Squared(ds.Observed, sim)
	if err != nil {
		return EvaluationResult{}, status.Wrap(status.SolverError, op, err)
	}

	leaves := m.Leaves()
	optMatrix := make([][]int8, ds.N)
	attrMatrix := make([][]string, ds.N)
	for i := 0; i < ds.N; i++ {
		row := ds.Row(i)
		optMatrix[i] = append([]int8(nil), row...)
		names := make([]string, len(row))
		for j, attrIdx := range leaves {
			names[j] = m.Attributes[attrIdx].Scale.Values[row[j]]
		}
		attrMatrix[i] = names
	}

	return EvaluationResult{
		OptionsMatrix:    optMatrix,
		AttributesMatrix: attrMatrix,
		Simulations:      sim,
		Observations:     append([]int8(nil), ds.Observed...),
		Confusion:        confusionCounts(ds.Observed, sim, m.RootScaleSize()),
		LinearKappa:      linear,
		SquaredKappa:     squared,
	}, nil
}

func confusionCounts(obs, sim []int8, nc int) [][]int {
	out := make([][]int, nc)
	for i := range out {
		out[i] = make([]int, nc)
	}
	for i := range obs {
		out[obs[i]][sim[i]]++
	}

	return out
}

// Adjustment streams per-step search results over the dataset as a
// whole, delegating to search.Adjustment or its parallel variant when
// threads > 1.
func (r *Repository) Adjustment(
	ctx context.Context, m *model.Model, ds *options.Dataset, opts search.Options, threads int,
) ([]search.StepResult, error) {
	if threads > 1 {
		return search.AdjustmentParallel(ctx, m, ds, opts, threads)
	}

	return search.Adjustment(ctx, m, ds, opts)
}

// Prediction streams per-step leave-subset-out search results,
// delegating to search.Prediction or its parallel variant when
// threads > 1.
func (r *Repository) Prediction(
	ctx context.Context, m *model.Model, ds *options.Dataset, opts search.Options, threads int,
) ([]search.StepResult, error) {
	if threads > 1 {
		return search.PredictionParallel(ctx, m, ds, opts, threads)
	}

	return search.Prediction(ctx, m, ds, opts)
}

// ExtractOptions builds the dataset implied by m: one row per
// combination of leaf values (in leaf order, last leaf fastest-varying),
// observed set to the model's own output for that row, so that
// Evaluate(m, ExtractOptions(m)) always yields squared kappa 1.
func (r *Repository) ExtractOptions(m *model.Model) (*options.Dataset, error) {
	const op = "repository.ExtractOptions"

	leaves := m.Leaves()
	sizes := make([]int, len(leaves))
	total := 1
	for i, idx := range leaves {
		sizes[i] = m.Attributes[idx].Scale.Size()
		total *= sizes[i]
	}

	prog := eval.Compile(m)
	tables := m.Tables()

	ds := &options.Dataset{N: total, L: len(leaves)}
	ds.Values = make([]int8, 0, total*len(leaves))
	ds.Observed = make([]int8, total)
	ds.Simulation = make([]string, total)
	ds.Department = make([]int, total)
	ds.Year = make([]int, total)
	ds.Place = make([]*string, total)

	row := make([]int8, len(leaves))
	for i := 0; i < total; i++ {
		rem := i
		for j := len(leaves) - 1; j >= 0; j-- {
			row[j] = int8(rem % sizes[j])
			rem /= sizes[j]
		}
		ds.Values = append(ds.Values, row...)
		ds.Observed[i] = prog.Run(tables, row)
		ds.Simulation[i] = "template"
	}

	if err := ds.Validate(m); err != nil {
		return nil, status.Wrap(status.InternalError, op, err)
	}
	ds.DeriveSubsets()

	return ds, nil
}

// MergeOptions concatenates a and b's rows into one dataset over m and
// validates the result: no dedup, no provenance reconciliation beyond
// what DeriveSubsets already does.
func (r *Repository) MergeOptions(m *model.Model, a, b *options.Dataset) (*options.Dataset, error) {
	const op = "repository.MergeOptions"

	if a.L != b.L {
		return nil, status.Wrap(status.OptionsInconsistent, op, options.ErrLengthMismatch)
	}

	out := &options.Dataset{N: a.N + b.N, L: a.L}
	out.Values = append(append([]int8(nil), a.Values...), b.Values...)
	out.Observed = append(append([]int8(nil), a.Observed...), b.Observed...)
	out.Simulation = append(append([]string(nil), a.Simulation...), b.Simulation...)
	out.Department = append(append([]int(nil), a.Department...), b.Department...)
	out.Year = append(append([]int(nil), a.Year...), b.Year...)
	out.Place = append(append([]*string(nil), a.Place...), b.Place...)

	if err := out.Validate(m); err != nil {
		return nil, status.Wrap(status.OptionsInconsistent, op, err)
	}
	out.DeriveSubsets()

	return out, nil
}

func (r *Repository) loadModel(path, op string) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, status.Wrap(status.FileError, op, err)
	}
	defer f.Close()

	m, err := dexireader.Read(f)
	if err != nil {
		return nil, status.Wrap(status.ModelParseError, op, err)
	}

	return m, nil
}

// LoadModel opens and parses the model at path, wrapping failures as a
// status.Error (file_error or model_parse_error).
func (r *Repository) LoadModel(path string) (*model.Model, error) {
	return r.loadModel(path, "repository.LoadModel")
}

// LoadOptions opens and parses the options CSV at path against m,
// logging (not failing on) row-level warnings.
func (r *Repository) LoadOptions(path string, m *model.Model) (*options.Dataset, error) {
	const op = "repository.LoadOptions"

	f, err := os.Open(path)
	if err != nil {
		return nil, status.Wrap(status.FileError, op, err)
	}
	defer f.Close()

	ds, warnings, err := options.ReadCSV(f, m)
	if err != nil {
		return nil, status.Wrap(status.CSVParseError, op, err)
	}
	for _, w := range warnings {
		r.log.WithField("row", w.Row).Warn(w.Msg)
	}

	return ds, nil
}
