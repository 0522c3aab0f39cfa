// Package cmd builds the efyj root command: a single flat command
// with no subcommands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/efyj-go/efyj/efyjlog"
	"github.com/efyj-go/efyj/options"
	"github.com/efyj-go/efyj/repository"
	"github.com/efyj-go/efyj/search"
	"github.com/efyj-go/efyj/status"
)

type flags struct {
	modelPath   string
	optionsPath string
	adjustK     int
	predict     bool
	threads     int
	noReduce    bool
	extractPath string
	dumpPath    string
	logDir      string
}

// Execute parses args and runs the efyj command, writing normal output
// to out and diagnostics to errOut. It returns the process exit code:
// 0 on success, 1 on any status.Error.
func Execute(args []string, out, errOut io.Writer) int {
	var f flags
	root := newRootCmd(&f, out)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(errOut, err)

		return 1
	}

	return 0
}

func newRootCmd(f *flags, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "efyj",
		Short:         "Evaluate, adjust, or predict against a DEXi-like hierarchical model",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f, out)
		},
	}

	root.Flags().StringVarP(&f.modelPath, "model", "m", "", "model file path")
	root.Flags().StringVarP(&f.optionsPath, "options", "o", "", "options CSV path")
	root.Flags().IntVarP(&f.adjustK, "adjust", "a", 0, "adjustment: 0 evaluate only, >0 search up to k, <0 unbounded")
	root.Flags().BoolVarP(&f.predict, "predict", "p", false, "run leave-subset-out prediction instead of adjustment")
	root.Flags().IntVarP(&f.threads, "threads", "j", 0, "thread count; omitted means sequential")
	root.Flags().BoolVarP(&f.noReduce, "no-reduce", "r", false, "disable reduce mode")
	root.Flags().StringVarP(&f.extractPath, "extract", "e", "", "write the evaluation of the model's extracted option template to PATH as JSON")
	root.Flags().StringVarP(&f.dumpPath, "dump", "g", "", "write every search step's result to PATH as JSON")
	root.Flags().StringVarP(&f.logDir, "log-dir", "l", "", "directory for per-worker log files (threaded runs only)")

	// "-j" alone means 1 thread (sequential in-process); omitted
	// entirely leaves f.threads at its zero value.
	root.Flags().Lookup("threads").NoOptDefVal = "1"

	return root
}

func run(ctx context.Context, f *flags, out io.Writer) error {
	const op = "cmd.efyj"

	if f.modelPath == "" {
		return status.Wrap(status.FileError, op, fmt.Errorf("missing required -m model path"))
	}

	log, err := efyjlog.New(efyjlog.Config{Sink: efyjlog.Null, Level: logrus.InfoLevel})
	if err != nil {
		return status.Wrap(status.InternalError, op, err)
	}
	log.SetOutput(out) // Null sink above just avoids opening a real file; write to the caller's stream.

	repo := repository.New(log)
	m, err := repo.LoadModel(f.modelPath)
	if err != nil {
		return err
	}

	var ds *options.Dataset
	if f.optionsPath != "" {
		ds, err = repo.LoadOptions(f.optionsPath, m)
		if err != nil {
			return err
		}
	}

	if f.extractPath != "" {
		tmpl, err := repo.ExtractOptions(m)
		if err != nil {
			return err
		}
		result, err := repo.Evaluate(m, tmpl)
		if err != nil {
			return err
		}
		if err := writeJSON(f.extractPath, result); err != nil {
			return status.Wrap(status.FileError, op, err)
		}
	}

	if ds == nil {
		fmt.Fprintln(out, "no options file given; nothing to evaluate")

		return nil
	}

	opts := search.Options{LineLimit: f.adjustK, ReduceMode: !f.noReduce, LogDir: f.logDir}

	var results []search.StepResult
	if f.predict {
		results, err = repo.Prediction(ctx, m, ds, opts, f.threads)
	} else {
		results, err = repo.Adjustment(ctx, m, ds, opts, f.threads)
	}
	if err != nil {
		return err
	}

	if f.dumpPath != "" {
		if err := writeJSON(f.dumpPath, results); err != nil {
			return status.Wrap(status.FileError, op, err)
		}
	}

	for _, r := range results {
		fmt.Fprintf(out, "k=%d kappa=%.4f modifiers=%d evaluations=%d\n",
			r.K, r.Kappa, len(r.Modifiers), r.KappaEvaluations)
	}

	return nil
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
