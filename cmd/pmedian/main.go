// Command pmedian picks p facilities out of a CSV instance with the drop
// heuristic, the exact pseudo-boolean model, or both.
//
//	pmedian -data location.csv -p 2 -algo both -lp location.lp
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/katalvlaran/pmedian/costmodel"
	"github.com/katalvlaran/pmedian/dataset"
	"github.com/katalvlaran/pmedian/mip/pbsolver"
	"github.com/katalvlaran/pmedian/pmedian"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "pmedian: %v\n", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

// config mirrors the command-line flags.
type config struct {
	data    string
	p       int
	algo    string
	lp      string
	workers int
	nodes   int
	verbose bool
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("pmedian", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.data, "data", "location.csv", "CSV instance: label,facility...,Demand")
	fs.IntVar(&cfg.p, "p", 1, "number of facilities to open")
	fs.StringVar(&cfg.algo, "algo", "greedy", "greedy | exact | both")
	fs.StringVar(&cfg.lp, "lp", "", "also write the exact model in LP format to this file")
	fs.IntVar(&cfg.workers, "workers", 1, "goroutines used to score greedy removals")
	fs.IntVar(&cfg.nodes, "max-nodes", pbsolver.DefaultMaxNodes, "decision-diagram budget per row before the exact engine switches to adders")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging and engine statistics")
	if err := fs.Parse(args); err != nil {
		return cfg, errors.Wrap(errUsage, err.Error())
	}
	if fs.NArg() != 0 {
		return cfg, errors.Wrapf(errUsage, "unexpected arguments %v", fs.Args())
	}
	switch cfg.algo {
	case "greedy", "exact", "both":
	default:
		return cfg, errors.Wrapf(errUsage, "-algo %q: want greedy, exact or both", cfg.algo)
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cm, err := dataset.Load(cfg.data)
	if err != nil {
		return err
	}
	logger.Info("instance loaded", "path", cfg.data, "customers", cm.Customers(), "facilities", cm.Facilities())

	if cfg.lp != "" {
		if err = exportLP(cm, cfg.p, cfg.lp); err != nil {
			return err
		}
		logger.Info("model written", "path", cfg.lp)
	}

	opts := pmedian.DefaultOptions()
	opts.Greedy = pmedian.GreedyOptions{Workers: cfg.workers, Logger: logger}
	opts.Solver = pbsolver.New(pbsolver.Options{MaxNodes: cfg.nodes, Verbose: cfg.verbose})

	switch cfg.algo {
	case "greedy":
		opts.Algo = pmedian.Greedy
		return solveOne(stdout, cm, cfg.p, opts)
	case "exact":
		opts.Algo = pmedian.Exact
		return solveOne(stdout, cm, cfg.p, opts)
	}

	cmp, err := pmedian.Compare(cm, cfg.p, opts.Solver, opts)
	if err != nil {
		return err
	}
	if err = cmp.Greedy.WriteReport(stdout, cm); err != nil {
		return err
	}
	fmt.Fprintln(stdout)
	if cmp.Exact == nil {
		fmt.Fprintln(stdout, "exact: no solution")
		return nil
	}
	if err = cmp.Exact.WriteReport(stdout, cm); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\ngap: %g\n", cmp.Gap)
	return nil
}

func solveOne(w io.Writer, cm *costmodel.CostModel, p int, opts pmedian.Options) error {
	res, err := pmedian.Solve(cm, p, opts)
	if err != nil {
		return err
	}
	if res == nil {
		fmt.Fprintf(w, "%s: no solution\n", opts.Algo)
		return nil
	}
	return res.WriteReport(w, cm)
}

func exportLP(cm *costmodel.CostModel, p int, path string) error {
	model, err := pmedian.Formulate(cm, p)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err = model.WriteLP(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
