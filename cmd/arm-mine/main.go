// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Command arm-mine mines association rules from a transactional dataset:
// FP-Growth frequent-itemset mining followed by AprioriGen-style rule
// generation.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/cpearce/arm-go/lib/armdebug"
	"github.com/cpearce/arm-go/lib/armerr"
	"github.com/cpearce/arm-go/lib/armformat"
	"github.com/cpearce/arm-go/lib/armitem"
	"github.com/cpearce/arm-go/lib/armmine"
	"github.com/cpearce/arm-go/lib/armrules"
	"github.com/cpearce/arm-go/lib/armtree"
	"github.com/cpearce/arm-go/lib/armtxn"
	"github.com/cpearce/arm-go/lib/textui"
)

func main() {
	if len(os.Args) == 1 {
		cmd := newCommand()
		cmd.SetOutput(os.Stderr)
		_ = cmd.Usage()
		os.Exit(1)
	}

	if err := newCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		inputFlag         string
		outputFlag        string
		minSupportFlag    float64
		minConfidenceFlag float64
		minLiftFlag       float64
		debugJSONFlag     string
		cpuProfileFlag    bool
		logLevelFlag      = textui.LogLevelFlag{Level: dlog.LogLevelInfo}
	)

	cmd := &cobra.Command{
		Use:   "arm-mine --input FILE --output FILE --min-support F --min-confidence F [--min-lift F]",
		Short: "Mine association rules from a transactional dataset",

		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = dlog.WithLogger(ctx, textui.NewLogger(os.Stderr, logLevelFlag.Level))

			if cpuProfileFlag {
				defer profile.Start(profile.ProfilePath(".")).Stop()
			}

			params, err := validateArgs(cmd, inputFlag, outputFlag, minSupportFlag, minConfidenceFlag, minLiftFlag)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: error: %v\n", cmd.CommandPath(), err)
				return err
			}

			grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{
				EnableSignalHandling: true,
			})
			grp.Go("main", func(ctx context.Context) error {
				return run(ctx, params, debugJSONFlag)
			})
			if err := grp.Wait(); err != nil {
				var me *miningError
				if errors.As(err, &me) {
					fmt.Fprintf(os.Stdout, "error: %v\n", err)
				} else {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
				}
				return err
			}
			return nil
		},
	}
	cmd.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	cmd.SetHelpTemplate(cliutil.HelpTemplate)

	flags := cmd.Flags()
	flags.StringVar(&inputFlag, "input", "", "input dataset `file`, one transaction per line, items comma-separated")
	flags.StringVar(&outputFlag, "output", "", "`file` to write the mined rules to")
	flags.Float64Var(&minSupportFlag, "min-support", 0, "minimum itemset support `threshold`, in [0,1]")
	flags.Float64Var(&minConfidenceFlag, "min-confidence", 0, "minimum rule confidence `threshold`, in [0,1]")
	flags.Float64Var(&minLiftFlag, "min-lift", 0, "minimum rule lift `threshold`, in [1,∞)")
	flags.StringVar(&debugJSONFlag, "debug-json", "", "optional `file` to dump frequent itemsets and rules as JSON")
	flags.BoolVar(&cpuProfileFlag, "cpu-profile", false, "write a pprof CPU profile to the working directory")
	flags.Var(&logLevelFlag, "log-level", "set the logging verbosity")

	return cmd
}

type miningParams struct {
	input         string
	output        string
	minSupport    float64
	minConfidence float64
	minLift       float64
}

func validateArgs(cmd *cobra.Command, input, output string, minSupport, minConfidence, minLift float64) (miningParams, error) {
	if input == "" {
		return miningParams{}, &armerr.ArgumentError{Flag: "input", Err: fmt.Errorf("required")}
	}
	if output == "" {
		return miningParams{}, &armerr.ArgumentError{Flag: "output", Err: fmt.Errorf("required")}
	}
	if minSupport < 0 || minSupport > 1 {
		return miningParams{}, &armerr.ArgumentError{Flag: "min-support", Err: fmt.Errorf("must be in range [0,1]")}
	}
	if minConfidence < 0 || minConfidence > 1 {
		return miningParams{}, &armerr.ArgumentError{Flag: "min-confidence", Err: fmt.Errorf("must be in range [0,1]")}
	}
	if cmd.Flags().Changed("min-lift") && minLift < 1 {
		return miningParams{}, &armerr.ArgumentError{Flag: "min-lift", Err: fmt.Errorf("must be in range [1,∞)")}
	}
	return miningParams{
		input:         input,
		output:        output,
		minSupport:    minSupport,
		minConfidence: minConfidence,
		minLift:       minLift,
	}, nil
}

// miningError wraps a failure in the mining core itself (as opposed to
// flag validation or I/O) so the top-level handler can route it to stdout
// per the program's external-interface contract.
type miningError struct{ err error }

func (e *miningError) Error() string { return e.err.Error() }
func (e *miningError) Unwrap() error { return e.err }

func run(ctx context.Context, p miningParams, debugJSONPath string) error {
	start := time.Now()

	itemizer := armitem.NewItemizer()
	counter := armitem.NewItemCounter()

	// First pass: populate the Itemizer and count per-item frequencies.
	datasetSize, err := firstPass(ctx, p.input, itemizer, counter)
	if err != nil {
		return err
	}
	dlog.Infof(ctx, "read %d transactions over %d distinct items", datasetSize, itemizer.Len())

	// Reordering the Itemizer changes what ID each item string maps to, so
	// the transactions read above can't be reused for tree construction —
	// the dataset is re-read in a second pass through the now-reordered
	// Itemizer, which returns each known string's new ID.
	itemizer.Reorder(counter)

	minCount := uint32(p.minSupport * float64(datasetSize))

	tree, err := secondPass(ctx, p.input, itemizer, counter, minCount)
	if err != nil {
		return err
	}

	dlog.Infof(ctx, "built FP-tree, mining with min_count=%d", minCount)
	itemsets, err := armmine.FPGrowth(ctx, tree, minCount, nil, uint32(datasetSize))
	tree.Release()
	if err != nil {
		return &miningError{err: err}
	}
	dlog.Infof(ctx, "found %d frequent itemsets", len(itemsets))

	rules, err := armrules.Generate(ctx, itemsets, uint32(datasetSize), p.minConfidence, p.minLift)
	if err != nil {
		return &miningError{err: err}
	}
	dlog.Infof(ctx, "generated %d rules", len(rules))

	out, err := os.Create(p.output)
	if err != nil {
		return &armerr.OutputError{Err: err}
	}
	defer out.Close()
	if err := armformat.WriteRules(out, itemizer, rules); err != nil {
		return &armerr.OutputError{Err: err}
	}

	if debugJSONPath != "" {
		dbgFh, err := os.Create(debugJSONPath)
		if err != nil {
			return &armerr.OutputError{Err: err}
		}
		defer dbgFh.Close()
		dump := armdebug.BuildDump(itemizer, itemsets, rules)
		if err := armdebug.WriteJSON(dbgFh, dump); err != nil {
			return &armerr.OutputError{Err: err}
		}
	}

	dlog.Infof(ctx, "done: %d transactions, %d frequent itemsets, %d rules, in %s",
		datasetSize, len(itemsets), len(rules), time.Since(start))

	return nil
}

func firstPass(ctx context.Context, path string, itemizer *armitem.Itemizer, counter *armitem.ItemCounter) (int, error) {
	fh, err := os.Open(path)
	if err != nil {
		return 0, &armerr.InputError{Err: err}
	}

	src, err := armtxn.NewSource(ctx, fh, itemizer)
	if err != nil {
		fh.Close()
		return 0, err
	}
	defer src.Close()
	txns, err := armtxn.ReadAll(src, counter)
	if err != nil {
		return 0, err
	}
	return len(txns), nil
}

func secondPass(ctx context.Context, path string, itemizer *armitem.Itemizer, counter *armitem.ItemCounter, minCount uint32) (*armtree.FPTree, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, &armerr.InputError{Err: err}
	}

	src, err := armtxn.NewSource(ctx, fh, itemizer)
	if err != nil {
		fh.Close()
		return nil, err
	}
	defer src.Close()

	tree := armtree.New()
	for {
		txn, ok, err := src.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		frequent := make(armitem.Itemset, 0, len(txn))
		for _, item := range txn {
			if counter.Get(item) > minCount {
				frequent = append(frequent, item)
			}
		}
		counter.SortDescending(frequent)
		tree.Insert(frequent, 1)
	}
	return tree, nil
}
