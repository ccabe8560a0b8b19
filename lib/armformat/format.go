// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package armformat renders a mined rule set to the dataset's output file
// format: a literal header line followed by one line per rule.
package armformat

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/cpearce/arm-go/lib/armitem"
	"github.com/cpearce/arm-go/lib/armrules"
)

const header = "Antecedent => Consequent,Confidence,Lift,Support"

// WriteRules writes rules to w in the dataset output format: the literal
// header line, then one `<antecedent> => <consequent>,confidence,lift,support`
// line per rule, antecedent/consequent items space-separated in
// ascending-ID order. Floating-point fields use Go's shortest
// round-tripping decimal representation, matching the reference's use of
// the platform default float formatting.
//
// Rules are written in ascending byte order of their output lines, so the
// lines after the header are sorted as strings and a rerun of the same
// mining input deterministically reproduces the same file byte for byte,
// even though FPGrowth/Generate themselves make no ordering guarantee.
func WriteRules(w io.Writer, itemizer *armitem.Itemizer, rules []armrules.Rule) error {
	sorted := make([]armrules.Rule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool {
		return lineKey(itemizer, sorted[i]) < lineKey(itemizer, sorted[j])
	})

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, header); err != nil {
		return err
	}
	for _, r := range sorted {
		if _, err := fmt.Fprintf(bw, "%s => %s,%s,%s,%s\n",
			joinItems(itemizer, r.Antecedent),
			joinItems(itemizer, r.Consequent),
			formatFloat(r.Confidence),
			formatFloat(r.Lift),
			formatFloat(r.Support),
		); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func joinItems(itemizer *armitem.Itemizer, items armitem.Itemset) string {
	strs := make([]string, len(items))
	for i, it := range items {
		strs[i] = itemizer.StrOf(it)
	}
	return strings.Join(strs, " ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// lineKey is a rule's output line up to and including the comma after the
// consequent; item strings hold no commas, so ordering by it orders the
// whole lines.
func lineKey(itemizer *armitem.Itemizer, r armrules.Rule) string {
	return joinItems(itemizer, r.Antecedent) + " => " + joinItems(itemizer, r.Consequent) + ","
}
