// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package armdebug implements the optional --debug-json diagnostic dump:
// a streaming JSON encode of the frequent-itemset and rule tables, for
// runs where a human wants to inspect the mining core's intermediate
// state without it being part of the program's functional contract.
package armdebug

import (
	"bufio"
	"io"

	"git.lukeshu.com/go/lowmemjson"

	"github.com/cpearce/arm-go/lib/armitem"
	"github.com/cpearce/arm-go/lib/armmine"
	"github.com/cpearce/arm-go/lib/armrules"
)

// Dump is the top-level shape written to the --debug-json file.
type Dump struct {
	FrequentItemsets []ItemsetDump `json:"frequent_itemsets"`
	Rules            []RuleDump    `json:"rules,omitempty"`
}

// ItemsetDump renders one frequent itemset with its items spelled out as
// strings (via the run's Itemizer) rather than bare integer IDs, so the
// dump is readable without cross-referencing anything else.
type ItemsetDump struct {
	Items []string `json:"items"`
	Count uint32   `json:"count"`
}

// RuleDump renders one association rule the same way.
type RuleDump struct {
	Antecedent []string `json:"antecedent"`
	Consequent []string `json:"consequent"`
	Confidence float64  `json:"confidence"`
	Lift       float64  `json:"lift"`
	Support    float64  `json:"support"`
}

// BuildDump translates mining results into their string-rendered JSON
// shape.
func BuildDump(itemizer *armitem.Itemizer, itemsets []armmine.ItemSet, rules []armrules.Rule) Dump {
	d := Dump{
		FrequentItemsets: make([]ItemsetDump, len(itemsets)),
		Rules:            make([]RuleDump, len(rules)),
	}
	for i, is := range itemsets {
		d.FrequentItemsets[i] = ItemsetDump{
			Items: renderItems(itemizer, is.Items),
			Count: is.Count,
		}
	}
	for i, r := range rules {
		d.Rules[i] = RuleDump{
			Antecedent: renderItems(itemizer, r.Antecedent),
			Consequent: renderItems(itemizer, r.Consequent),
			Confidence: r.Confidence,
			Lift:       r.Lift,
			Support:    r.Support,
		}
	}
	return d
}

func renderItems(itemizer *armitem.Itemizer, items armitem.Itemset) []string {
	strs := make([]string, len(items))
	for i, it := range items {
		strs[i] = itemizer.StrOf(it)
	}
	return strs
}

// WriteJSON streams dump to w using lowmemjson's low-memory re-encoder, so
// a dump large enough to matter is never buffered wholesale in memory
// before being written out — the same pattern the teacher uses for its
// own large structured dumps.
func WriteJSON(w io.Writer, dump Dump) (err error) {
	buffer := bufio.NewWriter(w)
	defer func() {
		if ferr := buffer.Flush(); err == nil && ferr != nil {
			err = ferr
		}
	}()
	cfg := lowmemjson.ReEncoderConfig{
		Indent:                "\t",
		ForceTrailingNewlines: true,
	}
	cfg.Out = buffer
	return lowmemjson.Encode(&cfg, dump)
}
