// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package armrules

import "github.com/cpearce/arm-go/lib/armitem"

// GenerateNaive enumerates every (antecedent, consequent) partition of
// isItems by brute force (all 2^|isItems| subsets), keeping those with both
// sides non-empty that clear minConfidence and minLift. It exists purely
// to verify, by exhaustive comparison, that generateForItemset's
// level-wise expansion produces exactly the same rule set — it is never
// used on the mining hot path.
func GenerateNaive(isItems armitem.Itemset, table *SupportTable, minConfidence, minLift float64) []Rule {
	isSup, ok := table.Get(isItems)
	if !ok {
		return nil
	}

	n := len(isItems)
	var rules []Rule
	for mask := 1; mask < (1 << n); mask++ {
		if mask == (1<<n)-1 {
			// consequent would be all of isItems, leaving the antecedent
			// empty.
			continue
		}
		var consequent, antecedent armitem.Itemset
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				consequent = append(consequent, isItems[i])
			} else {
				antecedent = append(antecedent, isItems[i])
			}
		}

		confidence, ok := confidenceOf(isSup, antecedent, table)
		if !ok || confidence < minConfidence {
			continue
		}
		if rule, ok := makeRule(isSup, antecedent, consequent, confidence, minLift, table); ok {
			rules = append(rules, rule)
		}
	}
	return rules
}
