package engine

import (
	"strings"

	"github.com/kohaut/promis/internal/logic"
	"github.com/kohaut/promis/internal/spatial"
)

// buildBatchProgram assembles the landscape rule, every mentioned relation's
// distributional clauses at each index in the batch, and one query per
// index, per spec §4.6/§4.7.
func buildBatchProgram(landscapeRule string, relations map[logic.RelationRef]*spatial.Relation, refs []logic.RelationRef, indexes []int) string {
	var b strings.Builder
	rule := strings.TrimSpace(landscapeRule)
	rule = strings.TrimSuffix(rule, ".")
	b.WriteString(rule)
	b.WriteString(".\n")

	for _, i := range indexes {
		for _, ref := range refs {
			b.WriteString(logic.EmitClause(relations[ref], i))
		}
	}
	for _, i := range indexes {
		b.WriteString(logic.EmitQuery(i))
	}
	return b.String()
}

// batchIndexes splits [0, n) into contiguous batches of at most size.
func batchIndexes(n, size int) [][]int {
	if size <= 0 {
		size = n
	}
	if size <= 0 {
		return nil
	}
	var batches [][]int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		idx := make([]int, end-start)
		for i := range idx {
			idx[i] = start + i
		}
		batches = append(batches, idx)
	}
	return batches
}
