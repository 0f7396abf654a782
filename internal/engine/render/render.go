// Package render flattens a classification tree into report rows.
package render

import (
	"github.com/crimson-sun/taxreport/internal/engine/enrichment"
	"github.com/crimson-sun/taxreport/internal/model"
)

// Reorder moves the pseudo-taxa among root's children to the end of the
// list. Both the moved and the remaining children keep their relative order.
func Reorder(root *model.Node) {
	kept := make([]*model.Node, 0, len(root.Children))
	var moved []*model.Node
	for _, c := range root.Children {
		if model.IsPseudoTaxon(c.TaxonID) {
			moved = append(moved, c)
		} else {
			kept = append(kept, c)
		}
	}
	root.Children = append(kept, moved...)
}

// latch records which evaluations are still active on a branch. Fields only
// go from true to false on the way down.
type latch struct {
	enrichment bool
	nt90       bool
}

type frame struct {
	node  *model.Node
	depth int
	latch latch
}

// Walk visits the tree below root in pre-order and returns a row for every
// node with at least cutoff reads. Nodes under the cutoff are not emitted
// but their children are still visited. Once a node is not enriched, its
// descendants are not tested; the pseudo-taxa subtrees are never tested.
func Walk(root *model.Node, cutoff int64, a *enrichment.Analyzer) []model.Row {
	var rows []model.Row
	var stack []frame
	push := func(children []*model.Node, depth int, l latch) {
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: children[i], depth: depth, latch: l})
		}
	}

	push(root.Children, 0, latch{enrichment: true, nt90: true})
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n, l := f.node, f.latch
		if model.IsPseudoTaxon(n.TaxonID) {
			l = latch{}
		}

		row := model.Row{
			Depth:     f.depth,
			TaxonID:   n.TaxonID,
			Rank:      n.Rank,
			Name:      n.Name,
			Italic:    n.Italic,
			Score:     n.Score,
			ReadCount: n.ReadCount,
			NTTotal:   n.NTTotal,
			NT90:      n.NT90,
		}
		if l.enrichment {
			res := a.Evaluate(n)
			row.Enrichment = res.Verdict
			row.PValue = res.PValue
			row.Observed = res.Observed
			if res.Verdict == model.NotEnriched {
				l.enrichment = false
			}
		}
		if l.nt90 {
			row.NT90Flag = a.NT90(n.NT90)
		}

		if n.ReadCount >= cutoff {
			rows = append(rows, row)
		}
		push(n.Children, f.depth+1, l)
	}
	return rows
}
