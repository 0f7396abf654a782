// Package enrichment tests whether a taxon holds a larger share of its
// parent's reads than its share of the parent's reference sequences.
package enrichment

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/crimson-sun/taxreport/internal/model"
)

// Defaults used by New.
const (
	DefaultAlpha    = 0.05
	DefaultDominant = 0.9
	DefaultNT90Min  = 5

	maxZ = 100
)

// Result holds the outcome of one enrichment test.
type Result struct {
	Verdict  model.Verdict
	PValue   float64
	Z        float64
	Expected float64 // share of the parent's reference sequences
	Observed float64 // share of the parent's reads
}

// Analyzer evaluates one-sided z-tests of read share against reference share.
type Analyzer struct {
	// Alpha is the largest p-value reported as enriched.
	Alpha float64
	// Dominant is the observed share at or above which a taxon is enriched
	// regardless of its p-value.
	Dominant float64
	// NT90Min is the nt90 value below which a taxon is flagged.
	NT90Min int64
}

// New creates an Analyzer with the default thresholds.
func New() *Analyzer {
	return &Analyzer{
		Alpha:    DefaultAlpha,
		Dominant: DefaultDominant,
		NT90Min:  DefaultNT90Min,
	}
}

// Evaluate tests n against its parent. Under the null hypothesis the
// taxon's read share equals its reference share; the p-value is the upper
// tail of the standard normal above z. Taxa whose parent carries no
// statistics (the tree root, empty parents) are not measured.
func (a *Analyzer) Evaluate(n *model.Node) Result {
	p := n.Parent
	if p == nil || p.ReadCount <= 0 || p.NTTotal <= 0 {
		return Result{Verdict: model.NotMeasured}
	}

	expected := clamp01(float64(n.NTTotal) / float64(p.NTTotal))
	observed := clamp01(float64(n.ReadCount) / float64(p.ReadCount))
	se := math.Sqrt(expected * (1 - expected) / float64(p.ReadCount))

	z := float64(maxZ)
	if se > 0 {
		z = math.Max(-maxZ, math.Min(maxZ, (observed-expected)/se))
	}
	pv := distuv.UnitNormal.Survival(z)

	v := model.NotEnriched
	if pv <= a.Alpha || observed >= a.Dominant {
		v = model.Enriched
	}
	return Result{
		Verdict:  v,
		PValue:   pv,
		Z:        z,
		Expected: expected,
		Observed: observed,
	}
}

// NT90 flags taxa whose reads come from fewer than NT90Min reference sequences.
func (a *Analyzer) NT90(nt90 int64) model.NT90Flag {
	if nt90 < a.NT90Min {
		return model.NT90Warning
	}
	return model.NT90OK
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
