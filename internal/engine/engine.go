package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/crimson-sun/taxreport/internal/engine/cutoff"
	"github.com/crimson-sun/taxreport/internal/engine/enrichment"
	"github.com/crimson-sun/taxreport/internal/engine/render"
	"github.com/crimson-sun/taxreport/internal/engine/taxonomy"
	"github.com/crimson-sun/taxreport/internal/engine/tree"
	"github.com/crimson-sun/taxreport/internal/model"
)

// Engine orchestrates the taxonomy → tree → cutoff → render steps.
type Engine struct {
	analyzer *enrichment.Analyzer
	opts     options
}

// New creates an Engine. Without options it reports the top 20 taxa using
// the default enrichment thresholds.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	a := o.analyzer
	if a == nil {
		a = enrichment.New()
	}
	return &Engine{analyzer: a, opts: o}
}

// Analyze builds the canonical taxonomy from taxdump, attaches the rows of
// kreport and returns the rendered report. Both inputs are read to the end
// before anything is returned.
func (e *Engine) Analyze(ctx context.Context, kreport, taxdump io.Reader) (*model.Report, error) {
	idx, err := taxonomy.Build(taxdump)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := tree.Build(kreport, idx)
	if err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cut := cutoff.Find(t.Counts, e.opts.topN)
	render.Reorder(t.Root)
	rows := render.Walk(t.Root, cut, e.analyzer)

	slog.Debug("analysis complete",
		"canonical_taxa", idx.Len(),
		"nodes", t.Len(),
		"rows", len(rows),
		"cutoff", cut,
	)

	return &model.Report{
		Unclassified:      t.Unclassified,
		Rows:              rows,
		TopN:              e.opts.topN,
		Cutoff:            cut,
		TotalNtSeqs:       idx.TotalSeqs,
		TotalNtLength:     idx.TotalLength,
		ClassifierVersion: e.opts.classifierVersion,
		DatabaseDate:      e.opts.databaseDate,
	}, nil
}
