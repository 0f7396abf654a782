// Package pipeline connects the input streams, the engine, and the report
// outputs for one run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/crimson-sun/taxreport/internal/model"
	"github.com/crimson-sun/taxreport/internal/output"
	"github.com/crimson-sun/taxreport/internal/stream"
)

// Analyzer builds a report from a classification report and a taxonomy dump.
type Analyzer interface {
	Analyze(ctx context.Context, kreport, taxdump io.Reader) (*model.Report, error)
}

// OpenFunc creates the report destination. It is called only after the
// analysis succeeded, so a failed run leaves no partial output behind.
type OpenFunc func() (output.Output, error)

// Paths names the input files of a run. "-" reads stdin.
type Paths struct {
	Report   string
	Taxonomy string
}

// Pipeline connects inputs, an analyzer, and an output.
type Pipeline struct {
	analyzer Analyzer
	open     OpenFunc
}

// New creates a Pipeline from the given components.
func New(a Analyzer, open OpenFunc) *Pipeline {
	return &Pipeline{analyzer: a, open: open}
}

// Run analyzes the inputs named by paths and writes the report. The
// returned report is nil when any step fails.
func (p *Pipeline) Run(ctx context.Context, paths Paths) (*model.Report, error) {
	if paths.Report == stream.Stdio && paths.Taxonomy == stream.Stdio {
		return nil, errors.New("pipeline: report and taxonomy cannot both be read from stdin")
	}

	taxdump, err := stream.Open(paths.Taxonomy)
	if err != nil {
		return nil, fmt.Errorf("pipeline taxonomy: %w", err)
	}
	defer taxdump.Close()

	kreport, err := stream.Open(paths.Report)
	if err != nil {
		return nil, fmt.Errorf("pipeline report: %w", err)
	}
	defer kreport.Close()

	rep, err := p.analyzer.Analyze(ctx, kreport, taxdump)
	if err != nil {
		return nil, fmt.Errorf("pipeline analyze: %w", err)
	}

	if err := p.write(ctx, rep); err != nil {
		return nil, err
	}
	slog.Info("report written", "rows", len(rep.Rows), "top_n", rep.TopN, "cutoff", rep.Cutoff)
	return rep, nil
}

func (p *Pipeline) write(ctx context.Context, rep *model.Report) error {
	out, err := p.open()
	if err != nil {
		return fmt.Errorf("pipeline output: %w", err)
	}
	if err := out.Write(ctx, rep); err != nil {
		return errors.Join(fmt.Errorf("pipeline output: %w", err), out.Close())
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("pipeline output close: %w", err)
	}
	return nil
}
