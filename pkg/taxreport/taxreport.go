package taxreport

import (
	"context"
	"fmt"
	"io"

	"github.com/crimson-sun/taxreport/internal/engine"
	"github.com/crimson-sun/taxreport/internal/engine/enrichment"
	"github.com/crimson-sun/taxreport/internal/output"
	"github.com/crimson-sun/taxreport/internal/output/htmlreport"
	"github.com/crimson-sun/taxreport/internal/output/ndjson"
	"github.com/crimson-sun/taxreport/internal/stream"
)

// Reporter builds taxonomy reports.
type Reporter struct {
	engine *engine.Engine
}

// New creates a Reporter.
func New(opts ...Option) *Reporter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	a := enrichment.New()
	a.Alpha = o.alpha
	a.Dominant = o.dominant
	a.NT90Min = o.nt90Min

	eng := engine.New(
		engine.WithTopN(o.topN),
		engine.WithClassifierVersion(o.classifierVersion),
		engine.WithDatabaseDate(o.databaseDate),
		engine.WithAnalyzer(a),
	)
	return &Reporter{engine: eng}
}

// Analyze reads a classification report and a taxonomy dump and returns
// the annotated report.
func (r *Reporter) Analyze(ctx context.Context, kreport, taxdump io.Reader) (*Report, error) {
	rep, err := r.engine.Analyze(ctx, kreport, taxdump)
	if err != nil {
		return nil, fmt.Errorf("taxreport: %w", err)
	}
	return reportFromModel(rep), nil
}

// AnalyzeFiles is Analyze on files. Compressed files are detected from
// their content and "-" reads stdin.
func (r *Reporter) AnalyzeFiles(ctx context.Context, kreportPath, taxdumpPath string) (*Report, error) {
	taxdump, err := stream.Open(taxdumpPath)
	if err != nil {
		return nil, fmt.Errorf("taxreport: %w", err)
	}
	defer taxdump.Close()

	kreport, err := stream.Open(kreportPath)
	if err != nil {
		return nil, fmt.Errorf("taxreport: %w", err)
	}
	defer kreport.Close()

	return r.Analyze(ctx, kreport, taxdump)
}

// WriteHTML renders the report as an HTML fragment.
func (rep *Report) WriteHTML(w io.Writer) error {
	return rep.write(htmlreport.New(nopCloser{w}))
}

// WriteNDJSON writes the report as newline-delimited JSON records.
func (rep *Report) WriteNDJSON(w io.Writer) error {
	return rep.write(ndjson.New(nopCloser{w}))
}

func (rep *Report) write(out output.Output) error {
	if rep.rep == nil {
		return fmt.Errorf("taxreport: report was not produced by a Reporter")
	}
	if err := out.Write(context.Background(), rep.rep); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
