// Package htmlreport writes a report as an HTML table fragment with an
// explanatory footer.
package htmlreport

import (
	"bufio"
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/crimson-sun/taxreport/internal/model"
	"github.com/crimson-sun/taxreport/internal/output"
)

// indentUnit is repeated twice per tree level in front of a taxon name.
const indentUnit = "&emsp;"

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"percent":     output.Percent,
	"enrichment":  output.EnrichmentMarker,
	"nt90":        output.NT90Marker,
	"taxon":       taxonCell,
	"grouped":     grouped,
	"gbp":         gbp,
	"enriched":    func() string { return output.MarkEnriched },
	"notEnriched": func() string { return output.MarkNotEnriched },
	"notMeasured": func() string { return output.MarkNotMeasured },
	"nt90Warning": func() string { return output.MarkNT90Warning },
}).Parse(reportTemplate))

var printer = message.NewPrinter(language.English)

// Output renders reports as HTML.
type Output struct {
	w  *bufio.Writer
	wc io.WriteCloser
}

// New creates an HTML output writing to wc. Close flushes and closes wc.
func New(wc io.WriteCloser) *Output {
	return &Output{w: bufio.NewWriter(wc), wc: wc}
}

// Write renders the full document for rep.
func (o *Output) Write(_ context.Context, rep *model.Report) error {
	if err := tmpl.Execute(o.w, rep); err != nil {
		return fmt.Errorf("html output: %w", err)
	}
	return nil
}

// Close flushes buffered output and closes the underlying writer.
func (o *Output) Close() error {
	if err := o.w.Flush(); err != nil {
		o.wc.Close()
		return fmt.Errorf("html output: flush: %w", err)
	}
	return o.wc.Close()
}

// taxonCell returns the indented, escaped taxon name.
func taxonCell(r model.Row) template.HTML {
	var b strings.Builder
	b.WriteString(strings.Repeat(indentUnit, 2*r.Depth))
	name := template.HTMLEscapeString(r.Name)
	if r.Italic {
		b.WriteString("<i>" + name + "</i>")
	} else {
		b.WriteString(name)
	}
	return template.HTML(b.String())
}

func grouped(n int64) string {
	return printer.Sprintf("%d", n)
}

func gbp(bp int64) string {
	return fmt.Sprintf("%.1f", float64(bp)/1e9)
}
