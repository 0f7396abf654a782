package htmlreport

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/taxreport/internal/model"
)

type bufCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufCloser) Close() error {
	b.closed = true
	return nil
}

func sampleReport() *model.Report {
	return &model.Report{
		Unclassified: model.Unclassified{Score: 1.5, NtSeqs: 5},
		Rows: []model.Row{
			{Depth: 0, TaxonID: "2", Rank: "D", Name: "Bacteria", Score: 80.25, NTTotal: 1200,
				Enrichment: model.NotMeasured, NT90Flag: model.NT90NotMeasured},
			{Depth: 1, TaxonID: "1224", Rank: "P", Name: "Proteobacteria", Score: 70,
				NTTotal: 300, Enrichment: model.Enriched, NT90Flag: model.NT90OK},
			{Depth: 3, TaxonID: "562", Rank: "S", Name: "Escherichia <coli>", Italic: true,
				Score: 12.346, NTTotal: 40, Enrichment: model.NotEnriched, NT90Flag: model.NT90Warning},
		},
		TopN:              20,
		Cutoff:            700,
		TotalNtSeqs:       51234567,
		TotalNtLength:     301234000000,
		ClassifierVersion: "1.0.4",
		DatabaseDate:      "2024-03-01",
	}
}

func render(t *testing.T, rep *model.Report) (string, *bufCloser) {
	t.Helper()
	buf := &bufCloser{}
	o := New(buf)
	require.NoError(t, o.Write(context.Background(), rep))
	require.NoError(t, o.Close())
	return buf.String(), buf
}

func TestWriteTable(t *testing.T) {
	out, buf := render(t, sampleReport())
	assert.True(t, buf.closed)

	assert.Contains(t, out, "<th align=\"left\">Taxon</th>")
	assert.Contains(t, out, "<td>unclassified</td>")
	assert.Contains(t, out, "1.50&emsp;")
	assert.Contains(t, out, "80.25&emsp;")
	assert.Contains(t, out, "12.35&emsp;")

	// one data row per report row plus the header and unclassified rows
	assert.Equal(t, len(sampleReport().Rows)+2, strings.Count(out, "<tr>"))
}

func TestWriteIndentAndItalics(t *testing.T) {
	out, _ := render(t, sampleReport())

	assert.Contains(t, out, "<td>Bacteria</td>")
	assert.Contains(t, out, "<td>&emsp;&emsp;Proteobacteria</td>")
	assert.Contains(t, out, "<td>"+strings.Repeat("&emsp;", 6)+"<i>Escherichia &lt;coli&gt;</i></td>")
}

func TestWriteMarkers(t *testing.T) {
	out, _ := render(t, sampleReport())

	assert.Contains(t, out, "<td align=\"center\">✓</td>")
	assert.Contains(t, out, "<td align=\"center\">✗</td>")
	assert.Contains(t, out, "<td align=\"center\">⚠</td>")
	assert.Contains(t, out, "<td align=\"center\"></td>")
	assert.Contains(t, out, "<td align=\"center\">—</td>")
}

func TestWriteFooter(t *testing.T) {
	out, _ := render(t, sampleReport())

	assert.Contains(t, out, "Top 20 taxa")
	assert.Contains(t, out, "(version 1.0.4)")
	assert.Contains(t, out, "51,234,567 sequences")
	assert.Contains(t, out, "301.2Gbp")
	assert.Contains(t, out, "(downloaded 2024-03-01)")
	assert.Contains(t, out, "Caveats")
}

func TestWriteFooterWithoutMetadata(t *testing.T) {
	rep := sampleReport()
	rep.ClassifierVersion = ""
	rep.DatabaseDate = ""

	out, _ := render(t, rep)
	assert.NotContains(t, out, "version")
	assert.NotContains(t, out, "downloaded")
}

func TestWriteEmptyReport(t *testing.T) {
	out, _ := render(t, &model.Report{TopN: 1})
	assert.Contains(t, out, "<td>unclassified</td>")
	assert.Equal(t, 2, strings.Count(out, "<tr>"))
}
