package tree

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/taxreport/internal/engine/taxonomy"
	"github.com/crimson-sun/taxreport/internal/model"
)

const dump = `0|0|no rank|50|5000
1|1|no rank|2000|900000
131567|1|no rank|1500|800000
2|131567|superkingdom|600|300000
1224|2|phylum|500|250000
561|1224|genus|300|100000
562|561|species|200|60000
2759|131567|superkingdom|900|500000
9605|2759|genus|700|400000
9606|9605|species|600|300000
12908|1|no rank|10|1000
28384|1|no rank|20|2000
`

func report(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func buildIndex(t *testing.T) *taxonomy.Index {
	t.Helper()
	idx, err := taxonomy.Build(strings.NewReader(dump))
	require.NoError(t, err)
	return idx
}

// captureLogs routes the default slog logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func childIDs(n *model.Node) []string {
	ids := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		ids = append(ids, c.TaxonID)
	}
	return ids
}

func TestBuildPreOrderReport(t *testing.T) {
	in := report(
		"10.00\t100\t100\tU\t0\t0\tunclassified",
		"90.00\t900\t0\t-\t1\t0\troot",
		"85.00\t850\t0\t-\t131567\t0\t  cellular organisms",
		"30.00\t300\t0\tD\t2\t40\t    Bacteria",
		"25.00\t250\t0\tP\t1224\t30\t      Proteobacteria",
		"20.00\t200\t0\tG\t561\t20\t        Escherichia",
		"15.00\t150\t150\tS\t562\t4\t          Escherichia coli",
		"55.00\t550\t0\tD\t2759\t100\t    Eukaryota",
		"50.00\t500\t0\tG\t9605\t90\t      Homo",
		"45.00\t450\t450\tS\t9606\t3\t        Homo sapiens",
	)
	tr, err := Build(strings.NewReader(in), buildIndex(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"2", "2759"}, childIDs(tr.Root))
	assert.Equal(t, []int64{300, 250, 200, 150, 550, 500, 450}, tr.Counts)
	assert.Equal(t, 7, tr.Len())

	hs, ok := tr.Lookup("9606")
	require.True(t, ok)
	assert.Equal(t, "Homo sapiens", hs.Name)
	assert.True(t, hs.Italic)
	assert.Equal(t, 45.0, hs.Score)
	assert.Equal(t, int64(450), hs.ReadCount)
	assert.Equal(t, int64(3), hs.NT90)
	assert.Equal(t, int64(600), hs.NTTotal)
	assert.Equal(t, "9605", hs.Parent.TaxonID)

	bac, _ := tr.Lookup("2")
	assert.False(t, bac.Italic)
	assert.Same(t, tr.Root, bac.Parent)

	assert.Equal(t, model.Unclassified{Score: 10, NtSeqs: 50, NtLength: 5000}, tr.Unclassified)
}

func TestBuildOutOfOrderUsesFallback(t *testing.T) {
	logs := captureLogs(t)
	in := report(
		"30.00\t300\t0\tD\t2\t40\tBacteria",
		"55.00\t550\t0\tD\t2759\t100\tEukaryota",
		"50.00\t500\t0\tG\t9605\t90\tHomo",
		// back on the Bacteria branch after leaving it
		"25.00\t250\t0\tP\t1224\t30\tProteobacteria",
		"45.00\t450\t450\tS\t9606\t3\tHomo sapiens",
	)
	tr, err := Build(strings.NewReader(in), buildIndex(t))
	require.NoError(t, err)

	bac, _ := tr.Lookup("2")
	assert.Equal(t, []string{"1224"}, childIDs(bac))
	homo, _ := tr.Lookup("9605")
	assert.Equal(t, []string{"9606"}, childIDs(homo))
	assert.Equal(t, 5, tr.Len())
	assert.Contains(t, logs.String(), "parent found off the current branch")
}

func TestBuildSkipsUnplaceableRows(t *testing.T) {
	logs := captureLogs(t)
	in := report(
		"30.00\t300\t0\tD\t2\t40\tBacteria",
		"1.00\t10\t0\tS\t424242\t1\tUnknown thing",
		"1.00\t10\t0\tS1\t562\t1\tEscherichia coli K-12",
		"1.00\t10\t0\tS\t562\t1\tEscherichia coli",
		"25.00\t250\t0\tP\t1224\t30\tProteobacteria",
	)
	tr, err := Build(strings.NewReader(in), buildIndex(t))
	require.NoError(t, err)

	// 562's parent (561) never appears in the report
	_, ok := tr.Lookup("562")
	assert.False(t, ok)
	assert.Equal(t, []int64{300, 250}, tr.Counts)

	out := logs.String()
	assert.Contains(t, out, "unknown taxon")
	assert.Contains(t, out, "unknown taxonomic rank")
	assert.Contains(t, out, "cannot find parent for taxon")
}

func TestBuildNonCanonicalRows(t *testing.T) {
	in := report(
		"0.50\t5\t5\t-\t12908\t1\tunclassified sequences",
		"0.70\t7\t7\t-\t28384\t9\tother sequences",
		"85.00\t850\t0\t-\t131567\t0\tcellular organisms",
	)
	tr, err := Build(strings.NewReader(in), buildIndex(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"12908", "28384"}, childIDs(tr.Root))
	assert.Equal(t, []int64{5, 7}, tr.Counts)
	_, ok := tr.Lookup("131567")
	assert.False(t, ok)
}

func TestBuildNormalizesNames(t *testing.T) {
	// "e" followed by a combining acute accent composes to "é"
	in := report("30.00\t300\t0\tD\t2\t40\t  Bacte\u0301ria  ")
	tr, err := Build(strings.NewReader(in), buildIndex(t))
	require.NoError(t, err)

	bac, _ := tr.Lookup("2")
	assert.Equal(t, "Bact\u00e9ria", bac.Name)
}

func TestBuildMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"four fields", "45.00\t900\t900\tS\n"},
		{"bad percent", "abc\t300\t0\tD\t2\t40\tBacteria\n"},
		{"bad reads", "30.00\t3x0\t0\tD\t2\t40\tBacteria\n"},
		{"bad nt90", "30.00\t300\t0\tD\t2\t-\tBacteria\n"},
		{"bad unclassified percent", "ten\t100\t100\tU\t0\t0\tunclassified\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(strings.NewReader(tt.in), buildIndex(t))
			require.ErrorIs(t, err, ErrMalformedRow)
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestBuildSkippedRowsAreNotParsed(t *testing.T) {
	// numeric fields of skipped rows are never inspected
	in := report("n/a\tn/a\tn/a\t-\t131567\tn/a\tcellular organisms")
	tr, err := Build(strings.NewReader(in), buildIndex(t))
	require.NoError(t, err)
	assert.Zero(t, tr.Len())
}

func TestBuildUnclassifiedWithoutTaxon(t *testing.T) {
	logs := captureLogs(t)
	idx, err := taxonomy.Build(strings.NewReader("1|1|no rank|1|1\n"))
	require.NoError(t, err)

	tr, err := Build(strings.NewReader("12.50\t10\t10\tU\t0\t0\tunclassified\n"), idx)
	require.NoError(t, err)
	assert.Equal(t, model.Unclassified{Score: 12.5}, tr.Unclassified)
	assert.Contains(t, logs.String(), "taxonomy has no unclassified taxon")
}

func TestCursorExtendDoesNotAlias(t *testing.T) {
	root := model.NewRoot()
	a := &model.Node{TaxonID: "a"}
	b := &model.Node{TaxonID: "b"}
	c := &model.Node{TaxonID: "c"}

	base := NewCursor(root).extend(0, a)
	left := base.extend(1, b)
	right := base.extend(1, c)

	assert.Same(t, b, left.Current())
	assert.Same(t, c, right.Current())
	assert.Equal(t, 2, left.Depth())
	assert.Same(t, a, base.Current())
}

func TestCursorAt(t *testing.T) {
	root := model.NewRoot()
	a := &model.Node{TaxonID: "a"}
	b := &model.Node{TaxonID: "b"}
	root.AddChild(a)
	a.AddChild(b)

	c := cursorAt(b)
	assert.Equal(t, 2, c.Depth())
	i, ok := c.find("a")
	require.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = c.find("zzz")
	assert.False(t, ok)
}
