package model

// Verdict is the outcome of the enrichment test for one taxon.
type Verdict int

const (
	NotMeasured Verdict = iota
	Enriched
	NotEnriched
)

func (v Verdict) String() string {
	switch v {
	case Enriched:
		return "enriched"
	case NotEnriched:
		return "not_enriched"
	default:
		return "not_measured"
	}
}

// NT90Flag marks taxa whose reads come from very few reference sequences.
type NT90Flag int

const (
	NT90NotMeasured NT90Flag = iota
	NT90OK
	NT90Warning
)

func (f NT90Flag) String() string {
	switch f {
	case NT90OK:
		return "ok"
	case NT90Warning:
		return "warning"
	default:
		return "not_measured"
	}
}

// Row is one rendered line of the report.
type Row struct {
	Depth     int
	TaxonID   string
	Rank      string
	Name      string
	Italic    bool
	Score     float64
	ReadCount int64
	NTTotal   int64

	Enrichment Verdict
	PValue     float64 // meaningful only when Enrichment != NotMeasured
	Observed   float64 // share of the parent's reads

	NT90     int64
	NT90Flag NT90Flag
}

// Report is the complete result of one analysis run.
type Report struct {
	Unclassified Unclassified
	Rows         []Row

	TopN   int
	Cutoff int64

	// reference database totals (taxa "0" and "1")
	TotalNtSeqs   int64
	TotalNtLength int64

	ClassifierVersion string
	DatabaseDate      string
}
