package taxreport

import "github.com/crimson-sun/taxreport/internal/model"

// Report is the result of one analysis.
// This is the stable public type; internal representations may evolve
// independently without breaking consumers.
type Report struct {
	Unclassified Unclassified `json:"unclassified"`
	Rows         []Row        `json:"rows"`

	TopN   int   `json:"top_n"`
	Cutoff int64 `json:"cutoff"` // minimum read count of a reported taxon

	TotalNtSeqs   int64 `json:"total_nt_seqs"`
	TotalNtLength int64 `json:"total_nt_length"`

	ClassifierVersion string `json:"classifier_version,omitempty"`
	DatabaseDate      string `json:"database_date,omitempty"`

	rep *model.Report
}

// Unclassified summarizes reads without a taxon.
type Unclassified struct {
	Percent  float64 `json:"percent"`
	NtSeqs   int64   `json:"nt_seqs"`
	NtLength int64   `json:"nt_length"`
}

// Row is one reported taxon, in pre-order.
type Row struct {
	Depth      int     `json:"depth"` // 0 for children of the taxonomy root
	TaxonID    string  `json:"taxon_id"`
	Rank       string  `json:"rank"` // D, K, P, C, O, F, G, S or "-"
	Name       string  `json:"name"`
	Percent    float64 `json:"percent"`
	Reads      int64   `json:"reads"`
	NtSeqs     int64   `json:"nt_seqs"`
	Enrichment string  `json:"enrichment"` // enriched, not_enriched, not_measured
	PValue     float64 `json:"p_value"`
	Observed   float64 `json:"observed"`
	NT90       int64   `json:"nt90"`
	NT90Flag   string  `json:"nt90_flag"` // ok, warning, not_measured
}

func reportFromModel(rep *model.Report) *Report {
	rows := make([]Row, len(rep.Rows))
	for i, r := range rep.Rows {
		rows[i] = Row{
			Depth:      r.Depth,
			TaxonID:    r.TaxonID,
			Rank:       r.Rank,
			Name:       r.Name,
			Percent:    r.Score,
			Reads:      r.ReadCount,
			NtSeqs:     r.NTTotal,
			Enrichment: r.Enrichment.String(),
			PValue:     r.PValue,
			Observed:   r.Observed,
			NT90:       r.NT90,
			NT90Flag:   r.NT90Flag.String(),
		}
	}
	return &Report{
		Unclassified: Unclassified{
			Percent:  rep.Unclassified.Score,
			NtSeqs:   rep.Unclassified.NtSeqs,
			NtLength: rep.Unclassified.NtLength,
		},
		Rows:              rows,
		TopN:              rep.TopN,
		Cutoff:            rep.Cutoff,
		TotalNtSeqs:       rep.TotalNtSeqs,
		TotalNtLength:     rep.TotalNtLength,
		ClassifierVersion: rep.ClassifierVersion,
		DatabaseDate:      rep.DatabaseDate,
		rep:               rep,
	}
}
