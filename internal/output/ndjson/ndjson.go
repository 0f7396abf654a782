// Package ndjson writes a report as newline-delimited JSON: one object for
// the unclassified reads, one per taxon row, and a closing summary.
package ndjson

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/crimson-sun/taxreport/internal/model"
)

// Option configures an NDJSON Output.
type Option func(*Output)

// WithPretty indents each object. The result is no longer one object per line.
func WithPretty() Option {
	return func(o *Output) { o.enc.SetIndent("", "  ") }
}

// Output writes JSON-encoded report records.
type Output struct {
	w   *bufio.Writer
	wc  io.WriteCloser
	enc *json.Encoder
}

// New creates an NDJSON output writing to wc. Close flushes and closes wc.
func New(wc io.WriteCloser, opts ...Option) *Output {
	w := bufio.NewWriter(wc)
	o := &Output{w: w, wc: wc, enc: json.NewEncoder(w)}
	o.enc.SetEscapeHTML(false)
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type unclassifiedRecord struct {
	Type     string  `json:"type"`
	Percent  float64 `json:"percent"`
	NtSeqs   int64   `json:"nt_seqs"`
	NtLength int64   `json:"nt_length"`
}

type taxonRecord struct {
	Type       string   `json:"type"`
	TaxonID    string   `json:"taxon_id"`
	Rank       string   `json:"rank"`
	Name       string   `json:"name"`
	Depth      int      `json:"depth"`
	Percent    float64  `json:"percent"`
	Reads      int64    `json:"reads"`
	NtSeqs     int64    `json:"nt_seqs"`
	Enrichment string   `json:"enrichment"`
	PValue     *float64 `json:"p_value,omitempty"`
	Observed   *float64 `json:"observed,omitempty"`
	NT90       int64    `json:"nt90"`
	NT90Flag   string   `json:"nt90_flag"`
}

type summaryRecord struct {
	Type              string `json:"type"`
	TopN              int    `json:"top_n"`
	Cutoff            int64  `json:"cutoff"`
	Rows              int    `json:"rows"`
	TotalNtSeqs       int64  `json:"total_nt_seqs"`
	TotalNtLength     int64  `json:"total_nt_length"`
	ClassifierVersion string `json:"classifier_version,omitempty"`
	DatabaseDate      string `json:"database_date,omitempty"`
}

// Write encodes rep as a sequence of records.
func (o *Output) Write(_ context.Context, rep *model.Report) error {
	if err := o.encode(unclassifiedRecord{
		Type:     "unclassified",
		Percent:  rep.Unclassified.Score,
		NtSeqs:   rep.Unclassified.NtSeqs,
		NtLength: rep.Unclassified.NtLength,
	}); err != nil {
		return err
	}

	for _, r := range rep.Rows {
		rec := taxonRecord{
			Type:       "taxon",
			TaxonID:    r.TaxonID,
			Rank:       r.Rank,
			Name:       r.Name,
			Depth:      r.Depth,
			Percent:    r.Score,
			Reads:      r.ReadCount,
			NtSeqs:     r.NTTotal,
			Enrichment: r.Enrichment.String(),
			NT90:       r.NT90,
			NT90Flag:   r.NT90Flag.String(),
		}
		if r.Enrichment != model.NotMeasured {
			rec.PValue = &r.PValue
			rec.Observed = &r.Observed
		}
		if err := o.encode(rec); err != nil {
			return err
		}
	}

	return o.encode(summaryRecord{
		Type:              "summary",
		TopN:              rep.TopN,
		Cutoff:            rep.Cutoff,
		Rows:              len(rep.Rows),
		TotalNtSeqs:       rep.TotalNtSeqs,
		TotalNtLength:     rep.TotalNtLength,
		ClassifierVersion: rep.ClassifierVersion,
		DatabaseDate:      rep.DatabaseDate,
	})
}

func (o *Output) encode(v any) error {
	if err := o.enc.Encode(v); err != nil {
		return fmt.Errorf("ndjson output: %w", err)
	}
	return nil
}

// Close flushes buffered records and closes the underlying writer.
func (o *Output) Close() error {
	if err := o.w.Flush(); err != nil {
		o.wc.Close()
		return fmt.Errorf("ndjson output: flush: %w", err)
	}
	return o.wc.Close()
}
