package taxreport

import "github.com/crimson-sun/taxreport/internal/engine/enrichment"

type options struct {
	topN              int
	classifierVersion string
	databaseDate      string
	alpha             float64
	dominant          float64
	nt90Min           int64
}

// Option configures a Reporter.
type Option func(*options)

// WithTopN sets how many of the most abundant taxa are reported. Default: 20.
func WithTopN(n int) Option {
	return func(o *options) {
		o.topN = n
	}
}

// WithClassifierVersion sets the classifier version shown in the HTML footer.
func WithClassifierVersion(v string) Option {
	return func(o *options) {
		o.classifierVersion = v
	}
}

// WithDatabaseDate sets the reference database download date shown in the
// HTML footer.
func WithDatabaseDate(d string) Option {
	return func(o *options) {
		o.databaseDate = d
	}
}

// WithSignificance sets the one-sided p-value at or below which a taxon is
// enriched. Default: 0.05.
func WithSignificance(alpha float64) Option {
	return func(o *options) {
		o.alpha = alpha
	}
}

// WithDominance sets the share of the parent's reads at or above which a
// taxon is enriched regardless of the test. Default: 0.9.
func WithDominance(share float64) Option {
	return func(o *options) {
		o.dominant = share
	}
}

// WithNT90Min sets the nt90 value below which a taxon is flagged. Default: 5.
func WithNT90Min(n int64) Option {
	return func(o *options) {
		o.nt90Min = n
	}
}

func defaultOptions() options {
	return options{
		alpha:    enrichment.DefaultAlpha,
		dominant: enrichment.DefaultDominant,
		nt90Min:  enrichment.DefaultNT90Min,
	}
}
