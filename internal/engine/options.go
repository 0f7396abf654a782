package engine

import "github.com/crimson-sun/taxreport/internal/engine/enrichment"

// DefaultTopN is the number of taxa reported when no option overrides it.
const DefaultTopN = 20

type options struct {
	topN              int
	classifierVersion string
	databaseDate      string
	analyzer          *enrichment.Analyzer
}

// Option configures an Engine.
type Option func(*options)

// WithTopN sets how many of the most abundant taxa are reported. Ties at
// the boundary may add rows. Values below 1 keep the default.
func WithTopN(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.topN = n
		}
	}
}

// WithClassifierVersion records the classifier version shown in the footer.
func WithClassifierVersion(v string) Option {
	return func(o *options) {
		o.classifierVersion = v
	}
}

// WithDatabaseDate records the reference database download date shown in
// the footer.
func WithDatabaseDate(d string) Option {
	return func(o *options) {
		o.databaseDate = d
	}
}

// WithAnalyzer replaces the enrichment analyzer, e.g. to change thresholds.
func WithAnalyzer(a *enrichment.Analyzer) Option {
	return func(o *options) {
		o.analyzer = a
	}
}

func defaultOptions() options {
	return options{topN: DefaultTopN}
}
