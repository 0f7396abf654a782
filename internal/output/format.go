package output

import (
	"strconv"

	"github.com/crimson-sun/taxreport/internal/model"
)

// Markers shown in the enrichment and nt90 columns.
const (
	MarkEnriched    = "✓"
	MarkNotEnriched = "✗"
	MarkNotMeasured = "—"
	MarkNT90Warning = "⚠"
	MarkNT90OK      = ""
)

// EnrichmentMarker returns the table marker for an enrichment verdict.
func EnrichmentMarker(v model.Verdict) string {
	switch v {
	case model.Enriched:
		return MarkEnriched
	case model.NotEnriched:
		return MarkNotEnriched
	default:
		return MarkNotMeasured
	}
}

// NT90Marker returns the table marker for an nt90 flag.
func NT90Marker(f model.NT90Flag) string {
	switch f {
	case model.NT90Warning:
		return MarkNT90Warning
	case model.NT90OK:
		return MarkNT90OK
	default:
		return MarkNotMeasured
	}
}

// Percent formats a sample share with two decimals.
func Percent(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}
