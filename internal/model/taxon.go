package model

// Reserved taxon ids. They are canonical regardless of their declared rank.
const (
	UnclassifiedID     = "0"
	RootID             = "1"
	UnclassifiedSeqsID = "12908" // "unclassified sequences"
	OtherSeqsID        = "28384" // "other sequences"
)

// canonicalRanks are the major levels (DKPCOFGS) kept in the collapsed tree.
var canonicalRanks = map[string]bool{
	"superkingdom": true,
	"kingdom":      true,
	"phylum":       true,
	"class":        true,
	"order":        true,
	"family":       true,
	"genus":        true,
	"species":      true,
}

// IsCanonical reports whether a taxonomy record with the given id and rank
// belongs in the canonical tree.
func IsCanonical(id, rank string) bool {
	if canonicalRanks[rank] {
		return true
	}
	switch id {
	case UnclassifiedID, RootID, UnclassifiedSeqsID, OtherSeqsID:
		return true
	}
	return false
}

// IsPseudoTaxon reports whether id is one of the two top-level pseudo-taxa
// that are exempt from enrichment and nt90 evaluation.
func IsPseudoTaxon(id string) bool {
	return id == UnclassifiedSeqsID || id == OtherSeqsID
}

// TaxonRecord is one line of the taxonomy dump.
type TaxonRecord struct {
	ID        string
	ParentID  string // immediate parent, possibly non-canonical
	Rank      string
	Canonical bool
	NtSeqs    int64 // reference sequences assigned to this taxon or below
	NtLength  int64 // total length of those sequences (bp)
}

// CanonicalTaxon is a canonical record with its parent collapsed to the
// nearest canonical ancestor. ParentID is empty for the reserved roots.
type CanonicalTaxon struct {
	ID       string
	ParentID string
	NtSeqs   int64
	NtLength int64
}
