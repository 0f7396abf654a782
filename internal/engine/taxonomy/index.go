// Package taxonomy collapses a flat taxonomy dump into the canonical-rank
// tree (superkingdom through species plus the reserved roots).
package taxonomy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/crimson-sun/taxreport/internal/model"
)

// ErrMalformedRecord is returned when a dump line cannot be parsed.
var ErrMalformedRecord = errors.New("taxonomy: malformed record")

const maxLineSize = 1 << 20 // 1MB

// Index maps canonical taxon ids to their nearest canonical parent and
// reference database statistics.
type Index struct {
	taxa map[string]model.CanonicalTaxon

	// TotalSeqs and TotalLength sum the statistics of taxa "0" and "1".
	TotalSeqs   int64
	TotalLength int64
}

// Build reads a pipe-delimited dump (id | parent | rank | seqs | length)
// and returns its canonical index. Taxa whose canonical parent cannot be
// resolved are dropped with a warning.
func Build(r io.Reader) (*Index, error) {
	raw, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	idx := collapse(raw)
	idx.dropCycles()
	return idx, nil
}

// Get returns the canonical taxon for id.
func (idx *Index) Get(id string) (model.CanonicalTaxon, bool) {
	t, ok := idx.taxa[id]
	return t, ok
}

// Parent returns the canonical parent of id, or "" if id is unknown or a root.
func (idx *Index) Parent(id string) string {
	return idx.taxa[id].ParentID
}

// Len returns the number of canonical taxa.
func (idx *Index) Len() int {
	return len(idx.taxa)
}

// Unclassified returns the statistics of the reserved taxon "0".
func (idx *Index) Unclassified() (model.CanonicalTaxon, bool) {
	return idx.Get(model.UnclassifiedID)
}

func readRecords(r io.Reader) (map[string]model.TaxonRecord, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	raw := make(map[string]model.TaxonRecord)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		rec, err := parseRecord(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		raw[rec.ID] = rec
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	return raw, nil
}

func parseRecord(line string) (model.TaxonRecord, error) {
	fields := strings.Split(line, "|")
	if len(fields) < 3 {
		return model.TaxonRecord{}, fmt.Errorf("%w: want at least 3 fields, got %d", ErrMalformedRecord, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if fields[0] == "" {
		return model.TaxonRecord{}, fmt.Errorf("%w: empty taxon id", ErrMalformedRecord)
	}

	rec := model.TaxonRecord{
		ID:       fields[0],
		ParentID: fields[1],
		Rank:     fields[2],
	}
	rec.Canonical = model.IsCanonical(rec.ID, rec.Rank)

	var err error
	if rec.NtSeqs, err = parseCount(fields, 3); err != nil {
		return model.TaxonRecord{}, err
	}
	if rec.NtLength, err = parseCount(fields, 4); err != nil {
		return model.TaxonRecord{}, err
	}
	return rec, nil
}

// parseCount reads fields[i] as a non-negative integer. Absent or empty
// fields count as zero.
func parseCount(fields []string, i int) (int64, error) {
	if i >= len(fields) || fields[i] == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(fields[i], 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: bad count %q", ErrMalformedRecord, fields[i])
	}
	return n, nil
}

func collapse(raw map[string]model.TaxonRecord) *Index {
	idx := &Index{taxa: make(map[string]model.CanonicalTaxon)}

	for _, id := range slices.Sorted(maps.Keys(raw)) {
		rec := raw[id]
		if id == model.UnclassifiedID || id == model.RootID {
			idx.taxa[id] = model.CanonicalTaxon{ID: id, NtSeqs: rec.NtSeqs, NtLength: rec.NtLength}
			idx.TotalSeqs += rec.NtSeqs
			idx.TotalLength += rec.NtLength
			continue
		}
		if !rec.Canonical {
			continue
		}
		parent, ok := canonicalParent(raw, id)
		if !ok {
			slog.Warn("cannot find parent of taxon", "taxon", id)
			continue
		}
		idx.taxa[id] = model.CanonicalTaxon{
			ID:       id,
			ParentID: parent,
			NtSeqs:   rec.NtSeqs,
			NtLength: rec.NtLength,
		}
	}
	return idx
}

// canonicalParent climbs immediate parents of id until a canonical taxon is
// found. The climb is bounded by the number of records.
func canonicalParent(raw map[string]model.TaxonRecord, id string) (string, bool) {
	cur := raw[id]
	for range len(raw) {
		p, ok := raw[cur.ParentID]
		if !ok || p.ID == id {
			return "", false
		}
		if p.Canonical {
			return p.ID, true
		}
		cur = p
	}
	return "", false
}

// dropCycles removes canonical taxa whose parent chain loops instead of
// ending at a root or at an id outside the index.
func (idx *Index) dropCycles() {
	const (
		unknown = iota
		visiting
		done
		cyclic
	)
	state := make(map[string]int, len(idx.taxa))

	for _, id := range slices.Sorted(maps.Keys(idx.taxa)) {
		if state[id] != unknown {
			continue
		}
		var path []string
		cur := id
		result := done
		for {
			t, ok := idx.taxa[cur]
			if !ok || t.ParentID == "" {
				break
			}
			s := state[cur]
			if s == visiting {
				result = cyclic
				break
			}
			if s == done || s == cyclic {
				result = s
				break
			}
			state[cur] = visiting
			path = append(path, cur)
			cur = t.ParentID
		}
		for _, p := range path {
			state[p] = result
		}
	}

	for _, id := range slices.Sorted(maps.Keys(state)) {
		if state[id] == cyclic {
			slog.Warn("cannot find parent of taxon", "taxon", id, "reason", "cycle")
			delete(idx.taxa, id)
		}
	}
}
