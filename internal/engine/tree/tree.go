// Package tree attaches the rows of a kraken-style classification report to
// the canonical taxonomy.
package tree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/crimson-sun/taxreport/internal/engine/taxonomy"
	"github.com/crimson-sun/taxreport/internal/model"
)

// ErrMalformedRow is returned when a report line cannot be parsed.
var ErrMalformedRow = errors.New("tree: malformed report row")

const (
	minFields   = 7
	maxLineSize = 1 << 20
)

// rankCodes are the canonical levels accepted from the report.
var rankCodes = map[string]bool{
	"D": true, "K": true, "P": true, "C": true,
	"O": true, "F": true, "G": true, "S": true,
}

// Tree is a classification tree rooted at a sentinel node.
type Tree struct {
	Root         *model.Node
	Unclassified model.Unclassified

	// Counts holds the read count of every inserted node, in insertion order.
	Counts []int64

	nodes map[string]*model.Node
}

// New returns an empty tree.
func New() *Tree {
	root := model.NewRoot()
	return &Tree{
		Root:  root,
		nodes: map[string]*model.Node{root.TaxonID: root},
	}
}

// Lookup returns the first node inserted for taxon id.
func (t *Tree) Lookup(id string) (*model.Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Len returns the number of nodes below the root.
func (t *Tree) Len() int {
	return len(t.Counts)
}

// report line fields
type row struct {
	line    int
	percent string
	reads   string
	rank    string
	taxonID string
	nt90    string
	name    string
}

// Build streams a tab-delimited report (percent, reads, direct reads, rank,
// taxon, nt90, name) into a tree. Rows that cannot be placed are skipped
// with a warning; malformed rows abort the build.
func Build(r io.Reader, idx *taxonomy.Index) (*Tree, error) {
	t := New()
	cur := NewCursor(t.Root)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < minFields {
			return nil, fmt.Errorf("line %d: %w: want at least %d fields, got %d",
				line, ErrMalformedRow, minFields, len(fields))
		}
		rw := row{
			line:    line,
			percent: strings.TrimSpace(fields[0]),
			reads:   strings.TrimSpace(fields[1]),
			rank:    strings.TrimSpace(fields[3]),
			taxonID: strings.TrimSpace(fields[4]),
			nt90:    strings.TrimSpace(fields[5]),
			name:    fields[6],
		}

		var err error
		cur, err = t.add(cur, rw, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return t, nil
}

// add dispatches one report row and returns the updated cursor. Only parse
// failures are returned as errors.
func (t *Tree) add(cur Cursor, rw row, idx *taxonomy.Index) (Cursor, error) {
	switch {
	case rw.rank == "-":
		if !model.IsPseudoTaxon(rw.taxonID) {
			return cur, nil
		}
	case rw.rank == "U":
		return cur, t.captureUnclassified(rw, idx)
	case !rankCodes[rw.rank]:
		slog.Warn("unknown taxonomic rank", "rank", rw.rank, "taxon", rw.taxonID, "line", rw.line)
		return cur, nil
	}

	taxon, ok := idx.Get(rw.taxonID)
	if !ok {
		slog.Warn("unknown taxon", "taxon", rw.taxonID, "line", rw.line)
		return cur, nil
	}

	n, err := newNode(rw, taxon)
	if err != nil {
		return cur, err
	}

	next, ok := t.attach(cur, n, taxon.ParentID)
	if !ok {
		slog.Warn("cannot find parent for taxon", "taxon", rw.taxonID, "parent", taxon.ParentID, "line", rw.line)
		return cur, nil
	}
	return next, nil
}

// attach places n under the node with parentID. The cursor path is searched
// first, then the id table.
func (t *Tree) attach(cur Cursor, n *model.Node, parentID string) (Cursor, bool) {
	if parentID == "" {
		return cur, false
	}

	var next Cursor
	if i, ok := cur.find(parentID); ok {
		cur.path[i].AddChild(n)
		next = cur.extend(i, n)
	} else {
		parent, ok := t.nodes[parentID]
		if !ok {
			return cur, false
		}
		slog.Debug("parent found off the current branch", "taxon", n.TaxonID, "parent", parentID)
		parent.AddChild(n)
		next = cursorAt(n)
	}

	if _, dup := t.nodes[n.TaxonID]; !dup {
		t.nodes[n.TaxonID] = n
	}
	t.Counts = append(t.Counts, n.ReadCount)
	return next, true
}

func (t *Tree) captureUnclassified(rw row, idx *taxonomy.Index) error {
	score, err := parseFloat(rw.percent)
	if err != nil {
		return err
	}
	u, ok := idx.Unclassified()
	if !ok {
		slog.Warn("taxonomy has no unclassified taxon", "taxon", model.UnclassifiedID)
	}
	t.Unclassified = model.Unclassified{
		Score:    score,
		NtSeqs:   u.NtSeqs,
		NtLength: u.NtLength,
	}
	return nil
}

func newNode(rw row, taxon model.CanonicalTaxon) (*model.Node, error) {
	score, err := parseFloat(rw.percent)
	if err != nil {
		return nil, err
	}
	reads, err := parseInt(rw.reads)
	if err != nil {
		return nil, err
	}
	nt90, err := parseInt(rw.nt90)
	if err != nil {
		return nil, err
	}
	return &model.Node{
		Name:      norm.NFC.String(strings.TrimSpace(rw.name)),
		Italic:    rw.rank == "G" || rw.rank == "S",
		TaxonID:   rw.taxonID,
		Rank:      rw.rank,
		Score:     score,
		ReadCount: reads,
		NT90:      nt90,
		NTTotal:   taxon.NtSeqs,
	}, nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", ErrMalformedRow, s)
	}
	return f, nil
}

func parseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad count %q", ErrMalformedRow, s)
	}
	return n, nil
}
