package model

// Node is a taxon in the classification tree built from a report.
type Node struct {
	Parent   *Node
	Children []*Node // in report line order

	Name      string
	Italic    bool // genus and species names are rendered in italics
	TaxonID   string
	Rank      string // report rank code (D, K, P, C, O, F, G, S, or "-")
	Score     float64
	ReadCount int64
	NT90      int64 // reference sequences covering 90% of the reads
	NTTotal   int64 // reference sequences for this taxon
}

// NewRoot returns the sentinel root of a classification tree.
func NewRoot() *Node {
	return &Node{
		Name:      "root",
		TaxonID:   RootID,
		Score:     -1,
		ReadCount: -1,
		NT90:      -1,
		NTTotal:   -1,
	}
}

// IsRoot reports whether n is a tree root (has no parent).
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// AddChild appends c as the last child of n.
func (n *Node) AddChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// Unclassified is the summary captured from the report's "U" line.
type Unclassified struct {
	Score    float64
	NtSeqs   int64
	NtLength int64
}
