// Package tree serializes hierarchical catalog data into the nested JSON
// structure expected by the bootstrap-treeview widget.
package tree

import (
	"context"
	"encoding/json"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Item is one record of the hierarchy as supplied by a Source.
type Item struct {
	ID             int64
	Name           string
	Href           string
	StockItemCount int
}

// Source exposes the hierarchy to the serializer. Implementations are
// expected to be acyclic by construction of the data layer; the serializer
// performs no cycle detection.
type Source interface {
	// Roots returns the records with no parent.
	Roots(ctx context.Context) ([]Item, error)
	// Children returns the direct children of the given record.
	Children(ctx context.Context, parentID int64) ([]Item, error)
}

// Node is the wire format of a single tree entry. PK is nil only on the
// synthetic root. Nodes is omitted entirely for leaves; an empty array and
// an absent key are distinct states in the widget's contract, so a nil
// slice means "no key" while a non-nil slice is always emitted.
type Node struct {
	PK    *int64  `json:"pk"`
	Text  string  `json:"text"`
	Href  string  `json:"href"`
	Tags  []int   `json:"tags"`
	Nodes []*Node `json:"nodes,omitempty"`
}

// MarshalJSON emits the nodes key for every non-nil Nodes slice, including
// an empty one. omitempty alone would drop the empty slice the synthetic
// root carries when the hierarchy has no entries.
func (n Node) MarshalJSON() ([]byte, error) {
	type leaf struct {
		PK   *int64 `json:"pk"`
		Text string `json:"text"`
		Href string `json:"href"`
		Tags []int  `json:"tags"`
	}
	if n.Nodes == nil {
		return json.Marshal(leaf{PK: n.PK, Text: n.Text, Href: n.Href, Tags: n.Tags})
	}
	type branch struct {
		leaf
		Nodes []*Node `json:"nodes"`
	}
	return json.Marshal(branch{
		leaf:  leaf{PK: n.PK, Text: n.Text, Href: n.Href, Tags: n.Tags},
		Nodes: n.Nodes,
	})
}

// Serializer walks a Source depth-first and emits the nested node structure.
type Serializer struct {
	Source Source
	// Title labels the synthetic root node.
	Title string
	// RootURL is the href of the synthetic root; defaults to a placeholder
	// anchor when empty.
	RootURL string

	collator *collate.Collator
}

// NewSerializer constructs a Serializer over the given source.
func NewSerializer(source Source, title, rootURL string) *Serializer {
	if rootURL == "" {
		rootURL = "#"
	}
	return &Serializer{
		Source:   source,
		Title:    title,
		RootURL:  rootURL,
		collator: collate.New(language.English, collate.IgnoreCase),
	}
}

// Serialize builds the full tree. The synthetic root carries the sum of the
// stock item counts of the top-level records only, not of the whole tree,
// and always has a nodes key even when the hierarchy is empty.
func (s *Serializer) Serialize(ctx context.Context) (*Node, error) {
	roots, err := s.Source.Roots(ctx)
	if err != nil {
		return nil, err
	}
	s.sortByName(roots)

	nodes := make([]*Node, 0, len(roots))
	topCount := 0
	for _, item := range roots {
		node, err := s.itemToNode(ctx, item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
		topCount += item.StockItemCount
	}

	return &Node{
		PK:    nil,
		Text:  s.Title,
		Href:  s.RootURL,
		Tags:  []int{topCount},
		Nodes: nodes,
	}, nil
}

func (s *Serializer) itemToNode(ctx context.Context, item Item) (*Node, error) {
	id := item.ID
	node := &Node{
		PK:   &id,
		Text: item.Name,
		Href: item.Href,
		Tags: []int{item.StockItemCount},
	}

	children, err := s.Source.Children(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return node, nil
	}

	s.sortByName(children)
	node.Nodes = make([]*Node, 0, len(children))
	for _, child := range children {
		childNode, err := s.itemToNode(ctx, child)
		if err != nil {
			return nil, err
		}
		node.Nodes = append(node.Nodes, childNode)
	}
	return node, nil
}

// sortByName orders siblings ascending by name. Collation happens here
// rather than in SQL so the wire contract does not depend on the database
// collation in use.
func (s *Serializer) sortByName(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return s.collator.CompareString(items[i].Name, items[j].Name) < 0
	})
}
