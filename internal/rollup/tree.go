package rollup

import (
	"sort"

	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/Veraticus/supply-flow/internal/parse"
	"github.com/shopspring/decimal"
)

// GroupedItem aggregates the records of one (description, unit) pair below the
// innermost tree level. The same description bought in different units yields
// separate items.
type GroupedItem struct {
	Description     string          `json:"description"`
	Unit            string          `json:"unit"`
	TotalQuantity   decimal.Decimal `json:"total_quantity"`
	TotalValue      decimal.Decimal `json:"total_value"`
	OccurrenceCount int             `json:"occurrence_count"`
}

// AveragePrice is TotalValue per unit of TotalQuantity.
func (g GroupedItem) AveragePrice() decimal.Decimal {
	return AveragePrice(g.TotalValue, g.TotalQuantity)
}

// Node is one level of a hierarchical rollup. Nodes above the innermost level hold
// Children; innermost nodes hold Items.
type Node struct {
	Key      string          `json:"key"`
	Total    decimal.Decimal `json:"total"`
	Children []*Node         `json:"children,omitempty"`
	Items    []*GroupedItem  `json:"items,omitempty"`
}

// Tree is the result of BuildTree. Items is only populated when the tree was built
// without levels.
type Tree struct {
	Total decimal.Decimal `json:"total"`
	Nodes []*Node         `json:"nodes"`
	Items []*GroupedItem  `json:"items,omitempty"`
	Depth int             `json:"depth"`
}

// Walk calls fn for every grouped item with the keys of the nodes above it.
// The path slice is reused between calls.
func (t Tree) Walk(fn func(path []string, item *GroupedItem)) {
	for _, it := range t.Items {
		fn(nil, it)
	}
	path := make([]string, 0, t.Depth)
	for _, n := range t.Nodes {
		walkNode(n, path, fn)
	}
}

func walkNode(n *Node, path []string, fn func([]string, *GroupedItem)) {
	path = append(path, n.Key)
	for _, it := range n.Items {
		fn(path, it)
	}
	for _, c := range n.Children {
		walkNode(c, path, fn)
	}
}

type itemKey struct {
	description string
	unit        string
}

// builder owns the lookup indexes used while a tree is assembled.
type builder struct {
	node     *Node
	children map[string]*builder
	items    map[itemKey]*GroupedItem
}

func newBuilder(key string) *builder {
	return &builder{node: &Node{Key: key, Total: decimal.Zero}}
}

func (b *builder) child(key string) *builder {
	if b.children == nil {
		b.children = make(map[string]*builder)
	}
	c, ok := b.children[key]
	if !ok {
		c = newBuilder(key)
		b.children[key] = c
		b.node.Children = append(b.node.Children, c.node)
	}
	return c
}

func (b *builder) addItem(r model.PurchaseRecord, quantity decimal.Decimal) {
	if b.items == nil {
		b.items = make(map[itemKey]*GroupedItem)
	}
	k := itemKey{description: r.ItemDescription, unit: r.Unit}
	it, ok := b.items[k]
	if !ok {
		it = &GroupedItem{
			Description:   r.ItemDescription,
			Unit:          r.Unit,
			TotalQuantity: decimal.Zero,
			TotalValue:    decimal.Zero,
		}
		b.items[k] = it
		b.node.Items = append(b.node.Items, it)
	}
	it.TotalQuantity = it.TotalQuantity.Add(quantity)
	it.TotalValue = it.TotalValue.Add(r.TotalValue)
	it.OccurrenceCount++
}

// BuildTree groups records level by level and aggregates the innermost level into
// GroupedItems. Each record adds its TotalValue to every node on its path. Quantities
// are read with quantity; a nil parser selects parse.CommaDecimal.
//
// Every level, and the items of each innermost node, are sorted by total descending
// with ties kept in first-seen order.
func BuildTree(records []model.PurchaseRecord, quantity parse.NumberParser, levels ...KeyFunc) Tree {
	if quantity == nil {
		quantity = parse.CommaDecimal
	}

	root := newBuilder("")
	for _, r := range records {
		b := root
		b.node.Total = b.node.Total.Add(r.TotalValue)
		for _, level := range levels {
			b = b.child(level(r))
			b.node.Total = b.node.Total.Add(r.TotalValue)
		}
		b.addItem(r, quantity.ParseNumber(r.Quantity))
	}

	sortNode(root.node)
	return Tree{
		Total: root.node.Total,
		Nodes: nonNil(root.node.Children),
		Items: root.node.Items,
		Depth: len(levels),
	}
}

func sortNode(n *Node) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		return n.Children[i].Total.GreaterThan(n.Children[j].Total)
	})
	sort.SliceStable(n.Items, func(i, j int) bool {
		return n.Items[i].TotalValue.GreaterThan(n.Items[j].TotalValue)
	})
	for _, c := range n.Children {
		sortNode(c)
	}
}

func nonNil(nodes []*Node) []*Node {
	if nodes == nil {
		return []*Node{}
	}
	return nodes
}
