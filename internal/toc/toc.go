// Package toc builds the navigation tree of a documentation site from its
// documents. The tree mirrors the directory structure; every level is
// ordered by the documents' order field.
package toc

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"unicode/utf8"

	"git.home.luguber.info/inful/docsite/internal/docmodel"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Items maps a path segment to its node, in display order.
type Items = orderedmap.OrderedMap[string, *Node]

// Node is one entry of the tree. A document node carries the document's
// title, description, slug and order; a branch node has a synthesized title
// and Items. A document whose slug is also a directory carries both.
type Node struct {
	Title       string
	Description string
	Slug        string
	Order       int

	// IsDocument reports whether a document was inserted at this node.
	IsDocument bool

	// Items is nil for nodes without children.
	Items *Items
}

// Entry is a key/node pair as yielded by Entries.
type Entry struct {
	Key  string
	Node *Node
}

// Tree is the root forest of the navigation.
type Tree struct {
	root *Items
}

// Build constructs the tree for docs, in their given order.
//
// Intermediate segments become branch nodes titled after the segment
// ("getting-started" becomes "Getting Started"). When two documents share a
// slug the later one wins but keeps the earlier one's position. After
// insertion every level is stably sorted by order. Build does not modify
// docs.
func Build(docs []docmodel.Document) *Tree {
	root := orderedmap.New[string, *Node]()

	for _, doc := range docs {
		segments := doc.Slug.Segments()
		if len(segments) == 0 {
			continue
		}

		current := root
		for _, seg := range segments[:len(segments)-1] {
			node, ok := current.Get(seg)
			if !ok {
				node = &Node{Title: BranchTitle(seg)}
				current.Set(seg, node)
			}
			if node.Items == nil {
				node.Items = orderedmap.New[string, *Node]()
			}
			current = node.Items
		}

		last := segments[len(segments)-1]
		node, ok := current.Get(last)
		if !ok {
			node = &Node{}
			current.Set(last, node)
		}
		node.Title = doc.Frontmatter.Title()
		node.Description = doc.Frontmatter.Description()
		node.Slug = doc.Slug.String()
		node.Order = doc.Frontmatter.Order()
		node.IsDocument = true
	}

	return &Tree{root: sortItems(root)}
}

// sortItems returns items stably sorted by order, recursing into children.
func sortItems(items *Items) *Items {
	entries := entries(items)
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return a.Node.Order - b.Node.Order
	})

	sorted := orderedmap.New[string, *Node]()
	for _, e := range entries {
		if e.Node.Items != nil {
			e.Node.Items = sortItems(e.Node.Items)
		}
		sorted.Set(e.Key, e.Node)
	}
	return sorted
}

func entries(items *Items) []Entry {
	if items == nil {
		return nil
	}
	out := make([]Entry, 0, items.Len())
	for pair := items.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Entry{Key: pair.Key, Node: pair.Value})
	}
	return out
}

// BranchTitle turns a path segment into a display title: words split on
// hyphens, first letter of each upper-cased, joined with spaces.
func BranchTitle(segment string) string {
	words := strings.Split(segment, "-")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = cases.Upper(language.Und).String(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Len returns the number of top-level entries.
func (t *Tree) Len() int {
	return t.root.Len()
}

// Entries returns the top-level entries in order.
func (t *Tree) Entries() []Entry {
	return entries(t.root)
}

// Entries returns the node's children in order.
func (n *Node) Entries() []Entry {
	return entries(n.Items)
}

// Lookup finds the node at the given path.
func (t *Tree) Lookup(slug docmodel.Slug) (*Node, bool) {
	items := t.root
	var node *Node
	for _, seg := range slug.Segments() {
		if items == nil {
			return nil, false
		}
		n, ok := items.Get(seg)
		if !ok {
			return nil, false
		}
		node, items = n, n.Items
	}
	return node, node != nil
}

// WalkFunc is called for every node in depth-first order. path holds the
// segments from the root to the node.
type WalkFunc func(path []string, n *Node) error

// Walk visits every node depth-first in display order. It stops at the first
// error returned by fn.
func (t *Tree) Walk(fn WalkFunc) error {
	return walk(t.root, nil, fn)
}

// Walk visits the nodes below n. Paths are relative to n.
func (n *Node) Walk(fn WalkFunc) error {
	return walk(n.Items, nil, fn)
}

func walk(items *Items, prefix []string, fn WalkFunc) error {
	for _, e := range entries(items) {
		path := append(slices.Clip(prefix), e.Key)
		if err := fn(path, e.Node); err != nil {
			return err
		}
		if err := walk(e.Node.Items, path, fn); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON encodes the tree as an object keyed by segment, preserving
// order. Document nodes encode title, description, slug and order; branch
// nodes title and items.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return marshalItems(t.root)
}

// MarshalJSON encodes a single node.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	fields := 0
	write := func(key string, v any) error {
		if fields > 0 {
			buf.WriteByte(',')
		}
		fields++
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		val, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(val)
		return nil
	}

	if err := write("title", n.Title); err != nil {
		return nil, err
	}
	if n.IsDocument {
		if err := write("description", n.Description); err != nil {
			return nil, err
		}
		if err := write("slug", n.Slug); err != nil {
			return nil, err
		}
		if err := write("order", n.Order); err != nil {
			return nil, err
		}
	}
	if n.Items != nil {
		items, err := marshalItems(n.Items)
		if err != nil {
			return nil, err
		}
		if fields > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`"items":`)
		buf.Write(items)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalItems(items *Items) ([]byte, error) {
	if items == nil {
		return []byte("{}"), nil
	}
	return items.MarshalJSON()
}
