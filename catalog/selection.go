// Package catalog holds the category hierarchy and its checkbox-style
// selection state.
package catalog

import "fmt"

// Category is a node of the category tree.
type Category struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Children []*Category `json:"children,omitempty"`
}

// CheckState is the tri-state of a node in a Selection.
type CheckState uint8

const (
	Unchecked CheckState = iota
	// Partial means some, but not all, descendants are selected.
	Partial
	Checked
)

func (s CheckState) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Partial:
		return "partial"
	case Checked:
		return "checked"
	}
	return "unknown"
}

// Selection tracks which categories of a tree are selected.
//
// Toggling a node applies to its whole subtree. A parent is checked exactly
// when all of its children are checked, so the selected set is always
// closed under both rules. A Selection is not safe for concurrent use.
type Selection struct {
	roots    []*Category
	index    map[string]*Category
	parent   map[string]string
	selected map[string]bool
}

// NewSelection indexes the tree rooted at roots. Nil nodes, empty ids and
// duplicate ids are errors.
func NewSelection(roots []*Category) (*Selection, error) {
	s := &Selection{
		roots:    roots,
		index:    make(map[string]*Category),
		parent:   make(map[string]string),
		selected: make(map[string]bool),
	}
	var walk func(nodes []*Category, parentID string) error
	walk = func(nodes []*Category, parentID string) error {
		for i, n := range nodes {
			if n == nil {
				return fmt.Errorf("nil category at index %d under %q", i, parentID)
			}
			if n.ID == "" {
				return fmt.Errorf("category %q under %q has no id", n.Name, parentID)
			}
			if _, dup := s.index[n.ID]; dup {
				return fmt.Errorf("duplicate category id %q", n.ID)
			}
			s.index[n.ID] = n
			if parentID != "" {
				s.parent[n.ID] = parentID
			}
			if err := walk(n.Children, n.ID); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(roots, ""); err != nil {
		return nil, err
	}
	return s, nil
}

// Toggle flips node id: a checked node is cleared with its subtree, any
// other node is selected with its subtree. Ancestors are then recomputed.
func (s *Selection) Toggle(id string) error {
	node, ok := s.index[id]
	if !ok {
		return fmt.Errorf("unknown category %q", id)
	}
	s.setSubtree(node, !s.selected[id])
	s.refreshAncestors(id)
	return nil
}

// Set selects or clears node id and its subtree.
func (s *Selection) Set(id string, selected bool) error {
	node, ok := s.index[id]
	if !ok {
		return fmt.Errorf("unknown category %q", id)
	}
	s.setSubtree(node, selected)
	s.refreshAncestors(id)
	return nil
}

// Clear deselects everything.
func (s *Selection) Clear() {
	s.selected = make(map[string]bool)
}

func (s *Selection) setSubtree(node *Category, selected bool) {
	if selected {
		s.selected[node.ID] = true
	} else {
		delete(s.selected, node.ID)
	}
	for _, child := range node.Children {
		s.setSubtree(child, selected)
	}
}

func (s *Selection) refreshAncestors(id string) {
	for p, ok := s.parent[id]; ok; p, ok = s.parent[p] {
		all := true
		for _, child := range s.index[p].Children {
			if !s.selected[child.ID] {
				all = false
				break
			}
		}
		if all {
			s.selected[p] = true
		} else {
			delete(s.selected, p)
		}
	}
}

// State returns the check state of node id; unknown ids are Unchecked.
func (s *Selection) State(id string) CheckState {
	node, ok := s.index[id]
	if !ok {
		return Unchecked
	}
	if s.selected[id] {
		return Checked
	}
	if s.anySelectedBelow(node) {
		return Partial
	}
	return Unchecked
}

func (s *Selection) anySelectedBelow(node *Category) bool {
	for _, child := range node.Children {
		if s.selected[child.ID] || s.anySelectedBelow(child) {
			return true
		}
	}
	return false
}

// SelectedIDs returns every selected id in tree pre-order.
func (s *Selection) SelectedIDs() []string {
	var ids []string
	s.preorder(func(n *Category) {
		if s.selected[n.ID] {
			ids = append(ids, n.ID)
		}
	})
	return ids
}

// SelectedLeafIDs returns the selected leaves in tree pre-order. They
// identify a selection without redundancy and key brand lookups.
func (s *Selection) SelectedLeafIDs() []string {
	var ids []string
	s.preorder(func(n *Category) {
		if len(n.Children) == 0 && s.selected[n.ID] {
			ids = append(ids, n.ID)
		}
	})
	return ids
}

func (s *Selection) preorder(visit func(*Category)) {
	var walk func([]*Category)
	walk = func(nodes []*Category) {
		for _, n := range nodes {
			visit(n)
			walk(n.Children)
		}
	}
	walk(s.roots)
}
