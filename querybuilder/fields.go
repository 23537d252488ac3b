package querybuilder

import (
	"bytes"
	"io"
	"strings"

	"github.com/llehouerou/go-pim-client/internal/fieldparser"
)

// FieldSeparator joins the fragments of a selection set. The indentation
// lines fragments up under the root field of the generated documents.
const FieldSeparator = "\n    "

// childSet is an insertion-ordered set of child field names.
type childSet struct {
	names []string
	seen  map[string]struct{}
}

func (s *childSet) add(name string) {
	if _, ok := s.seen[name]; ok {
		return
	}
	s.seen[name] = struct{}{}
	s.names = append(s.names, name)
}

// BuildFields turns field descriptors into the body of a selection set.
//
// Simple and pre-formatted descriptors are emitted first, in their original
// order. Dot-paths sharing a parent collapse into a single
// "parent { child1 child2 }" block with deduplicated children; those blocks
// follow, in the order their parents were first seen.
//
// E.g., []string{"category.id", "category.name", "id"} ->
// "id\n    category { id name }".
func BuildFields(fields []string) string {
	if len(fields) == 0 {
		return ""
	}

	var fragments []string
	var parents []string
	children := make(map[string]*childSet)

	for _, descriptor := range fields {
		if descriptor == "" {
			continue
		}
		parsed := fieldparser.Parse(descriptor)
		switch parsed.Kind {
		case fieldparser.DotPath:
			set, ok := children[parsed.Parent]
			if !ok {
				set = &childSet{seen: make(map[string]struct{})}
				children[parsed.Parent] = set
				parents = append(parents, parsed.Parent)
			}
			set.add(parsed.Child)
		default:
			fragments = append(fragments, parsed.Raw)
		}
	}

	for _, parent := range parents {
		set := children[parent]
		if len(set.names) == 0 {
			continue
		}
		fragments = append(fragments, nestedBlock(parent, set.names))
	}

	return strings.Join(fragments, FieldSeparator)
}

func nestedBlock(parent string, names []string) string {
	var buf bytes.Buffer
	_, _ = io.WriteString(&buf, parent)
	_, _ = io.WriteString(&buf, " { ")
	_, _ = io.WriteString(&buf, strings.Join(names, " "))
	_, _ = io.WriteString(&buf, " }")
	return buf.String()
}

const (
	// ShorthandSections and ShorthandAttributes are expanded by ExpandFields.
	ShorthandSections   = "sections"
	ShorthandAttributes = "attributes"

	// SectionsSelection is the canonical view-template layout selection.
	SectionsSelection = "sections { id title order attributes { id name type required order options } }"
)

// ExpandFields replaces the view-template shorthands "sections" and
// "attributes" with SectionsSelection. Other descriptors are returned
// unchanged, so expanding an already expanded list is a no-op.
func ExpandFields(fields []string) []string {
	if fields == nil {
		return nil
	}
	expanded := make([]string, len(fields))
	for i, f := range fields {
		switch f {
		case ShorthandSections, ShorthandAttributes:
			expanded[i] = SectionsSelection
		default:
			expanded[i] = f
		}
	}
	return expanded
}
