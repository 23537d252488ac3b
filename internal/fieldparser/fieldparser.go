package fieldparser

import "strings"

// Kind classifies a field descriptor.
type Kind uint8

const (
	// Simple is a plain field name requested without a sub-selection.
	Simple Kind = iota
	// DotPath requests a child field of an object field ("category.id").
	DotPath
	// PassThrough is a pre-formatted selection containing "{", used verbatim.
	PassThrough
)

func (k Kind) String() string {
	switch k {
	case Simple:
		return "simple"
	case DotPath:
		return "dot-path"
	case PassThrough:
		return "pass-through"
	}
	return "unknown"
}

// ParsedField represents a parsed field descriptor.
type ParsedField struct {
	// Kind is the descriptor classification.
	Kind Kind
	// Raw is the descriptor exactly as given.
	Raw string
	// Parent is the object field of a dot-path ("category" in "category.id").
	Parent string
	// Child is everything after the first dot ("id" in "category.id").
	// Only the first dot splits: "a.b.c" gives Child "b.c".
	Child string
}

// Parse classifies a field descriptor.
// Examples:
//   - "id" -> {Kind: Simple}
//   - "category.id" -> {Kind: DotPath, Parent: "category", Child: "id"}
//   - "a.b.c" -> {Kind: DotPath, Parent: "a", Child: "b.c"}
//   - "sections { id }" -> {Kind: PassThrough}
//
// A descriptor containing "{" is always pass-through, even when it also
// contains a dot.
func Parse(descriptor string) ParsedField {
	parsed := ParsedField{Raw: descriptor}

	if strings.Contains(descriptor, "{") {
		parsed.Kind = PassThrough
		return parsed
	}

	if parent, child, ok := strings.Cut(descriptor, "."); ok {
		parsed.Kind = DotPath
		parsed.Parent = parent
		parsed.Child = child
		return parsed
	}

	parsed.Kind = Simple
	return parsed
}
