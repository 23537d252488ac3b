package querybuilder

import (
	"bytes"
	"io"
	"strconv"
)

// Argument is a named GraphQL argument. A nil Value means "not set".
type Argument struct {
	Name  string
	Value Value
}

// Arguments is an ordered argument list.
type Arguments []Argument

// Set returns a copy of args with name set to value. An existing entry keeps
// its position.
func (args Arguments) Set(name string, value Value) Arguments {
	out := make(Arguments, len(args), len(args)+1)
	copy(out, args)
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			return out
		}
	}
	return append(out, Argument{Name: name, Value: value})
}

// Variables returns the non-nil arguments keyed by name, in the form sent as
// GraphQL variables.
func (args Arguments) Variables() map[string]any {
	out := make(map[string]any, len(args))
	for _, arg := range args {
		if arg.Value == nil {
			continue
		}
		out[arg.Name] = arg.Value.variable()
	}
	return out
}

// BuildFilterArgs renders args as a GraphQL argument list, skipping nil
// values.
//
// E.g., {a: "x", b: nil, c: true, d: 5} -> `a: "x", c: true, d: 5`.
func BuildFilterArgs(args Arguments) string {
	var buf bytes.Buffer
	writeArguments(&buf, args)
	return buf.String()
}

func writeArguments(w io.Writer, args Arguments) {
	iter := 0
	for _, arg := range args {
		if arg.Value == nil {
			continue
		}
		if iter != 0 {
			_, _ = io.WriteString(w, ", ")
		}
		iter++
		_, _ = io.WriteString(w, arg.Name)
		_, _ = io.WriteString(w, ": ")
		arg.Value.writeLiteral(w)
	}
}

// Pagination selects a page of results. Zero fields are not sent.
type Pagination struct {
	Page  int
	Limit int
}

// Variables returns the set pagination fields keyed by name.
func (p Pagination) Variables() map[string]any {
	out := make(map[string]any, 2)
	if p.Page != 0 {
		out["page"] = p.Page
	}
	if p.Limit != 0 {
		out["limit"] = p.Limit
	}
	return out
}

// BuildPaginationArgs renders the set pagination fields.
//
// E.g., {Page: 2, Limit: 10} -> "page: 2, limit: 10"; {} -> "".
func BuildPaginationArgs(p Pagination) string {
	var buf bytes.Buffer
	if p.Page != 0 {
		_, _ = io.WriteString(&buf, "page: ")
		_, _ = io.WriteString(&buf, strconv.Itoa(p.Page))
	}
	if p.Limit != 0 {
		if buf.Len() > 0 {
			_, _ = io.WriteString(&buf, ", ")
		}
		_, _ = io.WriteString(&buf, "limit: ")
		_, _ = io.WriteString(&buf, strconv.Itoa(p.Limit))
	}
	return buf.String()
}
