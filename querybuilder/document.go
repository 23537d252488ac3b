package querybuilder

import (
	"bytes"
	"io"
)

type operationType string

const (
	queryOperation    operationType = "query"
	mutationOperation operationType = "mutation"
)

// document describes one generated operation with a single root field.
type document struct {
	operation operationType
	name      string
	// variables is the declaration list without parentheses, e.g.
	// "$id: ID!". Empty means no declaration.
	variables string
	rootField string
	// arguments is the root field argument list without parentheses.
	arguments string
	selection string
}

// String renders the operation:
//
//	query Name($v: T) {
//	  rootField(a: 1) {
//	    selection
//	  }
//	}
func (d document) String() string {
	var buf bytes.Buffer
	_, _ = io.WriteString(&buf, string(d.operation))
	_, _ = io.WriteString(&buf, " ")
	_, _ = io.WriteString(&buf, d.name)
	if d.variables != "" {
		_, _ = io.WriteString(&buf, "(")
		_, _ = io.WriteString(&buf, d.variables)
		_, _ = io.WriteString(&buf, ")")
	}
	_, _ = io.WriteString(&buf, " {\n  ")
	_, _ = io.WriteString(&buf, d.rootField)
	if d.arguments != "" {
		_, _ = io.WriteString(&buf, "(")
		_, _ = io.WriteString(&buf, d.arguments)
		_, _ = io.WriteString(&buf, ")")
	}
	_, _ = io.WriteString(&buf, " {\n    ")
	_, _ = io.WriteString(&buf, d.selection)
	_, _ = io.WriteString(&buf, "\n  }\n}")
	return buf.String()
}

// fieldsOrDefault returns fields, or defaults when fields is nil.
func fieldsOrDefault(fields, defaults []string) []string {
	if fields == nil {
		return defaults
	}
	return fields
}
