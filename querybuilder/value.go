package querybuilder

import (
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// ErrUnsupportedValue is returned by FromAny for Go values that have no
// GraphQL literal form.
var ErrUnsupportedValue = errors.New("unsupported argument value")

// Value is a GraphQL argument literal. The set of implementations is closed:
// String, Int, Float, Boolean, Enum, List and Object.
type Value interface {
	writeLiteral(w io.Writer)
	// variable returns the value in the shape encoding/json sends as a
	// GraphQL variable.
	variable() any
}

type (
	String  string
	Int     int64
	Float   float64
	Boolean bool
	// Enum is written bare, e.g. ACTIVE.
	Enum string
	// List is written as [a, b].
	List []Value
	// Object is an input-object literal, written as { a: 1, b: "x" }.
	// Entries with a nil value are omitted.
	Object Arguments
)

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func (v String) writeLiteral(w io.Writer) {
	_, _ = io.WriteString(w, `"`)
	_, _ = io.WriteString(w, stringEscaper.Replace(string(v)))
	_, _ = io.WriteString(w, `"`)
}

func (v Int) writeLiteral(w io.Writer) {
	_, _ = io.WriteString(w, strconv.FormatInt(int64(v), 10))
}

// writeLiteral writes null for NaN and infinities, which GraphQL cannot
// represent.
func (v Float) writeLiteral(w io.Writer) {
	if !finite(float64(v)) {
		_, _ = io.WriteString(w, "null")
		return
	}
	_, _ = io.WriteString(w, strconv.FormatFloat(float64(v), 'g', -1, 64))
}

func (v Boolean) writeLiteral(w io.Writer) {
	_, _ = io.WriteString(w, strconv.FormatBool(bool(v)))
}

func (v Enum) writeLiteral(w io.Writer) {
	_, _ = io.WriteString(w, string(v))
}

func (v List) writeLiteral(w io.Writer) {
	_, _ = io.WriteString(w, "[")
	iter := 0
	for _, item := range v {
		if item == nil {
			continue
		}
		if iter != 0 {
			_, _ = io.WriteString(w, ", ")
		}
		iter++
		item.writeLiteral(w)
	}
	_, _ = io.WriteString(w, "]")
}

func (v Object) writeLiteral(w io.Writer) {
	_, _ = io.WriteString(w, "{ ")
	writeArguments(w, Arguments(v))
	_, _ = io.WriteString(w, " }")
}

func (v String) variable() any  { return string(v) }
func (v Int) variable() any     { return int64(v) }
func (v Boolean) variable() any { return bool(v) }
func (v Enum) variable() any    { return string(v) }

func (v Float) variable() any {
	if !finite(float64(v)) {
		return nil
	}
	return float64(v)
}

func (v List) variable() any {
	out := make([]any, 0, len(v))
	for _, item := range v {
		if item != nil {
			out = append(out, item.variable())
		}
	}
	return out
}

func (v Object) variable() any {
	return Arguments(v).Variables()
}

// Literal renders v as GraphQL literal text.
func Literal(v Value) string {
	if v == nil {
		return ""
	}
	var b strings.Builder
	v.writeLiteral(&b)
	return b.String()
}

// FromAny converts a loosely typed Go value into a Value.
//
// nil (including typed nil pointers) yields a nil Value, which argument
// builders omit. String-keyed maps become Objects with sorted keys; slices
// and arrays become Lists. Unsigned integers above math.MaxInt64, NaN,
// infinities and anything else without a GraphQL literal form return
// ErrUnsupportedValue.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Boolean(t), nil
	case int:
		return Int(t), nil
	case int8:
		return Int(t), nil
	case int16:
		return Int(t), nil
	case int32:
		return Int(t), nil
	case int64:
		return Int(t), nil
	case uint8:
		return Int(t), nil
	case uint16:
		return Int(t), nil
	case uint32:
		return Int(t), nil
	case float32:
		return floatValue(float64(t))
	case float64:
		return floatValue(t)
	case map[string]any:
		args, err := ArgumentsFromMap(t)
		if err != nil {
			return nil, err
		}
		return Object(args), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return nil, nil
		}
		return FromAny(rv.Elem().Interface())
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Boolean(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d overflows Int", ErrUnsupportedValue, u)
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return floatValue(rv.Float())
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			return nil, nil
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		args, err := ArgumentsFromMap(m)
		if err != nil {
			return nil, err
		}
		return Object(args), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		list := make(List, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("list item %d: %w", i, err)
			}
			list = append(list, item)
		}
		return list, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

func floatValue(f float64) (Value, error) {
	if !finite(f) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, f)
	}
	return Float(f), nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ArgumentsFromMap converts a map into Arguments ordered by key.
func ArgumentsFromMap(m map[string]any) (Arguments, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make(Arguments, 0, len(keys))
	for _, k := range keys {
		value, err := FromAny(m[k])
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", k, err)
		}
		args = append(args, Argument{Name: k, Value: value})
	}
	return args, nil
}

// ParseScalar guesses the literal type of a textual value, as typed on a
// command line: booleans, then integers, then finite floats, otherwise a
// string.
func ParseScalar(s string) Value {
	if s == "true" || s == "false" {
		return Boolean(s == "true")
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && finite(f) {
		return Float(f)
	}
	return String(s)
}
