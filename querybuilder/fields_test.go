package querybuilder

import (
	"reflect"
	"testing"
)

func TestBuildFields(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{
			name:   "empty input",
			fields: nil,
			want:   "",
		},
		{
			name:   "simple fields keep order",
			fields: []string{"id", "name"},
			want:   "id\n    name",
		},
		{
			name:   "dot-paths collapse after simple fields",
			fields: []string{"category.id", "category.name", "id"},
			want:   "id\n    category { id name }",
		},
		{
			name:   "pass-through is verbatim",
			fields: []string{"sections { id }"},
			want:   "sections { id }",
		},
		{
			name:   "children are deduplicated",
			fields: []string{"category.id", "category.id", "category.name", "category.id"},
			want:   "category { id name }",
		},
		{
			name:   "parents keep discovery order",
			fields: []string{"brand.id", "category.id", "brand.name", "sku"},
			want:   "sku\n    brand { id name }\n    category { id }",
		},
		{
			name:   "pass-through and simple keep relative order",
			fields: []string{"id", "sections { id }", "brand.id", "name"},
			want:   "id\n    sections { id }\n    name\n    brand { id }",
		},
		{
			name:   "only the first dot splits",
			fields: []string{"a.b.c", "a.d"},
			want:   "a { b.c d }",
		},
		{
			name:   "empty descriptors are skipped",
			fields: []string{"", "id", ""},
			want:   "id",
		},
		{
			name:   "simple duplicates are kept as given",
			fields: []string{"id", "id"},
			want:   "id\n    id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFields(tt.fields)
			if got != tt.want {
				t.Errorf("BuildFields(%q)\n got: %q\nwant: %q", tt.fields, got, tt.want)
			}
		})
	}
}

func TestBuildFields_doesNotModifyInput(t *testing.T) {
	fields := []string{"category.id", "id"}
	_ = BuildFields(fields)
	if !reflect.DeepEqual(fields, []string{"category.id", "id"}) {
		t.Errorf("input was modified: %q", fields)
	}
}

func TestExpandFields(t *testing.T) {
	t.Run("shorthands expand to the canonical block", func(t *testing.T) {
		got := ExpandFields([]string{"id", "sections", "attributes"})
		want := []string{"id", SectionsSelection, SectionsSelection}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("other descriptors pass through", func(t *testing.T) {
		in := []string{"name", "sections { id }", "category.id", "Sections"}
		got := ExpandFields(in)
		if !reflect.DeepEqual(got, in) {
			t.Errorf("expected %q, got %q", in, got)
		}
	})

	t.Run("expansion is idempotent", func(t *testing.T) {
		once := ExpandFields([]string{"id", "sections"})
		twice := ExpandFields(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("expected %q, got %q", once, twice)
		}
	})

	t.Run("nil stays nil", func(t *testing.T) {
		if got := ExpandFields(nil); got != nil {
			t.Errorf("expected nil, got %q", got)
		}
	})

	t.Run("input is not modified", func(t *testing.T) {
		in := []string{"sections"}
		_ = ExpandFields(in)
		if in[0] != "sections" {
			t.Errorf("input was modified: %q", in)
		}
	})
}

func TestSectionsSelection(t *testing.T) {
	want := "sections { id title order attributes { id name type required order options } }"
	if SectionsSelection != want {
		t.Errorf("expected %q, got %q", want, SectionsSelection)
	}
}
