package pim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Category is the category reference embedded in a product.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Brand is a product brand.
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product is a catalog product. Fields not requested in the selection stay
// at their zero value.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Description string    `json:"description"`
	Price       *float64  `json:"price"`
	Status      string    `json:"status"`
	Category    *Category `json:"category"`
	Brand       *Brand    `json:"brand"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

// ProductInput is the ProductInput variable of the create and update
// mutations.
type ProductInput struct {
	Name        string   `json:"name"`
	SKU         string   `json:"sku,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Status      string   `json:"status,omitempty"`
	CategoryID  string   `json:"categoryId,omitempty"`
	BrandID     string   `json:"brandId,omitempty"`
}

// PageInfo is the pagination block of a paginated product list.
type PageInfo struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// ProductPage is one page of products.
type ProductPage struct {
	Products   []Product `json:"products"`
	Pagination PageInfo  `json:"pagination"`
}

// DeleteResult is the fixed payload of deleteProduct.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AttributeType is the editor type of a view-template attribute.
type AttributeType string

const (
	AttributeText     AttributeType = "text"
	AttributeTextarea AttributeType = "textarea"
	AttributeNumber   AttributeType = "number"
	AttributeBoolean  AttributeType = "boolean"
	AttributeDate     AttributeType = "date"
	// AttributePicklist is a dropdown limited to Options.
	AttributePicklist AttributeType = "picklist"
)

// Valid reports whether t is a known attribute type.
func (t AttributeType) Valid() bool {
	switch t {
	case AttributeText, AttributeTextarea, AttributeNumber,
		AttributeBoolean, AttributeDate, AttributePicklist:
		return true
	}
	return false
}

// Attribute is one editable field of a view-template section.
type Attribute struct {
	ID       string        `json:"id,omitempty"`
	Name     string        `json:"name"`
	Type     AttributeType `json:"type"`
	Required bool          `json:"required"`
	Order    int           `json:"order"`
	Options  []string      `json:"options,omitempty"`
}

// Section groups attributes of a view template.
type Section struct {
	ID         string      `json:"id,omitempty"`
	Title      string      `json:"title"`
	Order      int         `json:"order"`
	Attributes []Attribute `json:"attributes"`
}

// ViewTemplate is a named, ordered layout of sections and attributes
// defining the editable fields of a product.
type ViewTemplate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsDefault   bool      `json:"isDefault"`
	Sections    []Section `json:"sections"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

// ViewTemplateInput is the body of the create and update endpoints. ID is
// required for updates only.
type ViewTemplateInput struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsDefault   bool      `json:"isDefault"`
	Sections    []Section `json:"sections"`
}

// Input returns the update payload for t.
func (t ViewTemplate) Input() ViewTemplateInput {
	return ViewTemplateInput{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		IsDefault:   t.IsDefault,
		Sections:    t.Sections,
	}
}

// Validate reports every problem in the template at once.
func (in ViewTemplateInput) Validate() error {
	var result *multierror.Error

	if strings.TrimSpace(in.Name) == "" {
		result = multierror.Append(result, errors.New("name is required"))
	}
	for i, section := range in.Sections {
		if strings.TrimSpace(section.Title) == "" {
			result = multierror.Append(result, fmt.Errorf("section %d: title is required", i+1))
		}
		for j, attr := range section.Attributes {
			where := fmt.Sprintf("section %d attribute %d", i+1, j+1)
			if strings.TrimSpace(attr.Name) == "" {
				result = multierror.Append(result, fmt.Errorf("%s: name is required", where))
			}
			switch {
			case attr.Type == "":
				result = multierror.Append(result, fmt.Errorf("%s: type is required", where))
			case !attr.Type.Valid():
				result = multierror.Append(result, fmt.Errorf("%s: unknown type %q", where, attr.Type))
			case attr.Type == AttributePicklist && len(attr.Options) == 0:
				result = multierror.Append(result, fmt.Errorf("%s: picklist needs options", where))
			}
		}
	}

	return result.ErrorOrNil()
}

// MoveSection moves the section at index from to index to and renumbers
// every section's Order from 1.
func (t *ViewTemplate) MoveSection(from, to int) error {
	if err := move(t.Sections, from, to); err != nil {
		return fmt.Errorf("move section: %w", err)
	}
	for i := range t.Sections {
		t.Sections[i].Order = i + 1
	}
	return nil
}

// MoveAttribute moves the attribute at index from to index to and renumbers
// the section's attributes from 1.
func (s *Section) MoveAttribute(from, to int) error {
	if err := move(s.Attributes, from, to); err != nil {
		return fmt.Errorf("move attribute: %w", err)
	}
	for i := range s.Attributes {
		s.Attributes[i].Order = i + 1
	}
	return nil
}

func move[T any](items []T, from, to int) error {
	if from < 0 || from >= len(items) {
		return fmt.Errorf("index %d out of range [0,%d)", from, len(items))
	}
	if to < 0 || to >= len(items) {
		return fmt.Errorf("index %d out of range [0,%d)", to, len(items))
	}
	item := items[from]
	if from < to {
		copy(items[from:to], items[from+1:to+1])
	} else {
		copy(items[to+1:from+1], items[to:from])
	}
	items[to] = item
	return nil
}
