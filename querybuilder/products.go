package querybuilder

import "strings"

// DefaultProductFields is the selection used when a product template is
// called with nil fields.
var DefaultProductFields = []string{
	"id",
	"name",
	"sku",
	"description",
	"price",
	"status",
	"category.id",
	"category.name",
	"brand.id",
	"brand.name",
	"createdAt",
	"updatedAt",
}

// PaginationSelection is the page metadata requested by
// BuildGetProductsPaginatedQuery.
const PaginationSelection = "pagination {\n      currentPage\n      totalPages\n      totalItems\n      itemsPerPage\n    }"

// BuildGetProductsQuery builds the product list query. The $filter
// declaration and the filter argument are only present when filter has at
// least one non-nil entry; callers must send a matching "filter" variable
// (see Arguments.Variables).
func BuildGetProductsQuery(fields []string, filter Arguments) string {
	d := document{
		operation: queryOperation,
		name:      "GetProducts",
		rootField: "getProducts",
		selection: BuildFields(fieldsOrDefault(fields, DefaultProductFields)),
	}
	if args := BuildFilterArgs(filter); args != "" {
		d.variables = "$filter: ProductFilterInput"
		d.arguments = "filter: { " + args + " }"
	}
	return d.String()
}

// BuildGetProductsPaginatedQuery builds the paginated product list query:
// the requested fields are wrapped in "products { ... }" next to the
// pagination metadata. The ($page: Int, $limit: Int) declaration is only
// present when p has a page or a limit.
func BuildGetProductsPaginatedQuery(fields []string, p Pagination) string {
	selection := BuildFields(fieldsOrDefault(fields, DefaultProductFields))
	selection = "products {\n      " +
		strings.ReplaceAll(selection, FieldSeparator, FieldSeparator+"  ") +
		"\n    }" + FieldSeparator + PaginationSelection

	d := document{
		operation: queryOperation,
		name:      "GetProductsPaginated",
		rootField: "getProducts",
		selection: selection,
	}
	if args := BuildPaginationArgs(p); args != "" {
		d.variables = "$page: Int, $limit: Int"
		d.arguments = args
	}
	return d.String()
}

// BuildGetProductQuery builds the get-by-id query; it takes an "id" variable.
func BuildGetProductQuery(fields []string) string {
	return document{
		operation: queryOperation,
		name:      "GetProduct",
		variables: "$id: ID!",
		rootField: "getProduct",
		arguments: "id: $id",
		selection: BuildFields(fieldsOrDefault(fields, DefaultProductFields)),
	}.String()
}

// BuildSearchProductsQuery builds the search query; it takes a "query"
// variable holding the search term.
func BuildSearchProductsQuery(fields []string) string {
	return document{
		operation: queryOperation,
		name:      "SearchProducts",
		variables: "$query: String!",
		rootField: "searchProducts",
		arguments: "query: $query",
		selection: BuildFields(fieldsOrDefault(fields, DefaultProductFields)),
	}.String()
}

// BuildCreateProductMutation takes an "input" variable.
func BuildCreateProductMutation(fields []string) string {
	return document{
		operation: mutationOperation,
		name:      "CreateProduct",
		variables: "$input: ProductInput!",
		rootField: "createProduct",
		arguments: "input: $input",
		selection: BuildFields(fieldsOrDefault(fields, DefaultProductFields)),
	}.String()
}

// BuildUpdateProductMutation takes "id" and "input" variables.
func BuildUpdateProductMutation(fields []string) string {
	return document{
		operation: mutationOperation,
		name:      "UpdateProduct",
		variables: "$id: ID!, $input: ProductInput!",
		rootField: "updateProduct",
		arguments: "id: $id, input: $input",
		selection: BuildFields(fieldsOrDefault(fields, DefaultProductFields)),
	}.String()
}

// BuildDeleteProductMutation takes an "id" variable. Its selection is fixed.
func BuildDeleteProductMutation() string {
	return document{
		operation: mutationOperation,
		name:      "DeleteProduct",
		variables: "$id: ID!",
		rootField: "deleteProduct",
		arguments: "id: $id",
		selection: BuildFields([]string{"success", "message"}),
	}.String()
}
