package querybuilder

// DefaultViewTemplateFields is the selection used when the view-template
// query is called with nil fields. "sections" is expanded by ExpandFields.
var DefaultViewTemplateFields = []string{
	"id",
	"name",
	"description",
	"isDefault",
	ShorthandSections,
	"createdAt",
	"updatedAt",
}

// BuildGetViewTemplatesQuery builds the view-template list query. Fields are
// passed through ExpandFields first. As with products, the $filter
// declaration only appears when filter has a non-nil entry.
func BuildGetViewTemplatesQuery(fields []string, filter Arguments) string {
	d := document{
		operation: queryOperation,
		name:      "GetProductviewtemplates",
		rootField: "getProductviewtemplates",
		selection: BuildFields(ExpandFields(fieldsOrDefault(fields, DefaultViewTemplateFields))),
	}
	if args := BuildFilterArgs(filter); args != "" {
		d.variables = "$filter: ProductviewtemplateFilterInput"
		d.arguments = "filter: { " + args + " }"
	}
	return d.String()
}

// DefaultBrandFields is the selection used by BuildGetBrandsQuery for nil
// fields.
var DefaultBrandFields = []string{"id", "name"}

// BuildGetBrandsQuery builds the brand lookup for a set of categories; it
// takes a "categoryIds" variable.
func BuildGetBrandsQuery(fields []string) string {
	return document{
		operation: queryOperation,
		name:      "GetBrands",
		variables: "$categoryIds: [ID!]",
		rootField: "getBrands",
		arguments: "categoryIds: $categoryIds",
		selection: BuildFields(fieldsOrDefault(fields, DefaultBrandFields)),
	}.String()
}
