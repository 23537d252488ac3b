package pim_test

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	pim "github.com/llehouerou/go-pim-client"
	"github.com/llehouerou/go-pim-client/internal/logging"
)

// catalogSchema is a small PIM backend the generated documents are
// validated and executed against.
const catalogSchema = `
schema {
	query: Query
	mutation: Mutation
}
type Query {
	getProducts(filter: ProductFilterInput): [Product!]!
	getProduct(id: ID!): Product
	searchProducts(query: String!): [Product!]!
	getProductviewtemplates(filter: ProductviewtemplateFilterInput): [ProductViewTemplate!]!
	getBrands(categoryIds: [ID!]): [Brand!]!
}
type Mutation {
	createProduct(input: ProductInput!): Product
	updateProduct(id: ID!, input: ProductInput!): Product
	deleteProduct(id: ID!): DeleteResult!
}
input ProductFilterInput {
	status: String
	categoryId: ID
}
input ProductviewtemplateFilterInput {
	isDefault: Boolean
}
input ProductInput {
	name: String!
	sku: String
	description: String
	price: Float
	status: String
	categoryId: ID
	brandId: ID
}
type Product {
	id: ID!
	name: String!
	sku: String!
	description: String!
	price: Float
	status: String!
	category: Category
	brand: Brand
	createdAt: String!
	updatedAt: String!
}
type Category {
	id: ID!
	name: String!
}
type Brand {
	id: ID!
	name: String!
}
type DeleteResult {
	success: Boolean!
	message: String!
}
type ProductViewTemplate {
	id: ID!
	name: String!
	description: String!
	isDefault: Boolean!
	sections: [Section!]!
	createdAt: String!
	updatedAt: String!
}
type Section {
	id: ID!
	title: String!
	order: Int!
	attributes: [Attribute!]!
}
type Attribute {
	id: ID!
	name: String!
	type: String!
	required: Boolean!
	order: Int!
	options: [String!]!
}
`

type categoryRef struct {
	ID   graphql.ID
	Name string
}

type brandRef struct {
	ID   graphql.ID
	Name string
}

type product struct {
	ID          graphql.ID
	Name        string
	SKU         string
	Description string
	Price       *float64
	Status      string
	Category    *categoryRef
	Brand       *brandRef
	CreatedAt   string
	UpdatedAt   string
}

type productInput struct {
	Name        string
	SKU         *string
	Description *string
	Price       *float64
	Status      *string
	CategoryID  *graphql.ID
	BrandID     *graphql.ID
}

type productFilter struct {
	Status     *string
	CategoryID *graphql.ID
}

type templateFilter struct {
	IsDefault *bool
}

type deleteResult struct {
	Success bool
	Message string
}

type attribute struct {
	ID       graphql.ID
	Name     string
	Type     string
	Required bool
	Order    int32
	Options  []string
}

type section struct {
	ID         graphql.ID
	Title      string
	Order      int32
	Attributes []*attribute
}

type viewTemplate struct {
	ID          graphql.ID
	Name        string
	Description string
	IsDefault   bool
	Sections    []*section
	CreatedAt   string
	UpdatedAt   string
}

// catalogResolver is an in-memory backend. It records the category sets
// brands were requested for.
type catalogResolver struct {
	mu            sync.Mutex
	products      []*product
	templates     []*viewTemplate
	brands        map[string][]*brandRef
	brandRequests [][]string
	nextID        int
}

func newCatalogResolver() *catalogResolver {
	price := 89.9
	nike := &brandRef{ID: "b1", Name: "Nike"}
	acme := &brandRef{ID: "b2", Name: "Acme"}
	return &catalogResolver{
		products: []*product{
			{
				ID: "p1", Name: "Runner", SKU: "RUN-1", Description: "Running shoe",
				Price: &price, Status: "active",
				Category:  &categoryRef{ID: "sneakers", Name: "Sneakers"},
				Brand:     nike,
				CreatedAt: "2026-01-02", UpdatedAt: "2026-01-03",
			},
			{
				ID: "p2", Name: "Beanie", SKU: "HAT-7", Status: "draft",
				Category:  &categoryRef{ID: "hats", Name: "Hats"},
				Brand:     acme,
				CreatedAt: "2026-02-01", UpdatedAt: "2026-02-01",
			},
		},
		templates: []*viewTemplate{
			{
				ID: "t1", Name: "Default", IsDefault: true,
				Sections: []*section{
					{
						ID: "s1", Title: "General", Order: 1,
						Attributes: []*attribute{
							{ID: "a1", Name: "Name", Type: "text", Required: true, Order: 1, Options: []string{}},
							{ID: "a2", Name: "Color", Type: "picklist", Order: 2, Options: []string{"red", "blue"}},
						},
					},
				},
				CreatedAt: "2026-01-01", UpdatedAt: "2026-01-01",
			},
		},
		brands: map[string][]*brandRef{
			"sneakers": {nike},
			"hats":     {acme},
		},
		nextID: 3,
	}
}

func (r *catalogResolver) GetProducts(args struct{ Filter *productFilter }) []*product {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products
}

func (r *catalogResolver) GetProduct(args struct{ ID graphql.ID }) *product {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(args.ID)
}

func (r *catalogResolver) SearchProducts(args struct{ Query string }) []*product {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*product{}
	term := strings.ToLower(args.Query)
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), term) {
			out = append(out, p)
		}
	}
	return out
}

func (r *catalogResolver) GetProductviewtemplates(args struct{ Filter *templateFilter }) []*viewTemplate {
	return r.templates
}

func (r *catalogResolver) GetBrands(args struct{ CategoryIDs *[]graphql.ID }) []*brandRef {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []string
	if args.CategoryIDs != nil {
		for _, id := range *args.CategoryIDs {
			ids = append(ids, string(id))
		}
	}
	r.brandRequests = append(r.brandRequests, ids)

	seen := map[graphql.ID]bool{}
	out := []*brandRef{}
	for _, id := range ids {
		for _, b := range r.brands[id] {
			if !seen[b.ID] {
				seen[b.ID] = true
				out = append(out, b)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *catalogResolver) CreateProduct(args struct{ Input productInput }) *product {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := &product{
		ID:        graphql.ID("p" + strconv.Itoa(r.nextID)),
		CreatedAt: "2026-10-19",
	}
	r.nextID++
	apply(p, args.Input)
	r.products = append(r.products, p)
	return p
}

func (r *catalogResolver) UpdateProduct(args struct {
	ID    graphql.ID
	Input productInput
}) (*product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.find(args.ID)
	if p == nil {
		return nil, errors.New("product not found")
	}
	apply(p, args.Input)
	return p, nil
}

func (r *catalogResolver) DeleteProduct(args struct{ ID graphql.ID }) *deleteResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == args.ID {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return &deleteResult{Success: true, Message: "product deleted"}
		}
	}
	return &deleteResult{Success: false, Message: "product not found"}
}

func (r *catalogResolver) find(id graphql.ID) *product {
	for _, p := range r.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func apply(p *product, in productInput) {
	p.Name = in.Name
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		price := *in.Price
		p.Price = &price
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.CategoryID != nil {
		p.Category = &categoryRef{ID: *in.CategoryID, Name: string(*in.CategoryID)}
	}
	if in.BrandID != nil {
		p.Brand = &brandRef{ID: *in.BrandID, Name: string(*in.BrandID)}
	}
	p.UpdatedAt = "2026-10-19"
}

// newCatalogClient returns a client wired to a fresh in-memory backend.
func newCatalogClient() (*pim.Client, *catalogResolver) {
	resolver := newCatalogResolver()
	schema := graphql.MustParseSchema(catalogSchema, resolver, graphql.UseFieldResolvers())
	client := pim.NewClient(
		"/graphql",
		&http.Client{Transport: localRoundTripper{handler: &relay.Handler{Schema: schema}}},
	).WithLogger(logging.Discard())
	return client, resolver
}
