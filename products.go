package pim

import (
	"context"
	"errors"
	"fmt"

	"github.com/llehouerou/go-pim-client/querybuilder"
)

// ErrOperationFailed is returned when a mutation reports success: false.
var ErrOperationFailed = errors.New("operation failed")

// ProductService runs the product queries and mutations. Every method takes
// an optional field selection; without one the default product fields are
// requested.
type ProductService struct {
	client *Client
}

// NewProductService returns a ProductService sending through client.
func NewProductService(client *Client) *ProductService {
	return &ProductService{client: client}
}

// List returns the products matching filter. Entries with a nil value are
// not sent.
func (s *ProductService) List(
	ctx context.Context,
	filter querybuilder.Arguments,
	fields ...string,
) ([]Product, error) {
	query := querybuilder.BuildGetProductsQuery(selection(fields), filter)

	var variables map[string]any
	if querybuilder.BuildFilterArgs(filter) != "" {
		variables = map[string]any{"filter": filter.Variables()}
	}

	var out struct {
		GetProducts []Product `json:"getProducts"`
	}
	if err := s.client.Exec(ctx, query, &out, variables); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out.GetProducts, nil
}

// ListPaginated returns one page of products.
func (s *ProductService) ListPaginated(
	ctx context.Context,
	p querybuilder.Pagination,
	fields ...string,
) (*ProductPage, error) {
	query := querybuilder.BuildGetProductsPaginatedQuery(selection(fields), p)

	var out struct {
		GetProducts ProductPage `json:"getProducts"`
	}
	if err := s.client.Exec(ctx, query, &out, p.Variables()); err != nil {
		return nil, fmt.Errorf("list products page: %w", err)
	}
	return &out.GetProducts, nil
}

// Get returns the product with the given id, or an error matching
// ErrNotFound.
func (s *ProductService) Get(ctx context.Context, id string, fields ...string) (*Product, error) {
	query := querybuilder.BuildGetProductQuery(selection(fields))

	var out struct {
		GetProduct *Product `json:"getProduct"`
	}
	if err := s.client.Exec(ctx, query, &out, map[string]any{"id": id}); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	if out.GetProduct == nil {
		return nil, fmt.Errorf("get product %s: %w", id, ErrNotFound)
	}
	return out.GetProduct, nil
}

// Search returns the products matching term.
func (s *ProductService) Search(ctx context.Context, term string, fields ...string) ([]Product, error) {
	query := querybuilder.BuildSearchProductsQuery(selection(fields))

	var out struct {
		SearchProducts []Product `json:"searchProducts"`
	}
	if err := s.client.Exec(ctx, query, &out, map[string]any{"query": term}); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return out.SearchProducts, nil
}

// Create creates a product and returns it as selected by fields.
func (s *ProductService) Create(
	ctx context.Context,
	input ProductInput,
	fields ...string,
) (*Product, error) {
	query := querybuilder.BuildCreateProductMutation(selection(fields))

	var out struct {
		CreateProduct *Product `json:"createProduct"`
	}
	if err := s.client.Exec(ctx, query, &out, map[string]any{"input": input}); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return out.CreateProduct, nil
}

// Update replaces the fields of product id set in input.
func (s *ProductService) Update(
	ctx context.Context,
	id string,
	input ProductInput,
	fields ...string,
) (*Product, error) {
	query := querybuilder.BuildUpdateProductMutation(selection(fields))

	var out struct {
		UpdateProduct *Product `json:"updateProduct"`
	}
	variables := map[string]any{"id": id, "input": input}
	if err := s.client.Exec(ctx, query, &out, variables); err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return out.UpdateProduct, nil
}

// Delete deletes product id. A result with Success false is returned along
// with an error matching ErrOperationFailed.
func (s *ProductService) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	query := querybuilder.BuildDeleteProductMutation()

	var out struct {
		DeleteProduct DeleteResult `json:"deleteProduct"`
	}
	if err := s.client.Exec(ctx, query, &out, map[string]any{"id": id}); err != nil {
		return nil, fmt.Errorf("delete product %s: %w", id, err)
	}
	if !out.DeleteProduct.Success {
		return &out.DeleteProduct, fmt.Errorf("delete product %s: %w: %s", id, ErrOperationFailed, out.DeleteProduct.Message)
	}
	return &out.DeleteProduct, nil
}

// selection maps an empty variadic field list to nil so the templates fall
// back to their defaults.
func selection(fields []string) []string {
	if len(fields) == 0 {
		return nil
	}
	return fields
}
