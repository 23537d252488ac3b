package pim

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/llehouerou/go-pim-client/querybuilder"
	"github.com/llehouerou/go-pim-client/types"
)

// ViewTemplateService lists view templates over GraphQL and changes them
// over the REST API.
type ViewTemplateService struct {
	client *Client
	rest   *RESTClient
}

// NewViewTemplateService returns a ViewTemplateService.
func NewViewTemplateService(client *Client, rest *RESTClient) *ViewTemplateService {
	return &ViewTemplateService{client: client, rest: rest}
}

// List returns the view templates matching filter. The shorthand fields
// "sections" and "attributes" request the full section layout.
func (s *ViewTemplateService) List(
	ctx context.Context,
	filter querybuilder.Arguments,
	fields ...string,
) ([]ViewTemplate, error) {
	query := querybuilder.BuildGetViewTemplatesQuery(selection(fields), filter)

	var variables map[string]any
	if querybuilder.BuildFilterArgs(filter) != "" {
		variables = map[string]any{"filter": filter.Variables()}
	}

	var out struct {
		Templates []ViewTemplate `json:"getProductviewtemplates"`
	}
	if err := s.client.Exec(ctx, query, &out, variables); err != nil {
		return nil, fmt.Errorf("list view templates: %w", err)
	}
	return out.Templates, nil
}

// Create validates and creates a view template.
func (s *ViewTemplateService) Create(ctx context.Context, in ViewTemplateInput) (*ViewTemplate, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("create view template: %w", err)
	}
	var out ViewTemplate
	if err := s.rest.Post(ctx, types.ViewsPath, in, &out); err != nil {
		return nil, fmt.Errorf("create view template: %w", err)
	}
	return &out, nil
}

// Update validates and saves an existing view template.
func (s *ViewTemplateService) Update(ctx context.Context, in ViewTemplateInput) (*ViewTemplate, error) {
	if in.ID == "" {
		return nil, errors.New("update view template: id is required")
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("update view template %s: %w", in.ID, err)
	}
	var out ViewTemplate
	if err := s.rest.Post(ctx, types.ViewsUpdatePath, in, &out); err != nil {
		return nil, fmt.Errorf("update view template %s: %w", in.ID, err)
	}
	return &out, nil
}

// Duplicate copies view template id and returns the copy.
func (s *ViewTemplateService) Duplicate(ctx context.Context, id string) (*ViewTemplate, error) {
	if id == "" {
		return nil, errors.New("duplicate view template: id is required")
	}
	var out ViewTemplate
	if err := s.rest.Post(ctx, types.ViewsDuplicatePath+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("duplicate view template %s: %w", id, err)
	}
	return &out, nil
}
