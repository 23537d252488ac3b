package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	pim "github.com/llehouerou/go-pim-client"
	"github.com/llehouerou/go-pim-client/querybuilder"
)

var productFields []string

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List, search and delete products",
}

var (
	productFilters []string
	productPage    int
	productLimit   int
)

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Long: `List products, optionally filtered and paginated.

Filters are key=value pairs; values are typed as booleans, numbers or
strings, e.g. --filter status=active --filter featured=true.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := parseFilters(productFilters)
		if err != nil {
			return err
		}
		products := pim.NewProductService(current.client)
		paginated := productPage != 0 || productLimit != 0

		if paginated {
			if len(filter) > 0 {
				return errors.New("--filter cannot be combined with --page or --limit")
			}
			p := querybuilder.Pagination{Page: productPage, Limit: productLimit}
			if printOnly {
				return printDocument(cmd, querybuilder.BuildGetProductsPaginatedQuery(fieldsFlag(productFields), p))
			}
			page, err := products.ListPaginated(cmd.Context(), p, productFields...)
			if err != nil {
				return err
			}
			return writeJSON(cmd, page)
		}

		if printOnly {
			return printDocument(cmd, querybuilder.BuildGetProductsQuery(fieldsFlag(productFields), filter))
		}
		list, err := products.List(cmd.Context(), filter, productFields...)
		if err != nil {
			return err
		}
		return writeJSON(cmd, list)
	},
}

var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if printOnly {
			return printDocument(cmd, querybuilder.BuildGetProductQuery(fieldsFlag(productFields)))
		}
		p, err := pim.NewProductService(current.client).Get(cmd.Context(), args[0], productFields...)
		if err != nil {
			return err
		}
		return writeJSON(cmd, p)
	},
}

var productsSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search products by text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if printOnly {
			return printDocument(cmd, querybuilder.BuildSearchProductsQuery(fieldsFlag(productFields)))
		}
		list, err := pim.NewProductService(current.client).Search(cmd.Context(), args[0], productFields...)
		if err != nil {
			return err
		}
		return writeJSON(cmd, list)
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if printOnly {
			return printDocument(cmd, querybuilder.BuildDeleteProductMutation())
		}
		res, err := pim.NewProductService(current.client).Delete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd, res)
	},
}

func init() {
	productsCmd.PersistentFlags().StringArrayVarP(&productFields, "field", "f", nil,
		`field to select; "parent.child" nests, "a { b }" is sent as-is (repeatable)`)

	productsListCmd.Flags().StringArrayVar(&productFilters, "filter", nil, "filter as key=value (repeatable)")
	productsListCmd.Flags().IntVar(&productPage, "page", 0, "page number")
	productsListCmd.Flags().IntVar(&productLimit, "limit", 0, "page size")

	productsCmd.AddCommand(productsListCmd, productsGetCmd, productsSearchCmd, productsDeleteCmd)
}

// parseFilters turns key=value flags into filter arguments, in flag order.
func parseFilters(raw []string) (querybuilder.Arguments, error) {
	var args querybuilder.Arguments
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q, want key=value", kv)
		}
		args = args.Set(key, querybuilder.ParseScalar(value))
	}
	return args, nil
}

// fieldsFlag maps an unset --field flag to nil so the default selection is
// used.
func fieldsFlag(fields []string) []string {
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func printDocument(cmd *cobra.Command, document string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), document)
	return err
}
