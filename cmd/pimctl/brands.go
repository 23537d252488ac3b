package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pim "github.com/llehouerou/go-pim-client"
	"github.com/llehouerou/go-pim-client/catalog"
	"github.com/llehouerou/go-pim-client/querybuilder"
)

var (
	brandCategories []string
	brandTreeFile   string
)

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "List the brands of a set of categories",
	Long: `List the brands of a set of categories.

Categories are given by id with --category. With --tree, the ids are
toggled in the category tree read from that JSON file and the brands of
the selected leaf categories are listed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if printOnly {
			return printDocument(cmd, querybuilder.BuildGetBrandsQuery(nil))
		}

		ids := brandCategories
		if brandTreeFile != "" {
			var err error
			ids, err = selectLeaves(brandTreeFile, brandCategories)
			if err != nil {
				return err
			}
		}

		cache := pim.NewBrandCache(
			pim.NewBrandService(current.client),
			current.conf.BrandCacheSize,
			current.conf.BrandCacheTTL,
		)
		brands, err := cache.Brands(cmd.Context(), ids)
		if err != nil {
			return err
		}
		return writeJSON(cmd, brands)
	},
}

func selectLeaves(path string, ids []string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var roots []*catalog.Category
	if err := json.Unmarshal(data, &roots); err != nil {
		return nil, fmt.Errorf("read category tree %s: %w", path, err)
	}
	sel, err := catalog.NewSelection(roots)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if err := sel.Toggle(id); err != nil {
			return nil, err
		}
	}
	return sel.SelectedLeafIDs(), nil
}

func init() {
	brandsCmd.Flags().StringArrayVar(&brandCategories, "category", nil, "category id (repeatable)")
	brandsCmd.Flags().StringVar(&brandTreeFile, "tree", "", "JSON category tree to resolve --category against")
}
