package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/go-pim-client/querybuilder"
)

func TestParseFilters(t *testing.T) {
	args, err := parseFilters([]string{"status=active", "featured=true", "stock=3", "status=draft", "q=a=b"})
	require.NoError(t, err)
	assert.Equal(t, `status: "draft", featured: true, stock: 3, q: "a=b"`, querybuilder.BuildFilterArgs(args))

	_, err = parseFilters([]string{"status"})
	assert.Error(t, err)
	_, err = parseFilters([]string{"=x"})
	assert.Error(t, err)
}

func TestSelectLeaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	tree := `[
		{"id": "apparel", "name": "Apparel", "children": [
			{"id": "shoes", "name": "Shoes"},
			{"id": "hats", "name": "Hats"}
		]},
		{"id": "toys", "name": "Toys"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(tree), 0o600))

	ids, err := selectLeaves(path, []string{"apparel", "toys"})
	require.NoError(t, err)
	assert.Equal(t, []string{"shoes", "hats", "toys"}, ids)

	_, err = selectLeaves(path, []string{"garden"})
	assert.Error(t, err)
}

func TestProductsListPrint(t *testing.T) {
	t.Setenv("PIM_GRAPHQL_URL", "http://pim.local/graphql")
	t.Setenv("PIM_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"products", "list", "--print", "-f", "id", "-f", "brand.name", "--filter", "status=active"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		printOnly = false
		productFields = nil
		productFilters = nil
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, `query GetProducts($filter: ProductFilterInput) {
  getProducts(filter: { status: "active" }) {
    id
    brand { name }
  }
}
`, out.String())
}
