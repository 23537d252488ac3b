package main

import (
	"github.com/spf13/cobra"

	pim "github.com/llehouerou/go-pim-client"
	"github.com/llehouerou/go-pim-client/querybuilder"
)

var templateFields []string

var templatesCmd = &cobra.Command{
	Use:     "templates",
	Aliases: []string{"views"},
	Short:   "Manage product view templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List view templates",
	Long: `List view templates.

The fields "sections" and "attributes" both request the complete section
and attribute layout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if printOnly {
			return printDocument(cmd, querybuilder.BuildGetViewTemplatesQuery(fieldsFlag(templateFields), nil))
		}
		templates := pim.NewViewTemplateService(current.client, current.rest)
		list, err := templates.List(cmd.Context(), nil, templateFields...)
		if err != nil {
			return err
		}
		return writeJSON(cmd, list)
	},
}

var templatesDuplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Copy a view template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		templates := pim.NewViewTemplateService(current.client, current.rest)
		tpl, err := templates.Duplicate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd, tpl)
	},
}

func init() {
	templatesListCmd.Flags().StringArrayVarP(&templateFields, "field", "f", nil, "field to select (repeatable)")
	templatesCmd.AddCommand(templatesListCmd, templatesDuplicateCmd)
}
