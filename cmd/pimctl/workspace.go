package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pim "github.com/llehouerou/go-pim-client"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Workspace utilities",
}

var workspaceCheckNameCmd = &cobra.Command{
	Use:   "check-name <name>...",
	Short: "Check whether workspace names are available",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := pim.NewNameChecker(current.rest.WorkspaceNameAvailable, func(res pim.NameAvailability) {
			state := "taken"
			if res.Available {
				state = "available"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", res.Name, state)
		})
		for _, name := range args {
			if _, err := checker.Check(cmd.Context(), name); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	workspaceCmd.AddCommand(workspaceCheckNameCmd)
}
