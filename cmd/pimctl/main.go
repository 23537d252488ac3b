// Command pimctl queries and edits a PIM backend from the command line.
//
// Connection settings come from PIM_* environment variables (see
// internal/config). With --print, commands write the generated GraphQL
// document instead of sending it.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	pim "github.com/llehouerou/go-pim-client"
	"github.com/llehouerou/go-pim-client/internal/config"
	"github.com/llehouerou/go-pim-client/internal/logging"
)

// app holds the clients shared by every command.
type app struct {
	conf   *config.Config
	client *pim.Client
	rest   *pim.RESTClient
}

var (
	current   app
	printOnly bool
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:           "pimctl",
	Short:         "PIM command line client",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.Load()
		if err != nil {
			return err
		}
		if debug {
			conf.Debug = true
			conf.LogLevel = "debug"
		}
		if err := logging.SetLevel(conf.LogLevel); err != nil {
			return fmt.Errorf("invalid PIM_LOG_LEVEL: %w", err)
		}
		logging.SetOutput(cmd.ErrOrStderr())
		current = newApp(conf)
		return nil
	},
}

func newApp(conf *config.Config) app {
	httpClient := &http.Client{Timeout: conf.Timeout}
	client := pim.NewClient(conf.GraphQLURL, httpClient).
		WithDebug(conf.Debug).
		WithRetry(conf.RetryCount)
	rest := pim.NewRESTClient(conf.APIURL, httpClient).
		WithRetry(conf.RetryCount)
	if conf.OrganizationID != "" {
		client = client.WithOrganization(conf.OrganizationID)
		rest = rest.WithOrganization(conf.OrganizationID)
	}
	return app{conf: conf, client: client, rest: rest}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&printOnly, "print", false, "print the GraphQL document instead of sending it")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log requests and attach HTTP dumps to errors")
	rootCmd.AddCommand(productsCmd, templatesCmd, brandsCmd, workspaceCmd)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
