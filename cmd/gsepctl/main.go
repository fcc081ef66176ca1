package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gsepctl",
		Short:         "Inspect and report on saved GSEP plan files",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(reportCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(totalsCmd())
	root.AddCommand(schemaCmd())
	return root
}

func reportCmd() *cobra.Command {
	var (
		project string
		format  string
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "report [plan-file]",
		Short: "Render the flat report of one or every project in a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.OutOrStdout(), args[0], project, format, outDir)
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id or name (default: every project)")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv, table or summary")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write one file per project into this directory")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Check that a plan file can be opened and list missing required fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0])
		},
	}
}

func totalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "totals [plan-file]",
		Short: "Display replaced length and annual usage totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTotals(cmd.OutOrStdout(), args[0])
		},
	}
}

func schemaCmd() *cobra.Command {
	var (
		format   string
		table    string
		template bool
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the relational layout of a plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchema(cmd.OutOrStdout(), format, table, template)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&table, "table", "t", "", "only this table (name or title)")
	cmd.Flags().BoolVar(&template, "template", false, "print the CSV header template of --table")
	return cmd
}
