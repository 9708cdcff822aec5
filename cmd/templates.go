package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/enrich/internal/enrichment"
	"github.com/zjrosen/enrich/internal/presentation"
)

var templatesFormat string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List enrichment templates",
	Long: `List the enrichment templates offered by the "+" menu.

Examples:
  enrich templates
  enrich templates --format json | jq '.[].title'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := presentation.ParseFormat(templatesFormat)
		if err != nil {
			return err
		}
		return presentation.NewFormatter(cmd.OutOrStdout(), format).
			FormatTemplates(presentation.FromTemplates(enrichment.Templates()))
	},
}

func init() {
	templatesCmd.Flags().StringVarP(&templatesFormat, "format", "f", "text", "output format: text, json, yaml or markdown")
	rootCmd.AddCommand(templatesCmd)
}
