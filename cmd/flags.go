package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zjrosen/enrich/internal/config"
	"github.com/zjrosen/enrich/internal/flags"
	"github.com/zjrosen/enrich/internal/presentation"
)

var flagsFormat string

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "List feature flags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := presentation.ParseFormat(flagsFormat)
		if err != nil {
			return err
		}
		return presentation.NewFormatter(cmd.OutOrStdout(), format).
			FormatFlags(presentation.FromFlags(flags.New(cfg.Flags)))
	},
}

var flagsSetCmd = &cobra.Command{
	Use:   "set <name> <true|false>",
	Short: "Turn a feature flag on or off in the config file",
	Long: `Write flags.<name> to the config file, keeping its comments. A running
enrich with auto_reload picks the change up immediately.

Example:
  enrich flags set duplicates-block-create true`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !flags.IsKnown(name) {
			return fmt.Errorf("unknown flag %q", name)
		}
		value, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("flag value must be true or false, got %q", args[1])
		}
		if err := config.SetFlag(configPath, name, value); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s = %t (%s)\n", name, value, configPath)
		return err
	},
}

func init() {
	flagsCmd.Flags().StringVarP(&flagsFormat, "format", "f", "text", "output format: text, json, yaml or markdown")
	flagsCmd.AddCommand(flagsSetCmd)
	rootCmd.AddCommand(flagsCmd)
}
