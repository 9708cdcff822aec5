package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/enrich/internal/chips"
	"github.com/zjrosen/enrich/internal/enrichment"
	"github.com/zjrosen/enrich/internal/flags"
	"github.com/zjrosen/enrich/internal/presentation"
)

// ErrCreateBlocked is returned when the checked tokens would disable Create.
var ErrCreateBlocked = errors.New("create would be blocked")

var checkJSON bool

var checkEmailsCmd = &cobra.Command{
	Use:   "check-emails <token>...",
	Short: "Validate objective tokens the way the modal does",
	Long: `Commit each token as a chip, in order, and print the resulting chips,
error state, message and whether Create would be enabled.

Exits non-zero when Create would be blocked. Duplicates only block when the
duplicates-block-create flag is on.

Examples:
  enrich check-emails ceo@wavenest.io cfo@wavenest.io
  enrich check-emails --json a@b.com bad`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state := chips.New(args...)
		canCreate := enrichment.CanCreate(state, flags.New(cfg.Flags))

		format := presentation.FormatText
		if checkJSON {
			format = presentation.FormatJSON
		}
		if err := presentation.NewFormatter(cmd.OutOrStdout(), format).
			FormatCheck(presentation.FromChips(state, canCreate)); err != nil {
			return err
		}
		if !canCreate {
			return fmt.Errorf("%w: %s", ErrCreateBlocked, state.Message())
		}
		return nil
	},
}

func init() {
	checkEmailsCmd.Flags().BoolVar(&checkJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(checkEmailsCmd)
}
