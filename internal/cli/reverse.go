package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/erm/pkg/dict"
	pkgio "github.com/matzehuels/erm/pkg/io"
)

// reverseCommand creates the reverse command, which turns a one-to-many
// dictionary document into a many-to-one lookup.
func (c *CLI) reverseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reverse <file>",
		Short: "Reverse a one-to-many dictionary",
		Long: `Reverse a dictionary of string lists so every listed value maps back to
its key. A value listed under two keys is an error.

Example:
  erm reverse status-codes.yaml   # {"LABEL_CREATED": ["PU", "PX"]} -> {"PU": "LABEL_CREATED", ...}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			m, err := pkgio.ImportDictionary(args[0])
			if err != nil {
				return err
			}
			reversed, err := dict.ReverseOneToMany(m)
			if err != nil {
				return err
			}
			logger.Debug("reversed dictionary", "keys", len(m), "values", len(reversed))

			return c.writeDictionary(cmd.OutOrStdout(), cmd.ErrOrStderr(), reversed)
		},
	}
}
