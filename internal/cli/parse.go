package cli

import (
	"github.com/spf13/cobra"
)

// parseCommand creates the parse command, which flattens model documents
// into triplets.
func (c *CLI) parseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>...",
		Short: "Flatten model documents into triplets",
		Long: `Flatten one or more model documents into (source, edge, target) triplets.

Documents are JSON, YAML or TOML, chosen by file extension. Entities with the
same name are the same node across all given documents, and triplets are
listed in argument order.

Examples:
  erm parse model.json                  # JSON triplets on stdout
  erm parse -f table context.yaml c.yml # Tabular view of two documents
  erm parse --strict -o out.yaml m.toml # Reject unglyphed names, write YAML`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			triplets, err := c.loadTriplets(cmd.Context(), args)
			if err != nil {
				return err
			}
			return c.writeTriplets(cmd.OutOrStdout(), cmd.ErrOrStderr(), triplets)
		},
	}
}
