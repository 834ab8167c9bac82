package cli

import (
	"slices"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/erm/pkg/errors"
	"github.com/matzehuels/erm/pkg/erm"
	"github.com/matzehuels/erm/pkg/filter"
)

// queryOpts holds the command-line flags shared by the query subcommands.
type queryOpts struct {
	files   []string // model documents to load
	exclude []string // relationship names to drop (node queries only)
}

// queryCommand creates the query command with one subcommand per query kind.
func (c *CLI) queryCommand() *cobra.Command {
	var opts queryOpts

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter triplets by relationship name or entity",
		Long: `Filter the triplets of one or more model documents.

Examples:
  erm query name Uses -m bank.yaml                    # Triplets with a "Uses" edge
  erm query node "Mainframe" -m bank.yaml             # Edges touching one entity
  erm query nodes A B C -m bank.yaml --exclude Reads  # Edges among a set of entities`,
	}

	cmd.PersistentFlags().StringSliceVarP(&opts.files, "model", "m", nil, "model document (repeatable)")
	cmd.PersistentFlags().StringSliceVar(&opts.exclude, "exclude", nil, "relationship names to exclude (node queries)")
	_ = cmd.MarkPersistentFlagRequired("model")

	cmd.AddCommand(c.queryNameCommand(&opts))
	cmd.AddCommand(c.queryNodeCommand(&opts))
	cmd.AddCommand(c.queryNodesCommand(&opts))

	return cmd
}

func (c *CLI) queryNameCommand(opts *queryOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "name <relationship>",
		Short: "Keep triplets carrying a relationship name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd, opts, func(ts []erm.Triplet) ([]erm.Triplet, error) {
				return erm.EdgesOfName(args[0], ts), nil
			})
		},
	}
}

func (c *CLI) queryNodeCommand(opts *queryOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "node <entity>",
		Short: "Keep triplets touching one entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd, opts, func(ts []erm.Triplet) ([]erm.Triplet, error) {
				node := findEntity(args[0], ts)
				if node == nil {
					return nil, errs.New(errs.ErrCodeInvalidInput, "no entity named %q", args[0])
				}
				return erm.EdgesOfNode(filter.Compact(opts.exclude), node, ts), nil
			})
		},
	}
}

func (c *CLI) queryNodesCommand(opts *queryOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "nodes <entity>...",
		Short: "Keep triplets whose both ends lie within a set of entities",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd, opts, func(ts []erm.Triplet) ([]erm.Triplet, error) {
				names := filter.Compact(args)
				nodes := make([]*erm.Entity, 0, len(names))
				for _, name := range names {
					if e := findEntity(name, ts); e != nil {
						nodes = append(nodes, e)
					} else {
						loggerFromContext(cmd.Context()).Warn("entity not found", "name", name)
					}
				}
				return erm.EdgesOfNodes(filter.Compact(opts.exclude), nodes, ts), nil
			})
		},
	}
}

func (c *CLI) runQuery(cmd *cobra.Command, opts *queryOpts, query func([]erm.Triplet) ([]erm.Triplet, error)) error {
	ctx := cmd.Context()
	triplets, err := c.loadTriplets(ctx, filter.Compact(opts.files))
	if err != nil {
		return err
	}
	matched, err := query(triplets)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("query matched", "triplets", len(matched), "of", len(triplets))
	return c.writeTriplets(cmd.OutOrStdout(), cmd.ErrOrStderr(), matched)
}

// findEntity returns the first entity named name among the triplets' endpoints.
func findEntity(name string, triplets []erm.Triplet) *erm.Entity {
	named := func(e *erm.Entity) bool { return e.Name == name }
	for _, t := range triplets {
		for _, ep := range []erm.Endpoint{t.Source, t.Target} {
			items := ep.Items()
			if i := slices.IndexFunc(items, named); i >= 0 {
				return items[i]
			}
		}
	}
	return nil
}
