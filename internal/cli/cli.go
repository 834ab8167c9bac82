package cli

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/erm/pkg/buildinfo"
	errs "github.com/matzehuels/erm/pkg/errors"
	"github.com/matzehuels/erm/pkg/erm"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "erm"

	// envStrict overrides the --strict default when the flag is not given.
	envStrict = "ERM_STRICT"
)

// Output formats accepted by --format.
const (
	formatJSON    = "json"
	formatYAML    = "yaml"
	formatMsgpack = "msgpack"
	formatTable   = "table"
)

var outputFormats = []string{formatJSON, formatYAML, formatMsgpack, formatTable}

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// Options holds the flags shared by every command.
type Options struct {
	Verbose bool   // debug logging
	Strict  bool   // reject unglyphed relationship names
	Format  string // output format: json, yaml, msgpack or table
	Output  string // output file (stdout if empty)
	JQ      string // jq expression applied to the JSON output
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Opts   Options
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	setCLIDefaults(&c.Opts)
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "erm flattens entity-relationship literals into triplets",
		Long: `erm reads entity-relationship model literals from JSON, YAML or TOML
documents, flattens them into (source, edge, target) triplets and queries
the result by relationship name or entity.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.prepare,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.Opts.Verbose, "verbose", "v", c.Opts.Verbose, "enable verbose logging")
	flags.BoolVar(&c.Opts.Strict, "strict", c.Opts.Strict, "reject relationship names without a direction glyph (env "+envStrict+")")
	flags.StringVarP(&c.Opts.Format, "format", "f", c.Opts.Format, "output format: json, yaml, msgpack or table")
	flags.StringVarP(&c.Opts.Output, "output", "o", c.Opts.Output, "output file (stdout if empty)")
	flags.StringVar(&c.Opts.JQ, "jq", c.Opts.JQ, "filter the JSON output with a jq expression")

	root.AddCommand(c.parseCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.reverseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// prepare resolves environment overrides, validates shared flags and
// attaches the logger to the command context.
func (c *CLI) prepare(cmd *cobra.Command, _ []string) error {
	if c.Opts.Verbose {
		c.SetLogLevel(LogDebug)
	}

	if v, ok := os.LookupEnv(envStrict); ok && !cmd.Flags().Changed("strict") {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "%s=%q is not a boolean", envStrict, v)
		}
		c.Opts.Strict = strict
	}

	if err := errs.ValidateFormat(c.Opts.Format, outputFormats...); err != nil {
		return err
	}
	c.Opts.Format = strings.ToLower(c.Opts.Format)
	if c.Opts.JQ != "" {
		if _, err := parseJQ(c.Opts.JQ); err != nil {
			return err
		}
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// parser returns a parser configured from the shared flags.
func (c *CLI) parser() *erm.Parser {
	return erm.NewParser(erm.Options{Strict: c.Opts.Strict, Logger: c.Logger})
}

// =============================================================================
// Options Helpers
// =============================================================================

// setCLIDefaults fills in defaults for options left at their zero value.
func setCLIDefaults(opts *Options) {
	if opts.Format == "" {
		opts.Format = formatJSON
	}
}
