package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/erm/pkg/erm"
	pkgio "github.com/matzehuels/erm/pkg/io"
)

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns w when path is empty and the created file otherwise.
func openOutput(w io.Writer, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{w}, nil
	}
	return os.Create(path)
}

// writeAndClose runs write against out and closes it. A write error takes
// precedence over the close error.
func writeAndClose(out io.WriteCloser, write func(io.Writer) error) error {
	err := write(out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	return err
}

// writeTriplets writes triplets to the configured output. A --jq expression
// takes precedence over --format.
func (c *CLI) writeTriplets(stdout, stderr io.Writer, triplets []erm.Triplet) error {
	if c.Opts.JQ == "" && c.Opts.Format == formatTable && len(triplets) == 0 {
		printWarning(stderr, "no triplets")
		return nil
	}

	out, err := openOutput(stdout, c.Opts.Output)
	if err != nil {
		return err
	}
	err = writeAndClose(out, func(w io.Writer) error {
		switch {
		case c.Opts.JQ != "":
			return c.writeJQ(w, func(w io.Writer) error { return pkgio.WriteJSON(triplets, w) })
		case c.Opts.Format == formatTable:
			_, err := fmt.Fprintln(w, tripletTable(triplets))
			return err
		default:
			return pkgio.Write(triplets, w, pkgio.Format(c.Opts.Format))
		}
	})
	if err != nil {
		return err
	}

	c.reportOutput(stderr, fmt.Sprintf("Wrote %d triplets", len(triplets)))
	return nil
}

// writeDictionary writes a reversed dictionary with keys in sorted order.
func (c *CLI) writeDictionary(stdout, stderr io.Writer, dict map[string]string) error {
	out, err := openOutput(stdout, c.Opts.Output)
	if err != nil {
		return err
	}

	encodeJSON := func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dict)
	}

	err = writeAndClose(out, func(w io.Writer) error {
		switch {
		case c.Opts.JQ != "":
			return c.writeJQ(w, encodeJSON)
		case c.Opts.Format == formatTable:
			rows := make([][]string, 0, len(dict))
			for _, k := range slices.Sorted(maps.Keys(dict)) {
				rows = append(rows, []string{k, dict[k]})
			}
			_, err := fmt.Fprintln(w, renderTable([]string{"Value", "Key"}, rows))
			return err
		case c.Opts.Format == formatYAML:
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(dict); err != nil {
				return err
			}
			return enc.Close()
		case c.Opts.Format == formatMsgpack:
			enc := msgpack.NewEncoder(w)
			enc.SetSortMapKeys(true)
			return enc.Encode(dict)
		default:
			return encodeJSON(w)
		}
	})
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	c.reportOutput(stderr, fmt.Sprintf("Wrote %d entries", len(dict)))
	return nil
}

func (c *CLI) reportOutput(stderr io.Writer, msg string) {
	if c.Opts.Output == "" {
		return
	}
	printSuccess(stderr, "%s", msg)
	printFile(stderr, c.Opts.Output)
}

func tripletTable(triplets []erm.Triplet) string {
	rows := make([][]string, len(triplets))
	for i, t := range triplets {
		rows[i] = []string{t.Source.String(), t.Edge.String(), t.Target.String()}
	}
	return renderTable([]string{"Source", "Edge", "Target"}, rows)
}
