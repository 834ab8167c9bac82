package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/itchyny/gojq"

	errs "github.com/matzehuels/erm/pkg/errors"
)

// parseJQ compiles a --jq expression, reporting syntax errors as INVALID_INPUT.
func parseJQ(expr string) (*gojq.Query, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid --jq expression %q", expr)
	}
	return query, nil
}

// writeJQ runs the --jq expression over the JSON document produced by encode
// and writes one result per line. String results are written unquoted.
func (c *CLI) writeJQ(w io.Writer, encode func(io.Writer) error) error {
	query, err := parseJQ(c.Opts.JQ)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return err
	}
	var input any
	if err := json.Unmarshal(buf.Bytes(), &input); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	enc := json.NewEncoder(w)
	iter := query.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, isErr := v.(error); isErr {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "evaluate --jq expression")
		}
		if s, isString := v.(string); isString {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
			continue
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}
}
