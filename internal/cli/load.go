package cli

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/erm/pkg/erm"
	pkgio "github.com/matzehuels/erm/pkg/io"
)

// maxConcurrentReads bounds the number of documents read at once.
const maxConcurrentReads = 8

// loadTriplets reads every document in paths concurrently, then decodes and
// parses them in argument order. Entities are shared across documents, so a
// name mentioned in two files is one node.
func (c *CLI) loadTriplets(ctx context.Context, paths []string) ([]erm.Triplet, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	docs := make([]any, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := pkgio.ImportDocument(path)
			if err != nil {
				return err
			}
			logger.Debug("read document", "path", path)
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dec := pkgio.NewDecoder()
	parser := c.parser()
	triplets := []erm.Triplet{}
	for i, doc := range docs {
		model, err := dec.Decode(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", paths[i], err)
		}
		ts, err := parser.Parse(model)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", paths[i], err)
		}
		triplets = append(triplets, ts...)
	}

	prog.done(fmt.Sprintf("Parsed %d triplets from %d documents", len(triplets), len(paths)))
	return triplets, nil
}
