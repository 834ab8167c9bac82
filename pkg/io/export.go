package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/erm/pkg/errors"
	"github.com/matzehuels/erm/pkg/erm"
)

type document struct {
	Triplets []erm.Triplet `json:"triplets" yaml:"triplets" msgpack:"triplets"`
}

// Write encodes triplets in the given format and writes them to w.
// JSON, YAML and MessagePack are supported for output.
func Write(triplets []erm.Triplet, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(triplets, w)
	case FormatYAML:
		return WriteYAML(triplets, w)
	case FormatMsgpack:
		return WriteMsgpack(triplets, w)
	default:
		return errs.New(errs.ErrCodeUnsupported, "cannot write triplets as %q", f)
	}
}

// WriteJSON encodes triplets as an indented JSON document:
//
//	{"triplets": [{"source": {"name": "A"}, "edge": "uses", "target": {"name": "B"}}]}
//
// Single-valued endpoints and edges are written as scalars, multi-valued ones
// as arrays.
func WriteJSON(triplets []erm.Triplet, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newDocument(triplets)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes triplets as a YAML document with the same shape as [WriteJSON].
func WriteYAML(triplets []erm.Triplet, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(triplets)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// WriteMsgpack encodes triplets as a MessagePack document with the same shape
// as [WriteJSON].
func WriteMsgpack(triplets []erm.Triplet, w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(newDocument(triplets)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Export writes triplets to the file at path, choosing the encoder by extension.
func Export(triplets []erm.Triplet, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(triplets, file, f); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func newDocument(triplets []erm.Triplet) document {
	if triplets == nil {
		triplets = []erm.Triplet{}
	}
	return document{Triplets: triplets}
}
