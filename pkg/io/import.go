package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/erm/pkg/errors"
	"github.com/matzehuels/erm/pkg/erm"
)

// Format is a document encoding.
type Format string

// Supported document formats.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatTOML    Format = "toml"
	FormatMsgpack Format = "msgpack"
)

var formatByExt = map[string]Format{
	".json":    FormatJSON,
	".yaml":    FormatYAML,
	".yml":     FormatYAML,
	".toml":    FormatTOML,
	".msgpack": FormatMsgpack,
	".mpk":     FormatMsgpack,
}

// FormatFromPath infers the document format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatByExt[ext]; ok {
		return f, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "cannot infer format of %s (want .json, .yaml, .yml, .toml or .msgpack)", path)
}

// Read decodes a model document in the given format from r.
// See [Decode] for the accepted literal shapes. Read does not close r.
func Read(r io.Reader, f Format) (erm.Model, error) {
	doc, err := ReadDocument(r, f)
	if err != nil {
		return nil, err
	}
	return Decode(doc)
}

// ReadJSON decodes a JSON model document from r.
//
// The document is the bare literal or an object with a "model" key:
//
//	[{"name": "A"}, ["uses>", {"name": "B"}]]
func ReadJSON(r io.Reader) (erm.Model, error) { return Read(r, FormatJSON) }

// ReadYAML decodes a YAML model document from r.
func ReadYAML(r io.Reader) (erm.Model, error) { return Read(r, FormatYAML) }

// ReadTOML decodes a TOML model document from r. TOML documents are tables,
// so the literal must sit under the "model" key:
//
//	model = [{name = "A"}, ["uses>", {name = "B"}]]
func ReadTOML(r io.Reader) (erm.Model, error) { return Read(r, FormatTOML) }

// Import reads the model document at path, choosing the decoder by extension.
// Errors are wrapped with the path for context.
func Import(path string) (erm.Model, error) {
	doc, err := ImportDocument(path)
	if err != nil {
		return nil, err
	}
	model, err := Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return model, nil
}

// ImportDocument reads the document at path with [ReadDocument].
func ImportDocument(path string) (any, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	doc, err := ReadDocument(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ReadDictionary decodes a one-to-many dictionary (string keys, lists of
// strings) in the given format from r.
func ReadDictionary(r io.Reader, f Format) (map[string][]string, error) {
	var dict map[string][]string
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&dict)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&dict)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&dict)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&dict)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode %s dictionary", f)
	}
	return dict, nil
}

// ImportDictionary reads the dictionary document at path.
func ImportDictionary(path string) (map[string][]string, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	dict, err := ReadDictionary(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dict, nil
}

func open(path string) (*os.File, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// ReadDocument decodes r into loosely typed values (maps, lists and scalars)
// without interpreting them as a model. Pass the result to a [Decoder] to
// share entities between documents.
func ReadDocument(r io.Reader, f Format) (any, error) {
	var doc any
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	case FormatTOML:
		var table map[string]any
		_, err = toml.NewDecoder(r).Decode(&table)
		doc = normalize(table)
	case FormatMsgpack:
		dec := msgpack.NewDecoder(r)
		dec.SetMapDecoder(func(d *msgpack.Decoder) (any, error) {
			return d.DecodeUntypedMap()
		})
		err = dec.Decode(&doc)
		doc = normalize(doc)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode %s", f)
	}
	return doc, nil
}

// normalize rewrites the typed containers some decoders produce (arrays of
// tables, maps keyed by any) into []any and map[string]any, the shapes
// [Decode] classifies.
func normalize(v any) any {
	switch x := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
		return x
	case []map[string]any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	case []any:
		for i, e := range x {
			x[i] = normalize(e)
		}
		return x
	default:
		return v
	}
}
