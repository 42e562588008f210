package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/graph"
)

// WriteJSON encodes g as indented JSON. The output can be re-imported with
// [ReadJSON]. Edges of [DefaultCost] omit "cost".
func WriteJSON(g *graph.Graph, w io.Writer) error {
	return Write(g, w, FormatJSON)
}

// Write encodes g in the given format.
func Write(g *graph.Graph, w io.Writer, format Format) error {
	doc := toDocument(g)
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(doc)
		if err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(doc)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported graph format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

// Export writes g to path, choosing the format by extension.
func Export(g *graph.Graph, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(g, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
