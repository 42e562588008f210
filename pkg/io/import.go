package io

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/graph"
	"github.com/matzehuels/waypoint/pkg/observability"
)

// ReadJSON decodes a JSON graph from r.
//
// The input must be an object with "nodes" and "edges" arrays:
//
//	{
//	  "directed": true,
//	  "nodes": [{"id": "a"}, {"id": "b", "x": 3, "y": 4}],
//	  "edges": [{"from": "a", "to": "b", "cost": 5, "kind": "road"}]
//	}
//
// Each node must have a unique "id". Each edge must reference existing
// node IDs; "cost" defaults to [DefaultCost]. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	return Read(r, FormatJSON)
}

// ReadYAML decodes a YAML graph with the same fields as [ReadJSON].
func ReadYAML(r io.Reader) (*graph.Graph, error) {
	return Read(r, FormatYAML)
}

// ReadTOML decodes a TOML graph with the same fields as [ReadJSON], using
// [[nodes]] and [[edges]] arrays of tables.
func ReadTOML(r io.Reader) (*graph.Graph, error) {
	return Read(r, FormatTOML)
}

// Read decodes a graph in the given format.
//
// Malformed input is reported with [errors.ErrCodeInvalidFormat]. Input that
// decodes but does not describe a valid graph (duplicate IDs, dangling
// edges, negative costs) is reported with [errors.ErrCodeInvalidGraph],
// wrapping the [graph] sentinel error.
func Read(r io.Reader, format Format) (*graph.Graph, error) {
	var doc document
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&doc)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported graph format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", format)
	}
	return fromDocument(doc)
}

// Import reads the graph file at path, choosing the format by extension.
// Load hooks are notified of the start and end of the import.
func Import(ctx context.Context, path string) (*graph.Graph, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	hooks := observability.Load()
	hooks.OnLoadStart(ctx, string(format), path)
	start := time.Now()

	g, err := importFile(path, format)
	count := 0
	if g != nil {
		count = g.VertexCount()
	}
	hooks.OnLoadComplete(ctx, string(format), path, count, time.Since(start), err)
	return g, err
}

func importFile(path string, format Format) (*graph.Graph, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
