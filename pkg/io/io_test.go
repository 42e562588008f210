package io

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wperrors "github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/graph"
	"github.com/matzehuels/waypoint/pkg/observability"
	"github.com/matzehuels/waypoint/pkg/search"
)

const roadsJSON = `{
  "directed": false,
  "heuristic_weight": 1,
  "nodes": [
    {"id": "depot"},
    {"id": "ford", "x": 1},
    {"id": "market", "x": 3, "y": 0, "meta": {"opens": "08:00"}}
  ],
  "edges": [
    {"from": "depot", "to": "ford", "kind": "trail"},
    {"from": "ford", "to": "market", "cost": 2, "kind": "trail"},
    {"from": "depot", "to": "market", "cost": 4, "kind": "road"}
  ]
}`

const roadsYAML = `directed: false
heuristic_weight: 1
nodes:
  - id: depot
  - id: ford
    x: 1
  - id: market
    x: 3
    meta:
      opens: "08:00"
edges:
  - {from: depot, to: ford, kind: trail}
  - {from: ford, to: market, cost: 2, kind: trail}
  - {from: depot, to: market, cost: 4, kind: road}
`

const roadsTOML = `directed = false
heuristic_weight = 1.0

[[nodes]]
id = "depot"

[[nodes]]
id = "ford"
x = 1.0

[[nodes]]
id = "market"
x = 3.0
meta = { opens = "08:00" }

[[edges]]
from = "depot"
to = "ford"
kind = "trail"

[[edges]]
from = "ford"
to = "market"
cost = 2.0
kind = "trail"

[[edges]]
from = "depot"
to = "market"
cost = 4.0
kind = "road"
`

func checkRoads(t *testing.T, g *graph.Graph) {
	t.Helper()
	assert.False(t, g.Directed)
	assert.Equal(t, 1.0, g.HeuristicWeight)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 3, g.EdgeCount())

	market, ok := g.Vertex("market")
	require.True(t, ok)
	assert.Equal(t, 3.0, market.X)
	assert.Equal(t, "08:00", market.Meta["opens"])

	edges := g.Edges()
	assert.Equal(t, DefaultCost, edges[0].Weight)
	assert.Equal(t, "trail", edges[0].Kind)
	assert.Equal(t, 4.0, edges[2].Weight)

	depot, _ := g.Vertex("depot")
	path, err := search.FindPath(depot, market)
	require.NoError(t, err)
	assert.Equal(t, 3.0, path.Cost)
}

func TestRead(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"JSON", FormatJSON, roadsJSON},
		{"YAML", FormatYAML, roadsYAML},
		{"TOML", FormatTOML, roadsTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Read(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)
			checkRoads(t, g)
		})
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode wperrors.Code
		wantErr  error
	}{
		{"Malformed", `{"nodes": [`, wperrors.ErrCodeInvalidFormat, nil},
		{"Empty", ``, wperrors.ErrCodeInvalidFormat, nil},
		{"DuplicateNode", `{"nodes": [{"id": "a"}, {"id": "a"}]}`, wperrors.ErrCodeInvalidGraph, graph.ErrDuplicateNodeID},
		{"EmptyID", `{"nodes": [{"id": ""}]}`, wperrors.ErrCodeInvalidGraph, graph.ErrInvalidNodeID},
		{"DanglingEdge", `{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "b"}]}`, wperrors.ErrCodeInvalidGraph, graph.ErrUnknownTargetNode},
		{"NegativeCost", `{"nodes": [{"id": "a"}, {"id": "b"}], "edges": [{"from": "a", "to": "b", "cost": -2}]}`, wperrors.ErrCodeInvalidGraph, graph.ErrInvalidCost},
		{"NegativeWeight", `{"heuristic_weight": -1, "nodes": []}`, wperrors.ErrCodeInvalidGraph, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, wperrors.GetCode(err))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "err = %v", err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	src, err := ReadJSON(strings.NewReader(roadsJSON))
	require.NoError(t, err)

	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(src, &buf, format))

			g, err := Read(&buf, format)
			require.NoError(t, err, buf.String())
			checkRoads(t, g)
		})
	}
}

func TestWriteJSON_OmitsDefaults(t *testing.T) {
	g := graph.New(true)
	_, _ = g.AddVertex(graph.Vertex{ID: "a"})
	_, _ = g.AddVertex(graph.Vertex{ID: "b"})
	require.NoError(t, g.AddEdge(graph.Edge{From: "a", To: "b", Weight: 1}))

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(g, &buf))
	out := buf.String()
	assert.NotContains(t, out, "cost")
	assert.NotContains(t, out, "meta")
	assert.Contains(t, out, `"directed": true`)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"g.json", FormatJSON},
		{"g.YAML", FormatYAML},
		{"dir/g.yml", FormatYAML},
		{"g.toml", FormatTOML},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatFromPath("g.xml")
	assert.True(t, wperrors.Is(err, wperrors.ErrCodeUnsupported))
}

type loadRecorder struct {
	observability.NoopLoadHooks
	formats []string
	counts  []int
	errs    []error
}

func (r *loadRecorder) OnLoadComplete(_ context.Context, format, _ string, count int, _ time.Duration, err error) {
	r.formats = append(r.formats, format)
	r.counts = append(r.counts, count)
	r.errs = append(r.errs, err)
}

func TestImportExport(t *testing.T) {
	rec := &loadRecorder{}
	observability.SetLoadHooks(rec)
	t.Cleanup(observability.Reset)

	dir := t.TempDir()
	src := filepath.Join(dir, "roads.yaml")
	require.NoError(t, os.WriteFile(src, []byte(roadsYAML), 0o644))

	g, err := Import(context.Background(), src)
	require.NoError(t, err)
	checkRoads(t, g)

	dst := filepath.Join(dir, "roads.toml")
	require.NoError(t, Export(g, dst))
	g, err = Import(context.Background(), dst)
	require.NoError(t, err)
	checkRoads(t, g)

	_, err = Import(context.Background(), filepath.Join(dir, "missing.json"))
	assert.True(t, wperrors.Is(err, wperrors.ErrCodeFileNotFound))

	assert.Equal(t, []string{"yaml", "toml", "json"}, rec.formats)
	assert.Equal(t, []int{3, 3, 0}, rec.counts)
	assert.NoError(t, rec.errs[0])
	assert.Error(t, rec.errs[2])
}
