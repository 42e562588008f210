package promhooks

import (
	"context"
	"errors"
	"iter"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/waypoint/pkg/observability"
	"github.com/matzehuels/waypoint/pkg/search"
)

type node struct {
	name string
	out  []search.Link[*node]
}

func (n *node) Links(search.Agent) iter.Seq[search.Link[*node]] {
	return search.Links[*node](n.out)
}

func (n *node) Heuristic(*node, search.Agent) float64 { return 0 }

func TestHooks_Search(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := New(reg)
	observability.SetSearchHooks(h)
	t.Cleanup(observability.Reset)

	a, b, c := &node{name: "a"}, &node{name: "b"}, &node{name: "c"}
	a.out = []search.Link[*node]{search.SimpleLink[*node]{To: b, Weight: 1}}

	_, err := search.FindPath(a, b)
	require.NoError(t, err)
	_, err = search.FindPath(a, c)
	require.NoError(t, err)
	_, err = search.FindRange(a, 5)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(h.Searches.WithLabelValues(search.KindPath, "found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.Searches.WithLabelValues(search.KindPath, "unreachable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.Searches.WithLabelValues(search.KindRange, "found")))
	assert.Equal(t, 0.0, testutil.ToFloat64(h.InFlight))
	assert.Equal(t, 2, testutil.CollectAndCount(h.SearchDuration))
}

func TestHooks_LoadAndRender(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := New(reg)
	ctx := context.Background()

	h.OnLoadComplete(ctx, "json", "a.json", 12, time.Millisecond, nil)
	h.OnLoadComplete(ctx, "json", "b.json", 0, time.Millisecond, errors.New("boom"))
	h.OnRenderComplete(ctx, "svg", 2048, time.Millisecond, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(h.Loads.WithLabelValues("json", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.Loads.WithLabelValues("json", "error")))
	assert.Equal(t, 12.0, testutil.ToFloat64(h.LoadedElements.WithLabelValues("json")))
	assert.Equal(t, 2048.0, testutil.ToFloat64(h.RenderBytes))
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
