package pipeline

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parametriclab/nodeflow/pkg/document"
	nferrors "github.com/parametriclab/nodeflow/pkg/errors"
	"github.com/parametriclab/nodeflow/pkg/store"
)

func quietRunner() *Runner {
	return NewRunner(nil, nil, log.New(io.Discard))
}

// additionDoc wires two literal numbers into an add node: 5 + 3.
func additionDoc() document.Document {
	return document.Document{
		Nodes: []document.Node{
			{ID: "five", TypeName: "math/number", Parameters: map[string]any{"value": 5.0}},
			{ID: "three", TypeName: "math/number", Parameters: map[string]any{"value": 3.0}},
			{ID: "add", TypeName: "math/add"},
		},
		Connections: []document.Connection{
			{SourceNodeID: "five", SourcePort: "result", TargetNodeID: "add", TargetPort: "a"},
			{SourceNodeID: "three", SourcePort: "result", TargetNodeID: "add", TargetPort: "b"},
		},
	}
}

func TestExecuteFromDocument(t *testing.T) {
	doc := additionDoc()
	result, err := quietRunner().Execute(context.Background(), Options{Document: &doc})
	require.NoError(t, err)

	assert.True(t, result.Succeeded)
	assert.Empty(t, result.Problems)
	assert.Equal(t, 3, result.Stats.NodeCount)
	assert.Equal(t, 2, result.Stats.ConnectionCount)

	require.Len(t, result.NodeRuns, 3)
	order := []string{result.NodeRuns[0].NodeID, result.NodeRuns[1].NodeID, result.NodeRuns[2].NodeID}
	assert.Equal(t, []string{"five", "three", "add"}, order)

	add, ok := result.Graph.Node("add")
	require.True(t, ok)
	out, ok := add.Output("result")
	require.True(t, ok)
	assert.EqualValues(t, 8, out.EffectiveValue().AsNumber())
}

func TestExecuteFromStore(t *testing.T) {
	r := quietRunner()
	ctx := context.Background()
	require.NoError(t, r.Store.Put(ctx, store.Record{Name: "sum", Document: additionDoc()}))

	result, err := r.Execute(ctx, Options{Name: "sum"})
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Equal(t, additionDoc().Nodes[0].ID, result.Document.Nodes[0].ID)

	_, err = r.Execute(ctx, Options{Name: "missing"})
	require.Error(t, err)
	assert.True(t, nferrors.Is(err, nferrors.ErrCodeGraphNotFound), "code = %v", nferrors.GetCode(err))
}

func TestExecuteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sum.json")
	require.NoError(t, document.WriteFile(additionDoc(), path))

	result, err := quietRunner().Execute(context.Background(), Options{Path: path})
	require.NoError(t, err)
	assert.True(t, result.Succeeded)

	_, err = quietRunner().Execute(context.Background(), Options{Path: filepath.Join(t.TempDir(), "absent.json")})
	require.Error(t, err)
	assert.True(t, nferrors.Is(err, nferrors.ErrCodeInvalidDocument), "code = %v", nferrors.GetCode(err))
}

func TestExecuteValidationAbort(t *testing.T) {
	// point-components has a required input with no default.
	doc := document.Document{
		Nodes: []document.Node{{ID: "split", TypeName: "geometry/point-components"}},
	}

	result, err := quietRunner().Execute(context.Background(), Options{Document: &doc})
	require.Error(t, err)
	assert.True(t, nferrors.Is(err, nferrors.ErrCodeGraphInvalid), "code = %v", nferrors.GetCode(err))
	require.NotNil(t, result, "abort must still return the problems")
	assert.Len(t, result.Problems, 1)
	assert.Empty(t, result.NodeRuns, "nothing may execute on an aborted run")

	// Force pushes past validation; the node then fails at compute time.
	result, err = quietRunner().Execute(context.Background(), Options{Document: &doc, Force: true})
	require.NoError(t, err)
	assert.False(t, result.Succeeded)
	require.Len(t, result.NodeRuns, 1)
	assert.NotEmpty(t, result.NodeRuns[0].Error)
}

func TestRunRecordsNodeErrors(t *testing.T) {
	doc := document.Document{
		Nodes: []document.Node{
			{ID: "ten", TypeName: "math/number", Parameters: map[string]any{"value": 10.0}},
			{ID: "div", TypeName: "math/divide"},
		},
		Connections: []document.Connection{
			{SourceNodeID: "ten", SourcePort: "result", TargetNodeID: "div", TargetPort: "a"},
		},
	}

	result, err := quietRunner().Execute(context.Background(), Options{Document: &doc})
	require.NoError(t, err)
	assert.False(t, result.Succeeded)

	require.Len(t, result.NodeRuns, 2)
	assert.Empty(t, result.NodeRuns[0].Error)
	assert.Contains(t, result.NodeRuns[1].Error, "division by zero")
}

func TestExecuteRendersArtifacts(t *testing.T) {
	doc := additionDoc()
	result, err := quietRunner().Execute(context.Background(), Options{
		Document: &doc,
		Formats:  []string{FormatDOT, FormatSVG},
	})
	require.NoError(t, err)

	dot := string(result.Artifacts[FormatDOT])
	assert.Contains(t, dot, "digraph G")
	assert.Contains(t, dot, `"add"`)

	svg := string(result.Artifacts[FormatSVG])
	assert.Contains(t, svg, "<svg")
}

func TestExecuteRejectsUnknownFormat(t *testing.T) {
	doc := additionDoc()
	_, err := quietRunner().Execute(context.Background(), Options{
		Document: &doc,
		Formats:  []string{"png"},
	})
	require.Error(t, err)
	assert.True(t, nferrors.Is(err, nferrors.ErrCodeInvalidFormat), "code = %v", nferrors.GetCode(err))
}

func TestRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	require.NotNil(t, r.Store)
	require.NotNil(t, r.Registry)
	require.NotNil(t, r.Logger)

	if _, ok := r.Registry.Lookup("math/add"); !ok {
		t.Error("default registry missing built-in kinds")
	}
	require.NoError(t, r.Close())
}

func TestRunLeavesListenerClear(t *testing.T) {
	r := quietRunner()
	doc := additionDoc()
	g, err := r.Load(context.Background(), Options{Document: &doc})
	require.NoError(t, err)

	ok, runs := r.Run(g, Options{})
	assert.True(t, ok)
	assert.Len(t, runs, 3)

	// A second run must not double-record through a stale listener.
	ok, runs = r.Run(g, Options{})
	assert.True(t, ok)
	assert.Len(t, runs, 3)
}

func TestRenderDetailed(t *testing.T) {
	r := quietRunner()
	doc := additionDoc()
	g, err := r.Load(context.Background(), Options{Document: &doc})
	require.NoError(t, err)

	artifacts, err := r.Render(context.Background(), g, Options{Formats: []string{FormatDOT}, Detailed: true})
	require.NoError(t, err)
	if !strings.Contains(string(artifacts[FormatDOT]), "a: Number") {
		t.Errorf("detailed labels missing:\n%s", artifacts[FormatDOT])
	}
}

// recordingCache counts hits and misses around a map.
type recordingCache struct {
	entries map[string][]byte
	hits    int
	misses  int
	sets    int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: map[string][]byte{}}
}

func (c *recordingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok, nil
}

func (c *recordingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.entries[key] = data
	c.sets++
	return nil
}

func (c *recordingCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *recordingCache) Close() error { return nil }

func TestRenderArtifactCache(t *testing.T) {
	r := quietRunner()
	rc := newRecordingCache()
	r.Cache = rc

	doc := additionDoc()
	ctx := context.Background()
	g, err := r.Load(ctx, Options{Document: &doc})
	require.NoError(t, err)

	first, cached, err := r.RenderCached(ctx, g, Options{Formats: []string{FormatSVG}})
	require.NoError(t, err)
	assert.False(t, cached, "first render must miss")
	assert.Equal(t, 1, rc.misses)
	assert.Equal(t, 1, rc.sets)

	second, cached, err := r.RenderCached(ctx, g, Options{Formats: []string{FormatSVG}})
	require.NoError(t, err)
	assert.True(t, cached, "second render must hit")
	assert.Equal(t, 1, rc.hits)
	assert.Equal(t, first[FormatSVG], second[FormatSVG])

	// A different detail level changes the DOT text and therefore the key.
	_, cached, err = r.RenderCached(ctx, g, Options{Formats: []string{FormatSVG}, Detailed: true})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, rc.misses)
}

func TestRenderDOTSkipsCache(t *testing.T) {
	r := quietRunner()
	rc := newRecordingCache()
	r.Cache = rc

	doc := additionDoc()
	ctx := context.Background()
	g, err := r.Load(ctx, Options{Document: &doc})
	require.NoError(t, err)

	_, cached, err := r.RenderCached(ctx, g, Options{Formats: []string{FormatDOT}})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Zero(t, rc.hits+rc.misses+rc.sets, "dot rendering must not touch the cache")
}
