package optics

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logRecords decodes one JSON object per line.
func logRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func findRecord(recs []map[string]any, msg string) map[string]any {
	for _, r := range recs {
		if r["msg"] == msg {
			return r
		}
	}
	return nil
}

func TestLogger_IndexOperations(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := IndexConfig{MaxEntries: 2, MinEntries: 1, Logger: log}
	tree, err := NewRTree[*DoubleVector](cfg)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, tree.Insert(vec(t, DBID(i), float64(i), 0)))
	}
	assert.Error(t, tree.Insert(vec(t, 9, 1, 2, 3)))
	tree.Delete(vec(t, 2, 2, 0))
	_, err = tree.KNNQuery(vec(t, 100, 0, 0), 2, euclid())
	require.NoError(t, err)

	recs := logRecords(t, &buf)

	ins := findRecord(recs, "insert completed")
	require.NotNil(t, ins)
	assert.Equal(t, "DEBUG", ins["level"])
	assert.EqualValues(t, 2, ins["dimension"])

	failed := findRecord(recs, "insert failed")
	require.NotNil(t, failed)
	assert.Equal(t, "ERROR", failed["level"])
	assert.EqualValues(t, 9, failed["id"])
	assert.Contains(t, failed["error"], "dimension mismatch")

	assert.NotNil(t, findRecord(recs, "node split"))

	del := findRecord(recs, "delete completed")
	require.NotNil(t, del)
	assert.Equal(t, true, del["found"])

	search := findRecord(recs, "search completed")
	require.NotNil(t, search)
	assert.Equal(t, "knn", search["kind"])
	assert.EqualValues(t, 2, search["results"])
}

func TestLogger_ClusterOrderSummary(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(slog.NewJSONHandler(&buf, nil))

	objs := []*DoubleVector{vec(t, 1, 0, 0), vec(t, 2, 1, 0), vec(t, 3, 50, 50)}
	idx := newTestTree(t, DefaultIndexConfig(), objs)
	_, err := OPTICS[*DoubleVector](idx, objs, Config{Epsilon: 2, MinPts: 2, Logger: log})
	require.NoError(t, err)

	recs := logRecords(t, &buf)
	assert.NotNil(t, findRecord(recs, "cluster order started"))
	done := findRecord(recs, "cluster order completed")
	require.NotNil(t, done)
	assert.Equal(t, "INFO", done["level"])
	assert.EqualValues(t, 3, done["objects"])
	assert.EqualValues(t, 2, done["runs"])
	assert.Positive(t, done["io_access"].(float64))
}

func TestNoopLogger_Discards(t *testing.T) {
	log := NoopLogger()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
