package trace

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTrace(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestJSONLSource_ReadsCycles(t *testing.T) {
	path := writeTrace(t, `{"dispatch_time":1000,"orders":[{"order_id":1,"pickup":{"lat":1,"lng":2},"dropoff":{"lat":3,"lng":4},"arrival_time":950,"actual_courier_id":7}],"couriers":[{"courier_id":7,"location":{"lat":0,"lng":0}}]}

{"dispatch_time":1600,"orders":[],"couriers":[]}
`)

	src, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	snap, err := src.Next()
	require.NoError(t, err)
	require.EqualValues(t, 1000, snap.DispatchTime)
	require.Len(t, snap.Orders, 1)
	require.EqualValues(t, 1, snap.Orders[0].ID)
	require.EqualValues(t, 7, snap.Orders[0].ActualCourierID)
	require.Equal(t, 2.0, snap.Orders[0].Pickup.Lng)
	require.Len(t, snap.Couriers, 1)
	require.EqualValues(t, 7, snap.Couriers[0].ID)

	// Blank line is skipped.
	snap, err = src.Next()
	require.NoError(t, err)
	require.EqualValues(t, 1600, snap.DispatchTime)

	_, err = src.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestJSONLSource_RejectsBackwardsTime(t *testing.T) {
	path := writeTrace(t, `{"dispatch_time":2000,"orders":[],"couriers":[]}
{"dispatch_time":1000,"orders":[],"couriers":[]}
`)

	src, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	_, err = src.Next()
	require.NoError(t, err)
	_, err = src.Next()
	require.Error(t, err)
	require.Contains(t, err.Error(), "dispatch time")
}

func TestJSONLSource_RejectsMalformedLine(t *testing.T) {
	path := writeTrace(t, "not json\n")
	src, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	_, err = src.Next()
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 1")
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.jsonl"))
	require.Error(t, err)
}
