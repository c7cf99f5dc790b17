package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CreateUnknownListsRegistered(t *testing.T) {
	r := NewRegistry[string]()
	require.NoError(t, r.Register("beta", func(map[string]any) (string, error) { return "b", nil }))
	require.NoError(t, r.Register("alpha", func(map[string]any) (string, error) { return "a", nil }))

	_, err := r.Create(ModuleConfig{Type: "gamma"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown module type "gamma"`)
	assert.Contains(t, err.Error(), "alpha, beta")

	assert.Equal(t, []string{"alpha", "beta"}, r.Names())
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	r := NewRegistry[int]()
	require.NoError(t, r.Register("one", func(map[string]any) (int, error) { return 1, nil }))
	assert.Error(t, r.Register("one", func(map[string]any) (int, error) { return 1, nil }))
	assert.Error(t, r.Register("nil", nil))
}

func TestDecode(t *testing.T) {
	var out struct {
		Seed int64 `json:"seed"`
	}
	require.NoError(t, Decode(map[string]any{"seed": int64(42)}, &out))
	assert.EqualValues(t, 42, out.Seed)
}
