package relate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRelateUnrelateRoundTrip(t *testing.T) {
	m := New[string, int]()

	require.True(t, m.Relate("a", 1))
	require.False(t, m.Relate("a", 1), "relate is idempotent in return value")
	require.True(t, m.Unrelate("a", 1))
	require.False(t, m.Unrelate("a", 1), "already removed")

	require.False(t, m.HasKey("a"))
	require.False(t, m.HasValue(1))
	require.Equal(t, 0, m.KeysCount())
	require.Equal(t, 0, m.ValuesCount())
}

func TestDropKeyPrunesOppositeSide(t *testing.T) {
	m := New[string, int]()
	m.Relate("a", 1)
	m.Relate("a", 2)
	m.Relate("b", 1)

	m.DropKey("a")

	require.False(t, m.HasKey("a"))
	require.False(t, m.HasValue(2), "2 had no other key, must be pruned")
	require.ElementsMatch(t, []string{"b"}, m.KeysOf(1))
}

func TestDropValuePrunesOppositeSide(t *testing.T) {
	m := New[string, int]()
	m.Relate("a", 1)
	m.Relate("b", 1)
	m.Relate("a", 2)

	m.DropValue(1)

	require.False(t, m.HasValue(1))
	require.False(t, m.HasKey("b"))
	require.ElementsMatch(t, []int{2}, m.ValuesOf("a"))
}

func TestSnapshotsDoNotAliasInternalState(t *testing.T) {
	m := New[string, int]()
	m.Relate("a", 1)

	snap := m.ValuesOf("a")
	snap[0] = 999

	require.True(t, m.Has("a", 1))
	require.False(t, m.Has("a", 999))
}

// TestInvariantsUnderRandomOps exercises the property from spec §8:
// after every operation the two indices agree and no empty sets linger.
func TestInvariantsUnderRandomOps(t *testing.T) {
	m := New[int, int]()
	rng := rand.New(rand.NewSource(42))

	keys := 5
	values := 5

	for i := 0; i < 2000; i++ {
		k := rng.Intn(keys)
		v := rng.Intn(values)
		switch rng.Intn(4) {
		case 0:
			m.Relate(k, v)
		case 1:
			m.Unrelate(k, v)
		case 2:
			m.DropKey(k)
		case 3:
			m.DropValue(v)
		}
		assertInvariants(t, m, keys, values)
	}
}

func assertInvariants[K comparable, V comparable](t *testing.T, m *Map[K, V], keySpace, valSpace int) {
	t.Helper()
	// keySpace/valSpace are not used; the invariants are checked directly
	// against the two unexported index maps.
	for k := range m.valuesByKey {
		for v := range m.valuesByKey[k] {
			require.Contains(t, m.keysByValue[v], k)
		}
	}
	for v := range m.keysByValue {
		for k := range m.keysByValue[v] {
			require.Contains(t, m.valuesByKey[k], v)
		}
		require.NotEmpty(t, m.keysByValue[v], "empty value set must be pruned")
	}
	for k := range m.valuesByKey {
		require.NotEmpty(t, m.valuesByKey[k], "empty key set must be pruned")
	}
}
