package routetrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupParamCapture(t *testing.T) {
	trie := New()
	trie.Insert("/user/:id")

	res, ok := trie.Lookup("/user/123")
	require.True(t, ok)
	require.Equal(t, "/user/:id", res.Pattern)
	require.Equal(t, map[string]string{"id": "123"}, res.Params)
}

func TestLookupMissOnOverlongPath(t *testing.T) {
	trie := New()
	trie.Insert("/a/b")

	_, ok := trie.Lookup("/a/b/c")
	require.False(t, ok)
}

// TestEarlyMissQuirkSparesFirstSegment pins the i>0 restriction on the
// early-miss quirk: without it, looking up "/a" would misfire here, since
// the matched first-level node's one child ("b") happens to equal the
// total segment count of the request (1).
func TestEarlyMissQuirkSparesFirstSegment(t *testing.T) {
	trie := New()
	trie.Insert("/a")
	trie.Insert("/a/b")

	res, ok := trie.Lookup("/a")
	require.True(t, ok, "the i>0 restriction must not misfire against the first matched segment")
	require.Equal(t, "/a", res.Pattern)
}

// TestEarlyMissQuirkStillMisfiresPastFirstSegment pins the quirk's
// documented behavior from the second matched segment onward: a terminal
// node whose child count happens to equal the request's total segment
// count is still reported as a miss, even though it is itself a valid,
// directly reachable match.
func TestEarlyMissQuirkStillMisfiresPastFirstSegment(t *testing.T) {
	trie := New()
	trie.Insert("/a/b")
	trie.Insert("/a/b/x")
	trie.Insert("/a/b/y")

	_, ok := trie.Lookup("/a/b")
	require.False(t, ok, "the quirk is preserved past the first matched segment, per spec §9")
}

func TestTieBreakByInsertionOrder(t *testing.T) {
	paramFirst := New()
	paramFirst.Insert("/a/:x")
	paramFirst.Insert("/a/b")
	res, ok := paramFirst.Lookup("/a/b")
	require.True(t, ok)
	require.Equal(t, "/a/:x", res.Pattern, "param child registered first wins")

	literalFirst := New()
	literalFirst.Insert("/a/b")
	literalFirst.Insert("/a/:x")
	res, ok = literalFirst.Lookup("/a/b")
	require.True(t, ok)
	require.Equal(t, "/a/b", res.Pattern, "literal child registered first wins")
}

func TestRootPattern(t *testing.T) {
	empty := New()
	_, ok := empty.Lookup("/")
	require.False(t, ok)

	withRoot := New()
	withRoot.Insert("/")
	res, ok := withRoot.Lookup("/")
	require.True(t, ok)
	require.Equal(t, "/", res.Pattern)
}

func TestWildcardSegment(t *testing.T) {
	trie := New()
	trie.Insert("/files/*")

	res, ok := trie.Lookup("/files/anything")
	require.True(t, ok)
	require.Equal(t, "/files/*", res.Pattern)
}

func TestLeadingTrailingSlashesNormalised(t *testing.T) {
	trie := New()
	trie.Insert("user/:id/")

	res, ok := trie.Lookup("/user/42")
	require.True(t, ok)
	require.Equal(t, "42", res.Params["id"])
}
