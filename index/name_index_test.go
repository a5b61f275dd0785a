package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameIndexExactMatch(t *testing.T) {
	ni := NewPackageNameIndex()
	ni.Add("http")
	ni.Add("http_parser")

	got := ni.SearchWord("http", nil)

	assert.Equal(t, 1.0, got.Get("http"))
	assert.Equal(t, 1.0, got.Get("http_parser"), "containment counts as a full match")
}

func TestNameIndexUnderscoreCollapse(t *testing.T) {
	ni := NewPackageNameIndex()
	ni.Add("riak_client")

	got := ni.SearchWord("riakclient", nil)
	assert.Equal(t, 1.0, got.Get("riak_client"))
}

func TestNameIndexSingularizesTrailingS(t *testing.T) {
	ni := NewPackageNameIndex()
	ni.Add("riak_client")

	got := ni.SearchWord("riak_clients", nil)
	assert.Equal(t, 1.0, got.Get("riak_client"))
}

func TestNameIndexTrigramOverlap(t *testing.T) {
	ni := NewPackageNameIndex()
	ni.Add("http_magic")

	// "htpmagic" shares 5 of its 6 trigrams with "httpmagic".
	got := ni.SearchWord("htp_magic", nil)
	require.True(t, got.Contains("http_magic"))
	assert.InDelta(t, 5.0/6.0, got.Get("http_magic"), 1e-9)
}

func TestNameIndexShortWordContainmentOnly(t *testing.T) {
	ni := NewPackageNameIndex()
	ni.Add("dio")
	ni.Add("audio_session")

	got := ni.SearchWord("dio", nil)
	assert.Equal(t, 1.0, got.Get("dio"))
	assert.Equal(t, 1.0, got.Get("audio_session"))

	// Three characters with no containment never match via trigrams.
	assert.Empty(t, ni.SearchWord("oid", map[string]struct{}{"dio": {}}))
}

func TestNameIndexLowOverlapDropped(t *testing.T) {
	ni := NewPackageNameIndex()
	ni.Add("http_magic")

	// Only a trailing fragment overlaps; the score falls under the floor.
	got := ni.SearchWord("telescopic", nil)
	assert.False(t, got.Contains("http_magic"))
}

func TestNameIndexRestrictedCandidates(t *testing.T) {
	ni := NewPackageNameIndex()
	ni.Add("http")
	ni.Add("http_parser")

	got := ni.SearchWord("http", map[string]struct{}{"http": {}})
	assert.True(t, got.Contains("http"))
	assert.False(t, got.Contains("http_parser"))
}

func TestNameIndexRemove(t *testing.T) {
	ni := NewPackageNameIndex()
	ni.Add("http")
	ni.Remove("http")

	assert.Empty(t, ni.SearchWord("http", nil))

	// Unknown names are a no-op.
	ni.Remove("missing")
}
