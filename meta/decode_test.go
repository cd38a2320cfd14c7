package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Index     *bool
	Weight    int
	Ratio     float64
	Analyzer  string `meta:"analyzer_name"`
	Languages []string
	Limits    map[string]int
	hidden    string
}

func pairs(kv ...string) []Pair {
	out := make([]Pair, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, Pair{Key: kv[i], Value: kv[i+1]})
	}

	return out
}

func TestDecode_Empty(t *testing.T) {
	m, err := Decode[Map](nil)
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.True(t, m.IsEmpty())

	r, err := Decode[record](nil)
	require.NoError(t, err)
	assert.Equal(t, record{}, r)
}

func TestDecode_Map(t *testing.T) {
	m, err := Decode[Map](pairs("important", "true", "label", "a", "label", "b"))
	require.NoError(t, err)
	assert.Equal(t, Map{"important": "true", "label": "b"}, m)
	assert.False(t, m.IsEmpty())
}

func TestDecode_Pairs(t *testing.T) {
	p, err := Decode[Pairs](pairs("label", "a", "other", "x", "label", "b"))
	require.NoError(t, err)
	assert.Len(t, p, 3)
	assert.Equal(t, "label=a,other=x,label=b", p.String())

	v, ok := p.Get("label")
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = p.Get("missing")
	assert.False(t, ok)
}

func TestDecode_Record(t *testing.T) {
	r, err := Decode[record](pairs(
		"index", "true",
		"weight", "0x10",
		"ratio", "0.5",
		"analyzer_name", "english",
		"languages", `["en","de"]`,
		"limits", `{"max":3}`,
	))
	require.NoError(t, err)

	require.NotNil(t, r.Index)
	assert.True(t, *r.Index)
	assert.Equal(t, 16, r.Weight)
	assert.InDelta(t, 0.5, r.Ratio, 1e-9)
	assert.Equal(t, "english", r.Analyzer)
	assert.Equal(t, []string{"en", "de"}, r.Languages)
	assert.Equal(t, map[string]int{"max": 3}, r.Limits)
}

func TestDecode_RecordKeyMatching(t *testing.T) {
	r, err := Decode[record](pairs("WEIGHT", "2"))
	require.NoError(t, err)
	assert.Equal(t, 2, r.Weight)

	// an explicit tag name replaces the field name
	_, err = Decode[record](pairs("analyzer", "english"))
	require.ErrorIs(t, err, ErrUnknownKey)

	_, err = Decode[record](pairs("hidden", "x"))
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestDecode_RecordErrors(t *testing.T) {
	_, err := Decode[record](pairs("unknown", "1"))
	require.ErrorIs(t, err, ErrUnknownKey)
	assert.Contains(t, err.Error(), `"unknown"`)

	_, err = Decode[record](pairs("weight", "heavy"))
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = Decode[record](pairs("index", "maybe"))
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = Decode[record](pairs("languages", "en"))
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestDecode_Unsupported(t *testing.T) {
	_, err := Decode[[]string](pairs("a", "b"))
	require.ErrorIs(t, err, ErrUnsupportedMetadata)

	// without pairs there is nothing to reject
	_, err = Decode[[]string](nil)
	require.NoError(t, err)

	err = DecodeRecord(record{}, pairs("weight", "1"))
	require.ErrorIs(t, err, ErrUnsupportedMetadata)
}

func TestFillUnset(t *testing.T) {
	yes, no := true, false

	dst := record{Weight: 1}
	FillUnset(&dst, record{Weight: 5, Analyzer: "a"}, record{Index: &no, Analyzer: "b"})
	assert.Equal(t, 1, dst.Weight)
	assert.Equal(t, "a", dst.Analyzer)
	require.NotNil(t, dst.Index)
	assert.False(t, *dst.Index)

	dst = record{Index: &yes}
	FillUnset(&dst, record{Index: &no})
	assert.True(t, *dst.Index)

	s := ""
	FillUnset(&s, "", "first", "second")
	assert.Equal(t, "first", s)
}
