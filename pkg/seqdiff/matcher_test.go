package seqdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) []rune { return []rune(s) }

func TestFindLongestMatch(t *testing.T) {
	m := NewMatcher(runes(" abcd"), runes("abcd abcd"))
	assert.Equal(t, Match{A: 0, B: 4, Size: 5}, m.FindLongestMatch(0, 5, 0, 9))
}

func TestFindLongestMatch_PrefersEarliestBlock(t *testing.T) {
	// "ab" occurs twice in a and twice in b
	m := NewMatcher(runes("abXab"), runes("YabZab"))
	assert.Equal(t, Match{A: 0, B: 1, Size: 2}, m.FindLongestMatch(0, 5, 0, 6))
}

func TestFindLongestMatch_NoMatch(t *testing.T) {
	m := NewMatcher(runes("abc"), runes("xyz"))
	assert.Equal(t, Match{A: 1, B: 2, Size: 0}, m.FindLongestMatch(1, 3, 2, 3))
}

func TestMatchingBlocks(t *testing.T) {
	m := NewMatcher(runes("abxcd"), runes("abcd"))
	want := []Match{
		{A: 0, B: 0, Size: 2},
		{A: 3, B: 2, Size: 2},
		{A: 5, B: 4, Size: 0},
	}
	assert.Equal(t, want, m.MatchingBlocks())
}

func TestMatchingBlocks_Empty(t *testing.T) {
	m := NewMatcher[rune](nil, nil)
	assert.Equal(t, []Match{{A: 0, B: 0, Size: 0}}, m.MatchingBlocks())
	assert.Empty(t, m.OpCodes())
	assert.Equal(t, 1.0, m.Ratio())
}

func TestOpCodes(t *testing.T) {
	m := NewMatcher(runes("qabxcd"), runes("abycdf"))
	want := []OpCode{
		{Tag: OpDelete, I1: 0, I2: 1, J1: 0, J2: 0},
		{Tag: OpEqual, I1: 1, I2: 3, J1: 0, J2: 2},
		{Tag: OpReplace, I1: 3, I2: 4, J1: 2, J2: 3},
		{Tag: OpEqual, I1: 4, I2: 6, J1: 3, J2: 5},
		{Tag: OpInsert, I1: 6, I2: 6, J1: 5, J2: 6},
	}
	assert.Equal(t, want, m.OpCodes())
}

func TestOpTagString(t *testing.T) {
	assert.Equal(t, "equal", OpEqual.String())
	assert.Equal(t, "replace", OpReplace.String())
	assert.Equal(t, "delete", OpDelete.String())
	assert.Equal(t, "insert", OpInsert.String())
}

func TestRatios(t *testing.T) {
	m := NewMatcher(runes("abcd"), runes("bcde"))
	assert.InDelta(t, 0.75, m.Ratio(), 1e-9)
	assert.InDelta(t, 0.75, m.QuickRatio(), 1e-9)
	assert.InDelta(t, 1.0, m.RealQuickRatio(), 1e-9)
}

func TestRatio_UpperBounds(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"tide", "diet"},
		{"hello world", "world hello"},
		{"", "abc"},
	}
	for _, p := range pairs {
		m := NewMatcher(runes(p[0]), runes(p[1]))
		assert.LessOrEqual(t, m.Ratio(), m.QuickRatio(), "%q vs %q", p[0], p[1])
		assert.LessOrEqual(t, m.QuickRatio(), m.RealQuickRatio(), "%q vs %q", p[0], p[1])
	}
}

func TestRatio_OrderSensitive(t *testing.T) {
	assert.InDelta(t, 0.25, NewMatcher(runes("tide"), runes("diet")).Ratio(), 1e-9)
	assert.InDelta(t, 0.5, NewMatcher(runes("diet"), runes("tide")).Ratio(), 1e-9)
}

func TestSetSeq1_ReusesIndex(t *testing.T) {
	m := NewMatcher(runes("abcd"), runes("bcde"))
	require.InDelta(t, 0.75, m.Ratio(), 1e-9)

	m.SetSeq1(runes("bcde"))
	assert.Equal(t, 1.0, m.Ratio())
	assert.Equal(t, 4, m.Matches())
}

func TestMatcher_Strings(t *testing.T) {
	m := NewMatcher([]string{"a", "b", "c"}, []string{"a", "c"})
	want := []OpCode{
		{Tag: OpEqual, I1: 0, I2: 1, J1: 0, J2: 1},
		{Tag: OpDelete, I1: 1, I2: 2, J1: 1, J2: 1},
		{Tag: OpEqual, I1: 2, I2: 3, J1: 1, J2: 2},
	}
	assert.Equal(t, want, m.OpCodes())
}
