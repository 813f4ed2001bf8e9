package seqdiff

import (
	"cmp"
	"slices"
)

// Match describes a matching block: a[A:A+Size] == b[B:B+Size]
type Match struct {
	A    int
	B    int
	Size int
}

// OpTag names the edit that turns a slice of a into a slice of b
type OpTag byte

const (
	OpEqual   OpTag = 'e'
	OpReplace OpTag = 'r'
	OpDelete  OpTag = 'd'
	OpInsert  OpTag = 'i'
)

// String returns the tag name
func (t OpTag) String() string {
	switch t {
	case OpEqual:
		return "equal"
	case OpReplace:
		return "replace"
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// OpCode describes how to turn a[I1:I2] into b[J1:J2]
type OpCode struct {
	Tag OpTag
	I1  int
	I2  int
	J1  int
	J2  int
}

// Matcher compares two sequences with the Ratcliff/Obershelp algorithm.
//
// The longest contiguous matching block is found first, then the same search
// runs on the pieces left and right of it. When several blocks share the
// maximal length, the one starting earliest in a wins, then earliest in b.
// No element is ever treated as junk.
type Matcher[T comparable] struct {
	a []T
	b []T

	// b2j maps each element of b to its ascending indices
	b2j map[T][]int
	// bCount is built lazily by QuickRatio
	bCount map[T]int

	matchingBlocks []Match
	opCodes        []OpCode
}

// NewMatcher creates a matcher for the two sequences
func NewMatcher[T comparable](a, b []T) *Matcher[T] {
	m := &Matcher[T]{}
	m.SetSeqs(a, b)
	return m
}

// SetSeqs replaces both sequences
func (m *Matcher[T]) SetSeqs(a, b []T) {
	m.SetSeq1(a)
	m.SetSeq2(b)
}

// SetSeq1 replaces the first sequence and keeps the index built for b
func (m *Matcher[T]) SetSeq1(a []T) {
	m.a = a
	m.matchingBlocks = nil
	m.opCodes = nil
}

// SetSeq2 replaces the second sequence and reindexes it
func (m *Matcher[T]) SetSeq2(b []T) {
	m.b = b
	m.matchingBlocks = nil
	m.opCodes = nil
	m.bCount = nil
	m.chainB()
}

func (m *Matcher[T]) chainB() {
	m.b2j = make(map[T][]int, len(m.b))
	for j, elt := range m.b {
		m.b2j[elt] = append(m.b2j[elt], j)
	}
}

// FindLongestMatch finds the longest matching block in a[alo:ahi] and b[blo:bhi].
// If nothing matches it returns Match{A: alo, B: blo, Size: 0}.
func (m *Matcher[T]) FindLongestMatch(alo, ahi, blo, bhi int) Match {
	besti, bestj, bestSize := alo, blo, 0

	// j2len[j] is the length of the match ending at a[i-1] and b[j]
	j2len := make(map[int]int)
	newJ2len := make(map[int]int)

	for i := alo; i < ahi; i++ {
		clear(newJ2len)
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > bestSize {
				besti, bestj, bestSize = i-k+1, j-k+1, k
			}
		}
		j2len, newJ2len = newJ2len, j2len
	}

	return Match{A: besti, B: bestj, Size: bestSize}
}

// MatchingBlocks returns the matching blocks in ascending order.
// Adjacent blocks are merged and the list always ends with the
// sentinel Match{A: len(a), B: len(b), Size: 0}.
func (m *Matcher[T]) MatchingBlocks() []Match {
	if m.matchingBlocks != nil {
		return m.matchingBlocks
	}

	la, lb := len(m.a), len(m.b)

	type span struct{ alo, ahi, blo, bhi int }
	stack := []span{{0, la, 0, lb}}
	var blocks []Match

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x := m.FindLongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if x.Size == 0 {
			continue
		}

		blocks = append(blocks, x)
		if s.alo < x.A && s.blo < x.B {
			stack = append(stack, span{s.alo, x.A, s.blo, x.B})
		}
		if x.A+x.Size < s.ahi && x.B+x.Size < s.bhi {
			stack = append(stack, span{x.A + x.Size, s.ahi, x.B + x.Size, s.bhi})
		}
	}

	slices.SortFunc(blocks, func(x, y Match) int {
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		return cmp.Compare(x.B, y.B)
	})

	merged := make([]Match, 0, len(blocks)+1)
	var cur Match
	for _, blk := range blocks {
		if cur.A+cur.Size == blk.A && cur.B+cur.Size == blk.B {
			cur.Size += blk.Size
			continue
		}
		if cur.Size > 0 {
			merged = append(merged, cur)
		}
		cur = blk
	}
	if cur.Size > 0 {
		merged = append(merged, cur)
	}
	merged = append(merged, Match{A: la, B: lb, Size: 0})

	m.matchingBlocks = merged
	return merged
}

// OpCodes returns the edits that turn a into b
func (m *Matcher[T]) OpCodes() []OpCode {
	if m.opCodes != nil {
		return m.opCodes
	}

	var codes []OpCode
	i, j := 0, 0
	for _, blk := range m.MatchingBlocks() {
		var tag OpTag
		switch {
		case i < blk.A && j < blk.B:
			tag = OpReplace
		case i < blk.A:
			tag = OpDelete
		case j < blk.B:
			tag = OpInsert
		}
		if tag != 0 {
			codes = append(codes, OpCode{Tag: tag, I1: i, I2: blk.A, J1: j, J2: blk.B})
		}

		i, j = blk.A+blk.Size, blk.B+blk.Size
		if blk.Size > 0 {
			codes = append(codes, OpCode{Tag: OpEqual, I1: blk.A, I2: i, J1: blk.B, J2: j})
		}
	}

	if codes == nil {
		codes = []OpCode{}
	}
	m.opCodes = codes
	return codes
}

// Matches returns the number of elements covered by matching blocks
func (m *Matcher[T]) Matches() int {
	total := 0
	for _, blk := range m.MatchingBlocks() {
		total += blk.Size
	}
	return total
}

// Ratio returns 2*M/T where M is the number of matched elements and T the
// combined length of both sequences. Two empty sequences have ratio 1.
func (m *Matcher[T]) Ratio() float64 {
	return ratio(m.Matches(), len(m.a)+len(m.b))
}

// QuickRatio returns an upper bound on Ratio using element counts only
func (m *Matcher[T]) QuickRatio() float64 {
	if m.bCount == nil {
		m.bCount = make(map[T]int, len(m.b))
		for _, elt := range m.b {
			m.bCount[elt]++
		}
	}

	avail := make(map[T]int)
	matches := 0
	for _, elt := range m.a {
		n, seen := avail[elt]
		if !seen {
			n = m.bCount[elt]
		}
		avail[elt] = n - 1
		if n > 0 {
			matches++
		}
	}

	return ratio(matches, len(m.a)+len(m.b))
}

// RealQuickRatio returns an upper bound on Ratio using the lengths only
func (m *Matcher[T]) RealQuickRatio() float64 {
	la, lb := len(m.a), len(m.b)
	return ratio(min(la, lb), la+lb)
}

func ratio(matches, length int) float64 {
	if length == 0 {
		return 1.0
	}
	return 2.0 * float64(matches) / float64(length)
}
