package strscan

import (
	"slices"
	"unicode/utf8"
)

// text is a string indexed by code point.
// Invalid UTF-8 bytes count as one code point each, the same way
// utf8.DecodeRuneInString steps over them.
type text struct {
	s string
	// offs[i] is the byte offset of code point i; offs[len] == len(s).
	// nil when s is pure ASCII and byte offsets equal code point offsets.
	offs  []int
	rs    []rune
	bs    []byte
	count int
}

func newText(s string) *text {
	t := &text{s: s}
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		t.count = len(s)
		return t
	}
	t.offs = make([]int, 0, len(s)+1)
	for i := 0; i < len(s); {
		t.offs = append(t.offs, i)
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	t.count = len(t.offs)
	t.offs = append(t.offs, len(s))
	return t
}

// Len returns the length in code points.
func (t *text) Len() int {
	return t.count
}

func (t *text) String() string {
	return t.s
}

func (t *text) byteOffset(i int) int {
	if t.offs == nil {
		return i
	}
	return t.offs[i]
}

// runeIndex maps a byte offset back to a code point index.
// It reports false when b does not sit on a code point boundary.
func (t *text) runeIndex(b int) (int, bool) {
	if t.offs == nil {
		return b, b >= 0 && b <= len(t.s)
	}
	return slices.BinarySearch(t.offs, b)
}

// floor returns the index of the code point containing byte offset b.
func (t *text) floor(b int) int {
	i, ok := t.runeIndex(b)
	if !ok {
		i--
	}
	return i
}

// ceil returns the index of the first code point boundary at or after b.
func (t *text) ceil(b int) int {
	i, _ := t.runeIndex(b)
	return i
}

// slice returns the original bytes between code points i and j.
func (t *text) slice(i, j int) string {
	return t.s[t.byteOffset(i):t.byteOffset(j)]
}

// runes returns the subject decoded into code points, built on first use.
func (t *text) runes() []rune {
	if t.rs == nil {
		t.rs = make([]rune, 0, t.count)
		for i := 0; i < len(t.s); {
			r, size := utf8.DecodeRuneInString(t.s[i:])
			t.rs = append(t.rs, r)
			i += size
		}
	}
	return t.rs
}

// bytes returns the subject as a byte slice, built on first use.
func (t *text) bytes() []byte {
	if t.bs == nil {
		t.bs = make([]byte, len(t.s))
		copy(t.bs, t.s)
	}
	return t.bs
}
