package strscan

import (
	"fmt"
	"strings"
)

// TextConverter is implemented by values that can stand in for a literal
// pattern. A conversion error makes the scan fail with a TypeError.
type TextConverter interface {
	ToText() (string, error)
}

// TypeError reports a pattern argument that is neither a *Regexp, a
// string, nor a TextConverter.
type TypeError struct {
	err   string
	cause error
}

func (e TypeError) Error() string {
	if e.cause != nil {
		return e.err + ": " + e.cause.Error()
	}
	return e.err
}

// Unwrap returns the error a TextConverter failed with, if any.
func (e TypeError) Unwrap() error {
	return e.cause
}

var _ error = (*TypeError)(nil)

func newTypeError(v any, cause error) TypeError {
	return TypeError{
		err:   fmt.Sprintf("wrong argument type %T (expected Regexp)", v),
		cause: cause,
	}
}

// pattern is either a literal or a compiled Regexp.
type pattern struct {
	literal string
	re      *Regexp
}

func resolvePattern(arg any) (pattern, error) {
	switch v := arg.(type) {
	case *Regexp:
		if v != nil {
			return pattern{re: v}, nil
		}
	case string:
		return pattern{literal: v}, nil
	case TextConverter:
		s, err := v.ToText()
		if err != nil {
			return pattern{}, newTypeError(arg, err)
		}
		return pattern{literal: s}, nil
	}
	return pattern{}, newTypeError(arg, nil)
}

func (p pattern) attempt(t *text, cursor int) (*match, error) {
	if p.re != nil {
		return p.re.matcher.matchAt(t, cursor)
	}
	return findLiteral(t, p.literal, cursor), nil
}

// findLiteral returns the leftmost occurrence of lit at or after code
// point cursor. Occurrences that would split a code point are skipped.
func findLiteral(t *text, lit string, cursor int) *match {
	s := t.String()
	for from := t.byteOffset(cursor); from <= len(s); {
		i := strings.Index(s[from:], lit)
		if i < 0 {
			return nil
		}
		b := from + i
		start, okS := t.runeIndex(b)
		end, okE := t.runeIndex(b + len(lit))
		if okS && okE {
			m := newMatch(t, 0)
			m.spans[0] = Span{start, end}
			return m
		}
		from = b + 1
	}
	return nil
}
