package strscan

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

type converter struct {
	text string
	err  error
}

func (c converter) ToText() (string, error) {
	return c.text, c.err
}

type symbol string

func texts(ss ...string) []Result {
	out := make([]Result, len(ss))
	for i, s := range ss {
		out[i] = Result{Text: s}
	}
	return out
}

func TestScan(t *testing.T) {
	t.Run("Words", func(t *testing.T) {
		got, err := NewContext().Scan("cruel world", MustCompile(`\w+`, 0))
		assert.NilError(t, err)
		assert.DeepEqual(t, got, texts("cruel", "world"))
	})
	t.Run("NoMatchesIsEmptyNotNil", func(t *testing.T) {
		got, err := NewContext().Scan("hello", "not")
		assert.NilError(t, err)
		assert.Assert(t, got != nil)
		assert.Equal(t, len(got), 0)
	})
	t.Run("EmptyPatternCountsCodePoints", func(t *testing.T) {
		for subject, n := range map[string]int{"": 1, "hello": 6, "こにちわ": 5, "🐱🐱": 3} {
			got, err := NewContext().Scan(subject, MustCompile("", 0))
			assert.NilError(t, err)
			assert.Equal(t, len(got), n, subject)
			got, err = NewContext().Scan(subject, "")
			assert.NilError(t, err)
			assert.Equal(t, len(got), n, subject)
		}
	})
	t.Run("TextConverter", func(t *testing.T) {
		got, err := NewContext().Scan("o_o", converter{text: "o"})
		assert.NilError(t, err)
		assert.DeepEqual(t, got, texts("o", "o"))
	})
	t.Run("InvalidUTF8Literal", func(t *testing.T) {
		ctx := NewContext()
		got, err := ctx.Scan("a\xffb\xff", "\xff")
		assert.NilError(t, err)
		assert.DeepEqual(t, got, texts("\xff", "\xff"))
		assert.Equal(t, ctx.LastMatch().Begin(0), 3)
	})
	t.Run("LiteralNeverSplitsCodePoint", func(t *testing.T) {
		ctx := NewContext()
		got, err := ctx.Scan("é", "\xa9")
		assert.NilError(t, err)
		assert.Equal(t, len(got), 0)
		assert.Assert(t, ctx.LastMatch() == nil)
	})
}

func TestScanTypeMismatch(t *testing.T) {
	for name, arg := range map[string]any{
		"Int":       5,
		"Nil":       nil,
		"NilRegexp": (*Regexp)(nil),
		"Symbol":    symbol("test"),
		"Bytes":     []byte("o"),
	} {
		t.Run(name, func(t *testing.T) {
			ctx := NewContext()
			before, err := ctx.Match("hello", "l")
			assert.NilError(t, err)

			_, err = ctx.Scan("cruel world", arg)
			var te TypeError
			assert.Assert(t, errors.As(err, &te))
			assert.ErrorContains(t, err, "wrong argument type")
			assert.Equal(t, ctx.LastMatch(), before)

			_, err = ctx.ScanFunc("cruel world", arg, func(...Capture) error {
				t.Fatal("callback must not run")
				return nil
			})
			assert.Assert(t, errors.As(err, &te))
			assert.Equal(t, ctx.LastMatch(), before)
		})
	}
	t.Run("FailedConversion", func(t *testing.T) {
		cause := errors.New("no text")
		_, err := NewContext().Scan("o_o", converter{err: cause})
		var te TypeError
		assert.Assert(t, errors.As(err, &te))
		assert.Assert(t, errors.Is(err, cause))
	})
	t.Run("Message", func(t *testing.T) {
		_, err := NewContext().Scan("x", symbol("test"))
		assert.Error(t, err, "wrong argument type strscan.symbol (expected Regexp)")
	})
}

func TestScanFunc(t *testing.T) {
	t.Run("ReturnsSubject", func(t *testing.T) {
		ctx := NewContext()
		s, err := ctx.ScanFunc("foo", MustCompile(".", 0), func(...Capture) error { return nil })
		assert.NilError(t, err)
		assert.Equal(t, s, "foo")
		s, err = ctx.ScanFunc("foo", MustCompile("roar", 0), func(...Capture) error { return nil })
		assert.NilError(t, err)
		assert.Equal(t, s, "foo")
	})
	t.Run("WholeMatchIsSoleArgument", func(t *testing.T) {
		var got [][]Capture
		_, err := NewContext().ScanFunc("cruel world", MustCompile(`\w+`, 0), func(args ...Capture) error {
			got = append(got, args)
			return nil
		})
		assert.NilError(t, err)
		assert.DeepEqual(t, got, [][]Capture{
			{{Text: "cruel", Valid: true}},
			{{Text: "world", Valid: true}},
		})
	})
	t.Run("GroupsArePositional", func(t *testing.T) {
		calls := 0
		_, err := NewContext().ScanFunc("a b c\na b c\na b c", MustCompile(`(\w*) (\w*) (\w*)`, 0), func(args ...Capture) error {
			calls++
			assert.Equal(t, len(args), 3)
			assert.Equal(t, args[0].Text, "a")
			assert.Equal(t, args[1].Text, "b")
			assert.Equal(t, args[2].Text, "c")
			return nil
		})
		assert.NilError(t, err)
		assert.Equal(t, calls, 3)
	})
	t.Run("LastMatchInsideCallback", func(t *testing.T) {
		for _, pattern := range []any{MustCompile(`([aeiou])`, 0), "l"} {
			ctx := NewContext()
			var matches [][]Capture
			var offsets []Span
			_, err := ctx.ScanFunc("hello", pattern, func(...Capture) error {
				md := ctx.LastMatch()
				assert.Equal(t, md.Subject(), "hello")
				matches = append(matches, md.Slice())
				sp, ok := md.Offset(0)
				assert.Assert(t, ok)
				offsets = append(offsets, sp)
				return nil
			})
			assert.NilError(t, err)
			if _, ok := pattern.(string); ok {
				assert.DeepEqual(t, matches, [][]Capture{{{"l", true}}, {{"l", true}}})
				assert.DeepEqual(t, offsets, []Span{{2, 3}, {3, 4}})
			} else {
				assert.DeepEqual(t, matches, [][]Capture{{{"e", true}, {"e", true}}, {{"o", true}, {"o", true}}})
				assert.DeepEqual(t, offsets, []Span{{1, 2}, {4, 5}})
			}
		}
	})
	t.Run("RestoresLastMatchAfterCallback", func(t *testing.T) {
		for _, pattern := range []any{MustCompile(".", 0), "l"} {
			ctx := NewContext()
			var own *MatchData
			_, err := ctx.ScanFunc("hello", pattern, func(...Capture) error {
				own = ctx.LastMatch()
				md, err := ctx.Match("ok", MustCompile(".", 0))
				assert.NilError(t, err)
				assert.Equal(t, ctx.LastMatch(), md)
				return nil
			})
			assert.NilError(t, err)
			assert.Equal(t, ctx.LastMatch(), own)
			assert.Equal(t, ctx.LastMatch().Subject(), "hello")
		}
	})
	t.Run("RestoresAfterFailedNestedMatch", func(t *testing.T) {
		ctx := NewContext()
		seen := 0
		_, err := ctx.ScanFunc("ab", MustCompile(".", 0), func(args ...Capture) error {
			_, err := ctx.Match("xyz", "nothing")
			assert.NilError(t, err)
			assert.Assert(t, ctx.LastMatch() == nil)
			seen++
			return nil
		})
		assert.NilError(t, err)
		assert.Equal(t, seen, 2)
		assert.Equal(t, ctx.LastMatch().String(), "b")
	})
	t.Run("ErrorStopsScanWithoutRestore", func(t *testing.T) {
		ctx := NewContext()
		errStop := errors.New("stop")
		calls := 0
		s, err := ctx.ScanFunc("hello", MustCompile(".", 0), func(...Capture) error {
			calls++
			if calls == 2 {
				_, err := ctx.Match("ok", "k")
				assert.NilError(t, err)
				return errStop
			}
			return nil
		})
		assert.Assert(t, errors.Is(err, errStop))
		assert.Equal(t, s, "")
		assert.Equal(t, calls, 2)
		assert.Equal(t, ctx.LastMatch().Subject(), "ok")
		assert.Equal(t, ctx.LastMatch().String(), "k")
	})
}

func TestScanLastMatch(t *testing.T) {
	noop := func(...Capture) error { return nil }
	type scanner func(ctx *Context, subject string, pattern any) error
	modes := map[string]scanner{
		"Scan": func(ctx *Context, subject string, pattern any) error {
			_, err := ctx.Scan(subject, pattern)
			return err
		},
		"ScanFunc": func(ctx *Context, subject string, pattern any) error {
			_, err := ctx.ScanFunc(subject, pattern, noop)
			return err
		},
	}
	for name, scan := range modes {
		t.Run(name, func(t *testing.T) {
			ctx := NewContext()

			assert.NilError(t, scan(ctx, "hello.", MustCompile(`.(.)`, 0)))
			assert.Equal(t, ctx.LastMatch().String(), "o.")

			assert.NilError(t, scan(ctx, "hello.", MustCompile("not", 0)))
			assert.Assert(t, ctx.LastMatch() == nil)

			assert.NilError(t, scan(ctx, "hello.", "l"))
			assert.Equal(t, ctx.LastMatch().Begin(0), 3)
			assert.Equal(t, ctx.LastMatch().String(), "l")

			assert.NilError(t, scan(ctx, "hello.", "not"))
			assert.Assert(t, ctx.LastMatch() == nil)
		})
	}
}

func TestMatchAt(t *testing.T) {
	t.Run("BindsContinuationAnchor", func(t *testing.T) {
		ctx := NewContext()
		md, err := ctx.MatchAt("one two", MustCompile(`\G\w+`, 0), 4)
		assert.NilError(t, err)
		assert.Equal(t, md.String(), "two")
		assert.Equal(t, ctx.LastMatch(), md)

		md, err = ctx.MatchAt("one two", MustCompile(`\G\w+`, 0), 3)
		assert.NilError(t, err)
		assert.Assert(t, md == nil)
		assert.Assert(t, ctx.LastMatch() == nil)
	})
	t.Run("OutOfRange", func(t *testing.T) {
		ctx := NewContext()
		_, err := ctx.Match("abc", "b")
		assert.NilError(t, err)
		for _, pos := range []int{-1, 4} {
			md, err := ctx.MatchAt("abc", "b", pos)
			assert.NilError(t, err)
			assert.Assert(t, md == nil)
			assert.Assert(t, ctx.LastMatch() == nil)
		}
	})
	t.Run("CodePointPosition", func(t *testing.T) {
		md, err := NewContext().MatchAt("あいあい", "あ", 1)
		assert.NilError(t, err)
		assert.Equal(t, md.Begin(0), 2)
		assert.Equal(t, md.PreMatch(), "あい")
	})
	t.Run("TypeMismatch", func(t *testing.T) {
		_, err := NewContext().Match("abc", 1.5)
		var te TypeError
		assert.Assert(t, errors.As(err, &te))
	})
}

func TestContextsAreIndependent(t *testing.T) {
	a, b := NewContext(), NewContext()
	_, err := a.Scan("hello", "l")
	assert.NilError(t, err)
	assert.Assert(t, b.LastMatch() == nil)
	assert.Equal(t, a.Register().Get(), a.LastMatch())
}
