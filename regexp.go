package strscan

import (
	"strconv"
	"time"

	"github.com/auvred/regonaut"
	"github.com/dlclark/regexp2"
)

// Regexp is a compiled pattern.
// It is safe for concurrent use by multiple goroutines.
type Regexp struct {
	expr    string
	flags   Flag
	matcher matcher
}

// matcher performs a single match attempt.
// Offsets are code points; the forward search starts at cursor, which is
// also where the continuation anchor holds.
type matcher interface {
	numSubexp() int
	matchAt(t *text, cursor int) (*match, error)
}

// Compile parses a Perl-style regular expression (the syntax of Ruby and
// .NET patterns, including the \G continuation anchor) and returns a Regexp.
func Compile(expr string, flags Flag) (*Regexp, error) {
	if flags&FlagSticky != 0 {
		return nil, newFlagError("flag y is not supported by Perl-style patterns, use \\G")
	}
	m, err := newPerlMatcher(expr, flags)
	if err != nil {
		return nil, err
	}
	return &Regexp{expr: expr, flags: flags, matcher: m}, nil
}

// MustCompile is like [Compile] but panics if the expression cannot be parsed.
// It simplifies safe initialization of global variables containing regular
// expressions.
func MustCompile(expr string, flags Flag) *Regexp {
	re, err := Compile(expr, flags)
	if err != nil {
		panic("strscan: MustCompile: " + err.Error())
	}
	return re
}

// CompileECMAScript parses an ECMAScript regular expression and returns a
// Regexp. ECMAScript has no \G token; FlagSticky binds the whole pattern to
// the search start instead.
func CompileECMAScript(expr string, flags Flag) (*Regexp, error) {
	if flags&FlagExtended != 0 {
		return nil, newFlagError("flag x is not supported by ECMAScript patterns")
	}
	m, err := newECMAMatcher(expr, flags)
	if err != nil {
		return nil, err
	}
	return &Regexp{expr: expr, flags: flags, matcher: m}, nil
}

// MustCompileECMAScript is like [CompileECMAScript] but panics if the
// expression cannot be parsed.
func MustCompileECMAScript(expr string, flags Flag) *Regexp {
	re, err := CompileECMAScript(expr, flags)
	if err != nil {
		panic("strscan: MustCompileECMAScript: " + err.Error())
	}
	return re
}

// String returns the source text used to compile the pattern.
func (re *Regexp) String() string {
	return re.expr
}

// Flags returns the options the pattern was compiled with.
func (re *Regexp) Flags() Flag {
	return re.flags
}

// NumSubexp returns the number of capture groups in the pattern.
func (re *Regexp) NumSubexp() int {
	return re.matcher.numSubexp()
}

// SetMatchTimeout limits the time a single match attempt may take.
// Only the Perl flavor honors it; a timed out attempt returns the
// engine's error from the scan. It must be called before the Regexp is
// shared between goroutines.
func (re *Regexp) SetMatchTimeout(d time.Duration) {
	if m, ok := re.matcher.(*perlMatcher); ok {
		m.re.MatchTimeout = d
	}
}

type perlMatcher struct {
	re     *regexp2.Regexp
	groups int
}

func perlOptions(flags Flag) regexp2.RegexOptions {
	opts := regexp2.RegexOptions(regexp2.Multiline)
	if flags&FlagIgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}
	if flags&FlagMultiline != 0 {
		opts |= regexp2.Singleline
	}
	if flags&FlagExtended != 0 {
		opts |= regexp2.IgnorePatternWhitespace
	}
	return opts
}

func newPerlMatcher(expr string, flags Flag) (*perlMatcher, error) {
	re, err := regexp2.Compile(expr, perlOptions(flags))
	if err != nil {
		return nil, err
	}
	return &perlMatcher{re: re, groups: len(re.GetGroupNumbers()) - 1}, nil
}

func (m *perlMatcher) numSubexp() int {
	return m.groups
}

// regexp2 binds \G to the position the search starts at.
func (m *perlMatcher) matchAt(t *text, cursor int) (*match, error) {
	rm, err := m.re.FindRunesMatchStartingAt(t.runes(), cursor)
	if err != nil || rm == nil {
		return nil, err
	}
	res := newMatch(t, m.groups)
	for i, g := range rm.Groups() {
		if i > m.groups {
			break
		}
		if len(g.Captures) == 0 {
			continue
		}
		sp := Span{g.Index, g.Index + g.Length}
		res.spans[i] = sp
		if _, err := strconv.Atoi(g.Name); i > 0 && err != nil {
			res.setName(g.Name, sp)
		}
	}
	return res, nil
}

type ecmaMatcher struct {
	re     *regonaut.RegExp
	groups int
}

func newECMAMatcher(expr string, flags Flag) (*ecmaMatcher, error) {
	f := regonaut.FlagMultiline
	if flags&FlagIgnoreCase != 0 {
		f |= regonaut.FlagIgnoreCase
	}
	if flags&FlagMultiline != 0 {
		f |= regonaut.FlagDotAll
	}
	if flags&FlagSticky != 0 {
		f |= regonaut.FlagSticky
	}
	re, err := regonaut.Compile(expr, f)
	if err != nil {
		return nil, err
	}
	// regonaut only reports its groups on a match. An empty alternative
	// matches the empty input and still lists every group of expr.
	probe, err := regonaut.Compile("(?:"+expr+")|", f&^regonaut.FlagSticky)
	if err != nil {
		return nil, err
	}
	return &ecmaMatcher{
		re:     re,
		groups: len(probe.FindMatch([]byte{}).Groups) - 1,
	}, nil
}

func (m *ecmaMatcher) numSubexp() int {
	return m.groups
}

func (m *ecmaMatcher) matchAt(t *text, cursor int) (*match, error) {
	rm := m.re.FindMatchStartingAt(t.bytes(), t.byteOffset(cursor))
	if rm == nil {
		return nil, nil
	}
	res := newMatch(t, m.groups)
	for i, g := range rm.Groups {
		if i > m.groups || g.Start == -1 {
			continue
		}
		res.spans[i] = Span{t.floor(g.Start), t.ceil(g.End)}
	}
	for name, g := range rm.NamedGroups {
		sp := Span{-1, -1}
		if g.Start != -1 {
			sp = Span{t.floor(g.Start), t.ceil(g.End)}
		}
		res.setName(name, sp)
	}
	return res, nil
}
