// Package strscan finds every non-overlapping occurrence of a pattern in a
// string and keeps track of the last successful match the way a scripting
// language runtime does.
//
// A pattern is a literal string, a value implementing [TextConverter], or
// a compiled [Regexp]. Offsets reported by the package are code point
// offsets into the subject, never byte offsets.
//
// Each [Context] owns a [Register] holding the last match. Scans, matches
// and callbacks running on the same Context share it; separate goroutines
// need separate Contexts.
package strscan

// ScanFunc receives the groups of one match, or the whole match when the
// pattern has no groups. The Context's last match is that same match while
// ScanFunc runs. Returning an error stops the scan.
type ScanFunc func(args ...Capture) error

// Context is the state of one logical execution context.
// It is not safe for concurrent use.
type Context struct {
	reg Register
}

// NewContext returns a Context with an empty register.
func NewContext() *Context {
	return &Context{}
}

// Register returns the context's last-match register.
func (c *Context) Register() *Register {
	return &c.reg
}

// LastMatch returns the last successful match, or nil if the most recent
// operation found nothing.
func (c *Context) LastMatch() *MatchData {
	return c.reg.Get()
}

// Scan collects every occurrence of pattern in subject.
//
// The result is never nil on success. After Scan returns, LastMatch is the
// final occurrence, or nil if there was none.
func (c *Context) Scan(subject string, pattern any) ([]Result, error) {
	results := []Result{}
	err := c.scan(subject, pattern, func(r Result, _ *MatchData) error {
		results = append(results, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ScanFunc calls fn for every occurrence of pattern in subject and
// returns subject. An error from fn stops the scan and is returned
// unchanged; the register is then left as fn left it.
func (c *Context) ScanFunc(subject string, pattern any, fn ScanFunc) (string, error) {
	err := c.scan(subject, pattern, func(r Result, md *MatchData) error {
		return c.reg.hold(md, func() error {
			return fn(callbackArgs(r)...)
		})
	})
	if err != nil {
		return "", err
	}
	return subject, nil
}

func (c *Context) scan(subject string, arg any, yield func(Result, *MatchData) error) error {
	p, err := resolvePattern(arg)
	if err != nil {
		return err
	}
	t := newText(subject)
	cursor := 0
	matched := false
	for cursor <= t.Len() {
		m, err := p.attempt(t, cursor)
		if err != nil {
			return err
		}
		if m == nil {
			break
		}
		matched = true
		md := newMatchData(m)
		c.reg.Set(md)
		if err := yield(m.project(), md); err != nil {
			return err
		}
		// An empty match steps over one code point so the next attempt
		// cannot find it again. \G follows the cursor.
		full := m.spans[0]
		cursor = full.End
		if full.Empty() {
			cursor++
		}
	}
	if !matched {
		c.reg.Clear()
	}
	return nil
}

// Match finds the first occurrence of pattern in subject and stores the
// outcome in the register.
func (c *Context) Match(subject string, pattern any) (*MatchData, error) {
	return c.MatchAt(subject, pattern, 0)
}

// MatchAt is like Match but starts searching at code point pos, which also
// binds the continuation anchor. A pos outside the subject finds nothing.
func (c *Context) MatchAt(subject string, pattern any, pos int) (*MatchData, error) {
	p, err := resolvePattern(pattern)
	if err != nil {
		return nil, err
	}
	t := newText(subject)
	if pos < 0 || pos > t.Len() {
		c.reg.Clear()
		return nil, nil
	}
	m, err := p.attempt(t, pos)
	if err != nil {
		return nil, err
	}
	if m == nil {
		c.reg.Clear()
		return nil, nil
	}
	md := newMatchData(m)
	c.reg.Set(md)
	return md, nil
}
