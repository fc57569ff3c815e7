package strscan

import "sort"

// Span is a half-open range of code point offsets into a subject.
// A group that did not participate in a match has the span {-1, -1}.
type Span struct {
	Start int
	End   int
}

// Empty reports whether the span covers no code points.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// match is the outcome of one successful attempt.
type match struct {
	subject *text
	// spans[0] is the whole match, spans[i] the i-th capture group.
	spans []Span
	named map[string]Span
}

func newMatch(t *text, groups int) *match {
	m := &match{
		subject: t,
		spans:   make([]Span, groups+1),
	}
	for i := range m.spans {
		m.spans[i] = Span{-1, -1}
	}
	return m
}

func (m *match) setName(name string, sp Span) {
	if m.named == nil {
		m.named = map[string]Span{}
	}
	// A name may be shared by alternatives; the participating one wins.
	if prev, ok := m.named[name]; ok && prev.Start != -1 {
		return
	}
	m.named[name] = sp
}

func (m *match) capture(sp Span) Capture {
	if sp.Start == -1 {
		return Capture{}
	}
	return Capture{Text: m.subject.slice(sp.Start, sp.End), Valid: true}
}

// Capture is the text of a capture group. Valid is false when the group
// did not participate in the match, which is distinct from an empty
// capture.
type Capture struct {
	Text  string
	Valid bool
}

// Result is one element of a scan. Patterns without capture groups
// produce the matched text; patterns with groups produce one Capture per
// group and leave Text empty.
type Result struct {
	Text   string
	Groups []Capture
}

// HasGroups reports whether r holds capture groups rather than plain text.
func (r Result) HasGroups() bool {
	return r.Groups != nil
}

func (m *match) project() Result {
	if len(m.spans) == 1 {
		return Result{Text: m.subject.slice(m.spans[0].Start, m.spans[0].End)}
	}
	groups := make([]Capture, len(m.spans)-1)
	for i, sp := range m.spans[1:] {
		groups[i] = m.capture(sp)
	}
	return Result{Groups: groups}
}

// callbackArgs returns the arguments a scan callback receives: the whole
// match alone, or every group in order.
func callbackArgs(r Result) []Capture {
	if r.HasGroups() {
		return r.Groups
	}
	return []Capture{{Text: r.Text, Valid: true}}
}

// MatchData is a read-only view of a successful match. Group 0 is the
// whole match; offsets are code points.
type MatchData struct {
	m *match
}

func newMatchData(m *match) *MatchData {
	return &MatchData{m: m}
}

// Subject returns the string the match was found in.
func (md *MatchData) Subject() string {
	return md.m.subject.String()
}

// String returns the text of the whole match.
func (md *MatchData) String() string {
	s, _ := md.Group(0)
	return s
}

// Len returns the number of groups including the whole match.
func (md *MatchData) Len() int {
	return len(md.m.spans)
}

// Group returns the text of group i. It reports false when i is out of
// range or the group did not participate.
func (md *MatchData) Group(i int) (string, bool) {
	if i < 0 || i >= len(md.m.spans) {
		return "", false
	}
	c := md.m.capture(md.m.spans[i])
	return c.Text, c.Valid
}

// Named returns the text of the named group.
func (md *MatchData) Named(name string) (string, bool) {
	sp, ok := md.m.named[name]
	if !ok {
		return "", false
	}
	c := md.m.capture(sp)
	return c.Text, c.Valid
}

// Names returns the names of the named groups in sorted order.
func (md *MatchData) Names() []string {
	names := make([]string, 0, len(md.m.named))
	for name := range md.m.named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Offset returns the span of group i.
func (md *MatchData) Offset(i int) (Span, bool) {
	if i < 0 || i >= len(md.m.spans) || md.m.spans[i].Start == -1 {
		return Span{-1, -1}, false
	}
	return md.m.spans[i], true
}

// Begin returns the start offset of group i, or -1.
func (md *MatchData) Begin(i int) int {
	sp, _ := md.Offset(i)
	return sp.Start
}

// End returns the end offset of group i, or -1.
func (md *MatchData) End(i int) int {
	sp, _ := md.Offset(i)
	return sp.End
}

// Captures returns the capture groups, excluding the whole match.
func (md *MatchData) Captures() []Capture {
	out := make([]Capture, len(md.m.spans)-1)
	for i, sp := range md.m.spans[1:] {
		out[i] = md.m.capture(sp)
	}
	return out
}

// Slice returns the whole match followed by every capture group.
func (md *MatchData) Slice() []Capture {
	out := make([]Capture, len(md.m.spans))
	for i, sp := range md.m.spans {
		out[i] = md.m.capture(sp)
	}
	return out
}

// PreMatch returns the part of the subject before the match.
func (md *MatchData) PreMatch() string {
	return md.m.subject.slice(0, md.m.spans[0].Start)
}

// PostMatch returns the part of the subject after the match.
func (md *MatchData) PostMatch() string {
	t := md.m.subject
	return t.slice(md.m.spans[0].End, t.Len())
}
