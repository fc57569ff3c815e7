package strscan

// Register holds the last successful match of an execution context, or
// nil when the most recent attempt failed. Every match attempt issued
// through a Context overwrites it.
// A Register is not safe for concurrent use.
type Register struct {
	current *MatchData
}

// Get returns the current match, or nil.
func (r *Register) Get() *MatchData {
	return r.current
}

// Set replaces the current match.
func (r *Register) Set(md *MatchData) {
	r.current = md
}

// Clear is Set(nil).
func (r *Register) Clear() {
	r.current = nil
}

// hold sets md, runs fn, and sets md again once fn returns, discarding
// whatever fn stored in the meantime. When fn fails the register is left
// as fn left it.
func (r *Register) hold(md *MatchData, fn func() error) error {
	r.Set(md)
	if err := fn(); err != nil {
		return err
	}
	r.Set(md)
	return nil
}
