package strscan

// Flag is a bitmask of pattern options.
// The zero value corresponds to a pattern with no options.
// Combine flags with bitwise OR, e.g. FlagIgnoreCase|FlagMultiline.
type Flag uint8

const (
	// Case-insensitive matching ("i" flag).
	FlagIgnoreCase Flag = 1 << iota

	// "." matches line terminators ("m" flag).
	// "^" and "$" always match at line boundaries regardless of this flag.
	FlagMultiline

	// Whitespace and "#" comments in the pattern are ignored ("x" flag).
	// Only the Perl flavor supports it.
	FlagExtended

	// The whole pattern is bound to the continuation anchor ("y" flag).
	// Only the ECMAScript flavor supports it; the Perl flavor spells the
	// same thing with \G.
	FlagSticky
)

// FlagError reports a flag string or flag combination that cannot be used.
type FlagError struct {
	err string
}

func (e FlagError) Error() string {
	return e.err
}

var _ error = (*FlagError)(nil)

func newFlagError(err string) FlagError {
	return FlagError{err: err}
}

// ParseFlags converts a flag string such as "im" into a Flag.
// Unknown and repeated letters are rejected.
func ParseFlags(str string) (Flag, error) {
	var flags Flag
	for _, char := range str {
		var m Flag
		switch char {
		case 'i':
			m = FlagIgnoreCase
		case 'm':
			m = FlagMultiline
		case 'x':
			m = FlagExtended
		case 'y':
			m = FlagSticky
		default:
			return 0, newFlagError("invalid flag " + string(char))
		}
		if flags&m != 0 {
			return 0, newFlagError("duplicate flag " + string(char))
		}
		flags |= m
	}
	return flags, nil
}

// String returns the flag letters in canonical order.
func (f Flag) String() string {
	var buf []byte
	if f&FlagIgnoreCase != 0 {
		buf = append(buf, 'i')
	}
	if f&FlagMultiline != 0 {
		buf = append(buf, 'm')
	}
	if f&FlagExtended != 0 {
		buf = append(buf, 'x')
	}
	if f&FlagSticky != 0 {
		buf = append(buf, 'y')
	}
	return string(buf)
}
