package json

import "strings"

// unbounded is the internal representation of "no cap configured": a
// zero or negative BuilderLimits field means "use that field's upper
// bound", never "forbid". For every field except the two digit counts
// (which fall back to 32767 / 127) that upper bound is unbounded.
const unbounded = int(^uint(0) >> 1) // math.MaxInt, without importing math for one constant

// BuilderLimits bounds a TreeBuilder parse of untrusted input. A field
// left at its zero value (or set negative) means "practically
// unbounded" (the DefaultLimits value for that field), not "zero
// allowed".
type BuilderLimits struct {
	MaxKeyLength                int
	MaxStringLength             int
	MaxMantissaDigits           int
	MaxExponentDigits           int
	MaxContentNodesPerContainer int
	MaxNestingDepth             int
	Filter                      Filter
}

// DefaultLimits returns the "practically unbounded" preset: every cap
// effectively off except the mantissa/exponent digit counts, which
// default to the widest named values (32767 / 127) so a caller gets
// the same ceiling whether or not they configured anything.
func DefaultLimits() BuilderLimits {
	return BuilderLimits{
		MaxKeyLength:                unbounded,
		MaxStringLength:             unbounded,
		MaxMantissaDigits:           32767,
		MaxExponentDigits:           127,
		MaxContentNodesPerContainer: unbounded,
		MaxNestingDepth:             unbounded,
	}
}

// SecureDefaults returns the preset recommended for parsing untrusted
// JSON: tight caps on keys, numeric digit runs, content nodes and
// nesting depth, with string length left unbounded (callers parsing
// untrusted input are expected to cap overall input size upstream).
func SecureDefaults() BuilderLimits {
	return BuilderLimits{
		MaxKeyLength:                1024,
		MaxStringLength:             unbounded,
		MaxMantissaDigits:           19,
		MaxExponentDigits:           3,
		MaxContentNodesPerContainer: 10000,
		MaxNestingDepth:             256,
	}
}

func effective(limit int) int {
	if limit <= 0 {
		return unbounded
	}
	return limit
}

func (l BuilderLimits) maxKeyLength() int       { return effective(l.MaxKeyLength) }
func (l BuilderLimits) maxStringLength() int    { return effective(l.MaxStringLength) }
func (l BuilderLimits) maxMantissaDigits() int {
	if l.MaxMantissaDigits <= 0 {
		return 32767
	}
	return l.MaxMantissaDigits
}
func (l BuilderLimits) maxExponentDigits() int {
	if l.MaxExponentDigits <= 0 {
		return 127
	}
	return l.MaxExponentDigits
}
func (l BuilderLimits) maxContentNodes() int    { return effective(l.MaxContentNodesPerContainer) }
func (l BuilderLimits) maxNestingDepth() int    { return effective(l.MaxNestingDepth) }

// Filter is consulted before a child is materialised. Returning false
// causes the TreeBuilder to skip the subtree (for containers) or
// discard the decoded scalar (for leaves) rather than raising an
// error.
type Filter interface {
	AcceptField(key string, pending ValueKind, path Path) bool
	AcceptIndex(index int, pending ValueKind, path Path) bool
}

// Path is a sized iterable over the TreeBuilder's active container
// frames, used to build an RFC 6901 JSON Pointer.
type Path interface {
	Len() int
	// Segment returns the raw (unescaped) identifier of the i'th frame,
	// from the outermost addressed frame (0) to the current frame
	// (Len()-1); Pointer applies the RFC 6901 escaping.
	Segment(i int) string
}

// Pointer renders p as an RFC 6901 JSON Pointer ("/a/0/b").
func Pointer(p Path) string {
	if p.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < p.Len(); i++ {
		b.WriteByte('/')
		b.WriteString(escapePointerSegment(p.Segment(i)))
	}
	return b.String()
}

func escapePointerSegment(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
