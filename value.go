package json

import "math/big"

// ValueKind tags the scalar variants a Lexer/EventReader can decode,
// plus (for the TreeBuilder-level Value) the two container kinds.
type ValueKind int8

const (
	KindNull ValueKind = iota
	KindBool
	KindInt32
	KindInt64
	KindFloat64
	KindBigInt
	KindBigDec
	KindString
	KindObject
	KindArray
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt32, KindInt64, KindFloat64, KindBigInt, KindBigDec:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// BigDecimal is an arbitrary-precision decimal, represented the
// standard way: an unscaled integer together with the power-of-ten
// scale to divide it by (value == Unscaled * 10^-Scale). Go's
// math/big has no native decimal type, so this is the smallest
// faithful stand-in for "decode_number_as_bigdec" that preserves the
// exact digit sequence of the source number instead of rounding
// through a float64.
type BigDecimal struct {
	Unscaled *big.Int
	Scale    int
}

// Scalar is the tagged union returned by EventReader.NextValue: a sum
// over the non-container JSON value kinds. Using a Kind tag plus
// per-kind fields (rather than a boxed interface{}) avoids boxing the
// common int64/float64/bool cases.
type Scalar struct {
	Kind    ValueKind
	Bool    bool
	Int32   int32
	Int64   int64
	Float64 float64
	BigInt  *big.Int
	BigDec  BigDecimal
	Str     string
}

// Value is the TreeBuilder-level sum type: a Scalar extended with slots
// for the two result types a Collector produces for objects and
// arrays. It is generic over those two result types so the same
// builder code works whether the collector is the default DOM
// collector, the immutable map/list collector, or a caller's own.
type Value[OR, AR any] struct {
	Kind    ValueKind
	Bool    bool
	Int32   int32
	Int64   int64
	Float64 float64
	BigInt  *big.Int
	BigDec  BigDecimal
	Str     string
	Object  OR
	Array   AR
}

// fromScalar lifts a Scalar into a Value[OR, AR] with its container
// slots left zero-valued.
func fromScalar[OR, AR any](s Scalar) Value[OR, AR] {
	return Value[OR, AR]{
		Kind:    s.Kind,
		Bool:    s.Bool,
		Int32:   s.Int32,
		Int64:   s.Int64,
		Float64: s.Float64,
		BigInt:  s.BigInt,
		BigDec:  s.BigDec,
		Str:     s.Str,
	}
}
