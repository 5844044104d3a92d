package json

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/run2000/JSON-java-sub000/internal/ordered"
)

// DomValue is the default DOM representation produced by DomCollector:
// a tagged union over the ten ValueKinds, with ordered-insertion
// object members and in-order array elements. It mirrors
// mcvoid-json's Value type (a jsonType tag plus one field per kind),
// generalized onto a wider ValueKind set and backed by an
// order-preserving map instead of a linearly-scanned []pair slice.
type DomValue struct {
	kind   ValueKind
	bval   bool
	i32    int32
	i64    int64
	f64    float64
	bigint *big.Int
	bigdec BigDecimal
	str    string
	object *ordered.Map[string, *DomValue]
	array  []*DomValue
}

// domNull is the sentinel used wherever the DOM needs to represent a
// JSON null without allocating: the zero DomValue already has
// kind == KindNull.
var domNull = &DomValue{}

// Type reports the ValueKind of v.
func (v *DomValue) Type() ValueKind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// AsNull returns nil if v is JSON null, or ErrSemantic otherwise.
func (v *DomValue) AsNull() error {
	if v.Type() != KindNull {
		return fmt.Errorf("%w: value is not null: %v", ErrSemantic, v)
	}
	return nil
}

// AsBoolean extracts a bool, or ErrSemantic if v is not a boolean.
func (v *DomValue) AsBoolean() (bool, error) {
	if v.Type() != KindBool {
		return false, fmt.Errorf("%w: value is not a boolean: %v", ErrSemantic, v)
	}
	return v.bval, nil
}

// AsString extracts a string, or ErrSemantic if v is not a string.
func (v *DomValue) AsString() (string, error) {
	if v.Type() != KindString {
		return "", fmt.Errorf("%w: value is not a string: %v", ErrSemantic, v)
	}
	return v.str, nil
}

// AsFloat64 extracts any numeric value as a float64, widening
// int32/int64 and narrowing big.Int/BigDecimal as needed.
func (v *DomValue) AsFloat64() (float64, error) {
	switch v.Type() {
	case KindInt32:
		return float64(v.i32), nil
	case KindInt64:
		return float64(v.i64), nil
	case KindFloat64:
		return v.f64, nil
	case KindBigInt:
		f, _ := new(big.Float).SetInt(v.bigint).Float64()
		return f, nil
	case KindBigDec:
		return v.bigdec.Float64(), nil
	}
	return 0, fmt.Errorf("%w: value is not numeric: %v", ErrSemantic, v)
}

// AsInt64 extracts an integer value, rejecting floats.
func (v *DomValue) AsInt64() (int64, error) {
	switch v.Type() {
	case KindInt32:
		return int64(v.i32), nil
	case KindInt64:
		return v.i64, nil
	}
	return 0, fmt.Errorf("%w: value is not an integer: %v", ErrSemantic, v)
}

// AsArray extracts the array elements.
func (v *DomValue) AsArray() ([]*DomValue, error) {
	if v.Type() != KindArray {
		return nil, fmt.Errorf("%w: value is not an array: %v", ErrSemantic, v)
	}
	return v.array, nil
}

// AsObject extracts the object members as a plain Go map. Use
// (*DomValue).Key for order-sensitive or repeated traversal, which
// avoids rebuilding a map on every call.
func (v *DomValue) AsObject() (map[string]*DomValue, error) {
	if v.Type() != KindObject {
		return nil, fmt.Errorf("%w: value is not an object: %v", ErrSemantic, v)
	}
	return v.object.ToMap(), nil
}

// Index is a fluent accessor for array elements: out-of-range or
// non-array receivers yield the null sentinel rather than an error,
// so a chain of .Key/.Index calls can drill into a document without
// per-step error checking, mirroring mcvoid-json's fluent interface.
func (v *DomValue) Index(i int) *DomValue {
	if v.Type() != KindArray || i < 0 || i >= len(v.array) {
		return domNull
	}
	return v.array[i]
}

// Key is the object counterpart of Index.
func (v *DomValue) Key(k string) *DomValue {
	if v.Type() != KindObject {
		return domNull
	}
	if val, ok := v.object.Get(k); ok {
		return val
	}
	return domNull
}

// String renders a debug form of v. It is NOT valid JSON output; there
// is no serialization/writer subsystem here, this exists purely so
// *DomValue satisfies fmt.Stringer for logs and tests, the same way
// mcvoid-json's (*Value).String does.
func (v *DomValue) String() string {
	switch v.Type() {
	case KindNull:
		return "null"
	case KindBool:
		if v.bval {
			return "true"
		}
		return "false"
	case KindInt32:
		return strconv.FormatInt(int64(v.i32), 10)
	case KindInt64:
		return strconv.FormatInt(v.i64, 10)
	case KindFloat64:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case KindBigInt:
		return v.bigint.String()
	case KindBigDec:
		return v.bigdec.String()
	case KindString:
		return strconv.Quote(v.str)
	case KindArray:
		var b strings.Builder
		b.WriteByte('[')
		for i, e := range v.array {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.String())
		}
		b.WriteByte(']')
		return b.String()
	case KindObject:
		var b strings.Builder
		b.WriteByte('{')
		first := true
		v.object.Range(func(k string, val *DomValue) bool {
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(strconv.Quote(k))
			b.WriteString(": ")
			b.WriteString(val.String())
			return true
		})
		b.WriteByte('}')
		return b.String()
	}
	return "<unknown>"
}

// Float64 renders a BigDecimal as a float64 (lossy for very large
// unscaled values, adequate for debug rendering and AsFloat64).
func (d BigDecimal) Float64() float64 {
	if d.Unscaled == nil {
		return 0
	}
	f := new(big.Float).SetInt(d.Unscaled)
	if d.Scale == 0 {
		v, _ := f.Float64()
		return v
	}
	scale := new(big.Float).SetFloat64(pow10(d.Scale))
	f.Quo(f, scale)
	v, _ := f.Float64()
	return v
}

func pow10(scale int) float64 {
	neg := scale < 0
	if neg {
		scale = -scale
	}
	v := 1.0
	for i := 0; i < scale; i++ {
		v *= 10
	}
	if neg {
		return 1 / v
	}
	return v
}

// String renders d as plain decimal text (no exponent), padding with
// zeros as the scale requires; scientific form is never used.
func (d BigDecimal) String() string {
	if d.Unscaled == nil {
		return "0"
	}
	s := d.Unscaled.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if d.Scale <= 0 {
		s = s + strings.Repeat("0", -d.Scale)
	} else {
		for len(s) <= d.Scale {
			s = "0" + s
		}
		s = s[:len(s)-d.Scale] + "." + s[len(s)-d.Scale:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// domObjectAccum and domArrayAccum are the DomCollector's two
// accumulator types, alive only between NewObject/NewArray and the
// matching Finish call, mirroring the TreeBuilder's frame lifecycle.
type domObjectAccum struct {
	m *ordered.Map[string, *DomValue]
}

type domArrayAccum struct {
	elems []*DomValue
}

// DomCollector is the default reference Collector: ordered-insertion
// objects that reject duplicate keys, arrays that preserve input
// order, and a Finish that wraps the accumulated members in a new
// *DomValue (FinishObject on a clone of the member map).
type DomCollector struct{}

var _ Collector[*domObjectAccum, *domArrayAccum, *DomValue, *DomValue] = DomCollector{}

func (DomCollector) NewObject() *domObjectAccum {
	return &domObjectAccum{m: ordered.New[string, *DomValue]()}
}

func (DomCollector) NewArray() *domArrayAccum {
	return &domArrayAccum{}
}

// AsDomValue lifts a generic Value produced against DomCollector back
// into a *DomValue, for callers (such as the jsonstream CLI) that
// received a Value[*DomValue, *DomValue] from BuildValue and want the
// single concrete type back regardless of which ValueKind the
// top-level document turned out to be.
func AsDomValue(v Value[*DomValue, *DomValue]) *DomValue {
	return domValueFromValue(v)
}

func domValueFromValue(v Value[*DomValue, *DomValue]) *DomValue {
	switch v.Kind {
	case KindNull:
		return domNull
	case KindObject:
		return v.Object
	case KindArray:
		return v.Array
	default:
		return &DomValue{
			kind:   v.Kind,
			bval:   v.Bool,
			i32:    v.Int32,
			i64:    v.Int64,
			f64:    v.Float64,
			bigint: v.BigInt,
			bigdec: v.BigDec,
			str:    v.Str,
		}
	}
}

func (DomCollector) Put(acc *domObjectAccum, key string, v Value[*DomValue, *DomValue]) error {
	if acc.m.Has(key) {
		return fmt.Errorf("%w: duplicate key %q", ErrSemantic, key)
	}
	acc.m.Set(key, domValueFromValue(v))
	return nil
}

func (DomCollector) PutNull(acc *domObjectAccum, key string) error {
	if acc.m.Has(key) {
		return fmt.Errorf("%w: duplicate key %q", ErrSemantic, key)
	}
	acc.m.Set(key, domNull)
	return nil
}

func (DomCollector) Push(acc *domArrayAccum, v Value[*DomValue, *DomValue]) {
	acc.elems = append(acc.elems, domValueFromValue(v))
}

func (DomCollector) PushNull(acc *domArrayAccum) {
	acc.elems = append(acc.elems, domNull)
}

// FinishObject clones the accumulator's backing map rather than handing
// out the live one, so the finished object shares no backing storage
// with its accumulator.
func (DomCollector) FinishObject(acc *domObjectAccum) (*DomValue, error) {
	return &DomValue{kind: KindObject, object: acc.m.Clone()}, nil
}

func (DomCollector) FinishArray(acc *domArrayAccum) (*DomValue, error) {
	return &DomValue{kind: KindArray, array: acc.elems}, nil
}

func (DomCollector) NullValue() Value[*DomValue, *DomValue] {
	return Value[*DomValue, *DomValue]{Kind: KindNull}
}
