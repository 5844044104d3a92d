package json

import (
	"fmt"

	"github.com/run2000/JSON-java-sub000/internal/ordered"
)

// immutableObjectAccum and immutableArrayAccum are
// ImmutableMapListCollector's accumulators. The object accumulator
// stays order-preserving until FinishObject, at which point order is
// discarded in favor of a plain Go map, matching the semantics callers
// actually get from a `map[string]any`.
type immutableObjectAccum struct {
	m *ordered.Map[string, any]
}

type immutableArrayAccum struct {
	elems []any
}

// ImmutableMapListCollector builds the "maps-and-lists" tree shape
// idiomatic Go code already expects from encoding/json's
// Unmarshal(&v) into an any: objects become map[string]any, arrays
// become []any, and JSON null becomes Go's untyped nil. It trades
// DomValue's typed accessors and object key order for a result any
// stdlib-oriented caller can range/type-assert over directly;
// duplicate keys are rejected with the same ErrSemantic error and
// JSON Pointer as under DomCollector.
//
// The returned map and slice are not actually read-only — Go has no
// built-in immutable view over either type — but callers must treat
// them as such: ImmutableMapListCollector does not defensively copy on
// the way out, so the returned slice is the accumulator's own.
type ImmutableMapListCollector struct{}

var _ Collector[*immutableObjectAccum, *immutableArrayAccum, map[string]any, []any] = ImmutableMapListCollector{}

func (ImmutableMapListCollector) NewObject() *immutableObjectAccum {
	return &immutableObjectAccum{m: ordered.New[string, any]()}
}

func (ImmutableMapListCollector) NewArray() *immutableArrayAccum {
	return &immutableArrayAccum{}
}

func toAny(v Value[map[string]any, []any]) any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool
	case KindInt32:
		return v.Int32
	case KindInt64:
		return v.Int64
	case KindFloat64:
		return v.Float64
	case KindBigInt:
		return v.BigInt
	case KindBigDec:
		return v.BigDec
	case KindString:
		return v.Str
	case KindObject:
		return v.Object
	case KindArray:
		return v.Array
	default:
		return nil
	}
}

func (ImmutableMapListCollector) Put(acc *immutableObjectAccum, key string, v Value[map[string]any, []any]) error {
	if acc.m.Has(key) {
		return fmt.Errorf("%w: duplicate key %q", ErrSemantic, key)
	}
	acc.m.Set(key, toAny(v))
	return nil
}

func (ImmutableMapListCollector) PutNull(acc *immutableObjectAccum, key string) error {
	if acc.m.Has(key) {
		return fmt.Errorf("%w: duplicate key %q", ErrSemantic, key)
	}
	acc.m.Set(key, nil)
	return nil
}

func (ImmutableMapListCollector) Push(acc *immutableArrayAccum, v Value[map[string]any, []any]) {
	acc.elems = append(acc.elems, toAny(v))
}

func (ImmutableMapListCollector) PushNull(acc *immutableArrayAccum) {
	acc.elems = append(acc.elems, nil)
}

func (ImmutableMapListCollector) FinishObject(acc *immutableObjectAccum) (map[string]any, error) {
	return acc.m.ToMap(), nil
}

func (ImmutableMapListCollector) FinishArray(acc *immutableArrayAccum) ([]any, error) {
	if acc.elems == nil {
		return []any{}, nil
	}
	return acc.elems, nil
}

func (ImmutableMapListCollector) NullValue() Value[map[string]any, []any] {
	return Value[map[string]any, []any]{Kind: KindNull}
}
