package json

import (
	"fmt"
	"strconv"
)

// builderFrame is one level of the TreeBuilder's explicit, heap-
// allocated frame stack. Driving tree construction from a flat loop
// over this stack, rather than recursion through the Go call stack,
// is what lets BuildValue take arbitrarily deep adversarial input
// without risking a stack overflow: depth is instead bounded by
// BuilderLimits.MaxNestingDepth, an ordinary checked counter.
type builderFrame[OA, AA any] struct {
	kind    frameKind
	oa      OA
	aa      AA
	content int    // children accepted or skipped so far, for MaxContentNodesPerContainer
	index   int    // next array index, meaningful only when kind == frameArray
	key     string // pending member key, meaningful only when kind == frameObject
	seg     string // this frame's own JSON Pointer segment within its parent
}

// builderPath adapts a TreeBuilder's active frame stack to Path, for
// Filter decisions and for annotating limit/collector errors with an
// RFC 6901 pointer to the offending location.
type builderPath[OA, AA any] struct {
	frames []*builderFrame[OA, AA]
}

// Len and Segment expose only the frames below the outermost one: the
// outermost frame is the root of whatever this builder is constructing
// (a whole document or a subtree) and has no address of its own, so it
// contributes no segment to the rendered pointer.
func (p builderPath[OA, AA]) Len() int {
	if len(p.frames) == 0 {
		return 0
	}
	return len(p.frames) - 1
}

func (p builderPath[OA, AA]) Segment(i int) string { return p.frames[i+1].seg }

// builder holds the state of one BuildValue/BuildObjectSubtree/
// BuildArraySubtree call: the EventReader it trampolines over, the
// limits it enforces, the Collector it feeds, and the explicit frame
// stack standing in for the call stack a naive recursive builder
// would use.
type builder[OA, AA, OR, AR any] struct {
	reader    *EventReader
	limits    BuilderLimits
	collector Collector[OA, AA, OR, AR]
	stack     []*builderFrame[OA, AA]
}

func (b *builder[OA, AA, OR, AR]) top() *builderFrame[OA, AA] {
	return b.stack[len(b.stack)-1]
}

func (b *builder[OA, AA, OR, AR]) currentPath() Path {
	return builderPath[OA, AA]{frames: b.stack}
}

// eventPendingKind approximates the ValueKind a Filter sees for an
// about-to-be-decoded child. NumberValue is reported as KindFloat64,
// a placeholder: the exact numeric subtype (int32/int64/float64/
// big.Int/BigDecimal) is only known once the number is actually
// decoded, which happens after the Filter has already had its say.
func eventPendingKind(ev ParseEvent) ValueKind {
	switch ev {
	case StartObject:
		return KindObject
	case StartArray:
		return KindArray
	case NullValue:
		return KindNull
	case BooleanValue:
		return KindBool
	case StringValue:
		return KindString
	default:
		return KindFloat64
	}
}

// childPointer is the RFC 6901 pointer to the child about to be
// accepted or skipped: the current container's own pointer plus its
// pending key (object) or next index (array).
func (b *builder[OA, AA, OR, AR]) childPointer() string {
	top := b.top()
	seg := top.key
	if top.kind == frameArray {
		seg = strconv.Itoa(top.index)
	}
	return Pointer(b.currentPath()) + "/" + escapePointerSegment(seg)
}

// beforeChild charges one content node against the current container
// (if any) and, when a Filter is configured, asks whether the child
// about to be decoded should be skipped instead of materialised.
func (b *builder[OA, AA, OR, AR]) beforeChild(pendingKind ValueKind) (skip bool, err error) {
	if len(b.stack) == 0 {
		return false, nil
	}
	top := b.top()
	top.content++
	if top.content > b.limits.maxContentNodes() {
		pointer := b.childPointer()
		return false, &ParseError{
			Err:     ErrLimit,
			Msg:     fmt.Sprintf("container exceeds max content nodes (%d)", b.limits.maxContentNodes()),
			Pos:     b.reader.lex.Position(),
			Pointer: pointer,
		}
	}
	if b.limits.Filter == nil {
		return false, nil
	}
	if top.kind == frameObject {
		return !b.limits.Filter.AcceptField(top.key, pendingKind, b.currentPath()), nil
	}
	return !b.limits.Filter.AcceptIndex(top.index, pendingKind, b.currentPath()), nil
}

// afterChild advances the current container's position once a child,
// accepted or skipped, has been fully consumed.
func (b *builder[OA, AA, OR, AR]) afterChild() {
	if len(b.stack) == 0 {
		return
	}
	top := b.top()
	if top.kind == frameArray {
		top.index++
	} else {
		top.key = ""
	}
}

// pushFrame opens a new container frame as a child of the current top
// frame (or as the root, if the stack is empty).
func (b *builder[OA, AA, OR, AR]) pushFrame(kind frameKind) error {
	if len(b.stack) >= b.limits.maxNestingDepth() {
		return newParseError(ErrLimit, b.reader.lex.Position(), "nesting exceeds max depth (%d)", b.limits.maxNestingDepth())
	}
	seg := ""
	if len(b.stack) > 0 {
		top := b.top()
		if top.kind == frameObject {
			seg = top.key
		} else {
			seg = strconv.Itoa(top.index)
		}
	}
	f := &builderFrame[OA, AA]{kind: kind, seg: seg}
	if kind == frameObject {
		f.oa = b.collector.NewObject()
	} else {
		f.aa = b.collector.NewArray()
	}
	b.stack = append(b.stack, f)
	return nil
}

// popFrame finishes the top frame via the Collector and removes it
// from the stack, returning the finished container as a Value.
func (b *builder[OA, AA, OR, AR]) popFrame() (Value[OR, AR], error) {
	f := b.top()
	var result Value[OR, AR]
	if f.kind == frameObject {
		or, err := b.collector.FinishObject(f.oa)
		if err != nil {
			e := b.wrapErr(err, "")
			b.stack = b.stack[:len(b.stack)-1]
			return Value[OR, AR]{}, e
		}
		result = Value[OR, AR]{Kind: KindObject, Object: or}
	} else {
		ar, err := b.collector.FinishArray(f.aa)
		if err != nil {
			e := b.wrapErr(err, "")
			b.stack = b.stack[:len(b.stack)-1]
			return Value[OR, AR]{}, e
		}
		result = Value[OR, AR]{Kind: KindArray, Array: ar}
	}
	b.stack = b.stack[:len(b.stack)-1]
	return result, nil
}

// attach inserts a fully built child value (or null) into the current
// top frame and advances past it.
func (b *builder[OA, AA, OR, AR]) attach(v Value[OR, AR]) error {
	top := b.top()
	var err error
	if top.kind == frameObject {
		if v.Kind == KindNull {
			err = b.collector.PutNull(top.oa, top.key)
		} else {
			err = b.collector.Put(top.oa, top.key, v)
		}
		if err != nil {
			return b.wrapErr(err, top.key)
		}
	} else {
		if v.Kind == KindNull {
			b.collector.PushNull(top.aa)
		} else {
			b.collector.Push(top.aa, v)
		}
	}
	b.afterChild()
	return nil
}

// wrapErr normalises an error returned by the Collector (from
// Put/PutNull/FinishObject/FinishArray) into a *ParseError annotated
// with the current position and the JSON Pointer of the offending
// location, appending extraSeg (a rejected key) when given.
func (b *builder[OA, AA, OR, AR]) wrapErr(err error, extraSeg string) error {
	pointer := Pointer(b.currentPath())
	if extraSeg != "" {
		pointer = pointer + "/" + escapePointerSegment(extraSeg)
	}
	return withPointer(err, b.reader.lex.Position(), pointer)
}

// scalarValue decodes the current scalar event into a Value, using
// the Collector's NullValue representation when it will become the
// whole document (the frame stack is empty).
func (b *builder[OA, AA, OR, AR]) scalarValue(ev ParseEvent) (Value[OR, AR], error) {
	switch ev {
	case NullValue:
		if err := b.reader.NextNull(); err != nil {
			return Value[OR, AR]{}, err
		}
		if len(b.stack) == 0 {
			return b.collector.NullValue(), nil
		}
		return Value[OR, AR]{Kind: KindNull}, nil
	case BooleanValue:
		v, err := b.reader.NextBoolean()
		if err != nil {
			return Value[OR, AR]{}, err
		}
		return Value[OR, AR]{Kind: KindBool, Bool: v}, nil
	case NumberValue:
		s, err := b.reader.NextValue()
		if err != nil {
			return Value[OR, AR]{}, err
		}
		return fromScalar[OR, AR](s), nil
	case StringValue:
		s, err := b.reader.NextString(0)
		if err != nil {
			return Value[OR, AR]{}, err
		}
		return Value[OR, AR]{Kind: KindString, Str: s}, nil
	default:
		return Value[OR, AR]{}, b.reader.grammarErr("unexpected scalar event %v", ev)
	}
}

// run is the trampoline: it drives the EventReader one event at a
// time, maintaining builder.stack in place of recursive calls, until
// the value the stack started at (empty for a whole document, or
// pre-seeded with one frame for a subtree) is fully built.
func (b *builder[OA, AA, OR, AR]) run() (Value[OR, AR], error) {
	ev, err := b.reader.Next()
	if err != nil {
		return Value[OR, AR]{}, err
	}
	for {
		switch ev {
		case StartObject, StartArray:
			kind := frameObject
			if ev == StartArray {
				kind = frameArray
			}
			skip, err := b.beforeChild(eventPendingKind(ev))
			if err != nil {
				return Value[OR, AR]{}, err
			}
			if skip {
				if err := b.reader.SkipToEndContainer(); err != nil {
					return Value[OR, AR]{}, err
				}
				b.afterChild()
			} else if err := b.pushFrame(kind); err != nil {
				return Value[OR, AR]{}, err
			}
		case EndObject, EndArray:
			v, err := b.popFrame()
			if err != nil {
				return Value[OR, AR]{}, err
			}
			if len(b.stack) == 0 {
				return v, nil
			}
			if err := b.attach(v); err != nil {
				return Value[OR, AR]{}, err
			}
		case Key:
			key, err := b.reader.NextKey(b.limits.maxKeyLength())
			if err != nil {
				return Value[OR, AR]{}, err
			}
			b.top().key = key
		case NullValue, BooleanValue, NumberValue, StringValue:
			skip, err := b.beforeChild(eventPendingKind(ev))
			if err != nil {
				return Value[OR, AR]{}, err
			}
			if skip {
				b.afterChild()
			} else {
				v, err := b.scalarValue(ev)
				if err != nil {
					return Value[OR, AR]{}, err
				}
				if len(b.stack) == 0 {
					return v, nil
				}
				if err := b.attach(v); err != nil {
					return Value[OR, AR]{}, err
				}
			}
		}
		ev, err = b.reader.Next()
		if err != nil {
			return Value[OR, AR]{}, err
		}
	}
}

// BuildValue consumes reader from its current (freshly constructed)
// state through exactly one JSON document, materialising the result
// through collector. It is the entry point most callers use.
func BuildValue[OA, AA, OR, AR any](reader *EventReader, limits BuilderLimits, collector Collector[OA, AA, OR, AR]) (Value[OR, AR], error) {
	ev, err := reader.Next()
	if err != nil {
		return Value[OR, AR]{}, err
	}
	if ev != Document {
		return Value[OR, AR]{}, newParseError(ErrGrammar, reader.lex.Position(), "expected start of document, found %v", ev)
	}
	b := &builder[OA, AA, OR, AR]{reader: reader, limits: limits, collector: collector}
	val, err := b.run()
	if err != nil {
		return Value[OR, AR]{}, err
	}
	ev, err = reader.Next()
	if err != nil {
		return Value[OR, AR]{}, err
	}
	if ev != EndDocument {
		return Value[OR, AR]{}, newParseError(ErrGrammar, reader.lex.Position(), "trailing content after top-level value")
	}
	return val, nil
}

// BuildObject is BuildValue narrowed to require the document root be
// an object, returning the collector's object result directly. It
// fails with a GrammarError if the root is any other kind.
func BuildObject[OA, AA, OR, AR any](reader *EventReader, limits BuilderLimits, collector Collector[OA, AA, OR, AR]) (OR, error) {
	val, err := BuildValue(reader, limits, collector)
	if err != nil {
		var zero OR
		return zero, err
	}
	if val.Kind != KindObject {
		var zero OR
		return zero, newParseError(ErrGrammar, reader.lex.Position(), "expected object, found %v", val.Kind)
	}
	return val.Object, nil
}

// BuildArray is the array counterpart of BuildObject.
func BuildArray[OA, AA, OR, AR any](reader *EventReader, limits BuilderLimits, collector Collector[OA, AA, OR, AR]) (AR, error) {
	val, err := BuildValue(reader, limits, collector)
	if err != nil {
		var zero AR
		return zero, err
	}
	if val.Kind != KindArray {
		var zero AR
		return zero, newParseError(ErrGrammar, reader.lex.Position(), "expected array, found %v", val.Kind)
	}
	return val.Array, nil
}

// BuildObjectSubtree builds a single object, given reader is
// positioned exactly at the StartObject event that opens it (as
// returned by reader.Next()). It lets a caller drive the EventReader
// manually and materialise only selected nested members as trees,
// mixing StAX-style iteration with selective tree construction.
func BuildObjectSubtree[OA, AA, OR, AR any](reader *EventReader, limits BuilderLimits, collector Collector[OA, AA, OR, AR]) (Value[OR, AR], error) {
	if reader.CurrentEvent() != StartObject {
		return Value[OR, AR]{}, reader.grammarErr("build_object_subtree requires a just-opened object")
	}
	b := &builder[OA, AA, OR, AR]{reader: reader, limits: limits, collector: collector}
	if err := b.pushFrame(frameObject); err != nil {
		return Value[OR, AR]{}, err
	}
	return b.run()
}

// BuildArraySubtree is the array counterpart of BuildObjectSubtree.
func BuildArraySubtree[OA, AA, OR, AR any](reader *EventReader, limits BuilderLimits, collector Collector[OA, AA, OR, AR]) (Value[OR, AR], error) {
	if reader.CurrentEvent() != StartArray {
		return Value[OR, AR]{}, reader.grammarErr("build_array_subtree requires a just-opened array")
	}
	b := &builder[OA, AA, OR, AR]{reader: reader, limits: limits, collector: collector}
	if err := b.pushFrame(frameArray); err != nil {
		return Value[OR, AR]{}, err
	}
	return b.run()
}
