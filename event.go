package json

import "math/big"

// ParseEvent is the externally observable state of an EventReader.
// One additional internal-only state (eventInit, before the first
// Next) is never itself returned; the ':' and ',' separators have no
// state of their own and are consumed inside Next together with the
// key or value that follows them.
type ParseEvent int8

const (
	eventInit ParseEvent = iota // internal: before the first Next call
	Document
	EndDocument
	StartObject
	EndObject
	StartArray
	EndArray
	Key
	NullValue
	BooleanValue
	NumberValue
	StringValue
)

func (e ParseEvent) String() string {
	switch e {
	case Document:
		return "DOCUMENT"
	case EndDocument:
		return "END_DOCUMENT"
	case StartObject:
		return "START_OBJECT"
	case EndObject:
		return "END_OBJECT"
	case StartArray:
		return "START_ARRAY"
	case EndArray:
		return "END_ARRAY"
	case Key:
		return "KEY"
	case NullValue:
		return "NULL_VALUE"
	case BooleanValue:
		return "BOOLEAN_VALUE"
	case NumberValue:
		return "NUMBER_VALUE"
	case StringValue:
		return "STRING_VALUE"
	default:
		return "<internal>"
	}
}

type frameKind int8

const (
	frameObject frameKind = iota
	frameArray
)

type pendingScalar int8

const (
	pendingNone pendingScalar = iota
	pendingNull
	pendingBool
	pendingNumber
	pendingString
)

// EventReader is a JSON-grammar state machine on top of a Lexer. It
// exposes parsing as an iterator of ParseEvents, StAX-style, enforcing
// key/value/separator positions and matched brackets, while leaving
// tree construction to a caller (typically a TreeBuilder).
type EventReader struct {
	lex        *Lexer
	limits     BuilderLimits
	event      ParseEvent
	stack      []frameKind
	pending    pendingScalar
	pendingVal bool // decoded value for pendingBool
	currentKey string
}

// NewEventReader returns an EventReader reading tokens from src.
func NewEventReader(src CharacterSource) *EventReader {
	return &EventReader{
		lex:    NewLexer(src),
		limits: DefaultLimits(),
		event:  eventInit,
	}
}

// WithLimits installs limits (used only for the key/string/number
// length caps the EventReader enforces directly; nesting-depth and
// content-node caps are the TreeBuilder's concern). Returns the
// receiver for chaining.
func (r *EventReader) WithLimits(limits BuilderLimits) *EventReader {
	r.limits = limits
	return r
}

// CurrentEvent returns the last event returned by Next.
func (r *EventReader) CurrentEvent() ParseEvent { return r.event }

// StackDepth is the current nesting depth, plus one while a value is
// pending (sitting undecoded atop the conceptual container stack).
func (r *EventReader) StackDepth() int {
	n := len(r.stack)
	if r.pending != pendingNone {
		n++
	}
	return n
}

// HasNext reports whether a further call to Next can make progress.
func (r *EventReader) HasNext() bool {
	return r.event != EndDocument
}

func (r *EventReader) grammarErr(format string, args ...any) error {
	return newParseError(ErrGrammar, r.lex.Position(), format, args...)
}

// Next advances the state machine to the next externally observable
// ParseEvent, consuming any ':' or ',' separator on the way in the
// same call.
func (r *EventReader) Next() (ParseEvent, error) {
	if r.pending != pendingNone {
		if err := r.discardPending(); err != nil {
			return 0, err
		}
	}
	switch r.event {
	case eventInit:
		r.event = Document
		return Document, nil
	case Document:
		if err := r.readValueToken(false, false); err != nil {
			return 0, err
		}
		return r.event, nil
	case StartArray:
		if err := r.readValueToken(true, false); err != nil {
			return 0, err
		}
		return r.event, nil
	case StartObject:
		if err := r.readKeyToken(true); err != nil {
			return 0, err
		}
		return r.event, nil
	case Key:
		if err := r.readValueToken(false, false); err != nil {
			return 0, err
		}
		return r.event, nil
	case NullValue, BooleanValue, NumberValue, StringValue, EndObject, EndArray:
		return r.afterValueOrClose()
	case EndDocument:
		return 0, r.grammarErr("JSON parser in an unexpected state: no input follows END_DOCUMENT")
	}
	return 0, r.grammarErr("JSON parser in an unexpected state")
}

func (r *EventReader) discardPending() error {
	switch r.pending {
	case pendingNumber:
		if _, err := r.lex.DecodeNumberValue(r.limits.maxMantissaDigits(), r.limits.maxExponentDigits()); err != nil {
			return err
		}
	case pendingString:
		if err := r.lex.DecodeString(&NullSink{}, r.limits.maxStringLength()); err != nil {
			return err
		}
	}
	r.pending = pendingNone
	return nil
}

// readValueToken reads one token expected to start a value (or, when
// permitted, a matching closing bracket for an empty/trailing-free
// container).
func (r *EventReader) readValueToken(allowArrayClose, allowObjectClose bool) error {
	tok, err := r.lex.NextTokenKind()
	if err != nil {
		return err
	}
	switch tok {
	case TokenEndArray:
		if !allowArrayClose {
			return r.grammarErr("unexpected ']'")
		}
		return r.closeContainer(frameArray, EndArray)
	case TokenEndObject:
		if !allowObjectClose {
			return r.grammarErr("unexpected '}'")
		}
		return r.closeContainer(frameObject, EndObject)
	case TokenStartObject:
		r.stack = append(r.stack, frameObject)
		r.event = StartObject
		return nil
	case TokenStartArray:
		r.stack = append(r.stack, frameArray)
		r.event = StartArray
		return nil
	case TokenNull:
		r.pending = pendingNull
		r.event = NullValue
		return nil
	case TokenTrue:
		r.pending = pendingBool
		r.pendingVal = true
		r.event = BooleanValue
		return nil
	case TokenFalse:
		r.pending = pendingBool
		r.pendingVal = false
		r.event = BooleanValue
		return nil
	case TokenNumber:
		r.pending = pendingNumber
		r.event = NumberValue
		return nil
	case TokenString:
		r.pending = pendingString
		r.event = StringValue
		return nil
	default:
		return r.grammarErr("unexpected token %v where a value was expected", tok)
	}
}

// readKeyToken reads an object key (or, when permitted, the closing
// '}' of an empty object), eagerly decoding the key string and
// requiring the following ':' as one atomic step.
func (r *EventReader) readKeyToken(allowClose bool) error {
	tok, err := r.lex.NextTokenKind()
	if err != nil {
		return err
	}
	if tok == TokenEndObject {
		if !allowClose {
			return r.grammarErr("expected a string key, found '}'")
		}
		return r.closeContainer(frameObject, EndObject)
	}
	if tok != TokenString {
		return r.grammarErr("expected a string key, found %v", tok)
	}
	sink := &stringSink{}
	if err := r.lex.DecodeString(sink, r.limits.maxKeyLength()); err != nil {
		return err
	}
	colon, err := r.lex.NextTokenKind()
	if err != nil {
		return err
	}
	if colon != TokenKeySeparator {
		return r.grammarErr("expected ':' after object key, found %v", colon)
	}
	r.currentKey = sink.String()
	r.event = Key
	return nil
}

// afterValueOrClose handles the position following a value or a
// closing bracket: a ',' (continuing the enclosing container), a
// matching closing bracket, or, at the top level, end-of-input.
func (r *EventReader) afterValueOrClose() (ParseEvent, error) {
	if len(r.stack) == 0 {
		tok, err := r.lex.NextTokenKind()
		if err != nil {
			return 0, err
		}
		if tok != TokenEndOfInput {
			return 0, r.grammarErr("trailing content after top-level value")
		}
		r.event = EndDocument
		return EndDocument, nil
	}
	top := r.stack[len(r.stack)-1]
	tok, err := r.lex.NextTokenKind()
	if err != nil {
		return 0, err
	}
	switch tok {
	case TokenValueSeparator:
		switch top {
		case frameArray:
			if err := r.readValueToken(false, false); err != nil {
				return 0, err
			}
		case frameObject:
			if err := r.readKeyToken(false); err != nil {
				return 0, err
			}
		}
		return r.event, nil
	case TokenEndArray:
		if err := r.closeContainer(frameArray, EndArray); err != nil {
			return 0, err
		}
		return r.event, nil
	case TokenEndObject:
		if err := r.closeContainer(frameObject, EndObject); err != nil {
			return 0, err
		}
		return r.event, nil
	default:
		return 0, r.grammarErr("expected ',' or a closing bracket, found %v", tok)
	}
}

func (r *EventReader) closeContainer(kind frameKind, ev ParseEvent) error {
	if len(r.stack) == 0 || r.stack[len(r.stack)-1] != kind {
		return r.grammarErr("mismatched closing bracket")
	}
	r.stack = r.stack[:len(r.stack)-1]
	r.event = ev
	return nil
}

// SkipToEndContainer drains and discards every event up to and
// including the End{Object,Array} matching the container whose Start
// was just returned, so a filter that rejects a subtree can skip it
// without the caller having to hand-walk nested brackets.
func (r *EventReader) SkipToEndContainer() error {
	if r.event != StartObject && r.event != StartArray {
		return r.grammarErr("skip_to_end_container requires a just-opened container")
	}
	depth := len(r.stack)
	for {
		ev, err := r.Next()
		if err != nil {
			return err
		}
		if len(r.stack) < depth {
			if ev != EndObject && ev != EndArray {
				return r.grammarErr("parser in an unexpected state during skip")
			}
			return nil
		}
	}
}

func effectiveMax(callerMax, limitMax int) int {
	if callerMax <= 0 {
		return limitMax
	}
	if limitMax <= 0 {
		return callerMax
	}
	if callerMax < limitMax {
		return callerMax
	}
	return limitMax
}

// NextKey returns the decoded key string for the current Key event.
func (r *EventReader) NextKey(maxLen int) (string, error) {
	if r.event != Key {
		return "", r.grammarErr("current event is not a key")
	}
	if maxLen > 0 && len(r.currentKey) > maxLen {
		return "", newParseError(ErrLimit, r.lex.Position(), "key exceeds max length %d", maxLen)
	}
	return r.currentKey, nil
}

// NextValue decodes the current scalar event generically.
func (r *EventReader) NextValue() (Scalar, error) {
	switch r.event {
	case NullValue:
		r.pending = pendingNone
		return Scalar{Kind: KindNull}, nil
	case BooleanValue:
		v := r.pendingVal
		r.pending = pendingNone
		return Scalar{Kind: KindBool, Bool: v}, nil
	case NumberValue:
		s, err := r.lex.DecodeNumberValue(r.limits.maxMantissaDigits(), r.limits.maxExponentDigits())
		if err != nil {
			return Scalar{}, err
		}
		r.pending = pendingNone
		return s, nil
	case StringValue:
		sink := &stringSink{}
		if err := r.lex.DecodeString(sink, r.limits.maxStringLength()); err != nil {
			return Scalar{}, err
		}
		r.pending = pendingNone
		return Scalar{Kind: KindString, Str: sink.String()}, nil
	default:
		return Scalar{}, r.grammarErr("current event is not a value")
	}
}

// NextNull consumes a NULL_VALUE event.
func (r *EventReader) NextNull() error {
	if r.event != NullValue {
		return r.grammarErr("current event is not a null value")
	}
	r.pending = pendingNone
	return nil
}

// NextBoolean consumes a BOOLEAN_VALUE event.
func (r *EventReader) NextBoolean() (bool, error) {
	if r.event != BooleanValue {
		return false, r.grammarErr("current event is not a boolean value")
	}
	v := r.pendingVal
	r.pending = pendingNone
	return v, nil
}

// NextString consumes a STRING_VALUE event, decoding at most maxLen
// characters (0 or negative falls back to the configured limit).
func (r *EventReader) NextString(maxLen int) (string, error) {
	if r.event != StringValue {
		return "", r.grammarErr("current event is not a string value")
	}
	sink := &stringSink{}
	m := effectiveMax(maxLen, r.limits.maxStringLength())
	if err := r.lex.DecodeString(sink, m); err != nil {
		return "", err
	}
	r.pending = pendingNone
	return sink.String(), nil
}

// AppendNextString streams a STRING_VALUE's decoded characters into
// sink, for callers that want to avoid materialising long strings.
func (r *EventReader) AppendNextString(sink Sink, maxLen int) error {
	if r.event != StringValue {
		return r.grammarErr("current event is not a string value")
	}
	m := effectiveMax(maxLen, r.limits.maxStringLength())
	if err := r.lex.DecodeString(sink, m); err != nil {
		return err
	}
	r.pending = pendingNone
	return nil
}

// AppendNextNumber streams a NUMBER_VALUE's raw characters into sink.
func (r *EventReader) AppendNextNumber(sink Sink, maxMantissa, maxExponent int) (isFloat bool, err error) {
	if r.event != NumberValue {
		return false, r.grammarErr("current event is not a number value")
	}
	mm := effectiveMax(maxMantissa, r.limits.maxMantissaDigits())
	me := effectiveMax(maxExponent, r.limits.maxExponentDigits())
	isFloat, err = r.lex.DecodeNumber(sink, mm, me)
	if err != nil {
		return false, err
	}
	r.pending = pendingNone
	return isFloat, nil
}

func (r *EventReader) numberReader() error {
	if r.event != NumberValue {
		return r.grammarErr("current event is not a number value")
	}
	return nil
}

// NextInt32 consumes a NUMBER_VALUE event requiring it fit an int32.
func (r *EventReader) NextInt32() (int32, error) {
	if err := r.numberReader(); err != nil {
		return 0, err
	}
	v, err := r.lex.DecodeNumberAsInt32(r.limits.maxMantissaDigits(), r.limits.maxExponentDigits())
	if err != nil {
		return 0, err
	}
	r.pending = pendingNone
	return v, nil
}

// NextInt64 consumes a NUMBER_VALUE event requiring it fit an int64.
func (r *EventReader) NextInt64() (int64, error) {
	if err := r.numberReader(); err != nil {
		return 0, err
	}
	v, err := r.lex.DecodeNumberAsInt64(r.limits.maxMantissaDigits(), r.limits.maxExponentDigits())
	if err != nil {
		return 0, err
	}
	r.pending = pendingNone
	return v, nil
}

// NextDouble consumes a NUMBER_VALUE event as a 64-bit float.
func (r *EventReader) NextDouble() (float64, error) {
	if err := r.numberReader(); err != nil {
		return 0, err
	}
	v, err := r.lex.DecodeNumberAsDouble(r.limits.maxMantissaDigits(), r.limits.maxExponentDigits())
	if err != nil {
		return 0, err
	}
	r.pending = pendingNone
	return v, nil
}

// NextBigDecimal consumes a NUMBER_VALUE event as an arbitrary
// precision decimal.
func (r *EventReader) NextBigDecimal() (BigDecimal, error) {
	if err := r.numberReader(); err != nil {
		return BigDecimal{}, err
	}
	v, err := r.lex.DecodeNumberAsBigDec(r.limits.maxMantissaDigits(), r.limits.maxExponentDigits())
	if err != nil {
		return BigDecimal{}, err
	}
	r.pending = pendingNone
	return v, nil
}

// NextBigInteger consumes a NUMBER_VALUE event as an arbitrary
// precision integer.
func (r *EventReader) NextBigInteger() (*big.Int, error) {
	if err := r.numberReader(); err != nil {
		return nil, err
	}
	v, err := r.lex.DecodeNumberAsBigInt(r.limits.maxMantissaDigits(), r.limits.maxExponentDigits())
	if err != nil {
		return nil, err
	}
	r.pending = pendingNone
	return v, nil
}
