package json

import (
	"math/big"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Sink is any append-only character receiver. DecodeString/DecodeNumber
// write into one instead of returning a string directly, so a caller
// (the TreeBuilder) can route long payloads to an alternate
// destination without materialising them, or discard them via
// NullSink when the value is being skipped.
type Sink interface {
	WriteRune(r rune)
	Len() int
}

// NullSink discards every character written to it. The EventReader
// uses it to advance the Lexer across a value the caller never asked
// to decode (e.g. inside SkipToEndContainer).
type NullSink struct{ n int }

func (s *NullSink) WriteRune(r rune) { s.n++ }
func (s *NullSink) Len() int         { return s.n }

// stringSink is the buffered Sink used internally whenever the Lexer
// needs the decoded text back as a Go string. Len counts decoded
// characters (runes), not bytes, so a multi-byte-character string
// hits maxLen at the same character count as NullSink's skip path.
type stringSink struct {
	b strings.Builder
	n int
}

func (s *stringSink) WriteRune(r rune) {
	s.b.WriteRune(r)
	s.n++
}
func (s *stringSink) Len() int       { return s.n }
func (s *stringSink) String() string { return s.b.String() }

// Lexer reads characters from a CharacterSource and produces
// kind-only tokens, decoding string/number payloads with bounded
// buffers only when asked. It keeps at most one character of
// lookahead, via the source's PushBack.
type Lexer struct {
	src CharacterSource
	// buf is reset at the start of each number decode but is never
	// written: every decode writes into a fresh stringSink of its own,
	// so no decode buffer is reused across tokens.
	buf strings.Builder
}

// NewLexer returns a Lexer reading from src.
func NewLexer(src CharacterSource) *Lexer {
	return &Lexer{src: src}
}

// Position reports the underlying CharacterSource's current position.
func (l *Lexer) Position() Position {
	return l.src.Position()
}

func isJSONWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func isControl(r rune) bool {
	return r >= 0x00 && r <= 0x1F
}

// NextTokenKind skips JSON whitespace and classifies exactly one
// character (pushing it back for STRING/NUMBER so the decode
// functions can consume the opening quote/sign themselves).
func (l *Lexer) NextTokenKind() (TokenKind, error) {
	for {
		r, err := l.src.Next()
		if err != nil {
			return 0, err
		}
		if l.src.AtEnd() {
			return TokenEndOfInput, nil
		}
		if isJSONWhitespace(r) {
			continue
		}
		if isControl(r) {
			return 0, l.src.SyntaxError("illegal control character 0x%02X", r)
		}
		switch r {
		case '{':
			return TokenStartObject, nil
		case '}':
			return TokenEndObject, nil
		case '[':
			return TokenStartArray, nil
		case ']':
			return TokenEndArray, nil
		case ':':
			return TokenKeySeparator, nil
		case ',':
			return TokenValueSeparator, nil
		case '"':
			l.src.PushBack()
			return TokenString, nil
		case 't':
			if err := l.expectLiteral("rue"); err != nil {
				return 0, err
			}
			return TokenTrue, nil
		case 'f':
			if err := l.expectLiteral("alse"); err != nil {
				return 0, err
			}
			return TokenFalse, nil
		case 'n':
			if err := l.expectLiteral("ull"); err != nil {
				return 0, err
			}
			return TokenNull, nil
		case '-':
			l.src.PushBack()
			return TokenNumber, nil
		default:
			if r >= '0' && r <= '9' {
				l.src.PushBack()
				return TokenNumber, nil
			}
			return 0, l.src.SyntaxError("unexpected character %q", r)
		}
	}
}

func (l *Lexer) expectLiteral(rest string) error {
	for _, want := range rest {
		r, err := l.src.Next()
		if err != nil {
			return err
		}
		if r != want {
			return l.src.SyntaxError("invalid literal")
		}
	}
	return nil
}

// DecodeString consumes the opening '"' and writes decoded characters
// into sink until the matching unescaped '"'. maxLen bounds the
// decoded character count (not the raw byte count); exceeding it is a
// LimitError. A limit of zero or negative is treated as "unbounded",
// per BuilderLimits semantics.
func (l *Lexer) DecodeString(sink Sink, maxLen int) error {
	if err := l.src.NextExpected('"'); err != nil {
		return err
	}
	for {
		r, err := l.src.Next()
		if err != nil {
			return err
		}
		if l.src.AtEnd() {
			return l.src.SyntaxError("unterminated string")
		}
		switch {
		case r == '"':
			return nil
		case r == '\\':
			if err := l.decodeEscape(sink); err != nil {
				return err
			}
		case r == '\n' || r == '\r' || r == 0:
			return l.src.SyntaxError("unterminated string: raw newline or NUL in string")
		case isControl(r):
			return l.src.SyntaxError("illegal raw control character 0x%02X in string", r)
		default:
			sink.WriteRune(r)
		}
		if maxLen > 0 && sink.Len() > maxLen {
			return newParseError(ErrLimit, l.src.Position(), "string exceeds max length %d", maxLen)
		}
	}
}

func (l *Lexer) decodeEscape(sink Sink) error {
	r, err := l.src.Next()
	if err != nil {
		return err
	}
	switch r {
	case '"', '\\', '/':
		sink.WriteRune(r)
	case 'b':
		sink.WriteRune('\b')
	case 'f':
		sink.WriteRune('\f')
	case 'n':
		sink.WriteRune('\n')
	case 't':
		sink.WriteRune('\t')
	case 'r':
		sink.WriteRune('\r')
	case 'u':
		unit, err := l.decodeHex4()
		if err != nil {
			return err
		}
		// Code units are written verbatim: unpaired/paired
		// surrogates are not combined here. The final re-encode to a
		// Go (UTF-8) string happens through utf16.Decode, which
		// substitutes utf8.RuneError for lone surrogates -- the
		// Go-idiomatic realization of "preserve malformed/unpaired
		// surrogates as replacement characters".
		decoded := utf16.Decode([]uint16{unit})
		for _, dr := range decoded {
			sink.WriteRune(dr)
		}
	default:
		return l.src.SyntaxError("illegal escape \\%c", r)
	}
	return nil
}

func (l *Lexer) decodeHex4() (uint16, error) {
	s, err := l.src.NextFixed(4)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, l.src.SyntaxError("invalid \\u escape %q", s)
	}
	return uint16(v), nil
}

// DecodeNumber consumes a number per the RFC 8259 grammar
// -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)? writing raw
// characters to sink, and reports whether a '.', 'e' or 'E' appeared
// (isFloat). maxMantissa bounds the combined integer+fraction digit
// count; maxExponent bounds the exponent digit count alone. Either
// value <= 0 means unbounded.
func (l *Lexer) DecodeNumber(sink Sink, maxMantissa, maxExponent int) (isFloat bool, err error) {
	mantissaDigits := 0
	write := func(r rune) { sink.WriteRune(r) }

	r, err := l.src.Next()
	if err != nil {
		return false, err
	}
	if r == '-' {
		write(r)
		r, err = l.src.Next()
		if err != nil {
			return false, err
		}
	}
	if r < '0' || r > '9' {
		return false, l.src.SyntaxError("invalid number: expected digit")
	}
	write(r)
	mantissaDigits++
	if r == '0' {
		// leading zero must not be followed by another digit
		r, err = l.src.Next()
		if err != nil {
			return false, err
		}
		if r >= '0' && r <= '9' {
			return false, l.src.SyntaxError("invalid number: leading zero followed by digit")
		}
		l.src.PushBack()
	} else {
		for {
			r, err = l.src.Next()
			if err != nil {
				return false, err
			}
			if r < '0' || r > '9' {
				l.src.PushBack()
				break
			}
			write(r)
			mantissaDigits++
			if maxMantissa > 0 && mantissaDigits > maxMantissa {
				return false, newParseError(ErrLimit, l.src.Position(), "number mantissa exceeds max digits %d", maxMantissa)
			}
		}
	}

	r, err = l.src.Next()
	if err != nil {
		return false, err
	}
	if r == '.' {
		isFloat = true
		write(r)
		fracDigits := 0
		for {
			r, err = l.src.Next()
			if err != nil {
				return false, err
			}
			if r < '0' || r > '9' {
				l.src.PushBack()
				break
			}
			write(r)
			fracDigits++
			mantissaDigits++
			if maxMantissa > 0 && mantissaDigits > maxMantissa {
				return false, newParseError(ErrLimit, l.src.Position(), "number mantissa exceeds max digits %d", maxMantissa)
			}
		}
		if fracDigits == 0 {
			return false, l.src.SyntaxError("invalid number: expected digit after '.'")
		}
		r, err = l.src.Next()
		if err != nil {
			return false, err
		}
	}

	if r == 'e' || r == 'E' {
		isFloat = true
		write(r)
		r, err = l.src.Next()
		if err != nil {
			return false, err
		}
		if r == '+' || r == '-' {
			write(r)
			r, err = l.src.Next()
			if err != nil {
				return false, err
			}
		}
		expDigits := 0
		for r >= '0' && r <= '9' {
			write(r)
			expDigits++
			if maxExponent > 0 && expDigits > maxExponent {
				return false, newParseError(ErrLimit, l.src.Position(), "number exponent exceeds max digits %d", maxExponent)
			}
			r, err = l.src.Next()
			if err != nil {
				return false, err
			}
		}
		if expDigits == 0 {
			return false, l.src.SyntaxError("invalid number: expected digit in exponent")
		}
		l.src.PushBack()
	} else {
		l.src.PushBack()
	}
	return isFloat, nil
}

// DecodeNumberValue decodes a number into a fresh buffer allocated
// for this call and classifies it into a Scalar: floats parse as float64 (rejecting
// Inf/NaN), integers parse as int64, narrowed to int32 when
// representable, otherwise surfaced as a BigInt.
func (l *Lexer) DecodeNumberValue(maxMantissa, maxExponent int) (Scalar, error) {
	l.buf.Reset()
	sink := &stringSink{}
	isFloat, err := l.DecodeNumber(sink, maxMantissa, maxExponent)
	if err != nil {
		return Scalar{}, err
	}
	text := sink.String()
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Scalar{}, l.src.SyntaxError("malformed number %q", text)
		}
		return Scalar{Kind: KindFloat64, Float64: f}, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		bi, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return Scalar{}, l.src.SyntaxError("malformed integer %q", text)
		}
		return Scalar{Kind: KindBigInt, BigInt: bi}, nil
	}
	if i >= -(1<<31) && i <= (1<<31)-1 {
		return Scalar{Kind: KindInt32, Int32: int32(i), Int64: i}, nil
	}
	return Scalar{Kind: KindInt64, Int64: i}, nil
}

// DecodeNumberAsInt32 decodes a number and requires it fit an int32,
// rejecting overflow with a SemanticError rather than silently
// coercing it.
func (l *Lexer) DecodeNumberAsInt32(maxMantissa, maxExponent int) (int32, error) {
	s, err := l.DecodeNumberValue(maxMantissa, maxExponent)
	if err != nil {
		return 0, err
	}
	switch s.Kind {
	case KindInt32:
		return s.Int32, nil
	case KindInt64, KindFloat64, KindBigInt:
		return 0, newParseError(ErrSemantic, l.src.Position(), "number does not fit in int32")
	}
	return 0, newParseError(ErrSemantic, l.src.Position(), "value is not an integer")
}

// DecodeNumberAsInt64 decodes a number and requires it fit an int64.
func (l *Lexer) DecodeNumberAsInt64(maxMantissa, maxExponent int) (int64, error) {
	s, err := l.DecodeNumberValue(maxMantissa, maxExponent)
	if err != nil {
		return 0, err
	}
	switch s.Kind {
	case KindInt32:
		return s.Int64, nil
	case KindInt64:
		return s.Int64, nil
	case KindFloat64, KindBigInt:
		return 0, newParseError(ErrSemantic, l.src.Position(), "number does not fit in int64")
	}
	return 0, newParseError(ErrSemantic, l.src.Position(), "value is not an integer")
}

// DecodeNumberAsDouble decodes a number as a 64-bit float, rejecting
// non-finite results (JSON has no representation for Inf/NaN).
func (l *Lexer) DecodeNumberAsDouble(maxMantissa, maxExponent int) (float64, error) {
	s, err := l.DecodeNumberValue(maxMantissa, maxExponent)
	if err != nil {
		return 0, err
	}
	var f float64
	switch s.Kind {
	case KindFloat64:
		f = s.Float64
	case KindInt32:
		f = float64(s.Int32)
	case KindInt64:
		f = float64(s.Int64)
	case KindBigInt:
		f, _ = new(big.Float).SetInt(s.BigInt).Float64()
	}
	if isNonFinite(f) {
		return 0, newParseError(ErrSemantic, l.src.Position(), "number is not finite")
	}
	return f, nil
}

func isNonFinite(f float64) bool {
	return f > maxFloat64 || f < -maxFloat64 || f != f
}

const maxFloat64 = 1.7976931348623157e+308

// DecodeNumberAsBigDec decodes a number as an arbitrary-precision
// decimal, preserving the exact digit sequence.
func (l *Lexer) DecodeNumberAsBigDec(maxMantissa, maxExponent int) (BigDecimal, error) {
	l.buf.Reset()
	sink := &stringSink{}
	_, err := l.DecodeNumber(sink, maxMantissa, maxExponent)
	if err != nil {
		return BigDecimal{}, err
	}
	return parseBigDecimal(sink.String())
}

func parseBigDecimal(text string) (BigDecimal, error) {
	neg := false
	if strings.HasPrefix(text, "-") {
		neg = true
		text = text[1:]
	}
	mantissa := text
	exp := 0
	if i := strings.IndexAny(text, "eE"); i >= 0 {
		mantissa = text[:i]
		e, err := strconv.Atoi(text[i+1:])
		if err != nil {
			return BigDecimal{}, err
		}
		exp = e
	}
	scale := 0
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		scale = len(mantissa) - i - 1
		mantissa = mantissa[:i] + mantissa[i+1:]
	}
	unscaled, ok := new(big.Int).SetString(mantissa, 10)
	if !ok {
		return BigDecimal{}, errUnparsableNumber
	}
	if neg {
		unscaled.Neg(unscaled)
	}
	scale -= exp
	return BigDecimal{Unscaled: unscaled, Scale: scale}, nil
}

// DecodeNumberAsBigInt decodes a number as an arbitrary-precision
// integer, rejecting fractional/exponent forms.
func (l *Lexer) DecodeNumberAsBigInt(maxMantissa, maxExponent int) (*big.Int, error) {
	l.buf.Reset()
	sink := &stringSink{}
	isFloat, err := l.DecodeNumber(sink, maxMantissa, maxExponent)
	if err != nil {
		return nil, err
	}
	if isFloat {
		return nil, newParseError(ErrSemantic, l.src.Position(), "value is not an integer")
	}
	bi, ok := new(big.Int).SetString(sink.String(), 10)
	if !ok {
		return nil, l.src.SyntaxError("malformed integer %q", sink.String())
	}
	return bi, nil
}
