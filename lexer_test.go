package json

import (
	"fmt"
	"testing"
)

func newTestLexer(s string) *Lexer {
	return NewLexer(NewStringCharacterSource(s))
}

func TestNextTokenKind(t *testing.T) {
	for _, test := range []struct {
		input    string
		expected TokenKind
	}{
		{"{", TokenStartObject},
		{"}", TokenEndObject},
		{"[", TokenStartArray},
		{"]", TokenEndArray},
		{":", TokenKeySeparator},
		{",", TokenValueSeparator},
		{`"abc"`, TokenString},
		{"true", TokenTrue},
		{"false", TokenFalse},
		{"null", TokenNull},
		{"42", TokenNumber},
		{"-42", TokenNumber},
		{"   \t\n  42", TokenNumber},
		{"", TokenEndOfInput},
	} {
		t.Run(fmt.Sprintf("%q", test.input), func(t *testing.T) {
			l := newTestLexer(test.input)
			kind, err := l.NextTokenKind()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if kind != test.expected {
				t.Errorf("expected %v got %v", test.expected, kind)
			}
		})
	}
}

func TestNextTokenKindIllegalControl(t *testing.T) {
	l := newTestLexer("\x01")
	if _, err := l.NextTokenKind(); err == nil {
		t.Error("expected error on raw control character")
	}
}

func TestDecodeString(t *testing.T) {
	for _, test := range []struct {
		input    string
		expected string
	}{
		{`"abc"`, "abc"},
		{`"a\"b"`, `a"b`},
		{`"a\\b"`, `a\b`},
		{`"a\/b"`, "a/b"},
		{`"a\nb"`, "a\nb"},
		{`"aAb"`, "aAb"},
		{`""`, ""},
	} {
		t.Run(test.input, func(t *testing.T) {
			l := newTestLexer(test.input)
			sink := &stringSink{}
			if err := l.DecodeString(sink, 0); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sink.String() != test.expected {
				t.Errorf("expected %q got %q", test.expected, sink.String())
			}
		})
	}
}

func TestDecodeStringUnterminated(t *testing.T) {
	l := newTestLexer(`"abc`)
	sink := &stringSink{}
	if err := l.DecodeString(sink, 0); err == nil {
		t.Error("expected error on unterminated string")
	}
}

func TestDecodeStringMaxLength(t *testing.T) {
	l := newTestLexer(`"abcdef"`)
	sink := &stringSink{}
	if err := l.DecodeString(sink, 3); err == nil {
		t.Error("expected a limit error")
	}
}

func TestDecodeStringMaxLengthCountsCharactersNotBytes(t *testing.T) {
	// Five 2-byte runes: 10 bytes total but 5 characters, under a
	// character-counted cap of 5.
	l := newTestLexer(`"ééééé"`)
	sink := &stringSink{}
	if err := l.DecodeString(sink, 5); err != nil {
		t.Errorf("expected the cap to admit exactly 5 characters, got %v", err)
	}
}

func TestDecodeStringNullSinkAgreesWithStringSinkOnLength(t *testing.T) {
	for _, input := range []string{`"abc"`, `"ééé"`, `"日本語"`} {
		var viaNull, viaString int
		l1 := newTestLexer(input)
		nullSink := &NullSink{}
		if err := l1.DecodeString(nullSink, 0); err != nil {
			t.Fatalf("unexpected error decoding %q into NullSink: %v", input, err)
		}
		viaNull = nullSink.Len()

		l2 := newTestLexer(input)
		strSink := &stringSink{}
		if err := l2.DecodeString(strSink, 0); err != nil {
			t.Fatalf("unexpected error decoding %q into stringSink: %v", input, err)
		}
		viaString = strSink.Len()

		if viaNull != viaString {
			t.Errorf("%q: NullSink counted %d characters, stringSink counted %d", input, viaNull, viaString)
		}
	}
}

func TestDecodeNumberValue(t *testing.T) {
	for _, test := range []struct {
		input string
		kind  ValueKind
	}{
		{"42", KindInt32},
		{"-42", KindInt32},
		{"0", KindInt32},
		{"42.5", KindFloat64},
		{"4.2e1", KindFloat64},
		{"9999999999999999999999999999", KindBigInt},
	} {
		t.Run(test.input, func(t *testing.T) {
			l := newTestLexer(test.input)
			s, err := l.DecodeNumberValue(0, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Kind != test.kind {
				t.Errorf("expected kind %v got %v", test.kind, s.Kind)
			}
		})
	}
}

func TestDecodeNumberLeadingZero(t *testing.T) {
	l := newTestLexer("01")
	sink := &stringSink{}
	if _, err := l.DecodeNumber(sink, 0, 0); err == nil {
		t.Error("expected error on leading zero followed by digit")
	}
}

func TestDecodeNumberAsBigDec(t *testing.T) {
	l := newTestLexer("-12.340e2")
	d, err := l.DecodeNumberAsBigDec(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := d.String(); got != "-1234.0" {
		t.Errorf("expected -1234.0 got %s", got)
	}
}

func TestDecodeNumberAsBigInt(t *testing.T) {
	l := newTestLexer("123")
	bi, err := l.DecodeNumberAsBigInt(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bi.String() != "123" {
		t.Errorf("expected 123 got %s", bi.String())
	}

	l = newTestLexer("123.0")
	if _, err := l.DecodeNumberAsBigInt(0, 0); err == nil {
		t.Error("expected error decoding a float as a big integer")
	}
}

func TestDecodeNumberMantissaLimit(t *testing.T) {
	l := newTestLexer("123456789")
	sink := &stringSink{}
	if _, err := l.DecodeNumber(sink, 3, 0); err == nil {
		t.Error("expected a mantissa digit limit error")
	}
}
