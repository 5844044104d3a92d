package json

import (
	"fmt"
	"testing"
)

func TestDomValueAccessorsTypeMismatch(t *testing.T) {
	v := &DomValue{kind: KindBool, bval: true}
	if _, err := v.AsString(); err == nil {
		t.Error("expected an error extracting a bool as a string")
	}
	if b, err := v.AsBoolean(); err != nil || !b {
		t.Errorf("expected true, nil got %v, %v", b, err)
	}
}

func TestDomValueIndexAndKeyFluentOnMismatch(t *testing.T) {
	v := &DomValue{kind: KindString, str: "hi"}
	if v.Index(0).Type() != KindNull {
		t.Error("expected Index on a non-array to yield null")
	}
	if v.Key("x").Type() != KindNull {
		t.Error("expected Key on a non-object to yield null")
	}
	if v.Index(0).Key("x").Index(-1).Type() != KindNull {
		t.Error("expected a chain of fluent accessors on a dead end to stay null")
	}
}

func TestDomValueStringDebugForm(t *testing.T) {
	for _, test := range []struct {
		v        *DomValue
		expected string
	}{
		{&DomValue{}, "null"},
		{&DomValue{kind: KindBool, bval: true}, "true"},
		{&DomValue{kind: KindInt32, i32: 5}, "5"},
		{&DomValue{kind: KindString, str: "hi"}, `"hi"`},
	} {
		t.Run(test.expected, func(t *testing.T) {
			if got := test.v.String(); got != test.expected {
				t.Errorf("expected %q got %q", test.expected, got)
			}
		})
	}
}

func TestBigDecimalString(t *testing.T) {
	for _, test := range []struct {
		d        BigDecimal
		expected string
	}{
		{parseBigDecimalOrPanic(t, "123.45"), "123.45"},
		{parseBigDecimalOrPanic(t, "-0.5"), "-0.5"},
		{parseBigDecimalOrPanic(t, "100"), "100"},
	} {
		t.Run(test.expected, func(t *testing.T) {
			if got := test.d.String(); got != test.expected {
				t.Errorf("expected %s got %s", test.expected, got)
			}
		})
	}
}

func parseBigDecimalOrPanic(t *testing.T, s string) BigDecimal {
	t.Helper()
	d, err := parseBigDecimal(s)
	if err != nil {
		t.Fatalf("unexpected error parsing %q: %v", s, err)
	}
	return d
}

func TestDomCollectorArrayPreservesOrder(t *testing.T) {
	root := buildDom(t, `[3, 1, 2]`)
	arr, err := root.AsArray()
	if err != nil {
		t.Fatal(err)
	}
	got := fmt.Sprint(arr)
	if len(arr) != 3 {
		t.Fatalf("expected 3 elements got %v", got)
	}
	for i, want := range []int32{3, 1, 2} {
		if arr[i].i32 != want {
			t.Errorf("expected element %d to be %d got %d", i, want, arr[i].i32)
		}
	}
}
