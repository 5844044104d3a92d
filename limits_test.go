package json

import "testing"

func TestDefaultLimitsUnbounded(t *testing.T) {
	l := DefaultLimits()
	if l.maxKeyLength() != unbounded {
		t.Error("expected default MaxKeyLength to be unbounded")
	}
	if l.maxMantissaDigits() != 32767 {
		t.Errorf("expected default mantissa digit cap 32767 got %d", l.maxMantissaDigits())
	}
}

func TestSecureDefaultsAreTight(t *testing.T) {
	l := SecureDefaults()
	if l.maxKeyLength() != 1024 {
		t.Errorf("expected secure MaxKeyLength=1024 got %d", l.maxKeyLength())
	}
	if l.maxNestingDepth() != 256 {
		t.Errorf("expected secure MaxNestingDepth=256 got %d", l.maxNestingDepth())
	}
}

func TestEffectiveTreatsNonPositiveAsUnbounded(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		if effective(n) != unbounded {
			t.Errorf("expected effective(%d) to be unbounded", n)
		}
	}
	if effective(5) != 5 {
		t.Error("expected a positive limit to pass through unchanged")
	}
}

type fakePath struct{ segs []string }

func (p fakePath) Len() int            { return len(p.segs) }
func (p fakePath) Segment(i int) string { return p.segs[i] }

func TestPointer(t *testing.T) {
	for _, test := range []struct {
		path     fakePath
		expected string
	}{
		{fakePath{}, ""},
		{fakePath{[]string{"a"}}, "/a"},
		{fakePath{[]string{"a", "0", "b"}}, "/a/0/b"},
		{fakePath{[]string{"a/b"}}, "/a~1b"},
		{fakePath{[]string{"m~n"}}, "/m~0n"},
	} {
		t.Run(test.expected, func(t *testing.T) {
			if got := Pointer(test.path); got != test.expected {
				t.Errorf("expected %q got %q", test.expected, got)
			}
		})
	}
}
