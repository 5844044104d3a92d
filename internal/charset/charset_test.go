package charset

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestByNameResolvesKnownEncodings(t *testing.T) {
	for _, test := range []struct {
		name string
		want bool // whether a non-nil encoding.Encoding is expected
	}{
		{"latin1", true},
		{"iso-8859-1", true},
		{"windows-1252", true},
		{"cp1252", true},
		{"iso-8859-15", true},
		{"klingon", false},
		{"", false},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := ByName(test.name) != nil
			if got != test.want {
				t.Errorf("ByName(%q): expected non-nil=%v got %v", test.name, test.want, got)
			}
		})
	}
}

func TestNewDecodesLatin1(t *testing.T) {
	// 0xE9 in ISO-8859-1 is U+00E9 (é).
	raw := string([]byte{'a', 0xE9, 'b'})
	src := New(strings.NewReader(raw), charmap.ISO8859_1)
	var got []rune
	for {
		r, err := src.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if src.AtEnd() {
			break
		}
		got = append(got, r)
	}
	want := []rune{'a', 'é', 'b'}
	if string(got) != string(want) {
		t.Errorf("expected %q got %q", string(want), string(got))
	}
}

func TestNewDefaultsToUTF8(t *testing.T) {
	src := New(strings.NewReader("héllo"), nil)
	var b strings.Builder
	for {
		r, err := src.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if src.AtEnd() {
			break
		}
		b.WriteRune(r)
	}
	if b.String() != "héllo" {
		t.Errorf("expected héllo got %q", b.String())
	}
}
