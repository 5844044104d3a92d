package ordered

import (
	"fmt"
	"testing"
)

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := New[string, int]()
	m.Set("z", 1)
	m.Set("a", 2)
	m.Set("m", 3)
	want := []string{"z", "a", "m"}
	got := m.Keys()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("expected %v got %v", want, got)
	}
}

func TestMapSetOverwritesInPlace(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)
	if v, _ := m.Get("a"); v != 3 {
		t.Errorf("expected a=3 got %v", v)
	}
	want := []string{"a", "b"}
	if fmt.Sprint(m.Keys()) != fmt.Sprint(want) {
		t.Errorf("expected overwrite to preserve original position, got %v", m.Keys())
	}
}

func TestMapHasAndGet(t *testing.T) {
	m := New[string, int]()
	if m.Has("a") {
		t.Error("expected Has to be false on an empty map")
	}
	m.Set("a", 42)
	if !m.Has("a") {
		t.Error("expected Has to be true after Set")
	}
	v, ok := m.Get("a")
	if !ok || v != 42 {
		t.Errorf("expected 42, true got %v, %v", v, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("expected Get on a missing key to report false")
	}
}

func TestMapRangeStopsEarly(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	var seen []string
	m.Range(func(k string, v int) bool {
		seen = append(seen, k)
		return k != "b"
	})
	want := []string{"a", "b"}
	if fmt.Sprint(seen) != fmt.Sprint(want) {
		t.Errorf("expected %v got %v", want, seen)
	}
}

func TestMapToMap(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	plain := m.ToMap()
	if len(plain) != 2 || plain["a"] != 1 || plain["b"] != 2 {
		t.Errorf("unexpected plain map: %v", plain)
	}
}

func TestMapCloneIsIndependent(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	clone := m.Clone()
	clone.Set("b", 2)
	if m.Has("b") {
		t.Error("expected mutating the clone not to affect the original")
	}
	if !clone.Has("a") {
		t.Error("expected the clone to carry over existing entries")
	}
}
