package json_test

import (
	"fmt"
	"testing"

	streamjson "github.com/run2000/JSON-java-sub000"
)

func TestUsage(t *testing.T) {
	// Feed a string (or any io.Reader) through a CharacterSource, drive
	// it with an EventReader, and materialise the result with a
	// Collector. DomCollector is the reference tree collector.
	src := streamjson.NewStringCharacterSource(`
	{
		"null": null,
		"integer": 5,
		"number": 5.5,
		"boolean": true,
		"array": [null, 5, 5.5, true],
		"object": {}
	}
	`)
	reader := streamjson.NewEventReader(src)
	v, err := streamjson.BuildValue(reader, streamjson.DefaultLimits(), streamjson.DomCollector{})
	if err != nil {
		t.Fatalf("can't parse json: %v", err)
	}
	root := streamjson.AsDomValue(v)

	if root.Type() != streamjson.KindObject {
		t.Error("top-level value is the wrong kind")
	}

	// Objects can be extracted as maps of values.
	m, _ := root.AsObject()
	if m["null"].Type() != streamjson.KindNull {
		t.Error("null member is the wrong kind")
	}

	// Numeric scalars come back pre-classified: "5" decodes as a
	// 32-bit integer, "5.5" as a float.
	if m["integer"].Type() != streamjson.KindInt32 {
		t.Error("integer member should decode as KindInt32")
	}
	if m["number"].Type() != streamjson.KindFloat64 {
		t.Error("number member should decode as KindFloat64")
	}

	// Arrays are represented as slices of values.
	a, _ := m["array"].AsArray()
	if b, _ := a[3].AsBoolean(); !b {
		t.Error("expected the last array element to be true")
	}

	// Key and Index give a fluent interface for drilling into a
	// document. Missing keys or out-of-range indices fluently
	// propagate a null value rather than panicking or erroring.
	band := streamjson.NewEventReader(streamjson.NewStringCharacterSource(`{
		"name": "The Beatles",
		"members": [
			{"name": "John", "role": "guitar"},
			{"name": "Paul", "role": "bass"},
			{"name": "George", "role": "guitar"},
			{"name": "Ringo", "role": "drums"}
		]
	}`))
	bv, err := streamjson.BuildValue(band, streamjson.DefaultLimits(), streamjson.DomCollector{})
	if err != nil {
		t.Fatalf("can't parse json: %v", err)
	}
	beatles := streamjson.AsDomValue(bv)

	name, _ := beatles.Key("members").Index(2).Key("name").AsString()
	fmt.Println(name) // "George"

	missing := beatles.Key("something").Index(-1).Key("")
	fmt.Println(missing) // "null"
}

func TestUsageSecureDefaultsRejectsDeepNesting(t *testing.T) {
	deep := ""
	for i := 0; i < 300; i++ {
		deep += "["
	}
	for i := 0; i < 300; i++ {
		deep += "]"
	}
	reader := streamjson.NewEventReader(streamjson.NewStringCharacterSource(deep)).WithLimits(streamjson.SecureDefaults())
	_, err := streamjson.BuildValue(reader, streamjson.SecureDefaults(), streamjson.DomCollector{})
	if err == nil {
		t.Fatal("expected SecureDefaults to reject pathologically deep nesting")
	}
}
