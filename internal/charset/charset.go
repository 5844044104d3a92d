// Package charset adapts a byte stream in a legacy 8-bit encoding
// into a streamjson.CharacterSource, for input that did not arrive as
// UTF-8. The core parser assumes runes decode cleanly off an
// io.Reader; this package is where that assumption gets relaxed,
// kept out of the core package so the common UTF-8 path pays nothing
// for it.
package charset

import (
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	streamjson "github.com/run2000/JSON-java-sub000"
)

// New wraps r, assumed to be encoded as enc, as a CharacterSource that
// reads decoded UTF-8 runes. A nil enc is treated as UTF-8, i.e. New
// degenerates to streamjson.NewCharacterSource.
func New(r io.Reader, enc encoding.Encoding) streamjson.CharacterSource {
	if enc == nil {
		return streamjson.NewCharacterSource(r)
	}
	return streamjson.NewCharacterSource(transform.NewReader(r, enc.NewDecoder()))
}

// ByName resolves one of the small set of legacy encodings this
// package supports by name ("latin1", "windows-1252", "iso-8859-15"),
// returning nil (meaning UTF-8) for an unrecognised or empty name.
func ByName(name string) encoding.Encoding {
	switch name {
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1
	case "windows-1252", "cp1252":
		return charmap.Windows1252
	case "iso-8859-15":
		return charmap.ISO8859_15
	default:
		return nil
	}
}
