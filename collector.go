package json

// Collector is a pluggable factory/aggregator for the output data
// model. It is generic over the object-accumulator (OA), the
// array-accumulator (AA), and the two finished result types
// (OR for objects, AR for arrays) — the four-parameter generic
// collector abstraction, collapsed in Go to a single
// generic interface rather than four independent associated types,
// since Go interfaces may themselves carry type parameters.
//
// A Collector carries no per-parse state, so a single instance (even
// a package-level singleton, as DomCollector and
// ImmutableMapListCollector both are) may drive any number of
// concurrent parses as long as no single instance is shared across
// goroutines for the *same* parse.
type Collector[OA, AA, OR, AR any] interface {
	NewObject() OA
	NewArray() AA

	// Put and PutNull may reject the insertion (e.g. a duplicate key)
	// by returning a non-nil error, which the TreeBuilder surfaces
	// as a *ParseError annotated with the JSON Pointer of the
	// rejected key: classified as ErrSemantic when the error wraps it
	// (as the duplicate-key errors of both built-in collectors do),
	// ErrCollector when it wraps no taxonomy sentinel.
	Put(acc OA, key string, v Value[OR, AR]) error
	PutNull(acc OA, key string) error

	Push(acc AA, v Value[OR, AR])
	PushNull(acc AA)

	FinishObject(acc OA) (OR, error)
	FinishArray(acc AA) (AR, error)

	// NullValue returns the representation of a bare top-level null,
	// for build_value on a document that is just `null`.
	NullValue() Value[OR, AR]
}
