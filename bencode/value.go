// Package bencode implements a strict decoder for the bencode encoding used
// by BitTorrent metainfo files (BEP 3). Decoded values remember the exact
// byte range they were parsed from, so callers can hash or re-emit the
// original bytes instead of re-encoding the tree.
package bencode

// Kind identifies which of the four bencode types a Value holds.
type Kind int

const (
	// KindInvalid is the kind of the zero Value, which no accessor matches.
	KindInvalid Kind = iota
	KindInteger
	KindByteString
	KindList
	KindDictionary
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindByteString:
		return "byte string"
	case KindList:
		return "list"
	case KindDictionary:
		return "dictionary"
	default:
		return "unknown"
	}
}

// Value is a single decoded bencode value.
type Value struct {
	kind    Kind
	integer int64
	bytes   []byte
	list    []Value
	dict    Dictionary
	raw     []byte
}

// Kind reports which bencode type this value holds.
func (v Value) Kind() Kind { return v.kind }

// Raw returns the verbatim sub-slice of the input buffer this value was
// decoded from. The slice aliases the buffer passed to Decode; it is not a
// copy.
func (v Value) Raw() []byte { return v.raw }

// AsInteger returns the contained integer. The second return is false if the
// value is not an integer.
func (v Value) AsInteger() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.integer, true
}

// AsByteString returns the contained bytes. Bencode strings are byte
// strings, not text: the result is not guaranteed to be valid UTF-8.
func (v Value) AsByteString() ([]byte, bool) {
	if v.kind != KindByteString {
		return nil, false
	}
	return v.bytes, true
}

// AsList returns the contained values in encoding order.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// AsDictionary returns the contained dictionary.
func (v Value) AsDictionary() (Dictionary, bool) {
	if v.kind != KindDictionary {
		return nil, false
	}
	return v.dict, true
}

// Dictionary maps raw key bytes to values. Removal by key is the intended
// access pattern: callers pull out the fields they know and ignore whatever
// remains. Decode guarantees key uniqueness.
type Dictionary map[string]Value

// Remove deletes key from the dictionary and returns its value. The second
// return is false if the key was absent.
func (d Dictionary) Remove(key string) (Value, bool) {
	value, ok := d[key]
	if ok {
		delete(d, key)
	}
	return value, ok
}

// Len returns the number of entries still present.
func (d Dictionary) Len() int { return len(d) }
