package bencode

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidBencode reports a violation of the bencode grammar.
	ErrInvalidBencode = errors.New("invalid bencode")
	// ErrTooDeeplyNested reports input nested beyond the recursion bound.
	// It matches ErrInvalidBencode under errors.Is.
	ErrTooDeeplyNested = fmt.Errorf("%w: too deeply nested", ErrInvalidBencode)
)

// maxDepth bounds recursion over nested lists and dictionaries. Real
// metainfo nests four or five levels deep.
const maxDepth = 512

// Decode parses a single bencode value anchored at the start of data and
// returns it together with the number of bytes consumed. Bytes after the
// value are left untouched for the caller to inspect.
//
// The grammar is enforced strictly: integers reject leading zeros and "-0",
// string lengths reject leading zeros, and dictionaries reject duplicate
// keys and keys that are not byte strings.
func Decode(data []byte) (Value, int, error) {
	value, pos, err := decodeValue(data, 0, 0)
	if err != nil {
		return Value{}, 0, err
	}
	return value, pos, nil
}

func decodeValue(data []byte, pos, depth int) (Value, int, error) {
	if depth > maxDepth {
		return Value{}, pos, ErrTooDeeplyNested
	}
	if pos >= len(data) {
		return Value{}, pos, fmt.Errorf("%w: unexpected end of input at offset %d", ErrInvalidBencode, pos)
	}
	switch c := data[pos]; {
	case c == 'i':
		return decodeInteger(data, pos)
	case c == 'l':
		return decodeList(data, pos, depth)
	case c == 'd':
		return decodeDictionary(data, pos, depth)
	case c >= '0' && c <= '9':
		return decodeByteString(data, pos)
	default:
		return Value{}, pos, fmt.Errorf("%w: unexpected byte %q at offset %d", ErrInvalidBencode, c, pos)
	}
}

func decodeInteger(data []byte, pos int) (Value, int, error) {
	start := pos
	pos++ // consume 'i'
	end := pos
	for end < len(data) && data[end] != 'e' {
		end++
	}
	if end == len(data) {
		return Value{}, pos, fmt.Errorf("%w: integer missing terminator", ErrInvalidBencode)
	}

	numeral := data[pos:end]
	digits := numeral
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return Value{}, pos, fmt.Errorf("%w: integer has no digits", ErrInvalidBencode)
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return Value{}, pos, fmt.Errorf("%w: integer contains non-digit %q", ErrInvalidBencode, c)
		}
	}
	// "0" is the only numeral allowed to start with a zero; "-0" is invalid.
	if digits[0] == '0' && (len(digits) > 1 || numeral[0] == '-') {
		return Value{}, pos, fmt.Errorf("%w: integer has a leading zero", ErrInvalidBencode)
	}

	n, err := strconv.ParseInt(string(numeral), 10, 64)
	if err != nil {
		return Value{}, pos, fmt.Errorf("%w: integer out of range", ErrInvalidBencode)
	}

	pos = end + 1 // consume 'e'
	return Value{kind: KindInteger, integer: n, raw: data[start:pos]}, pos, nil
}

func decodeByteString(data []byte, pos int) (Value, int, error) {
	start := pos
	for pos < len(data) && data[pos] >= '0' && data[pos] <= '9' {
		pos++
	}
	if pos == len(data) || data[pos] != ':' {
		return Value{}, pos, fmt.Errorf("%w: string length missing ':' separator", ErrInvalidBencode)
	}

	lengthDigits := data[start:pos]
	if lengthDigits[0] == '0' && len(lengthDigits) > 1 {
		return Value{}, pos, fmt.Errorf("%w: string length has a leading zero", ErrInvalidBencode)
	}
	length, err := strconv.Atoi(string(lengthDigits))
	if err != nil {
		return Value{}, pos, fmt.Errorf("%w: string length out of range", ErrInvalidBencode)
	}

	pos++ // consume ':'
	if length > len(data)-pos {
		return Value{}, pos, fmt.Errorf("%w: string length %d overruns input", ErrInvalidBencode, length)
	}

	value := Value{
		kind:  KindByteString,
		bytes: data[pos : pos+length],
		raw:   data[start : pos+length],
	}
	return value, pos + length, nil
}

func decodeList(data []byte, pos, depth int) (Value, int, error) {
	start := pos
	pos++ // consume 'l'
	var items []Value
	for {
		if pos >= len(data) {
			return Value{}, pos, fmt.Errorf("%w: list missing terminator", ErrInvalidBencode)
		}
		if data[pos] == 'e' {
			pos++
			return Value{kind: KindList, list: items, raw: data[start:pos]}, pos, nil
		}

		item, next, err := decodeValue(data, pos, depth+1)
		if err != nil {
			return Value{}, pos, err
		}
		items = append(items, item)
		pos = next
	}
}

func decodeDictionary(data []byte, pos, depth int) (Value, int, error) {
	start := pos
	pos++ // consume 'd'
	dict := make(Dictionary)
	for {
		if pos >= len(data) {
			return Value{}, pos, fmt.Errorf("%w: dictionary missing terminator", ErrInvalidBencode)
		}
		if data[pos] == 'e' {
			pos++
			return Value{kind: KindDictionary, dict: dict, raw: data[start:pos]}, pos, nil
		}
		if data[pos] < '0' || data[pos] > '9' {
			return Value{}, pos, fmt.Errorf("%w: dictionary key at offset %d is not a byte string", ErrInvalidBencode, pos)
		}

		key, next, err := decodeByteString(data, pos)
		if err != nil {
			return Value{}, pos, err
		}
		pos = next

		keyString := string(key.bytes)
		if _, dup := dict[keyString]; dup {
			return Value{}, pos, fmt.Errorf("%w: duplicate dictionary key %q", ErrInvalidBencode, keyString)
		}

		item, next, err := decodeValue(data, pos, depth+1)
		if err != nil {
			return Value{}, pos, err
		}
		dict[keyString] = item
		pos = next
	}
}
