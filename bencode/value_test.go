package bencode

import (
	"bytes"
	"testing"

	jackpal "github.com/jackpal/bencode-go"
	"github.com/stretchr/testify/assert"
)

func TestAccessors(t *testing.T) {
	var tests = []struct {
		name   string
		assert func(t *testing.T, actual Value)
		input  string
	}{
		{
			name: "integer only narrows to integer",
			assert: func(t *testing.T, actual Value) {
				assert.Equal(t, KindInteger, actual.Kind())
				_, ok := actual.AsInteger()
				assert.True(t, ok)
				_, ok = actual.AsByteString()
				assert.False(t, ok)
				_, ok = actual.AsList()
				assert.False(t, ok)
				_, ok = actual.AsDictionary()
				assert.False(t, ok)
			},
			input: "i42e",
		},
		{
			name: "byte string only narrows to byte string",
			assert: func(t *testing.T, actual Value) {
				assert.Equal(t, KindByteString, actual.Kind())
				_, ok := actual.AsByteString()
				assert.True(t, ok)
				_, ok = actual.AsInteger()
				assert.False(t, ok)
				_, ok = actual.AsList()
				assert.False(t, ok)
				_, ok = actual.AsDictionary()
				assert.False(t, ok)
			},
			input: "4:spam",
		},
		{
			name: "list only narrows to list",
			assert: func(t *testing.T, actual Value) {
				assert.Equal(t, KindList, actual.Kind())
				_, ok := actual.AsList()
				assert.True(t, ok)
				_, ok = actual.AsInteger()
				assert.False(t, ok)
				_, ok = actual.AsByteString()
				assert.False(t, ok)
				_, ok = actual.AsDictionary()
				assert.False(t, ok)
			},
			input: "le",
		},
		{
			name: "dictionary only narrows to dictionary",
			assert: func(t *testing.T, actual Value) {
				assert.Equal(t, KindDictionary, actual.Kind())
				_, ok := actual.AsDictionary()
				assert.True(t, ok)
				_, ok = actual.AsInteger()
				assert.False(t, ok)
				_, ok = actual.AsByteString()
				assert.False(t, ok)
				_, ok = actual.AsList()
				assert.False(t, ok)
			},
			input: "de",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			actual, _, err := Decode([]byte(tt.input))
			assert.Nil(t, err)
			tt.assert(t, actual)
		})
	}
}

func TestDictionaryRemove(t *testing.T) {
	value, _, err := Decode([]byte("d3:foo3:bare"))
	assert.Nil(t, err)
	dict, ok := value.AsDictionary()
	assert.True(t, ok)

	_, ok = dict.Remove("missing")
	assert.False(t, ok)
	assert.Equal(t, 1, dict.Len())

	foo, ok := dict.Remove("foo")
	assert.True(t, ok)
	raw, ok := foo.AsByteString()
	assert.True(t, ok)
	assert.Equal(t, []byte("bar"), raw)

	_, ok = dict.Remove("foo")
	assert.False(t, ok)
	assert.Equal(t, 0, dict.Len())
}

// TestDecodeIndependentEncoder feeds the decoder output from an independent
// bencode encoder and checks every field survives the trip.
func TestDecodeIndependentEncoder(t *testing.T) {
	fixture := struct {
		Announce string   `bencode:"announce"`
		Port     int      `bencode:"port"`
		Tags     []string `bencode:"tags"`
	}{
		Announce: "http://tracker.example.com",
		Port:     6881,
		Tags:     []string{"linux", "iso"},
	}
	var buf bytes.Buffer
	err := jackpal.Marshal(&buf, fixture)
	assert.Nil(t, err)

	value, n, err := Decode(buf.Bytes())
	assert.Nil(t, err)
	assert.Equal(t, buf.Len(), n)

	dict, ok := value.AsDictionary()
	assert.True(t, ok)

	announce, ok := dict.Remove("announce")
	assert.True(t, ok)
	rawAnnounce, ok := announce.AsByteString()
	assert.True(t, ok)
	assert.Equal(t, []byte("http://tracker.example.com"), rawAnnounce)

	port, ok := dict.Remove("port")
	assert.True(t, ok)
	portValue, ok := port.AsInteger()
	assert.True(t, ok)
	assert.Equal(t, int64(6881), portValue)

	tags, ok := dict.Remove("tags")
	assert.True(t, ok)
	items, ok := tags.AsList()
	assert.True(t, ok)
	assert.Len(t, items, 2)
	first, ok := items[0].AsByteString()
	assert.True(t, ok)
	assert.Equal(t, []byte("linux"), first)
	second, ok := items[1].AsByteString()
	assert.True(t, ok)
	assert.Equal(t, []byte("iso"), second)
}
