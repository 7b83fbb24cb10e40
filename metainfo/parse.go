package metainfo

import (
	"crypto/sha1"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/WendelHime/metainfo/bencode"
)

// Parser decodes .torrent files into validated Torrent records.
type Parser interface {
	Parse(io.Reader) (Torrent, error)
}

type parser struct{}

func NewParser() Parser {
	return parser{}
}

func (parser) Parse(r io.Reader) (Torrent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Torrent{}, fmt.Errorf("reading torrent: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses the contents of a .torrent file. The info hash is the
// digest of the literal sub-slice of data holding the encoded info
// dictionary, never of a re-encoding: bencode round-tripping is not
// guaranteed to be byte-identical.
func ParseBytes(data []byte) (Torrent, error) {
	root, _, err := bencode.Decode(data)
	if err != nil {
		slog.Error("failed to decode torrent", slog.Any("error", err))
		return Torrent{}, fmt.Errorf("decoding torrent: %w", err)
	}

	dict, ok := root.AsDictionary()
	if !ok {
		return Torrent{}, ErrNotADictionary
	}

	announce, err := removeString(dict, "announce", "announce")
	if err != nil {
		return Torrent{}, err
	}

	infoValue, ok := dict.Remove("info")
	if !ok {
		return Torrent{}, FieldNotFoundError{Field: "info"}
	}
	info, err := parseInfo(infoValue)
	if err != nil {
		return Torrent{}, err
	}

	return Torrent{
		Announce: announce,
		Info:     info,
		InfoHash: sha1.Sum(infoValue.Raw()),
	}, nil
}

func parseInfo(value bencode.Value) (Info, error) {
	dict, ok := value.AsDictionary()
	if !ok {
		return Info{}, ErrNotADictionary
	}

	name, err := removeString(dict, "name", "info[name]")
	if err != nil {
		return Info{}, err
	}

	filesValue, ok := dict.Remove("files")
	if !ok {
		return Info{}, FieldNotFoundError{Field: "info[files]"}
	}
	entries, ok := filesValue.AsList()
	if !ok {
		return Info{}, FieldNotFoundError{Field: "info[files]"}
	}
	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		file, err := parseFile(entry)
		if err != nil {
			return Info{}, err
		}
		files = append(files, file)
	}

	pieceLength, err := removeInteger(dict, "piece length", "info[piece length]")
	if err != nil {
		return Info{}, err
	}
	if pieceLength <= 0 {
		return Info{}, ErrInvalidPieceLength
	}

	piecesValue, ok := dict.Remove("pieces")
	if !ok {
		return Info{}, FieldNotFoundError{Field: "info[pieces]"}
	}
	rawPieces, ok := piecesValue.AsByteString()
	if !ok {
		return Info{}, FieldNotFoundError{Field: "info[pieces]"}
	}
	if len(rawPieces)%sha1.Size != 0 {
		return Info{}, ErrMismatchedPieceLength
	}
	pieces := make([]Hash, 0, len(rawPieces)/sha1.Size)
	for i := 0; i < len(rawPieces); i += sha1.Size {
		pieces = append(pieces, Hash(rawPieces[i:i+sha1.Size]))
	}

	return Info{
		Name:        name,
		Files:       files,
		PieceLength: uint64(pieceLength),
		Pieces:      pieces,
	}, nil
}

func parseFile(value bencode.Value) (File, error) {
	dict, ok := value.AsDictionary()
	if !ok {
		return File{}, ErrNotADictionary
	}

	length, err := removeInteger(dict, "length", "file[length]")
	if err != nil {
		return File{}, err
	}
	if length < 0 {
		return File{}, ErrInvalidFileLength
	}

	pathValue, ok := dict.Remove("path")
	if !ok {
		return File{}, FieldNotFoundError{Field: "file[path]"}
	}
	elements, ok := pathValue.AsList()
	if !ok {
		return File{}, FieldNotFoundError{Field: "file[path]"}
	}
	path := make([]string, 0, len(elements))
	for _, element := range elements {
		segment, ok := element.AsByteString()
		if !ok {
			return File{}, ErrInvalidPath
		}
		if !utf8.Valid(segment) {
			return File{}, ErrInvalidString
		}
		path = append(path, string(segment))
	}

	return File{Length: uint64(length), Path: path}, nil
}

// removeString removes key from dict and returns it as UTF-8 text. A
// missing key or a non-string value reports field in the error.
func removeString(dict bencode.Dictionary, key, field string) (string, error) {
	value, ok := dict.Remove(key)
	if !ok {
		return "", FieldNotFoundError{Field: field}
	}
	raw, ok := value.AsByteString()
	if !ok {
		return "", FieldNotFoundError{Field: field}
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidString
	}
	return string(raw), nil
}

func removeInteger(dict bencode.Dictionary, key, field string) (int64, error) {
	value, ok := dict.Remove(key)
	if !ok {
		return 0, FieldNotFoundError{Field: field}
	}
	n, ok := value.AsInteger()
	if !ok {
		return 0, FieldNotFoundError{Field: field}
	}
	return n, nil
}
