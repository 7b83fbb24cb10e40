// Package metainfo parses BitTorrent metainfo (.torrent) files into
// validated Torrent records.
package metainfo

import (
	"crypto/sha1"
	"encoding/hex"
)

// Hash is a SHA-1 digest, the identifier format used for the info hash and
// for piece hashes.
type Hash [sha1.Size]byte

// String renders the hash as 40 lowercase hex characters.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Torrent is the validated projection of a metainfo dictionary.
type Torrent struct {
	// Announce is the tracker URL.
	Announce string
	Info     Info
	// InfoHash is the SHA-1 digest of the encoded info dictionary exactly
	// as it appeared in the input, which uniquely identifies the torrent.
	InfoHash Hash
}

// Info describes the torrent's file and piece layout.
type Info struct {
	// Name is the suggested name to save the download under.
	Name string
	// Files lists the torrent's files in piece-layout order.
	Files []File
	// PieceLength is the byte length of every piece except possibly the
	// last.
	PieceLength uint64
	// Pieces holds one hash per piece, in piece order.
	Pieces []Hash
}

// File is a single file entry in the torrent.
type File struct {
	Length uint64
	// Path holds the individual path segments. They are never pre-joined;
	// join them with filepath.Join when writing to disk.
	Path []string
}
