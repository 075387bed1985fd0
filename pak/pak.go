// Package pak is an api for an lz4 backed asset archive format.
// The archive itself is not compressed, every entry is individually
// compressed, so any entry can be located up front and decompressed
// on the fly. This makes the format well suited for memory mapping
// and concurrent reads, at a small cost in space efficiency.
//
// Layout: a 4 byte magic, the header length as a little endian int64,
// the json encoded header with the entry index, then the lz4 streams
// back to back. Entry offsets are relative to the end of the header.
package pak

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
)

// package errors
var (
	ErrBadArchive = errors.New("corrupted or not a pak archive")
	ErrNotFound   = errors.New("no entry with that name in the archive")
)

var magic = [4]byte{'P', 'A', 'K', 0}

// Sizes relevant to the fixed part of the file header.
const (
	magicLength      = 4
	headerSizeLength = 8
	payloadBase      = magicLength + headerSizeLength
)

// IndexEntry is info for one entry in the archive index.
// Offset is relative to the end of the header.
type IndexEntry struct {
	Name           string `json:"name"`
	Offset         int64  `json:"offset"`
	Size           int64  `json:"size"`
	CompressedSize int64  `json:"compressedSize"`
}

// Header is the archive header.
type Header struct {
	Author  string       `json:"author"`
	Created int64        `json:"created"`
	Version int64        `json:"version"`
	Index   []IndexEntry `json:"index"`
}

func encodeHeader(h Header) ([]byte, error) {
	return json.Marshal(h)
}

func decodeHeader(data []byte) (Header, error) {
	var h Header
	if err := json.Unmarshal(data, &h); err != nil {
		return Header{}, ErrBadArchive
	}
	return h, nil
}

func int64ToBinary(num int64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(num))
	return buf
}

func binaryToInt64(bts []byte) int64 {
	return int64(binary.LittleEndian.Uint64(bts))
}

func isMagic(bts []byte) bool {
	return bytes.Equal(bts, magic[:])
}
