package pak

import (
	"io"
	"os"

	"github.com/pierrec/lz4"
)

// Open opens a pak archive from r. It checks the magic up front and
// returns ErrBadArchive when the file is not a pak archive.
func Open(r io.ReaderAt) (*Archive, error) {
	magicBytes := make([]byte, magicLength)
	if num, err := r.ReadAt(magicBytes, 0); err != nil {
		return nil, err
	} else if num < magicLength || !isMagic(magicBytes) {
		return nil, ErrBadArchive
	}

	headerSizeBytes := make([]byte, headerSizeLength)
	if num, err := r.ReadAt(headerSizeBytes, magicLength); err != nil {
		return nil, err
	} else if num < headerSizeLength {
		return nil, ErrBadArchive
	}
	headerSize := binaryToInt64(headerSizeBytes)
	if headerSize <= 0 {
		return nil, ErrBadArchive
	}

	headerBytes := make([]byte, headerSize)
	if num, err := r.ReadAt(headerBytes, payloadBase); err != nil {
		return nil, err
	} else if int64(num) < headerSize {
		return nil, ErrBadArchive
	}

	header, err := decodeHeader(headerBytes)
	if err != nil {
		return nil, err
	}

	index := make(map[string]IndexEntry, len(header.Index))
	for _, entry := range header.Index {
		index[entry.Name] = entry
	}

	return &Archive{
		reader:      r,
		header:      header,
		index:       index,
		payloadBase: payloadBase + headerSize,
	}, nil
}

// OpenFile opens a pak archive from disk. Close the archive
// to release the file.
func OpenFile(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	ar, err := Open(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	ar.closer = f
	return ar, nil
}

// Archive provides concurrent io for a pak file, and can provide
// an io.Reader for each entry separately to perform actions on.
type Archive struct {
	reader      io.ReaderAt
	header      Header
	index       map[string]IndexEntry
	payloadBase int64
	closer      io.Closer
}

// Header returns the archive header.
func (a *Archive) Header() Header {
	return a.header
}

// Entries returns the entry names in archive order.
func (a *Archive) Entries() []string {
	names := make([]string, 0, len(a.header.Index))
	for _, entry := range a.header.Index {
		names = append(names, entry.Name)
	}
	return names
}

// Open returns a Reader decompressing the named entry.
func (a *Archive) Open(name string) (*Reader, error) {
	entry, ok := a.index[name]
	if !ok {
		return nil, ErrNotFound
	}
	section := io.NewSectionReader(a.reader, a.payloadBase+entry.Offset, entry.CompressedSize)
	return &Reader{
		size:    entry.Size,
		decoder: lz4.NewReader(section),
	}, nil
}

// ReadAll returns the entire decompressed contents of the named entry.
func (a *Archive) ReadAll(name string) ([]byte, error) {
	r, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	data := make([]byte, r.Size())
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Close releases the underlying file if the archive owns one.
func (a *Archive) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// Reader decompresses a single entry of an Archive.
type Reader struct {
	size    int64
	decoder io.Reader
}

// Size returns the decompressed size of the entry.
func (r *Reader) Size() int64 {
	return r.size
}

// Read reads already decompressed data.
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.decoder.Read(p)
}
