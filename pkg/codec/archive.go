package codec

import (
	"bytes"
	"fmt"
	"math"
)

// File is one named member of an archive. Data is not copied when added to
// an Archive or when decoded, so it aliases the caller's buffer.
type File struct {
	Name string
	Data []byte
}

// Archive is an ordered list of files. Order is preserved through encoding
// and decoding, and duplicate names are allowed.
type Archive struct {
	Files []File
}

// NewArchive creates an empty archive
func NewArchive() *Archive {
	return &Archive{}
}

// Add appends a file to the archive
func (a *Archive) Add(name string, data []byte) {
	a.Files = append(a.Files, File{Name: name, Data: data})
}

// Len returns the number of files in the archive
func (a *Archive) Len() int {
	return len(a.Files)
}

// Find returns the first file with the given name
func (a *Archive) Find(name string) (File, bool) {
	for _, f := range a.Files {
		if f.Name == name {
			return f, true
		}
	}
	return File{}, false
}

// Names returns the file names in table order
func (a *Archive) Names() []string {
	names := make([]string, len(a.Files))
	for i, f := range a.Files {
		names[i] = f.Name
	}
	return names
}

// Encode serializes the archive with default options
func (a *Archive) Encode() ([]byte, error) {
	return NewArchiveCodec().Encode(a)
}

// MarshalBinary implements encoding.BinaryMarshaler
func (a *Archive) MarshalBinary() ([]byte, error) {
	return a.Encode()
}

// Decode parses buf into an archive using the given options
func Decode(buf []byte, opts ...Option) (*Archive, error) {
	return NewArchiveCodec(opts...).Decode(buf)
}

// ArchiveCodec converts between archives and their binary form. It keeps no
// state between calls and is safe for concurrent use.
type ArchiveCodec struct {
	opts Options
}

// NewArchiveCodec creates a codec with DefaultOptions modified by opts
func NewArchiveCodec(opts ...Option) *ArchiveCodec {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &ArchiveCodec{opts: o}
}

// Options returns the codec's settings
func (c *ArchiveCodec) Options() Options {
	return c.opts
}

// Encode serializes an archive
// Format: [Header(12)][file data...][Entry(64) x len(Files)]
func (c *ArchiveCodec) Encode(a *Archive) ([]byte, error) {
	out, err := c.encode(a)
	if c.opts.Observer != nil {
		c.opts.Observer.ObserveEncode(a.Len(), len(out), err)
	}
	return out, err
}

func (c *ArchiveCodec) encode(a *Archive) ([]byte, error) {
	names := make([]string, len(a.Files))
	sizes := make([]uint64, len(a.Files))
	for i, f := range a.Files {
		names[i] = f.Name
		sizes[i] = uint64(len(f.Data))
	}

	entries, header, err := layoutTable(names, sizes)
	if err != nil {
		return nil, err
	}

	out := make([]byte, header.TableEnd())
	header.EncodeTo(out)
	for i, f := range a.Files {
		copy(out[entries[i].Offset:], f.Data)
	}
	pos := int(header.TableOffset)
	for i := range entries {
		entries[i].EncodeTo(out[pos:])
		pos += EntrySize
	}

	c.opts.Logger.Debug().
		Int("files", len(entries)).
		Uint32("table_offset", header.TableOffset).
		Uint32("table_size", header.TableSize).
		Msg("encoded archive")

	return out, nil
}

// layoutTable assigns each file its data offset and computes the header.
// Data starts right after the header and the table follows the data.
func layoutTable(names []string, sizes []uint64) ([]Entry, Header, error) {
	entries := make([]Entry, 0, len(sizes))
	cursor := uint64(HeaderSize)
	for i, size := range sizes {
		if size > math.MaxUint32 {
			return nil, Header{}, &SizeOverflowError{Name: names[i], Size: size}
		}
		if cursor+size > math.MaxUint32 {
			return nil, Header{}, &SizeOverflowError{Name: names[i], Size: cursor + size}
		}
		entries = append(entries, NewEntry(names[i], uint32(cursor), uint32(size)))
		cursor += size
	}

	tableSize := uint64(len(entries)) * EntrySize
	if tableSize > math.MaxUint32 {
		return nil, Header{}, &SizeOverflowError{Name: "file table", Size: tableSize}
	}

	return entries, NewHeader(uint32(cursor), uint32(tableSize)), nil
}

// Decode parses buf into an archive. Unless CopyData is set, file data
// aliases buf, so buf must not be modified while the archive is in use.
func (c *ArchiveCodec) Decode(buf []byte) (*Archive, error) {
	a, err := c.decode(buf)
	if c.opts.Observer != nil {
		files := 0
		if a != nil {
			files = a.Len()
		}
		c.opts.Observer.ObserveDecode(files, len(buf), err)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (c *ArchiveCodec) decode(buf []byte) (*Archive, error) {
	header, err := DecodeHeader(buf)
	if err != nil {
		return nil, err
	}

	start := uint64(header.TableOffset)
	end, err := c.tableEnd(header, len(buf))
	if err != nil {
		return nil, err
	}

	a := &Archive{Files: make([]File, 0, (end-start)/EntrySize)}
	for pos := start; pos < end; pos += EntrySize {
		entry, err := DecodeEntry(buf[pos : pos+EntrySize])
		if err != nil {
			return nil, err
		}

		i := a.Len()
		offset, size := uint64(entry.Offset), uint64(entry.Size)
		if err := checkRegion(fmt.Sprintf("file %d data", i), offset, size, len(buf)); err != nil {
			return nil, err
		}

		data := buf[offset : offset+size : offset+size]
		if c.opts.CopyData {
			data = bytes.Clone(data)
		}
		a.Files = append(a.Files, File{Name: entry.Name(), Data: data})
	}

	c.opts.Logger.Debug().
		Int("files", a.Len()).
		Int("bytes", len(buf)).
		Stringer("table_bound", c.opts.TableBound).
		Msg("decoded archive")

	return a, nil
}

// tableEnd returns the offset one past the last table record to read.
func (c *ArchiveCodec) tableEnd(h Header, n int) (uint64, error) {
	start := uint64(h.TableOffset)

	if c.opts.TableBound == TableBoundBuffer {
		if start > uint64(n) {
			return 0, &BoundsError{What: "file table", Offset: start, Len: n}
		}
		span := uint64(n) - start
		if rem := span % EntrySize; rem != 0 {
			return 0, &BoundsError{What: "file table entry", Offset: uint64(n) - rem, Size: EntrySize, Len: n}
		}
		if span != uint64(h.TableSize) {
			c.opts.Logger.Warn().
				Uint32("table_size", h.TableSize).
				Uint64("scanned", span).
				Msg("file table size in header disagrees with buffer length")
		}
		return uint64(n), nil
	}

	if h.TableSize%EntrySize != 0 {
		return 0, &FormatError{Reason: fmt.Sprintf("table size %d is not a multiple of %d", h.TableSize, EntrySize)}
	}
	if h.TableSize > 0 && start < HeaderSize {
		return 0, &FormatError{Reason: fmt.Sprintf("table offset %d overlaps header", start)}
	}
	if err := checkRegion("file table", start, uint64(h.TableSize), n); err != nil {
		return 0, err
	}

	end := h.TableEnd()
	if end < uint64(n) {
		c.opts.Logger.Warn().
			Uint64("table_end", end).
			Int("buffer_len", n).
			Msg("ignoring trailing bytes after file table")
	}
	return end, nil
}
