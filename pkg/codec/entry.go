package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

const (
	// EntrySize is the encoded length of one file table record
	EntrySize = 64 // name(56) + offset(4) + size(4)

	// NameFieldSize is the width of the null-padded name field
	NameFieldSize = 56

	// MaxNameLength is the longest name that fits ahead of the terminator
	MaxNameLength = NameFieldSize - 1

	// FallbackName is returned for name fields that are not valid UTF-8
	FallbackName = "unknown.bin"
)

// Entry is one record of the file table
type Entry struct {
	name   [NameFieldSize]byte // null-terminated file name
	Offset uint32              // Offset of the file data from the start of the buffer
	Size   uint32              // Size of the file data in bytes
}

// NewEntry creates a table record for a file. Names longer than
// MaxNameLength bytes are truncated.
func NewEntry(name string, offset, size uint32) Entry {
	e := Entry{Offset: offset, Size: size}
	e.SetName(name)
	return e
}

// DecodeEntry parses the first EntrySize bytes of buf. The name field is
// taken verbatim; any record-sized input decodes.
func DecodeEntry(buf []byte) (Entry, error) {
	if err := checkRegion("entry", 0, EntrySize, len(buf)); err != nil {
		return Entry{}, err
	}

	var e Entry
	copy(e.name[:], buf[:NameFieldSize])
	e.Offset = binary.LittleEndian.Uint32(buf[56:60])
	e.Size = binary.LittleEndian.Uint32(buf[60:64])
	return e, nil
}

// Name returns the file name up to the first zero byte. A name that is not
// valid UTF-8 is reported as FallbackName.
func (e *Entry) Name() string {
	raw := e.name[:]
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	if !utf8.Valid(raw) {
		return FallbackName
	}
	return string(raw)
}

// SetName replaces the file name, keeping at most MaxNameLength bytes.
func (e *Entry) SetName(name string) {
	e.name = [NameFieldSize]byte{}
	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}
	copy(e.name[:], name)
}

// NameBytes returns the raw name field
func (e *Entry) NameBytes() [NameFieldSize]byte {
	return e.name
}

// Encode serializes the entry into a new EntrySize byte slice
// Format: [Name(56)][Offset(4)][Size(4)]
func (e *Entry) Encode() []byte {
	buf := make([]byte, EntrySize)
	e.EncodeTo(buf)
	return buf
}

// EncodeTo writes the entry into dst, which must hold at least EntrySize bytes.
func (e *Entry) EncodeTo(dst []byte) {
	copy(dst[0:NameFieldSize], e.name[:])
	binary.LittleEndian.PutUint32(dst[56:60], e.Offset)
	binary.LittleEndian.PutUint32(dst[60:64], e.Size)
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s@%d+%d", e.Name(), e.Offset, e.Size)
}

// MarshalBinary implements encoding.BinaryMarshaler
func (e *Entry) MarshalBinary() ([]byte, error) {
	return e.Encode(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (e *Entry) UnmarshalBinary(data []byte) error {
	decoded, err := DecodeEntry(data)
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}
