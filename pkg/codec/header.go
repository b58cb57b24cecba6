package codec

import (
	"encoding/binary"
	"fmt"
)

// Magic identifies a PAK archive: the ASCII bytes "PACK"
var Magic = [4]byte{'P', 'A', 'C', 'K'}

// HeaderSize is the encoded length of a Header
const HeaderSize = 12 // magic(4) + table offset(4) + table size(4)

// Header is the fixed archive header locating the file table
type Header struct {
	TableOffset uint32 // Offset of the file table from the start of the buffer
	TableSize   uint32 // Size of the file table in bytes
}

// NewHeader creates a header for a file table at the given offset and size.
// No validation is performed; that happens on decode.
func NewHeader(tableOffset, tableSize uint32) Header {
	return Header{TableOffset: tableOffset, TableSize: tableSize}
}

// DecodeHeader parses the first HeaderSize bytes of buf.
func DecodeHeader(buf []byte) (Header, error) {
	if err := checkRegion("header", 0, HeaderSize, len(buf)); err != nil {
		return Header{}, err
	}

	if [4]byte(buf[0:4]) != Magic {
		return Header{}, &FormatError{Reason: fmt.Sprintf("bad magic %q", buf[0:4])}
	}

	return Header{
		TableOffset: binary.LittleEndian.Uint32(buf[4:8]),
		TableSize:   binary.LittleEndian.Uint32(buf[8:12]),
	}, nil
}

// Encode serializes the header into a new HeaderSize byte slice
// Format: [Magic(4)][TableOffset(4)][TableSize(4)]
func (h Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	h.EncodeTo(buf)
	return buf
}

// EncodeTo writes the header into dst, which must hold at least HeaderSize bytes.
func (h Header) EncodeTo(dst []byte) {
	copy(dst[0:4], Magic[:])
	binary.LittleEndian.PutUint32(dst[4:8], h.TableOffset)
	binary.LittleEndian.PutUint32(dst[8:12], h.TableSize)
}

// TableEnd returns the offset one past the end of the file table.
func (h Header) TableEnd() uint64 {
	return uint64(h.TableOffset) + uint64(h.TableSize)
}

// MarshalBinary implements encoding.BinaryMarshaler
func (h Header) MarshalBinary() ([]byte, error) {
	return h.Encode(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (h *Header) UnmarshalBinary(data []byte) error {
	decoded, err := DecodeHeader(data)
	if err != nil {
		return err
	}
	*h = decoded
	return nil
}
