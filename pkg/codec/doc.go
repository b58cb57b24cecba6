// Package codec reads and writes PAK archives.
//
// A PAK archive is a single buffer bundling named byte blobs behind a fixed
// header and a trailing file table. Every integer is a little-endian
// unsigned 32-bit value.
//
// # Archive Format
//
//	[Header(12)][file data...][Entry(64)]...[Entry(64)]
//
// Header:
//   - Magic: the 4 ASCII bytes "PACK"
//   - TableOffset: offset of the first file table entry
//   - TableSize: length of the file table in bytes (64 per file)
//
// Entry:
//   - Name: 56-byte null-padded name, at most 55 bytes used
//   - Offset: offset of the file data from the start of the buffer
//   - Size: length of the file data in bytes
//
// File data is written back to back in archive order, starting right after
// the header. The table lists the files in the same order.
//
// # Usage
//
//	archive := codec.NewArchive()
//	archive.Add("maps/base1.bsp", bsp)
//	archive.Add("sound/jump.wav", wav)
//
//	buf, err := archive.Encode()
//	if err != nil {
//	    return err
//	}
//
//	decoded, err := codec.Decode(buf)
//	if err != nil {
//	    return err
//	}
//
// # Names
//
// Names longer than 55 bytes are truncated without error. A name field that
// is not valid UTF-8 decodes as "unknown.bin" instead of failing the decode.
// Duplicate names are kept as-is.
//
// # Error Handling
//
// Decode never reads outside the input buffer. Failures are reported as:
//   - *FormatError: bad magic or an inconsistent table size (ErrFormat)
//   - *BoundsError: header, table or file data outside the buffer (ErrOutOfBounds)
//   - *SizeOverflowError: a file or layout too large for 32-bit fields (ErrSizeOverflow)
//
// A failed decode or encode returns no partial result.
//
// # Memory
//
// Decoded file data aliases the input buffer unless WithCopyData is set.
//
// # Thread Safety
//
// ArchiveCodec instances hold only their options and are safe for concurrent
// use. An Archive is a plain value and is not synchronized.
package codec
