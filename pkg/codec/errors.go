package codec

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is
var (
	ErrFormat       = errors.New("invalid pak format")
	ErrOutOfBounds  = errors.New("pak region out of bounds")
	ErrSizeOverflow = errors.New("pak size exceeds 32-bit range")
)

// FormatError reports a buffer that is not a well-formed PAK archive
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", ErrFormat, e.Reason)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// BoundsError reports a header, table or member region that does not fit
// inside the buffer being decoded.
type BoundsError struct {
	What   string // region being read, e.g. "header" or "file 3 data"
	Offset uint64
	Size   uint64
	Len    int // length of the buffer
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: %s [%d, %d) exceeds buffer length %d",
		ErrOutOfBounds, e.What, e.Offset, e.Offset+e.Size, e.Len)
}

func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// SizeOverflowError reports a member or layout position that cannot be
// represented by the format's 32-bit fields.
type SizeOverflowError struct {
	Name string
	Size uint64
}

func (e *SizeOverflowError) Error() string {
	return fmt.Sprintf("%s: %q needs %d bytes", ErrSizeOverflow, e.Name, e.Size)
}

func (e *SizeOverflowError) Is(target error) bool {
	return target == ErrSizeOverflow
}

// checkRegion returns a BoundsError unless [offset, offset+size) lies within
// a buffer of length n.
func checkRegion(what string, offset, size uint64, n int) error {
	if offset > uint64(n) || size > uint64(n)-offset {
		return &BoundsError{What: what, Offset: offset, Size: size, Len: n}
	}
	return nil
}
