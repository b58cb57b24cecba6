package codec

import (
	"fmt"

	"github.com/rs/zerolog"
)

// TableBound selects how Decode finds the end of the file table
type TableBound int

const (
	// TableBoundHeader reads exactly TableSize bytes of records starting at
	// TableOffset. Trailing bytes after the table are ignored with a warning.
	TableBoundHeader TableBound = iota

	// TableBoundBuffer reads records from TableOffset to the end of the
	// buffer, ignoring TableSize. This matches older readers of the format.
	TableBoundBuffer
)

func (b TableBound) String() string {
	switch b {
	case TableBoundHeader:
		return "header"
	case TableBoundBuffer:
		return "buffer"
	default:
		return fmt.Sprintf("TableBound(%d)", int(b))
	}
}

// ParseTableBound converts the textual form used in configuration files.
func ParseTableBound(s string) (TableBound, error) {
	switch s {
	case "", "header":
		return TableBoundHeader, nil
	case "buffer":
		return TableBoundBuffer, nil
	default:
		return 0, fmt.Errorf("unknown table bound %q", s)
	}
}

// Observer receives a callback after every archive encode or decode.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveEncode(files, bytes int, err error)
	ObserveDecode(files, bytes int, err error)
}

// Options holds the settings of an ArchiveCodec
type Options struct {
	TableBound TableBound
	CopyData   bool // decoded files own their data instead of aliasing the input
	Logger     zerolog.Logger
	Observer   Observer
}

// Option configures an ArchiveCodec
type Option func(*Options)

// DefaultOptions returns the settings used by NewArchiveCodec with no options.
func DefaultOptions() Options {
	return Options{
		TableBound: TableBoundHeader,
		Logger:     zerolog.Nop(),
	}
}

// WithTableBound sets how the end of the file table is located on decode.
func WithTableBound(b TableBound) Option {
	return func(o *Options) { o.TableBound = b }
}

// WithCopyData makes decoded files copy their data out of the input buffer,
// so the buffer may be reused once Decode returns.
func WithCopyData(copyData bool) Option {
	return func(o *Options) { o.CopyData = copyData }
}

// WithLogger sets the logger for decode warnings and debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithObserver registers an Observer for encode and decode outcomes.
func WithObserver(obs Observer) Option {
	return func(o *Options) { o.Observer = obs }
}
