package multiblock

import "errors"

// Sentinel errors reported by collection access and file I/O. Callers match
// them with errors.Is; the wrapped messages carry the offending index, name
// or path.
var (
	ErrOutOfRange        = errors.New("block index out of range")
	ErrNotFound          = errors.New("block name not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileNotFound      = errors.New("file not found")
	ErrEmptyResult       = errors.New("file contains no blocks")
)
