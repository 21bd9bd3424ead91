// configstore/errors.go
package configstore

import "errors"

var (
	// Construction
	ErrBadArgs = errors.New("bad_args")

	// Codec
	ErrBufferTooSmall = errors.New("buffer_too_small")
	ErrBadChecksum    = errors.New("bad_checksum")
	ErrCorrupt        = errors.New("corrupt_record")
	ErrInvalidUTF8    = errors.New("invalid_utf8")
)
