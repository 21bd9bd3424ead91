// storage/storage.go
package storage

import "errors"

// Device is the block-storage collaborator the config store writes through.
// It mirrors the tinyfs BlockDevice shape so MCU builds can hand in
// machine.Flash or a tinygo.org/x/drivers/flash device unchanged.
//
// Writes are block-granular and non-atomic: a power loss mid-write leaves
// whatever bytes made it to the medium.
type Device interface {
	// Size is the total capacity in bytes.
	Size() int64
	// EraseBlockSize is the smallest unit that can be erased at once.
	EraseBlockSize() int64
	// EraseBlocks erases n erase-blocks starting at block index start.
	EraseBlocks(start, n int64) error
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
}

var (
	ErrOutOfRange = errors.New("out_of_range")
)
