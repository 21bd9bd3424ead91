// configstore/store.go
package configstore

import "stationboard-go/storage"

// Offset returns the reserved record location: the start of the device's
// last erase sector.
func Offset(dev storage.Device) int64 {
	return dev.Size() - dev.EraseBlockSize()
}

// Load reads and validates the record from the reserved sector.
// Any error means "no valid configuration"; the caller falls back to
// externally supplied credentials. Load never retries.
func Load(dev storage.Device) (*Record, error) {
	var buf [RecordSize]byte
	if _, err := dev.ReadAt(buf[:], Offset(dev)); err != nil {
		return nil, err
	}
	return Decode(buf[:])
}

// Save serializes r and writes the whole block to the reserved sector in a
// single write, after erasing it. Not transactional: a power loss mid-write
// corrupts the record, which the next Load catches via the checksum.
func Save(r *Record, dev storage.Device) error {
	var buf [RecordSize]byte
	if err := Encode(r, buf[:]); err != nil {
		return err
	}
	off := Offset(dev)
	if err := dev.EraseBlocks(off/dev.EraseBlockSize(), 1); err != nil {
		return err
	}
	_, err := dev.WriteAt(buf[:], off)
	return err
}

// Clear erases the reserved sector so the next boot falls back to the
// build-time credentials.
func Clear(dev storage.Device) error {
	off := Offset(dev)
	return dev.EraseBlocks(off/dev.EraseBlockSize(), 1)
}
