// storage/mem.go
package storage

// Mem is an in-memory Device for host builds and tests.
// Erased bytes read back as 0xFF, like NOR flash.
type Mem struct {
	buf       []byte
	eraseSize int64
}

// NewMem creates a device of the given capacity and erase-block size.
// The whole region starts erased.
func NewMem(capacity, eraseBlockSize int64) *Mem {
	m := &Mem{
		buf:       make([]byte, capacity),
		eraseSize: eraseBlockSize,
	}
	for i := range m.buf {
		m.buf[i] = 0xFF
	}
	return m
}

func (m *Mem) Size() int64           { return int64(len(m.buf)) }
func (m *Mem) EraseBlockSize() int64 { return m.eraseSize }

func (m *Mem) EraseBlocks(start, n int64) error {
	off := start * m.eraseSize
	end := off + n*m.eraseSize
	if off < 0 || end > int64(len(m.buf)) {
		return ErrOutOfRange
	}
	for i := off; i < end; i++ {
		m.buf[i] = 0xFF
	}
	return nil
}

func (m *Mem) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(m.buf)) {
		return 0, ErrOutOfRange
	}
	return copy(p, m.buf[off:]), nil
}

func (m *Mem) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(m.buf)) {
		return 0, ErrOutOfRange
	}
	return copy(m.buf[off:], p), nil
}

// Corrupt flips one bit at the given byte offset. Test helper.
func (m *Mem) Corrupt(off int64, bit uint) {
	m.buf[off] ^= 1 << (bit & 7)
}

// Fill overwrites the whole region with b. Test helper.
func (m *Mem) Fill(b byte) {
	for i := range m.buf {
		m.buf[i] = b
	}
}
