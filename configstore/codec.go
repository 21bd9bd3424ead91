// configstore/codec.go
package configstore

import (
	"encoding/binary"
	"hash/crc32"
	"unicode/utf8"
)

// On-flash layout, little-endian, 136 bytes total:
//
//	version(1) | ssid_len(1) | pass_len(1) | api_key_len(1) |
//	ssid(32, zero-padded) | pass(64, zero-padded) | api_key(32, zero-padded) |
//	crc32(4, LE, over all preceding bytes)
//
// Fixed-width with explicit length bytes on purpose: the record always fits
// one storage write unit and the byte layout stays stable across firmware
// revisions.
const (
	checksumSize = 4
	headerSize   = 4

	RecordSize = headerSize + SSIDMax + PassMax + APIKeyMax + checksumSize // 136
)

// Field offsets within the block.
const (
	offVersion   = 0
	offSSIDLen   = 1
	offPassLen   = 2
	offAPIKeyLen = 3
	offSSID      = headerSize
	offPass      = offSSID + SSIDMax
	offAPIKey    = offPass + PassMax
	offChecksum  = offAPIKey + APIKeyMax
)

// Encode serializes r into dst, which must hold at least RecordSize bytes.
// Unused string bytes are zeroed and a fresh CRC32 is appended.
func Encode(r *Record, dst []byte) error {
	if len(dst) < RecordSize {
		return ErrBufferTooSmall
	}
	dst = dst[:RecordSize]
	for i := range dst {
		dst[i] = 0
	}

	dst[offVersion] = r.version
	dst[offSSIDLen] = uint8(len(r.ssid))
	dst[offPassLen] = uint8(len(r.pass))
	dst[offAPIKeyLen] = uint8(len(r.apiKey))
	copy(dst[offSSID:offSSID+SSIDMax], r.ssid)
	copy(dst[offPass:offPass+PassMax], r.pass)
	copy(dst[offAPIKey:offAPIKey+APIKeyMax], r.apiKey)

	sum := crc32.ChecksumIEEE(dst[:offChecksum])
	binary.LittleEndian.PutUint32(dst[offChecksum:], sum)
	return nil
}

// Decode parses a block produced by Encode. The checksum is verified first;
// a mismatch means the block is untrusted and no fields are inspected.
func Decode(src []byte) (*Record, error) {
	if len(src) < RecordSize {
		return nil, ErrBufferTooSmall
	}
	src = src[:RecordSize]

	stored := binary.LittleEndian.Uint32(src[offChecksum:])
	if crc32.ChecksumIEEE(src[:offChecksum]) != stored {
		return nil, ErrBadChecksum
	}

	ssidLen := int(src[offSSIDLen])
	passLen := int(src[offPassLen])
	keyLen := int(src[offAPIKeyLen])
	if ssidLen > SSIDMax || passLen > PassMax || keyLen > APIKeyMax {
		return nil, ErrCorrupt
	}

	ssid := string(src[offSSID : offSSID+ssidLen])
	pass := string(src[offPass : offPass+passLen])
	apiKey := string(src[offAPIKey : offAPIKey+keyLen])
	if !utf8.ValidString(ssid) || !utf8.ValidString(pass) || !utf8.ValidString(apiKey) {
		return nil, ErrInvalidUTF8
	}

	return &Record{
		version: src[offVersion],
		ssid:    ssid,
		pass:    pass,
		apiKey:  apiKey,
	}, nil
}
