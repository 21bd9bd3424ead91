// configstore/record.go
package configstore

import "unicode/utf8"

// Field limits, fixed by the on-flash layout.
const (
	SSIDMax   = 32
	PassMax   = 64
	APIKeyMax = 32
)

const recordVersion = 1

// Record is the persisted credential set: network name, network password
// and the transit API key. It is created once (first boot or provisioning),
// persisted whole, and treated as immutable input afterwards.
type Record struct {
	version uint8
	ssid    string
	pass    string
	apiKey  string
}

// New validates field lengths and UTF-8 and builds a version-1 record.
func New(ssid, pass, apiKey string) (*Record, error) {
	if len(ssid) > SSIDMax || len(pass) > PassMax || len(apiKey) > APIKeyMax {
		return nil, ErrBadArgs
	}
	if !utf8.ValidString(ssid) || !utf8.ValidString(pass) || !utf8.ValidString(apiKey) {
		return nil, ErrBadArgs
	}
	return &Record{
		version: recordVersion,
		ssid:    ssid,
		pass:    pass,
		apiKey:  apiKey,
	}, nil
}

// Version is stored for future format migration; this revision never
// interprets it.
func (r *Record) Version() uint8 { return r.version }

func (r *Record) SSID() string   { return r.ssid }
func (r *Record) Pass() string   { return r.pass }
func (r *Record) APIKey() string { return r.apiKey }
