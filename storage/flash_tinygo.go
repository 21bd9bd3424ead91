// storage/flash_tinygo.go
//go:build rp2040 || rp2350

package storage

import "tinygo.org/x/drivers/flash"

// External SPI NOR flash from tinygo.org/x/drivers already speaks the
// tinyfs BlockDevice shape, so it drops straight in as a Device.
var _ Device = (*flash.Device)(nil)

// NewSPIFlash wraps an already-configured external NOR flash.
func NewSPIFlash(dev *flash.Device) Device { return dev }
