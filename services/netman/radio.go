// services/netman/radio.go
package netman

import (
	"context"
	"net/netip"
)

// DisconnectEvent is published by the radio when a station association is
// lost. Reason is the driver's raw disconnect code, zero when unknown.
type DisconnectEvent struct {
	Reason int
	Desc   string
}

// Radio abstracts the wireless controller so the supervisor can be driven
// against a fake. The radio owns the real hardware/link state; the supervisor
// only keeps its observed view.
type Radio interface {
	// ApplyStationConfig sets the credentials used by subsequent Start/Connect.
	ApplyStationConfig(ssid, pass string) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	// IsStarted reports whether the radio is already up, e.g. across a
	// forced restart.
	IsStarted() (bool, error)
	// DisconnectEvents delivers one event per lost association.
	DisconnectEvents() <-chan DisconnectEvent
}

// Netstack exposes the two read-only bring-up signals owned by the network
// stack collaborator.
type Netstack interface {
	LinkUp() bool
	Addr() (netip.Addr, bool)
}
