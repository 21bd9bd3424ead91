// services/netman/radio_netlink.go
package netman

import (
	"context"
	"net/netip"
	"sync"

	"tinygo.org/x/drivers/netdev"
	"tinygo.org/x/drivers/netlink"
)

// NetlinkRadio adapts a TinyGo netlink driver (e.g. the onboard WiFi chip
// probed by netlink/probe) to the Radio and Netstack interfaces. The driver
// folds start+connect into NetConnect, so Start is only bookkeeping here.
type NetlinkRadio struct {
	link netlink.Netlinker
	dev  netdev.Netdever

	mu      sync.Mutex
	ssid    string
	pass    string
	started bool
	linkUp  bool

	events chan DisconnectEvent
}

var _ Radio = (*NetlinkRadio)(nil)
var _ Netstack = (*NetlinkRadio)(nil)

func NewNetlinkRadio(link netlink.Netlinker, dev netdev.Netdever) *NetlinkRadio {
	r := &NetlinkRadio{
		link:   link,
		dev:    dev,
		events: make(chan DisconnectEvent, 4),
	}
	link.NetNotify(r.notify)
	return r
}

func (r *NetlinkRadio) notify(ev netlink.Event) {
	r.mu.Lock()
	r.linkUp = ev == netlink.EventNetUp
	r.mu.Unlock()
	if ev != netlink.EventNetDown {
		return
	}
	select {
	case r.events <- DisconnectEvent{Desc: "net down"}:
	default:
		// Supervisor only needs one pending event.
	}
}

func (r *NetlinkRadio) ApplyStationConfig(ssid, pass string) error {
	r.mu.Lock()
	r.ssid, r.pass = ssid, pass
	r.mu.Unlock()
	return nil
}

func (r *NetlinkRadio) Start(ctx context.Context) error {
	r.mu.Lock()
	r.started = true
	r.mu.Unlock()
	return nil
}

func (r *NetlinkRadio) Stop(ctx context.Context) error {
	r.mu.Lock()
	r.started = false
	r.mu.Unlock()
	r.link.NetDisconnect()
	return nil
}

func (r *NetlinkRadio) Connect(ctx context.Context) error {
	r.mu.Lock()
	params := &netlink.ConnectParams{
		Ssid:       r.ssid,
		Passphrase: r.pass,
	}
	r.mu.Unlock()
	return r.link.NetConnect(params)
}

func (r *NetlinkRadio) Disconnect(ctx context.Context) error {
	r.link.NetDisconnect()
	return nil
}

func (r *NetlinkRadio) IsStarted() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started, nil
}

func (r *NetlinkRadio) DisconnectEvents() <-chan DisconnectEvent { return r.events }

// Netstack side.

func (r *NetlinkRadio) LinkUp() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.linkUp
}

func (r *NetlinkRadio) Addr() (netip.Addr, bool) {
	addr, err := r.dev.Addr()
	if err != nil || !addr.IsValid() || addr.IsUnspecified() {
		return netip.Addr{}, false
	}
	return addr, true
}
