//go:build !(rp2040 || rp2350)

package main

import (
	"context"
	"net/netip"
	"os"
	"sync"
	"time"

	"stationboard-go/services/netman"
	"stationboard-go/storage"
	"stationboard-go/x/strx"
)

// Host builds run the full boot flow against an in-memory flash image and a
// loopback radio, which is enough to exercise supervision, bringup and the
// feed poller without hardware. Environment variables beat the -X defaults.
func platformInit() platform {
	fallbackSSID = strx.Coalesce(os.Getenv("SSID"), fallbackSSID)
	fallbackPass = strx.Coalesce(os.Getenv("PASSWORD"), fallbackPass)
	fallbackAPIKey = strx.Coalesce(os.Getenv("API_KEY"), fallbackAPIKey)
	stationCode = strx.Coalesce(os.Getenv("STATION"), stationCode)

	radio := newLoopRadio()
	return platform{
		dev:   storage.NewMem(64*1024, 4096),
		radio: radio,
		stack: radio,
		port:  nil,
	}
}

// loopRadio associates instantly and never drops the link.
type loopRadio struct {
	mu     sync.Mutex
	linkUp bool
	events chan netman.DisconnectEvent
}

func newLoopRadio() *loopRadio {
	return &loopRadio{events: make(chan netman.DisconnectEvent)}
}

func (r *loopRadio) ApplyStationConfig(ssid, pass string) error { return nil }

func (r *loopRadio) Start(ctx context.Context) error { return nil }

func (r *loopRadio) Stop(ctx context.Context) error {
	r.mu.Lock()
	r.linkUp = false
	r.mu.Unlock()
	return nil
}

func (r *loopRadio) Connect(ctx context.Context) error {
	time.Sleep(10 * time.Millisecond)
	r.mu.Lock()
	r.linkUp = true
	r.mu.Unlock()
	return nil
}

func (r *loopRadio) Disconnect(ctx context.Context) error {
	r.mu.Lock()
	r.linkUp = false
	r.mu.Unlock()
	return nil
}

func (r *loopRadio) IsStarted() (bool, error) { return false, nil }

func (r *loopRadio) DisconnectEvents() <-chan netman.DisconnectEvent { return r.events }

func (r *loopRadio) LinkUp() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.linkUp
}

func (r *loopRadio) Addr() (netip.Addr, bool) {
	if !r.LinkUp() {
		return netip.Addr{}, false
	}
	return netip.MustParseAddr("127.0.0.1"), true
}
