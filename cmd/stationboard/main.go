package main

import (
	"context"
	"time"

	"stationboard-go/bus"
	"stationboard-go/configstore"
	"stationboard-go/services/console"
	"stationboard-go/services/netman"
	"stationboard-go/services/poller"
	"stationboard-go/storage"
	"stationboard-go/transit"
	"stationboard-go/x/strx"
)

// Build-time credentials, injected with
//
//	-ldflags "-X main.fallbackSSID=... -X main.fallbackPass=... -X main.fallbackAPIKey=..."
//
// Used only when no valid record is stored in flash.
var (
	fallbackSSID   string
	fallbackPass   string
	fallbackAPIKey string
	stationCode    string
)

const pollInterval = 10 * time.Second

// platform is what the target-specific init hands to the shared boot flow.
type platform struct {
	dev   storage.Device
	radio netman.Radio
	stack netman.Netstack
	port  console.Port // nil when the target has no provisioning UART

	// unrecoverable classifies disconnects that wedge the radio until a
	// full stop. nil means every disconnect is retried in place.
	unrecoverable func(netman.DisconnectEvent) bool
}

func main() {
	// Let USB CDC enumerate before the first print.
	time.Sleep(2 * time.Second)
	println("[main] stationboard booting")

	ctx := context.Background()
	p := platformInit()

	rec := loadOrFallback(p.dev)
	if rec == nil {
		println("[main] no usable credentials, provision over the console and reboot")
		if p.port == nil {
			return
		}
		console.New(p.port, p.dev, nil).Run(ctx)
		return
	}

	b := bus.NewBus(8)

	sup := netman.New(p.radio, netman.Config{
		SSID:          rec.SSID(),
		Pass:          rec.Pass(),
		Unrecoverable: p.unrecoverable,
	}, b.NewConnection("netman"))
	go sup.Run(ctx)

	if p.port != nil {
		go console.New(p.port, p.dev, b.NewConnection("console")).Run(ctx)
	}

	addr, err := netman.WaitForNetwork(ctx, p.stack)
	if err != nil {
		println("[main] network bringup aborted:", err.Error())
		return
	}
	println("[main] ip acquired:", addr.String())

	client := transit.NewClient(nil, "", rec.APIKey())
	station := transit.Station(strx.Coalesce(stationCode, string(transit.StationBallston)))
	poller.New(client, station, pollInterval, sup.Online, b.NewConnection("poller")).Run(ctx)
}

// loadOrFallback resolves boot credentials: a valid stored record wins, and
// any load failure means "unconfigured", in which case the build-time
// fallback is persisted for subsequent boots. A failed save is logged only;
// this session still runs on the in-memory fallback.
func loadOrFallback(dev storage.Device) *configstore.Record {
	rec, err := configstore.Load(dev)
	if err == nil {
		println("[main] using stored credentials for ssid:", rec.SSID())
		return rec
	}
	println("[main] no valid stored credentials:", err.Error())

	if fallbackSSID == "" {
		return nil
	}
	rec, err = configstore.New(fallbackSSID, fallbackPass, fallbackAPIKey)
	if err != nil {
		println("[main] fallback credentials rejected:", err.Error())
		return nil
	}
	if err := configstore.Save(rec, dev); err != nil {
		println("[main] persisting fallback failed:", err.Error())
	} else {
		println("[main] fallback credentials persisted")
	}
	return rec
}
