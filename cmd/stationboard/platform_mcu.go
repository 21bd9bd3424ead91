//go:build rp2040 || rp2350

package main

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/netlink/probe"

	"stationboard-go/services/console"
	"stationboard-go/services/netman"
)

var _ console.Port = (*uartx.UART)(nil)

func platformInit() platform {
	link, dev := probe.Probe()
	radio := netman.NewNetlinkRadio(link, dev)

	// Provisioning console on UART0; defaults inside uartx pick the
	// board's standard pins.
	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{BaudRate: 115200})

	return platform{
		dev:   &machine.Flash,
		radio: radio,
		stack: radio,
		port:  u,

		// The netlink driver reports link loss without a driver-level
		// reason code, so no disconnect is classed unrecoverable here.
		// Boards whose radio wedges after specific faults install a
		// predicate of their own.
		unrecoverable: nil,
	}
}
